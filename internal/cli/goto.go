package cli

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"

	"github.com/mvp-joe/preproc-explorer/internal/explorer"
	"github.com/mvp-joe/preproc-explorer/internal/tree"
	"github.com/spf13/cobra"
)

// gotoCmd represents the goto command
var gotoCmd = &cobra.Command{
	Use:   "goto <path> <line>",
	Short: "Print one line of a file, as found in the symbol tree",
	Long: `Goto resolves a location printed by 'preproc scan' and prints the current
text of that line. Lines are 1-based, as shown in the tree.

Example:
  preproc goto src/Customer.Table.al 12`,
	Args: cobra.ExactArgs(2),
	RunE: runGoto,
}

func init() {
	rootCmd.AddCommand(gotoCmd)
}

func runGoto(cmd *cobra.Command, args []string) error {
	return gotoLine(cmd.OutOrStdout(), rootDir, args[0], args[1])
}

// gotoLine prints "path:line: text". Relative paths resolve against root, or
// the current directory when root is empty.
func gotoLine(out io.Writer, root, path, lineArg string) error {
	line, err := strconv.Atoi(lineArg)
	if err != nil || line < 1 {
		return fmt.Errorf("line must be a positive integer, got %q", lineArg)
	}

	if !filepath.IsAbs(path) && root != "" {
		path = filepath.Join(root, path)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	loc, err := explorer.Navigate(tree.Target{Path: abs, Line: line - 1})
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "%s:%d: %s\n", loc.Path, loc.Line+1, loc.Text)
	return nil
}
