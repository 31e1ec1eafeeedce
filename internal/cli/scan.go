package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/mvp-joe/preproc-explorer/internal/render"
	"github.com/mvp-joe/preproc-explorer/internal/tree"
	"github.com/spf13/cobra"
)

var (
	scanFormatFlag string
	scanQuietFlag  bool
	scanSymbolFlag string
	scanFolderFlag string
)

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:     "scan",
	Aliases: []string{"explore", "refresh"},
	Short:   "Scan the workspace and print the preprocessor symbol tree",
	Long: `Scan walks every workspace folder, collects preprocessor symbol
definitions and usages from AL files and prints them grouped by folder,
symbol, object file and line.

Every run is a full rescan. "explore" and "refresh" are aliases.

Examples:
  # Print the tree for the current directory
  preproc scan

  # Machine-readable output
  preproc scan --format json

  # Only one symbol
  preproc scan --symbol CLEAN24`,
	Args: cobra.NoArgs,
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)
	scanCmd.Flags().StringVarP(&scanFormatFlag, "format", "f", "", "Output format: text, json or yaml (default from config)")
	scanCmd.Flags().BoolVarP(&scanQuietFlag, "quiet", "q", false, "Suppress progress output")
	scanCmd.Flags().StringVar(&scanSymbolFlag, "symbol", "", "Only print this symbol")
	scanCmd.Flags().StringVar(&scanFolderFlag, "folder", "", "Only print this workspace folder")
}

// scanOptions holds the inputs of one scan run.
type scanOptions struct {
	sessionOptions
	format string
	quiet  bool
	symbol string
	folder string
}

func runScan(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return scan(ctx, scanOptions{
		sessionOptions: sessionOptions{
			root:       rootDir,
			configFile: cfgFile,
			logger:     logger,
		},
		format: scanFormatFlag,
		quiet:  scanQuietFlag,
		symbol: scanSymbolFlag,
		folder: scanFolderFlag,
	}, cmd.OutOrStdout(), cmd.ErrOrStderr())
}

// scan builds the tree once and renders it to out. Progress goes to errOut.
func scan(ctx context.Context, opts scanOptions, out, errOut io.Writer) error {
	opts.progress = newProgressReporter(errOut, opts.quiet)

	sess, err := openSession(opts.sessionOptions)
	if err != nil {
		return err
	}
	defer sess.Close()

	format, err := resolveFormat(opts.format, sess.cfg.Output.Format)
	if err != nil {
		return err
	}

	snap, err := sess.explorer.Rescan(ctx)
	if err != nil {
		return err
	}

	roots := tree.Filter(snap.Roots, opts.folder, opts.symbol)
	if err := render.Write(out, format, roots); err != nil {
		return fmt.Errorf("failed to render tree: %w", err)
	}
	return nil
}

// resolveFormat prefers the flag value over the configured format.
func resolveFormat(flag, configured string) (render.Format, error) {
	if flag != "" {
		return render.ParseFormat(flag)
	}
	return render.ParseFormat(configured)
}
