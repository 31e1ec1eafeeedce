package cli

import (
	"fmt"

	"github.com/mvp-joe/preproc-explorer/internal/mcp"
	"github.com/mvp-joe/preproc-explorer/internal/watcher"
	"github.com/spf13/cobra"
)

var mcpNoWatchFlag bool

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for preprocessor symbol navigation",
	Long: `Start the Model Context Protocol (MCP) server that lets coding assistants
browse the preprocessor symbol tree of your AL workspace.

The MCP server:
- Scans the workspace once at startup
- Rescans whenever AL files change (disable with --no-watch)
- Provides the preproc_tree, preproc_rescan and preproc_goto tools
- Communicates via stdio (standard MCP transport)

Example:
  preproc mcp`,
	Args: cobra.NoArgs,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().BoolVar(&mcpNoWatchFlag, "no-watch", false, "Do not rescan on file changes")
}

func runMCP(cmd *cobra.Command, args []string) error {
	sess, err := openSession(sessionOptions{
		root:       rootDir,
		configFile: cfgFile,
		logger:     logger,
	})
	if err != nil {
		return err
	}
	defer sess.Close()

	var files watcher.FileWatcher
	if !mcpNoWatchFlag {
		if files, err = sess.newWatcher(); err != nil {
			return err
		}
	}

	server, err := mcp.NewMCPServer(sess.explorer, files, Version, sess.logger)
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}

	// Serve (blocks until shutdown)
	if err := server.Serve(cmd.Context()); err != nil {
		return fmt.Errorf("MCP server error: %w", err)
	}

	return nil
}
