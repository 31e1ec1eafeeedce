package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/mvp-joe/preproc-explorer/internal/explorer"
	"github.com/mvp-joe/preproc-explorer/internal/render"
	"github.com/mvp-joe/preproc-explorer/internal/tree"
	"github.com/mvp-joe/preproc-explorer/internal/watcher"
	"github.com/spf13/cobra"
)

var (
	watchFormatFlag string
	watchSymbolFlag string
	watchFolderFlag string
)

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print the symbol tree and reprint it whenever AL files change",
	Long: `Watch performs an initial scan, prints the tree, then watches every
workspace folder. Each debounced batch of changes triggers a full rescan and
the tree is printed again. Stop with Ctrl+C.

Examples:
  preproc watch
  preproc watch --symbol CLEAN24`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().StringVarP(&watchFormatFlag, "format", "f", "", "Output format: text, json or yaml (default from config)")
	watchCmd.Flags().StringVar(&watchSymbolFlag, "symbol", "", "Only print this symbol")
	watchCmd.Flags().StringVar(&watchFolderFlag, "folder", "", "Only print this workspace folder")
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	err := watch(ctx, scanOptions{
		sessionOptions: sessionOptions{
			root:       rootDir,
			configFile: cfgFile,
			logger:     logger,
		},
		format: watchFormatFlag,
		symbol: watchSymbolFlag,
		folder: watchFolderFlag,
	}, nil, cmd.OutOrStdout())
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// watch renders the tree after every rebuild until ctx is cancelled. A nil
// files argument watches the workspace folders on disk.
func watch(ctx context.Context, opts scanOptions, files watcher.FileWatcher, out io.Writer) error {
	sess, err := openSession(opts.sessionOptions)
	if err != nil {
		return err
	}
	defer sess.Close()

	format, err := resolveFormat(opts.format, sess.cfg.Output.Format)
	if err != nil {
		return err
	}

	if files == nil {
		if files, err = sess.newWatcher(); err != nil {
			return err
		}
	}

	var mu sync.Mutex
	show := func(snap *explorer.Snapshot) {
		mu.Lock()
		defer mu.Unlock()

		if format == render.FormatText {
			fmt.Fprintf(out, "── %s  %s symbols, %s files ──\n",
				snap.BuiltAt.Format("15:04:05"),
				formatNumber(snap.Stats.Symbols),
				formatNumber(snap.Stats.Files))
		}
		roots := tree.Filter(snap.Roots, opts.folder, opts.symbol)
		if err := render.Write(out, format, roots); err != nil {
			sess.logger.Error().Err(err).Msg("failed to render tree")
		}
	}

	unsubscribe := sess.explorer.Subscribe(show)
	defer unsubscribe()

	if _, err := sess.explorer.Rescan(ctx); err != nil {
		files.Stop()
		return err
	}

	sess.logger.Info().Msg("watching for changes, press Ctrl+C to stop")

	coordinator := watcher.NewCoordinator(files, sess.explorer, sess.logger)
	return coordinator.Start(ctx)
}
