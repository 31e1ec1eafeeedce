package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mvp-joe/preproc-explorer/internal/config"
	"github.com/mvp-joe/preproc-explorer/internal/explorer"
	"github.com/mvp-joe/preproc-explorer/internal/scanner"
	"github.com/mvp-joe/preproc-explorer/internal/watcher"
	"github.com/rs/zerolog"
)

// defaultExtensions is watched when no include pattern names an extension.
var defaultExtensions = []string{".al"}

// session bundles the configured pipeline for one command invocation.
type session struct {
	root     string
	cfg      *config.Config
	scanner  *scanner.Scanner
	explorer *explorer.Explorer
	logger   zerolog.Logger
}

// sessionOptions selects the workspace and config file for a session.
type sessionOptions struct {
	root       string // empty means the current directory
	configFile string // empty means .preproc/config.yml under root
	progress   scanner.ProgressReporter
	logger     zerolog.Logger
}

// openSession loads configuration and wires scanner and explorer.
func openSession(opts sessionOptions) (*session, error) {
	root := opts.root
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		root = wd
	}
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve workspace root: %w", err)
	}

	var loader config.Loader
	if opts.configFile != "" {
		loader = config.NewFileLoader(root, opts.configFile)
	} else {
		loader = config.NewLoader(root)
	}
	cfg, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	folders := cfg.ResolveFolders(root)
	wsFolders := make([]scanner.Folder, 0, len(folders))
	for _, f := range folders {
		wsFolders = append(wsFolders, scanner.Folder{Name: f.Name, Path: f.Path})
	}
	ws, err := scanner.NewWorkspace(root, wsFolders)
	if err != nil {
		return nil, err
	}

	s, err := scanner.New(ws, scanner.Options{
		Include:     cfg.Paths.Include,
		Ignore:      cfg.Paths.Ignore,
		Concurrency: cfg.Scan.Concurrency,
		CacheSize:   cfg.Scan.CacheSize,
		Progress:    opts.progress,
		Logger:      opts.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create scanner: %w", err)
	}

	opts.logger.Debug().
		Str("root", root).
		Int("folders", len(wsFolders)).
		Strs("include", cfg.Paths.Include).
		Msg("workspace loaded")

	return &session{
		root:     root,
		cfg:      cfg,
		scanner:  s,
		explorer: explorer.New(s, ws.FolderFunc(), opts.logger),
		logger:   opts.logger,
	}, nil
}

// newWatcher creates a file watcher over every workspace folder.
func (s *session) newWatcher() (watcher.FileWatcher, error) {
	folders := s.scanner.Workspace().Folders()
	dirs := make([]string, 0, len(folders))
	for _, f := range folders {
		dirs = append(dirs, f.Path)
	}

	extensions := s.cfg.GetSourceExtensions()
	if len(extensions) == 0 {
		extensions = defaultExtensions
	}

	fw, err := watcher.NewFileWatcher(dirs, watcher.Options{
		Extensions: extensions,
		Debounce:   time.Duration(s.cfg.Watch.DebounceMs) * time.Millisecond,
		SkipDir:    s.scanner.SkipDir,
		Logger:     s.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	return fw, nil
}

// Close releases the scanner cache.
func (s *session) Close() {
	s.scanner.Close()
}
