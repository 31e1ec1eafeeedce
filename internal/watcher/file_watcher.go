package watcher

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// DefaultDebounce is the quiet period used when Options.Debounce is zero.
const DefaultDebounce = 500 * time.Millisecond

// Options configures a file watcher.
type Options struct {
	// Extensions to monitor (e.g. []string{".al"}). Matching is case-insensitive.
	Extensions []string

	// Debounce is the quiet period before the callback fires.
	Debounce time.Duration

	// SkipDir reports directories that should not be watched. Optional.
	SkipDir func(path string) bool

	Logger zerolog.Logger
}

// fileWatcher implements FileWatcher interface.
type fileWatcher struct {
	watcher       *fsnotify.Watcher
	dirs          []string
	extensions    map[string]bool
	debounceTime  time.Duration
	skipDir       func(path string) bool
	logger        zerolog.Logger
	callback      func(files []string)
	ctx           context.Context
	cancel        context.CancelFunc
	paused        bool
	pausedMu      sync.RWMutex
	accumulated   map[string]bool
	accumulatedMu sync.Mutex
	debounceTimer *time.Timer
	timerMu       sync.Mutex
	stopOnce      sync.Once
	doneCh        chan struct{}
}

// NewFileWatcher creates a new file watcher for the given directories.
// Every directory is watched recursively.
func NewFileWatcher(dirs []string, opts Options) (FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	extMap := make(map[string]bool)
	for _, ext := range opts.Extensions {
		extMap[strings.ToLower(ext)] = true
	}

	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fw := &fileWatcher{
		watcher:      watcher,
		dirs:         dirs,
		extensions:   extMap,
		debounceTime: debounce,
		skipDir:      opts.SkipDir,
		logger:       opts.Logger,
		accumulated:  make(map[string]bool),
		doneCh:       make(chan struct{}),
	}

	for _, dir := range dirs {
		if err := fw.addDirectoriesRecursively(dir); err != nil {
			watcher.Close()
			return nil, err
		}
	}

	return fw, nil
}

// Start begins watching for file changes.
func (fw *fileWatcher) Start(ctx context.Context, callback func(files []string)) error {
	if callback == nil {
		return nil
	}

	fw.callback = callback
	fw.ctx, fw.cancel = context.WithCancel(ctx)

	go fw.watch()
	return nil
}

// Stop stops the file watcher.
func (fw *fileWatcher) Stop() error {
	var err error
	fw.stopOnce.Do(func() {
		if fw.cancel != nil {
			fw.cancel()
			<-fw.doneCh
		} else {
			// Never started
			close(fw.doneCh)
		}

		err = fw.watcher.Close()
	})
	return err
}

// Pause stops firing callbacks but continues accumulating events.
func (fw *fileWatcher) Pause() {
	fw.pausedMu.Lock()
	defer fw.pausedMu.Unlock()
	fw.paused = true
}

// Resume resumes firing callbacks. If events accumulated during pause, fires immediately.
func (fw *fileWatcher) Resume() {
	fw.pausedMu.Lock()
	wasPaused := fw.paused
	fw.paused = false
	fw.pausedMu.Unlock()

	if !wasPaused {
		return
	}

	if files := fw.drain(); len(files) > 0 && fw.callback != nil {
		fw.callback(files)
	}
}

// watch is the main event loop.
func (fw *fileWatcher) watch() {
	defer close(fw.doneCh)

	rescanCh := make(chan struct{}, 1)

	for {
		select {
		case <-fw.ctx.Done():
			fw.stopDebounceTimer()
			return

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}

			// New directories need their own watches
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() && !fw.skipped(event.Name) {
					if err := fw.addDirectoriesRecursively(event.Name); err != nil {
						fw.logger.Warn().Err(err).Str("dir", event.Name).Msg("failed to watch new directory")
					}
				}
			}

			if !fw.shouldProcessEvent(event) {
				continue
			}

			fw.logger.Debug().Str("file", event.Name).Str("op", event.Op.String()).Msg("source change")

			fw.accumulatedMu.Lock()
			fw.accumulated[event.Name] = true
			fw.accumulatedMu.Unlock()

			fw.resetDebounceTimer(rescanCh)

		case <-rescanCh:
			fw.handleDebounceExpired()

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			fw.logger.Warn().Err(err).Msg("file watcher error")
		}
	}
}

// handleDebounceExpired fires the callback with the accumulated batch unless paused.
func (fw *fileWatcher) handleDebounceExpired() {
	fw.pausedMu.RLock()
	paused := fw.paused
	fw.pausedMu.RUnlock()

	if paused {
		return
	}

	if files := fw.drain(); len(files) > 0 && fw.callback != nil {
		fw.callback(files)
	}
}

// drain returns the accumulated files in sorted order and clears the batch.
func (fw *fileWatcher) drain() []string {
	fw.accumulatedMu.Lock()
	defer fw.accumulatedMu.Unlock()

	if len(fw.accumulated) == 0 {
		return nil
	}

	files := make([]string, 0, len(fw.accumulated))
	for file := range fw.accumulated {
		files = append(files, file)
	}
	fw.accumulated = make(map[string]bool)

	sort.Strings(files)
	return files
}

// resetDebounceTimer resets the debounce timer, properly stopping the old one.
func (fw *fileWatcher) resetDebounceTimer(rescanCh chan struct{}) {
	fw.timerMu.Lock()
	defer fw.timerMu.Unlock()

	if fw.debounceTimer != nil {
		fw.debounceTimer.Stop()
	}

	fw.debounceTimer = time.AfterFunc(fw.debounceTime, func() {
		select {
		case rescanCh <- struct{}{}:
		default:
		}
	})
}

func (fw *fileWatcher) stopDebounceTimer() {
	fw.timerMu.Lock()
	defer fw.timerMu.Unlock()

	if fw.debounceTimer != nil {
		fw.debounceTimer.Stop()
		fw.debounceTimer = nil
	}
}

// shouldProcessEvent checks the operation and the file extension.
// Renames count because the old name disappears from the tree.
func (fw *fileWatcher) shouldProcessEvent(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}

	ext := strings.ToLower(filepath.Ext(event.Name))
	return fw.extensions[ext]
}

func (fw *fileWatcher) skipped(dir string) bool {
	return fw.skipDir != nil && fw.skipDir(dir)
}

// addDirectoriesRecursively adds all directories in the tree to the watcher.
func (fw *fileWatcher) addDirectoriesRecursively(rootPath string) error {
	return filepath.WalkDir(rootPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == rootPath {
				return err
			}
			fw.logger.Warn().Err(err).Str("path", path).Msg("error accessing path")
			return nil
		}

		if !d.IsDir() {
			return nil
		}

		if path != rootPath && fw.skipped(path) {
			return filepath.SkipDir
		}

		if err := fw.watcher.Add(path); err != nil {
			fw.logger.Warn().Err(err).Str("dir", path).Msg("failed to watch directory")
		}

		return nil
	})
}
