// Package scanner discovers AL source files, reads them with bounded
// parallelism and builds the symbol index in discovery order.
package scanner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/mvp-joe/preproc-explorer/internal/symbols"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Options configures a Scanner.
type Options struct {
	Include []string
	Ignore  []string

	// Concurrency bounds parallel file reads. Zero means runtime.NumCPU().
	Concurrency int

	// CacheSize is the number of per-file results kept between scans.
	// Zero disables the cache.
	CacheSize int

	Progress ProgressReporter
	Logger   zerolog.Logger
}

// SkippedFile is a discovered file that could not be read.
type SkippedFile struct {
	Path string `json:"path"`
	Err  string `json:"error"`
}

// Stats summarizes one scan.
type Stats struct {
	Files       int           `json:"files"`
	Cached      int           `json:"cached"`
	Skipped     int           `json:"skipped"`
	Symbols     int           `json:"symbols"`
	Occurrences int           `json:"occurrences"`
	Duration    time.Duration `json:"duration_ns"`
}

// Result is the output of one scan.
type Result struct {
	Index   *symbols.Index
	Files   []string
	Skipped []SkippedFile
	Stats   Stats
}

// Scanner runs the discovery → read → index pipeline over a workspace.
// Scan may be called repeatedly; each call rebuilds the index from scratch.
type Scanner struct {
	workspace   *Workspace
	discovery   *FileDiscovery
	concurrency int
	cache       *fileCache
	progress    ProgressReporter
	logger      zerolog.Logger
}

// New creates a scanner for the workspace folders.
func New(ws *Workspace, opts Options) (*Scanner, error) {
	if ws == nil {
		return nil, fmt.Errorf("workspace is required")
	}

	discovery, err := NewFileDiscovery(opts.Include, opts.Ignore, opts.Logger)
	if err != nil {
		return nil, fmt.Errorf("invalid file pattern: %w", err)
	}

	s := &Scanner{
		workspace:   ws,
		discovery:   discovery,
		concurrency: opts.Concurrency,
		progress:    opts.Progress,
		logger:      opts.Logger,
	}
	if s.concurrency <= 0 {
		s.concurrency = runtime.NumCPU()
	}
	if s.progress == nil {
		s.progress = &NoOpProgressReporter{}
	}
	if opts.CacheSize > 0 {
		if s.cache, err = newFileCache(opts.CacheSize); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Workspace returns the workspace the scanner resolves folders against.
func (s *Scanner) Workspace() *Workspace {
	return s.workspace
}

// SkipDir reports whether an absolute directory path falls under an ignore
// pattern of the workspace folder containing it.
func (s *Scanner) SkipDir(path string) bool {
	for _, f := range s.workspace.Folders() {
		if !contains(f.Path, path) {
			continue
		}
		rel, err := filepath.Rel(f.Path, path)
		if err != nil || rel == "." {
			continue
		}
		if s.discovery.shouldIgnore(filepath.ToSlash(rel)) {
			return true
		}
	}
	return false
}

// Close releases the file cache.
func (s *Scanner) Close() {
	if s.cache != nil {
		s.cache.close()
	}
}

// DiscoverFiles lists matching files across all workspace folders, in folder
// order, without duplicates.
func (s *Scanner) DiscoverFiles() ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	for _, f := range s.workspace.Folders() {
		found, err := s.discovery.Discover(f.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to discover files in %s: %w", f.Path, err)
		}
		for _, path := range found {
			if !seen[path] {
				seen[path] = true
				files = append(files, path)
			}
		}
	}
	return files, nil
}

type fileResult struct {
	occs   []symbols.Occurrence
	cached bool
	err    error
}

// Scan discovers and reads every file and returns the combined index. Files
// are read in parallel into slots addressed by discovery position and merged
// in that order, so the index is identical to a sequential scan. Unreadable
// files are skipped. Only context cancellation fails the scan.
func (s *Scanner) Scan(ctx context.Context) (*Result, error) {
	start := time.Now()

	s.progress.OnDiscoveryStart()
	files, err := s.DiscoverFiles()
	if err != nil {
		return nil, err
	}
	s.progress.OnDiscoveryComplete(len(files))

	results := make([]fileResult, len(files))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, path := range files {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			results[i] = s.scanFile(path)
			s.progress.OnFileScanned(path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("scan cancelled: %w", err)
	}

	res := &Result{
		Index: symbols.NewIndex(),
		Files: files,
	}
	for i, r := range results {
		if r.err != nil {
			s.logger.Warn().Err(r.err).Str("path", files[i]).Msg("skipping unreadable file")
			res.Skipped = append(res.Skipped, SkippedFile{Path: files[i], Err: r.err.Error()})
			continue
		}
		if r.cached {
			res.Stats.Cached++
		}
		res.Index.Merge(r.occs)
	}

	res.Stats.Files = len(files)
	res.Stats.Skipped = len(res.Skipped)
	res.Stats.Symbols = res.Index.Len()
	res.Stats.Occurrences = res.Index.Total()
	res.Stats.Duration = time.Since(start)

	s.logger.Debug().
		Int("files", res.Stats.Files).
		Int("cached", res.Stats.Cached).
		Int("skipped", res.Stats.Skipped).
		Int("symbols", res.Stats.Symbols).
		Dur("took", res.Stats.Duration).
		Msg("scan complete")

	s.progress.OnComplete(&res.Stats)
	return res, nil
}

func (s *Scanner) scanFile(path string) fileResult {
	info, err := os.Stat(path)
	if err != nil {
		return fileResult{err: err}
	}

	if s.cache != nil {
		if occs, ok := s.cache.get(path, info); ok {
			return fileResult{occs: occs, cached: true}
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fileResult{err: err}
	}

	occs := symbols.ScanFile(path, string(data))
	if s.cache != nil {
		s.cache.set(path, info, occs)
	}
	return fileResult{occs: occs}
}
