package scanner

import (
	"fmt"
	"os"
	"time"

	"github.com/maypok86/otter"
	"github.com/mvp-joe/preproc-explorer/internal/symbols"
)

// cachedFile is the scan result of one file at a given size and mtime.
type cachedFile struct {
	size    int64
	modTime time.Time
	occs    []symbols.Occurrence
}

// fileCache remembers per-file occurrences between scans in long-lived
// processes. A hit requires an identical size and modification time, so the
// index built from cached entries equals what a fresh read would produce.
type fileCache struct {
	cache otter.Cache[string, cachedFile]
}

func newFileCache(capacity int) (*fileCache, error) {
	c, err := otter.MustBuilder[string, cachedFile](capacity).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build file cache: %w", err)
	}
	return &fileCache{cache: c}, nil
}

func (fc *fileCache) get(path string, info os.FileInfo) ([]symbols.Occurrence, bool) {
	entry, ok := fc.cache.Get(path)
	if !ok {
		return nil, false
	}
	if entry.size != info.Size() || !entry.modTime.Equal(info.ModTime()) {
		fc.cache.Delete(path)
		return nil, false
	}
	return entry.occs, true
}

func (fc *fileCache) set(path string, info os.FileInfo, occs []symbols.Occurrence) {
	fc.cache.Set(path, cachedFile{
		size:    info.Size(),
		modTime: info.ModTime(),
		occs:    occs,
	})
}

func (fc *fileCache) close() {
	fc.cache.Close()
}
