// Package explorer owns the current symbol tree. It runs rescans, publishes
// each finished tree atomically and notifies subscribers.
//
// Lifecycle: Idle (nothing built yet) → Scanning → Built. While a rescan is in
// flight the previous snapshot stays visible. Concurrent rescans are allowed;
// the last one to finish wins.
package explorer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/mvp-joe/preproc-explorer/internal/scanner"
	"github.com/mvp-joe/preproc-explorer/internal/symbols"
	"github.com/mvp-joe/preproc-explorer/internal/tree"
	"github.com/rs/zerolog"
)

// ErrNotBuilt is returned when no snapshot has been built yet.
var ErrNotBuilt = errors.New("symbol tree has not been built")

// State is the explorer lifecycle state.
type State string

const (
	StateIdle     State = "idle"
	StateScanning State = "scanning"
	StateBuilt    State = "built"
)

// Scanner produces a fresh symbol index.
type Scanner interface {
	Scan(ctx context.Context) (*scanner.Result, error)
}

// Snapshot is one fully built tree. Snapshots are never mutated after they
// are published.
type Snapshot struct {
	ID      string
	Roots   []*tree.Node
	Index   *symbols.Index
	Stats   scanner.Stats
	Skipped []scanner.SkippedFile
	BuiltAt time.Time
}

// Explorer coordinates rescans and exposes the current snapshot.
type Explorer struct {
	scanner  Scanner
	folderOf tree.FolderFunc
	logger   zerolog.Logger

	current  atomic.Pointer[Snapshot]
	inflight atomic.Int32

	mu          sync.Mutex
	subscribers map[int]func(*Snapshot)
	nextSubID   int
}

// New creates an explorer. folderOf maps occurrences to folder names.
func New(s Scanner, folderOf tree.FolderFunc, logger zerolog.Logger) *Explorer {
	return &Explorer{
		scanner:     s,
		folderOf:    folderOf,
		logger:      logger,
		subscribers: make(map[int]func(*Snapshot)),
	}
}

// State reports the lifecycle state.
func (e *Explorer) State() State {
	if e.inflight.Load() > 0 {
		return StateScanning
	}
	if e.current.Load() != nil {
		return StateBuilt
	}
	return StateIdle
}

// Current returns the latest snapshot, or nil before the first build.
func (e *Explorer) Current() *Snapshot {
	return e.current.Load()
}

// Rescan runs the full pipeline and publishes the result. On error the
// previous snapshot is kept.
func (e *Explorer) Rescan(ctx context.Context) (*Snapshot, error) {
	e.inflight.Add(1)
	defer e.inflight.Add(-1)

	res, err := e.scanner.Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("rescan failed: %w", err)
	}

	snap := &Snapshot{
		ID:      uuid.NewString(),
		Roots:   tree.Build(res.Index, e.folderOf),
		Index:   res.Index,
		Stats:   res.Stats,
		Skipped: res.Skipped,
		BuiltAt: time.Now(),
	}
	e.current.Store(snap)

	e.logger.Debug().
		Str("snapshot", snap.ID).
		Int("folders", len(snap.Roots)).
		Int("symbols", snap.Stats.Symbols).
		Msg("symbol tree rebuilt")

	e.notify(snap)
	return snap, nil
}

// Subscribe registers fn to be called after every rebuild. The returned
// function removes the subscription.
func (e *Explorer) Subscribe(fn func(*Snapshot)) (unsubscribe func()) {
	e.mu.Lock()
	defer e.mu.Unlock()

	id := e.nextSubID
	e.nextSubID++
	e.subscribers[id] = fn

	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		delete(e.subscribers, id)
	}
}

func (e *Explorer) notify(snap *Snapshot) {
	e.mu.Lock()
	fns := make([]func(*Snapshot), 0, len(e.subscribers))
	for id := 0; id < e.nextSubID; id++ {
		if fn, ok := e.subscribers[id]; ok {
			fns = append(fns, fn)
		}
	}
	e.mu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}

// Targets returns every line target of the current snapshot.
func (e *Explorer) Targets() ([]tree.Target, error) {
	snap := e.Current()
	if snap == nil {
		return nil, ErrNotBuilt
	}
	return tree.Targets(snap.Roots), nil
}
