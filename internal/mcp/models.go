package mcp

import (
	"context"
	"time"

	"github.com/mvp-joe/preproc-explorer/internal/explorer"
	"github.com/mvp-joe/preproc-explorer/internal/scanner"
	"github.com/mvp-joe/preproc-explorer/internal/tree"
)

// SnapshotSource exposes the current symbol tree.
type SnapshotSource interface {
	Current() *explorer.Snapshot
	State() explorer.State
}

// Rescanner rebuilds the symbol tree on request.
type Rescanner interface {
	Rescan(ctx context.Context) (*explorer.Snapshot, error)
}

// TreeRequest holds the optional filters of preproc_tree.
type TreeRequest struct {
	Symbol string `json:"symbol,omitempty"`
	Folder string `json:"folder,omitempty"`
}

// TreeResponse is the JSON payload of preproc_tree.
type TreeResponse struct {
	Snapshot string         `json:"snapshot"`
	State    explorer.State `json:"state"`
	BuiltAt  time.Time      `json:"built_at"`
	Counts   tree.Counts    `json:"counts"`
	Roots    []*tree.Node   `json:"roots"`
}

// RescanResponse is the JSON payload of preproc_rescan.
type RescanResponse struct {
	Snapshot string                `json:"snapshot"`
	Stats    scanner.Stats         `json:"stats"`
	Counts   tree.Counts           `json:"counts"`
	Skipped  []scanner.SkippedFile `json:"skipped,omitempty"`
}

// GotoRequest identifies one line target of the tree. Line is 0-based, the
// same value carried by line nodes.
type GotoRequest struct {
	Path string `json:"path"`
	Line int    `json:"line"`
}

// GotoResponse is the JSON payload of preproc_goto.
type GotoResponse struct {
	explorer.Location
	Tooltip string `json:"tooltip"`
}
