package watcher

import (
	"context"
	"fmt"

	"github.com/mvp-joe/preproc-explorer/internal/explorer"
	"github.com/rs/zerolog"
)

// Coordinator routes debounced file changes to full rescans.
type Coordinator struct {
	files     FileWatcher
	rescanner Rescanner
	logger    zerolog.Logger
}

// NewCoordinator creates a new watch coordinator.
func NewCoordinator(files FileWatcher, rescanner Rescanner, logger zerolog.Logger) *Coordinator {
	return &Coordinator{
		files:     files,
		rescanner: rescanner,
		logger:    logger,
	}
}

// Start begins routing file changes to the rescanner.
// Blocks until context is cancelled, then stops the file watcher.
func (c *Coordinator) Start(ctx context.Context) error {
	if err := c.files.Start(ctx, func(files []string) {
		c.handleFileChange(ctx, files)
	}); err != nil {
		return fmt.Errorf("failed to start file watcher: %w", err)
	}

	<-ctx.Done()
	c.cleanup()
	return ctx.Err()
}

// Rescan runs a rescan outside the watch loop. File events arriving
// meanwhile are held and trigger one follow-up rescan afterwards.
func (c *Coordinator) Rescan(ctx context.Context) (*explorer.Snapshot, error) {
	c.files.Pause()
	defer c.files.Resume()

	return c.rescanner.Rescan(ctx)
}

func (c *Coordinator) cleanup() {
	if err := c.files.Stop(); err != nil {
		c.logger.Warn().Err(err).Msg("file watcher stop failed")
	}
}

// handleFileChange rebuilds the whole tree. The changed paths are only logged.
func (c *Coordinator) handleFileChange(ctx context.Context, files []string) {
	if len(files) == 0 {
		return
	}

	c.logger.Info().Int("files", len(files)).Msg("source changes detected, rescanning")

	snap, err := c.rescanner.Rescan(ctx)
	if err != nil {
		if ctx.Err() == nil {
			c.logger.Error().Err(err).Msg("rescan failed")
		}
		return
	}

	c.logger.Info().
		Str("snapshot", snap.ID).
		Int("symbols", snap.Stats.Symbols).
		Int("occurrences", snap.Stats.Occurrences).
		Msg("symbol tree updated")
}
