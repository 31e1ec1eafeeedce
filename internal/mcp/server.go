package mcp

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/mcp-go/server"
	"github.com/mvp-joe/preproc-explorer/internal/explorer"
	"github.com/mvp-joe/preproc-explorer/internal/watcher"
	"github.com/rs/zerolog"
)

// ServerName is the MCP implementation name reported to clients.
const ServerName = "preproc-mcp"

// MCPServer manages the MCP server lifecycle.
type MCPServer struct {
	explorer    *explorer.Explorer
	coordinator *watcher.Coordinator
	mcp         *server.MCPServer
	logger      zerolog.Logger
}

// NewMCPServer creates an MCP server over the explorer. When files is not
// nil, changes it reports trigger rescans for as long as the server runs.
func NewMCPServer(ex *explorer.Explorer, files watcher.FileWatcher, version string, logger zerolog.Logger) (*MCPServer, error) {
	if ex == nil {
		return nil, fmt.Errorf("explorer is required")
	}

	s := &MCPServer{
		explorer: ex,
		logger:   logger,
		mcp: server.NewMCPServer(
			ServerName,
			version,
			server.WithToolCapabilities(true),
		),
	}

	var rescanner Rescanner = ex
	if files != nil {
		s.coordinator = watcher.NewCoordinator(files, ex, logger)
		rescanner = s.coordinator
	}

	AddPreprocTreeTool(s.mcp, ex)
	AddPreprocRescanTool(s.mcp, rescanner)
	AddPreprocGotoTool(s.mcp, ex)

	return s, nil
}

// Serve builds the initial tree, starts the watcher and serves MCP on stdio
// until shutdown. A failed initial build is logged; clients can still call
// preproc_rescan.
func (s *MCPServer) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if _, err := s.explorer.Rescan(ctx); err != nil {
		s.logger.Error().Err(err).Msg("initial scan failed")
	}

	if s.coordinator != nil {
		go func() {
			if err := s.coordinator.Start(ctx); err != nil && ctx.Err() == nil {
				s.logger.Error().Err(err).Msg("file watcher stopped")
			}
		}()
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Msg("starting MCP server on stdio")
		errCh <- server.ServeStdio(s.mcp)
	}()

	select {
	case <-sigCh:
		s.logger.Info().Msg("received shutdown signal, stopping")
		return nil
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("MCP server error: %w", err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// MCP returns the underlying mcp-go server.
func (s *MCPServer) MCP() *server.MCPServer {
	return s.mcp
}
