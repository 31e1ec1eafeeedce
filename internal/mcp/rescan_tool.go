package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mvp-joe/preproc-explorer/internal/tree"
)

// AddPreprocRescanTool registers the preproc_rescan tool with an MCP server.
func AddPreprocRescanTool(s *server.MCPServer, rescanner Rescanner) {
	s.AddTool(newPreprocRescanTool(), createPreprocRescanHandler(rescanner))
}

func newPreprocRescanTool() mcp.Tool {
	return mcp.NewTool(
		"preproc_rescan",
		mcp.WithDescription("Rescan the whole workspace and rebuild the preprocessor symbol tree. Returns the new snapshot id and scan statistics."),
		mcp.WithReadOnlyHintAnnotation(false),
		mcp.WithDestructiveHintAnnotation(false),
	)
}

// createPreprocRescanHandler creates the handler function for preproc_rescan tool.
func createPreprocRescanHandler(rescanner Rescanner) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		snap, err := rescanner.Rescan(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		response := &RescanResponse{
			Snapshot: snap.ID,
			Stats:    snap.Stats,
			Counts:   tree.Count(snap.Roots),
			Skipped:  snap.Skipped,
		}

		jsonData, err := json.Marshal(response)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response: %w", err)
		}

		return mcp.NewToolResultText(string(jsonData)), nil
	}
}
