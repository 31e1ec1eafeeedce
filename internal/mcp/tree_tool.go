package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mvp-joe/preproc-explorer/internal/explorer"
	"github.com/mvp-joe/preproc-explorer/internal/tree"
)

// AddPreprocTreeTool registers the preproc_tree tool with an MCP server.
func AddPreprocTreeTool(s *server.MCPServer, source SnapshotSource) {
	s.AddTool(newPreprocTreeTool(), createPreprocTreeHandler(source))
}

func newPreprocTreeTool() mcp.Tool {
	return mcp.NewTool(
		"preproc_tree",
		mcp.WithDescription("Return the preprocessor symbol tree of the workspace: folder → #symbol → object file → line. Line nodes carry a target {path, line} with a 0-based line that can be passed to preproc_goto."),
		mcp.WithString("symbol",
			mcp.Description("Only return this symbol (exact, case-sensitive name without '#')")),
		mcp.WithString("folder",
			mcp.Description("Only return this workspace folder (case-insensitive)")),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
	)
}

// createPreprocTreeHandler creates the handler function for preproc_tree tool.
func createPreprocTreeHandler(source SnapshotSource) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		argsMap, ok := request.Params.Arguments.(map[string]interface{})
		if !ok {
			// No arguments at all is a valid unfiltered request
			argsMap = map[string]interface{}{}
		}

		var req TreeRequest
		var err error
		if req.Symbol, err = parseStringArg(argsMap, "symbol", false); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if req.Folder, err = parseStringArg(argsMap, "folder", false); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		snap := source.Current()
		if snap == nil {
			return mcp.NewToolResultError(explorer.ErrNotBuilt.Error()), nil
		}

		roots := tree.Filter(snap.Roots, req.Folder, req.Symbol)
		if roots == nil {
			roots = []*tree.Node{}
		}

		response := &TreeResponse{
			Snapshot: snap.ID,
			State:    source.State(),
			BuiltAt:  snap.BuiltAt,
			Counts:   tree.Count(roots),
			Roots:    roots,
		}

		jsonData, err := json.Marshal(response)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response: %w", err)
		}

		return mcp.NewToolResultText(string(jsonData)), nil
	}
}
