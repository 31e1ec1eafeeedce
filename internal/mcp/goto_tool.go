package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mvp-joe/preproc-explorer/internal/explorer"
	"github.com/mvp-joe/preproc-explorer/internal/tree"
)

// AddPreprocGotoTool registers the preproc_goto tool with an MCP server.
func AddPreprocGotoTool(s *server.MCPServer, source SnapshotSource) {
	s.AddTool(newPreprocGotoTool(), createPreprocGotoHandler(source))
}

func newPreprocGotoTool() mcp.Tool {
	return mcp.NewTool(
		"preproc_goto",
		mcp.WithDescription("Resolve a line target of the preprocessor symbol tree and return the current text of that line. Only targets present in the current tree are accepted."),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Absolute file path, as carried by a line node target")),
		mcp.WithNumber("line",
			mcp.Required(),
			mcp.Description("0-based line number, as carried by a line node target")),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
	)
}

// createPreprocGotoHandler creates the handler function for preproc_goto tool.
// Navigation failures are reported as tool errors and leave the tree untouched.
func createPreprocGotoHandler(source SnapshotSource) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		argsMap, ok := request.Params.Arguments.(map[string]interface{})
		if !ok {
			return mcp.NewToolResultError("invalid arguments format"), nil
		}

		var req GotoRequest
		var err error
		if req.Path, err = parseStringArg(argsMap, "path", true); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		line := parseIntArgPtr(argsMap, "line")
		if line == nil {
			return mcp.NewToolResultError("line parameter is required and must be an integer"), nil
		}
		req.Line = *line

		snap := source.Current()
		if snap == nil {
			return mcp.NewToolResultError(explorer.ErrNotBuilt.Error()), nil
		}

		target := tree.Target{Path: filepath.Clean(req.Path), Line: req.Line}
		if !hasTarget(snap.Roots, target) {
			return mcp.NewToolResultError(fmt.Sprintf("%s is not a location in the current tree", target.Tooltip())), nil
		}

		loc, err := explorer.Navigate(target)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		response := &GotoResponse{
			Location: loc,
			Tooltip:  target.Tooltip(),
		}

		jsonData, err := json.Marshal(response)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response: %w", err)
		}

		return mcp.NewToolResultText(string(jsonData)), nil
	}
}

func hasTarget(roots []*tree.Node, target tree.Target) bool {
	for _, t := range tree.Targets(roots) {
		if t == target {
			return true
		}
	}
	return false
}
