package tree

import (
	"strings"
	"testing"

	"github.com/mvp-joe/preproc-explorer/internal/object"
	"github.com/mvp-joe/preproc-explorer/internal/symbols"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for tree:
// - Definition in a table and usage in a codeunit yield one symbol with
//   Codeunit before Table, each with one 1-based line leaf
// - Symbols sort case-insensitively but group case-sensitively
// - Folders keep first-seen order; empty folder names fall back to Other
// - Object groups with the same type keep encounter order
// - Repeated lines in one file collapse into a single leaf
// - Building twice from the same index yields identical trees
// - TargetOf only resolves line nodes
// - Count, Targets and Filter walk the tree in order
// - Nil index yields no roots

func oneFolder(symbols.Occurrence) string { return "app" }

func buildFixture(t *testing.T) []*Node {
	t.Helper()

	table := "table 50100 \"My Table\"\n{\n    // fields\n#define DEBUG\n}\n"
	codeunit := "codeunit 50101 MyCodeunit\n{\n\n\n\n\n\n\n\n\n#if DEBUG\n#endif\n}\n"

	idx := symbols.BuildIndex([]symbols.SourceFile{
		{Path: "/ws/app/MyTable.Table.al", Text: table},
		{Path: "/ws/app/MyCodeunit.Codeunit.al", Text: codeunit},
	})
	return Build(idx, oneFolder)
}

func TestBuild_DefinitionAndUsageAcrossObjects(t *testing.T) {
	t.Parallel()

	roots := buildFixture(t)

	require.Len(t, roots, 1)
	folder := roots[0]
	assert.Equal(t, KindFolder, folder.Kind)
	assert.Equal(t, "app", folder.Label)

	require.Len(t, folder.Children, 1)
	sym := folder.Children[0]
	assert.Equal(t, KindSymbol, sym.Kind)
	assert.Equal(t, "DEBUG", sym.Name)
	assert.Equal(t, "#DEBUG", sym.Label)

	require.Len(t, sym.Children, 2)
	assert.Equal(t, object.TypeCodeunit, sym.Children[0].ObjectType)
	assert.Equal(t, "MyCodeunit.Codeunit.al", sym.Children[0].Label)
	assert.Equal(t, "symbol-method", sym.Children[0].Icon)
	assert.Equal(t, object.TypeTable, sym.Children[1].ObjectType)

	require.Len(t, sym.Children[0].Children, 1)
	line := sym.Children[0].Children[0]
	assert.Equal(t, "Line 11", line.Label)
	target, ok := TargetOf(line)
	require.True(t, ok)
	assert.Equal(t, Target{Path: "/ws/app/MyCodeunit.Codeunit.al", Line: 10}, target)

	require.Len(t, sym.Children[1].Children, 1)
	assert.Equal(t, "Line 4", sym.Children[1].Children[0].Label)
	assert.Equal(t, "/ws/app/MyTable.Table.al:4", sym.Children[1].Children[0].Target.Tooltip())
}

func TestBuild_SymbolCaseHandling(t *testing.T) {
	t.Parallel()

	idx := symbols.BuildIndex([]symbols.SourceFile{
		{Path: "a.al", Text: "#if zeta\n#if Foo\n#if alpha\n#if FOO\n#if Beta\n"},
	})
	roots := Build(idx, oneFolder)

	require.Len(t, roots, 1)
	var names []string
	for _, s := range roots[0].Children {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"alpha", "Beta", "Foo", "FOO", "zeta"}, names)
}

func TestBuild_FolderOrderAndFallback(t *testing.T) {
	t.Parallel()

	idx := symbols.BuildIndex([]symbols.SourceFile{
		{Path: "/ws/second/a.al", Text: "#if A\n"},
		{Path: "/outside/b.al", Text: "#if A\n"},
		{Path: "/ws/first/c.al", Text: "#if B\n"},
	})

	folderOf := func(occ symbols.Occurrence) string {
		switch {
		case strings.HasPrefix(occ.Path, "/ws/second/"):
			return "second"
		case strings.HasPrefix(occ.Path, "/ws/first/"):
			return "first"
		}
		return ""
	}

	roots := Build(idx, folderOf)
	require.Len(t, roots, 3)
	assert.Equal(t, "second", roots[0].Name)
	assert.Equal(t, DefaultFolder, roots[1].Name)
	assert.Equal(t, "first", roots[2].Name)

	// Nil folder function puts everything under Other.
	roots = Build(idx, nil)
	require.Len(t, roots, 1)
	assert.Equal(t, DefaultFolder, roots[0].Label)
}

func TestBuild_StableObjectOrderAndDistinctLines(t *testing.T) {
	t.Parallel()

	idx := symbols.NewIndex()
	idx.Merge([]symbols.Occurrence{
		{Symbol: "S", Path: "/z.al", FileName: "z.al", ObjectType: object.TypePage, Line: 7},
		{Symbol: "S", Path: "/a.al", FileName: "a.al", ObjectType: object.TypePage, Line: 3},
		{Symbol: "S", Path: "/e.al", FileName: "e.al", ObjectType: object.TypeEnum, Line: 1},
		{Symbol: "S", Path: "/z.al", FileName: "z.al", ObjectType: object.TypePage, Line: 2},
		{Symbol: "S", Path: "/z.al", FileName: "z.al", ObjectType: object.TypePage, Line: 7},
	})

	roots := Build(idx, oneFolder)
	objs := roots[0].Children[0].Children
	require.Len(t, objs, 3)
	assert.Equal(t, "e.al", objs[0].Label)
	assert.Equal(t, "z.al", objs[1].Label)
	assert.Equal(t, "a.al", objs[2].Label)

	require.Len(t, objs[1].Children, 2)
	assert.Equal(t, "Line 3", objs[1].Children[0].Label)
	assert.Equal(t, "Line 8", objs[1].Children[1].Label)
}

func TestBuild_Idempotent(t *testing.T) {
	t.Parallel()

	first := buildFixture(t)
	second := buildFixture(t)
	assert.Equal(t, first, second)
	assert.Equal(t, Count(first), Count(second))
}

func TestBuild_NilAndEmpty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, Build(nil, oneFolder))
	assert.Empty(t, Build(symbols.NewIndex(), oneFolder))
}

func TestTargetOf_NonLineNodes(t *testing.T) {
	t.Parallel()

	roots := buildFixture(t)
	_, ok := TargetOf(roots[0])
	assert.False(t, ok)
	_, ok = TargetOf(nil)
	assert.False(t, ok)
}

func TestCountAndTargets(t *testing.T) {
	t.Parallel()

	roots := buildFixture(t)
	assert.Equal(t, Counts{Folders: 1, Symbols: 1, Objects: 2, Lines: 2}, Count(roots))
	assert.Equal(t, []Target{
		{Path: "/ws/app/MyCodeunit.Codeunit.al", Line: 10},
		{Path: "/ws/app/MyTable.Table.al", Line: 3},
	}, Targets(roots))
}

func TestFilter(t *testing.T) {
	t.Parallel()

	idx := symbols.BuildIndex([]symbols.SourceFile{
		{Path: "a.al", Text: "#if A or B\n"},
	})
	roots := Build(idx, oneFolder)

	filtered := Filter(roots, "", "B")
	require.Len(t, filtered, 1)
	require.Len(t, filtered[0].Children, 1)
	assert.Equal(t, "B", filtered[0].Children[0].Name)
	// The input tree is untouched.
	assert.Len(t, roots[0].Children, 2)

	assert.Len(t, Filter(roots, "APP", ""), 1)
	assert.Empty(t, Filter(roots, "other", ""))
	assert.Empty(t, Filter(roots, "", "missing"))
}
