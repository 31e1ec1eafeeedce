package symbols

import (
	"testing"

	"github.com/mvp-joe/preproc-explorer/internal/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for symbol index:
// - ScanFile records definitions with column of the #define statement
// - ScanFile records each usage token with its substring column
// - ScanFile skips commented directives
// - ScanFile tags every occurrence with the file's object type and file name
// - BuildIndex keeps symbol insertion order across files
// - BuildIndex groups case-sensitively
// - Empty input yields an empty index

func TestScanFile_DefinitionsAndUsages(t *testing.T) {
	t.Parallel()

	text := "table 50100 \"My Table\"\n{\n#define DEBUG\n#if DEBUG and not TRACE\n#endif\n}\n"
	occs := ScanFile("/ws/app/MyTable.Table.al", text)

	require.Len(t, occs, 3)

	assert.Equal(t, Occurrence{
		Symbol: "DEBUG", Path: "/ws/app/MyTable.Table.al", FileName: "MyTable.Table.al",
		ObjectType: object.TypeTable, Line: 2, Column: 0, Kind: KindDefinition,
	}, occs[0])

	assert.Equal(t, "DEBUG", occs[1].Symbol)
	assert.Equal(t, 3, occs[1].Line)
	assert.Equal(t, 4, occs[1].Column)
	assert.Equal(t, KindUsage, occs[1].Kind)

	assert.Equal(t, "TRACE", occs[2].Symbol)
	assert.Equal(t, 18, occs[2].Column)
}

func TestScanFile_SkipsCommentedDirectives(t *testing.T) {
	t.Parallel()

	text := "codeunit 1 C\n// #define OFF\n   //#if OFF\nx; // #if OFF\n#if ON\n"
	occs := ScanFile("c.al", text)

	require.Len(t, occs, 1)
	assert.Equal(t, "ON", occs[0].Symbol)
	assert.Equal(t, 4, occs[0].Line)
}

func TestScanFile_NoDirectives(t *testing.T) {
	t.Parallel()

	assert.Empty(t, ScanFile("plain.al", "page 1 P\n{\n}\n"))
	assert.Empty(t, ScanFile("empty.al", ""))
}

func TestBuildIndex_OrderAndCase(t *testing.T) {
	t.Parallel()

	idx := BuildIndex([]SourceFile{
		{Path: "a.al", Text: "#if Foo or Bar\n#define FOO\n"},
		{Path: "b.al", Text: "#ifdef Bar\n#if Foo\n"},
	})

	assert.Equal(t, []string{"Foo", "Bar", "FOO"}, idx.Symbols())
	assert.Equal(t, 3, idx.Len())
	assert.Equal(t, 5, idx.Total())

	foo := idx.Occurrences("Foo")
	require.Len(t, foo, 2)
	assert.Equal(t, "a.al", foo[0].Path)
	assert.Equal(t, "b.al", foo[1].Path)
	assert.Equal(t, 1, foo[1].Line)

	assert.Len(t, idx.Occurrences("FOO"), 1)
	assert.Empty(t, idx.Occurrences("missing"))
}

func TestBuildIndex_Empty(t *testing.T) {
	t.Parallel()

	idx := BuildIndex(nil)
	assert.Equal(t, 0, idx.Len())
	assert.Empty(t, idx.Symbols())
}

func TestIndex_SymbolsIsACopy(t *testing.T) {
	t.Parallel()

	idx := NewIndex()
	idx.Add(Occurrence{Symbol: "A"})
	syms := idx.Symbols()
	syms[0] = "mutated"
	assert.Equal(t, []string{"A"}, idx.Symbols())
}
