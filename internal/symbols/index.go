// Package symbols builds the flat preprocessor symbol index: every definition
// and usage of a symbol, keyed by symbol name, in scan order.
package symbols

import (
	"strings"

	"github.com/mvp-joe/preproc-explorer/internal/directive"
	"github.com/mvp-joe/preproc-explorer/internal/object"
)

// Kind distinguishes a #define from a reference in a conditional directive.
type Kind string

const (
	KindDefinition Kind = "definition"
	KindUsage      Kind = "usage"
)

// Occurrence is one appearance of a symbol. Line and Column are 0-based.
type Occurrence struct {
	Symbol     string      `json:"symbol" yaml:"symbol"`
	Path       string      `json:"path" yaml:"path"`
	FileName   string      `json:"file_name" yaml:"file_name"`
	ObjectType object.Type `json:"object_type" yaml:"object_type"`
	Line       int         `json:"line" yaml:"line"`
	Column     int         `json:"column" yaml:"column"`
	Kind       Kind        `json:"kind" yaml:"kind"`
}

// SourceFile is a file path with its full text.
type SourceFile struct {
	Path string
	Text string
}

// Index maps symbol names to their occurrences. Symbols are case-sensitive
// and iterate in the order they were first added.
type Index struct {
	order   []string
	entries map[string][]Occurrence
}

// NewIndex creates an empty index.
func NewIndex() *Index {
	return &Index{entries: make(map[string][]Occurrence)}
}

// Add appends an occurrence to its symbol's entry, creating the entry if absent.
func (idx *Index) Add(occ Occurrence) {
	if _, ok := idx.entries[occ.Symbol]; !ok {
		idx.order = append(idx.order, occ.Symbol)
	}
	idx.entries[occ.Symbol] = append(idx.entries[occ.Symbol], occ)
}

// Merge adds a batch of occurrences in order.
func (idx *Index) Merge(occs []Occurrence) {
	for _, occ := range occs {
		idx.Add(occ)
	}
}

// Symbols returns symbol names in first-insertion order.
func (idx *Index) Symbols() []string {
	out := make([]string, len(idx.order))
	copy(out, idx.order)
	return out
}

// Occurrences returns the occurrences recorded for symbol, in scan order.
func (idx *Index) Occurrences(symbol string) []Occurrence {
	return idx.entries[symbol]
}

// Len returns the number of distinct symbols.
func (idx *Index) Len() int {
	return len(idx.order)
}

// Total returns the number of occurrences across all symbols.
func (idx *Index) Total() int {
	n := 0
	for _, occs := range idx.entries {
		n += len(occs)
	}
	return n
}

// ScanFile extracts every occurrence from one file. The file is classified
// once; commented lines are skipped; both the definition and the usage check
// run on every other line.
func ScanFile(path, text string) []Occurrence {
	info := object.Classify(text, path)

	var occs []Occurrence
	for i, line := range strings.Split(text, "\n") {
		if directive.IsCommented(line) {
			continue
		}

		if def, ok := directive.ExtractDefinition(line); ok {
			occs = append(occs, Occurrence{
				Symbol:     def.Name,
				Path:       path,
				FileName:   info.FileName,
				ObjectType: info.Type,
				Line:       i,
				Column:     def.Column,
				Kind:       KindDefinition,
			})
		}

		for _, symbol := range directive.ExtractUsedSymbols(line) {
			occs = append(occs, Occurrence{
				Symbol:     symbol,
				Path:       path,
				FileName:   info.FileName,
				ObjectType: info.Type,
				Line:       i,
				Column:     directive.SymbolColumn(line, symbol),
				Kind:       KindUsage,
			})
		}
	}
	return occs
}

// BuildIndex scans files in order and returns the combined index.
func BuildIndex(files []SourceFile) *Index {
	idx := NewIndex()
	for _, f := range files {
		idx.Merge(ScanFile(f.Path, f.Text))
	}
	return idx
}
