// Package tree folds a symbol index into the display hierarchy
// folder → symbol → object file → line.
//
// The tree is rebuilt from scratch on every call to Build. Sibling order is
// deterministic at every level: folders in first-seen order, symbols
// alphabetically ignoring case, object groups by object type ignoring case
// (ties keep encounter order), lines ascending.
package tree

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mvp-joe/preproc-explorer/internal/object"
	"github.com/mvp-joe/preproc-explorer/internal/symbols"
)

// DefaultFolder names the folder for occurrences whose file is outside every
// known folder.
const DefaultFolder = "Other"

// Kind identifies the node variant.
type Kind string

const (
	KindFolder Kind = "folder"
	KindSymbol Kind = "symbol"
	KindObject Kind = "object"
	KindLine   Kind = "line"
)

// Node is one element of the display tree. Fields not relevant to the node's
// Kind are left zero.
type Node struct {
	Kind  Kind   `json:"kind" yaml:"kind"`
	Label string `json:"label" yaml:"label"`

	// Name is the folder name or symbol name.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// Object group fields.
	ObjectType object.Type `json:"object_type,omitempty" yaml:"object_type,omitempty"`
	FileName   string      `json:"file_name,omitempty" yaml:"file_name,omitempty"`
	Icon       string      `json:"icon,omitempty" yaml:"icon,omitempty"`

	// Path is the file of an object group.
	Path string `json:"path,omitempty" yaml:"path,omitempty"`

	// Target is set only on line nodes.
	Target *Target `json:"target,omitempty" yaml:"target,omitempty"`

	Children []*Node `json:"children,omitempty" yaml:"children,omitempty"`
}

// Target is the navigation destination of a line node.
type Target struct {
	Path string `json:"path" yaml:"path"`
	Line int    `json:"line" yaml:"line"` // 0-based
}

// Tooltip renders the target as path:line with a 1-based line.
func (t Target) Tooltip() string {
	return fmt.Sprintf("%s:%d", t.Path, t.Line+1)
}

// FolderFunc maps an occurrence to the name of its containing folder.
// An empty result is treated as DefaultFolder.
type FolderFunc func(occ symbols.Occurrence) string

// TargetOf returns the navigation target of a line node.
func TargetOf(n *Node) (Target, bool) {
	if n == nil || n.Kind != KindLine || n.Target == nil {
		return Target{}, false
	}
	return *n.Target, true
}

type objectKey struct {
	objectType object.Type
	fileName   string
	path       string
}

type objectGroup struct {
	key   objectKey
	lines map[int]struct{}
}

type symbolGroup struct {
	objects []*objectGroup
	byKey   map[objectKey]*objectGroup
}

type folderGroup struct {
	name    string
	symbols map[string]*symbolGroup
	order   []string
}

// Build groups the index by folder, symbol and object file.
func Build(idx *symbols.Index, folderOf FolderFunc) []*Node {
	if idx == nil {
		return nil
	}

	var folders []*folderGroup
	byName := make(map[string]*folderGroup)

	for _, symbol := range idx.Symbols() {
		for _, occ := range idx.Occurrences(symbol) {
			name := DefaultFolder
			if folderOf != nil {
				if f := folderOf(occ); f != "" {
					name = f
				}
			}

			fg, ok := byName[name]
			if !ok {
				fg = &folderGroup{name: name, symbols: make(map[string]*symbolGroup)}
				byName[name] = fg
				folders = append(folders, fg)
			}

			sg, ok := fg.symbols[symbol]
			if !ok {
				sg = &symbolGroup{byKey: make(map[objectKey]*objectGroup)}
				fg.symbols[symbol] = sg
				fg.order = append(fg.order, symbol)
			}

			key := objectKey{objectType: occ.ObjectType, fileName: occ.FileName, path: occ.Path}
			og, ok := sg.byKey[key]
			if !ok {
				og = &objectGroup{key: key, lines: make(map[int]struct{})}
				sg.byKey[key] = og
				sg.objects = append(sg.objects, og)
			}
			og.lines[occ.Line] = struct{}{}
		}
	}

	roots := make([]*Node, 0, len(folders))
	for _, fg := range folders {
		roots = append(roots, buildFolder(fg))
	}
	return roots
}

func buildFolder(fg *folderGroup) *Node {
	names := append([]string(nil), fg.order...)
	sort.SliceStable(names, func(i, j int) bool {
		return strings.ToLower(names[i]) < strings.ToLower(names[j])
	})

	folder := &Node{
		Kind:     KindFolder,
		Label:    fg.name,
		Name:     fg.name,
		Children: make([]*Node, 0, len(names)),
	}
	for _, name := range names {
		folder.Children = append(folder.Children, buildSymbol(name, fg.symbols[name]))
	}
	return folder
}

func buildSymbol(name string, sg *symbolGroup) *Node {
	objects := append([]*objectGroup(nil), sg.objects...)
	sort.SliceStable(objects, func(i, j int) bool {
		return strings.ToLower(string(objects[i].key.objectType)) < strings.ToLower(string(objects[j].key.objectType))
	})

	sym := &Node{
		Kind:     KindSymbol,
		Label:    "#" + name,
		Name:     name,
		Children: make([]*Node, 0, len(objects)),
	}
	for _, og := range objects {
		sym.Children = append(sym.Children, buildObject(og))
	}
	return sym
}

func buildObject(og *objectGroup) *Node {
	lines := make([]int, 0, len(og.lines))
	for l := range og.lines {
		lines = append(lines, l)
	}
	sort.Ints(lines)

	obj := &Node{
		Kind:       KindObject,
		Label:      og.key.fileName,
		ObjectType: og.key.objectType,
		FileName:   og.key.fileName,
		Icon:       og.key.objectType.Icon(),
		Path:       og.key.path,
		Children:   make([]*Node, 0, len(lines)),
	}
	for _, l := range lines {
		obj.Children = append(obj.Children, &Node{
			Kind:   KindLine,
			Label:  fmt.Sprintf("Line %d", l+1),
			Target: &Target{Path: og.key.path, Line: l},
		})
	}
	return obj
}
