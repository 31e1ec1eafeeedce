package tree

import "strings"

// Walk visits every node depth-first in sibling order. Returning false from fn
// skips the node's children.
func Walk(roots []*Node, fn func(n *Node, depth int) bool) {
	var visit func(nodes []*Node, depth int)
	visit = func(nodes []*Node, depth int) {
		for _, n := range nodes {
			if fn(n, depth) {
				visit(n.Children, depth+1)
			}
		}
	}
	visit(roots, 0)
}

// Counts is the number of nodes of each kind in a tree.
type Counts struct {
	Folders int `json:"folders"`
	Symbols int `json:"symbols"`
	Objects int `json:"objects"`
	Lines   int `json:"lines"`
}

// Count tallies nodes by kind.
func Count(roots []*Node) Counts {
	var c Counts
	Walk(roots, func(n *Node, _ int) bool {
		switch n.Kind {
		case KindFolder:
			c.Folders++
		case KindSymbol:
			c.Symbols++
		case KindObject:
			c.Objects++
		case KindLine:
			c.Lines++
		}
		return true
	})
	return c
}

// Targets returns the navigation targets of every line node in tree order.
func Targets(roots []*Node) []Target {
	var out []Target
	Walk(roots, func(n *Node, _ int) bool {
		if t, ok := TargetOf(n); ok {
			out = append(out, t)
		}
		return true
	})
	return out
}

// Filter returns the folders and symbols matching the given names. Empty
// names match everything. Symbol names match exactly; folder names ignore case.
// Nodes are shared with the input, not copied.
func Filter(roots []*Node, folder, symbol string) []*Node {
	var out []*Node
	for _, f := range roots {
		if folder != "" && !strings.EqualFold(f.Name, folder) {
			continue
		}
		if symbol == "" {
			out = append(out, f)
			continue
		}

		var kept []*Node
		for _, s := range f.Children {
			if s.Name == symbol {
				kept = append(kept, s)
			}
		}
		if len(kept) == 0 {
			continue
		}
		out = append(out, &Node{
			Kind:     f.Kind,
			Label:    f.Label,
			Name:     f.Name,
			Children: kept,
		})
	}
	return out
}
