// Package render writes symbol trees as indented text, JSON or YAML.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mvp-joe/preproc-explorer/internal/tree"
	"gopkg.in/yaml.v3"
)

// Format names an output format.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Formats lists the supported output formats.
var Formats = []Format{FormatText, FormatJSON, FormatYAML}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	for _, f := range Formats {
		if strings.EqualFold(string(f), s) {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown output format %q (valid: text, json, yaml)", s)
}

// Write renders roots in the given format.
func Write(w io.Writer, format Format, roots []*tree.Node) error {
	switch format {
	case FormatJSON:
		return JSON(w, roots)
	case FormatYAML:
		return YAML(w, roots)
	case FormatText, "":
		return Text(w, roots)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// Text writes the tree with two-space indentation per level. Object groups
// show their type; line leaves show their path:line location.
func Text(w io.Writer, roots []*tree.Node) error {
	if len(roots) == 0 {
		_, err := fmt.Fprintln(w, "No preprocessor symbols found.")
		return err
	}

	var err error
	tree.Walk(roots, func(n *tree.Node, depth int) bool {
		if err != nil {
			return false
		}
		indent := strings.Repeat("  ", depth)
		switch n.Kind {
		case tree.KindObject:
			_, err = fmt.Fprintf(w, "%s%s [%s]\n", indent, n.Label, n.ObjectType)
		case tree.KindLine:
			target, _ := tree.TargetOf(n)
			_, err = fmt.Fprintf(w, "%s%s  %s\n", indent, n.Label, target.Tooltip())
		default:
			_, err = fmt.Fprintf(w, "%s%s\n", indent, n.Label)
		}
		return true
	})
	return err
}

// JSON writes the tree as an indented JSON array.
func JSON(w io.Writer, roots []*tree.Node) error {
	if roots == nil {
		roots = []*tree.Node{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(roots)
}

// YAML writes the tree as a YAML sequence.
func YAML(w io.Writer, roots []*tree.Node) error {
	if roots == nil {
		roots = []*tree.Node{}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(roots); err != nil {
		return err
	}
	return enc.Close()
}
