package explorer

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mvp-joe/preproc-explorer/internal/tree"
)

// ErrTargetGone is returned when a navigation target no longer exists on disk.
var ErrTargetGone = errors.New("navigation target no longer exists")

// Location is a resolved navigation target.
type Location struct {
	Path string `json:"path"`
	Line int    `json:"line"` // 0-based
	Text string `json:"text"`
}

// Navigate opens the target file and returns the text of the target line.
// A deleted file or a line past the end yields ErrTargetGone; the snapshot is
// not affected.
func Navigate(target tree.Target) (Location, error) {
	if target.Line < 0 {
		return Location{}, fmt.Errorf("%w: negative line %d", ErrTargetGone, target.Line)
	}

	f, err := os.Open(target.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Location{}, fmt.Errorf("%w: %s", ErrTargetGone, target.Path)
		}
		return Location{}, fmt.Errorf("failed to open %s: %w", target.Path, err)
	}
	defer f.Close()

	r := bufio.NewReader(f)
	for i := 0; ; i++ {
		line, err := r.ReadString('\n')
		if err != nil && err != io.EOF {
			return Location{}, fmt.Errorf("failed to read %s: %w", target.Path, err)
		}
		if i == target.Line {
			return Location{
				Path: target.Path,
				Line: target.Line,
				Text: strings.TrimRight(line, "\r\n"),
			}, nil
		}
		if err == io.EOF {
			return Location{}, fmt.Errorf("%w: %s has no line %d", ErrTargetGone, target.Path, target.Line+1)
		}
	}
}

// NavigateNode resolves a line node of the tree.
func NavigateNode(n *tree.Node) (Location, error) {
	target, ok := tree.TargetOf(n)
	if !ok {
		return Location{}, fmt.Errorf("node %q is not navigable", labelOf(n))
	}
	return Navigate(target)
}

func labelOf(n *tree.Node) string {
	if n == nil {
		return ""
	}
	return n.Label
}
