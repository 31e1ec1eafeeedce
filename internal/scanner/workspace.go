package scanner

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mvp-joe/preproc-explorer/internal/symbols"
	"github.com/mvp-joe/preproc-explorer/internal/tree"
)

// Folder is a named project root in a multi-root workspace.
type Folder struct {
	Name string
	Path string // absolute
}

// Workspace resolves files to the folder that contains them.
type Workspace struct {
	folders []Folder
}

// NewWorkspace makes every folder path absolute. Relative paths are resolved
// against baseDir. Folders with an empty name are named after their directory.
func NewWorkspace(baseDir string, folders []Folder) (*Workspace, error) {
	ws := &Workspace{folders: make([]Folder, 0, len(folders))}
	for _, f := range folders {
		path := f.Path
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve folder %q: %w", f.Path, err)
		}
		name := f.Name
		if name == "" {
			name = filepath.Base(abs)
		}
		ws.folders = append(ws.folders, Folder{Name: name, Path: abs})
	}
	return ws, nil
}

// Folders returns the workspace folders in configuration order.
func (ws *Workspace) Folders() []Folder {
	out := make([]Folder, len(ws.folders))
	copy(out, ws.folders)
	return out
}

// FolderOf returns the name of the innermost folder containing path, or
// tree.DefaultFolder.
func (ws *Workspace) FolderOf(path string) string {
	best := ""
	bestLen := -1
	for _, f := range ws.folders {
		if !contains(f.Path, path) {
			continue
		}
		if len(f.Path) > bestLen {
			best, bestLen = f.Name, len(f.Path)
		}
	}
	if best == "" {
		return tree.DefaultFolder
	}
	return best
}

// FolderFunc adapts FolderOf to the tree builder.
func (ws *Workspace) FolderFunc() tree.FolderFunc {
	return func(occ symbols.Occurrence) string {
		return ws.FolderOf(occ.Path)
	}
}

func contains(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
