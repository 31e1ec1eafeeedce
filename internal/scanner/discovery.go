package scanner

import (
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
	"github.com/rs/zerolog"
)

// compiledPattern holds both the pattern string and compiled glob
type compiledPattern struct {
	pattern string
	glob    glob.Glob
}

// FileDiscovery finds source files under a root with include and ignore globs.
// Patterns are matched against slash-separated paths relative to the root.
type FileDiscovery struct {
	includePatterns []compiledPattern
	ignorePatterns  []compiledPattern
	logger          zerolog.Logger
}

// NewFileDiscovery compiles the include and ignore patterns.
func NewFileDiscovery(includePatterns, ignorePatterns []string, logger zerolog.Logger) (*FileDiscovery, error) {
	fd := &FileDiscovery{logger: logger}

	var err error
	if fd.includePatterns, err = compilePatterns(includePatterns); err != nil {
		return nil, err
	}
	if fd.ignorePatterns, err = compilePatterns(ignorePatterns); err != nil {
		return nil, err
	}
	return fd, nil
}

func compilePatterns(patterns []string) ([]compiledPattern, error) {
	out := make([]compiledPattern, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, err
		}
		out = append(out, compiledPattern{pattern: pattern, glob: g})
	}
	return out, nil
}

// Discover walks rootDir and returns matching files as absolute paths in walk
// (lexical) order. Unreadable subdirectories are logged and skipped; an
// unreadable root is an error.
func (fd *FileDiscovery) Discover(rootDir string) ([]string, error) {
	rootDir, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, err
	}

	files := []string{}
	err = filepath.WalkDir(rootDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == rootDir {
				return err
			}
			fd.logger.Warn().Err(err).Str("path", path).Msg("skipping unreadable path")
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		relPath, err := filepath.Rel(rootDir, path)
		if err != nil {
			return err
		}
		relPath = filepath.ToSlash(relPath)

		if d.IsDir() {
			if relPath != "." && fd.shouldIgnore(relPath) {
				return filepath.SkipDir
			}
			return nil
		}

		if fd.shouldIgnore(relPath) {
			return nil
		}
		if fd.matchesAnyPattern(relPath, fd.includePatterns) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return files, nil
}

// Match reports whether a path relative to a scan root would be discovered.
func (fd *FileDiscovery) Match(relPath string) bool {
	relPath = filepath.ToSlash(relPath)
	return !fd.shouldIgnore(relPath) && fd.matchesAnyPattern(relPath, fd.includePatterns)
}

// shouldIgnore checks if a path matches any ignore pattern.
func (fd *FileDiscovery) shouldIgnore(relPath string) bool {
	// Always ignore the tool's own directory
	if strings.HasPrefix(relPath, ".preproc/") || relPath == ".preproc" {
		return true
	}

	if fd.matchesAnyPattern(relPath, fd.ignorePatterns) {
		return true
	}

	// Also check if this is a directory that would match with /** suffix
	// For example, "node_modules" should match pattern "node_modules/**"
	pathWithSuffix := relPath + "/**"
	return fd.matchesAnyPattern(pathWithSuffix, fd.ignorePatterns)
}

// matchesAnyPattern checks if a path matches any of the given patterns.
func (fd *FileDiscovery) matchesAnyPattern(path string, patterns []compiledPattern) bool {
	for _, cp := range patterns {
		if cp.glob.Match(path) {
			return true
		}
	}

	// Special handling: if path is in root (no slash), also try matching against
	// patterns with **/ prefix removed. This makes "**/*.al" match both "Table.al"
	// and "src/Table.al" as users would expect.
	if !strings.Contains(path, "/") {
		for _, cp := range patterns {
			if strings.HasPrefix(cp.pattern, "**/") {
				simplified := strings.TrimPrefix(cp.pattern, "**/")
				if simplifiedGlob, err := glob.Compile(simplified, '/'); err == nil {
					if simplifiedGlob.Match(path) {
						return true
					}
				}
			}
		}
	}

	return false
}
