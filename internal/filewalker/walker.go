package filewalker

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar"
	"github.com/rs/zerolog/log"
)

// Negate marks a pattern that removes previously matched paths.
const Negate = "!"

// Walker expands glob patterns into the list of files to scan.
type Walker struct {
	// Root is joined to relative patterns. Empty means the working directory.
	Root string
}

// NewWalker creates a Walker resolving patterns under root.
func NewWalker(root string) *Walker {
	return &Walker{Root: root}
}

// Expand resolves patterns relative to the working directory.
func Expand(patterns []string) ([]string, error) {
	return NewWalker("").Expand(patterns)
}

// Expand processes patterns in order. A pattern starting with "!" drops
// the paths matched so far that it matches; any other pattern appends its
// sorted matches. Directories and duplicates are skipped.
func (w *Walker) Expand(patterns []string) ([]string, error) {
	var files []string
	seen := make(map[string]bool)

	for _, pattern := range patterns {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" || pattern == Negate {
			continue
		}

		if strings.HasPrefix(pattern, Negate) {
			exclude := w.resolve(strings.TrimPrefix(pattern, Negate))
			kept := files[:0]
			for _, f := range files {
				ok, err := doublestar.PathMatch(exclude, f)
				if err != nil {
					return nil, fmt.Errorf("match pattern %s: %w", pattern, err)
				}
				if ok {
					delete(seen, f)
					continue
				}
				kept = append(kept, f)
			}
			files = kept
			continue
		}

		matches, err := doublestar.Glob(w.resolve(pattern))
		if err != nil {
			return nil, fmt.Errorf("expand pattern %s: %w", pattern, err)
		}
		sort.Strings(matches)

		for _, m := range matches {
			if seen[m] {
				continue
			}
			info, err := os.Stat(m)
			if err != nil {
				log.Warn().Err(err).Str("path", m).Msg("Error reading path")
				continue
			}
			if info.IsDir() {
				continue
			}
			seen[m] = true
			files = append(files, m)
		}
		if len(matches) == 0 {
			log.Debug().Str("pattern", pattern).Msg("Pattern matched no files")
		}
	}

	log.Info().Int("count", len(files)).Int("patterns", len(patterns)).Msg("Discovered files")
	return files, nil
}

func (w *Walker) resolve(pattern string) string {
	if w.Root == "" || filepath.IsAbs(pattern) {
		return filepath.Clean(pattern)
	}
	return filepath.Join(w.Root, pattern)
}
