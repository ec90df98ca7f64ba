package converge

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/macropower/gradlepin/pkg/pinerrors"
)

// Discover expands a doublestar glob, relative to base unless absolute, into
// candidate project directories. Matched files contribute their directory.
// The result is sorted and free of duplicates.
func Discover(base, pattern string) ([]string, error) {
	pat := filepath.FromSlash(pattern)
	if !filepath.IsAbs(pat) {
		pat = filepath.Join(base, pat)
	}

	matches, err := doublestar.FilepathGlob(filepath.Clean(pat))
	if err != nil {
		return nil, fmt.Errorf("%w: glob %q: %w", pinerrors.ErrInvalidArguments, pattern, err)
	}

	dirs := []string{}

	for _, m := range matches {
		fi, err := os.Stat(m)
		if err != nil {
			continue
		}

		dir := m
		if !fi.IsDir() {
			dir = filepath.Dir(m)
		}

		if !slices.Contains(dirs, dir) {
			dirs = append(dirs, dir)
		}
	}

	slices.Sort(dirs)

	return dirs, nil
}
