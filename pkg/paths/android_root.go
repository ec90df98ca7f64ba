package paths

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/macropower/gradlepin/pkg/dialect"
	"github.com/macropower/gradlepin/pkg/pinerrors"
)

// FlutterAndroidDir is the Android project directory inside a Flutter app.
const FlutterAndroidDir = "android"

var ErrProjectNotFound = errors.New("android project not found")

// FindAndroidRoot returns the Android project root for path. The closest
// matching ancestor wins. The search is bounded by the git repository
// containing path, or by the filesystem root outside of a repository.
func FindAndroidRoot(path string) (string, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("%w: %w", pinerrors.ErrMissingTarget, err)
	}

	if !fi.IsDir() {
		path = filepath.Dir(path)
	}

	bound, err := FindRepoRoot(path)
	if err != nil {
		bound = string(filepath.Separator)
	}

	var found string

	_, err = findClosestFile(bound, path, func(dir string) (bool, error) {
		switch {
		case IsAndroidRoot(dir):
			found = dir
		case IsAndroidRoot(filepath.Join(dir, FlutterAndroidDir)):
			found = filepath.Join(dir, FlutterAndroidDir)
		default:
			return false, nil
		}

		return true, nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrProjectNotFound, path, err)
	}

	return found, nil
}

// IsAndroidRoot reports whether dir holds a settings script or an app module
// build script in either dialect.
func IsAndroidRoot(dir string) bool {
	for _, c := range []dialect.Candidates{dialect.Settings, dialect.AppBuild} {
		for _, d := range []dialect.Dialect{dialect.Kotlin, dialect.Groovy} {
			if isFile(filepath.Join(dir, c.For(d))) {
				return true
			}
		}
	}

	return false
}

// findClosestFile walks from path upward toward root, returning the first
// directory where test returns true.
func findClosestFile(root, path string, test func(string) (bool, error)) (string, error) {
	rootAbs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("get absolute path: %w", err)
	}

	pathAbs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("get absolute path: %w", err)
	}

	if !within(rootAbs, pathAbs) {
		return "", pinerrors.ErrResolvedOutsideRoot
	}

	currentDir := pathAbs
	for {
		match, err := test(currentDir)
		if err == nil && match {
			return currentDir, nil
		}

		if currentDir == rootAbs {
			break
		}

		parent := filepath.Dir(currentDir)
		if parent == currentDir {
			break
		}

		currentDir = parent
	}

	return "", pinerrors.ErrFileNotFound
}

func within(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}

	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func isFile(path string) bool {
	fi, err := os.Stat(path)

	return err == nil && !fi.IsDir()
}
