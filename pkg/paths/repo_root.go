package paths

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FindRepoRoot returns the innermost git repository root containing path.
// Both `.git` directories and worktree `.git` files are recognized.
func FindRepoRoot(path string) (string, error) {
	f, err := findClosestFile(string(filepath.Separator), path, func(s string) (bool, error) {
		dotGit := filepath.Join(s, ".git")

		fi, err := os.Lstat(dotGit)
		if err != nil {
			return false, fmt.Errorf("%s: %w", dotGit, err)
		}

		headPath := filepath.Join(dotGit, "HEAD")
		if !fi.IsDir() {
			gitDir, err := resolveGitFile(dotGit, s)
			if err != nil {
				return false, nil //nolint:nilerr // Malformed .git files are skipped.
			}

			headPath = filepath.Join(gitDir, "HEAD")
		}

		return isFile(headPath), nil
	})
	if err != nil {
		return "", fmt.Errorf(".git/HEAD: %w", err)
	}

	return f, nil
}

// resolveGitFile reads a worktree `.git` file of the form `gitdir: <path>`.
// Relative paths are resolved against baseDir.
func resolveGitFile(dotGitPath, baseDir string) (string, error) {
	f, err := os.Open(dotGitPath) //nolint:gosec // Joined from a walked directory.
	if err != nil {
		return "", fmt.Errorf("open git file: %w", err)
	}
	defer f.Close() //nolint:errcheck // Best-effort close.

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		return "", errors.New("empty git file")
	}

	gitDir, found := strings.CutPrefix(strings.TrimSpace(scanner.Text()), "gitdir: ")
	if !found {
		return "", errors.New("missing gitdir prefix")
	}

	if !filepath.IsAbs(gitDir) {
		gitDir = filepath.Join(baseDir, gitDir)
	}

	return filepath.Clean(gitDir), nil
}
