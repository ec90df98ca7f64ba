package paths_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/gradlepin/pkg/paths"
	"github.com/macropower/gradlepin/pkg/pinerrors"
)

func writeFiles(t *testing.T, root string, files ...string) {
	t.Helper()

	for _, f := range files {
		p := filepath.Join(root, f)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte("x"), 0o600))
	}
}

func TestFindAndroidRoot(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFiles(t, root,
		"repo/.git/HEAD",
		"repo/flutter/android/settings.gradle.kts",
		"repo/flutter/android/app/build.gradle.kts",
		"repo/flutter/android/app/src/main/AndroidManifest.xml",
		"repo/flutter/lib/main.dart",
		"repo/groovy/app/build.gradle",
		"repo/groovy/app/src/x",
		"repo/plain/README.md",
	)

	repo := filepath.Join(root, "repo")
	flutterAndroid := filepath.Join(repo, "flutter", "android")

	tcs := map[string]struct {
		err  error
		path string
		want string
	}{
		"flutter root": {
			path: filepath.Join(repo, "flutter"),
			want: flutterAndroid,
		},
		"android root": {
			path: flutterAndroid,
			want: flutterAndroid,
		},
		"below android root": {
			path: filepath.Join(flutterAndroid, "app", "src", "main"),
			want: flutterAndroid,
		},
		"file below android root": {
			path: filepath.Join(flutterAndroid, "app", "src", "main", "AndroidManifest.xml"),
			want: flutterAndroid,
		},
		"flutter sources": {
			path: filepath.Join(repo, "flutter", "lib"),
			want: flutterAndroid,
		},
		"app module only": {
			path: filepath.Join(repo, "groovy", "app", "src"),
			want: filepath.Join(repo, "groovy"),
		},
		"no project": {
			path: filepath.Join(repo, "plain"),
			err:  paths.ErrProjectNotFound,
		},
		"missing": {
			path: filepath.Join(repo, "nope"),
			err:  pinerrors.ErrMissingTarget,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := paths.FindAndroidRoot(tc.path)
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestFindAndroidRootStopsAtRepo(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFiles(t, root,
		"settings.gradle",
		"repo/.git/HEAD",
		"repo/sub/file",
	)

	_, err := paths.FindAndroidRoot(filepath.Join(root, "repo", "sub"))
	require.ErrorIs(t, err, paths.ErrProjectNotFound)
}

func TestFindRepoRoot(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFiles(t, root,
		"main/.git/HEAD",
		"main/a/b/c",
		"gitdirs/wt/HEAD",
	)

	wt := filepath.Join(root, "main", "a", "wt")
	require.NoError(t, os.MkdirAll(wt, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(wt, ".git"), []byte("gitdir: ../../../gitdirs/wt\n"), 0o600))

	got, err := paths.FindRepoRoot(filepath.Join(root, "main", "a", "b"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "main"), got)

	got, err = paths.FindRepoRoot(wt)
	require.NoError(t, err)
	assert.Equal(t, wt, got)
}

func TestIsAndroidRoot(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFiles(t, root, "a/settings.gradle", "b/app/build.gradle.kts")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "c", "settings.gradle.kts"), 0o755))

	assert.True(t, paths.IsAndroidRoot(filepath.Join(root, "a")))
	assert.True(t, paths.IsAndroidRoot(filepath.Join(root, "b")))
	assert.False(t, paths.IsAndroidRoot(filepath.Join(root, "c")))
}
