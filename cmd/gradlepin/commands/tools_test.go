package commands_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/gradlepin/pkg/dialect"
	"github.com/macropower/gradlepin/pkg/templates"
	"github.com/macropower/gradlepin/pkg/wrapper"
)

func TestSynthCmd(t *testing.T) {
	tcs := map[string]struct {
		wantErr error
		dialect string
		id      string
	}{
		"kotlin app": {
			dialect: "kotlin",
			id:      templates.App,
		},
		"groovy settings": {
			dialect: "groovy",
			id:      templates.Settings,
		},
		"wrapper": {
			dialect: "kotlin",
			id:      templates.Wrapper,
		},
		"unknown template": {
			dialect: "kotlin",
			id:      "gradle.properties",
			wantErr: templates.ErrUnknownTemplate,
		},
		"unknown dialect": {
			dialect: "scala",
			id:      templates.App,
			wantErr: dialect.ErrUnknownDialect,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			out, err := execute(t, "synth", "--dialect", tc.dialect, "--template", tc.id)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)

				return
			}

			require.NoError(t, err)

			d, err := dialect.Parse(tc.dialect)
			require.NoError(t, err)

			want, err := templates.Synthesize(d, tc.id)
			require.NoError(t, err)
			assert.Equal(t, want, out)
		})
	}
}

func TestDetectCmd(t *testing.T) {
	root := t.TempDir()
	android := filepath.Join(root, "android")
	require.NoError(t, os.MkdirAll(filepath.Join(android, "app"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(android, "settings.gradle"), nil, 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(android, "app", "build.gradle.kts"), nil, 0o600))
	require.NoError(t, os.MkdirAll(filepath.Join(android, "gradle", "wrapper"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(android, wrapper.File),
		[]byte("distributionUrl=https\\://services.gradle.org/distributions/gradle-8.6-bin.zip\n"), 0o600))

	out, err := execute(t, "detect", root)
	require.NoError(t, err)

	assert.Regexp(t, `settings\s+groovy\s+present\s+`+regexp.QuoteMeta(filepath.Join(android, "settings.gradle")), out)
	assert.Regexp(t, `root\s+kotlin\s+missing`, out)
	assert.Regexp(t, `app\s+kotlin\s+present`, out)
	assert.Contains(t, out, "distributionUrl=https\\://services.gradle.org/distributions/gradle-8.6-bin.zip")
}

func TestPolicyCmds(t *testing.T) {
	out, err := execute(t, "policy", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "gradle_version: \"8.6\"")
	assert.Contains(t, out, "android_gradle: 8.3.2")

	out, err = execute(t, "policy", "schema")
	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(out)))
	assert.Contains(t, out, "gradle_version")

	out, err = execute(t, "policy", "env")
	require.NoError(t, err)
	assert.Contains(t, out, "GRADLEPIN_GRADLE_VERSION\n")
}
