package templates_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/gradlepin/pkg/blockdoc"
	"github.com/macropower/gradlepin/pkg/dialect"
	"github.com/macropower/gradlepin/pkg/templates"
)

func TestSynthesizeGradle(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		id      string
		paths   []string
		dialect dialect.Dialect
	}{
		"kotlin app": {
			id:      templates.App,
			dialect: dialect.Kotlin,
			paths:   []string{"android.compileOptions", "android.packaging.resources", "dependencies"},
		},
		"groovy app": {
			id:      templates.App,
			dialect: dialect.Groovy,
			paths:   []string{"android.compileOptions", "android.packagingOptions.resources", "dependencies"},
		},
		"kotlin settings": {
			id:      templates.Settings,
			dialect: dialect.Kotlin,
			paths:   []string{"pluginManagement.repositories", "plugins"},
		},
		"groovy settings": {
			id:      templates.Settings,
			dialect: dialect.Groovy,
			paths:   []string{"pluginManagement.repositories", "plugins"},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			text, err := templates.Synthesize(tc.dialect, tc.id)
			require.NoError(t, err)
			require.NotEmpty(t, text)

			doc := blockdoc.Parse(text)
			require.False(t, doc.Degraded())
			assert.Equal(t, text, doc.String())

			for _, p := range tc.paths {
				assert.NotNil(t, doc.Find(p), p)
			}
		})
	}
}

func TestSynthesizeDialectSpecific(t *testing.T) {
	t.Parallel()

	kts, err := templates.Synthesize(dialect.Kotlin, templates.App)
	require.NoError(t, err)
	assert.Contains(t, kts, "isCoreLibraryDesugaringEnabled = true")

	groovy, err := templates.Synthesize(dialect.Groovy, templates.App)
	require.NoError(t, err)
	assert.Contains(t, groovy, "coreLibraryDesugaringEnabled true")
}

func TestSynthesizeShared(t *testing.T) {
	t.Parallel()

	for _, id := range []string{templates.Manifest, templates.Wrapper} {
		kts, err := templates.Synthesize(dialect.Kotlin, id)
		require.NoError(t, err)

		groovy, err := templates.Synthesize(dialect.Groovy, id)
		require.NoError(t, err)

		assert.Equal(t, kts, groovy, id)
	}

	wrapper, err := templates.Synthesize(dialect.Kotlin, templates.Wrapper)
	require.NoError(t, err)
	assert.Contains(t, wrapper, "distributionUrl=")
}

func TestSynthesizeUnknown(t *testing.T) {
	t.Parallel()

	_, err := templates.Synthesize(dialect.Kotlin, "gradle.properties")
	require.ErrorIs(t, err, templates.ErrUnknownTemplate)

	_, err = templates.Synthesize(dialect.Dialect(7), templates.App)
	require.ErrorIs(t, err, dialect.ErrUnknownDialect)
}
