// Package templates holds the static documents written when a project has no
// file for a target yet.
package templates

import (
	"embed"
	"errors"
	"fmt"
	"slices"

	"github.com/macropower/gradlepin/pkg/dialect"
)

// Template identifiers.
const (
	App      = "app"
	Settings = "settings"
	Manifest = "manifest"
	Wrapper  = "wrapper"
)

var ErrUnknownTemplate = errors.New("unknown template")

//go:embed files
var files embed.FS

// IDs lists every known template id.
func IDs() []string {
	return []string{App, Settings, Manifest, Wrapper}
}

// Gradle reports whether the template is a Gradle script, and so has a
// separate variant per dialect.
func Gradle(id string) bool {
	return id == App || id == Settings
}

// Synthesize returns the template text for (d, id). Templates that are not
// Gradle scripts ignore d.
func Synthesize(d dialect.Dialect, id string) (string, error) {
	name, err := fileName(d, id)
	if err != nil {
		return "", err
	}

	data, err := files.ReadFile("files/" + name)
	if err != nil {
		return "", fmt.Errorf("read template %s: %w", name, err)
	}

	return string(data), nil
}

func fileName(d dialect.Dialect, id string) (string, error) {
	if !slices.Contains(IDs(), id) {
		return "", fmt.Errorf("%w: %q", ErrUnknownTemplate, id)
	}

	switch id {
	case Manifest:
		return "AndroidManifest.xml", nil
	case Wrapper:
		return "gradle-wrapper.properties", nil
	}

	if d != dialect.Kotlin && d != dialect.Groovy {
		return "", fmt.Errorf("%w: %v", dialect.ErrUnknownDialect, d)
	}

	return id + d.Extension(), nil
}
