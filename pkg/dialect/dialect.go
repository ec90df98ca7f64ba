package dialect

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/macropower/gradlepin/pkg/pinerrors"
)

// Dialect is one of the two surface syntaxes a Gradle build script can use.
type Dialect int

const (
	// Kotlin is the Gradle Kotlin DSL (*.gradle.kts).
	Kotlin Dialect = iota
	// Groovy is the Gradle Groovy DSL (*.gradle).
	Groovy
)

// Preferred is used when no document exists yet.
const Preferred = Kotlin

var ErrUnknownDialect = errors.New("unknown dialect")

func (d Dialect) String() string {
	switch d {
	case Kotlin:
		return "kotlin"
	case Groovy:
		return "groovy"
	}

	return fmt.Sprintf("Dialect(%d)", int(d))
}

// Extension returns the file extension used by scripts in the dialect.
func (d Dialect) Extension() string {
	if d == Groovy {
		return ".gradle"
	}

	return ".gradle.kts"
}

// Parse converts a user supplied dialect name.
func Parse(s string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "kotlin", "kts", "kotlin-dsl":
		return Kotlin, nil
	case "groovy", "gradle":
		return Groovy, nil
	}

	return Preferred, fmt.Errorf("%w: %q", ErrUnknownDialect, s)
}

// ForPath classifies a single script by its extension.
func ForPath(path string) (Dialect, bool) {
	switch {
	case strings.HasSuffix(path, ".gradle.kts"):
		return Kotlin, true
	case strings.HasSuffix(path, ".gradle"):
		return Groovy, true
	}

	return Preferred, false
}

// Candidates names the two files that hold the same logical document, one per
// dialect. Paths are relative to the project directory.
type Candidates struct {
	Kotlin string
	Groovy string
}

var (
	AppBuild  = Candidates{Kotlin: "app/build.gradle.kts", Groovy: "app/build.gradle"}
	RootBuild = Candidates{Kotlin: "build.gradle.kts", Groovy: "build.gradle"}
	Settings  = Candidates{Kotlin: "settings.gradle.kts", Groovy: "settings.gradle"}
)

// For returns the candidate for d.
func (c Candidates) For(d Dialect) string {
	if d == Groovy {
		return c.Groovy
	}

	return c.Kotlin
}

// Detection is the outcome of [Detect].
type Detection struct {
	Path    string
	Dialect Dialect
	// Exists is false when neither candidate was found; Path then points at
	// the [Preferred] candidate, which should be synthesized.
	Exists bool
}

// Detect returns the dialect of the first candidate that exists in dir.
// Existence of the dialect-specific filename is authoritative; file content is
// never inspected.
func Detect(dir string, c Candidates) (Detection, error) {
	fi, err := os.Stat(dir)
	if err != nil {
		return Detection{}, fmt.Errorf("%w: %w", pinerrors.ErrMissingTarget, err)
	}

	if !fi.IsDir() {
		return Detection{}, fmt.Errorf("%w: %s: not a directory", pinerrors.ErrMissingTarget, dir)
	}

	for _, d := range []Dialect{Kotlin, Groovy} {
		path := filepath.Join(dir, c.For(d))
		if fileExists(path) {
			return Detection{Dialect: d, Path: path, Exists: true}, nil
		}
	}

	return Detection{
		Dialect: Preferred,
		Path:    filepath.Join(dir, c.For(Preferred)),
	}, nil
}

func fileExists(path string) bool {
	fi, err := os.Stat(path)
	if err != nil || fi.IsDir() {
		return false
	}

	return true
}
