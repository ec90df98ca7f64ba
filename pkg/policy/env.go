package policy

import (
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"

	"github.com/joho/godotenv"

	"github.com/macropower/gradlepin/pkg/pinerrors"
)

// EnvPrefix is prepended to every environment override.
const EnvPrefix = "GRADLEPIN_"

// LookupFunc has the signature of [os.LookupEnv].
type LookupFunc func(key string) (string, bool)

// EnvLookup returns a [LookupFunc] that prefers the process environment and
// falls back to values read from the given dotenv files. Missing files are
// skipped; when several files define a key the last one wins.
func EnvLookup(dotenvFiles ...string) (LookupFunc, error) {
	vals := map[string]string{}

	for _, f := range dotenvFiles {
		m, err := godotenv.Read(f)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}

		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", pinerrors.ErrReadFile, f, err)
		}

		maps.Copy(vals, m)
	}

	return func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}

		v, ok := vals[key]

		return v, ok
	}, nil
}

// EnvNames lists the supported override variables, without [EnvPrefix].
func EnvNames() []string {
	return sortedKeys(Default().envFields())
}

// ApplyEnv overrides policy fields from GRADLEPIN_* variables.
func (p *Policy) ApplyEnv(lookup LookupFunc) {
	for name, field := range p.envFields() {
		if v, ok := lookup(EnvPrefix + name); ok {
			*field = v
		}
	}
}

func (p *Policy) envFields() map[string]*string {
	return map[string]*string{
		"GRADLE_VERSION":         &p.Wrapper.GradleVersion,
		"GRADLE_DISTRIBUTION":    &p.Wrapper.Distribution,
		"AGP_VERSION":            &p.Plugins.AndroidGradle,
		"KOTLIN_VERSION":         &p.Plugins.Kotlin,
		"FLUTTER_LOADER_VERSION": &p.Plugins.FlutterLoader,
		"JAVA_VERSION":           &p.App.JavaVersion,
		"NAMESPACE":              &p.App.Namespace,
		"APPLICATION_ID":         &p.App.ApplicationID,
		"DESUGAR_LIBRARY":        &p.App.DesugarLibrary,
		"MULTIDEX_LIBRARY":       &p.App.MultiDexLibrary,
	}
}
