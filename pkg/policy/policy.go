// Package policy declares the target state that gradlepin converges a project
// toward: version pins, toggles and dependency coordinates. A policy is plain
// data; [Policy.AppDirectives] and [Policy.SettingsDirectives] translate it
// into patch directives.
package policy

import (
	"errors"
	"fmt"
	"os"

	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v3"

	"github.com/macropower/gradlepin/pkg/dialect"
	"github.com/macropower/gradlepin/pkg/pinerrors"
	"github.com/macropower/gradlepin/pkg/wrapper"
)

const (
	DefaultGradleVersion   = "8.6"
	DefaultAGPVersion      = "8.3.2"
	DefaultKotlinVersion   = "1.9.24"
	DefaultFlutterLoader   = "1.0.0"
	DefaultJavaVersion     = "17"
	DefaultDesugarLibrary  = "com.android.tools:desugar_jdk_libs:2.0.4"
	DefaultMultiDexLibrary = "androidx.multidex:multidex:2.0.1"
)

var ErrEmptyValue = errors.New("value must not be empty")

// Policy is the declarative target state for one Android project.
type Policy struct {
	// Gradle wrapper distribution.
	Wrapper Wrapper `json:"wrapper" yaml:"wrapper"`
	// Plugin versions pinned in the settings script.
	Plugins Plugins `json:"plugins" yaml:"plugins"`
	// Android manifest handling.
	Manifest Manifest `json:"manifest" yaml:"manifest"`
	// Settings for the app module build script.
	App App `json:"app" yaml:"app"`
}

type Wrapper struct {
	// Gradle release, e.g. `8.6`.
	GradleVersion string `json:"gradle_version" yaml:"gradle_version"`
	// Distribution flavor, `bin` or `all`.
	Distribution string `json:"distribution" yaml:"distribution" jsonschema:"enum=bin,enum=all"`
	// Create gradle-wrapper.properties when it does not exist.
	CreateMissing bool `json:"create_missing" yaml:"create_missing"`
}

type Plugins struct {
	// Android Gradle Plugin version (com.android.application).
	AndroidGradle string `json:"android_gradle" yaml:"android_gradle"`
	// Kotlin Android plugin version (org.jetbrains.kotlin.android).
	Kotlin string `json:"kotlin" yaml:"kotlin"`
	// Flutter plugin loader version (dev.flutter.flutter-plugin-loader).
	FlutterLoader string `json:"flutter_loader" yaml:"flutter_loader"`
}

type Manifest struct {
	// Create AndroidManifest.xml when it does not exist.
	CreateMissing bool `json:"create_missing" yaml:"create_missing"`
}

type App struct {
	// Optional android.namespace. Left untouched when empty.
	Namespace string `json:"namespace,omitempty" yaml:"namespace,omitempty"`
	// Optional defaultConfig.applicationId. Left untouched when empty.
	ApplicationID string `json:"application_id,omitempty" yaml:"application_id,omitempty"`
	// Java language level for compileOptions and kotlinOptions.jvmTarget.
	JavaVersion string `json:"java_version" yaml:"java_version"`
	// Core library desugaring artifact. Empty disables desugaring.
	DesugarLibrary string `json:"desugar_library,omitempty" yaml:"desugar_library,omitempty"`
	// Multidex artifact. Empty disables multidex.
	MultiDexLibrary string `json:"multidex_library,omitempty" yaml:"multidex_library,omitempty"`
	// Canonical lint options. Null leaves the block alone.
	Lint *Lint `json:"lint,omitempty" yaml:"lint,omitempty"`
	// Resources excluded from packaging. Empty leaves the block alone.
	PackagingExcludes []string `json:"packaging_excludes,omitempty" yaml:"packaging_excludes,omitempty"`
	// Additional settings.
	Settings []Setting `json:"settings,omitempty" yaml:"settings,omitempty"`
	// Additional dependencies.
	Dependencies []Dependency `json:"dependencies,omitempty" yaml:"dependencies,omitempty"`
}

type Lint struct {
	AbortOnError       bool `json:"abort_on_error" yaml:"abort_on_error"`
	CheckReleaseBuilds bool `json:"check_release_builds" yaml:"check_release_builds"`
}

// Setting is an extra key/value pin inside a block of the app build script.
type Setting struct {
	// Dot-separated block path, e.g. `android.defaultConfig`.
	Block string `json:"block" yaml:"block"`
	// Setting key. Snake or kebab case keys are converted to lowerCamel.
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
	// Value kind: string, boolean, enum, version.
	Kind string `json:"kind,omitempty" yaml:"kind,omitempty" jsonschema:"enum=string,enum=boolean,enum=enum,enum=version"`
	// Restrict the setting to one dialect (`kotlin` or `groovy`).
	Dialect string `json:"dialect,omitempty" yaml:"dialect,omitempty"`
}

// Dependency is an extra dependency declaration in the app build script.
type Dependency struct {
	// Configuration name, e.g. `implementation`.
	Configuration string `json:"configuration" yaml:"configuration"`
	// Maven coordinates.
	Notation string `json:"notation" yaml:"notation"`
}

// Default returns the built-in policy.
func Default() *Policy {
	return &Policy{
		Wrapper: Wrapper{
			GradleVersion: DefaultGradleVersion,
			Distribution:  wrapper.Bin,
			CreateMissing: true,
		},
		Plugins: Plugins{
			AndroidGradle: DefaultAGPVersion,
			Kotlin:        DefaultKotlinVersion,
			FlutterLoader: DefaultFlutterLoader,
		},
		Manifest: Manifest{CreateMissing: true},
		App: App{
			JavaVersion:     DefaultJavaVersion,
			DesugarLibrary:  DefaultDesugarLibrary,
			MultiDexLibrary: DefaultMultiDexLibrary,
			Lint:            &Lint{},
			PackagingExcludes: []string{
				"META-INF/AL2.0",
				"META-INF/LGPL2.1",
				"META-INF/LICENSE*",
				"META-INF/NOTICE*",
				"META-INF/DEPENDENCIES",
			},
		},
	}
}

// Load reads a YAML (or JSON) policy file on top of [Default]. An empty path
// returns the default policy. The result is normalized and validated.
func Load(path string) (*Policy, error) {
	return Resolve(path, nil)
}

// Resolve is like [Load], then applies GRADLEPIN_* overrides from lookup
// before validating. A nil lookup applies no overrides.
func Resolve(path string, lookup LookupFunc) (*Policy, error) {
	p := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", pinerrors.ErrReadFile, err)
		}

		if err := yaml.Unmarshal(data, p); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", pinerrors.ErrInvalidPolicy, path, err)
		}
	}

	if lookup != nil {
		p.ApplyEnv(lookup)
	}

	p.Normalize()

	if err := p.Validate(); err != nil {
		return nil, err
	}

	return p, nil
}

// WrapperURL returns the distributionUrl value for the policy.
func (p *Policy) WrapperURL() (string, error) {
	return wrapper.DistributionURL(p.Wrapper.GradleVersion, p.Wrapper.Distribution)
}

// Validate reports every problem with the policy at once.
func (p *Policy) Validate() error {
	var merr error

	required := map[string]string{
		"wrapper.gradle_version": p.Wrapper.GradleVersion,
		"plugins.android_gradle": p.Plugins.AndroidGradle,
		"plugins.kotlin":         p.Plugins.Kotlin,
		"plugins.flutter_loader": p.Plugins.FlutterLoader,
		"app.java_version":       p.App.JavaVersion,
	}
	for _, field := range sortedKeys(required) {
		if required[field] == "" {
			merr = multierror.Append(merr, fmt.Errorf("%s: %w", field, ErrEmptyValue))
		}
	}

	if p.Wrapper.GradleVersion != "" {
		if _, err := p.WrapperURL(); err != nil {
			merr = multierror.Append(merr, fmt.Errorf("wrapper: %w", err))
		}
	}

	for i, s := range p.App.Settings {
		if s.Key == "" {
			merr = multierror.Append(merr, fmt.Errorf("app.settings[%d].key: %w", i, ErrEmptyValue))
		}

		kind, err := dialect.ParseKind(s.Kind)
		switch {
		case err != nil:
			merr = multierror.Append(merr, fmt.Errorf("app.settings[%d].kind: %w", i, err))
		case kind == dialect.KindList:
			merr = multierror.Append(merr, fmt.Errorf("app.settings[%d].kind: list settings are not supported", i))
		case kind == dialect.KindBoolean:
			if _, err := parseBool(s.Value); err != nil {
				merr = multierror.Append(merr, fmt.Errorf("app.settings[%d].value: %w", i, err))
			}
		}

		if s.Dialect != "" {
			if _, err := dialect.Parse(s.Dialect); err != nil {
				merr = multierror.Append(merr, fmt.Errorf("app.settings[%d].dialect: %w", i, err))
			}
		}
	}

	for i, d := range p.App.Dependencies {
		if d.Configuration == "" || d.Notation == "" {
			merr = multierror.Append(merr, fmt.Errorf("app.dependencies[%d]: %w", i, ErrEmptyValue))
		}
	}

	if merr != nil {
		return fmt.Errorf("%w: %w", pinerrors.ErrInvalidPolicy, merr)
	}

	return nil
}

// YAML renders the policy as YAML.
func (p *Policy) YAML() ([]byte, error) {
	b, err := yaml.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", pinerrors.ErrYAMLMarshal, err)
	}

	return b, nil
}
