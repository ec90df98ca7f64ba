package policy

import (
	"strconv"

	"github.com/macropower/gradlepin/pkg/dialect"
	"github.com/macropower/gradlepin/pkg/patch"
)

// Plugin ids pinned in the settings script.
const (
	PluginFlutterLoader = "dev.flutter.flutter-plugin-loader"
	PluginAndroidApp    = "com.android.application"
	PluginKotlinAndroid = "org.jetbrains.kotlin.android"
)

// AppModule is the Gradle path of the Flutter app module.
const AppModule = ":app"

// Blocks whose name changed between AGP DSL generations. Kotlin scripts use
// the current names; Groovy scripts keep the names older Flutter templates
// shipped with.
var (
	lintBlock      = map[dialect.Dialect]string{dialect.Kotlin: "lint", dialect.Groovy: "lintOptions"}
	packagingBlock = map[dialect.Dialect]string{dialect.Kotlin: "packaging", dialect.Groovy: "packagingOptions"}
)

// AppDirectives returns the directives for the app module build script.
func (p *Policy) AppDirectives(d dialect.Dialect) []patch.Directive {
	app := p.App

	var dirs []patch.Directive

	if app.Namespace != "" {
		dirs = append(dirs, patch.EnsureSetting{Path: "android", Setting: dialect.Setting{
			Key: "namespace", Value: app.Namespace, Kind: dialect.KindString,
		}})
	}

	dirs = append(dirs,
		patch.EnsureSetting{Path: "android.compileOptions", Setting: dialect.Setting{
			Key: "sourceCompatibility", Value: app.JavaVersion, Kind: dialect.KindEnum,
		}},
		patch.EnsureSetting{Path: "android.compileOptions", Setting: dialect.Setting{
			Key: "targetCompatibility", Value: app.JavaVersion, Kind: dialect.KindEnum,
		}},
	)

	if app.DesugarLibrary != "" {
		dirs = append(dirs, patch.EnsureSetting{Path: "android.compileOptions", Setting: dialect.Setting{
			Key:             "coreLibraryDesugaringEnabled",
			Value:           "true",
			Kind:            dialect.KindBoolean,
			BooleanProperty: true,
		}})
	}

	dirs = append(dirs, patch.EnsureSetting{Path: "android.kotlinOptions", Setting: dialect.Setting{
		Key: "jvmTarget", Value: app.JavaVersion, Kind: dialect.KindString, Op: dialect.OpAssign,
	}})

	if app.ApplicationID != "" {
		dirs = append(dirs, patch.EnsureSetting{Path: "android.defaultConfig", Setting: dialect.Setting{
			Key: "applicationId", Value: app.ApplicationID, Kind: dialect.KindString,
		}})
	}

	if app.MultiDexLibrary != "" {
		dirs = append(dirs, patch.EnsureSetting{Path: "android.defaultConfig", Setting: dialect.Setting{
			Key: "multiDexEnabled", Value: "true", Kind: dialect.KindBoolean,
		}})
	}

	if app.Lint != nil {
		dirs = append(dirs, patch.ReplaceBlockBody{Path: "android." + lintBlock[d], Body: []patch.Canonical{
			patch.Line(dialect.Setting{
				Key: "abortOnError", Value: strconv.FormatBool(app.Lint.AbortOnError), Kind: dialect.KindBoolean,
			}),
			patch.Line(dialect.Setting{
				Key: "checkReleaseBuilds", Value: strconv.FormatBool(app.Lint.CheckReleaseBuilds), Kind: dialect.KindBoolean,
			}),
		}})
	}

	if len(app.PackagingExcludes) > 0 {
		dirs = append(dirs, patch.ReplaceBlockBody{Path: "android." + packagingBlock[d], Body: []patch.Canonical{
			patch.Nested("resources", patch.Line(dialect.Setting{
				Key:    "excludes",
				Values: app.PackagingExcludes,
				Kind:   dialect.KindList,
				Op:     dialect.OpAppend,
			})),
		}})
	}

	for _, s := range app.Settings {
		if s.Dialect != "" {
			if sd, err := dialect.Parse(s.Dialect); err != nil || sd != d {
				continue
			}
		}

		dirs = append(dirs, patch.EnsureSetting{Path: s.Block, Setting: s.setting()})
	}

	if app.MultiDexLibrary != "" {
		dirs = append(dirs, patch.EnsureListEntry{
			Path:  "dependencies",
			Entry: dialect.Dependency("implementation", app.MultiDexLibrary),
		})
	}

	if app.DesugarLibrary != "" {
		dirs = append(dirs, patch.EnsureListEntry{
			Path:  "dependencies",
			Entry: dialect.Dependency("coreLibraryDesugaring", app.DesugarLibrary),
		})
	}

	for _, dep := range app.Dependencies {
		dirs = append(dirs, patch.EnsureListEntry{
			Path:  "dependencies",
			Entry: dialect.Dependency(dep.Configuration, dep.Notation),
		})
	}

	return dirs
}

// SettingsDirectives returns the directives for the settings script: a
// canonical plugins block and the app module include.
func (p *Policy) SettingsDirectives(_ dialect.Dialect) []patch.Directive {
	return []patch.Directive{
		patch.ReplaceBlockBody{Path: "plugins", Body: []patch.Canonical{
			patch.Line(dialect.Plugin(PluginFlutterLoader, p.Plugins.FlutterLoader, true)),
			patch.Line(dialect.Plugin(PluginAndroidApp, p.Plugins.AndroidGradle, false)),
			patch.Line(dialect.Plugin(PluginKotlinAndroid, p.Plugins.Kotlin, false)),
		}},
		patch.EnsureListEntry{Entry: dialect.Call("include", AppModule)},
	}
}

func (s Setting) setting() dialect.Setting {
	kind, err := dialect.ParseKind(s.Kind)
	if err != nil {
		kind = dialect.KindString
	}

	value := s.Value
	if kind == dialect.KindBoolean {
		if b, err := parseBool(value); err == nil {
			value = strconv.FormatBool(b)
		}
	}

	return dialect.Setting{Key: s.Key, Value: value, Kind: kind}
}
