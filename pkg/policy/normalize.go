package policy

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/iancoleman/strcase"
)

// Normalize trims whitespace and converts extra setting keys written in snake
// or kebab case to the lowerCamel spelling Gradle uses.
func (p *Policy) Normalize() {
	p.Wrapper.GradleVersion = strings.TrimSpace(p.Wrapper.GradleVersion)
	p.Wrapper.Distribution = strings.ToLower(strings.TrimSpace(p.Wrapper.Distribution))
	p.Plugins.AndroidGradle = strings.TrimSpace(p.Plugins.AndroidGradle)
	p.Plugins.Kotlin = strings.TrimSpace(p.Plugins.Kotlin)
	p.Plugins.FlutterLoader = strings.TrimSpace(p.Plugins.FlutterLoader)
	p.App.JavaVersion = strings.TrimSpace(p.App.JavaVersion)

	for i := range p.App.Settings {
		s := &p.App.Settings[i]
		s.Block = strings.Trim(strings.TrimSpace(s.Block), ".")
		s.Key = SettingKey(s.Key)
		s.Kind = strings.ToLower(strings.TrimSpace(s.Kind))
	}
}

// SettingKey converts a policy key to the Gradle property spelling.
func SettingKey(key string) string {
	key = strings.TrimSpace(key)
	if strings.ContainsAny(key, "_- ") {
		return strcase.ToLowerCamel(key)
	}

	return key
}

func parseBool(s string) (bool, error) {
	b, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return false, fmt.Errorf("invalid boolean %q", s)
	}

	return b, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	slices.Sort(keys)

	return keys
}
