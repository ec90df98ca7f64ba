// Package wrapper pins the Gradle distribution used by the Gradle wrapper.
//
// gradle-wrapper.properties is line oriented, so it is edited with a single
// line substitution rather than through the block document model.
package wrapper

import (
	"errors"
	"fmt"
	"strings"
)

// File is the path of the wrapper properties file, relative to the Android
// project root.
const File = "gradle/wrapper/gradle-wrapper.properties"

// Key is the property holding the distribution URL.
const Key = "distributionUrl"

// Distribution types.
const (
	Bin = "bin"
	All = "all"
)

var ErrInvalidDistribution = errors.New("invalid distribution")

// DistributionURL returns the escaped properties value for a Gradle release.
func DistributionURL(version, distType string) (string, error) {
	if version == "" {
		return "", fmt.Errorf("%w: empty gradle version", ErrInvalidDistribution)
	}

	if distType != Bin && distType != All {
		return "", fmt.Errorf("%w: distribution type %q", ErrInvalidDistribution, distType)
	}

	return fmt.Sprintf(`https\://services.gradle.org/distributions/gradle-%s-%s.zip`, version, distType), nil
}

// Patch sets every distributionUrl line in text to url. When no such line
// exists one is appended. It reports whether text changed.
func Patch(text, url string) (string, bool) {
	lines := strings.SplitAfter(text, "\n")
	want := Key + "=" + url

	found := false

	for i, line := range lines {
		body := strings.TrimRight(line, "\r\n")
		eol := line[len(body):]

		k, _, ok := strings.Cut(body, "=")
		if !ok || strings.TrimSpace(k) != Key {
			continue
		}

		found = true
		lines[i] = want + eol
	}

	out := strings.Join(lines, "")
	if !found {
		if out != "" && !strings.HasSuffix(out, "\n") {
			out += "\n"
		}

		out += want + "\n"
	}

	return out, out != text
}

// Current returns the value of the distributionUrl property, if present.
func Current(text string) (string, bool) {
	for line := range strings.SplitSeq(text, "\n") {
		k, v, ok := strings.Cut(strings.TrimRight(line, "\r"), "=")
		if ok && strings.TrimSpace(k) == Key {
			return strings.TrimSpace(v), true
		}
	}

	return "", false
}
