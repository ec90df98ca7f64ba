package converge

import (
	"fmt"
	"slices"
	"strings"

	"github.com/macropower/gradlepin/pkg/pinerrors"
)

// Target is one file kind converged in every project.
type Target string

const (
	TargetWrapper  Target = "wrapper"
	TargetSettings Target = "settings"
	TargetApp      Target = "app"
	TargetManifest Target = "manifest"
)

// AllTargets returns every target in processing order.
func AllTargets() []Target {
	return []Target{TargetWrapper, TargetSettings, TargetApp, TargetManifest}
}

// ParseTargets parses target names, accepting comma separated lists. An
// empty input selects [AllTargets]. The result keeps processing order.
func ParseTargets(names ...string) ([]Target, error) {
	want := map[Target]bool{}

	for _, n := range names {
		for part := range strings.SplitSeq(n, ",") {
			part = strings.ToLower(strings.TrimSpace(part))
			if part == "" {
				continue
			}

			t := Target(part)
			if !slices.Contains(AllTargets(), t) {
				return nil, fmt.Errorf("%w: unknown target %q", pinerrors.ErrInvalidArguments, part)
			}

			want[t] = true
		}
	}

	if len(want) == 0 {
		return AllTargets(), nil
	}

	targets := []Target{}
	for _, t := range AllTargets() {
		if want[t] {
			targets = append(targets, t)
		}
	}

	return targets, nil
}
