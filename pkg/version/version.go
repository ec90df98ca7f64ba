package version

import (
	"fmt"
	"runtime/debug"
)

const unknown = "unknown"

var (
	// Version is the semantic version of the build.
	Version = "0.0.0-dev"
	// Revision is the VCS revision of the build.
	Revision = ""
)

func init() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		if Revision == "" {
			Revision = unknown
		}

		return
	}

	if v := info.Main.Version; v != "" && v != "(devel)" && Version == "0.0.0-dev" {
		Version = v
	}

	if Revision == "" {
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" {
				Revision = s.Value
			}
		}
	}

	if Revision == "" {
		Revision = unknown
	}
}

// String returns `<version>+<revision>`, with the revision shortened.
func String() string {
	rev := Revision
	if len(rev) > 12 {
		rev = rev[:12]
	}

	return fmt.Sprintf("%s+%s", Version, rev)
}
