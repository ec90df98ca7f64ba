package converge

import (
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/macropower/gradlepin/pkg/patch"
)

// Status is the per-file outcome reported to the user.
type Status string

const (
	StatusPatched   Status = "patched"
	StatusUnchanged Status = "unchanged"
	StatusCreated   Status = "created"
	StatusFailed    Status = "failed"
)

// FileResult describes what happened to one file.
type FileResult struct {
	Err error
	// Project is the Android project root. It is the raw input for targets
	// that could not be resolved to a project.
	Project string
	Target  Target
	// Path is the converged file. Empty when the project was not found.
	Path    string
	Dialect string
	Status  Status
	// Diff is a unified diff of the change, set in dry-run mode.
	Diff     string
	Outcomes []patch.Outcome
	// Degraded is set when the file could not be parsed into blocks and new
	// content was appended at the end.
	Degraded bool
}

// Key identifies the file in events.
func (r FileResult) Key() string {
	return jobKey(r.Project, r.Target)
}

// Changed reports whether the file was, or in dry-run mode would be, written.
func (r FileResult) Changed() bool {
	return r.Status == StatusPatched || r.Status == StatusCreated
}

// Report is the result of a [Converger.Run].
type Report struct {
	RunID  string
	Files  []FileResult
	DryRun bool
}

// Processed returns the number of files that did not fail.
func (r *Report) Processed() int {
	n := 0

	for _, f := range r.Files {
		if f.Status != StatusFailed {
			n++
		}
	}

	return n
}

// Count returns the number of files with status s.
func (r *Report) Count(s Status) int {
	n := 0

	for _, f := range r.Files {
		if f.Status == s {
			n++
		}
	}

	return n
}

// Err aggregates the errors of all failed files, or returns nil.
func (r *Report) Err() error {
	var merr error

	for _, f := range r.Files {
		if f.Err == nil {
			continue
		}

		label := f.Path
		if label == "" {
			label = f.Project
		}

		merr = multierror.Append(merr, fmt.Errorf("%s: %w", label, f.Err))
	}

	return merr
}

func jobKey(project string, t Target) string {
	return project + ":" + string(t)
}
