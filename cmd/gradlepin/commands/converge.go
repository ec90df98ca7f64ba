package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/macropower/gradlepin/pkg/converge"
	"github.com/macropower/gradlepin/pkg/convergetui"
	"github.com/macropower/gradlepin/pkg/pinerrors"
	"github.com/macropower/gradlepin/pkg/policy"
)

const (
	convergeDesc = `Converge the Gradle wrapper, settings script, app build script and Android
manifest of each project toward the policy.

Each argument may be a Flutter app root, an Android project root, or any
directory below one. Without arguments or --glob, the current directory is
used. Files that already conform are left byte-identical.

The exit code is non-zero only when no file could be processed at all.
Per-file failures are reported and do not stop the other files.
`
	convergeExample = `  # Converge the project in the current directory
  gradlepin converge

  # Show what would change without writing anything
  gradlepin converge --dry-run ./my_app

  # Converge every app in a monorepo, wrapper and settings only
  gradlepin converge --glob 'apps/*/pubspec.yaml' --only wrapper,settings

  # Use a policy file
  gradlepin converge --policy gradlepin.yaml
`

	dotenvFile = ".env"
)

var ErrConvergeFailed = errors.New("converge failed")

// NewConvergeCmd returns the converge command.
func NewConvergeCmd(rootArgs *RootArgs) *cobra.Command {
	args := NewConvergeArgs()

	cmd := &cobra.Command{
		Use:     "converge [dir]...",
		Short:   "Converge Android projects toward the policy",
		Long:    convergeDesc,
		Example: convergeExample,
		RunE: func(cc *cobra.Command, dirs []string) error {
			c, dirs, err := newConverger(args, dirs)
			if err != nil {
				return err
			}

			var report *converge.Report

			if args.GetQuiet() || !isatty.IsTerminal(os.Stdout.Fd()) {
				report, err = c.Run(cc.Context(), dirs...)
				writeStatus(cc.OutOrStdout(), report, args.GetQuiet())
			} else {
				verb := "converging"
				if args.GetDryRun() {
					verb = "checking"
				}

				var tui *convergetui.TUI

				tui, err = convergetui.New(cc.OutOrStdout(), rootArgs.GetLogLevel(), verb, c)
				if err != nil {
					return fmt.Errorf("failed to create tui: %w", err)
				}

				report, err = tui.Run(cc.Context(), dirs...)
			}

			if args.GetDryRun() {
				writeDiffs(cc.OutOrStdout(), report)
			}

			if err != nil {
				return fmt.Errorf("%w: %w", ErrConvergeFailed, err)
			}

			return nil
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringVarP(args.policy, "policy", "p", "", "Policy file (YAML); defaults apply when unset")
	cmd.Flags().StringVarP(args.glob, "glob", "g", "", "Doublestar pattern selecting project directories or files in them")
	cmd.Flags().StringSliceVar(args.only, "only", nil, "Targets to converge (wrapper, settings, app, manifest)")
	cmd.Flags().DurationVar(args.timeout, "timeout", converge.DefaultTimeout, "Timeout for the whole run")
	cmd.Flags().IntVar(args.workers, "workers", 0, "Files processed concurrently (0 uses GOMAXPROCS)")
	cmd.Flags().BoolVar(args.dryRun, "dry-run", false, "Print a unified diff instead of writing files")
	cmd.Flags().BoolVarP(args.quiet, "quiet", "q", false, "Disable the TUI and only report changed or failed files")

	must(cmd.MarkFlagFilename("policy", "yaml", "yml", "json"))

	return cmd
}

func newConverger(args *ConvergeArgs, dirs []string) (*converge.Converger, []string, error) {
	var merr error

	targets, err := converge.ParseTargets(args.GetOnly()...)
	if err != nil {
		merr = multierror.Append(merr, err)
	}

	if args.GetTimeout() <= 0 {
		merr = multierror.Append(merr, fmt.Errorf("timeout must be positive, got %s", args.GetTimeout()))
	}

	if args.GetWorkers() < 0 {
		merr = multierror.Append(merr, fmt.Errorf("workers must not be negative, got %d", args.GetWorkers()))
	}

	if args.GetGlob() != "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, nil, fmt.Errorf("get working directory: %w", err)
		}

		found, err := converge.Discover(cwd, args.GetGlob())
		if err != nil {
			merr = multierror.Append(merr, err)
		} else if len(found) == 0 {
			merr = multierror.Append(merr, fmt.Errorf("glob %q matched nothing", args.GetGlob()))
		}

		dirs = append(dirs, found...)
	}

	if merr != nil {
		return nil, nil, fmt.Errorf("%w: %w", pinerrors.ErrInvalidArguments, merr)
	}

	if len(dirs) == 0 {
		dirs = []string{"."}
	}

	lookup, err := policy.EnvLookup(dotenvFile)
	if err != nil {
		return nil, nil, err
	}

	p, err := policy.Resolve(args.GetPolicy(), lookup)
	if err != nil {
		return nil, nil, err
	}

	c := converge.New(p,
		converge.WithTargets(targets...),
		converge.WithDryRun(args.GetDryRun()),
		converge.WithTimeout(args.GetTimeout()),
		converge.WithWorkers(args.GetWorkers()),
	)

	return c, dirs, nil
}

// writeStatus prints one line per file. In quiet mode unchanged files are
// omitted.
func writeStatus(w io.Writer, report *converge.Report, quiet bool) {
	if report == nil {
		return
	}

	for _, f := range report.Files {
		if quiet && !f.Changed() && f.Err == nil {
			continue
		}

		name := displayPath(f)
		if f.Err != nil {
			fmt.Fprintf(w, "%-9s %s: %v\n", f.Status, name, f.Err)

			continue
		}

		fmt.Fprintf(w, "%-9s %s\n", f.Status, name)
	}
}

func writeDiffs(w io.Writer, report *converge.Report) {
	if report == nil {
		return
	}

	for _, f := range report.Files {
		if f.Diff != "" {
			fmt.Fprint(w, f.Diff)
		}
	}
}

func displayPath(f converge.FileResult) string {
	p := f.Path
	if p == "" {
		return f.Project
	}

	cwd, err := os.Getwd()
	if err != nil {
		return p
	}

	if rel, err := filepath.Rel(cwd, p); err == nil && !strings.HasPrefix(rel, "..") {
		return rel
	}

	return p
}
