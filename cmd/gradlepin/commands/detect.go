package commands

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/macropower/gradlepin/pkg/dialect"
	"github.com/macropower/gradlepin/pkg/paths"
	"github.com/macropower/gradlepin/pkg/wrapper"
)

// NewDetectCmd returns the detect command.
func NewDetectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "detect [dir]",
		Short: "Show the dialect and path of each Gradle script in a project",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cc *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			root, err := paths.FindAndroidRoot(dir)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cc.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(tw, "DOCUMENT\tDIALECT\tSTATE\tPATH\n")

			for _, doc := range []struct {
				name       string
				candidates dialect.Candidates
			}{
				{"settings", dialect.Settings},
				{"root", dialect.RootBuild},
				{"app", dialect.AppBuild},
			} {
				det, err := dialect.Detect(root, doc.candidates)
				if err != nil {
					return err
				}

				state := "present"
				if !det.Exists {
					state = "missing"
				}

				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", doc.name, det.Dialect, state, det.Path)
			}

			if err := tw.Flush(); err != nil {
				return fmt.Errorf("failed to write to output: %w", err)
			}

			data, err := os.ReadFile(filepath.Join(root, wrapper.File))
			if err != nil {
				slog.Debug("no wrapper properties", slog.Any("err", err))

				return nil
			}

			if url, ok := wrapper.Current(string(data)); ok {
				fmt.Fprintf(cc.OutOrStdout(), "\n%s=%s\n", wrapper.Key, url)
			}

			return nil
		},
		SilenceUsage: true,
	}
}
