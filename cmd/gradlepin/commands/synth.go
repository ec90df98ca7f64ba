package commands

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/macropower/gradlepin/pkg/dialect"
	"github.com/macropower/gradlepin/pkg/templates"
)

// NewSynthCmd returns the synth command.
func NewSynthCmd() *cobra.Command {
	var dialectName, templateID string

	cmd := &cobra.Command{
		Use:   "synth",
		Short: "Print the template written for a missing file",
		Example: `  # Print the Groovy settings script template
  gradlepin synth --dialect groovy --template settings
`,
		Args: cobra.NoArgs,
		RunE: func(cc *cobra.Command, _ []string) error {
			d, err := dialect.Parse(dialectName)
			if err != nil {
				return err
			}

			if !templates.Gradle(templateID) && cc.Flags().Changed("dialect") {
				slog.Warn("template is not a Gradle script, ignoring dialect", slog.String("template", templateID))
			}

			text, err := templates.Synthesize(d, templateID)
			if err != nil {
				return err
			}

			_, err = fmt.Fprint(cc.OutOrStdout(), text)
			if err != nil {
				return fmt.Errorf("failed to write to output: %w", err)
			}

			return nil
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringVarP(&dialectName, "dialect", "d", dialect.Preferred.String(), "Script dialect (kotlin, groovy)")
	cmd.Flags().StringVarP(&templateID, "template", "t", "",
		"Template id ("+strings.Join(templates.IDs(), ", ")+") (required)")

	must(cmd.MarkFlagRequired("template"))

	return cmd
}
