package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/macropower/gradlepin/pkg/policy"
)

// NewPolicyCmd returns the policy command.
func NewPolicyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "policy",
		Short: "Inspect the convergence policy",
	}

	cmd.AddCommand(NewPolicyShowCmd())
	cmd.AddCommand(NewPolicySchemaCmd())
	cmd.AddCommand(NewPolicyEnvCmd())

	return cmd
}

func NewPolicyShowCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective policy as YAML",
		Long: `Print the effective policy as YAML: defaults, then the policy file, then
GRADLEPIN_* variables from the environment or a .env file.
`,
		Args: cobra.NoArgs,
		RunE: func(cc *cobra.Command, _ []string) error {
			lookup, err := policy.EnvLookup(dotenvFile)
			if err != nil {
				return err
			}

			p, err := policy.Resolve(path, lookup)
			if err != nil {
				return err
			}

			out, err := p.YAML()
			if err != nil {
				return err
			}

			_, err = cc.OutOrStdout().Write(out)
			if err != nil {
				return fmt.Errorf("failed to write to output: %w", err)
			}

			return nil
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringVarP(&path, "policy", "p", "", "Policy file (YAML)")

	return cmd
}

func NewPolicySchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON schema of the policy file",
		Args:  cobra.NoArgs,
		RunE: func(cc *cobra.Command, _ []string) error {
			out, err := policy.Schema()
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cc.OutOrStdout(), string(out))
			if err != nil {
				return fmt.Errorf("failed to write to output: %w", err)
			}

			return nil
		},
		SilenceUsage: true,
	}
}

func NewPolicyEnvCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "env",
		Short: "List the environment variables that override the policy",
		Args:  cobra.NoArgs,
		Run: func(cc *cobra.Command, _ []string) {
			for _, name := range policy.EnvNames() {
				fmt.Fprintln(cc.OutOrStdout(), policy.EnvPrefix+name)
			}
		},
	}
}
