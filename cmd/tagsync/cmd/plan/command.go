// Package plan implements the plan command.
package plan

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/tagsync/internal/cmd/application"
	"github.com/agentstation/tagsync/internal/cmd/cmdutil"
)

// NewCommand creates the plan command using app context.
func NewCommand(app application.Application) *cobra.Command {
	var flags *cmdutil.RunFlags

	cmd := &cobra.Command{
		Use:     "plan",
		GroupID: "core",
		Short:   "Show the tags a sync would apply",
		Args:    cobra.NoArgs,
		Long: `Plan reads the inventory table and prints the entity selectors and tag
lists a sync would write. No URL or token is needed and nothing is sent.

Use -o wide to include skipped rows and dropped tags.`,
		Example: `  tagsync plan --csv hosts.csv
  tagsync plan -o wide
  tagsync plan -o json | jq '.entries[].selector'`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := app.RunConfig(flags.Overrides(cmd))
			if err != nil {
				return err
			}
			report, err := app.Plan(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			return cmdutil.PrintReport(cmd, app.OutputFormat(), report)
		},
	}

	flags = cmdutil.AddInputFlags(cmd)

	return cmd
}
