// Package sync implements the sync command.
package sync

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/tagsync/internal/cmd/application"
	"github.com/agentstation/tagsync/internal/cmd/cmdutil"
)

// NewCommand creates the sync command using app context.
func NewCommand(app application.Application) *cobra.Command {
	var (
		flags  *cmdutil.RunFlags
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:     "sync",
		GroupID: "core",
		Short:   "Apply the inventory table's tags to the platform",
		Args:    cobra.NoArgs,
		Long: `Sync reads the inventory table, builds the tag list of every entity it
names, and applies it through the tagging API:

1. Delete pass (--delete-tags) - removes every managed tag key per entity
2. Create pass (--create-tags) - writes the current values per entity

Failed calls are logged and counted but do not stop the run. The exit
status is non-zero only for configuration errors, an unreadable table,
or an interrupt.`,
		Example: `  tagsync sync --csv hosts.csv                 # Create tags only
  tagsync sync --csv hosts.csv --delete-tags   # Replace managed tags
  tagsync sync --dry-run -o yaml               # Show the plan, call nothing`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := app.RunConfig(flags.Overrides(cmd))
			if err != nil {
				return err
			}

			run := app.Sync
			if dryRun {
				run = app.Plan
			}
			report, err := run(cmd.Context(), cfg)
			if report != nil {
				if perr := cmdutil.PrintReport(cmd, app.OutputFormat(), report); perr != nil && err == nil {
					err = perr
				}
			}
			return err
		},
	}

	flags = cmdutil.AddRunFlags(cmd)
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Build and print the plan without calling the platform")

	return cmd
}
