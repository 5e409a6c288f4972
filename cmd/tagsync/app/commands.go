package app

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/tagsync/cmd/tagsync/cmd/plan"
	"github.com/agentstation/tagsync/cmd/tagsync/cmd/sync"
	"github.com/agentstation/tagsync/cmd/tagsync/cmd/version"
)

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	rootCmd.AddCommand(sync.NewCommand(a))
	rootCmd.AddCommand(plan.NewCommand(a))
	rootCmd.AddCommand(version.NewCommand(a))
}
