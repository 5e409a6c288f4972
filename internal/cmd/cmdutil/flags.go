// Package cmdutil provides flags and helpers shared by the sync and plan
// commands.
package cmdutil

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/agentstation/tagsync/internal/config"
	"github.com/agentstation/tagsync/internal/utils/ptr"
)

// RunFlags holds the flags that override the run configuration.
type RunFlags struct {
	CSVFile    string
	URL        string
	CreateTags bool
	DeleteTags bool
}

// AddInputFlags adds the flags every command that reads the table needs.
func AddInputFlags(cmd *cobra.Command) *RunFlags {
	flags := &RunFlags{}
	cmd.Flags().StringVar(&flags.CSVFile, "csv", "",
		"Input table (overrides csv_file)")
	return flags
}

// AddRunFlags adds the input flags plus the flags of a remote run.
func AddRunFlags(cmd *cobra.Command) *RunFlags {
	flags := AddInputFlags(cmd)
	cmd.Flags().StringVar(&flags.URL, "url", "",
		"Environment URL (overrides url)")
	cmd.Flags().BoolVar(&flags.CreateTags, "create-tags", true,
		"Run the create pass (overrides create_tags)")
	cmd.Flags().BoolVar(&flags.DeleteTags, "delete-tags", false,
		"Run the delete pass first (overrides delete_tags)")
	return flags
}

// Overrides returns the overrides for the flags set on the command line.
// Flags left at their defaults do not override the config file or the
// environment.
func (f *RunFlags) Overrides(cmd *cobra.Command) config.Overrides {
	var o config.Overrides
	fs := cmd.Flags()
	if changed(fs, "csv") {
		o.CSVFile = ptr.To(f.CSVFile)
	}
	if changed(fs, "url") {
		o.URL = ptr.To(f.URL)
	}
	if changed(fs, "create-tags") {
		o.CreateTags = ptr.To(f.CreateTags)
	}
	if changed(fs, "delete-tags") {
		o.DeleteTags = ptr.To(f.DeleteTags)
	}
	return o
}

func changed(fs *pflag.FlagSet, name string) bool {
	flag := fs.Lookup(name)
	return flag != nil && flag.Changed
}
