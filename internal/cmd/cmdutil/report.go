package cmdutil

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/tagsync"
	"github.com/agentstation/tagsync/internal/cmd/output"
)

// PrintReport writes report to the command's output in the format
// selected by --format, detecting one when it is unset.
func PrintReport(cmd *cobra.Command, format string, report *tagsync.Report) error {
	f, err := output.ParseFormat(format)
	if err != nil {
		return err
	}
	return output.FormatReport(cmd.OutOrStdout(), output.DetectFormat(string(f)), report)
}
