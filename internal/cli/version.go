package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewVersionCommand creates the version command.
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display copilot version and build information.`,
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "copilot v%s\n", Version)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "commit %s, built %s\n", GitCommit, BuildDate)
		},
	}
}
