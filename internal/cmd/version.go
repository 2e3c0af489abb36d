package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version information, set via ldflags during release builds.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "kubesh %s (commit %s, built %s)\n", Version, GitCommit, BuildDate)
	},
}
