// Package cmd wires the kubesh command-line surface.
package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "kubesh",
	Short: "interactive kubectl shell with fuzzy context and namespace switching",
	Long: `kubesh wraps kubectl in an interactive shell:
  - ctx / ns switch context and namespace through a fuzzy picker
  - shorthand aliases expand to full kubectl commands
  - every other line is forwarded to kubectl, scoped to the session`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runShell(cmd.Context())
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	rootCmd.AddCommand(ctxCmd)
	rootCmd.AddCommand(nsCmd)
	rootCmd.AddCommand(extensionsCmd)
	rootCmd.AddCommand(versionCmd)
}
