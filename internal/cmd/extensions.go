package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/runger/kubesh/internal/shell"
)

var extensionsCmd = &cobra.Command{
	Use:   "extensions",
	Short: "list extension scripts",
	Long: `List the *.sh extension scripts found in the configured extensions
directory. kubesh surfaces them for the user's shell to source; it never
executes them itself.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		scripts, err := shell.ListExtensions(a.cfg.Extensions.Dir)
		if err != nil {
			return err
		}
		if len(scripts) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "no extensions found")
			return nil
		}
		for _, script := range scripts {
			fmt.Fprintln(cmd.OutOrStdout(), script)
		}
		return nil
	},
}
