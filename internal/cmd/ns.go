package cmd

import (
	"github.com/spf13/cobra"

	"github.com/runger/kubesh/internal/shell"
)

var nsCmd = &cobra.Command{
	Use:   "ns [name]",
	Short: "switch the namespace of the current context",
	Long: `Switch the namespace pinned on the current context. Without a name an
interactive picker opens with the current namespace highlighted; with a
name the namespace list is fuzzy-matched and the best match wins.`,
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completeNamespaces,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		arg := ""
		if len(args) > 0 {
			arg = args[0]
		}
		if arg == "" {
			if err := requireTTY(); err != nil {
				return err
			}
		}
		return a.newShell().SwitchNamespace(cmd.Context(), arg)
	},
}

// completeNamespaces supplies fuzzy-ranked namespace names for shell
// completion.
func completeNamespaces(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	a, err := newApp()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	defer a.close()

	candidates, err := a.client.Namespaces(cmd.Context())
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	return shell.Complete(toComplete, candidates), cobra.ShellCompDirectiveNoFileComp
}
