package cmd

import (
	"github.com/spf13/cobra"

	"github.com/runger/kubesh/internal/shell"
)

var ctxCmd = &cobra.Command{
	Use:   "ctx [name]",
	Short: "switch the kubeconfig context",
	Long: `Switch the kubeconfig context. Without a name an interactive picker
opens with the current context highlighted; with a name the context list
is fuzzy-matched and the best match wins.`,
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completeContexts,
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
		return a.newShell().SwitchContext(cmd.Context(), arg)
	},
}

// completeContexts supplies fuzzy-ranked context names for shell
// completion.
func completeContexts(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	a, err := newApp()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	defer a.close()

	candidates, err := a.client.Contexts(cmd.Context())
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	return shell.Complete(toComplete, candidates), cobra.ShellCompDirectiveNoFileComp
}
