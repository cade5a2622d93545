package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newCompletionCmd returns "completion <shell>", which writes a completion
// script for the given shell to stdout.
func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "completion bash|zsh|fish|powershell",
		Short: "Generate a shell completion script",
		Long: "Generate a shell completion script.\n\n" +
			"  bash:       source <(eeroctl completion bash)\n" +
			"  zsh:        eeroctl completion zsh > \"${fpath[1]}/_eeroctl\"\n" +
			"  fish:       eeroctl completion fish | source\n" +
			"  powershell: eeroctl completion powershell | Out-String | Invoke-Expression",
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  args(cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs)),
		DisableFlagsInUseLine: true,
		// Completion output must not depend on config or session state.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, a []string) error {
			root := cmd.Root()
			out := cmd.OutOrStdout()
			switch a[0] {
			case "bash":
				return root.GenBashCompletionV2(out, true)
			case "zsh":
				return root.GenZshCompletion(out)
			case "fish":
				return root.GenFishCompletion(out, true)
			case "powershell":
				return root.GenPowerShellCompletionWithDesc(out)
			}
			return fmt.Errorf("unsupported shell %q", a[0])
		},
	}
}
