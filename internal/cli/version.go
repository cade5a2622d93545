package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/fulviofreitas/eeroctl/internal/output"
)

func newVersionCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the eeroctl version",
		Args:  args(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			if env.Out.Format().Structured() {
				rec := output.Record{
					{Key: "version", Value: Version},
					{Key: "go_version", Value: runtime.Version()},
					{Key: "platform", Value: runtime.GOOS + "/" + runtime.GOARCH},
				}
				return env.Out.Render(rec, "eero.version/v1")
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "eeroctl %s\n", Version)
			return err
		},
	}
}
