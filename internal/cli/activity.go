package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/fulviofreitas/eeroctl/internal/eero"
	"github.com/fulviofreitas/eeroctl/internal/output"
)

// newActivityCmd returns the "activity" parent command. Activity reports
// need an Eero Plus subscription.
func newActivityCmd(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "activity",
		Short: "Show data usage (Eero Plus)",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "summary",
		Short: "Show the network data usage summary",
		Args:  args(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return env.withClient(cmd, func(ctx context.Context, c *eero.Client) error {
				id, err := env.networkID(ctx, c)
				if err != nil {
					return err
				}
				summary, err := c.ActivitySummary(ctx, id)
				if err != nil {
					return err
				}
				return env.Out.Render(summary, "eero.activity.summary/v1", output.WithNetworkID(id))
			})
		},
	})
	return cmd
}
