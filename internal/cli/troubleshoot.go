package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/fulviofreitas/eeroctl/internal/diagnose"
	"github.com/fulviofreitas/eeroctl/internal/eero"
	"github.com/fulviofreitas/eeroctl/internal/output"
)

// newTroubleshootCmd returns the "troubleshoot" parent command.
func newTroubleshootCmd(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "troubleshoot",
		Short: "Diagnose connectivity and local setup",
	}
	cmd.AddCommand(
		newConnectivityCmd(env),
		newDoctorCmd(env),
	)
	return cmd
}

func newConnectivityCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "connectivity",
		Short: "Check WAN status and the health of every node",
		Args:  args(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return env.withClient(cmd, func(ctx context.Context, c *eero.Client) error {
				id, err := env.networkID(ctx, c)
				if err != nil {
					return err
				}
				conn, err := diagnose.CheckConnectivity(ctx, c, id)
				if err != nil {
					return err
				}
				return env.Out.Render(conn, "eero.troubleshoot.connectivity/v1",
					output.WithNetworkID(id), env.warnings(conn.Warnings()))
			})
		},
	}
}

// newDoctorCmd returns "troubleshoot doctor". It reports problems as
// warnings and never fails on them.
func newDoctorCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check config, session, API reachability and network health",
		Args:  args(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, sessErr := env.Sessions.Load()

			var api diagnose.API
			if sessErr == nil && sess.Valid(env.Now()) {
				api = env.newClient(sess.UserToken)
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), env.Config.Timeout)
			defer cancel()

			rep := diagnose.Collect(ctx, api, diagnose.Input{
				ConfigPath: env.Config.Path(),
				Session:    sess,
				SessionErr: sessErr,
				NetworkID:  env.NetworkID,
				Now:        env.Now(),
			})
			env.Logger.Debug().Bool("healthy", rep.Healthy()).Int("checks", len(rep.Checks)).Msg("doctor")
			return env.Out.Render(rep, "eero.troubleshoot.doctor/v1",
				output.WithNetworkID(rep.NetworkID), env.warnings(rep.Warnings()))
		},
	}
}
