package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/fulviofreitas/eeroctl/internal/eero"
	"github.com/fulviofreitas/eeroctl/internal/model"
	"github.com/fulviofreitas/eeroctl/internal/output"
	"github.com/fulviofreitas/eeroctl/internal/resolve"
	"github.com/fulviofreitas/eeroctl/internal/safety"
)

var profileColumns = []output.Column{
	{Header: "ID", Key: "id"},
	{Header: "Name", Key: "name"},
	{Header: "Paused", Key: "paused"},
	{Header: "Devices", Key: "device_count"},
}

// newProfileCmd returns the "profile" parent command.
func newProfileCmd(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Inspect and pause family profiles",
	}
	cmd.AddCommand(
		newProfileListCmd(env),
		newProfileShowCmd(env),
		newProfilePauseCmd(env, true),
		newProfilePauseCmd(env, false),
		newProfileScheduleCmd(env),
	)
	return cmd
}

func newProfileListCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the profiles of the network",
		Args:  args(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return env.withClient(cmd, func(ctx context.Context, c *eero.Client) error {
				id, err := env.networkID(ctx, c)
				if err != nil {
					return err
				}
				profiles, err := c.Profiles(ctx, id)
				if err != nil {
					return err
				}
				return env.Out.Render(profiles, "eero.profile.list/v1",
					output.WithColumns(profileColumns...), output.WithNetworkID(id))
			})
		},
	}
}

func newProfileShowCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "show <profile>",
		Short: "Show one profile by id or name",
		Args:  args(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, a []string) error {
			return env.withClient(cmd, func(ctx context.Context, c *eero.Client) error {
				p, id, err := findProfile(ctx, env, c, a[0])
				if err != nil {
					return err
				}
				return env.Out.Render(p, "eero.profile.show/v1", output.WithNetworkID(id))
			})
		},
	}
}

func findProfile(ctx context.Context, env *Env, c *eero.Client, query string) (model.Profile, string, error) {
	id, err := env.networkID(ctx, c)
	if err != nil {
		return model.Profile{}, "", err
	}
	profiles, err := c.Profiles(ctx, id)
	if err != nil {
		return model.Profile{}, "", err
	}
	p, err := resolve.Profile(profiles, query)
	return p, id, err
}

func newProfilePauseCmd(env *Env, pause bool) *cobra.Command {
	verb, short := "unpause", "Restore internet access for a profile"
	if pause {
		verb, short = "pause", "Pause internet access for a profile"
	}

	return &cobra.Command{
		Use:   verb + " <profile>",
		Short: short,
		Args:  args(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, a []string) error {
			return env.withClient(cmd, func(ctx context.Context, c *eero.Client) error {
				p, id, err := findProfile(ctx, env, c, a[0])
				if err != nil {
					return err
				}
				ch := change{
					req:       safety.Request{Action: verb, Target: "profile " + p.Name, Risk: safety.Medium},
					schema:    "eero.profile." + verb + "/v1",
					networkID: id,
				}
				return env.apply(ch, func() error { return c.SetProfilePaused(ctx, id, p.ID, pause) })
			})
		},
	}
}

func newProfileScheduleCmd(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Inspect profile access schedules",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show <profile>",
		Short: "Show the blocked time windows of a profile",
		Args:  args(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, a []string) error {
			return env.withClient(cmd, func(ctx context.Context, c *eero.Client) error {
				p, id, err := findProfile(ctx, env, c, a[0])
				if err != nil {
					return err
				}
				schedule, err := c.ProfileSchedule(ctx, id, p.ID)
				if err != nil {
					return err
				}
				return env.Out.Render(schedule, "eero.profile.schedule.show/v1", output.WithNetworkID(id))
			})
		},
	})
	return cmd
}
