package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fulviofreitas/eeroctl/internal/eero"
	"github.com/fulviofreitas/eeroctl/internal/exitcode"
	"github.com/fulviofreitas/eeroctl/internal/model"
	"github.com/fulviofreitas/eeroctl/internal/output"
	"github.com/fulviofreitas/eeroctl/internal/resolve"
	"github.com/fulviofreitas/eeroctl/internal/safety"
)

var networkColumns = []output.Column{
	{Header: "ID", Key: "id"},
	{Header: "Name", Key: "name"},
	{Header: "Status", Key: "status"},
}

// newNetworkCmd returns the "network" parent command with all sub-commands.
func newNetworkCmd(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "network",
		Short: "Inspect and manage networks",
	}
	cmd.AddCommand(
		newNetworkListCmd(env),
		newNetworkShowCmd(env),
		newNetworkUseCmd(env),
		newNetworkRenameCmd(env),
		newNetworkPasswordCmd(env),
		newNetworkRebootCmd(env),
		newNetworkPremiumCmd(env),
		newNetworkGuestCmd(env),
		newNetworkSpeedTestCmd(env),
		newNetworkDNSCmd(env),
		newNetworkSecurityCmd(env),
		newNetworkSQMCmd(env),
	)
	return cmd
}

func newNetworkListCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the networks on the account",
		Args:  args(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return env.withClient(cmd, func(ctx context.Context, c *eero.Client) error {
				networks, err := c.Networks(ctx)
				if err != nil {
					return err
				}
				return env.Out.Render(networks, "eero.network.list/v1", output.WithColumns(networkColumns...))
			})
		},
	}
}

func newNetworkShowCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show network details",
		Args:  args(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return env.withClient(cmd, func(ctx context.Context, c *eero.Client) error {
				n, id, err := currentNetwork(ctx, env, c)
				if err != nil {
					return err
				}
				return env.Out.Render(n, "eero.network.show/v1", output.WithNetworkID(id))
			})
		},
	}
}

// currentNetwork fetches the full detail of the network being operated on.
func currentNetwork(ctx context.Context, env *Env, c *eero.Client) (model.Network, string, error) {
	id, err := env.networkID(ctx, c)
	if err != nil {
		return model.Network{}, "", err
	}
	n, err := c.Network(ctx, id)
	if err != nil {
		return model.Network{}, "", err
	}
	return n, id, nil
}

// newNetworkUseCmd returns "network use": persist the preferred network.
// The id is checked against the account when a session is available.
func newNetworkUseCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "use <network>",
		Short: "Set the default network for later commands",
		Args:  args(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, a []string) error {
			id := a[0]
			err := env.withClient(cmd, func(ctx context.Context, c *eero.Client) error {
				networks, err := c.Networks(ctx)
				if err != nil {
					return err
				}
				n, err := resolve.Network(networks, a[0])
				if err != nil {
					return err
				}
				id = n.ID
				return nil
			})
			var notFound *resolve.NotFoundError
			if errors.As(err, &notFound) {
				return err
			}
			if err != nil {
				env.Logger.Debug().Err(err).Msg("network not verified")
				env.Out.Warning("Could not verify network %s: %v", id, err)
			}

			ch := change{
				req:       safety.Request{Action: "use network", Target: id, Risk: safety.Low},
				schema:    "eero.network.use/v1",
				networkID: id,
			}
			return env.apply(ch, func() error {
				return env.Config.SetPreferredNetwork(id)
			})
		},
	}
}

func newNetworkRenameCmd(env *Env) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "rename",
		Short: "Rename the network (changes the SSID)",
		Args:  args(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireFlag(cmd, "name", name); err != nil {
				return err
			}
			return env.withClient(cmd, func(ctx context.Context, c *eero.Client) error {
				id, err := env.networkID(ctx, c)
				if err != nil {
					return err
				}
				ch := change{
					req:       safety.Request{Action: "rename network", Target: fmt.Sprintf("to '%s'", name), Risk: safety.High},
					schema:    "eero.network.rename/v1",
					networkID: id,
				}
				return env.apply(ch, func() error { return c.RenameNetwork(ctx, id, name) })
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "New network name (required)")
	return cmd
}

func newNetworkPasswordCmd(env *Env) *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "password",
		Short: "Change the Wi-Fi password (every client must reconnect)",
		Args:  args(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireFlag(cmd, "password", password); err != nil {
				return err
			}
			if len(password) < 8 {
				return usageError(cmd, errors.New("password must be at least 8 characters"))
			}
			return env.withClient(cmd, func(ctx context.Context, c *eero.Client) error {
				n, id, err := currentNetwork(ctx, env, c)
				if err != nil {
					return err
				}
				ch := change{
					req:       safety.Request{Action: "change password", Target: "of network " + n.Name, Risk: safety.High},
					schema:    "eero.network.password/v1",
					networkID: id,
				}
				return env.apply(ch, func() error { return c.SetWiFiPassword(ctx, id, password) })
			})
		},
	}
	cmd.Flags().StringVar(&password, "password", "", "New Wi-Fi password (required)")
	return cmd
}

func newNetworkRebootCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "reboot",
		Short: "Reboot every eero in the network",
		Args:  args(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return env.withClient(cmd, func(ctx context.Context, c *eero.Client) error {
				n, id, err := currentNetwork(ctx, env, c)
				if err != nil {
					return err
				}
				ch := change{
					req:       safety.Request{Action: "reboot", Target: "network " + n.Name, Risk: safety.High},
					schema:    "eero.network.reboot/v1",
					networkID: id,
				}
				return env.apply(ch, func() error { return c.RebootNetwork(ctx, id) })
			})
		},
	}
}

func newNetworkPremiumCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "premium",
		Short: "Show Eero Plus subscription status",
		Args:  args(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return env.withClient(cmd, func(ctx context.Context, c *eero.Client) error {
				n, id, err := currentNetwork(ctx, env, c)
				if err != nil {
					return err
				}
				status := n.PremiumStatus
				if status == "" {
					status = "inactive"
				}
				rec := output.Record{
					{Key: "network_id", Value: id},
					{Key: "premium_status", Value: status},
					{Key: "active", Value: n.Premium()},
				}
				return env.Out.Render(rec, "eero.network.premium/v1", output.WithNetworkID(id))
			})
		},
	}
}

// newNetworkGuestCmd returns "network guest" with show, enable and disable.
func newNetworkGuestCmd(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "guest",
		Short: "Manage the guest network",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show guest network settings",
			Args:  args(cobra.NoArgs),
			RunE: func(cmd *cobra.Command, _ []string) error {
				return env.withClient(cmd, func(ctx context.Context, c *eero.Client) error {
					n, id, err := currentNetwork(ctx, env, c)
					if err != nil {
						return err
					}
					return env.Out.Render(n.Guest, "eero.network.guest/v1", output.WithNetworkID(id))
				})
			},
		},
		newGuestToggleCmd(env, true),
		newGuestToggleCmd(env, false),
	)
	return cmd
}

func newGuestToggleCmd(env *Env, enable bool) *cobra.Command {
	var name, password string
	verb, short := "disable", "Disable the guest network"
	if enable {
		verb, short = "enable", "Enable the guest network"
	}

	cmd := &cobra.Command{
		Use:   verb,
		Short: short,
		Args:  args(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return env.withClient(cmd, func(ctx context.Context, c *eero.Client) error {
				n, id, err := currentNetwork(ctx, env, c)
				if err != nil {
					return err
				}
				settings := eero.GuestSettings{Enabled: enable}
				if cmd.Flags().Changed("name") {
					settings.Name = &name
				}
				if cmd.Flags().Changed("password") {
					settings.Password = &password
				}
				ch := change{
					req:       safety.Request{Action: verb + " guest network", Target: "on " + n.Name, Risk: safety.Medium},
					schema:    "eero.network.guest/v1",
					networkID: id,
				}
				return env.apply(ch, func() error { return c.SetGuestNetwork(ctx, id, settings) })
			})
		},
	}
	if enable {
		cmd.Flags().StringVar(&name, "name", "", "Guest network name")
		cmd.Flags().StringVar(&password, "password", "", "Guest network password")
	}
	return cmd
}

// newNetworkSpeedTestCmd returns "network speedtest" with run and show.
func newNetworkSpeedTestCmd(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "speedtest",
		Short: "Run or show WAN speed tests",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "run",
			Short: "Run a speed test and show the result",
			Args:  args(cobra.NoArgs),
			RunE: func(cmd *cobra.Command, _ []string) error {
				return env.withClient(cmd, func(ctx context.Context, c *eero.Client) error {
					id, err := env.networkID(ctx, c)
					if err != nil {
						return err
					}
					req := safety.Request{Action: "run speed test", Target: "on network " + id, Risk: safety.Low}
					ok, err := env.Gate.Require(req, env.Safety)
					if err != nil {
						return err
					}
					if !ok {
						return env.Out.Mutation(false, req.Action, req.Target, "eero.network.speedtest/v1", output.WithNetworkID(id))
					}
					env.Out.Info("Running speed test, this can take a minute...")
					if err := c.RunSpeedTest(ctx, id); err != nil {
						return err
					}
					result, err := c.SpeedTest(ctx, id)
					if err != nil {
						return err
					}
					return env.Out.Render(result, "eero.network.speedtest/v1", output.WithNetworkID(id))
				})
			},
		},
		&cobra.Command{
			Use:   "show",
			Short: "Show the latest speed test result",
			Args:  args(cobra.NoArgs),
			RunE: func(cmd *cobra.Command, _ []string) error {
				return env.withClient(cmd, func(ctx context.Context, c *eero.Client) error {
					id, err := env.networkID(ctx, c)
					if err != nil {
						return err
					}
					result, err := c.SpeedTest(ctx, id)
					if err != nil {
						return err
					}
					if result.Date == nil && result.DownMbps == 0 {
						return exitcode.WithHint(exitcode.NotFound, errors.New("no speed test results"),
							"Run 'eeroctl network speedtest run' first.")
					}
					return env.Out.Render(result, "eero.network.speedtest/v1", output.WithNetworkID(id))
				})
			},
		},
	)
	return cmd
}
