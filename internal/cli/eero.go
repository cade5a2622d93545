package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fulviofreitas/eeroctl/internal/eero"
	"github.com/fulviofreitas/eeroctl/internal/exitcode"
	"github.com/fulviofreitas/eeroctl/internal/model"
	"github.com/fulviofreitas/eeroctl/internal/output"
	"github.com/fulviofreitas/eeroctl/internal/resolve"
	"github.com/fulviofreitas/eeroctl/internal/safety"
)

var eeroColumns = []output.Column{
	{Header: "ID", Key: "id"},
	{Header: "Name", Key: "name"},
	{Header: "Model", Key: "model"},
	{Header: "Status", Key: "status"},
	{Header: "Role", Key: "role"},
	{Header: "Clients", Key: "connected_clients_count"},
	{Header: "IP", Key: "ip_address"},
}

// newEeroCmd returns the "eero" parent command for mesh nodes.
func newEeroCmd(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "eero",
		Aliases: []string{"node"},
		Short:   "Inspect and manage eero nodes",
	}
	cmd.AddCommand(
		newEeroListCmd(env),
		newEeroShowCmd(env),
		newEeroRebootCmd(env),
		newEeroToggleCmd(env, "led", "Turn the status LED on or off", setLED),
		newEeroToggleCmd(env, "nightlight", "Turn the nightlight on or off (eero Beacon only)", setNightlight),
		newEeroUpdatesCmd(env),
	)
	return cmd
}

func newEeroListCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the eero nodes in the network",
		Args:  args(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return env.withClient(cmd, func(ctx context.Context, c *eero.Client) error {
				id, err := env.networkID(ctx, c)
				if err != nil {
					return err
				}
				nodes, err := c.Eeros(ctx, id)
				if err != nil {
					return err
				}
				return env.Out.Render(nodes, "eero.eero.list/v1",
					output.WithColumns(eeroColumns...), output.WithNetworkID(id))
			})
		},
	}
}

func newEeroShowCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "show <eero>",
		Short: "Show one eero by id, serial, name or location",
		Args:  args(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, a []string) error {
			return env.withClient(cmd, func(ctx context.Context, c *eero.Client) error {
				node, id, err := findEero(ctx, env, c, a[0])
				if err != nil {
					return err
				}
				// The list omits some detail fields; fetch the full record.
				detail, err := c.Eero(ctx, node.ID)
				if err != nil {
					return err
				}
				return env.Out.Render(detail, "eero.eero.show/v1", output.WithNetworkID(id))
			})
		},
	}
}

// findEero resolves query against the nodes of the current network.
func findEero(ctx context.Context, env *Env, c *eero.Client, query string) (model.Eero, string, error) {
	id, err := env.networkID(ctx, c)
	if err != nil {
		return model.Eero{}, "", err
	}
	nodes, err := c.Eeros(ctx, id)
	if err != nil {
		return model.Eero{}, "", err
	}
	node, err := resolve.Eero(nodes, query)
	return node, id, err
}

func newEeroRebootCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "reboot <eero>",
		Short: "Reboot one eero",
		Args:  args(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, a []string) error {
			return env.withClient(cmd, func(ctx context.Context, c *eero.Client) error {
				node, id, err := findEero(ctx, env, c, a[0])
				if err != nil {
					return err
				}
				ch := change{
					req:       safety.Request{Action: "reboot", Target: node.Name, Risk: safety.Medium},
					schema:    "eero.eero.reboot/v1",
					networkID: id,
				}
				return env.apply(ch, func() error { return c.RebootEero(ctx, node.ID) })
			})
		},
	}
}

// toggleFunc switches one node feature on or off.
type toggleFunc func(ctx context.Context, c *eero.Client, node model.Eero, on bool) error

func setLED(ctx context.Context, c *eero.Client, node model.Eero, on bool) error {
	return c.SetLED(ctx, node.ID, on)
}

func setNightlight(ctx context.Context, c *eero.Client, node model.Eero, on bool) error {
	return c.SetNightlight(ctx, node.ID, on)
}

// newEeroToggleCmd returns "eero <feature> on|off <eero>".
func newEeroToggleCmd(env *Env, feature, short string, set toggleFunc) *cobra.Command {
	return &cobra.Command{
		Use:       feature + " on|off <eero>",
		Short:     short,
		Args:      args(cobra.ExactArgs(2)),
		ValidArgs: []string{"on", "off"},
		RunE: func(cmd *cobra.Command, a []string) error {
			on, err := parseOnOff(cmd, a[0])
			if err != nil {
				return err
			}
			return env.withClient(cmd, func(ctx context.Context, c *eero.Client) error {
				node, id, err := findEero(ctx, env, c, a[1])
				if err != nil {
					return err
				}
				if feature == "nightlight" && !node.SupportsNightlight() {
					return exitcode.WithHint(exitcode.FeatureUnavailable,
						fmt.Errorf("%s (%s) has no nightlight", node.Name, node.Model),
						"Nightlight is only available on eero Beacon.")
				}
				ch := change{
					req:       safety.Request{Action: fmt.Sprintf("turn %s %s", feature, a[0]), Target: node.Name, Risk: safety.Medium},
					schema:    "eero.eero." + feature + "/v1",
					networkID: id,
				}
				return env.apply(ch, func() error { return set(ctx, c, node, on) })
			})
		},
	}
}

// parseOnOff reads an on|off argument.
func parseOnOff(cmd *cobra.Command, s string) (bool, error) {
	switch s {
	case "on":
		return true, nil
	case "off":
		return false, nil
	}
	return false, usageError(cmd, fmt.Errorf("invalid state %q, expected on or off", s))
}

func newEeroUpdatesCmd(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "updates",
		Short: "Inspect firmware updates",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show pending firmware and the version each eero runs",
		Args:  args(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return env.withClient(cmd, func(ctx context.Context, c *eero.Client) error {
				id, err := env.networkID(ctx, c)
				if err != nil {
					return err
				}
				status, err := c.Updates(ctx, id)
				if err != nil {
					return err
				}
				nodes, err := c.Eeros(ctx, id)
				if err != nil {
					return err
				}
				return env.Out.Render(status.WithNodes(nodes), "eero.eero.updates.show/v1", output.WithNetworkID(id))
			})
		},
	})
	return cmd
}
