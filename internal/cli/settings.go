package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fulviofreitas/eeroctl/internal/eero"
	"github.com/fulviofreitas/eeroctl/internal/model"
	"github.com/fulviofreitas/eeroctl/internal/output"
	"github.com/fulviofreitas/eeroctl/internal/safety"
)

func newNetworkDNSCmd(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dns",
		Short: "Inspect DNS settings",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show DNS mode, caching and custom servers",
		Args:  args(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return env.withClient(cmd, func(ctx context.Context, c *eero.Client) error {
				id, err := env.networkID(ctx, c)
				if err != nil {
					return err
				}
				dns, err := c.DNSSettings(ctx, id)
				if err != nil {
					return err
				}
				return env.Out.Render(dns, "eero.network.dns.show/v1", output.WithNetworkID(id))
			})
		},
	})
	return cmd
}

func newNetworkSQMCmd(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sqm",
		Short: "Inspect smart queue management",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show SQM state and bandwidth limits",
		Args:  args(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return env.withClient(cmd, func(ctx context.Context, c *eero.Client) error {
				id, err := env.networkID(ctx, c)
				if err != nil {
					return err
				}
				sqm, err := c.SQMSettings(ctx, id)
				if err != nil {
					return err
				}
				return env.Out.Render(sqm, "eero.network.sqm.show/v1", output.WithNetworkID(id))
			})
		},
	})
	return cmd
}

// newNetworkSecurityCmd returns "network security" with show, enable and
// disable. Toggles are medium risk: clients may have to reconnect.
func newNetworkSecurityCmd(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "security",
		Short: "Inspect and toggle security settings",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show WPA3, band steering, UPnP, IPv6 and Thread state",
			Args:  args(cobra.NoArgs),
			RunE: func(cmd *cobra.Command, _ []string) error {
				return env.withClient(cmd, func(ctx context.Context, c *eero.Client) error {
					n, id, err := currentNetwork(ctx, env, c)
					if err != nil {
						return err
					}
					return env.Out.Render(n.Security(), "eero.network.security.show/v1", output.WithNetworkID(id))
				})
			},
		},
		newSecurityToggleCmd(env, true),
		newSecurityToggleCmd(env, false),
	)
	return cmd
}

func newSecurityToggleCmd(env *Env, enable bool) *cobra.Command {
	verb, short := "disable", "Disable a security feature"
	if enable {
		verb, short = "enable", "Enable a security feature"
	}
	names := model.SecurityFeatureNames()

	return &cobra.Command{
		Use:       verb + " " + strings.Join(names, "|"),
		Short:     short,
		ValidArgs: names,
		Args:      args(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, a []string) error {
			feature, ok := model.LookupSecurityFeature(a[0])
			if !ok {
				return usageError(cmd, fmt.Errorf("unknown feature %q: must be one of %s", a[0], strings.Join(names, ", ")))
			}
			return env.withClient(cmd, func(ctx context.Context, c *eero.Client) error {
				n, id, err := currentNetwork(ctx, env, c)
				if err != nil {
					return err
				}
				ch := change{
					req:       safety.Request{Action: verb + " " + feature.Label, Target: "on " + n.Name, Risk: safety.Medium},
					schema:    "eero.network.security/v1",
					networkID: id,
				}
				return env.apply(ch, func() error { return c.SetSecurityFeature(ctx, id, feature, enable) })
			})
		},
	}
}
