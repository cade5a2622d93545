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

var deviceColumns = []output.Column{
	{Header: "ID", Key: "id"},
	{Header: "Name", Key: "display_name"},
	{Header: "IP", Key: "ip"},
	{Header: "MAC", Key: "mac"},
	{Header: "Connected", Key: "connected"},
	{Header: "Profile", Key: "profile_name"},
}

// newDeviceCmd returns the "device" parent command for network clients.
func newDeviceCmd(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "device",
		Aliases: []string{"client"},
		Short:   "Inspect and manage client devices",
	}
	cmd.AddCommand(
		newDeviceListCmd(env),
		newDeviceShowCmd(env),
		newDeviceRenameCmd(env),
		newDeviceBlockCmd(env, true),
		newDeviceBlockCmd(env, false),
		newDevicePriorityCmd(env),
	)
	return cmd
}

func newDeviceListCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the devices seen on the network",
		Args:  args(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return env.withClient(cmd, func(ctx context.Context, c *eero.Client) error {
				id, err := env.networkID(ctx, c)
				if err != nil {
					return err
				}
				devices, err := c.Devices(ctx, id)
				if err != nil {
					return err
				}
				return env.Out.Render(devices, "eero.device.list/v1",
					output.WithColumns(deviceColumns...), output.WithNetworkID(id))
			})
		},
	}
}

func newDeviceShowCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "show <device>",
		Short: "Show one device by id, MAC, nickname or hostname",
		Args:  args(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, a []string) error {
			return env.withClient(cmd, func(ctx context.Context, c *eero.Client) error {
				d, id, err := findDevice(ctx, env, c, a[0])
				if err != nil {
					return err
				}
				return env.Out.Render(d, "eero.device.show/v1", output.WithNetworkID(id))
			})
		},
	}
}

// deviceList fetches the devices of the current network.
func deviceList(ctx context.Context, env *Env, c *eero.Client) ([]model.Device, string, error) {
	id, err := env.networkID(ctx, c)
	if err != nil {
		return nil, "", err
	}
	devices, err := c.Devices(ctx, id)
	if err != nil {
		return nil, "", err
	}
	return devices, id, nil
}

func findDevice(ctx context.Context, env *Env, c *eero.Client, query string) (model.Device, string, error) {
	devices, id, err := deviceList(ctx, env, c)
	if err != nil {
		return model.Device{}, "", err
	}
	d, err := resolve.Device(devices, query)
	return d, id, err
}

func newDeviceRenameCmd(env *Env) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "rename <device>",
		Short: "Set the nickname of a device",
		Args:  args(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, a []string) error {
			if err := requireFlag(cmd, "name", name); err != nil {
				return err
			}
			return env.withClient(cmd, func(ctx context.Context, c *eero.Client) error {
				d, id, err := findDevice(ctx, env, c, a[0])
				if err != nil {
					return err
				}
				ch := change{
					req:       safety.Request{Action: "rename device", Target: fmt.Sprintf("%s to '%s'", d.Name(), name), Risk: safety.Low},
					schema:    "eero.device.rename/v1",
					networkID: id,
				}
				return env.apply(ch, func() error {
					return c.UpdateDevice(ctx, id, d.ID, eero.DeviceUpdate{Nickname: &name})
				})
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "New nickname (required)")
	return cmd
}

// targetResult is the outcome of one target of a multi-target command.
type targetResult struct {
	Target  string
	Changed bool
	Err     error
}

// Record implements output.Recorder.
func (r targetResult) Record() output.Record {
	var msg any
	if r.Err != nil {
		msg = r.Err.Error()
	}
	return output.Record{
		{Key: "target", Value: r.Target},
		{Key: "changed", Value: r.Changed},
		{Key: "error", Value: msg},
	}
}

// newDeviceBlockCmd returns "device block" or "device unblock". Targets are
// processed one at a time against a single device listing.
func newDeviceBlockCmd(env *Env, block bool) *cobra.Command {
	verb, short := "unblock", "Allow blocked devices back on the network"
	if block {
		verb, short = "block", "Block devices from the network"
	}
	schema := "eero.device." + verb + "/v1"

	return &cobra.Command{
		Use:   verb + " <device>...",
		Short: short,
		Args:  args(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, a []string) error {
			return env.withClient(cmd, func(ctx context.Context, c *eero.Client) error {
				devices, id, err := deviceList(ctx, env, c)
				if err != nil {
					return err
				}
				update := eero.DeviceUpdate{Blocked: &block}

				if len(a) == 1 {
					d, err := resolve.Device(devices, a[0])
					if err != nil {
						return err
					}
					ch := change{
						req:       safety.Request{Action: verb, Target: d.Name(), Risk: safety.Medium},
						schema:    schema,
						networkID: id,
					}
					return env.apply(ch, func() error { return c.UpdateDevice(ctx, id, d.ID, update) })
				}

				results := make([]targetResult, 0, len(a))
				for _, query := range a {
					res := targetResult{Target: query}
					d, err := resolve.Device(devices, query)
					if err == nil {
						res.Target = d.Name()
						res.Changed, err = env.Gate.Require(safety.Request{Action: verb, Target: d.Name(), Risk: safety.Medium}, env.Safety)
						if err == nil && res.Changed {
							err = c.UpdateDevice(ctx, id, d.ID, update)
							res.Changed = err == nil
						}
					}
					res.Err = err
					results = append(results, res)
				}
				return reportTargets(env, verb, schema, id, results)
			})
		},
	}
}

// reportTargets renders per-target outcomes and folds them into one error:
// nil when all succeeded, the first error when all failed, otherwise a
// partial success.
func reportTargets(env *Env, action, schema, networkID string, results []targetResult) error {
	var warnings []string
	var failed []error
	for _, r := range results {
		if r.Err != nil {
			warnings = append(warnings, fmt.Sprintf("%s: %v", r.Target, r.Err))
			failed = append(failed, r.Err)
		}
	}

	if env.Out.Format().Structured() {
		if err := env.Out.Render(results, schema,
			output.WithNetworkID(networkID), output.WithWarnings(warnings...)); err != nil {
			return err
		}
	} else {
		for _, r := range results {
			if r.Err != nil {
				env.Out.Error(fmt.Sprintf("%s: %s", action, r.Target), r.Err.Error())
				continue
			}
			if err := env.Out.Mutation(r.Changed, action, r.Target, schema); err != nil {
				return err
			}
		}
	}

	switch len(failed) {
	case 0:
		return nil
	case len(results):
		return failed[0]
	}
	return exitcode.Errorf(exitcode.PartialSuccess, "%s succeeded for %d of %d devices",
		action, len(results)-len(failed), len(results))
}

func newDevicePriorityCmd(env *Env) *cobra.Command {
	var minutes int

	cmd := &cobra.Command{
		Use:       "priority on|off <device>",
		Short:     "Prioritize bandwidth for a device",
		Args:      args(cobra.ExactArgs(2)),
		ValidArgs: []string{"on", "off"},
		RunE: func(cmd *cobra.Command, a []string) error {
			on, err := parseOnOff(cmd, a[0])
			if err != nil {
				return err
			}
			if minutes < 0 {
				return usageError(cmd, fmt.Errorf("--minutes must not be negative"))
			}
			return env.withClient(cmd, func(ctx context.Context, c *eero.Client) error {
				d, id, err := findDevice(ctx, env, c, a[1])
				if err != nil {
					return err
				}
				update := eero.DeviceUpdate{Prioritized: &on}
				target := d.Name()
				if on && minutes > 0 {
					update.PriorityMinutes = minutes
					target = fmt.Sprintf("%s for %d minutes", d.Name(), minutes)
				}
				ch := change{
					req:       safety.Request{Action: "turn priority " + a[0], Target: target, Risk: safety.Medium},
					schema:    "eero.device.priority/v1",
					networkID: id,
				}
				return env.apply(ch, func() error { return c.UpdateDevice(ctx, id, d.ID, update) })
			})
		},
	}
	cmd.Flags().IntVar(&minutes, "minutes", 0, "Stop prioritizing after this many minutes (0 means indefinitely)")
	return cmd
}
