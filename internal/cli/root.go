package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/fulviofreitas/eeroctl/internal/config"
	"github.com/fulviofreitas/eeroctl/internal/exitcode"
	"github.com/fulviofreitas/eeroctl/internal/logging"
	"github.com/fulviofreitas/eeroctl/internal/output"
	"github.com/fulviofreitas/eeroctl/internal/safety"
	"github.com/fulviofreitas/eeroctl/internal/session"
)

// Version is set at build time with
// -ldflags "-X github.com/fulviofreitas/eeroctl/internal/cli.Version=v1.2.3".
var Version = "dev"

// globalFlags are the persistent flags shared by every command.
type globalFlags struct {
	cfgFile        string
	format         output.Format
	networkID      string
	nonInteractive bool
	force          bool
	dryRun         bool
	debug          bool
	quiet          bool
	noColor        bool
}

// NewRootCmd builds and returns the root cobra.Command for the eeroctl CLI.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&Env{})
}

// newRootCmd builds the command tree. env is a shared pointer populated in
// PersistentPreRunE before any subcommand runs.
func newRootCmd(env *Env) *cobra.Command {
	var flags globalFlags

	root := &cobra.Command{
		Use:   "eeroctl",
		Short: "Manage Eero mesh Wi-Fi networks",
		Long: "eeroctl manages Eero mesh Wi-Fi networks through the Eero cloud API: " +
			"networks, nodes, client devices, profiles and diagnostics, rendered as " +
			"tables, lists, text, JSON or YAML.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := buildEnv(cmd, flags)
			if err != nil {
				return err
			}
			*env = *loaded
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flags.cfgFile, "config", "", "Config file path (default ~/.config/eeroctl/config.yaml)")
	pf.VarP(&flags.format, "output", "o", "Output format: table|list|json|yaml|text (default from config, else table)")
	pf.StringVarP(&flags.networkID, "network-id", "n", "", "Network to operate on (default: preferred network)")
	pf.BoolVar(&flags.nonInteractive, "non-interactive", false, "Never prompt; refuse operations that need confirmation")
	pf.BoolVarP(&flags.force, "force", "y", false, "Skip confirmation prompts")
	pf.BoolVar(&flags.force, "yes", false, "Alias for --force")
	_ = pf.MarkHidden("yes")
	pf.BoolVar(&flags.dryRun, "dry-run", false, "Show what would change without changing it")
	pf.BoolVar(&flags.debug, "debug", false, "Enable debug logging on stderr")
	pf.BoolVarP(&flags.quiet, "quiet", "q", false, "Suppress informational messages")
	pf.BoolVar(&flags.noColor, "no-color", false, "Disable colored output")

	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return usageError(cmd, err)
	})
	root.CompletionOptions.DisableDefaultCmd = true

	root.AddCommand(
		newAuthCmd(env),
		newNetworkCmd(env),
		newEeroCmd(env),
		newDeviceCmd(env),
		newProfileCmd(env),
		newActivityCmd(env),
		newTroubleshootCmd(env),
		newCompletionCmd(),
		newVersionCmd(env),
	)
	return root
}

// buildEnv loads config and assembles the per-invocation state.
func buildEnv(cmd *cobra.Command, flags globalFlags) (*Env, error) {
	cfg, err := config.Load(flags.cfgFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	format := flags.format
	if format == "" {
		if format, err = output.ParseFormat(cfg.DefaultOutput); err != nil {
			return nil, exitcode.Wrap(exitcode.UsageError, err)
		}
	}

	sessionPath := cfg.SessionFile
	if sessionPath == "" {
		if sessionPath, err = session.DefaultPath(); err != nil {
			return nil, err
		}
	}

	networkID := flags.networkID
	if networkID == "" {
		networkID = cfg.PreferredNetworkID
	}

	logger := logging.New(logging.Options{
		Out:     cmd.ErrOrStderr(),
		Debug:   flags.debug,
		NoColor: flags.noColor,
	})
	logger.Debug().
		Str("config", cfg.Path()).
		Str("session", sessionPath).
		Str("output", string(format)).
		Str("network_id", networkID).
		Msg("invocation")

	return &Env{
		Config: cfg,
		Out: output.New(output.Options{
			Out:       cmd.OutOrStdout(),
			Err:       cmd.ErrOrStderr(),
			Format:    format,
			Quiet:     flags.quiet,
			NoColor:   flags.noColor,
			NetworkID: networkID,
		}),
		Gate: safety.NewGate(cmd.InOrStdin(), cmd.ErrOrStderr()),
		Safety: safety.Flags{
			Force:          flags.force,
			NonInteractive: flags.nonInteractive,
			DryRun:         flags.dryRun,
		},
		Logger:    logger,
		Sessions:  session.NewStore(sessionPath),
		NetworkID: networkID,
		Now:       time.Now,
	}, nil
}

// Run executes one invocation with the given arguments and streams and
// returns the process exit code.
func Run(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer) int {
	env := &Env{}
	root := newRootCmd(env)
	root.SetArgs(args)
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	cmd, err := root.ExecuteContextC(ctx)
	if err == nil {
		return int(exitcode.Success)
	}

	renderer := env.Out
	if renderer == nil {
		renderer = output.New(output.Options{Out: out, Err: errOut})
	}
	code, hint := classify(cmd, err)
	renderer.Error(err.Error(), hint)
	return int(code)
}

// Execute runs eeroctl against the process arguments and streams. Ctrl-C
// cancels the in-flight request.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return Run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
}
