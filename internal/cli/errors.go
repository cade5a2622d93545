package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fulviofreitas/eeroctl/internal/eero"
	"github.com/fulviofreitas/eeroctl/internal/exitcode"
	"github.com/fulviofreitas/eeroctl/internal/session"
)

const loginHint = "Run 'eeroctl auth login' to authenticate."

// classify maps a command failure to its exit code and an optional hint.
func classify(cmd *cobra.Command, err error) (exitcode.Code, string) {
	code := exitcode.FromError(err)
	hint := exitcode.HintFrom(err)

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		code = exitcode.Timeout
		if hint == "" {
			hint = "The request timed out. Raise 'timeout' in the config file or set EEROCTL_TIMEOUT."
		}
	case errors.Is(err, eero.ErrUnauthenticated), errors.Is(err, session.ErrNoSession):
		code = exitcode.AuthRequired
	case code == exitcode.GenericError && isCobraUsage(err):
		code = exitcode.UsageError
		if hint == "" && cmd != nil {
			hint = fmt.Sprintf("Run '%s --help' for usage.", cmd.CommandPath())
		}
	}
	if code == exitcode.AuthRequired && hint == "" {
		hint = loginHint
	}
	return code, hint
}

// isCobraUsage recognises the argument errors cobra raises before any flag
// error func or RunE gets a chance to tag them.
func isCobraUsage(err error) bool {
	msg := err.Error()
	for _, prefix := range []string{"unknown command", "unknown flag", "unknown shorthand flag", "invalid argument"} {
		if strings.HasPrefix(msg, prefix) {
			return true
		}
	}
	return false
}

// usageError tags err as a usage error with a pointer to the command help.
func usageError(cmd *cobra.Command, err error) error {
	return exitcode.WithHint(exitcode.UsageError, err, fmt.Sprintf("Run '%s --help' for usage.", cmd.CommandPath()))
}

// args wraps a positional argument validator so its failures exit with the
// usage code.
func args(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, a []string) error {
		if err := validate(cmd, a); err != nil {
			return usageError(cmd, err)
		}
		return nil
	}
}

// requireFlag fails with a usage error when a mandatory flag is empty.
func requireFlag(cmd *cobra.Command, name, value string) error {
	if strings.TrimSpace(value) == "" {
		return usageError(cmd, fmt.Errorf("--%s is required", name))
	}
	return nil
}
