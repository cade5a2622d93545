package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/fulviofreitas/eeroctl/internal/eero"
	"github.com/fulviofreitas/eeroctl/internal/exitcode"
	"github.com/fulviofreitas/eeroctl/internal/output"
	"github.com/fulviofreitas/eeroctl/internal/session"
)

// newAuthCmd returns the "auth" parent command with all sub-commands.
func newAuthCmd(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Log in, log out and inspect the saved session",
	}
	cmd.AddCommand(
		newAuthLoginCmd(env),
		newAuthLogoutCmd(env),
		newAuthStatusCmd(env),
	)
	return cmd
}

// newAuthLoginCmd returns "auth login": request a verification code, verify
// it and persist the session.
func newAuthLoginCmd(env *Env) *cobra.Command {
	var login, code string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in with a verification code sent to your email or phone",
		Example: "  eeroctl auth login\n" +
			"  eeroctl auth login --email me@example.com --code 123456",
		Args: args(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), env.Config.Timeout)
			defer cancel()

			if sess, err := env.session(); err == nil && !env.Safety.Force {
				if _, err := env.newClient(sess.UserToken).Account(ctx); err == nil {
					env.Out.Info("Already logged in. Use --force to log in again.")
					return env.Out.Render(loginRecord(env, true, ""), "eero.auth.login/v1")
				}
				env.Out.Info("Saved session is no longer valid. Starting a new login.")
			}

			if login == "" {
				if env.Safety.NonInteractive {
					return usageError(cmd, errors.New("--email is required with --non-interactive"))
				}
				var err error
				if login, err = env.Gate.Prompt("Email or phone number: "); err != nil || login == "" {
					return usageError(cmd, errors.New("an email or phone number is required"))
				}
			}

			client := env.newClient("")
			if _, err := client.Login(ctx, login); err != nil {
				return fmt.Errorf("request verification code: %w", err)
			}
			env.Out.Info("Verification code sent to %s.", login)

			if code == "" {
				if env.Safety.NonInteractive {
					return usageError(cmd, errors.New("--code is required with --non-interactive"))
				}
				var err error
				if code, err = env.Gate.Prompt("Verification code: "); err != nil || code == "" {
					return usageError(cmd, errors.New("a verification code is required"))
				}
			}
			if err := client.Verify(ctx, code); err != nil {
				return fmt.Errorf("verify code: %w", err)
			}

			sess := session.Session{UserToken: client.Token(), CreatedAt: env.Now().UTC()}
			if err := env.Sessions.Save(sess); err != nil {
				return err
			}
			env.Out.Success("Logged in as %s.", login)
			return env.Out.Render(loginRecord(env, true, login), "eero.auth.login/v1")
		},
	}
	cmd.Flags().StringVar(&login, "email", "", "Email address or phone number of the account")
	cmd.Flags().StringVar(&code, "code", "", "Verification code (prompted when omitted)")
	return cmd
}

func loginRecord(env *Env, authenticated bool, login string) output.Record {
	var who any
	if login != "" {
		who = login
	}
	return output.Record{
		{Key: "authenticated", Value: authenticated},
		{Key: "login", Value: who},
		{Key: "session_file", Value: env.Sessions.Path()},
	}
}

// newAuthLogoutCmd returns "auth logout": end the server session and
// remove the saved one.
func newAuthLogoutCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the current session",
		Args:  args(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := env.Sessions.Load()
			if errors.Is(err, session.ErrNoSession) {
				env.Out.Info("Not logged in.")
				return env.Out.Mutation(false, "logout", "session", "eero.auth.logout/v1")
			}
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), env.Config.Timeout)
			defer cancel()
			if err := env.newClient(sess.UserToken).Logout(ctx); err != nil {
				env.Logger.Debug().Err(err).Msg("server logout failed")
				env.Out.Warning("Server logout failed: %v", err)
			}
			if err := env.Sessions.Clear(); err != nil {
				return err
			}
			return env.Out.Mutation(true, "logout", "session", "eero.auth.logout/v1")
		},
	}
}

// newAuthStatusCmd returns "auth status": report the saved session and,
// when it is still accepted, the account behind it.
func newAuthStatusCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show authentication status",
		Args:  args(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			rec := output.Record{
				{Key: "authenticated", Value: false},
				{Key: "session_valid", Value: false},
				{Key: "session_file", Value: env.Sessions.Path()},
				{Key: "created_at", Value: nil},
				{Key: "expires_at", Value: nil},
				{Key: "account", Value: nil},
				{Key: "networks", Value: []any{}},
			}
			var warnings []string

			sess, err := env.Sessions.Load()
			switch {
			case errors.Is(err, session.ErrNoSession):
				warnings = append(warnings, "not logged in, run 'eeroctl auth login'")
			case err != nil:
				return err
			default:
				rec = rec.Set("authenticated", true)
				if !sess.CreatedAt.IsZero() {
					rec = rec.Set("created_at", sess.CreatedAt.UTC().Format(time.RFC3339))
				}
				if sess.Expiry != nil {
					rec = rec.Set("expires_at", sess.Expiry.UTC().Format(time.RFC3339))
				}
				rec, warnings = checkAccount(cmd.Context(), env, sess, rec)
			}
			return env.Out.Render(rec, "eero.auth.status/v1", env.warnings(warnings))
		},
	}
}

func checkAccount(ctx context.Context, env *Env, sess session.Session, rec output.Record) (output.Record, []string) {
	if !sess.Valid(env.Now()) {
		return rec, []string{"session expired, run 'eeroctl auth login'"}
	}
	ctx, cancel := context.WithTimeout(ctx, env.Config.Timeout)
	defer cancel()

	acct, err := env.newClient(sess.UserToken).Account(ctx)
	if err != nil {
		var apiErr *eero.APIError
		if errors.As(err, &apiErr) && apiErr.ExitCode() == exitcode.AuthRequired {
			return rec, []string{"session rejected by the API, run 'eeroctl auth login'"}
		}
		return rec, []string{"could not reach the API: " + err.Error()}
	}
	networks := make([]any, 0, len(acct.Networks))
	for _, n := range acct.Networks {
		networks = append(networks, output.Record{{Key: "id", Value: n.ID}, {Key: "name", Value: n.Name}})
	}
	rec = rec.Set("session_valid", true)
	rec = rec.Set("account", acct)
	rec = rec.Set("networks", networks)
	return rec, nil
}
