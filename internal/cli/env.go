package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/fulviofreitas/eeroctl/internal/config"
	"github.com/fulviofreitas/eeroctl/internal/eero"
	"github.com/fulviofreitas/eeroctl/internal/exitcode"
	"github.com/fulviofreitas/eeroctl/internal/output"
	"github.com/fulviofreitas/eeroctl/internal/safety"
	"github.com/fulviofreitas/eeroctl/internal/session"
)

// Env is the per-invocation state shared by every command. It is filled in
// once by the root PersistentPreRunE and read-only afterwards.
type Env struct {
	Config   *config.Config
	Out      *output.Renderer
	Gate     *safety.Gate
	Safety   safety.Flags
	Logger   zerolog.Logger
	Sessions *session.Store
	// NetworkID is --network-id, else the preferred network from config.
	NetworkID string
	Now       func() time.Time
}

// newClient builds an API client for token with the configured endpoint,
// timeout and pacing.
func (e *Env) newClient(token string) *eero.Client {
	return eero.NewClient(e.Config.APIURL,
		eero.WithToken(token),
		eero.WithUserAgent("eeroctl/"+Version),
		eero.WithLogger(e.Logger),
		eero.WithHTTPClient(&http.Client{Timeout: e.Config.Timeout}),
		eero.WithRateLimit(rate.Limit(e.Config.RateLimit), 1),
	)
}

// session loads the saved session and checks that it is still usable.
func (e *Env) session() (session.Session, error) {
	sess, err := e.Sessions.Load()
	if errors.Is(err, session.ErrNoSession) {
		return sess, exitcode.WithHint(exitcode.AuthRequired, errors.New("not logged in"), loginHint)
	}
	if err != nil {
		return sess, err
	}
	if !sess.Valid(e.Now()) {
		return sess, exitcode.WithHint(exitcode.AuthRequired, errors.New("session expired"), loginHint)
	}
	return sess, nil
}

// withClient runs fn with an authenticated client and a context bounded by
// the configured timeout. The context is released on every return path.
func (e *Env) withClient(cmd *cobra.Command, fn func(ctx context.Context, c *eero.Client) error) error {
	sess, err := e.session()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(cmd.Context(), e.Config.Timeout)
	defer cancel()
	return fn(ctx, e.newClient(sess.UserToken))
}

// networkID returns the network to operate on: the flag or preferred
// network when set, else the first network on the account.
func (e *Env) networkID(ctx context.Context, c *eero.Client) (string, error) {
	if e.NetworkID != "" {
		return e.NetworkID, nil
	}
	networks, err := c.Networks(ctx)
	if err != nil {
		return "", err
	}
	if len(networks) == 0 {
		return "", exitcode.Errorf(exitcode.NotFound, "no networks found on this account")
	}
	e.Logger.Debug().Str("network_id", networks[0].ID).Msg("defaulting to first network")
	return networks[0].ID, nil
}

// change is one gated mutation.
type change struct {
	req       safety.Request
	schema    string
	networkID string
}

// apply passes the change through the safety gate and, when approved,
// issues call and reports the outcome. A dry run reports an unchanged
// mutation without calling.
func (e *Env) apply(ch change, call func() error) error {
	ok, err := e.Gate.Require(ch.req, e.Safety)
	if err != nil {
		return err
	}
	if ok {
		if err := call(); err != nil {
			return err
		}
		e.Logger.Debug().Str("action", ch.req.Action).Str("target", ch.req.Target).Msg("applied")
	}
	return e.Out.Mutation(ok, ch.req.Action, ch.req.Target, ch.schema, output.WithNetworkID(ch.networkID))
}

// warnings prints ws on stderr for human formats and returns the option
// that carries them in the structured envelope.
func (e *Env) warnings(ws []string) output.Option {
	if !e.Out.Format().Structured() {
		for _, w := range ws {
			e.Out.Warning("%s", w)
		}
	}
	return output.WithWarnings(ws...)
}
