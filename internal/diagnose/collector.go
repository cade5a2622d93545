package diagnose

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fulviofreitas/eeroctl/internal/model"
	"github.com/fulviofreitas/eeroctl/internal/session"
)

// Check names in collection order.
const (
	CheckConfig  = "config"
	CheckSession = "session"
	CheckAPI     = "api"
	CheckNetwork = "network"
	CheckGateway = "gateway"
	CheckPremium = "premium"
)

// Input is the local state the collector inspects.
type Input struct {
	ConfigPath string
	// Session is the result of loading the session store.
	Session    session.Session
	SessionErr error
	NetworkID  string
	Now        time.Time
}

// Collect runs every check in order. A check whose prerequisite failed is
// recorded as skipped. api may be nil when there is no usable session.
func Collect(ctx context.Context, api API, in Input) *Report {
	if in.Now.IsZero() {
		in.Now = time.Now()
	}
	rep := &Report{CollectedAt: in.Now, NetworkID: in.NetworkID}

	collectConfig(rep, in)
	if !collectSession(rep, in) {
		api = nil
	}
	acct, ok := collectAPI(ctx, api, rep)
	if !ok {
		rep.add(CheckNetwork, StatusSkip, "API unreachable")
		rep.add(CheckGateway, StatusSkip, "API unreachable")
		rep.add(CheckPremium, StatusSkip, "API unreachable")
		return rep
	}

	if rep.NetworkID == "" && len(acct.Networks) > 0 {
		rep.NetworkID = acct.Networks[0].ID
	}
	if rep.NetworkID == "" {
		rep.add(CheckNetwork, StatusWarn, "account has no networks")
		rep.add(CheckGateway, StatusSkip, "no network")
		rep.add(CheckPremium, StatusSkip, "no network")
		return rep
	}

	network, ok := collectNetwork(ctx, api, rep)
	collectGateway(ctx, api, rep)
	if ok {
		collectPremium(rep, network)
	} else {
		rep.add(CheckPremium, StatusSkip, "network unavailable")
	}
	return rep
}

func collectConfig(rep *Report, in Input) {
	if in.ConfigPath == "" {
		rep.add(CheckConfig, StatusOK, "defaults")
		return
	}
	if _, err := os.Stat(in.ConfigPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			rep.add(CheckConfig, StatusOK, fmt.Sprintf("no file at %s, using defaults", in.ConfigPath))
			return
		}
		rep.add(CheckConfig, StatusWarn, err.Error())
		return
	}
	rep.add(CheckConfig, StatusOK, in.ConfigPath)
}

func collectSession(rep *Report, in Input) bool {
	switch {
	case errors.Is(in.SessionErr, session.ErrNoSession):
		rep.add(CheckSession, StatusFail, "not logged in, run 'eeroctl auth login'")
		return false
	case in.SessionErr != nil:
		rep.add(CheckSession, StatusFail, in.SessionErr.Error())
		return false
	case !in.Session.Valid(in.Now):
		rep.add(CheckSession, StatusFail, "session expired, run 'eeroctl auth login'")
		return false
	case in.Session.Expiry != nil:
		rep.add(CheckSession, StatusOK, "valid until "+in.Session.Expiry.UTC().Format(time.RFC3339))
	default:
		rep.add(CheckSession, StatusOK, "valid")
	}
	return true
}

func collectAPI(ctx context.Context, api API, rep *Report) (model.Account, bool) {
	if api == nil {
		rep.add(CheckAPI, StatusSkip, "no session")
		return model.Account{}, false
	}
	acct, err := api.Account(ctx)
	if err != nil {
		rep.add(CheckAPI, StatusFail, err.Error())
		return model.Account{}, false
	}
	who := acct.Email
	if who == "" {
		who = acct.Name
	}
	rep.add(CheckAPI, StatusOK, "signed in as "+who)
	return acct, true
}

func collectNetwork(ctx context.Context, api API, rep *Report) (model.Network, bool) {
	n, err := api.Network(ctx, rep.NetworkID)
	if err != nil {
		rep.add(CheckNetwork, StatusFail, err.Error())
		return model.Network{}, false
	}
	detail := fmt.Sprintf("%s is %s", n.Name, n.Status)
	if n.Status != "online" {
		rep.add(CheckNetwork, StatusWarn, detail)
	} else {
		rep.add(CheckNetwork, StatusOK, detail)
	}
	return n, true
}

func collectGateway(ctx context.Context, api API, rep *Report) {
	eeros, err := api.Eeros(ctx, rep.NetworkID)
	if err != nil {
		rep.add(CheckGateway, StatusFail, err.Error())
		return
	}
	gw, ok := Gateway(eeros)
	if !ok {
		rep.add(CheckGateway, StatusWarn, "no gateway node found")
		return
	}
	detail := fmt.Sprintf("%s is %s", gw.Name, gw.Status)
	if !NodeHealthy(gw) {
		rep.add(CheckGateway, StatusWarn, detail)
		return
	}
	rep.add(CheckGateway, StatusOK, detail)
}

func collectPremium(rep *Report, n model.Network) {
	if n.Premium() {
		rep.add(CheckPremium, StatusOK, "Eero Plus "+n.PremiumStatus)
		return
	}
	status := n.PremiumStatus
	if status == "" {
		status = "inactive"
	}
	rep.add(CheckPremium, StatusWarn, "Eero Plus "+status+", activity reports unavailable")
}

// Gateway returns the node holding the WAN link.
func Gateway(eeros []model.Eero) (model.Eero, bool) {
	for _, e := range eeros {
		if e.IsGateway {
			return e, true
		}
	}
	return model.Eero{}, false
}

// NodeHealthy reports whether a node status means it is up. Nodes report
// colour codes ("green") or words ("online", "connected").
func NodeHealthy(e model.Eero) bool {
	switch strings.ToLower(e.Status) {
	case "green", "online", "connected":
		return true
	}
	return false
}
