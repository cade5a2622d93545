package diagnose_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fulviofreitas/eeroctl/internal/diagnose"
	"github.com/fulviofreitas/eeroctl/internal/eero"
	"github.com/fulviofreitas/eeroctl/internal/eero/eerotest"
	"github.com/fulviofreitas/eeroctl/internal/model"
	"github.com/fulviofreitas/eeroctl/internal/session"
)

// mockAPI implements diagnose.API for testing.
type mockAPI struct {
	account    model.Account
	accountErr error
	network    model.Network
	networkErr error
	eeros      []model.Eero
	eerosErr   error
}

func (m *mockAPI) Account(ctx context.Context) (model.Account, error) {
	return m.account, m.accountErr
}

func (m *mockAPI) Network(ctx context.Context, networkID string) (model.Network, error) {
	return m.network, m.networkErr
}

func (m *mockAPI) Eeros(ctx context.Context, networkID string) ([]model.Eero, error) {
	return m.eeros, m.eerosErr
}

var now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func liveSession() session.Session {
	return session.Session{UserToken: "t", CreatedAt: now.Add(-time.Hour)}
}

func healthyAPI() *mockAPI {
	return &mockAPI{
		account: model.Account{Email: "jo@example.com", Networks: []model.Network{{ID: "1001"}}},
		network: model.Network{ID: "1001", Name: "Home", Status: "online", PremiumStatus: "active"},
		eeros: []model.Eero{
			{ID: "e1", Name: "Living Room", Status: "green", IsGateway: true},
			{ID: "e2", Name: "Hallway", Status: "green"},
		},
	}
}

func statuses(rep *diagnose.Report) map[string]diagnose.Status {
	out := make(map[string]diagnose.Status)
	for _, c := range rep.Checks {
		out[c.Name] = c.Status
	}
	return out
}

func TestCollect_AllHealthy(t *testing.T) {
	rep := diagnose.Collect(context.Background(), healthyAPI(), diagnose.Input{Session: liveSession(), Now: now})

	if !rep.Healthy() {
		t.Fatalf("expected healthy report, got %+v", rep.Checks)
	}
	if rep.NetworkID != "1001" {
		t.Errorf("expected network id from account, got %q", rep.NetworkID)
	}
	if len(rep.Checks) != 6 {
		t.Errorf("expected 6 checks, got %d", len(rep.Checks))
	}
	if w := rep.Warnings(); len(w) != 0 {
		t.Errorf("expected no warnings, got %v", w)
	}
	if c, _ := rep.Check(diagnose.CheckAPI); c.Detail != "signed in as jo@example.com" {
		t.Errorf("unexpected api detail %q", c.Detail)
	}
}

func TestCollect_NoSessionSkipsRemoteChecks(t *testing.T) {
	api := healthyAPI()
	rep := diagnose.Collect(context.Background(), api, diagnose.Input{SessionErr: session.ErrNoSession, Now: now})

	got := statuses(rep)
	if got[diagnose.CheckSession] != diagnose.StatusFail {
		t.Errorf("expected session fail, got %s", got[diagnose.CheckSession])
	}
	for _, name := range []string{diagnose.CheckAPI, diagnose.CheckNetwork, diagnose.CheckGateway, diagnose.CheckPremium} {
		if got[name] != diagnose.StatusSkip {
			t.Errorf("expected %s skipped, got %s", name, got[name])
		}
	}
	if w := rep.Warnings(); len(w) != 1 {
		t.Errorf("expected one warning, got %v", w)
	}
}

func TestCollect_ExpiredSession(t *testing.T) {
	expired := now.Add(-time.Minute)
	sess := session.Session{UserToken: "t", Expiry: &expired}
	rep := diagnose.Collect(context.Background(), healthyAPI(), diagnose.Input{Session: sess, Now: now})

	if c, _ := rep.Check(diagnose.CheckSession); c.Status != diagnose.StatusFail {
		t.Errorf("expected expired session to fail, got %+v", c)
	}
}

func TestCollect_Degradation(t *testing.T) {
	api := healthyAPI()
	api.network = model.Network{ID: "1001", Name: "Home", Status: "offline", PremiumStatus: ""}
	api.eerosErr = errors.New("boom")

	rep := diagnose.Collect(context.Background(), api, diagnose.Input{Session: liveSession(), NetworkID: "1001", Now: now})

	got := statuses(rep)
	if got[diagnose.CheckNetwork] != diagnose.StatusWarn {
		t.Errorf("expected network warn, got %s", got[diagnose.CheckNetwork])
	}
	if got[diagnose.CheckGateway] != diagnose.StatusFail {
		t.Errorf("expected gateway fail, got %s", got[diagnose.CheckGateway])
	}
	if got[diagnose.CheckPremium] != diagnose.StatusWarn {
		t.Errorf("expected premium warn, got %s", got[diagnose.CheckPremium])
	}
	if rep.Healthy() {
		t.Error("expected unhealthy report")
	}
	if w := rep.Warnings(); len(w) != 3 {
		t.Errorf("expected 3 warnings, got %v", w)
	}
}

func TestCollect_NetworkFailureSkipsPremium(t *testing.T) {
	api := healthyAPI()
	api.networkErr = errors.New("gone")

	rep := diagnose.Collect(context.Background(), api, diagnose.Input{Session: liveSession(), Now: now})

	got := statuses(rep)
	if got[diagnose.CheckNetwork] != diagnose.StatusFail {
		t.Errorf("expected network fail, got %s", got[diagnose.CheckNetwork])
	}
	if got[diagnose.CheckGateway] != diagnose.StatusOK {
		t.Errorf("expected gateway to be checked independently, got %s", got[diagnose.CheckGateway])
	}
	if got[diagnose.CheckPremium] != diagnose.StatusSkip {
		t.Errorf("expected premium skipped, got %s", got[diagnose.CheckPremium])
	}
}

func TestCollect_NoNetworks(t *testing.T) {
	api := healthyAPI()
	api.account.Networks = nil

	rep := diagnose.Collect(context.Background(), api, diagnose.Input{Session: liveSession(), Now: now})
	if c, _ := rep.Check(diagnose.CheckNetwork); c.Status != diagnose.StatusWarn {
		t.Errorf("expected network warn, got %+v", c)
	}
}

func TestCollect_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("default_output: json\n"), 0600); err != nil {
		t.Fatal(err)
	}
	rep := diagnose.Collect(context.Background(), nil, diagnose.Input{ConfigPath: path, SessionErr: session.ErrNoSession, Now: now})
	if c, _ := rep.Check(diagnose.CheckConfig); c.Status != diagnose.StatusOK || c.Detail != path {
		t.Errorf("unexpected config check %+v", c)
	}

	missing := filepath.Join(t.TempDir(), "absent.yaml")
	rep = diagnose.Collect(context.Background(), nil, diagnose.Input{ConfigPath: missing, SessionErr: session.ErrNoSession, Now: now})
	if c, _ := rep.Check(diagnose.CheckConfig); c.Status != diagnose.StatusOK {
		t.Errorf("missing config should not warn, got %+v", c)
	}
}

func TestCollect_AgainstFakeAPI(t *testing.T) {
	srv := eerotest.NewServer(t)
	client := eero.NewClient(srv.URL, eero.WithToken(eerotest.Token), eero.WithRateLimit(0, 0))

	rep := diagnose.Collect(context.Background(), client, diagnose.Input{Session: liveSession(), Now: now})
	if !rep.Healthy() {
		t.Fatalf("expected healthy report, got %+v", rep.Checks)
	}
	if rep.NetworkID != eerotest.NetworkID {
		t.Errorf("expected network %s, got %s", eerotest.NetworkID, rep.NetworkID)
	}
}

func TestCheckConnectivity(t *testing.T) {
	srv := eerotest.NewServer(t)
	client := eero.NewClient(srv.URL, eero.WithToken(eerotest.Token), eero.WithRateLimit(0, 0))

	c, err := diagnose.CheckConnectivity(context.Background(), client, eerotest.NetworkID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Status != "online" || c.Gateway != "Living Room" || !c.GatewayUp {
		t.Errorf("unexpected connectivity %+v", c)
	}
	if c.NodesTotal != 2 || c.NodesHealthy != 2 {
		t.Errorf("expected 2/2 healthy nodes, got %d/%d", c.NodesHealthy, c.NodesTotal)
	}
	if w := c.Warnings(); len(w) != 0 {
		t.Errorf("expected no warnings, got %v", w)
	}

	srv.Fail("GET", "/networks/"+eerotest.NetworkID+"/eeros", 500, "error.internal")
	if _, err := diagnose.CheckConnectivity(context.Background(), client, eerotest.NetworkID); err == nil {
		t.Error("expected error when nodes cannot be listed")
	}
}

func TestConnectivityWarnings(t *testing.T) {
	c := diagnose.Connectivity{Status: "offline", Gateway: "GW", NodesTotal: 2, NodesHealthy: 1}
	if w := c.Warnings(); len(w) != 3 {
		t.Errorf("expected 3 warnings, got %v", w)
	}
}
