package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fulviofreitas/eeroctl/internal/cli"
	"github.com/fulviofreitas/eeroctl/internal/config"
	"github.com/fulviofreitas/eeroctl/internal/eero/eerotest"
	"github.com/fulviofreitas/eeroctl/internal/exitcode"
	"github.com/fulviofreitas/eeroctl/internal/session"
)

// harness isolates one CLI invocation: a fake API, a temp config dir and a
// session file that is logged in unless removed.
type harness struct {
	t       *testing.T
	api     *eerotest.Server
	dir     string
	session string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	dir := t.TempDir()
	h := &harness{
		t:       t,
		api:     eerotest.NewServer(t),
		dir:     dir,
		session: filepath.Join(dir, "session.json"),
	}
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("EEROCTL_API_URL", h.api.URL)
	t.Setenv("EEROCTL_SESSION_FILE", h.session)
	t.Setenv("EEROCTL_RATE_LIMIT", "0")
	t.Setenv("EEROCTL_NETWORK_ID", "")
	t.Setenv("EEROCTL_OUTPUT", "")
	t.Setenv("EEROCTL_TIMEOUT", "")

	err := session.NewStore(h.session).Save(session.Session{UserToken: eerotest.Token, CreatedAt: time.Now().UTC()})
	require.NoError(t, err)
	return h
}

func (h *harness) logout() {
	h.t.Helper()
	require.NoError(h.t, session.NewStore(h.session).Clear())
}

type result struct {
	code   int
	stdout string
	stderr string
}

func (h *harness) run(stdin string, args ...string) result {
	h.t.Helper()
	var out, errOut bytes.Buffer
	code := cli.Run(context.Background(), args, strings.NewReader(stdin), &out, &errOut)
	return result{code: code, stdout: out.String(), stderr: errOut.String()}
}

// envelope decodes a JSON envelope from stdout.
func (r result) envelope(t *testing.T) map[string]any {
	t.Helper()
	var env map[string]any
	require.NoError(t, json.Unmarshal([]byte(r.stdout), &env), "stdout: %s\nstderr: %s", r.stdout, r.stderr)
	return env
}

func (r result) data(t *testing.T) map[string]any {
	t.Helper()
	data, ok := r.envelope(t)["data"].(map[string]any)
	require.True(t, ok, "data is not an object: %s", r.stdout)
	return data
}

func TestNetworkListJSON(t *testing.T) {
	h := newHarness(t)
	res := h.run("", "-o", "json", "network", "list")
	require.Equal(t, 0, res.code, res.stderr)

	env := res.envelope(t)
	assert.Equal(t, "eero.network.list/v1", env["schema"])
	items, ok := env["data"].([]any)
	require.True(t, ok)
	require.Len(t, items, 1)
	assert.Equal(t, eerotest.NetworkID, items[0].(map[string]any)["id"])
	assert.Equal(t, "Home", items[0].(map[string]any)["name"])
	assert.Contains(t, env, "meta")
}

func TestNetworkShowDefaultsToFirstNetwork(t *testing.T) {
	h := newHarness(t)
	res := h.run("", "-o", "json", "network", "show")
	require.Equal(t, 0, res.code, res.stderr)

	data := res.data(t)
	assert.Equal(t, "Home", data["name"])
	assert.Equal(t, "online", data["status"])
	meta := res.envelope(t)["meta"].(map[string]any)
	assert.Equal(t, eerotest.NetworkID, meta["network_id"])
}

func TestNetworkShowYAML(t *testing.T) {
	h := newHarness(t)
	res := h.run("", "-o", "yaml", "network", "show")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "schema: eero.network.show/v1")
	assert.Contains(t, res.stdout, "name: Home")
}

func TestEeroListTable(t *testing.T) {
	h := newHarness(t)
	res := h.run("", "eero", "list")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Living Room")
	assert.Contains(t, res.stdout, "Hallway")
	assert.Contains(t, res.stdout, "eero Beacon")
}

func TestNotLoggedIn(t *testing.T) {
	h := newHarness(t)
	h.logout()

	res := h.run("", "network", "list")
	assert.Equal(t, int(exitcode.AuthRequired), res.code)
	assert.Contains(t, res.stderr, "not logged in")
	assert.Contains(t, res.stderr, "eeroctl auth login")
	assert.Empty(t, h.api.Requests())
}

func TestMediumRiskNonInteractiveRefuses(t *testing.T) {
	h := newHarness(t)
	res := h.run("", "--non-interactive", "eero", "reboot", "e1")
	assert.Equal(t, int(exitcode.SafetyRail), res.code)
	assert.Contains(t, res.stderr, "requires confirmation")
	assert.Empty(t, h.api.Mutations())
}

func TestMediumRiskForce(t *testing.T) {
	h := newHarness(t)
	res := h.run("", "-o", "json", "--force", "eero", "reboot", "Living Room")
	require.Equal(t, 0, res.code, res.stderr)

	data := res.data(t)
	assert.Equal(t, true, data["changed"])
	assert.Equal(t, "reboot", data["action"])
	assert.Equal(t, "Living Room", data["target"])

	muts := h.api.Mutations()
	require.Len(t, muts, 1)
	assert.Equal(t, "/eeros/e1/reboot", muts[0].Path)
}

func TestMediumRiskPrompt(t *testing.T) {
	tests := []struct {
		name      string
		stdin     string
		wantCode  int
		wantCalls int
	}{
		{"yes", "y\n", 0, 1},
		{"full yes", "YES\n", 0, 1},
		{"no", "n\n", int(exitcode.SafetyRail), 0},
		{"empty", "\n", int(exitcode.SafetyRail), 0},
		{"eof", "", int(exitcode.SafetyRail), 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(t)
			res := h.run(tc.stdin, "eero", "reboot", "e1")
			assert.Equal(t, tc.wantCode, res.code, res.stderr)
			assert.Contains(t, res.stderr, "Continue? [y/N]")
			assert.Len(t, h.api.Mutations(), tc.wantCalls)
		})
	}
}

func TestHighRiskPhrase(t *testing.T) {
	t.Run("match", func(t *testing.T) {
		h := newHarness(t)
		res := h.run("REBOOT\n", "network", "reboot")
		require.Equal(t, 0, res.code, res.stderr)
		assert.Contains(t, res.stderr, "To confirm, type REBOOT")
		assert.Contains(t, res.stdout, "reboot: network Home")
		muts := h.api.Mutations()
		require.Len(t, muts, 1)
		assert.Equal(t, "/networks/"+eerotest.NetworkID+"/reboot", muts[0].Path)
	})

	t.Run("mismatch", func(t *testing.T) {
		h := newHarness(t)
		res := h.run("reboot\n", "network", "reboot")
		assert.Equal(t, int(exitcode.SafetyRail), res.code)
		assert.Contains(t, res.stderr, "Confirmation phrase mismatch. Expected 'REBOOT'.")
		assert.Empty(t, h.api.Mutations())
	})

	t.Run("rename phrase", func(t *testing.T) {
		h := newHarness(t)
		res := h.run("RENAMENETWORK\n", "network", "rename", "--name", "Cabin")
		require.Equal(t, 0, res.code, res.stderr)
		assert.Equal(t, "Cabin", h.api.Network(eerotest.NetworkID)["name"])
	})
}

func TestDryRun(t *testing.T) {
	h := newHarness(t)
	res := h.run("", "--dry-run", "eero", "reboot", "e1")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stderr, "DRY RUN: Would reboot Living Room")
	assert.Contains(t, res.stdout, "• reboot: Living Room")
	assert.Empty(t, h.api.Mutations())
}

func TestDryRunJSONReportsUnchanged(t *testing.T) {
	h := newHarness(t)
	res := h.run("", "-o", "json", "--dry-run", "profile", "pause", "Kids")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, false, res.data(t)["changed"])
	assert.Empty(t, h.api.Mutations())
}

func TestNightlight(t *testing.T) {
	t.Run("unsupported model", func(t *testing.T) {
		h := newHarness(t)
		res := h.run("", "-y", "eero", "nightlight", "on", "e1")
		assert.Equal(t, int(exitcode.FeatureUnavailable), res.code)
		assert.Contains(t, res.stderr, "only available on eero Beacon")
		assert.Empty(t, h.api.Mutations())
	})

	t.Run("beacon", func(t *testing.T) {
		h := newHarness(t)
		res := h.run("", "-y", "eero", "nightlight", "on", "Hallway")
		require.Equal(t, 0, res.code, res.stderr)
		muts := h.api.Mutations()
		require.Len(t, muts, 1)
		assert.Equal(t, "/eeros/e2/nightlight/settings", muts[0].Path)
	})

	t.Run("bad state", func(t *testing.T) {
		h := newHarness(t)
		res := h.run("", "-y", "eero", "nightlight", "dim", "Hallway")
		assert.Equal(t, int(exitcode.UsageError), res.code)
	})
}

func TestLEDOff(t *testing.T) {
	h := newHarness(t)
	res := h.run("", "-y", "eero", "led", "off", "e1")
	require.Equal(t, 0, res.code, res.stderr)
	muts := h.api.Mutations()
	require.Len(t, muts, 1)
	assert.Equal(t, "/eeros/e1/led", muts[0].Path)
	assert.Equal(t, false, muts[0].Body["led_on"])
}

func TestDeviceResolveMiss(t *testing.T) {
	h := newHarness(t)
	res := h.run("", "device", "show", "Living Room T")
	assert.Equal(t, int(exitcode.NotFound), res.code)
	assert.Contains(t, res.stderr, "not found")
	assert.Contains(t, res.stderr, "Did you mean: Living Room TV?")
}

func TestDeviceShowByMAC(t *testing.T) {
	h := newHarness(t)
	res := h.run("", "-o", "json", "client", "show", "aa-bb-cc-dd-ee-01")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "d1", res.data(t)["id"])
}

func TestDeviceBlockPartialSuccess(t *testing.T) {
	h := newHarness(t)
	res := h.run("", "-o", "json", "-y", "device", "block", "d1", "nope")
	assert.Equal(t, int(exitcode.PartialSuccess), res.code, res.stderr)

	env := res.envelope(t)
	items, ok := env["data"].([]any)
	require.True(t, ok)
	require.Len(t, items, 2)
	assert.Equal(t, true, items[0].(map[string]any)["changed"])
	assert.Equal(t, false, items[1].(map[string]any)["changed"])
	assert.NotEmpty(t, env["meta"].(map[string]any)["warnings"])

	assert.Equal(t, true, h.api.Device(eerotest.NetworkID, "d1")["blocked"])
}

func TestDeviceBlockAllFailed(t *testing.T) {
	h := newHarness(t)
	res := h.run("", "-y", "device", "block", "nope", "nada")
	assert.Equal(t, int(exitcode.NotFound), res.code)
	assert.Empty(t, h.api.Mutations())
}

func TestDeviceUnblockSingle(t *testing.T) {
	h := newHarness(t)
	res := h.run("y\n", "device", "unblock", "laptop")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "unblock: laptop")
	assert.Equal(t, false, h.api.Device(eerotest.NetworkID, "d2")["blocked"])
}

func TestDeviceRenameIsLowRisk(t *testing.T) {
	h := newHarness(t)
	res := h.run("", "--non-interactive", "device", "rename", "phone", "--name", "Jo's phone")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "Jo's phone", h.api.Device(eerotest.NetworkID, "d3")["nickname"])
}

func TestDevicePriority(t *testing.T) {
	h := newHarness(t)
	res := h.run("", "-y", "device", "priority", "on", "d1", "--minutes", "30")
	require.Equal(t, 0, res.code, res.stderr)
	d := h.api.Device(eerotest.NetworkID, "d1")
	assert.Equal(t, true, d["prioritized"])
	assert.EqualValues(t, 30, d["priority_duration"])
}

func TestProfilePause(t *testing.T) {
	h := newHarness(t)
	res := h.run("", "-y", "profile", "pause", "kids")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, true, h.api.Profile(eerotest.NetworkID, "p1")["paused"])
}

func TestGuestEnable(t *testing.T) {
	h := newHarness(t)
	res := h.run("", "-y", "network", "guest", "enable", "--password", "visitors1")
	require.Equal(t, 0, res.code, res.stderr)
	guest := h.api.Network(eerotest.NetworkID)["guest_network"].(map[string]any)
	assert.Equal(t, true, guest["enabled"])
	assert.Equal(t, "visitors1", guest["password"])
	assert.Equal(t, "Home Guest", guest["name"])
}

func TestActivityNeedsPremium(t *testing.T) {
	h := newHarness(t)
	h.api.SetPremium(false)

	res := h.run("", "activity", "summary")
	assert.Equal(t, int(exitcode.PremiumRequired), res.code)
	assert.Contains(t, res.stderr, "Error:")
}

func TestActivitySummary(t *testing.T) {
	h := newHarness(t)
	res := h.run("", "-o", "json", "activity", "summary")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "eero.activity.summary/v1", res.envelope(t)["schema"])
}

func TestPremiumStatus(t *testing.T) {
	h := newHarness(t)
	h.api.SetPremium(false)
	res := h.run("", "-o", "json", "network", "premium")
	require.Equal(t, 0, res.code, res.stderr)
	data := res.data(t)
	assert.Equal(t, "inactive", data["premium_status"])
	assert.Equal(t, false, data["active"])
}

func TestSpeedTestShow(t *testing.T) {
	h := newHarness(t)
	res := h.run("", "-o", "json", "network", "speedtest", "show")
	require.Equal(t, 0, res.code, res.stderr)
	assert.InDelta(t, 512.4, res.data(t)["down_mbps"], 0.01)
}

func TestLoginWithFlags(t *testing.T) {
	h := newHarness(t)
	h.logout()

	res := h.run("", "-o", "json", "auth", "login", "--email", "jo@example.com", "--code", eerotest.Code)
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, true, res.data(t)["authenticated"])

	sess, err := session.NewStore(h.session).Load()
	require.NoError(t, err)
	assert.Equal(t, eerotest.Token, sess.UserToken)
}

func TestLoginWithPrompts(t *testing.T) {
	h := newHarness(t)
	h.logout()

	res := h.run("jo@example.com\n"+eerotest.Code+"\n", "auth", "login")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stderr, "Email or phone number:")
	assert.Contains(t, res.stderr, "Verification code:")
	assert.Contains(t, res.stdout, "Logged in as jo@example.com")
}

func TestLoginWrongCode(t *testing.T) {
	h := newHarness(t)
	h.logout()

	res := h.run("", "auth", "login", "--email", "jo@example.com", "--code", "000000")
	assert.Equal(t, int(exitcode.AuthRequired), res.code)
	_, err := session.NewStore(h.session).Load()
	assert.ErrorIs(t, err, session.ErrNoSession)
}

func TestLoginNonInteractiveNeedsEmail(t *testing.T) {
	h := newHarness(t)
	h.logout()

	res := h.run("", "--non-interactive", "auth", "login")
	assert.Equal(t, int(exitcode.UsageError), res.code)
}

func TestAuthStatus(t *testing.T) {
	h := newHarness(t)
	res := h.run("", "-o", "json", "auth", "status")
	require.Equal(t, 0, res.code, res.stderr)
	data := res.data(t)
	assert.Equal(t, true, data["authenticated"])
	assert.Equal(t, true, data["session_valid"])
	assert.Len(t, data["networks"], 1)

	h.logout()
	res = h.run("", "-o", "json", "auth", "status")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, false, res.data(t)["authenticated"])
}

func TestLogout(t *testing.T) {
	h := newHarness(t)
	res := h.run("", "auth", "logout")
	require.Equal(t, 0, res.code, res.stderr)
	_, err := session.NewStore(h.session).Load()
	assert.ErrorIs(t, err, session.ErrNoSession)

	res = h.run("", "auth", "logout")
	assert.Equal(t, 0, res.code)
}

func TestNetworkUsePersists(t *testing.T) {
	h := newHarness(t)
	res := h.run("", "network", "use", "Home")
	require.Equal(t, 0, res.code, res.stderr)

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, eerotest.NetworkID, cfg.PreferredNetworkID)
	_, err = os.Stat(cfg.Path())
	assert.NoError(t, err)
}

func TestNetworkUseUnknown(t *testing.T) {
	h := newHarness(t)
	res := h.run("", "network", "use", "9999")
	assert.Equal(t, int(exitcode.NotFound), res.code)
}

func TestUsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown flag", []string{"network", "list", "--bogus"}},
		{"missing arg", []string{"eero", "show"}},
		{"bad output", []string{"-o", "xml", "network", "list"}},
		{"unknown command", []string{"frobnicate"}},
		{"missing required flag", []string{"network", "rename"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(t)
			res := h.run("", tc.args...)
			assert.Equal(t, int(exitcode.UsageError), res.code, res.stderr)
			assert.Contains(t, res.stderr, "Error:")
		})
	}
}

func TestAPIErrorMapping(t *testing.T) {
	h := newHarness(t)
	h.api.Fail("GET", "/networks/"+eerotest.NetworkID+"/eeros", 403, "error.forbidden")
	res := h.run("", "eero", "list")
	assert.Equal(t, int(exitcode.Forbidden), res.code)
}

func TestTroubleshootConnectivity(t *testing.T) {
	h := newHarness(t)
	res := h.run("", "-o", "json", "troubleshoot", "connectivity")
	require.Equal(t, 0, res.code, res.stderr)
	data := res.data(t)
	assert.Equal(t, "online", data["status"])
	assert.Equal(t, "Living Room", data["gateway"])
}

func TestDoctor(t *testing.T) {
	h := newHarness(t)
	res := h.run("", "-o", "json", "troubleshoot", "doctor")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, true, res.data(t)["healthy"])

	h.logout()
	res = h.run("", "troubleshoot", "doctor")
	assert.Equal(t, 0, res.code)
	assert.Contains(t, res.stderr, "not logged in")
}

func TestCompletion(t *testing.T) {
	h := newHarness(t)
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		res := h.run("", "completion", shell)
		require.Equal(t, 0, res.code, "%s: %s", shell, res.stderr)
		assert.Contains(t, res.stdout, "eeroctl", shell)
	}
	res := h.run("", "completion", "tcsh")
	assert.Equal(t, int(exitcode.UsageError), res.code)
}

func TestVersion(t *testing.T) {
	h := newHarness(t)
	res := h.run("", "version")
	require.Equal(t, 0, res.code)
	assert.Equal(t, "eeroctl "+cli.Version+"\n", res.stdout)

	res = h.run("", "-o", "json", "version")
	require.Equal(t, 0, res.code)
	assert.Equal(t, cli.Version, res.data(t)["version"])
}

func TestEeroShowFetchesDetail(t *testing.T) {
	h := newHarness(t)
	res := h.run("", "-o", "json", "eero", "show", "Hallway")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "e2", res.data(t)["id"])
	assert.Equal(t, "eero Beacon", res.data(t)["model"])

	var paths []string
	for _, r := range h.api.Requests() {
		paths = append(paths, r.Method+" "+r.Path)
	}
	assert.Contains(t, paths, "GET /eeros/e2")
}

func TestNetworkDNSShow(t *testing.T) {
	h := newHarness(t)
	res := h.run("", "-o", "json", "network", "dns", "show")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "eero.network.dns.show/v1", res.envelope(t)["schema"])
	data := res.data(t)
	assert.Equal(t, "automatic", data["dns_mode"])
	assert.Equal(t, true, data["dns_caching"])
	assert.Equal(t, []any{}, data["custom_dns"])
}

func TestNetworkSecurityShow(t *testing.T) {
	h := newHarness(t)
	res := h.run("", "-o", "json", "network", "security", "show")
	require.Equal(t, 0, res.code, res.stderr)
	data := res.data(t)
	assert.Equal(t, false, data["wpa3"])
	assert.Equal(t, true, data["band_steering"])
	assert.Equal(t, true, data["upnp"])
	assert.Equal(t, false, data["ipv6_upstream"])
	assert.Equal(t, false, data["thread"])
}

func TestNetworkSecurityToggle(t *testing.T) {
	t.Run("enable", func(t *testing.T) {
		h := newHarness(t)
		res := h.run("", "-y", "network", "security", "enable", "wpa3")
		require.Equal(t, 0, res.code, res.stderr)
		assert.Equal(t, true, h.api.Network(eerotest.NetworkID)["wpa3"])
		assert.Contains(t, res.stdout, "enable WPA3: on Home")
	})

	t.Run("disable uses payload field", func(t *testing.T) {
		h := newHarness(t)
		res := h.run("", "-y", "network", "security", "disable", "band-steering")
		require.Equal(t, 0, res.code, res.stderr)
		muts := h.api.Mutations()
		require.Len(t, muts, 1)
		assert.Equal(t, map[string]any{"band_steering": false}, muts[0].Body)
	})

	t.Run("needs confirmation", func(t *testing.T) {
		h := newHarness(t)
		res := h.run("", "--non-interactive", "network", "security", "enable", "upnp")
		assert.Equal(t, int(exitcode.SafetyRail), res.code)
		assert.Empty(t, h.api.Mutations())
	})

	t.Run("prompt", func(t *testing.T) {
		h := newHarness(t)
		res := h.run("y\n", "network", "security", "enable", "thread")
		require.Equal(t, 0, res.code, res.stderr)
		assert.Contains(t, res.stderr, "Continue? [y/N]")
		assert.Equal(t, true, h.api.Network(eerotest.NetworkID)["thread"])
	})

	t.Run("unknown feature", func(t *testing.T) {
		h := newHarness(t)
		res := h.run("", "-y", "network", "security", "enable", "wep")
		assert.Equal(t, int(exitcode.UsageError), res.code)
		assert.Contains(t, res.stderr, "wpa3, band-steering, upnp, ipv6, thread")
		assert.Empty(t, h.api.Mutations())
	})
}

func TestNetworkSQMShow(t *testing.T) {
	h := newHarness(t)
	res := h.run("", "-o", "json", "network", "sqm", "show")
	require.Equal(t, 0, res.code, res.stderr)
	data := res.data(t)
	assert.Equal(t, true, data["enabled"])
	assert.EqualValues(t, 20, data["upload_bandwidth"])
	assert.EqualValues(t, 500, data["download_bandwidth"])
}

func TestEeroUpdatesShow(t *testing.T) {
	h := newHarness(t)
	res := h.run("", "-o", "json", "eero", "updates", "show")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "eero.eero.updates.show/v1", res.envelope(t)["schema"])
	data := res.data(t)
	assert.Equal(t, true, data["has_update"])
	assert.Equal(t, "v7.2.0", data["target_firmware"])
	nodes, ok := data["nodes"].([]any)
	require.True(t, ok)
	require.Len(t, nodes, 2)
	assert.Equal(t, "Living Room", nodes[0].(map[string]any)["name"])
	assert.Equal(t, "v7.1.1", nodes[0].(map[string]any)["os_version"])
}

func TestProfileScheduleShow(t *testing.T) {
	h := newHarness(t)
	res := h.run("", "-o", "json", "profile", "schedule", "show", "kids")
	require.Equal(t, 0, res.code, res.stderr)
	data := res.data(t)
	assert.Equal(t, true, data["enabled"])
	blocks, ok := data["time_blocks"].([]any)
	require.True(t, ok)
	require.Len(t, blocks, 1)
	block := blocks[0].(map[string]any)
	assert.Equal(t, "21:00", block["start"])
	assert.Equal(t, "07:00", block["end"])
	assert.Len(t, block["days"], 5)

	res = h.run("", "profile", "schedule", "show", "Grandparents")
	assert.Equal(t, int(exitcode.NotFound), res.code)
}
