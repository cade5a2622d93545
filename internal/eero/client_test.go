package eero_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/time/rate"

	"github.com/fulviofreitas/eeroctl/internal/eero"
	"github.com/fulviofreitas/eeroctl/internal/eero/eerotest"
	"github.com/fulviofreitas/eeroctl/internal/exitcode"
)

func newClient(srv *eerotest.Server, token string) *eero.Client {
	return eero.NewClient(srv.URL, eero.WithToken(token), eero.WithRateLimit(0, 0))
}

func TestLoginAndVerify(t *testing.T) {
	srv := eerotest.NewServer(t)
	client := eero.NewClient(srv.URL, eero.WithRateLimit(0, 0))

	token, err := client.Login(context.Background(), "jo@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token != eerotest.Token {
		t.Errorf("expected token %q, got %q", eerotest.Token, token)
	}
	if _, err := client.Account(context.Background()); err == nil {
		t.Error("expected account lookup to fail before verification")
	}
	if err := client.Verify(context.Background(), "000000"); err == nil {
		t.Error("expected wrong code to fail")
	}
	if err := client.Verify(context.Background(), eerotest.Code); err != nil {
		t.Fatalf("verify: %v", err)
	}
	acct, err := client.Account(context.Background())
	if err != nil {
		t.Fatalf("account: %v", err)
	}
	if acct.Email != "jo@example.com" {
		t.Errorf("expected email jo@example.com, got %q", acct.Email)
	}
}

func TestUnauthenticatedCallFailsFast(t *testing.T) {
	srv := eerotest.NewServer(t)
	client := newClient(srv, "")
	_, err := client.Networks(context.Background())
	if !errors.Is(err, eero.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
	if len(srv.Requests()) != 0 {
		t.Errorf("expected no request to be sent, got %d", len(srv.Requests()))
	}
}

func TestNetworks(t *testing.T) {
	srv := eerotest.NewServer(t)
	client := newClient(srv, eerotest.Token)

	nets, err := client.Networks(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(nets) != 1 || nets[0].ID != eerotest.NetworkID {
		t.Fatalf("expected network %s, got %+v", eerotest.NetworkID, nets)
	}

	n, err := client.Network(context.Background(), eerotest.NetworkID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n.Status != "online" {
		t.Errorf("expected status online, got %q", n.Status)
	}
	if n.PublicIP != "203.0.113.7" || n.ISPName != "Example ISP" {
		t.Errorf("unexpected wan info: %q %q", n.PublicIP, n.ISPName)
	}
}

func TestEerosAndDevices(t *testing.T) {
	srv := eerotest.NewServer(t)
	client := newClient(srv, eerotest.Token)
	ctx := context.Background()

	nodes, err := client.Eeros(ctx, eerotest.NetworkID)
	if err != nil {
		t.Fatalf("eeros: %v", err)
	}
	if len(nodes) != 2 || !nodes[0].IsGateway || !nodes[1].SupportsNightlight() {
		t.Errorf("unexpected nodes: %+v", nodes)
	}

	devices, err := client.Devices(ctx, eerotest.NetworkID)
	if err != nil {
		t.Fatalf("devices: %v", err)
	}
	if len(devices) != 3 {
		t.Fatalf("expected 3 devices, got %d", len(devices))
	}
	if devices[1].IP != "192.168.4.21" {
		t.Errorf("expected ip from ips list, got %q", devices[1].IP)
	}
}

func TestUpdateDevice(t *testing.T) {
	srv := eerotest.NewServer(t)
	client := newClient(srv, eerotest.Token)

	blocked := true
	if err := client.UpdateDevice(context.Background(), eerotest.NetworkID, "d3", eero.DeviceUpdate{Blocked: &blocked}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := srv.Device(eerotest.NetworkID, "d3")["blocked"]; got != true {
		t.Errorf("expected device blocked, got %v", got)
	}
	muts := srv.Mutations()
	if len(muts) != 1 || muts[0].Method != http.MethodPut || len(muts[0].Body) != 1 {
		t.Errorf("expected a single PUT with one field, got %+v", muts)
	}
}

func TestAPIErrorExitCodes(t *testing.T) {
	cases := []struct {
		status  int
		message string
		want    exitcode.Code
	}{
		{http.StatusUnauthorized, "error.session.invalid", exitcode.AuthRequired},
		{http.StatusForbidden, "error.forbidden", exitcode.Forbidden},
		{http.StatusNotFound, "error.eero.not_found", exitcode.NotFound},
		{http.StatusConflict, "error.conflict", exitcode.Conflict},
		{http.StatusTooManyRequests, "error.rate_limited", exitcode.Timeout},
		{http.StatusPaymentRequired, "error.payment", exitcode.PremiumRequired},
		{http.StatusForbidden, "eero plus subscription required", exitcode.PremiumRequired},
		{http.StatusBadRequest, "error.nightlight.unsupported", exitcode.FeatureUnavailable},
		{http.StatusInternalServerError, "", exitcode.GenericError},
	}
	for _, tc := range cases {
		srv := eerotest.NewServer(t)
		srv.Fail(http.MethodGet, "/networks/"+eerotest.NetworkID, tc.status, tc.message)
		_, err := newClient(srv, eerotest.Token).Network(context.Background(), eerotest.NetworkID)
		if err == nil {
			t.Fatalf("HTTP %d: expected error", tc.status)
		}
		var apiErr *eero.APIError
		if !errors.As(err, &apiErr) {
			t.Fatalf("HTTP %d: expected APIError, got %T", tc.status, err)
		}
		if got := exitcode.FromError(err); got != tc.want {
			t.Errorf("HTTP %d %q: expected exit code %d, got %d", tc.status, tc.message, tc.want, got)
		}
	}
}

func TestRequestHeaders(t *testing.T) {
	var got *http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r
		w.Write([]byte(`{"meta":{"code":200},"data":{"id":"1001","name":"Home"}}`))
	}))
	defer srv.Close()

	client := eero.NewClient(srv.URL, eero.WithToken("abc"), eero.WithUserAgent("eeroctl/test"), eero.WithRateLimit(rate.Inf, 1))
	if _, err := client.Network(context.Background(), "1001"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c, err := got.Cookie("s"); err != nil || c.Value != "abc" {
		t.Errorf("expected session cookie, got %v %v", c, err)
	}
	if got.Header.Get("X-Request-ID") == "" {
		t.Error("expected X-Request-ID header")
	}
	if ua := got.Header.Get("User-Agent"); ua != "eeroctl/test" {
		t.Errorf("expected user agent eeroctl/test, got %q", ua)
	}
}

func TestContextCancellation(t *testing.T) {
	srv := eerotest.NewServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := newClient(srv, eerotest.Token).Network(ctx, eerotest.NetworkID)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestRateLimitWaitPastDeadline(t *testing.T) {
	srv := eerotest.NewServer(t)
	client := eero.NewClient(srv.URL, eero.WithToken(eerotest.Token), eero.WithRateLimit(rate.Every(time.Hour), 1))

	if _, err := client.Network(context.Background(), eerotest.NetworkID); err != nil {
		t.Fatalf("first call: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := client.Network(ctx, eerotest.NetworkID)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected context.DeadlineExceeded, got %v", err)
	}
}
