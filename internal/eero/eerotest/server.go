// Package eerotest runs an in-memory fake of the Eero cloud API for tests.
package eerotest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

const (
	// Token is the user token the fake accepts after verification.
	Token = "tok-test-123"
	// Code is the verification code the fake expects.
	Code = "123456"
	// NetworkID is the id of the default network.
	NetworkID = "1001"
)

// Request is one recorded API call.
type Request struct {
	Method string
	Path   string
	Body   map[string]any
}

// Server is a fake API backed by mutable JSON fixtures.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	verified bool
	account  map[string]any
	networks map[string]map[string]any
	eeros    map[string][]map[string]any
	devices  map[string][]map[string]any
	profiles map[string][]map[string]any
	speed    map[string]any
	activity map[string]any
	failures map[string]failure
	requests []Request
}

type failure struct {
	status  int
	message string
}

// NewServer starts a fake API seeded with one network, two nodes (one a
// Beacon), three devices and one profile. It is closed with the test.
func NewServer(t testing.TB) *Server {
	s := &Server{
		verified: true,
		failures: make(map[string]failure),
		account: map[string]any{
			"url":            "/2.2/account",
			"name":           "Jo Doe",
			"email":          map[string]any{"value": "jo@example.com", "verified": true},
			"phone":          map[string]any{"value": "+15555550100"},
			"premium_status": "active",
		},
		networks: map[string]map[string]any{
			NetworkID: {
				"url":            "/2.2/networks/" + NetworkID,
				"name":           "Home",
				"status":         map[string]any{"status": "connected"},
				"wan_ip":         "203.0.113.7",
				"geo_ip":         map[string]any{"isp": "Example ISP"},
				"gateway_ip":     "192.168.4.1",
				"wan_type":       "dhcp",
				"guest_network":  map[string]any{"enabled": false, "name": "Home Guest"},
				"dns": map[string]any{
					"mode":    "automatic",
					"caching": true,
					"custom":  map[string]any{"ips": []any{}},
				},
				"upnp":          true,
				"wpa3":          false,
				"band_steering": true,
				"ipv6_upstream": false,
				"thread":        false,
				"sqm": map[string]any{
					"enabled":            true,
					"upload_bandwidth":   20,
					"download_bandwidth": 500,
				},
				"updates": map[string]any{
					"has_update":      true,
					"update_required": false,
					"can_update_now":  true,
					"target_firmware": "v7.2.0",
				},
				"premium_status": "active",
				"speed": map[string]any{
					"down": map[string]any{"value": 512.4, "units": "Mbps"},
					"up":   map[string]any{"value": 21.7, "units": "Mbps"},
					"date": "2024-03-01T10:00:00Z",
				},
			},
		},
		eeros: map[string][]map[string]any{
			NetworkID: {
				{
					"url": "/2.2/eeros/e1", "serial": "GGC1UC0000001", "location": "Living Room",
					"model": "eero Pro 6E", "status": "green", "gateway": true, "is_primary_node": true,
					"ip_address": "192.168.4.1", "mac_address": "F0:21:E0:00:00:01", "os_version": "v7.1.1",
					"connected_clients_count": 8, "wired": true, "mesh_quality_bars": 5, "led_on": true,
				},
				{
					"url": "/2.2/eeros/e2", "serial": "GGC1UC0000002", "location": "Hallway",
					"model": "eero Beacon", "status": "green", "gateway": false,
					"ip_address": "192.168.4.2", "mac_address": "F0:21:E0:00:00:02", "os_version": "v7.1.1",
					"connected_clients_count": 3, "wired": false, "mesh_quality_bars": 4, "led_on": true,
				},
			},
		},
		devices: map[string][]map[string]any{
			NetworkID: {
				{
					"url": "/2.2/networks/" + NetworkID + "/devices/d1", "mac": "AA:BB:CC:DD:EE:01",
					"nickname": "Living Room TV", "hostname": "roku", "manufacturer": "Roku",
					"ip": "192.168.4.20", "connected": true, "wireless": true,
					"source": map[string]any{"location": "Living Room"},
					"connectivity": map[string]any{"signal": "-48 dBm", "frequency": 5},
				},
				{
					"url": "/2.2/networks/" + NetworkID + "/devices/d2", "mac": "AA:BB:CC:DD:EE:02",
					"hostname": "laptop", "ips": []any{"192.168.4.21"}, "connected": true, "wireless": true,
					"profile": map[string]any{"url": "/2.2/networks/" + NetworkID + "/profiles/p1", "name": "Kids"},
				},
				{
					"url": "/2.2/networks/" + NetworkID + "/devices/d3", "mac": "AA:BB:CC:DD:EE:03",
					"hostname": "phone", "connected": false, "wireless": true,
				},
			},
		},
		profiles: map[string][]map[string]any{
			NetworkID: {
				{
					"url": "/2.2/networks/" + NetworkID + "/profiles/p1", "name": "Kids", "paused": false,
					"devices":  []any{map[string]any{"hostname": "laptop", "mac": "AA:BB:CC:DD:EE:02"}},
					"schedule": []any{map[string]any{
						"days":  []any{"monday", "tuesday", "wednesday", "thursday", "friday"},
						"start": "21:00",
						"end":   "07:00",
					}},
				},
			},
		},
		speed: map[string]any{
			"down": map[string]any{"value": 512.4},
			"up":   map[string]any{"value": 21.7},
			"date": "2024-03-01T10:00:00Z",
		},
		activity: map[string]any{
			"download": 1073741824,
			"upload":   104857600,
			"devices": []any{
				map[string]any{"nickname": "Living Room TV", "download": 805306368, "upload": 1048576},
			},
		},
	}
	s.Server = httptest.NewServer(s.routes())
	t.Cleanup(s.Close)
	return s
}

// Fail makes the route "METHOD /path" answer with status and message.
func (s *Server) Fail(method, path string, status int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[method+" "+path] = failure{status: status, message: message}
}

// Requests returns the calls received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// Mutations returns the recorded calls other than GET.
func (s *Server) Mutations() []Request {
	var out []Request
	for _, r := range s.Requests() {
		if r.Method != http.MethodGet {
			out = append(out, r)
		}
	}
	return out
}

// Device returns the current fixture of a device by id.
func (s *Server) Device(networkID, deviceID string) map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return findByID(s.devices[networkID], deviceID)
}

// Profile returns the current fixture of a profile by id.
func (s *Server) Profile(networkID, profileID string) map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return findByID(s.profiles[networkID], profileID)
}

// Network returns the current fixture of a network.
func (s *Server) Network(networkID string) map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.networks[networkID]
}

// SetPremium switches the account and networks between Eero Plus and free.
func (s *Server) SetPremium(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	status := "inactive"
	if active {
		status = "active"
	}
	s.account["premium_status"] = status
	for _, n := range s.networks {
		n["premium_status"] = status
	}
}

func findByID(items []map[string]any, id string) map[string]any {
	for _, item := range items {
		if u, _ := item["url"].(string); strings.HasSuffix(u, "/"+id) {
			return item
		}
	}
	return nil
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /login", s.handleLogin)
	mux.HandleFunc("POST /login/verify", s.authed(s.handleVerify))
	mux.HandleFunc("POST /logout", s.authed(func(w http.ResponseWriter, r *http.Request, _ map[string]any) {
		writeData(w, nil)
	}))
	mux.HandleFunc("GET /account", s.authed(s.handleAccount))
	mux.HandleFunc("GET /networks/{id}", s.authed(s.handleNetwork))
	mux.HandleFunc("PUT /networks/{id}", s.authed(s.handleNetworkUpdate))
	mux.HandleFunc("POST /networks/{id}/reboot", s.authed(s.handleNetworkAction))
	mux.HandleFunc("PUT /networks/{id}/guestnetwork", s.authed(s.handleGuest))
	mux.HandleFunc("POST /networks/{id}/speedtest", s.authed(s.handleNetworkAction))
	mux.HandleFunc("GET /networks/{id}/speedtest", s.authed(func(w http.ResponseWriter, r *http.Request, _ map[string]any) {
		writeData(w, []any{s.speed})
	}))
	mux.HandleFunc("GET /networks/{id}/activity/summary", s.authed(s.handleActivity))
	mux.HandleFunc("GET /networks/{id}/eeros", s.authed(s.list(func(id string) []map[string]any { return s.eeros[id] })))
	mux.HandleFunc("GET /networks/{id}/devices", s.authed(s.list(func(id string) []map[string]any { return s.devices[id] })))
	mux.HandleFunc("PUT /networks/{id}/devices/{item}", s.authed(s.update(func(id string) []map[string]any { return s.devices[id] })))
	mux.HandleFunc("GET /networks/{id}/profiles", s.authed(s.list(func(id string) []map[string]any { return s.profiles[id] })))
	mux.HandleFunc("PUT /networks/{id}/profiles/{item}", s.authed(s.update(func(id string) []map[string]any { return s.profiles[id] })))
	mux.HandleFunc("GET /networks/{id}/profiles/{item}/schedule", s.authed(s.handleSchedule))
	mux.HandleFunc("GET /eeros/{id}", s.authed(s.handleEero))
	mux.HandleFunc("POST /eeros/{id}/reboot", s.authed(s.handleEeroAction))
	mux.HandleFunc("PUT /eeros/{id}/led", s.authed(s.handleEeroAction))
	mux.HandleFunc("PUT /eeros/{id}/nightlight/settings", s.authed(s.handleNightlight))
	return mux
}

type handler func(w http.ResponseWriter, r *http.Request, body map[string]any)

// authed records the call, applies injected failures and checks the
// session cookie before delegating.
func (s *Server) authed(next handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body := s.record(r)
		if s.injected(w, r) {
			return
		}
		c, err := r.Cookie("s")
		if err != nil || c.Value != Token {
			writeError(w, http.StatusUnauthorized, "error.session.invalid")
			return
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		if !s.verified && r.URL.Path != "/login/verify" {
			writeError(w, http.StatusUnauthorized, "error.session.unverified")
			return
		}
		next(w, r, body)
	}
}

func (s *Server) record(r *http.Request) map[string]any {
	var body map[string]any
	_ = json.NewDecoder(r.Body).Decode(&body)
	s.mu.Lock()
	s.requests = append(s.requests, Request{Method: r.Method, Path: r.URL.Path, Body: body})
	s.mu.Unlock()
	return body
}

func (s *Server) injected(w http.ResponseWriter, r *http.Request) bool {
	s.mu.Lock()
	f, ok := s.failures[r.Method+" "+r.URL.Path]
	s.mu.Unlock()
	if ok {
		writeError(w, f.status, f.message)
	}
	return ok
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	body := s.record(r)
	if s.injected(w, r) {
		return
	}
	if login, _ := body["login"].(string); login == "" {
		writeError(w, http.StatusBadRequest, "error.login.required")
		return
	}
	s.mu.Lock()
	s.verified = false
	s.mu.Unlock()
	writeData(w, map[string]any{"user_token": Token})
}

func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request, body map[string]any) {
	if code, _ := body["code"].(string); code != Code {
		writeError(w, http.StatusUnauthorized, "error.verification.invalid")
		return
	}
	s.verified = true
	writeData(w, map[string]any{"user_token": Token})
}

func (s *Server) handleAccount(w http.ResponseWriter, r *http.Request, _ map[string]any) {
	acct := make(map[string]any, len(s.account)+1)
	for k, v := range s.account {
		acct[k] = v
	}
	summaries := make([]any, 0, len(s.networks))
	for _, n := range s.networks {
		summaries = append(summaries, map[string]any{"url": n["url"], "name": n["name"], "created": "2023-01-01T00:00:00Z"})
	}
	acct["networks"] = map[string]any{"count": len(summaries), "data": summaries}
	writeData(w, acct)
}

func (s *Server) handleNetwork(w http.ResponseWriter, r *http.Request, _ map[string]any) {
	n, ok := s.networks[r.PathValue("id")]
	if !ok {
		writeError(w, http.StatusNotFound, "error.network.not_found")
		return
	}
	writeData(w, n)
}

func (s *Server) handleNetworkUpdate(w http.ResponseWriter, r *http.Request, body map[string]any) {
	n, ok := s.networks[r.PathValue("id")]
	if !ok {
		writeError(w, http.StatusNotFound, "error.network.not_found")
		return
	}
	for k, v := range body {
		n[k] = v
	}
	writeData(w, n)
}

func (s *Server) handleNetworkAction(w http.ResponseWriter, r *http.Request, _ map[string]any) {
	if _, ok := s.networks[r.PathValue("id")]; !ok {
		writeError(w, http.StatusNotFound, "error.network.not_found")
		return
	}
	writeData(w, nil)
}

func (s *Server) handleGuest(w http.ResponseWriter, r *http.Request, body map[string]any) {
	n, ok := s.networks[r.PathValue("id")]
	if !ok {
		writeError(w, http.StatusNotFound, "error.network.not_found")
		return
	}
	guest, _ := n["guest_network"].(map[string]any)
	if guest == nil {
		guest = map[string]any{}
		n["guest_network"] = guest
	}
	for k, v := range body {
		guest[k] = v
	}
	writeData(w, guest)
}

func (s *Server) handleActivity(w http.ResponseWriter, r *http.Request, _ map[string]any) {
	n, ok := s.networks[r.PathValue("id")]
	if !ok {
		writeError(w, http.StatusNotFound, "error.network.not_found")
		return
	}
	if n["premium_status"] != "active" {
		writeError(w, http.StatusPaymentRequired, "error.premium.required")
		return
	}
	writeData(w, s.activity)
}

func (s *Server) list(items func(networkID string) []map[string]any) handler {
	return func(w http.ResponseWriter, r *http.Request, _ map[string]any) {
		id := r.PathValue("id")
		if _, ok := s.networks[id]; !ok {
			writeError(w, http.StatusNotFound, "error.network.not_found")
			return
		}
		out := make([]any, 0)
		for _, item := range items(id) {
			out = append(out, item)
		}
		writeData(w, out)
	}
}

func (s *Server) update(items func(networkID string) []map[string]any) handler {
	return func(w http.ResponseWriter, r *http.Request, body map[string]any) {
		item := findByID(items(r.PathValue("id")), r.PathValue("item"))
		if item == nil {
			writeError(w, http.StatusNotFound, "error.not_found")
			return
		}
		for k, v := range body {
			item[k] = v
		}
		writeData(w, item)
	}
}

func (s *Server) handleSchedule(w http.ResponseWriter, r *http.Request, _ map[string]any) {
	p := findByID(s.profiles[r.PathValue("id")], r.PathValue("item"))
	if p == nil {
		writeError(w, http.StatusNotFound, "error.profile.not_found")
		return
	}
	blocks, _ := p["schedule"].([]any)
	if blocks == nil {
		blocks = []any{}
	}
	writeData(w, map[string]any{"enabled": len(blocks) > 0, "time_blocks": blocks})
}

func (s *Server) findEero(id string) map[string]any {
	for _, nodes := range s.eeros {
		if e := findByID(nodes, id); e != nil {
			return e
		}
	}
	return nil
}

func (s *Server) handleEero(w http.ResponseWriter, r *http.Request, _ map[string]any) {
	e := s.findEero(r.PathValue("id"))
	if e == nil {
		writeError(w, http.StatusNotFound, "error.eero.not_found")
		return
	}
	writeData(w, e)
}

func (s *Server) handleEeroAction(w http.ResponseWriter, r *http.Request, body map[string]any) {
	e := s.findEero(r.PathValue("id"))
	if e == nil {
		writeError(w, http.StatusNotFound, "error.eero.not_found")
		return
	}
	for k, v := range body {
		e[k] = v
	}
	writeData(w, nil)
}

func (s *Server) handleNightlight(w http.ResponseWriter, r *http.Request, body map[string]any) {
	e := s.findEero(r.PathValue("id"))
	if e == nil {
		writeError(w, http.StatusNotFound, "error.eero.not_found")
		return
	}
	if model, _ := e["model"].(string); !strings.Contains(strings.ToLower(model), "beacon") {
		writeError(w, http.StatusBadRequest, "error.nightlight.unsupported")
		return
	}
	e["nightlight"] = body
	writeData(w, body)
}

func writeData(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"meta": map[string]any{"code": http.StatusOK},
		"data": data,
	})
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"meta": map[string]any{"code": status, "error": message},
	})
}

// String describes the fixture for failure messages.
func (s *Server) String() string {
	return fmt.Sprintf("eerotest.Server(%s)", s.URL)
}
