package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/fulviofreitas/eeroctl/internal/output"
)

// Network is one Eero network (a mesh plus its settings).
type Network struct {
	ID            string
	Name          string
	Status        string
	PublicIP      string
	ISPName       string
	GatewayIP     string
	WANType       string
	Guest         GuestNetwork
	DNSMode       string
	UPnP          bool
	WPA3          bool
	BandSteering  bool
	SQM           bool
	Thread        bool
	IPv6Upstream  bool
	PremiumStatus string
	Speed         SpeedTest
	CreatedAt     *time.Time
}

// GuestNetwork is the guest SSID state of a network.
type GuestNetwork struct {
	Enabled bool
	Name    string
}

// Record implements output.Recorder.
func (g GuestNetwork) Record() output.Record {
	return output.Record{
		{Key: "enabled", Value: g.Enabled},
		{Key: "name", Value: optional(g.Name)},
	}
}

// SpeedTest is the latest measured WAN throughput.
type SpeedTest struct {
	DownMbps float64
	UpMbps   float64
	Date     *time.Time
}

// Record implements output.Recorder.
func (s SpeedTest) Record() output.Record {
	return output.Record{
		{Key: "down_mbps", Value: s.DownMbps},
		{Key: "up_mbps", Value: s.UpMbps},
		{Key: "date", Value: optionalTime(s.Date)},
	}
}

// Premium reports whether the network carries an active Eero Plus plan.
func (n Network) Premium() bool {
	switch strings.ToLower(n.PremiumStatus) {
	case "active", "premium", "trialing", "plus":
		return true
	}
	return false
}

type rawSpeedValue struct {
	Value Number `json:"value"`
	Units Text   `json:"units"`
}

type rawSpeed struct {
	Down rawSpeedValue `json:"down"`
	Up   rawSpeedValue `json:"up"`
	Date Text          `json:"date"`
}

type rawNetwork struct {
	ID         Text `json:"id"`
	URL        Text `json:"url"`
	Name       Text `json:"name"`
	Status     Text `json:"status"`
	WANIP      Text `json:"wan_ip"`
	PublicIP   Text `json:"public_ip"`
	IPSettings struct {
		PublicIP Text `json:"public_ip"`
	} `json:"ip_settings"`
	GeoIP struct {
		ISP Text `json:"isp"`
	} `json:"geo_ip"`
	ISP          Text `json:"isp"`
	GatewayIP    Text `json:"gateway_ip"`
	WANType      Text `json:"wan_type"`
	GuestNetwork *struct {
		Enabled Flag `json:"enabled"`
		Name    Text `json:"name"`
	} `json:"guest_network"`
	DNS struct {
		Mode Text `json:"mode"`
	} `json:"dns"`
	UPnP          Flag      `json:"upnp"`
	WPA3          Flag      `json:"wpa3"`
	BandSteering  Flag      `json:"band_steering"`
	SQM           Flag      `json:"sqm"`
	Thread        Flag      `json:"thread"`
	IPv6Upstream  Flag      `json:"ipv6_upstream"`
	PremiumStatus Text      `json:"premium_status"`
	Speed         *rawSpeed `json:"speed"`
	SpeedTest     *rawSpeed `json:"speed_test"`
	CreatedAt     Text      `json:"created_at"`
}

// NormalizeNetworkStatus lower-cases a raw status, maps "connected" to
// "online" and an empty status to "unknown".
func NormalizeNetworkStatus(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "":
		return "unknown"
	case "connected":
		return "online"
	}
	return s
}

// ParseNetwork maps a network payload.
func ParseNetwork(data json.RawMessage) (Network, error) {
	var raw rawNetwork
	if err := json.Unmarshal(data, &raw); err != nil {
		return Network{}, fmt.Errorf("decode network: %w", err)
	}
	n := Network{
		ID:            firstNonEmpty(raw.ID, Text(IDFromURL(string(raw.URL)))),
		Name:          firstNonEmpty(raw.Name, "Unknown"),
		Status:        NormalizeNetworkStatus(string(raw.Status)),
		PublicIP:      firstNonEmpty(raw.WANIP, raw.IPSettings.PublicIP, raw.PublicIP),
		ISPName:       firstNonEmpty(raw.GeoIP.ISP, raw.ISP),
		GatewayIP:     string(raw.GatewayIP),
		WANType:       string(raw.WANType),
		DNSMode:       string(raw.DNS.Mode),
		UPnP:          bool(raw.UPnP),
		WPA3:          bool(raw.WPA3),
		BandSteering:  bool(raw.BandSteering),
		SQM:           bool(raw.SQM),
		Thread:        bool(raw.Thread),
		IPv6Upstream:  bool(raw.IPv6Upstream),
		PremiumStatus: string(raw.PremiumStatus),
		CreatedAt:     parseTime(raw.CreatedAt),
	}
	if raw.GuestNetwork != nil {
		n.Guest = GuestNetwork{Enabled: bool(raw.GuestNetwork.Enabled), Name: string(raw.GuestNetwork.Name)}
	}
	speed := raw.Speed
	if speed == nil {
		speed = raw.SpeedTest
	}
	if speed != nil {
		n.Speed = speed.parse()
	}
	return n, nil
}

func (s rawSpeed) parse() SpeedTest {
	return SpeedTest{
		DownMbps: float64(s.Down.Value),
		UpMbps:   float64(s.Up.Value),
		Date:     parseTime(s.Date),
	}
}

// ParseSpeedTest maps a speed test payload, either a single result or a
// history list whose first entry is the latest.
func ParseSpeedTest(data json.RawMessage) (SpeedTest, error) {
	items, err := ExtractList(data, "speedtest")
	if err == nil && len(items) > 0 {
		data = items[0]
	}
	var raw rawSpeed
	if err := json.Unmarshal(data, &raw); err != nil {
		return SpeedTest{}, fmt.Errorf("decode speed test: %w", err)
	}
	return raw.parse(), nil
}

// ParseNetworks maps a network list payload.
func ParseNetworks(data json.RawMessage) ([]Network, error) {
	return parseList(data, "networks", ParseNetwork)
}

// Record implements output.Recorder.
func (n Network) Record() output.Record {
	return output.Record{
		{Key: "id", Value: n.ID},
		{Key: "name", Value: n.Name},
		{Key: "status", Value: n.Status},
		{Key: "public_ip", Value: optional(n.PublicIP)},
		{Key: "isp_name", Value: optional(n.ISPName)},
		{Key: "gateway_ip", Value: optional(n.GatewayIP)},
		{Key: "wan_type", Value: optional(n.WANType)},
		{Key: "guest_network", Value: n.Guest},
		{Key: "dns_mode", Value: optional(n.DNSMode)},
		{Key: "upnp", Value: n.UPnP},
		{Key: "wpa3", Value: n.WPA3},
		{Key: "band_steering", Value: n.BandSteering},
		{Key: "sqm", Value: n.SQM},
		{Key: "thread", Value: n.Thread},
		{Key: "ipv6_upstream", Value: n.IPv6Upstream},
		{Key: "premium_status", Value: optional(n.PremiumStatus)},
		{Key: "speed_test", Value: n.Speed},
		{Key: "created_at", Value: optionalTime(n.CreatedAt)},
	}
}
