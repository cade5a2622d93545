package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/fulviofreitas/eeroctl/internal/output"
)

// DNSSettings is the resolver configuration of a network.
type DNSSettings struct {
	Mode          string
	Caching       bool
	CustomServers []string
}

// Record implements output.Recorder.
func (d DNSSettings) Record() output.Record {
	return output.Record{
		{Key: "dns_mode", Value: firstNonEmpty(Text(d.Mode), "automatic")},
		{Key: "dns_caching", Value: d.Caching},
		{Key: "custom_dns", Value: d.CustomServers},
	}
}

type rawDNS struct {
	DNS struct {
		Mode    Text `json:"mode"`
		Caching Flag `json:"caching"`
		Custom  struct {
			IPs []Text `json:"ips"`
		} `json:"custom"`
	} `json:"dns"`
}

// ParseDNSSettings maps the dns block of a network payload.
func ParseDNSSettings(data json.RawMessage) (DNSSettings, error) {
	var raw rawDNS
	if err := json.Unmarshal(data, &raw); err != nil {
		return DNSSettings{}, fmt.Errorf("decode dns settings: %w", err)
	}
	d := DNSSettings{
		Mode:          string(raw.DNS.Mode),
		Caching:       bool(raw.DNS.Caching),
		CustomServers: make([]string, 0, len(raw.DNS.Custom.IPs)),
	}
	for _, ip := range raw.DNS.Custom.IPs {
		if ip != "" {
			d.CustomServers = append(d.CustomServers, string(ip))
		}
	}
	return d, nil
}

// SecurityFeature is a network-wide toggle set through the network resource.
type SecurityFeature struct {
	// Name is the command-line spelling.
	Name string
	// Field is the network payload key.
	Field string
	// Label is the human name used in prompts.
	Label string
}

// SecurityFeatures lists the toggles in display order.
var SecurityFeatures = []SecurityFeature{
	{Name: "wpa3", Field: "wpa3", Label: "WPA3"},
	{Name: "band-steering", Field: "band_steering", Label: "band steering"},
	{Name: "upnp", Field: "upnp", Label: "UPnP"},
	{Name: "ipv6", Field: "ipv6_upstream", Label: "IPv6"},
	{Name: "thread", Field: "thread", Label: "Thread"},
}

// LookupSecurityFeature finds a feature by its command-line name.
func LookupSecurityFeature(name string) (SecurityFeature, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, f := range SecurityFeatures {
		if f.Name == name {
			return f, true
		}
	}
	return SecurityFeature{}, false
}

// SecurityFeatureNames returns the command-line names of every feature.
func SecurityFeatureNames() []string {
	names := make([]string, len(SecurityFeatures))
	for i, f := range SecurityFeatures {
		names[i] = f.Name
	}
	return names
}

// SecuritySettings is the state of every security toggle of a network.
type SecuritySettings struct {
	WPA3         bool
	BandSteering bool
	UPnP         bool
	IPv6Upstream bool
	Thread       bool
}

// Security extracts the security toggles of a network.
func (n Network) Security() SecuritySettings {
	return SecuritySettings{
		WPA3:         n.WPA3,
		BandSteering: n.BandSteering,
		UPnP:         n.UPnP,
		IPv6Upstream: n.IPv6Upstream,
		Thread:       n.Thread,
	}
}

// Record implements output.Recorder.
func (s SecuritySettings) Record() output.Record {
	return output.Record{
		{Key: "wpa3", Value: s.WPA3},
		{Key: "band_steering", Value: s.BandSteering},
		{Key: "upnp", Value: s.UPnP},
		{Key: "ipv6_upstream", Value: s.IPv6Upstream},
		{Key: "thread", Value: s.Thread},
	}
}

// SQMSettings is the smart queue management state of a network. The
// bandwidth limits are nil when the gateway measures them itself.
type SQMSettings struct {
	Enabled      bool
	UploadMbps   *float64
	DownloadMbps *float64
}

// Record implements output.Recorder.
func (s SQMSettings) Record() output.Record {
	return output.Record{
		{Key: "enabled", Value: s.Enabled},
		{Key: "upload_bandwidth", Value: optionalFloat(s.UploadMbps)},
		{Key: "download_bandwidth", Value: optionalFloat(s.DownloadMbps)},
	}
}

// ParseSQMSettings maps the sqm field of a network payload, which is either
// a plain boolean or an object with bandwidth limits.
func ParseSQMSettings(data json.RawMessage) (SQMSettings, error) {
	var raw struct {
		SQM json.RawMessage `json:"sqm"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return SQMSettings{}, fmt.Errorf("decode sqm settings: %w", err)
	}
	var s SQMSettings
	if len(raw.SQM) == 0 {
		return s, nil
	}
	var enabled Flag
	_ = enabled.UnmarshalJSON(raw.SQM)
	s.Enabled = bool(enabled)

	var limits struct {
		Upload   *Number `json:"upload_bandwidth"`
		Download *Number `json:"download_bandwidth"`
	}
	if json.Unmarshal(raw.SQM, &limits) == nil {
		s.UploadMbps = positive(limits.Upload)
		s.DownloadMbps = positive(limits.Download)
	}
	return s, nil
}

func positive(n *Number) *float64 {
	if n == nil || *n <= 0 {
		return nil
	}
	f := float64(*n)
	return &f
}

func optionalFloat(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}

// NodeFirmware is the firmware a single node runs.
type NodeFirmware struct {
	Name      string
	Model     string
	OSVersion string
}

// Record implements output.Recorder.
func (n NodeFirmware) Record() output.Record {
	return output.Record{
		{Key: "name", Value: n.Name},
		{Key: "model", Value: optional(n.Model)},
		{Key: "os_version", Value: optional(n.OSVersion)},
	}
}

// UpdateStatus is the firmware update state of a network.
type UpdateStatus struct {
	HasUpdate         bool
	UpdateRequired    bool
	CanUpdateNow      bool
	TargetFirmware    string
	LastUpdateStarted *time.Time
	ScheduledUpdate   *time.Time
	Nodes             []NodeFirmware
}

// WithNodes attaches the current firmware of each node.
func (u UpdateStatus) WithNodes(nodes []Eero) UpdateStatus {
	u.Nodes = make([]NodeFirmware, len(nodes))
	for i, e := range nodes {
		u.Nodes[i] = NodeFirmware{Name: firstNonEmpty(Text(e.Name), Text(e.Serial), Text(e.ID)), Model: e.Model, OSVersion: e.OSVersion}
	}
	return u
}

// Record implements output.Recorder.
func (u UpdateStatus) Record() output.Record {
	return output.Record{
		{Key: "has_update", Value: u.HasUpdate},
		{Key: "update_required", Value: u.UpdateRequired},
		{Key: "can_update_now", Value: u.CanUpdateNow},
		{Key: "target_firmware", Value: optional(u.TargetFirmware)},
		{Key: "last_update_started", Value: optionalTime(u.LastUpdateStarted)},
		{Key: "scheduled_update_time", Value: optionalTime(u.ScheduledUpdate)},
		{Key: "nodes", Value: u.Nodes},
	}
}

// ParseUpdateStatus maps the updates block of a network payload.
func ParseUpdateStatus(data json.RawMessage) (UpdateStatus, error) {
	var raw struct {
		Updates struct {
			HasUpdate         Flag `json:"has_update"`
			UpdateRequired    Flag `json:"update_required"`
			CanUpdateNow      Flag `json:"can_update_now"`
			TargetFirmware    Text `json:"target_firmware"`
			LastUpdateStarted Text `json:"last_update_started"`
			ScheduledUpdate   Text `json:"scheduled_update_time"`
		} `json:"updates"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return UpdateStatus{}, fmt.Errorf("decode update status: %w", err)
	}
	u := raw.Updates
	return UpdateStatus{
		HasUpdate:         bool(u.HasUpdate),
		UpdateRequired:    bool(u.UpdateRequired),
		CanUpdateNow:      bool(u.CanUpdateNow),
		TargetFirmware:    string(u.TargetFirmware),
		LastUpdateStarted: parseTime(u.LastUpdateStarted),
		ScheduledUpdate:   parseTime(u.ScheduledUpdate),
		Nodes:             []NodeFirmware{},
	}, nil
}

// TimeBlock is one recurring window of blocked internet access.
type TimeBlock struct {
	Days  []string
	Start string
	End   string
}

// Record implements output.Recorder.
func (b TimeBlock) Record() output.Record {
	return output.Record{
		{Key: "days", Value: b.Days},
		{Key: "start", Value: firstNonEmpty(Text(b.Start), "?")},
		{Key: "end", Value: firstNonEmpty(Text(b.End), "?")},
	}
}

// Schedule is the access schedule of a profile.
type Schedule struct {
	Enabled    bool
	TimeBlocks []TimeBlock
}

// Record implements output.Recorder.
func (s Schedule) Record() output.Record {
	return output.Record{
		{Key: "enabled", Value: s.Enabled},
		{Key: "time_blocks", Value: s.TimeBlocks},
	}
}

type rawTimeBlock struct {
	Days  []Text `json:"days"`
	Start Text   `json:"start"`
	End   Text   `json:"end"`
}

// ParseSchedule maps a profile schedule payload. An object carries
// "enabled" and "time_blocks"; a bare list is taken as the time blocks of
// an enabled schedule.
func ParseSchedule(data json.RawMessage) (Schedule, error) {
	var blocks []rawTimeBlock
	var s Schedule
	if err := json.Unmarshal(data, &blocks); err == nil {
		s.Enabled = len(blocks) > 0
	} else {
		var raw struct {
			Enabled    *Flag          `json:"enabled"`
			TimeBlocks []rawTimeBlock `json:"time_blocks"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return Schedule{}, fmt.Errorf("decode schedule: %w", err)
		}
		blocks = raw.TimeBlocks
		s.Enabled = len(blocks) > 0
		if raw.Enabled != nil {
			s.Enabled = bool(*raw.Enabled)
		}
	}
	s.TimeBlocks = make([]TimeBlock, len(blocks))
	for i, b := range blocks {
		days := make([]string, len(b.Days))
		for j, d := range b.Days {
			days[j] = string(d)
		}
		s.TimeBlocks[i] = TimeBlock{Days: days, Start: string(b.Start), End: string(b.End)}
	}
	return s, nil
}
