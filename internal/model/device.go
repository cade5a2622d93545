package model

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/fulviofreitas/eeroctl/internal/output"
)

// Device is a client connected to a network.
type Device struct {
	ID             string
	MAC            string
	Nickname       string
	Hostname       string
	DisplayName    string
	Manufacturer   string
	IP             string
	Connected      bool
	Wireless       bool
	Blocked        bool
	Paused         bool
	Prioritized    bool
	IsGuest        bool
	ConnectionType string
	DeviceType     string
	SourceLocation string
	Signal         string
	Frequency      float64
	ProfileID      string
	ProfileName    string
	LastActive     *time.Time
}

// Name returns the best label for the device, falling back to its MAC.
func (d Device) Name() string {
	if d.DisplayName != "" {
		return d.DisplayName
	}
	if d.MAC != "" {
		return d.MAC
	}
	return d.ID
}

type rawDevice struct {
	URL          Text   `json:"url"`
	MAC          Text   `json:"mac"`
	Nickname     Text   `json:"nickname"`
	Hostname     Text   `json:"hostname"`
	DisplayName  Text   `json:"display_name"`
	Manufacturer Text   `json:"manufacturer"`
	IP           Text   `json:"ip"`
	IPv4         Text   `json:"ipv4"`
	IPs          []Text `json:"ips"`
	Connected    Flag   `json:"connected"`
	Wireless     Flag   `json:"wireless"`
	Blocked      Flag   `json:"blocked"`
	Paused       Flag   `json:"paused"`
	Prioritized  Flag   `json:"prioritized"`
	IsGuest      Flag   `json:"is_guest"`
	ConnType     Text   `json:"connection_type"`
	DeviceType   Text   `json:"device_type"`
	Source       struct {
		Location Text `json:"location"`
	} `json:"source"`
	Connectivity struct {
		Signal    Text   `json:"signal"`
		Frequency Number `json:"frequency"`
	} `json:"connectivity"`
	Profile struct {
		URL  Text `json:"url"`
		Name Text `json:"name"`
	} `json:"profile"`
	LastActive Text `json:"last_active"`
}

// ParseDevice maps a client device payload.
func ParseDevice(data json.RawMessage) (Device, error) {
	var raw rawDevice
	if err := json.Unmarshal(data, &raw); err != nil {
		return Device{}, fmt.Errorf("decode device: %w", err)
	}
	var firstIP Text
	if len(raw.IPs) > 0 {
		firstIP = raw.IPs[0]
	}
	d := Device{
		ID:             IDFromURL(string(raw.URL)),
		MAC:            string(raw.MAC),
		Nickname:       string(raw.Nickname),
		Hostname:       string(raw.Hostname),
		DisplayName:    firstNonEmpty(raw.Nickname, raw.Hostname, raw.DisplayName),
		Manufacturer:   string(raw.Manufacturer),
		IP:             firstNonEmpty(raw.IP, raw.IPv4, firstIP),
		Connected:      bool(raw.Connected),
		Wireless:       bool(raw.Wireless),
		Blocked:        bool(raw.Blocked),
		Paused:         bool(raw.Paused),
		Prioritized:    bool(raw.Prioritized),
		IsGuest:        bool(raw.IsGuest),
		ConnectionType: string(raw.ConnType),
		DeviceType:     string(raw.DeviceType),
		SourceLocation: string(raw.Source.Location),
		Signal:         string(raw.Connectivity.Signal),
		Frequency:      float64(raw.Connectivity.Frequency),
		ProfileName:    string(raw.Profile.Name),
		LastActive:     parseTime(raw.LastActive),
	}
	if raw.Profile.URL != "" {
		d.ProfileID = IDFromURL(string(raw.Profile.URL))
	}
	return d, nil
}

// ParseDevices maps a device list payload.
func ParseDevices(data json.RawMessage) ([]Device, error) {
	return parseList(data, "devices", ParseDevice)
}

// Record implements output.Recorder.
func (d Device) Record() output.Record {
	var freq any
	if d.Frequency != 0 {
		freq = d.Frequency
	}
	return output.Record{
		{Key: "id", Value: d.ID},
		{Key: "display_name", Value: optional(d.DisplayName)},
		{Key: "nickname", Value: optional(d.Nickname)},
		{Key: "hostname", Value: optional(d.Hostname)},
		{Key: "mac", Value: optional(d.MAC)},
		{Key: "ip", Value: optional(d.IP)},
		{Key: "manufacturer", Value: optional(d.Manufacturer)},
		{Key: "connected", Value: d.Connected},
		{Key: "wireless", Value: d.Wireless},
		{Key: "blocked", Value: d.Blocked},
		{Key: "paused", Value: d.Paused},
		{Key: "prioritized", Value: d.Prioritized},
		{Key: "is_guest", Value: d.IsGuest},
		{Key: "connection_type", Value: optional(d.ConnectionType)},
		{Key: "device_type", Value: optional(d.DeviceType)},
		{Key: "source_location", Value: optional(d.SourceLocation)},
		{Key: "signal", Value: optional(d.Signal)},
		{Key: "frequency", Value: freq},
		{Key: "profile_id", Value: optional(d.ProfileID)},
		{Key: "profile_name", Value: optional(d.ProfileName)},
		{Key: "last_active", Value: optionalTime(d.LastActive)},
	}
}
