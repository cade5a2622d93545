package model

import (
	"encoding/json"
	"fmt"

	"github.com/fulviofreitas/eeroctl/internal/output"
)

// Profile groups devices under shared parental controls.
type Profile struct {
	ID          string
	Name        string
	Default     bool
	Paused      bool
	DeviceCount int64
	DeviceNames []string
	Scheduled   bool
}

type rawProfile struct {
	URL      Text            `json:"url"`
	Name     Text            `json:"name"`
	Default  Flag            `json:"default"`
	Paused   Flag            `json:"paused"`
	Devices  []rawDevice     `json:"devices"`
	Schedule json.RawMessage `json:"schedule"`
}

// ParseProfile maps a profile payload.
func ParseProfile(data json.RawMessage) (Profile, error) {
	var raw rawProfile
	if err := json.Unmarshal(data, &raw); err != nil {
		return Profile{}, fmt.Errorf("decode profile: %w", err)
	}
	p := Profile{
		ID:          IDFromURL(string(raw.URL)),
		Name:        firstNonEmpty(raw.Name, "Unknown"),
		Default:     bool(raw.Default),
		Paused:      bool(raw.Paused),
		DeviceCount: int64(len(raw.Devices)),
		DeviceNames: make([]string, 0, len(raw.Devices)),
	}
	for _, d := range raw.Devices {
		if name := firstNonEmpty(d.Nickname, d.Hostname, d.DisplayName, d.MAC); name != "" {
			p.DeviceNames = append(p.DeviceNames, name)
		}
	}
	var schedule []json.RawMessage
	if err := json.Unmarshal(raw.Schedule, &schedule); err == nil {
		p.Scheduled = len(schedule) > 0
	}
	return p, nil
}

// ParseProfiles maps a profile list payload.
func ParseProfiles(data json.RawMessage) ([]Profile, error) {
	return parseList(data, "profiles", ParseProfile)
}

// Record implements output.Recorder.
func (p Profile) Record() output.Record {
	return output.Record{
		{Key: "id", Value: p.ID},
		{Key: "name", Value: p.Name},
		{Key: "default", Value: p.Default},
		{Key: "paused", Value: p.Paused},
		{Key: "device_count", Value: p.DeviceCount},
		{Key: "devices", Value: p.DeviceNames},
		{Key: "schedule_enabled", Value: p.Scheduled},
	}
}
