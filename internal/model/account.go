package model

import (
	"encoding/json"
	"fmt"

	"github.com/fulviofreitas/eeroctl/internal/output"
)

// Account is the signed-in user.
type Account struct {
	ID            string
	Name          string
	Email         string
	Phone         string
	PremiumStatus string
	Networks      []Network
}

type rawAccount struct {
	ID            Text            `json:"id"`
	URL           Text            `json:"url"`
	Name          Text            `json:"name"`
	Email         Text            `json:"email"`
	Phone         Text            `json:"phone"`
	PremiumStatus Text            `json:"premium_status"`
	Networks      json.RawMessage `json:"networks"`
}

// ParseAccount maps an account payload including its network summaries.
func ParseAccount(data json.RawMessage) (Account, error) {
	var raw rawAccount
	if err := json.Unmarshal(data, &raw); err != nil {
		return Account{}, fmt.Errorf("decode account: %w", err)
	}
	a := Account{
		ID:            firstNonEmpty(raw.ID, Text(IDFromURL(string(raw.URL)))),
		Name:          string(raw.Name),
		Email:         string(raw.Email),
		Phone:         string(raw.Phone),
		PremiumStatus: string(raw.PremiumStatus),
	}
	networks, err := ParseNetworks(raw.Networks)
	if err != nil {
		return Account{}, err
	}
	a.Networks = networks
	return a, nil
}

// Record implements output.Recorder.
func (a Account) Record() output.Record {
	return output.Record{
		{Key: "id", Value: optional(a.ID)},
		{Key: "name", Value: optional(a.Name)},
		{Key: "email", Value: optional(a.Email)},
		{Key: "phone", Value: optional(a.Phone)},
		{Key: "premium_status", Value: optional(a.PremiumStatus)},
		{Key: "network_count", Value: int64(len(a.Networks))},
	}
}

// ActivitySummary is network-wide data usage for the current period.
type ActivitySummary struct {
	DownloadBytes int64
	UploadBytes   int64
	Devices       []DeviceUsage
}

// DeviceUsage is one device's share of the activity summary.
type DeviceUsage struct {
	Name          string
	DownloadBytes int64
	UploadBytes   int64
}

// Record implements output.Recorder.
func (u DeviceUsage) Record() output.Record {
	return output.Record{
		{Key: "name", Value: u.Name},
		{Key: "download_bytes", Value: u.DownloadBytes},
		{Key: "upload_bytes", Value: u.UploadBytes},
	}
}

type rawUsage struct {
	Download Number `json:"download"`
	Upload   Number `json:"upload"`
	Devices  []struct {
		rawDevice
		Download Number `json:"download"`
		Upload   Number `json:"upload"`
	} `json:"devices"`
}

// ParseActivitySummary maps an activity payload.
func ParseActivitySummary(data json.RawMessage) (ActivitySummary, error) {
	var raw rawUsage
	if err := json.Unmarshal(data, &raw); err != nil {
		return ActivitySummary{}, fmt.Errorf("decode activity: %w", err)
	}
	s := ActivitySummary{
		DownloadBytes: int64(raw.Download),
		UploadBytes:   int64(raw.Upload),
		Devices:       make([]DeviceUsage, 0, len(raw.Devices)),
	}
	for _, d := range raw.Devices {
		s.Devices = append(s.Devices, DeviceUsage{
			Name:          firstNonEmpty(d.Nickname, d.Hostname, d.DisplayName, d.MAC, "unknown"),
			DownloadBytes: int64(d.Download),
			UploadBytes:   int64(d.Upload),
		})
	}
	return s, nil
}

// Record implements output.Recorder.
func (s ActivitySummary) Record() output.Record {
	return output.Record{
		{Key: "download_bytes", Value: s.DownloadBytes},
		{Key: "upload_bytes", Value: s.UploadBytes},
		{Key: "devices", Value: s.Devices},
	}
}
