package eero

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/fulviofreitas/eeroctl/internal/model"
)

// Devices lists the clients known to a network.
func (c *Client) Devices(ctx context.Context, networkID string) ([]model.Device, error) {
	data, err := c.get(ctx, networkPath(networkID, "devices"))
	if err != nil {
		return nil, fmt.Errorf("list devices: %w", err)
	}
	return model.ParseDevices(data)
}

// DeviceUpdate is the body of a device update. Nil fields are left
// unchanged.
type DeviceUpdate struct {
	Nickname    *string `json:"nickname,omitempty"`
	Blocked     *bool   `json:"blocked,omitempty"`
	Prioritized *bool   `json:"prioritized,omitempty"`
	// PriorityMinutes bounds a prioritization; zero means indefinitely.
	PriorityMinutes int `json:"priority_duration,omitempty"`
}

// UpdateDevice applies update to one device.
func (c *Client) UpdateDevice(ctx context.Context, networkID, deviceID string, update DeviceUpdate) error {
	path := networkPath(networkID, "devices", url.PathEscape(deviceID))
	if _, err := c.send(ctx, http.MethodPut, path, update); err != nil {
		return fmt.Errorf("update device %s: %w", deviceID, err)
	}
	return nil
}

// Profiles lists the profiles of a network.
func (c *Client) Profiles(ctx context.Context, networkID string) ([]model.Profile, error) {
	data, err := c.get(ctx, networkPath(networkID, "profiles"))
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	return model.ParseProfiles(data)
}

// SetProfilePaused pauses or resumes internet access for a profile.
func (c *Client) SetProfilePaused(ctx context.Context, networkID, profileID string, paused bool) error {
	path := networkPath(networkID, "profiles", url.PathEscape(profileID))
	if _, err := c.send(ctx, http.MethodPut, path, map[string]bool{"paused": paused}); err != nil {
		return fmt.Errorf("update profile %s: %w", profileID, err)
	}
	return nil
}

// ProfileSchedule returns the access schedule of a profile.
func (c *Client) ProfileSchedule(ctx context.Context, networkID, profileID string) (model.Schedule, error) {
	data, err := c.get(ctx, networkPath(networkID, "profiles", url.PathEscape(profileID), "schedule"))
	if err != nil {
		return model.Schedule{}, fmt.Errorf("get schedule of profile %s: %w", profileID, err)
	}
	return model.ParseSchedule(data)
}
