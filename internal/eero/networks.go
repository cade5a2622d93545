package eero

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/fulviofreitas/eeroctl/internal/model"
)

func networkPath(networkID string, parts ...string) string {
	p := "/networks/" + url.PathEscape(networkID)
	for _, part := range parts {
		p += "/" + part
	}
	return p
}

// Networks lists the networks the account can manage.
func (c *Client) Networks(ctx context.Context) ([]model.Network, error) {
	acct, err := c.Account(ctx)
	if err != nil {
		return nil, err
	}
	return acct.Networks, nil
}

// Network returns the full detail of one network.
func (c *Client) Network(ctx context.Context, networkID string) (model.Network, error) {
	data, err := c.get(ctx, networkPath(networkID))
	if err != nil {
		return model.Network{}, fmt.Errorf("get network %s: %w", networkID, err)
	}
	return model.ParseNetwork(data)
}

// RenameNetwork changes the network name, which is also its SSID.
func (c *Client) RenameNetwork(ctx context.Context, networkID, name string) error {
	if _, err := c.send(ctx, http.MethodPut, networkPath(networkID), map[string]string{"name": name}); err != nil {
		return fmt.Errorf("rename network %s: %w", networkID, err)
	}
	return nil
}

// SetWiFiPassword changes the password of the main SSID. Every client has
// to reconnect afterwards.
func (c *Client) SetWiFiPassword(ctx context.Context, networkID, password string) error {
	if _, err := c.send(ctx, http.MethodPut, networkPath(networkID), map[string]string{"password": password}); err != nil {
		return fmt.Errorf("set wifi password on network %s: %w", networkID, err)
	}
	return nil
}

// RebootNetwork restarts every node of the network.
func (c *Client) RebootNetwork(ctx context.Context, networkID string) error {
	if _, err := c.send(ctx, http.MethodPost, networkPath(networkID, "reboot"), nil); err != nil {
		return fmt.Errorf("reboot network %s: %w", networkID, err)
	}
	return nil
}

// GuestSettings is the body of a guest network update. Nil fields are left
// unchanged.
type GuestSettings struct {
	Enabled  bool    `json:"enabled"`
	Name     *string `json:"name,omitempty"`
	Password *string `json:"password,omitempty"`
}

// SetGuestNetwork updates the guest network.
func (c *Client) SetGuestNetwork(ctx context.Context, networkID string, settings GuestSettings) error {
	if _, err := c.send(ctx, http.MethodPut, networkPath(networkID, "guestnetwork"), settings); err != nil {
		return fmt.Errorf("update guest network: %w", err)
	}
	return nil
}

// RunSpeedTest asks the gateway to measure WAN throughput. The result shows
// up in SpeedTest once the measurement finishes.
func (c *Client) RunSpeedTest(ctx context.Context, networkID string) error {
	if _, err := c.send(ctx, http.MethodPost, networkPath(networkID, "speedtest"), nil); err != nil {
		return fmt.Errorf("run speed test: %w", err)
	}
	return nil
}

// SpeedTest returns the latest speed test result.
func (c *Client) SpeedTest(ctx context.Context, networkID string) (model.SpeedTest, error) {
	data, err := c.get(ctx, networkPath(networkID, "speedtest"))
	if err != nil {
		return model.SpeedTest{}, fmt.Errorf("get speed test: %w", err)
	}
	return model.ParseSpeedTest(data)
}

// ActivitySummary returns the data usage summary. It is an Eero Plus
// feature; the API answers with a premium error otherwise.
func (c *Client) ActivitySummary(ctx context.Context, networkID string) (model.ActivitySummary, error) {
	data, err := c.get(ctx, networkPath(networkID, "activity", "summary"))
	if err != nil {
		return model.ActivitySummary{}, fmt.Errorf("get activity: %w", err)
	}
	return model.ParseActivitySummary(data)
}

// DNSSettings returns the resolver configuration of a network.
func (c *Client) DNSSettings(ctx context.Context, networkID string) (model.DNSSettings, error) {
	data, err := c.get(ctx, networkPath(networkID))
	if err != nil {
		return model.DNSSettings{}, fmt.Errorf("get dns settings: %w", err)
	}
	return model.ParseDNSSettings(data)
}

// SQMSettings returns the smart queue management state of a network.
func (c *Client) SQMSettings(ctx context.Context, networkID string) (model.SQMSettings, error) {
	data, err := c.get(ctx, networkPath(networkID))
	if err != nil {
		return model.SQMSettings{}, fmt.Errorf("get sqm settings: %w", err)
	}
	return model.ParseSQMSettings(data)
}

// Updates returns the firmware update state of a network.
func (c *Client) Updates(ctx context.Context, networkID string) (model.UpdateStatus, error) {
	data, err := c.get(ctx, networkPath(networkID))
	if err != nil {
		return model.UpdateStatus{}, fmt.Errorf("get update status: %w", err)
	}
	return model.ParseUpdateStatus(data)
}

// SetSecurityFeature switches one security toggle of a network.
func (c *Client) SetSecurityFeature(ctx context.Context, networkID string, feature model.SecurityFeature, enabled bool) error {
	body := map[string]bool{feature.Field: enabled}
	if _, err := c.send(ctx, http.MethodPut, networkPath(networkID), body); err != nil {
		return fmt.Errorf("set %s on network %s: %w", feature.Name, networkID, err)
	}
	return nil
}
