package eero

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/fulviofreitas/eeroctl/internal/model"
)

func eeroPath(eeroID string, parts ...string) string {
	p := "/eeros/" + url.PathEscape(eeroID)
	for _, part := range parts {
		p += "/" + part
	}
	return p
}

// Eeros lists the mesh nodes of a network.
func (c *Client) Eeros(ctx context.Context, networkID string) ([]model.Eero, error) {
	data, err := c.get(ctx, networkPath(networkID, "eeros"))
	if err != nil {
		return nil, fmt.Errorf("list eeros: %w", err)
	}
	return model.ParseEeros(data)
}

// Eero returns one node by id.
func (c *Client) Eero(ctx context.Context, eeroID string) (model.Eero, error) {
	data, err := c.get(ctx, eeroPath(eeroID))
	if err != nil {
		return model.Eero{}, fmt.Errorf("get eero %s: %w", eeroID, err)
	}
	return model.ParseEero(data)
}

// RebootEero restarts a single node.
func (c *Client) RebootEero(ctx context.Context, eeroID string) error {
	if _, err := c.send(ctx, http.MethodPost, eeroPath(eeroID, "reboot"), nil); err != nil {
		return fmt.Errorf("reboot eero %s: %w", eeroID, err)
	}
	return nil
}

// SetLED turns the status light of a node on or off.
func (c *Client) SetLED(ctx context.Context, eeroID string, on bool) error {
	if _, err := c.send(ctx, http.MethodPut, eeroPath(eeroID, "led"), map[string]bool{"led_on": on}); err != nil {
		return fmt.Errorf("set led on eero %s: %w", eeroID, err)
	}
	return nil
}

// SetNightlight turns the nightlight of a Beacon on or off.
func (c *Client) SetNightlight(ctx context.Context, eeroID string, on bool) error {
	body := map[string]bool{"enabled": on}
	if _, err := c.send(ctx, http.MethodPut, eeroPath(eeroID, "nightlight", "settings"), body); err != nil {
		return fmt.Errorf("set nightlight on eero %s: %w", eeroID, err)
	}
	return nil
}
