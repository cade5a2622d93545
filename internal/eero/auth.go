package eero

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/fulviofreitas/eeroctl/internal/model"
)

// Login starts a login for an email address or phone number. The API sends
// a verification code out of band and returns a provisional user token that
// becomes valid once Verify succeeds.
func (c *Client) Login(ctx context.Context, identifier string) (string, error) {
	data, err := c.do(ctx, http.MethodPost, "/login", map[string]string{"login": identifier}, false)
	if err != nil {
		return "", fmt.Errorf("login: %w", err)
	}
	var out struct {
		UserToken string `json:"user_token"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return "", fmt.Errorf("decode login response: %w", err)
	}
	if out.UserToken == "" {
		return "", fmt.Errorf("login: response carried no user token")
	}
	c.token = out.UserToken
	return out.UserToken, nil
}

// Verify completes a login with the code the user received.
func (c *Client) Verify(ctx context.Context, code string) error {
	if _, err := c.send(ctx, http.MethodPost, "/login/verify", map[string]string{"code": code}); err != nil {
		return fmt.Errorf("verify: %w", err)
	}
	return nil
}

// Logout invalidates the user token server-side.
func (c *Client) Logout(ctx context.Context) error {
	if _, err := c.send(ctx, http.MethodPost, "/logout", nil); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

// Account returns the signed-in account with its network summaries.
func (c *Client) Account(ctx context.Context) (model.Account, error) {
	data, err := c.get(ctx, "/account")
	if err != nil {
		return model.Account{}, fmt.Errorf("get account: %w", err)
	}
	return model.ParseAccount(data)
}
