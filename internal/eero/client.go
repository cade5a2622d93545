// Package eero is a client for the Eero cloud API used by the mobile app.
package eero

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// DefaultBaseURL is the production API root.
const DefaultBaseURL = "https://api-user.e2ro.com/2.2"

// sessionCookie carries the user token on authenticated calls.
const sessionCookie = "s"

// maxBodyBytes bounds how much of a response body is read.
const maxBodyBytes = 8 << 20

// ErrUnauthenticated is returned when an authenticated call is attempted
// without a user token.
var ErrUnauthenticated = errors.New("not authenticated")

// Client is an Eero cloud API client. It is not safe for concurrent use;
// each invocation drives it from a single goroutine.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
	userAgent  string
	limiter    *rate.Limiter
	logger     zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithToken sets the user token sent with every request.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// WithLogger attaches a logger for request tracing at debug level.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithRateLimit spaces consecutive requests. A zero limit disables pacing.
func WithRateLimit(limit rate.Limit, burst int) Option {
	return func(c *Client) {
		if limit == 0 {
			c.limiter = nil
			return
		}
		c.limiter = rate.NewLimiter(limit, burst)
	}
}

// NewClient creates a client rooted at baseURL, e.g.
// "https://api-user.e2ro.com/2.2".
func NewClient(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		userAgent:  "eeroctl",
		limiter:    rate.NewLimiter(rate.Every(100*time.Millisecond), 2),
		logger:     zerolog.Nop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Token returns the user token the client authenticates with.
func (c *Client) Token() string { return c.token }

// envelope is the wrapper around every API response.
type envelope struct {
	Meta struct {
		Code  int    `json:"code"`
		Error string `json:"error"`
	} `json:"meta"`
	Data json.RawMessage `json:"data"`
}

// get issues an authenticated GET and returns the data field.
func (c *Client) get(ctx context.Context, path string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, path, nil, true)
}

// send issues an authenticated request with an optional JSON body.
func (c *Client) send(ctx context.Context, method, path string, body any) (json.RawMessage, error) {
	return c.do(ctx, method, path, body, true)
}

// do sends one request and checks for a 2xx response.
func (c *Client) do(ctx context.Context, method, path string, body any, auth bool) (json.RawMessage, error) {
	if auth && c.token == "" {
		return nil, ErrUnauthenticated
	}
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			// Wait refuses early when the delay would outlast the deadline.
			if ctxErr := ctx.Err(); ctxErr != nil {
				err = ctxErr
			} else if _, ok := ctx.Deadline(); ok {
				err = fmt.Errorf("%v: %w", err, context.DeadlineExceeded)
			}
			return nil, fmt.Errorf("%s %s: %w", method, path, err)
		}
	}

	var bodyReader io.Reader = http.NoBody
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.AddCookie(&http.Cookie{Name: sessionCookie, Value: c.token})
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug().Str("request_id", requestID).Str("method", method).Str("path", path).Err(err).Msg("request failed")
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	c.logger.Debug().
		Str("request_id", requestID).
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("api request")
	if err != nil {
		return nil, fmt.Errorf("read %s %s: %w", method, path, err)
	}

	var env envelope
	decodeErr := json.Unmarshal(raw, &env)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Method: method, Path: path, StatusCode: resp.StatusCode}
		if decodeErr == nil {
			apiErr.Message = env.Meta.Error
		}
		return nil, apiErr
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("decode %s %s: %w", method, path, decodeErr)
	}
	return env.Data, nil
}
