package eero

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/fulviofreitas/eeroctl/internal/exitcode"
)

// APIError is a non-2xx response from the API.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	// Message is meta.error from the response body when present.
	Message string
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("eero API %s %s returned HTTP %d: %s", e.Method, e.Path, e.StatusCode, msg)
}

// PremiumRequired reports whether the failure names a subscription feature.
func (e *APIError) PremiumRequired() bool {
	if e.StatusCode == http.StatusPaymentRequired {
		return true
	}
	msg := strings.ToLower(e.Message)
	return strings.Contains(msg, "premium") || strings.Contains(msg, "subscription") ||
		strings.Contains(msg, "eero plus")
}

// FeatureUnavailable reports whether the failure says the hardware lacks
// the feature.
func (e *APIError) FeatureUnavailable() bool {
	msg := strings.ToLower(e.Message)
	return strings.Contains(msg, "not supported") || strings.Contains(msg, "unsupported") ||
		strings.Contains(msg, "unavailable") || strings.Contains(msg, "beacon")
}

// ExitCode implements exitcode.Coder.
func (e *APIError) ExitCode() exitcode.Code {
	switch {
	case e.PremiumRequired():
		return exitcode.PremiumRequired
	case e.FeatureUnavailable():
		return exitcode.FeatureUnavailable
	}
	switch e.StatusCode {
	case http.StatusUnauthorized:
		return exitcode.AuthRequired
	case http.StatusForbidden:
		return exitcode.Forbidden
	case http.StatusNotFound:
		return exitcode.NotFound
	case http.StatusConflict:
		return exitcode.Conflict
	case http.StatusTooManyRequests, http.StatusRequestTimeout, http.StatusGatewayTimeout:
		return exitcode.Timeout
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return exitcode.UsageError
	}
	return exitcode.GenericError
}

// Hint suggests a follow-up for common failures.
func (e *APIError) Hint() string {
	switch e.ExitCode() {
	case exitcode.AuthRequired:
		return "Session expired. Run 'eeroctl auth login' to re-authenticate."
	case exitcode.PremiumRequired:
		return "This feature requires an Eero Plus subscription."
	case exitcode.Timeout:
		return "Rate limited or timed out. Wait and try again."
	}
	return ""
}
