// Package exitcode defines the process exit codes shared by every eeroctl
// command. Scripts depend on these values; they must never be renumbered.
package exitcode

import (
	"errors"
	"fmt"
)

// Code is a process exit status.
type Code int

const (
	Success            Code = 0
	GenericError       Code = 1
	UsageError         Code = 2
	AuthRequired       Code = 3
	Forbidden          Code = 4
	NotFound           Code = 5
	Conflict           Code = 6
	Timeout            Code = 7
	SafetyRail         Code = 8
	// 9 is reserved.
	PartialSuccess     Code = 10
	PremiumRequired    Code = 11
	FeatureUnavailable Code = 12
)

var descriptions = map[Code]string{
	Success:            "Operation completed successfully",
	GenericError:       "An unexpected error occurred",
	UsageError:         "Invalid command usage or arguments",
	AuthRequired:       "Authentication required or session expired",
	Forbidden:          "Permission denied for this operation",
	NotFound:           "Requested resource not found",
	Conflict:           "Operation conflicts with current state",
	Timeout:            "Operation timed out",
	SafetyRail:         "Safety confirmation required (use --force)",
	PartialSuccess:     "Operation partially completed",
	PremiumRequired:    "Feature requires Eero Plus subscription",
	FeatureUnavailable: "Feature not available on this device",
}

// All returns every defined code in ascending order.
func All() []Code {
	return []Code{
		Success, GenericError, UsageError, AuthRequired, Forbidden, NotFound,
		Conflict, Timeout, SafetyRail, PartialSuccess, PremiumRequired, FeatureUnavailable,
	}
}

// Description returns the help text for c, or "" for an undefined code.
func (c Code) Description() string {
	return descriptions[c]
}

func (c Code) String() string {
	if d, ok := descriptions[c]; ok {
		return fmt.Sprintf("%d (%s)", int(c), d)
	}
	return fmt.Sprintf("%d", int(c))
}

// Coder is implemented by errors that know which exit code they map to.
type Coder interface {
	ExitCode() Code
}

// Error attaches an exit code to an underlying error.
type Error struct {
	Code Code
	Err  error
	// Hint is an optional follow-up suggestion shown below the message.
	Hint string
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Code.Description()
	}
	return e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

// ExitCode implements Coder.
func (e *Error) ExitCode() Code { return e.Code }

// Wrap returns err tagged with code. A nil err yields nil.
func Wrap(code Code, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Err: err}
}

// Errorf builds a tagged error from a format string.
func Errorf(code Code, format string, args ...any) error {
	return &Error{Code: code, Err: fmt.Errorf(format, args...)}
}

// WithHint tags err with code and a hint line.
func WithHint(code Code, err error, hint string) error {
	return &Error{Code: code, Err: err, Hint: hint}
}

// FromError extracts the exit code carried by err. Untagged errors map to
// GenericError and nil maps to Success.
func FromError(err error) Code {
	if err == nil {
		return Success
	}
	var c Coder
	if errors.As(err, &c) {
		return c.ExitCode()
	}
	return GenericError
}

// Hinter is implemented by errors that carry their own follow-up hint.
type Hinter interface {
	Hint() string
}

// HintFrom returns the first hint found in err's chain.
func HintFrom(err error) string {
	for err != nil {
		switch e := err.(type) {
		case *Error:
			if e.Hint != "" {
				return e.Hint
			}
		case Hinter:
			if h := e.Hint(); h != "" {
				return h
			}
		}
		err = errors.Unwrap(err)
	}
	return ""
}
