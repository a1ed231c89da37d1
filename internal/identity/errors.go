// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package identity

import (
	"errors"
	"fmt"
)

var (
	// Sentinel errors for errors.Is checks at the boundary.
	ErrRejected     = errors.New("identity: request rejected by remote service")
	ErrMissingToken = errors.New("identity: login response carries no access token")
	ErrBadResponse  = errors.New("identity: invalid response format")
	ErrUnavailable  = errors.New("identity: host unreachable or transport failure")
	ErrTimeout      = errors.New("identity: request timed out")
)

// Error wraps a sentinel with the operation and the remote response that caused it.
type Error struct {
	Sentinel  error
	Operation string
	Status    int
	Body      string
	Err       error // lower-level cause (net.Error, json.SyntaxError, ...)
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("identity: %s: %v", e.Operation, e.Sentinel)
	if e.Status > 0 {
		msg = fmt.Sprintf("%s (HTTP %d)", msg, e.Status)
	}
	if e.Body != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Body)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Sentinel
}

// Outcome maps an error to a bounded metrics label.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, ErrRejected):
		return "rejected"
	case errors.Is(err, ErrMissingToken):
		return "missing_token"
	case errors.Is(err, ErrBadResponse):
		return "bad_response"
	case errors.Is(err, ErrTimeout):
		return "timeout"
	default:
		return "unavailable"
	}
}
