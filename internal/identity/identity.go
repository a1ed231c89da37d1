// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package identity registers the synthetic vendor and logs it in for a session token.
//
// Both calls are single-shot: any non-success response is terminal for the run.
package identity

import "context"

// PhoneNumber identifies the registered vendor at login.
type PhoneNumber string

// Credential is the opaque session token returned by login.
type Credential string

// String redacts the token so it never lands in logs by accident.
func (c Credential) String() string {
	if c == "" {
		return ""
	}
	return "[REDACTED]"
}

// Value returns the raw token for embedding in the stream URL.
func (c Credential) Value() string {
	return string(c)
}

// Provisioner performs registration and login against the remote service.
type Provisioner interface {
	Register(ctx context.Context) (PhoneNumber, error)
	Login(ctx context.Context, phone PhoneNumber) (Credential, error)
}
