// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package stream

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/ManuGH/vendorsim/internal/identity"
	"github.com/gorilla/websocket"
)

// ErrHandshakeRejected is returned when the server answers the upgrade with a
// non-101 status (typically an invalid or expired token).
var ErrHandshakeRejected = errors.New("stream: handshake rejected")

// Conn is the subset of *websocket.Conn the manager drives.
type Conn interface {
	ReadMessage() (messageType int, p []byte, err error)
	WriteMessage(messageType int, data []byte) error
	WriteControl(messageType int, data []byte, deadline time.Time) error
	SetReadDeadline(t time.Time) error
	SetWriteDeadline(t time.Time) error
	SetPongHandler(h func(appData string) error)
	Close() error
}

var _ Conn = (*websocket.Conn)(nil)

// Dialer opens one streaming connection.
type Dialer interface {
	Dial(ctx context.Context, endpoint string) (Conn, error)
}

// DialerFunc adapts a function to Dialer.
type DialerFunc func(ctx context.Context, endpoint string) (Conn, error)

func (f DialerFunc) Dial(ctx context.Context, endpoint string) (Conn, error) {
	return f(ctx, endpoint)
}

// WebsocketDialer dials with gorilla/websocket.
type WebsocketDialer struct {
	Dialer *websocket.Dialer
	Header http.Header
}

// NewWebsocketDialer returns a dialer with the given handshake timeout.
func NewWebsocketDialer(handshakeTimeout time.Duration, userAgent string) *WebsocketDialer {
	d := *websocket.DefaultDialer
	d.HandshakeTimeout = handshakeTimeout
	h := http.Header{}
	if userAgent != "" {
		h.Set("User-Agent", userAgent)
	}
	return &WebsocketDialer{Dialer: &d, Header: h}
}

func (w *WebsocketDialer) Dial(ctx context.Context, endpoint string) (Conn, error) {
	d := w.Dialer
	if d == nil {
		d = websocket.DefaultDialer
	}
	conn, resp, err := d.DialContext(ctx, endpoint, w.Header)
	if err != nil {
		if errors.Is(err, websocket.ErrBadHandshake) && resp != nil {
			return nil, fmt.Errorf("%w: HTTP %d", ErrHandshakeRejected, resp.StatusCode)
		}
		return nil, err
	}
	return conn, nil
}

// BuildURL embeds the session credential as the "token" query parameter.
func BuildURL(base string, cred identity.Credential) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parse stream url: %w", err)
	}
	q := u.Query()
	q.Set("token", cred.Value())
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// redactURL strips the query so tokens never reach the logs.
func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "invalid-url-redacted"
	}
	u.RawQuery = ""
	u.User = nil
	return u.String()
}
