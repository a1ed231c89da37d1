// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package stream

import (
	"errors"
	"fmt"
	"time"
)

const (
	defaultSendIntervalMin  = 36 * time.Second
	defaultSendIntervalMax  = 60 * time.Second
	defaultReconnectBackoff = time.Second
	defaultHandshakeTimeout = 10 * time.Second
	defaultWriteTimeout     = 10 * time.Second
	defaultActor            = "vendor"
)

// ErrInvalidConfig is returned by Config.Validate for a missing URL or an
// inverted send interval.
var ErrInvalidConfig = errors.New("stream: invalid config")

// Config tunes a Manager. Zero durations fall back to the defaults, except
// PingInterval where zero disables keep-alive pings.
type Config struct {
	// URL is the base streaming endpoint; the credential is added as ?token=.
	URL string

	SendIntervalMin  time.Duration
	SendIntervalMax  time.Duration
	ReconnectBackoff time.Duration
	PingInterval     time.Duration
	// PongTimeout bounds how long the connection may stay silent once pings
	// are enabled. Defaults to three ping intervals.
	PongTimeout      time.Duration
	HandshakeTimeout time.Duration
	WriteTimeout     time.Duration

	// Actor labels metrics and logs.
	Actor string
}

func (c Config) withDefaults() Config {
	if c.SendIntervalMin <= 0 {
		c.SendIntervalMin = defaultSendIntervalMin
	}
	if c.SendIntervalMax <= 0 {
		c.SendIntervalMax = max(defaultSendIntervalMax, c.SendIntervalMin)
	}
	if c.ReconnectBackoff <= 0 {
		c.ReconnectBackoff = defaultReconnectBackoff
	}
	if c.PingInterval < 0 {
		c.PingInterval = 0
	}
	if c.PingInterval > 0 && c.PongTimeout <= 0 {
		c.PongTimeout = 3 * c.PingInterval
	}
	if c.HandshakeTimeout <= 0 {
		c.HandshakeTimeout = defaultHandshakeTimeout
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = defaultWriteTimeout
	}
	if c.Actor == "" {
		c.Actor = defaultActor
	}
	return c
}

// Validate reports configuration that would make the send loop misbehave.
func (c Config) Validate() error {
	if c.URL == "" {
		return fmt.Errorf("%w: URL is required", ErrInvalidConfig)
	}
	if c.SendIntervalMin > c.SendIntervalMax && c.SendIntervalMax > 0 {
		return fmt.Errorf("%w: send interval min %s exceeds max %s", ErrInvalidConfig, c.SendIntervalMin, c.SendIntervalMax)
	}
	return nil
}
