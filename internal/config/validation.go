// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package config

import (
	"strings"

	"github.com/ManuGH/vendorsim/internal/validate"
)

var (
	httpSchemes = []string{"http", "https"}
	wsSchemes   = []string{"ws", "wss"}
	logLevels   = []string{"trace", "debug", "info", "warn", "error", "fatal", "panic", "disabled"}
)

// Validate validates an AppConfig using the centralized validation package
func Validate(cfg AppConfig) error {
	v := validate.New()

	v.URL("Endpoints.RegisterURL", cfg.Endpoints.RegisterURL, httpSchemes)
	v.URL("Endpoints.LoginURL", cfg.Endpoints.LoginURL, httpSchemes)
	v.URL("Endpoints.StreamURL", cfg.Endpoints.StreamURL, wsSchemes)

	v.PositiveDuration("Stream.SendIntervalMin", cfg.Stream.SendIntervalMin)
	v.PositiveDuration("Stream.SendIntervalMax", cfg.Stream.SendIntervalMax)
	v.DurationOrder("Stream.SendInterval", cfg.Stream.SendIntervalMin, cfg.Stream.SendIntervalMax)
	v.PositiveDuration("Stream.ReconnectBackoff", cfg.Stream.ReconnectBackoff)
	v.NonNegativeDuration("Stream.PingInterval", cfg.Stream.PingInterval)
	v.PositiveDuration("Stream.HandshakeTimeout", cfg.Stream.HandshakeTimeout)
	v.PositiveDuration("Stream.WriteTimeout", cfg.Stream.WriteTimeout)

	v.PositiveDuration("HTTP.Timeout", cfg.HTTP.Timeout)

	v.ListenAddr("Server.ListenAddr", cfg.Server.ListenAddr)
	if strings.TrimSpace(cfg.Server.MetricsAddr) != "" {
		v.ListenAddr("Server.MetricsAddr", cfg.Server.MetricsAddr)
	}
	v.PositiveDuration("Server.ShutdownTimeout", cfg.Server.ShutdownTimeout)
	v.Range("Server.RateLimit", cfg.Server.RateLimit, 1, 100000)

	v.OneOf("LogLevel", strings.ToLower(cfg.LogLevel), logLevels)

	return v.Err()
}
