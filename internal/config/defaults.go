// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package config

import "time"

const (
	DefaultRegisterURL = "http://127.0.0.1:8000/api/auth/customer/register/"
	DefaultLoginURL    = "http://127.0.0.1:8000/customersignin/"
	DefaultStreamURL   = "ws://127.0.0.1:8000/ws/pickup_request/"

	// The send interval is interpreted in seconds.
	DefaultSendIntervalMin  = 36 * time.Second
	DefaultSendIntervalMax  = 60 * time.Second
	DefaultReconnectBackoff = 1 * time.Second
	DefaultPingInterval     = 10 * time.Second
	DefaultHandshakeTimeout = 10 * time.Second
	DefaultWriteTimeout     = 10 * time.Second

	DefaultHTTPTimeout = 15 * time.Second

	DefaultListenAddr      = "127.0.0.1:8089"
	DefaultMetricsAddr     = "127.0.0.1:9469"
	DefaultShutdownTimeout = 15 * time.Second
	DefaultRateLimit       = 60

	DefaultLogLevel   = "info"
	DefaultLogService = "vendorsim"
)

func (l *Loader) setDefaults(cfg *AppConfig) {
	cfg.LogLevel = DefaultLogLevel
	cfg.LogService = DefaultLogService

	cfg.Endpoints = EndpointsConfig{
		RegisterURL: DefaultRegisterURL,
		LoginURL:    DefaultLoginURL,
		StreamURL:   DefaultStreamURL,
	}
	cfg.Stream = StreamConfig{
		SendIntervalMin:  DefaultSendIntervalMin,
		SendIntervalMax:  DefaultSendIntervalMax,
		ReconnectBackoff: DefaultReconnectBackoff,
		PingInterval:     DefaultPingInterval,
		HandshakeTimeout: DefaultHandshakeTimeout,
		WriteTimeout:     DefaultWriteTimeout,
	}
	cfg.HTTP = HTTPConfig{
		Timeout:   DefaultHTTPTimeout,
		UserAgent: userAgent(l.version),
	}
	cfg.Server = ServerConfig{
		ListenAddr:      DefaultListenAddr,
		MetricsAddr:     DefaultMetricsAddr,
		ShutdownTimeout: DefaultShutdownTimeout,
		RateLimit:       DefaultRateLimit,
	}
}

func userAgent(version string) string {
	if version == "" {
		return "vendorsim"
	}
	return "vendorsim/" + version
}
