// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package config

import "time"

// AppConfig is the effective, validated runtime configuration.
type AppConfig struct {
	Version string

	LogLevel   string
	LogService string

	Endpoints EndpointsConfig
	Stream    StreamConfig
	HTTP      HTTPConfig
	Server    ServerConfig

	// Seed for the fake data generator; 0 selects a random seed.
	Seed uint64
}

// EndpointsConfig holds the remote service endpoints the actor talks to.
type EndpointsConfig struct {
	RegisterURL string
	LoginURL    string
	StreamURL   string
}

// StreamConfig tunes the connection lifecycle manager.
type StreamConfig struct {
	SendIntervalMin  time.Duration
	SendIntervalMax  time.Duration
	ReconnectBackoff time.Duration
	PingInterval     time.Duration
	HandshakeTimeout time.Duration
	WriteTimeout     time.Duration
}

// HTTPConfig configures the provisioning HTTP client.
type HTTPConfig struct {
	Timeout   time.Duration
	UserAgent string
}

// ServerConfig configures the control API and metrics listeners.
type ServerConfig struct {
	ListenAddr      string
	MetricsAddr     string
	ShutdownTimeout time.Duration
	// RateLimit is the number of control API requests allowed per minute per client IP.
	RateLimit int
}

// FileConfig mirrors the YAML file layout. Durations are Go duration strings.
type FileConfig struct {
	Endpoints *EndpointsFileConfig `yaml:"endpoints,omitempty"`
	Stream    *StreamFileConfig    `yaml:"stream,omitempty"`
	HTTP      *HTTPFileConfig      `yaml:"http,omitempty"`
	Server    *ServerFileConfig    `yaml:"server,omitempty"`
	Log       *LogFileConfig       `yaml:"log,omitempty"`
	FakeData  *FakeDataFileConfig  `yaml:"fakedata,omitempty"`
}

type EndpointsFileConfig struct {
	Register string `yaml:"register,omitempty"`
	Login    string `yaml:"login,omitempty"`
	Stream   string `yaml:"stream,omitempty"`
}

type StreamFileConfig struct {
	SendIntervalMin  string `yaml:"sendIntervalMin,omitempty"`
	SendIntervalMax  string `yaml:"sendIntervalMax,omitempty"`
	ReconnectBackoff string `yaml:"reconnectBackoff,omitempty"`
	PingInterval     string `yaml:"pingInterval,omitempty"`
	HandshakeTimeout string `yaml:"handshakeTimeout,omitempty"`
	WriteTimeout     string `yaml:"writeTimeout,omitempty"`
}

type HTTPFileConfig struct {
	Timeout   string `yaml:"timeout,omitempty"`
	UserAgent string `yaml:"userAgent,omitempty"`
}

type ServerFileConfig struct {
	ListenAddr      string  `yaml:"listenAddr,omitempty"`
	MetricsAddr     *string `yaml:"metricsAddr,omitempty"`
	ShutdownTimeout string  `yaml:"shutdownTimeout,omitempty"`
	RateLimit       *int    `yaml:"rateLimit,omitempty"`
}

type LogFileConfig struct {
	Level   string `yaml:"level,omitempty"`
	Service string `yaml:"service,omitempty"`
}

type FakeDataFileConfig struct {
	Seed *uint64 `yaml:"seed,omitempty"`
}
