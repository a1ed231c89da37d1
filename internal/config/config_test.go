// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ManuGH/vendorsim/internal/validate"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := NewLoader("", "v1.2.3").Load()
	require.NoError(t, err)

	want := AppConfig{
		Version:    "v1.2.3",
		LogLevel:   DefaultLogLevel,
		LogService: DefaultLogService,
		Endpoints: EndpointsConfig{
			RegisterURL: DefaultRegisterURL,
			LoginURL:    DefaultLoginURL,
			StreamURL:   DefaultStreamURL,
		},
		Stream: StreamConfig{
			SendIntervalMin:  36 * time.Second,
			SendIntervalMax:  60 * time.Second,
			ReconnectBackoff: time.Second,
			PingInterval:     10 * time.Second,
			HandshakeTimeout: 10 * time.Second,
			WriteTimeout:     10 * time.Second,
		},
		HTTP: HTTPConfig{
			Timeout:   15 * time.Second,
			UserAgent: "vendorsim/v1.2.3",
		},
		Server: ServerConfig{
			ListenAddr:      DefaultListenAddr,
			MetricsAddr:     DefaultMetricsAddr,
			ShutdownTimeout: 15 * time.Second,
			RateLimit:       DefaultRateLimit,
		},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, "config.yaml", `
endpoints:
  register: https://vendors.example.com/api/auth/customer/register/
  login: https://vendors.example.com/customersignin/
  stream: wss://vendors.example.com/ws/pickup_request/
stream:
  sendIntervalMin: 1h
  sendIntervalMax: 2h
  reconnectBackoff: 2s
  pingInterval: 0s
server:
  metricsAddr: ""
  rateLimit: 10
log:
  level: debug
fakedata:
  seed: 42
`)

	cfg, err := NewLoader(path, "").Load()
	require.NoError(t, err)

	assert.Equal(t, "wss://vendors.example.com/ws/pickup_request/", cfg.Endpoints.StreamURL)
	assert.Equal(t, time.Hour, cfg.Stream.SendIntervalMin)
	assert.Equal(t, 2*time.Hour, cfg.Stream.SendIntervalMax)
	assert.Equal(t, 2*time.Second, cfg.Stream.ReconnectBackoff)
	assert.Equal(t, time.Duration(0), cfg.Stream.PingInterval)
	assert.Empty(t, cfg.Server.MetricsAddr, "explicit empty metricsAddr disables the listener")
	assert.Equal(t, 10, cfg.Server.RateLimit)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, uint64(42), cfg.Seed)
	// untouched keys keep defaults
	assert.Equal(t, DefaultWriteTimeout, cfg.Stream.WriteTimeout)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "config.yml", `
stream:
  sendIntervalMin: 5s
  sendIntervalMax: 10s
`)
	t.Setenv(EnvSendIntervalMax, "20s")
	t.Setenv(EnvStreamURL, "ws://stream.internal:9000/ws/")
	t.Setenv(EnvSeed, "7")

	l := NewLoader(path, "")
	cfg, err := l.Load()
	require.NoError(t, err)

	assert.Equal(t, 5*time.Second, cfg.Stream.SendIntervalMin)
	assert.Equal(t, 20*time.Second, cfg.Stream.SendIntervalMax)
	assert.Equal(t, "ws://stream.internal:9000/ws/", cfg.Endpoints.StreamURL)
	assert.Equal(t, uint64(7), cfg.Seed)
	assert.Contains(t, l.ConsumedEnvKeys, EnvSendIntervalMax)
}

func TestLoad_InvalidEnvDurationFallsBack(t *testing.T) {
	t.Setenv(EnvReconnectBackoff, "soon")

	cfg, err := NewLoader("", "").Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultReconnectBackoff, cfg.Stream.ReconnectBackoff)
}

func TestLoad_StrictUnknownField(t *testing.T) {
	path := writeConfig(t, "config.yaml", `
stream:
  sendEvery: 5s
`)
	_, err := NewLoader(path, "").Load()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownConfigField), "got %v", err)
}

func TestLoad_RejectsMultipleDocuments(t *testing.T) {
	path := writeConfig(t, "config.yaml", "log:\n  level: info\n---\nlog:\n  level: debug\n")
	_, err := NewLoader(path, "").Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "multiple documents")
}

func TestLoad_RejectsNonYAML(t *testing.T) {
	path := writeConfig(t, "config.json", `{}`)
	_, err := NewLoader(path, "").Load()
	require.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestLoad_InvalidFileDuration(t *testing.T) {
	path := writeConfig(t, "config.yaml", "stream:\n  reconnectBackoff: forever\n")
	_, err := NewLoader(path, "").Load()
	require.ErrorIs(t, err, ErrInvalidDuration)
}

func TestLoad_EmptyFile(t *testing.T) {
	path := writeConfig(t, "config.yaml", "")
	cfg, err := NewLoader(path, "").Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultStreamURL, cfg.Endpoints.StreamURL)
}

func TestValidate_IntervalOrderAndSchemes(t *testing.T) {
	cfg, err := NewLoader("", "").Load()
	require.NoError(t, err)

	cfg.Stream.SendIntervalMin = time.Minute
	cfg.Stream.SendIntervalMax = time.Second
	cfg.Endpoints.StreamURL = "http://not-a-websocket/"
	cfg.Endpoints.LoginURL = "ws://wrong/"

	err = Validate(cfg)
	require.Error(t, err)

	var verr validate.ValidationError
	require.True(t, errors.As(err, &verr))

	fields := map[string]bool{}
	for _, e := range verr.Errors() {
		fields[e.Field] = true
	}
	assert.True(t, fields["Stream.SendInterval"])
	assert.True(t, fields["Endpoints.StreamURL"])
	assert.True(t, fields["Endpoints.LoginURL"])
}

func TestParseFileConfig_NoDefaults(t *testing.T) {
	fc, err := parseFileConfig([]byte("endpoints:\n  login: http://example.com/login/\n"))
	require.NoError(t, err)
	require.NotNil(t, fc.Endpoints)
	assert.Equal(t, "http://example.com/login/", fc.Endpoints.Login)
	assert.Nil(t, fc.Stream)
}
