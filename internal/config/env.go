// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ManuGH/vendorsim/internal/log"
	"github.com/rs/zerolog"
)

// Environment keys recognised by the loader.
const (
	EnvRegisterURL      = "VENDORSIM_REGISTER_URL"
	EnvLoginURL         = "VENDORSIM_LOGIN_URL"
	EnvStreamURL        = "VENDORSIM_STREAM_URL"
	EnvSendIntervalMin  = "VENDORSIM_SEND_INTERVAL_MIN"
	EnvSendIntervalMax  = "VENDORSIM_SEND_INTERVAL_MAX"
	EnvReconnectBackoff = "VENDORSIM_RECONNECT_BACKOFF"
	EnvPingInterval     = "VENDORSIM_PING_INTERVAL"
	EnvHandshakeTimeout = "VENDORSIM_HANDSHAKE_TIMEOUT"
	EnvWriteTimeout     = "VENDORSIM_WRITE_TIMEOUT"
	EnvHTTPTimeout      = "VENDORSIM_HTTP_TIMEOUT"
	EnvUserAgent        = "VENDORSIM_USER_AGENT"
	EnvListen           = "VENDORSIM_LISTEN"
	EnvMetricsListen    = "VENDORSIM_METRICS_LISTEN"
	EnvShutdownTimeout  = "VENDORSIM_SHUTDOWN_TIMEOUT"
	EnvRateLimit        = "VENDORSIM_RATE_LIMIT"
	EnvLogLevel         = "VENDORSIM_LOG_LEVEL"
	EnvLogService       = "VENDORSIM_LOG_SERVICE"
	EnvSeed             = "VENDORSIM_SEED"

	// EnvConfigPath points the CLI at a YAML file when --config is not given.
	EnvConfigPath = "VENDORSIM_CONFIG"
)

// ParseString reads a string from environment variable or returns default value.
// It logs the source (environment or default) for observability.
func ParseString(key, defaultValue string) string {
	return parseStringWithLogger(log.WithComponent("config"), key, defaultValue)
}

func parseStringWithLogger(logger zerolog.Logger, key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		lowerKey := strings.ToLower(key)
		switch {
		case value == "":
			logger.Debug().
				Str("key", key).
				Str("default", defaultValue).
				Str("source", "default").
				Msg("using default value (environment variable is empty)")
			return defaultValue
		case strings.Contains(lowerKey, "token") || strings.Contains(lowerKey, "password"):
			logger.Debug().
				Str("key", key).
				Str("source", "environment").
				Bool("sensitive", true).
				Msg("using environment variable")
		default:
			logger.Debug().
				Str("key", key).
				Str("value", value).
				Str("source", "environment").
				Msg("using environment variable")
		}
		return value
	}
	logger.Debug().
		Str("key", key).
		Str("default", defaultValue).
		Str("source", "default").
		Msg("using default value")
	return defaultValue
}

// ParseInt reads an integer from environment variable or returns default value.
// It validates the input and falls back to default on parse errors.
func ParseInt(key string, defaultValue int) int {
	logger := log.WithComponent("config")
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			logger.Debug().
				Str("key", key).
				Int("value", i).
				Str("source", "environment").
				Msg("using environment variable")
			return i
		}
		logger.Warn().
			Str("key", key).
			Str("value", v).
			Int("default", defaultValue).
			Msg("invalid integer in environment variable, using default")
		return defaultValue
	}
	logger.Debug().
		Str("key", key).
		Int("default", defaultValue).
		Str("source", "default").
		Msg("using default value")
	return defaultValue
}

// ParseUint64 reads an unsigned integer from environment variable or returns default value.
func ParseUint64(key string, defaultValue uint64) uint64 {
	logger := log.WithComponent("config")
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if u, err := strconv.ParseUint(v, 10, 64); err == nil {
			logger.Debug().
				Str("key", key).
				Uint64("value", u).
				Str("source", "environment").
				Msg("using environment variable")
			return u
		}
		logger.Warn().
			Str("key", key).
			Str("value", v).
			Uint64("default", defaultValue).
			Msg("invalid unsigned integer in environment variable, using default")
		return defaultValue
	}
	return defaultValue
}

// ParseDuration reads a duration from environment variable in Go duration format (e.g. "5s").
// It falls back to default on parse errors or empty variables and logs the choice.
func ParseDuration(key string, defaultValue time.Duration) time.Duration {
	logger := log.WithComponent("config")
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			logger.Debug().
				Str("key", key).
				Dur("value", d).
				Str("source", "environment").
				Msg("using environment variable")
			return d
		}
		logger.Warn().
			Str("key", key).
			Str("value", v).
			Dur("default", defaultValue).
			Msg("invalid duration in environment variable, using default")
		return defaultValue
	}
	logger.Debug().
		Str("key", key).
		Dur("default", defaultValue).
		Str("source", "default").
		Msg("using default value")
	return defaultValue
}
