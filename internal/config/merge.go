// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package config

import (
	"fmt"
	"time"
)

func mergeFileConfig(cfg *AppConfig, fc *FileConfig) error {
	if fc == nil {
		return nil
	}

	if fc.Log != nil {
		setString(&cfg.LogLevel, fc.Log.Level)
		setString(&cfg.LogService, fc.Log.Service)
	}

	if fc.Endpoints != nil {
		setString(&cfg.Endpoints.RegisterURL, fc.Endpoints.Register)
		setString(&cfg.Endpoints.LoginURL, fc.Endpoints.Login)
		setString(&cfg.Endpoints.StreamURL, fc.Endpoints.Stream)
	}

	if s := fc.Stream; s != nil {
		durations := []struct {
			field string
			raw   string
			dst   *time.Duration
		}{
			{"stream.sendIntervalMin", s.SendIntervalMin, &cfg.Stream.SendIntervalMin},
			{"stream.sendIntervalMax", s.SendIntervalMax, &cfg.Stream.SendIntervalMax},
			{"stream.reconnectBackoff", s.ReconnectBackoff, &cfg.Stream.ReconnectBackoff},
			{"stream.pingInterval", s.PingInterval, &cfg.Stream.PingInterval},
			{"stream.handshakeTimeout", s.HandshakeTimeout, &cfg.Stream.HandshakeTimeout},
			{"stream.writeTimeout", s.WriteTimeout, &cfg.Stream.WriteTimeout},
		}
		for _, d := range durations {
			if err := setDuration(d.dst, d.field, d.raw); err != nil {
				return err
			}
		}
	}

	if h := fc.HTTP; h != nil {
		if err := setDuration(&cfg.HTTP.Timeout, "http.timeout", h.Timeout); err != nil {
			return err
		}
		setString(&cfg.HTTP.UserAgent, h.UserAgent)
	}

	if srv := fc.Server; srv != nil {
		setString(&cfg.Server.ListenAddr, srv.ListenAddr)
		// An explicit empty string disables the metrics listener.
		if srv.MetricsAddr != nil {
			cfg.Server.MetricsAddr = *srv.MetricsAddr
		}
		if err := setDuration(&cfg.Server.ShutdownTimeout, "server.shutdownTimeout", srv.ShutdownTimeout); err != nil {
			return err
		}
		if srv.RateLimit != nil {
			cfg.Server.RateLimit = *srv.RateLimit
		}
	}

	if fc.FakeData != nil && fc.FakeData.Seed != nil {
		cfg.Seed = *fc.FakeData.Seed
	}

	return nil
}

func (l *Loader) mergeEnvConfig(cfg *AppConfig) {
	cfg.LogLevel = l.envString(EnvLogLevel, cfg.LogLevel)
	cfg.LogService = l.envString(EnvLogService, cfg.LogService)

	cfg.Endpoints.RegisterURL = l.envString(EnvRegisterURL, cfg.Endpoints.RegisterURL)
	cfg.Endpoints.LoginURL = l.envString(EnvLoginURL, cfg.Endpoints.LoginURL)
	cfg.Endpoints.StreamURL = l.envString(EnvStreamURL, cfg.Endpoints.StreamURL)

	cfg.Stream.SendIntervalMin = l.envDuration(EnvSendIntervalMin, cfg.Stream.SendIntervalMin)
	cfg.Stream.SendIntervalMax = l.envDuration(EnvSendIntervalMax, cfg.Stream.SendIntervalMax)
	cfg.Stream.ReconnectBackoff = l.envDuration(EnvReconnectBackoff, cfg.Stream.ReconnectBackoff)
	cfg.Stream.PingInterval = l.envDuration(EnvPingInterval, cfg.Stream.PingInterval)
	cfg.Stream.HandshakeTimeout = l.envDuration(EnvHandshakeTimeout, cfg.Stream.HandshakeTimeout)
	cfg.Stream.WriteTimeout = l.envDuration(EnvWriteTimeout, cfg.Stream.WriteTimeout)

	cfg.HTTP.Timeout = l.envDuration(EnvHTTPTimeout, cfg.HTTP.Timeout)
	cfg.HTTP.UserAgent = l.envString(EnvUserAgent, cfg.HTTP.UserAgent)

	cfg.Server.ListenAddr = l.envString(EnvListen, cfg.Server.ListenAddr)
	if v, ok := l.envLookup(EnvMetricsListen); ok {
		cfg.Server.MetricsAddr = v
	}
	cfg.Server.ShutdownTimeout = l.envDuration(EnvShutdownTimeout, cfg.Server.ShutdownTimeout)
	cfg.Server.RateLimit = l.envInt(EnvRateLimit, cfg.Server.RateLimit)

	cfg.Seed = l.envUint64(EnvSeed, cfg.Seed)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, field, raw string) error {
	if raw == "" {
		return nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("%w: %s=%q: %w", ErrInvalidDuration, field, raw, err)
	}
	*dst = d
	return nil
}
