// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package daemon

import (
	"net/http"

	"github.com/ManuGH/vendorsim/internal/actor"
	"github.com/ManuGH/vendorsim/internal/config"
	"github.com/ManuGH/vendorsim/internal/fakedata"
	"github.com/ManuGH/vendorsim/internal/identity"
	"github.com/ManuGH/vendorsim/internal/platform/httpx"
	"github.com/ManuGH/vendorsim/internal/stream"
)

// StreamConfig maps the loaded configuration onto the stream manager's knobs.
func StreamConfig(cfg config.AppConfig) stream.Config {
	return stream.Config{
		URL:              cfg.Endpoints.StreamURL,
		SendIntervalMin:  cfg.Stream.SendIntervalMin,
		SendIntervalMax:  cfg.Stream.SendIntervalMax,
		ReconnectBackoff: cfg.Stream.ReconnectBackoff,
		PingInterval:     cfg.Stream.PingInterval,
		HandshakeTimeout: cfg.Stream.HandshakeTimeout,
		WriteTimeout:     cfg.Stream.WriteTimeout,
	}
}

// NewActorFactory wires a real actor per run: HTTP provisioning against the
// configured endpoints and a gorilla websocket stream. Each run draws its
// identity from a fresh generator so nothing carries over between runs.
func NewActorFactory(cfg config.AppConfig) (RunnerFactory, error) {
	httpClient := httpx.NewClient(cfg.HTTP.Timeout, httpx.WithUserAgent(cfg.HTTP.UserAgent))
	return newActorFactory(cfg, httpClient, stream.NewWebsocketDialer(cfg.Stream.HandshakeTimeout, cfg.HTTP.UserAgent))
}

func newActorFactory(cfg config.AppConfig, httpClient *http.Client, dialer stream.Dialer) (RunnerFactory, error) {
	streamCfg := StreamConfig(cfg)
	if err := streamCfg.Validate(); err != nil {
		return nil, err
	}
	runs := uint64(0)
	return func(onPhase func(actor.Phase)) Runner {
		seed := cfg.Seed
		if seed != 0 {
			// Distinct but reproducible identities across runs of one process.
			seed += runs
		}
		runs++
		gen := fakedata.New(seed)
		provisioner := identity.NewClient(identity.Config{
			RegisterURL: cfg.Endpoints.RegisterURL,
			LoginURL:    cfg.Endpoints.LoginURL,
		}, httpClient, gen)
		return actor.New(provisioner, stream.NewManager(streamCfg, dialer, gen), actor.WithPhaseObserver(onPhase))
	}, nil
}
