// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/ManuGH/vendorsim/internal/api"
	"github.com/ManuGH/vendorsim/internal/config"
	"github.com/ManuGH/vendorsim/internal/daemon"
	"github.com/ManuGH/vendorsim/internal/log"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

func newServeCmd(root *rootOptions) *cobra.Command {
	var autostart bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the control API; actors are started and stopped over HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg, autostart)
		},
	}
	cmd.Flags().BoolVar(&autostart, "autostart", false, "start an actor as soon as the server is up")
	return cmd
}

func serve(ctx context.Context, cfg config.AppConfig, autostart bool) error {
	logger := log.WithComponent("daemon")
	factory, err := daemon.NewActorFactory(cfg)
	if err != nil {
		return err
	}
	controller := daemon.NewController(factory)

	apiServer := api.New(api.Config{RateLimit: cfg.Server.RateLimit, Version: cfg.Version}, controller)

	deps := daemon.Deps{
		Logger:     logger,
		APIHandler: apiServer.Handler(),
	}
	if cfg.Server.MetricsAddr != "" {
		deps.MetricsHandler = promhttp.Handler()
	}

	mgr, err := daemon.NewManager(cfg.Server, deps)
	if err != nil {
		return err
	}

	logger.Info().
		Str("version", cfg.Version).
		Str("listen", cfg.Server.ListenAddr).
		Bool("autostart", autostart).
		Msg("starting vendorsim")

	return daemon.NewApp(logger, mgr, controller, autostart).Run(ctx)
}
