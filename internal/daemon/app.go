// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package daemon

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/rs/zerolog"
)

// App owns the long-lived runtime: the actor controller and the server Manager.
type App struct {
	logger     zerolog.Logger
	manager    Manager
	controller *Controller
	autostart  bool
}

// NewApp creates a new App orchestrator. With autostart an actor run is
// launched as soon as the servers come up.
func NewApp(logger zerolog.Logger, manager Manager, controller *Controller, autostart bool) *App {
	return &App{
		logger:     logger,
		manager:    manager,
		controller: controller,
		autostart:  autostart,
	}
}

// Run blocks until ctx is cancelled or a fatal error occurs. The active actor
// run is stopped as part of shutdown.
func (a *App) Run(ctx context.Context) error {
	if a.manager == nil {
		return ErrMissingManager
	}

	if a.controller != nil {
		a.manager.RegisterShutdownHook("actor", a.controller.Shutdown)
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		err := a.manager.Start(ctx)
		if err != nil {
			_ = a.manager.Shutdown(context.Background())
		}
		return err
	})

	if a.autostart && a.controller != nil {
		g.Go(func() error {
			if a.controller.Start() {
				a.logger.Info().
					Str("event", "actor.autostart").
					Msg("actor started on boot")
			}
			return nil
		})
	}

	return g.Wait()
}
