// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/ManuGH/vendorsim/internal/daemon"
	"github.com/ManuGH/vendorsim/internal/log"
	"github.com/spf13/cobra"
)

func newRunCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run one actor in the foreground until interrupted",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			factory, err := daemon.NewActorFactory(cfg)
			if err != nil {
				return err
			}
			return runForeground(ctx, daemon.NewController(factory))
		},
	}
}

// runForeground starts one actor and stops it when ctx is cancelled. An actor
// that exits on its own (registration or login failed) ends the command with
// its error.
func runForeground(ctx context.Context, controller *daemon.Controller) error {
	logger := log.WithComponent("cli")
	controller.Start()
	logger.Info().Str(log.FieldRunID, controller.Status().RunID).Msg("actor started, press Ctrl+C to stop")

	select {
	case <-ctx.Done():
		controller.Stop()
		logger.Info().Msg("actor stopped")
		return nil
	case <-controller.Done():
		st := controller.Status()
		controller.Stop()
		if st.LastError != "" {
			return fmt.Errorf("actor exited: %s", st.LastError)
		}
		return nil
	}
}
