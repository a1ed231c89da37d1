// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package main

import (
	"fmt"

	"github.com/ManuGH/vendorsim/internal/config"
	"github.com/ManuGH/vendorsim/internal/log"
	"github.com/ManuGH/vendorsim/internal/version"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "vendorsim",
		Short:         "Simulate a vendor that registers, logs in and streams pickup requests",
		Long:          `vendorsim registers a fake vendor identity, logs it in for a session token and keeps a websocket open, sending synthetic pickup requests at random intervals until stopped.`,
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "path to YAML config file (env VENDORSIM_CONFIG)")

	cmd.AddCommand(
		newServeCmd(opts),
		newRunCmd(opts),
		newConfigCmd(opts),
		newVersionCmd(),
	)
	return cmd
}

// loadConfig resolves the config path, loads and validates the configuration,
// and reconfigures the global logger from it.
func (o *rootOptions) loadConfig() (config.AppConfig, error) {
	path := o.configPath
	if path == "" {
		path = config.ParseString(config.EnvConfigPath, "")
	}
	cfg, err := config.NewLoader(path, version.Version).Load()
	if err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}
	log.Configure(log.Config{
		Level:   cfg.LogLevel,
		Service: cfg.LogService,
		Version: cfg.Version,
	})
	return cfg, nil
}
