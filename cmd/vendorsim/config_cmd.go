// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/ManuGH/vendorsim/internal/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newConfigCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration",
	}
	cmd.AddCommand(newConfigValidateCmd(root))
	return cmd
}

func newConfigValidateCmd(root *rootOptions) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Load and validate the configuration, then print the effective values",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}
			return writeEffective(cmd.OutOrStdout(), cfg, format)
		},
	}
	cmd.Flags().StringVar(&format, "format", "yaml", "output format: yaml or json")
	return cmd
}

// effectiveConfig mirrors the file layout with every value resolved.
type effectiveConfig struct {
	Endpoints struct {
		Register string `yaml:"register" json:"register"`
		Login    string `yaml:"login" json:"login"`
		Stream   string `yaml:"stream" json:"stream"`
	} `yaml:"endpoints" json:"endpoints"`
	Stream struct {
		SendIntervalMin  string `yaml:"sendIntervalMin" json:"sendIntervalMin"`
		SendIntervalMax  string `yaml:"sendIntervalMax" json:"sendIntervalMax"`
		ReconnectBackoff string `yaml:"reconnectBackoff" json:"reconnectBackoff"`
		PingInterval     string `yaml:"pingInterval" json:"pingInterval"`
		HandshakeTimeout string `yaml:"handshakeTimeout" json:"handshakeTimeout"`
		WriteTimeout     string `yaml:"writeTimeout" json:"writeTimeout"`
	} `yaml:"stream" json:"stream"`
	HTTP struct {
		Timeout   string `yaml:"timeout" json:"timeout"`
		UserAgent string `yaml:"userAgent" json:"userAgent"`
	} `yaml:"http" json:"http"`
	Server struct {
		ListenAddr      string `yaml:"listenAddr" json:"listenAddr"`
		MetricsAddr     string `yaml:"metricsAddr" json:"metricsAddr"`
		ShutdownTimeout string `yaml:"shutdownTimeout" json:"shutdownTimeout"`
		RateLimit       int    `yaml:"rateLimit" json:"rateLimit"`
	} `yaml:"server" json:"server"`
	Log struct {
		Level   string `yaml:"level" json:"level"`
		Service string `yaml:"service" json:"service"`
	} `yaml:"log" json:"log"`
	FakeData struct {
		Seed uint64 `yaml:"seed" json:"seed"`
	} `yaml:"fakedata" json:"fakedata"`
}

func toEffective(cfg config.AppConfig) effectiveConfig {
	var e effectiveConfig
	e.Endpoints.Register = cfg.Endpoints.RegisterURL
	e.Endpoints.Login = cfg.Endpoints.LoginURL
	e.Endpoints.Stream = cfg.Endpoints.StreamURL
	e.Stream.SendIntervalMin = cfg.Stream.SendIntervalMin.String()
	e.Stream.SendIntervalMax = cfg.Stream.SendIntervalMax.String()
	e.Stream.ReconnectBackoff = cfg.Stream.ReconnectBackoff.String()
	e.Stream.PingInterval = cfg.Stream.PingInterval.String()
	e.Stream.HandshakeTimeout = cfg.Stream.HandshakeTimeout.String()
	e.Stream.WriteTimeout = cfg.Stream.WriteTimeout.String()
	e.HTTP.Timeout = cfg.HTTP.Timeout.String()
	e.HTTP.UserAgent = cfg.HTTP.UserAgent
	e.Server.ListenAddr = cfg.Server.ListenAddr
	e.Server.MetricsAddr = cfg.Server.MetricsAddr
	e.Server.ShutdownTimeout = cfg.Server.ShutdownTimeout.String()
	e.Server.RateLimit = cfg.Server.RateLimit
	e.Log.Level = cfg.LogLevel
	e.Log.Service = cfg.LogService
	e.FakeData.Seed = cfg.Seed
	return e
}

func writeEffective(w io.Writer, cfg config.AppConfig, format string) error {
	e := toEffective(cfg)
	switch format {
	case "yaml", "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(e); err != nil {
			return err
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(e)
	default:
		return fmt.Errorf("unsupported format %q (want yaml or json)", format)
	}
}
