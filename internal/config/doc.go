// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package config provides configuration management for vendorsim.
//
// Precedence is ENV > YAML file > defaults. The YAML file is parsed strictly:
// unknown keys and trailing documents are rejected.
package config
