// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package middleware

import (
	"time"

	"github.com/go-chi/chi/v5"
)

// StackConfig configures the HTTP ingress middleware stack of the control API.
type StackConfig struct {
	EnableSecurityHeaders bool
	CSP                   string

	EnableMetrics bool
	EnableLogging bool

	// RateLimit is requests per minute per client IP; zero disables it.
	RateLimit          int
	RateLimitWhitelist []string
}

// NewRouter constructs a chi router with the middleware stack applied.
func NewRouter(cfg StackConfig) *chi.Mux {
	r := chi.NewRouter()
	applyStack(r, cfg)
	return r
}

// applyStack applies the middleware stack to r. Order matters: recovery is
// outermost and the request ID is assigned before anything logs.
func applyStack(r chi.Router, cfg StackConfig) {
	r.Use(Recoverer)
	r.Use(RequestID)
	if cfg.EnableSecurityHeaders {
		r.Use(SecurityHeaders(cfg.CSP))
	}
	if cfg.EnableMetrics {
		r.Use(Metrics())
	}
	if cfg.EnableLogging {
		r.Use(AccessLog)
	}
	if cfg.RateLimit > 0 {
		r.Use(RateLimit(RateLimitConfig{
			RequestLimit: cfg.RateLimit,
			WindowSize:   time.Minute,
			Whitelist:    cfg.RateLimitWhitelist,
		}))
	}
}
