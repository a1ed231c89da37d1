// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package api exposes the actor Start/Stop surface over HTTP.
package api

import (
	"net/http"

	"github.com/ManuGH/vendorsim/internal/api/middleware"
	"github.com/ManuGH/vendorsim/internal/daemon"
	"github.com/ManuGH/vendorsim/internal/health"
	"github.com/go-chi/chi/v5"
)

// ActorController is the control surface the API drives. Implemented by *daemon.Controller.
type ActorController interface {
	Start() bool
	Stop() bool
	Status() daemon.Status
}

// Config tunes the router.
type Config struct {
	// RateLimit is requests per minute per client IP on the control routes.
	RateLimit int
	Version   string
}

// Server wires the control handlers and health probes onto one chi router.
type Server struct {
	cfg        Config
	controller ActorController
	health     *health.Manager
}

// New builds a Server and registers the actor readiness checker.
func New(cfg Config, controller ActorController) *Server {
	hm := health.NewManager(cfg.Version)
	hm.RegisterChecker(health.NewActorChecker(func() (string, bool, string) {
		st := controller.Status()
		return string(st.Phase), st.Running, st.LastError
	}))
	return &Server{cfg: cfg, controller: controller, health: hm}
}

// Handler returns the complete HTTP handler.
func (s *Server) Handler() http.Handler {
	r := middleware.NewRouter(middleware.StackConfig{
		EnableSecurityHeaders: true,
		EnableMetrics:         true,
		EnableLogging:         true,
	})
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) { writeNotFound(w) })
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) { writeMethodNotAllowed(w) })

	r.Get("/healthz", s.health.ServeHealth)
	r.Get("/readyz", s.health.ServeReady)

	r.Route("/api/v1/actor", func(r chi.Router) {
		r.Use(middleware.ControlRateLimit(s.cfg.RateLimit))
		r.Post("/start", s.handleStart)
		r.Post("/stop", s.handleStop)
		r.Get("/status", s.handleStatus)
	})
	return r
}
