// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package api

import (
	"net/http"

	"github.com/ManuGH/vendorsim/internal/daemon"
	"github.com/ManuGH/vendorsim/internal/log"
)

type startResponse struct {
	Started bool          `json:"started"`
	Status  daemon.Status `json:"status"`
}

type stopResponse struct {
	Stopped bool          `json:"stopped"`
	Status  daemon.Status `json:"status"`
}

// handleStart launches an actor run. Starting while one is active is not an
// error; the response reports started=false.
func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	started := s.controller.Start()
	logger := log.WithComponentFromContext(r.Context(), "api")
	logger.Info().
		Str(log.FieldEvent, "api.actor_start").
		Bool("started", started).
		Msg("start requested")
	writeJSON(w, http.StatusAccepted, startResponse{Started: started, Status: s.controller.Status()})
}

// handleStop blocks until the active run has exited.
func (s *Server) handleStop(w http.ResponseWriter, r *http.Request) {
	stopped := s.controller.Stop()
	logger := log.WithComponentFromContext(r.Context(), "api")
	logger.Info().
		Str(log.FieldEvent, "api.actor_stop").
		Bool("stopped", stopped).
		Msg("stop requested")
	writeJSON(w, http.StatusOK, stopResponse{Stopped: stopped, Status: s.controller.Status()})
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.controller.Status())
}
