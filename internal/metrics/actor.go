// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ActorRunning is 1 while an actor goroutine is alive.
	ActorRunning = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "vendorsim_actor_running",
		Help: "Whether an actor run is currently active (1) or not (0)",
	})

	actorRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vendorsim_actor_runs_total",
		Help: "Total number of finished actor runs by outcome",
	}, []string{"outcome"})
)

// RecordActorRun records how an actor run ended ("stopped", "register_failed", ...).
func RecordActorRun(outcome string) {
	actorRuns.WithLabelValues(outcome).Inc()
}
