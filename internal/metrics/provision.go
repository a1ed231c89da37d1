// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	provisionCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vendorsim_provision_calls_total",
		Help: "Total number of identity provisioning calls by operation and outcome",
	}, []string{"operation", "outcome"})

	provisionDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "vendorsim_provision_duration_seconds",
		Help:    "Latency of identity provisioning calls",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 20},
	}, []string{"operation"})
)

// RecordProvisionCall records the outcome and latency of a register/login call.
func RecordProvisionCall(operation, outcome string, duration time.Duration) {
	provisionCalls.WithLabelValues(operation, outcome).Inc()
	provisionDuration.WithLabelValues(operation).Observe(duration.Seconds())
}
