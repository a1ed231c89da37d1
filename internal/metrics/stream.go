// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	streamConnectionState = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "vendorsim_stream_connection_state",
		Help: "Streaming connection state by actor (active state=1; others 0)",
	}, []string{"actor", "state"})

	streamConnectAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vendorsim_stream_connect_attempts_total",
		Help: "Total number of streaming connection attempts by result",
	}, []string{"result"})

	streamDisconnects = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vendorsim_stream_disconnects_total",
		Help: "Total number of streaming disconnects by reason",
	}, []string{"reason"})

	// StreamFramesSent counts event frames successfully written to the stream.
	StreamFramesSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "vendorsim_stream_frames_sent_total",
		Help: "Total number of event frames written to the streaming connection",
	})

	// StreamSendErrors counts failed frame writes.
	StreamSendErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "vendorsim_stream_send_errors_total",
		Help: "Total number of event frame writes that failed",
	})

	// StreamMessagesReceived counts inbound frames (acknowledgements are not parsed).
	StreamMessagesReceived = promauto.NewCounter(prometheus.CounterOpts{
		Name: "vendorsim_stream_messages_received_total",
		Help: "Total number of inbound frames observed on the streaming connection",
	})
)

var streamStates = []string{"disconnected", "connecting", "open", "closing", "failed"}

// SetStreamState records the active connection state for an actor.
func SetStreamState(actor, state string) {
	for _, s := range streamStates {
		value := 0.0
		if s == state {
			value = 1.0
		}
		streamConnectionState.WithLabelValues(actor, s).Set(value)
	}
}

// RecordConnectAttempt increments the connect counter for the given outcome.
func RecordConnectAttempt(success bool) {
	result := "failure"
	if success {
		result = "success"
	}
	streamConnectAttempts.WithLabelValues(result).Inc()
}

// RecordDisconnect increments the disconnect counter with a bounded reason label.
func RecordDisconnect(reason string) {
	streamDisconnects.WithLabelValues(reason).Inc()
}
