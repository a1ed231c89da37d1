// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package stream

// State is the connection lifecycle state.
type State string

const (
	StateDisconnected State = "disconnected"
	StateConnecting   State = "connecting"
	StateOpen         State = "open"
	StateClosing      State = "closing"
	// StateFailed is terminal: the stop signal was observed and Run has returned.
	StateFailed State = "failed"
)

// Terminal reports whether no further transitions can happen.
func (s State) Terminal() bool {
	return s == StateFailed
}

// trigger names the event that caused a transition; it is logged as the reason.
type trigger string

const (
	triggerConnect       trigger = "connect"
	triggerConnected     trigger = "connected"
	triggerConnectFailed trigger = "connect_failed"
	triggerStopRequested trigger = "stop_requested"
	triggerRemoteClose   trigger = "remote_close"
	triggerReadError     trigger = "read_error"
	triggerSendError     trigger = "send_error"
	triggerPingError     trigger = "ping_error"
	triggerReleased      trigger = "released"
)
