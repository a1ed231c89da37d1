// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package stream owns the vendor's websocket event stream.
//
// Manager.Run drives one state machine on the caller's goroutine:
//
//	disconnected -> connecting -> open -> closing -> disconnected -> ... -> failed
//
// While open, the loop multiplexes the stop signal (ctx), inbound frames and
// read errors forwarded by a reader goroutine, the randomized send timer and
// the keep-alive ping ticker. Only the loop writes data frames, so sends and
// close handling never interleave. Transport errors are logged and followed
// by a fixed reconnect backoff; Run returns only once ctx is cancelled.
package stream
