// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package log

// Canonical field name constants for structured logging.
const (
	// Identity fields
	FieldRunID     = "run_id"
	FieldRequestID = "request_id"
	FieldPhone     = "mobile_no"

	// Process / lifecycle fields
	FieldEvent     = "event"
	FieldComponent = "component"
	FieldAttempt   = "attempt"
	FieldReason    = "reason"

	// State fields
	FieldOldState = "old_state"
	FieldNewState = "new_state"

	// Endpoint fields
	FieldURL    = "url"
	FieldStatus = "status"

	// Timing fields
	FieldDelay    = "delay"
	FieldDuration = "duration"
)
