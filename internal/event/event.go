// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package event defines the synthetic pickup-request frame written to the stream.
package event

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// StatusRequestSent is the only status the simulated vendor emits.
const StatusRequestSent = "Request Sent"

// ErrInvalidPayload is returned when a frame fails to decode or validate.
var ErrInvalidPayload = errors.New("event: invalid payload")

// Payload is one outbound location ping. Coordinates travel as decimal strings.
type Payload struct {
	Status    string `json:"status"`
	Latitude  string `json:"latitude"`
	Longitude string `json:"longitude"`
}

// New builds a payload from raw coordinates.
func New(lat, lon float64) Payload {
	return Payload{
		Status:    StatusRequestSent,
		Latitude:  FormatCoordinate(lat),
		Longitude: FormatCoordinate(lon),
	}
}

// FormatCoordinate renders a coordinate as a plain decimal string (never exponent notation).
func FormatCoordinate(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Validate checks the status tag and that both coordinates are in range.
func (p Payload) Validate() error {
	if p.Status != StatusRequestSent {
		return fmt.Errorf("%w: unexpected status %q", ErrInvalidPayload, p.Status)
	}
	lat, err := strconv.ParseFloat(p.Latitude, 64)
	if err != nil {
		return fmt.Errorf("%w: latitude %q", ErrInvalidPayload, p.Latitude)
	}
	lon, err := strconv.ParseFloat(p.Longitude, 64)
	if err != nil {
		return fmt.Errorf("%w: longitude %q", ErrInvalidPayload, p.Longitude)
	}
	if lat < -90 || lat > 90 {
		return fmt.Errorf("%w: latitude %v out of range", ErrInvalidPayload, lat)
	}
	if lon < -180 || lon > 180 {
		return fmt.Errorf("%w: longitude %v out of range", ErrInvalidPayload, lon)
	}
	return nil
}

// Encode serialises the payload as a single JSON text frame.
func (p Payload) Encode() ([]byte, error) {
	return json.Marshal(p)
}

// Decode parses a frame written by Encode.
func Decode(data []byte) (Payload, error) {
	var p Payload
	if err := json.Unmarshal(data, &p); err != nil {
		return Payload{}, fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}
	return p, nil
}
