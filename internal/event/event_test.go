// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package event

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayload_WireShape(t *testing.T) {
	p := New(12.9715987, 77.5945627)

	data, err := p.Encode()
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Len(t, raw, 3)
	assert.Equal(t, "Request Sent", raw["status"])
	assert.IsType(t, "", raw["latitude"], "latitude must be a JSON string")
	assert.IsType(t, "", raw["longitude"], "longitude must be a JSON string")
	assert.Equal(t, "12.9715987", raw["latitude"])
}

func TestFormatCoordinate_NoExponent(t *testing.T) {
	assert.Equal(t, "0.0000001", FormatCoordinate(1e-7))
	assert.Equal(t, "-179.5", FormatCoordinate(-179.5))
}

func TestPayload_Validate(t *testing.T) {
	tests := []struct {
		name    string
		p       Payload
		wantErr bool
	}{
		{name: "valid", p: New(-33.8, 151.2)},
		{name: "wrong status", p: Payload{Status: "Accepted", Latitude: "1", Longitude: "1"}, wantErr: true},
		{name: "latitude out of range", p: Payload{Status: StatusRequestSent, Latitude: "91", Longitude: "1"}, wantErr: true},
		{name: "longitude not numeric", p: Payload{Status: StatusRequestSent, Latitude: "1", Longitude: "east"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.p.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPayload)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestDecode_RejectsGarbage(t *testing.T) {
	_, err := Decode([]byte("not json"))
	assert.ErrorIs(t, err, ErrInvalidPayload)
}
