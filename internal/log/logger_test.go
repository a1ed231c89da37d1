// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package log

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
)

func TestConfigure_AttachesServiceAndVersion(t *testing.T) {
	var buf bytes.Buffer
	Configure(Config{Level: "debug", Output: &buf, Service: "unit", Version: "v0.0.1"})
	t.Cleanup(func() { Configure(Config{}) })

	l := WithComponent("stream")
	l.Debug().Str(FieldEvent, "test.event").Msg("hello")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("unmarshal log line: %v", err)
	}
	if entry["service"] != "unit" {
		t.Errorf("service = %v, want unit", entry["service"])
	}
	if entry["version"] != "v0.0.1" {
		t.Errorf("version = %v, want v0.0.1", entry["version"])
	}
	if entry[FieldComponent] != "stream" {
		t.Errorf("component = %v, want stream", entry[FieldComponent])
	}
	if entry[FieldEvent] != "test.event" {
		t.Errorf("event = %v, want test.event", entry[FieldEvent])
	}
}

func TestConfigure_InvalidLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	Configure(Config{Level: "loud", Output: &buf})
	t.Cleanup(func() { Configure(Config{}) })

	if got := zerolog.GlobalLevel(); got != zerolog.InfoLevel {
		t.Errorf("GlobalLevel() = %v, want info", got)
	}

	l := Base()
	l.Debug().Msg("dropped")
	if buf.Len() != 0 {
		t.Errorf("debug line should be filtered at info level, got %q", buf.String())
	}
}
