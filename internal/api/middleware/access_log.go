// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package middleware

import (
	"net/http"
	"time"

	"github.com/ManuGH/vendorsim/internal/log"
	"github.com/rs/zerolog"
)

// AccessLog writes one structured line per request after it completes.
// Health probes are logged at debug to keep the info stream readable.
func AccessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(sw, r)

		logger := log.WithComponentFromContext(r.Context(), "http")
		level := zerolog.InfoLevel
		switch {
		case sw.statusCode >= http.StatusInternalServerError:
			level = zerolog.ErrorLevel
		case r.URL.Path == "/healthz" || r.URL.Path == "/readyz":
			level = zerolog.DebugLevel
		}
		logger.WithLevel(level).
			Str(log.FieldEvent, "http.request").
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int(log.FieldStatus, sw.statusCode).
			Int("bytes", sw.bytesWritten).
			Dur(log.FieldDuration, time.Since(start)).
			Str("remote_addr", r.RemoteAddr).
			Msg("request handled")
	})
}

// statusWriter wraps http.ResponseWriter to capture status and size.
type statusWriter struct {
	http.ResponseWriter
	statusCode   int
	bytesWritten int
	written      bool
}

func (sw *statusWriter) WriteHeader(statusCode int) {
	if !sw.written {
		sw.statusCode = statusCode
		sw.written = true
	}
	sw.ResponseWriter.WriteHeader(statusCode)
}

func (sw *statusWriter) Write(b []byte) (int, error) {
	if !sw.written {
		sw.WriteHeader(http.StatusOK)
	}
	n, err := sw.ResponseWriter.Write(b)
	sw.bytesWritten += n
	return n, err
}
