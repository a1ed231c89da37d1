// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package daemon

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ManuGH/vendorsim/internal/config"
	"github.com/ManuGH/vendorsim/internal/platform/httpx"
	"github.com/ManuGH/vendorsim/internal/stream"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// vendorBackend plays the remote service: register, login and the pickup
// request websocket on one httptest server.
type vendorBackend struct {
	srv *httptest.Server

	mu         sync.Mutex
	registered []map[string]string
	loginPhone []string
	tokens     []string
	frames     int
}

func newVendorBackend(t *testing.T) *vendorBackend {
	t.Helper()
	vb := &vendorBackend{}
	upgrader := websocket.Upgrader{}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/customer/register/", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		vb.mu.Lock()
		vb.registered = append(vb.registered, body)
		vb.mu.Unlock()
		w.WriteHeader(http.StatusCreated)
	})
	mux.HandleFunc("POST /customersignin/", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		vb.mu.Lock()
		vb.loginPhone = append(vb.loginPhone, body["mobile_no"])
		vb.mu.Unlock()
		_ = json.NewEncoder(w).Encode(map[string]string{"access": "tok-abc", "refresh": "r"})
	})
	mux.HandleFunc("/ws/pickup_request/", func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		vb.mu.Lock()
		vb.tokens = append(vb.tokens, r.URL.Query().Get("token"))
		vb.mu.Unlock()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
			vb.mu.Lock()
			vb.frames++
			vb.mu.Unlock()
		}
	})
	vb.srv = httptest.NewServer(mux)
	t.Cleanup(vb.srv.Close)
	return vb
}

func (vb *vendorBackend) frameCount() int {
	vb.mu.Lock()
	defer vb.mu.Unlock()
	return vb.frames
}

func TestStreamConfig_MapsAppConfig(t *testing.T) {
	cfg := config.AppConfig{
		Endpoints: config.EndpointsConfig{StreamURL: "ws://h/ws/"},
		Stream: config.StreamConfig{
			SendIntervalMin:  time.Second,
			SendIntervalMax:  2 * time.Second,
			ReconnectBackoff: 3 * time.Second,
			PingInterval:     4 * time.Second,
			HandshakeTimeout: 5 * time.Second,
			WriteTimeout:     6 * time.Second,
		},
	}
	assert.Equal(t, stream.Config{
		URL:              "ws://h/ws/",
		SendIntervalMin:  time.Second,
		SendIntervalMax:  2 * time.Second,
		ReconnectBackoff: 3 * time.Second,
		PingInterval:     4 * time.Second,
		HandshakeTimeout: 5 * time.Second,
		WriteTimeout:     6 * time.Second,
	}, StreamConfig(cfg))
}

func TestActorFactory_FullRunAgainstBackend(t *testing.T) {
	vb := newVendorBackend(t)
	base := vb.srv.URL
	cfg := config.AppConfig{
		Endpoints: config.EndpointsConfig{
			RegisterURL: base + "/api/auth/customer/register/",
			LoginURL:    base + "/customersignin/",
			StreamURL:   "ws" + strings.TrimPrefix(base, "http") + "/ws/pickup_request/",
		},
		Stream: config.StreamConfig{
			SendIntervalMin:  100 * time.Millisecond,
			SendIntervalMax:  150 * time.Millisecond,
			ReconnectBackoff: 20 * time.Millisecond,
			HandshakeTimeout: time.Second,
			WriteTimeout:     time.Second,
		},
		HTTP: config.HTTPConfig{Timeout: 2 * time.Second, UserAgent: "vendorsim/test"},
		Seed: 42,
	}
	httpClient := httpx.NewClient(cfg.HTTP.Timeout)
	t.Cleanup(httpClient.CloseIdleConnections)
	factory, err := newActorFactory(cfg, httpClient, stream.NewWebsocketDialer(time.Second, "vendorsim/test"))
	require.NoError(t, err)
	c := NewController(factory)

	require.True(t, c.Start())
	require.Eventually(t, func() bool { return vb.frameCount() >= 2 }, 3*time.Second, 5*time.Millisecond)
	require.True(t, c.Stop())

	vb.mu.Lock()
	defer vb.mu.Unlock()
	require.Len(t, vb.registered, 1)
	require.Len(t, vb.loginPhone, 1)
	assert.Equal(t, vb.registered[0]["mobile_no"], vb.loginPhone[0])
	assert.Len(t, vb.registered[0]["mobile_no"], 10)
	assert.NotEmpty(t, vb.registered[0]["name"])
	assert.Contains(t, vb.registered[0]["email"], "@")
	assert.Equal(t, []string{"tok-abc"}, vb.tokens)

	st := c.Status()
	assert.Equal(t, PhaseStopped, st.Phase)
	assert.Equal(t, string(stream.StateFailed), st.StreamState)
}

func TestNewActorFactory_RejectsInvalidStreamConfig(t *testing.T) {
	_, err := NewActorFactory(config.AppConfig{
		Endpoints: config.EndpointsConfig{StreamURL: "ws://h/ws/"},
		Stream:    config.StreamConfig{SendIntervalMin: 10 * time.Second, SendIntervalMax: time.Second},
	})
	require.ErrorIs(t, err, stream.ErrInvalidConfig)

	_, err = NewActorFactory(config.AppConfig{})
	require.ErrorIs(t, err, stream.ErrInvalidConfig)
}
