// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package daemon

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/ManuGH/vendorsim/internal/config"
	"github.com/ManuGH/vendorsim/internal/log"
	"github.com/ManuGH/vendorsim/internal/stream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApp_RunWithoutManager(t *testing.T) {
	app := NewApp(log.WithComponent("test"), nil, nil, false)
	assert.ErrorIs(t, app.Run(context.Background()), ErrMissingManager)
}

func TestApp_AutostartAndShutdownStopsActor(t *testing.T) {
	fr := newFrameRecorder(t)
	factory := &streamingFactory{
		prov: &stubProvisioner{},
		cfg:  stream.Config{URL: fr.url(), SendIntervalMin: time.Hour, SendIntervalMax: time.Hour},
	}
	controller := NewController(factory.build)

	mgr, err := NewManager(config.ServerConfig{
		ListenAddr:      reserveListenAddr(t),
		ShutdownTimeout: 2 * time.Second,
	}, Deps{Logger: log.WithComponent("test"), APIHandler: http.NotFoundHandler()})
	require.NoError(t, err)

	app := NewApp(log.WithComponent("test"), mgr, controller, true)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- app.Run(ctx) }()

	require.Eventually(t, func() bool { return fr.count() == 1 }, 2*time.Second, 5*time.Millisecond)
	assert.True(t, controller.Running())

	cancel()
	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("app did not stop")
	}
	assert.False(t, controller.Running())
	assert.Equal(t, PhaseStopped, controller.Status().Phase)
}

func TestApp_ListenFailureIsReturned(t *testing.T) {
	mgr, err := NewManager(config.ServerConfig{ListenAddr: "256.0.0.1:bad", ShutdownTimeout: time.Second},
		Deps{Logger: log.WithComponent("test"), APIHandler: http.NotFoundHandler()})
	require.NoError(t, err)

	err = NewApp(log.WithComponent("test"), mgr, NewController(nil), false).Run(context.Background())
	require.Error(t, err)
	assert.False(t, errors.Is(err, context.Canceled))
}
