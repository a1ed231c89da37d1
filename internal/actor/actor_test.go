// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package actor

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ManuGH/vendorsim/internal/identity"
	"github.com/ManuGH/vendorsim/internal/stream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeProvisioner struct {
	phone       identity.PhoneNumber
	cred        identity.Credential
	registerErr error
	loginErr    error

	registerCalls atomic.Int32
	loginCalls    atomic.Int32
	loginPhone    atomic.Value
}

func (f *fakeProvisioner) Register(ctx context.Context) (identity.PhoneNumber, error) {
	f.registerCalls.Add(1)
	if f.registerErr != nil {
		return "", f.registerErr
	}
	return f.phone, nil
}

func (f *fakeProvisioner) Login(ctx context.Context, phone identity.PhoneNumber) (identity.Credential, error) {
	f.loginCalls.Add(1)
	f.loginPhone.Store(phone)
	if f.loginErr != nil {
		return "", f.loginErr
	}
	return f.cred, nil
}

type fakeStreamer struct {
	calls atomic.Int32
	mu    sync.Mutex
	cred  identity.Credential
	state atomic.Value
}

func (f *fakeStreamer) Run(ctx context.Context, cred identity.Credential) {
	f.calls.Add(1)
	f.mu.Lock()
	f.cred = cred
	f.mu.Unlock()
	f.state.Store(stream.StateOpen)
	<-ctx.Done()
	f.state.Store(stream.StateFailed)
}

func (f *fakeStreamer) State() stream.State {
	if s, ok := f.state.Load().(stream.State); ok {
		return s
	}
	return stream.StateDisconnected
}

func TestRun_RegisterFailureSkipsLoginAndStream(t *testing.T) {
	p := &fakeProvisioner{registerErr: &identity.Error{Sentinel: identity.ErrRejected, Operation: "register", Status: 400}}
	s := &fakeStreamer{}

	err := New(p, s).Run(context.Background())

	require.ErrorIs(t, err, ErrRegister)
	assert.ErrorIs(t, err, identity.ErrRejected)
	assert.Equal(t, "register_failed", Outcome(err))
	assert.Equal(t, int32(1), p.registerCalls.Load())
	assert.Zero(t, p.loginCalls.Load())
	assert.Zero(t, s.calls.Load())
}

func TestRun_LoginFailureSkipsStream(t *testing.T) {
	p := &fakeProvisioner{phone: "5551234567", loginErr: identity.ErrMissingToken}
	s := &fakeStreamer{}

	err := New(p, s).Run(context.Background())

	require.ErrorIs(t, err, ErrLogin)
	assert.ErrorIs(t, err, identity.ErrMissingToken)
	assert.Equal(t, "login_failed", Outcome(err))
	assert.Equal(t, int32(1), p.loginCalls.Load())
	assert.Equal(t, identity.PhoneNumber("5551234567"), p.loginPhone.Load())
	assert.Zero(t, s.calls.Load())
}

func TestRun_StreamsUntilCancelled(t *testing.T) {
	p := &fakeProvisioner{phone: "5551234567", cred: "tok-abc"}
	s := &fakeStreamer{}

	var phases []Phase
	var mu sync.Mutex
	a := New(p, s, WithRunID("run-1"), WithPhaseObserver(func(ph Phase) {
		mu.Lock()
		phases = append(phases, ph)
		mu.Unlock()
	}))
	assert.Equal(t, "run-1", a.RunID())

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- a.Run(ctx) }()

	require.Eventually(t, func() bool { return a.StreamState() == stream.StateOpen }, time.Second, time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		assert.NoError(t, err)
		assert.Equal(t, "stopped", Outcome(err))
	case <-time.After(time.Second):
		t.Fatal("actor did not stop")
	}

	s.mu.Lock()
	assert.Equal(t, identity.Credential("tok-abc"), s.cred)
	s.mu.Unlock()
	assert.Equal(t, stream.StateFailed, a.StreamState())

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []Phase{PhaseProvisioning, PhaseStreaming}, phases)
}

func TestRun_CancelledBeforeStart(t *testing.T) {
	p := &fakeProvisioner{phone: "1", cred: "t"}
	s := &fakeStreamer{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := New(p, s).Run(ctx)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, "cancelled", Outcome(err))
	assert.Zero(t, p.registerCalls.Load())
	assert.Zero(t, s.calls.Load())
}

func TestNew_GeneratesDistinctRunIDs(t *testing.T) {
	a := New(&fakeProvisioner{}, &fakeStreamer{})
	b := New(&fakeProvisioner{}, &fakeStreamer{})
	assert.NotEmpty(t, a.RunID())
	assert.NotEqual(t, a.RunID(), b.RunID())
	assert.Equal(t, "error", Outcome(errors.New("boom")))
}
