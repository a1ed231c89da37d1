// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package actor drives one synthetic vendor through register, login and the
// pickup request stream.
package actor

import (
	"context"
	"errors"
	"fmt"

	"github.com/ManuGH/vendorsim/internal/identity"
	"github.com/ManuGH/vendorsim/internal/log"
	"github.com/ManuGH/vendorsim/internal/stream"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var (
	// ErrRegister wraps a failed registration.
	ErrRegister = errors.New("actor: registration failed")
	// ErrLogin wraps a failed login.
	ErrLogin = errors.New("actor: login failed")
)

// Phase is the coarse progress of a run.
type Phase string

const (
	PhaseProvisioning Phase = "provisioning"
	PhaseStreaming    Phase = "streaming"
)

// Streamer keeps the event stream alive until ctx is cancelled.
type Streamer interface {
	Run(ctx context.Context, cred identity.Credential)
	State() stream.State
}

// Actor is a single run. It is not reusable; build a new one per run.
type Actor struct {
	provisioner identity.Provisioner
	streamer    Streamer
	runID       string
	logger      zerolog.Logger
	onPhase     func(Phase)
}

// Option configures an Actor.
type Option func(*Actor)

// WithRunID overrides the generated run ID.
func WithRunID(id string) Option {
	return func(a *Actor) { a.runID = id }
}

// WithPhaseObserver is called on the run goroutine whenever the phase changes.
func WithPhaseObserver(fn func(Phase)) Option {
	return func(a *Actor) { a.onPhase = fn }
}

// WithLogger overrides the component logger.
func WithLogger(l zerolog.Logger) Option {
	return func(a *Actor) { a.logger = l }
}

// New builds an Actor with a fresh run ID.
func New(p identity.Provisioner, s Streamer, opts ...Option) *Actor {
	a := &Actor{
		provisioner: p,
		streamer:    s,
		runID:       uuid.NewString(),
		logger:      log.WithComponent("actor"),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// RunID identifies this run in logs and status.
func (a *Actor) RunID() string { return a.runID }

// StreamState reports the stream manager's current state.
func (a *Actor) StreamState() stream.State { return a.streamer.State() }

// Run registers, logs in and streams until ctx is cancelled. Registration and
// login are attempted exactly once; their failure ends the run with an error
// and the stream is never opened. Cancellation returns nil once streaming.
func (a *Actor) Run(ctx context.Context) error {
	ctx = log.ContextWithRunID(ctx, a.runID)
	logger := log.WithContext(ctx, a.logger)

	a.phase(PhaseProvisioning)
	if err := ctx.Err(); err != nil {
		return err
	}

	phone, err := a.provisioner.Register(ctx)
	if err != nil {
		logger.Error().
			Err(err).
			Str(log.FieldEvent, "actor.register_failed").
			Msg("registration failed")
		return fmt.Errorf("%w: %w", ErrRegister, err)
	}
	logger.Info().
		Str(log.FieldEvent, "actor.registered").
		Str(log.FieldPhone, string(phone)).
		Msg("registration successful")

	if err := ctx.Err(); err != nil {
		return err
	}

	cred, err := a.provisioner.Login(ctx, phone)
	if err != nil {
		logger.Error().
			Err(err).
			Str(log.FieldEvent, "actor.login_failed").
			Msg("login failed")
		return fmt.Errorf("%w: %w", ErrLogin, err)
	}
	logger.Info().
		Str(log.FieldEvent, "actor.logged_in").
		Msg("login successful")

	if err := ctx.Err(); err != nil {
		return err
	}

	a.phase(PhaseStreaming)
	a.streamer.Run(ctx, cred)
	logger.Info().
		Str(log.FieldEvent, "actor.stopped").
		Msg("actor stopped")
	return nil
}

func (a *Actor) phase(p Phase) {
	if a.onPhase != nil {
		a.onPhase(p)
	}
}

// Outcome maps a Run result to a metrics label.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "stopped"
	case errors.Is(err, ErrRegister):
		return "register_failed"
	case errors.Is(err, ErrLogin):
		return "login_failed"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "cancelled"
	default:
		return "error"
	}
}
