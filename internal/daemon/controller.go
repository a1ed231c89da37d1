// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package daemon

import (
	"context"
	"sync"
	"time"

	"github.com/ManuGH/vendorsim/internal/actor"
	"github.com/ManuGH/vendorsim/internal/log"
	"github.com/ManuGH/vendorsim/internal/metrics"
	"github.com/ManuGH/vendorsim/internal/stream"
	"github.com/rs/zerolog"
)

// Phase is the controller-level view of the current or last run.
type Phase string

const (
	PhaseIdle         Phase = "idle"
	PhaseProvisioning Phase = "provisioning"
	PhaseStreaming    Phase = "streaming"
	// PhaseExited means the run ended on its own (registration or login failed).
	PhaseExited Phase = "exited"
	// PhaseStopped means the run ended because Stop was called.
	PhaseStopped Phase = "stopped"
)

// Runner is one actor run. Implemented by *actor.Actor.
type Runner interface {
	Run(ctx context.Context) error
	RunID() string
	StreamState() stream.State
}

// RunnerFactory builds a fresh Runner for every Start. onPhase must be wired
// to the runner's phase notifications.
type RunnerFactory func(onPhase func(actor.Phase)) Runner

// Status is a point-in-time snapshot of the controller.
type Status struct {
	Phase       Phase      `json:"phase"`
	Running     bool       `json:"running"`
	RunID       string     `json:"run_id,omitempty"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	EndedAt     *time.Time `json:"ended_at,omitempty"`
	LastError   string     `json:"last_error,omitempty"`
	StreamState string     `json:"stream_state,omitempty"`
}

// Controller starts and stops at most one actor run at a time.
type Controller struct {
	factory RunnerFactory
	logger  zerolog.Logger

	mu     sync.Mutex
	gen    uint64
	runner Runner
	cancel context.CancelFunc
	done   chan struct{}
	status Status
}

// NewController returns an idle controller.
func NewController(factory RunnerFactory) *Controller {
	return &Controller{
		factory: factory,
		logger:  log.WithComponent("controller"),
		status:  Status{Phase: PhaseIdle},
	}
}

// Start launches a new run unless one is active. It reports whether a run was started.
func (c *Controller) Start() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.done != nil {
		select {
		case <-c.done:
			// Previous run exited on its own; reap it.
			c.cancel()
			c.clearLocked()
		default:
			c.logger.Info().Str(log.FieldEvent, "controller.start_ignored").Msg("actor already running")
			return false
		}
	}

	c.gen++
	gen := c.gen
	runner := c.factory(func(p actor.Phase) { c.setPhase(gen, Phase(p)) })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	now := time.Now()

	c.runner = runner
	c.cancel = cancel
	c.done = done
	c.status = Status{Phase: PhaseProvisioning, RunID: runner.RunID(), StartedAt: &now}

	metrics.ActorRunning.Inc()
	go func() {
		defer close(done)
		defer metrics.ActorRunning.Dec()
		err := runner.Run(ctx)
		c.finish(ctx, gen, err)
	}()

	c.logger.Info().
		Str(log.FieldEvent, "controller.started").
		Str(log.FieldRunID, runner.RunID()).
		Msg("actor started")
	return true
}

// Stop cancels the active run and waits for it to exit. It reports whether
// there was a run to stop. Calling Stop with nothing running is a no-op.
// The handle stays recorded until the run has exited, so Start refuses while
// a stop is in progress and concurrent Stop calls wait on the same run.
func (c *Controller) Stop() bool {
	c.mu.Lock()
	if c.done == nil {
		c.mu.Unlock()
		return false
	}
	cancel, done, runID := c.cancel, c.done, c.status.RunID
	c.mu.Unlock()

	cancel()
	<-done

	c.mu.Lock()
	if c.done == done {
		c.clearLocked()
	}
	c.mu.Unlock()

	c.logger.Info().
		Str(log.FieldEvent, "controller.stopped").
		Str(log.FieldRunID, runID).
		Msg("actor stopped")
	return true
}

// Shutdown stops the active run, giving up when ctx expires.
func (c *Controller) Shutdown(ctx context.Context) error {
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		c.Stop()
	}()
	select {
	case <-stopped:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Done returns a channel closed when the current run exits, or nil when no
// run is recorded.
func (c *Controller) Done() <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.done == nil {
		return nil
	}
	return c.done
}

// Running reports whether an actor goroutine is currently alive.
func (c *Controller) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.runningLocked()
}

// Status returns a snapshot of the current or last run.
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.status
	s.Running = c.runningLocked()
	if c.runner != nil {
		s.StreamState = string(c.runner.StreamState())
	}
	return s
}

func (c *Controller) runningLocked() bool {
	if c.done == nil {
		return false
	}
	select {
	case <-c.done:
		return false
	default:
		return true
	}
}

// clearLocked drops the run handle. The last runner is kept for StreamState.
func (c *Controller) clearLocked() {
	c.cancel = nil
	c.done = nil
}

func (c *Controller) setPhase(gen uint64, p Phase) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen == c.gen {
		c.status.Phase = p
	}
}

func (c *Controller) finish(ctx context.Context, gen uint64, err error) {
	outcome := actor.Outcome(err)
	if ctx.Err() != nil {
		outcome = "stopped"
	}
	metrics.RecordActorRun(outcome)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return
	}
	now := time.Now()
	c.status.EndedAt = &now
	if ctx.Err() != nil {
		c.status.Phase = PhaseStopped
		return
	}
	c.status.Phase = PhaseExited
	if err != nil {
		c.status.LastError = err.Error()
	}
	c.logger.Warn().
		Err(err).
		Str(log.FieldEvent, "controller.actor_exited").
		Str(log.FieldRunID, c.status.RunID).
		Str(log.FieldReason, outcome).
		Msg("actor exited without stop")
}
