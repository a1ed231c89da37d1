// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package stream

import (
	"context"
	"math/rand/v2"
	"sync/atomic"
	"time"

	"github.com/ManuGH/vendorsim/internal/event"
	"github.com/ManuGH/vendorsim/internal/identity"
	"github.com/ManuGH/vendorsim/internal/log"
	"github.com/ManuGH/vendorsim/internal/metrics"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// EventSource produces the payload for the next send.
type EventSource interface {
	NextEvent() event.Payload
}

// StateObserver is notified after every transition, on the manager's goroutine.
type StateObserver func(from, to State)

// Stats are cumulative counters for one Manager.
type Stats struct {
	ConnectAttempts  uint64
	Connects         uint64
	FramesSent       uint64
	MessagesReceived uint64
}

// Manager is the connection lifecycle manager for one actor run.
type Manager struct {
	cfg      Config
	dialer   Dialer
	events   EventSource
	logger   zerolog.Logger
	rng      *rand.Rand
	observer StateObserver

	state atomic.Value // State

	connectAttempts  atomic.Uint64
	connects         atomic.Uint64
	framesSent       atomic.Uint64
	messagesReceived atomic.Uint64
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger overrides the component logger.
func WithLogger(l zerolog.Logger) Option {
	return func(m *Manager) { m.logger = l }
}

// WithRand fixes the source used for send intervals.
func WithRand(r *rand.Rand) Option {
	return func(m *Manager) { m.rng = r }
}

// WithStateObserver registers a transition callback.
func WithStateObserver(fn StateObserver) Option {
	return func(m *Manager) { m.observer = fn }
}

// NewManager builds a Manager. A nil dialer selects gorilla/websocket.
func NewManager(cfg Config, dialer Dialer, events EventSource, opts ...Option) *Manager {
	cfg = cfg.withDefaults()
	if dialer == nil {
		dialer = NewWebsocketDialer(cfg.HandshakeTimeout, "")
	}
	m := &Manager{
		cfg:    cfg,
		dialer: dialer,
		events: events,
		logger: log.WithComponent("stream").With().Str("actor", cfg.Actor).Logger(),
		rng:    rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.state.Store(StateDisconnected)
	metrics.SetStreamState(cfg.Actor, string(StateDisconnected))
	return m
}

// State returns the current lifecycle state. Safe for concurrent use.
func (m *Manager) State() State {
	return m.state.Load().(State)
}

// Stats returns a snapshot of the manager's counters. Safe for concurrent use.
func (m *Manager) Stats() Stats {
	return Stats{
		ConnectAttempts:  m.connectAttempts.Load(),
		Connects:         m.connects.Load(),
		FramesSent:       m.framesSent.Load(),
		MessagesReceived: m.messagesReceived.Load(),
	}
}

// Run connects, streams events and reconnects until ctx is cancelled. It never
// returns because of transport errors; on return the state is StateFailed.
func (m *Manager) Run(ctx context.Context, cred identity.Credential) {
	logger := log.WithContext(ctx, m.logger)

	endpoint, urlErr := BuildURL(m.cfg.URL, cred)

	for attempt := 1; ctx.Err() == nil; attempt++ {
		m.transition(logger, StateConnecting, triggerConnect)
		m.connectAttempts.Add(1)

		conn, err := m.connect(ctx, endpoint, urlErr)
		if err != nil {
			metrics.RecordConnectAttempt(false)
			if ctx.Err() == nil {
				logger.Warn().
					Err(err).
					Str(log.FieldEvent, "stream.connect_failed").
					Int(log.FieldAttempt, attempt).
					Str(log.FieldURL, redactURL(m.cfg.URL)).
					Msg("websocket connection error")
			}
			m.transition(logger, StateDisconnected, triggerConnectFailed)
		} else {
			metrics.RecordConnectAttempt(true)
			m.connects.Add(1)
			attempt = 0
			reason := m.serve(ctx, logger, conn)
			metrics.RecordDisconnect(string(reason))
			m.transition(logger, StateDisconnected, triggerReleased)
		}

		if !sleepCtx(ctx, m.cfg.ReconnectBackoff) {
			break
		}
		logger.Debug().
			Str(log.FieldEvent, "stream.reconnect").
			Dur(log.FieldDelay, m.cfg.ReconnectBackoff).
			Msg("retrying websocket connection")
	}

	m.transition(logger, StateFailed, triggerStopRequested)
	logger.Info().
		Str(log.FieldEvent, "stream.stopped").
		Uint64("frames_sent", m.framesSent.Load()).
		Msg("websocket closed")
}

func (m *Manager) connect(ctx context.Context, endpoint string, urlErr error) (Conn, error) {
	if urlErr != nil {
		return nil, urlErr
	}
	dialCtx, cancel := context.WithTimeout(ctx, m.cfg.HandshakeTimeout)
	defer cancel()
	return m.dialer.Dial(dialCtx, endpoint)
}

type inbound struct {
	data []byte
	err  error
}

// serve runs the open-state loop and always releases conn before returning.
func (m *Manager) serve(ctx context.Context, logger zerolog.Logger, conn Conn) trigger {
	m.transition(logger, StateOpen, triggerConnected)

	if m.cfg.PingInterval > 0 {
		_ = conn.SetReadDeadline(time.Now().Add(m.cfg.PongTimeout))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(m.cfg.PongTimeout))
		})
	}

	frames := make(chan inbound)
	quit := make(chan struct{})
	readerDone := make(chan struct{})
	go m.readLoop(conn, frames, quit, readerDone)

	// The first pickup request goes out as soon as the connection opens.
	sendTimer := time.NewTimer(0)
	defer sendTimer.Stop()

	var pingC <-chan time.Time
	if m.cfg.PingInterval > 0 {
		ping := time.NewTicker(m.cfg.PingInterval)
		defer ping.Stop()
		pingC = ping.C
	}

	reason := m.loop(ctx, logger, conn, frames, sendTimer, pingC)

	m.transition(logger, StateClosing, reason)
	if reason == triggerStopRequested {
		msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "stop requested")
		_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(m.cfg.WriteTimeout))
	}
	close(quit)
	if err := conn.Close(); err != nil {
		logger.Debug().Err(err).Msg("closing websocket")
	}
	<-readerDone
	return reason
}

func (m *Manager) loop(ctx context.Context, logger zerolog.Logger, conn Conn, frames <-chan inbound, sendTimer *time.Timer, pingC <-chan time.Time) trigger {
	for {
		select {
		case <-ctx.Done():
			return triggerStopRequested

		case in := <-frames:
			if in.err != nil {
				if websocket.IsCloseError(in.err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					logger.Info().
						Str(log.FieldEvent, "stream.remote_close").
						Msg("websocket closed by remote")
					return triggerRemoteClose
				}
				logger.Warn().
					Err(in.err).
					Str(log.FieldEvent, "stream.read_failed").
					Msg("error occurred")
				return triggerReadError
			}
			m.messagesReceived.Add(1)
			metrics.StreamMessagesReceived.Inc()
			logger.Debug().
				Str(log.FieldEvent, "stream.message_received").
				Int("bytes", len(in.data)).
				Msg("received message")

		case <-sendTimer.C:
			// The timer and ctx may fire together; stop wins.
			if ctx.Err() != nil {
				return triggerStopRequested
			}
			if err := m.send(logger, conn); err != nil {
				metrics.StreamSendErrors.Inc()
				logger.Warn().
					Err(err).
					Str(log.FieldEvent, "stream.send_failed").
					Msg("pickup request send failed")
				return triggerSendError
			}
			sendTimer.Reset(m.nextInterval())

		case <-pingC:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(m.cfg.WriteTimeout)); err != nil {
				logger.Warn().
					Err(err).
					Str(log.FieldEvent, "stream.ping_failed").
					Msg("keep-alive ping failed")
				return triggerPingError
			}
		}
	}
}

func (m *Manager) send(logger zerolog.Logger, conn Conn) error {
	payload := m.events.NextEvent()
	data, err := payload.Encode()
	if err != nil {
		return err
	}
	if err := conn.SetWriteDeadline(time.Now().Add(m.cfg.WriteTimeout)); err != nil {
		return err
	}
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return err
	}
	m.framesSent.Add(1)
	metrics.StreamFramesSent.Inc()
	logger.Info().
		Str(log.FieldEvent, "stream.frame_sent").
		Str("latitude", payload.Latitude).
		Str("longitude", payload.Longitude).
		Msg("pickup request sent")
	return nil
}

// readLoop is the only reader of conn. It exits on the first read error, or
// when quit is closed while a frame is waiting to be delivered.
func (m *Manager) readLoop(conn Conn, frames chan<- inbound, quit <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	for {
		_, data, err := conn.ReadMessage()
		if err == nil && m.cfg.PingInterval > 0 {
			_ = conn.SetReadDeadline(time.Now().Add(m.cfg.PongTimeout))
		}
		select {
		case frames <- inbound{data: data, err: err}:
		case <-quit:
			return
		}
		if err != nil {
			return
		}
	}
}

// nextInterval draws uniformly from [SendIntervalMin, SendIntervalMax].
func (m *Manager) nextInterval() time.Duration {
	lo, hi := m.cfg.SendIntervalMin, m.cfg.SendIntervalMax
	if hi <= lo {
		return lo
	}
	return lo + time.Duration(m.rng.Int64N(int64(hi-lo)+1))
}

func (m *Manager) transition(logger zerolog.Logger, to State, why trigger) {
	from := m.State()
	if from == to || from.Terminal() {
		return
	}
	m.state.Store(to)
	metrics.SetStreamState(m.cfg.Actor, string(to))
	logger.Debug().
		Str(log.FieldEvent, "stream.state_changed").
		Str(log.FieldOldState, string(from)).
		Str(log.FieldNewState, string(to)).
		Str(log.FieldReason, string(why)).
		Msg("connection state changed")
	if m.observer != nil {
		m.observer(from, to)
	}
}

// sleepCtx waits for d and reports false if ctx was cancelled first.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if ctx.Err() != nil {
		return false
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
