package service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	chatlog "github.com/reshetovitsme/wa-capture-agent/internal/modules/chatlog/repository"
	"github.com/reshetovitsme/wa-capture-agent/internal/modules/connection/domain"
	messagedomain "github.com/reshetovitsme/wa-capture-agent/internal/modules/message/domain"
	apperrors "github.com/reshetovitsme/wa-capture-agent/internal/shared/errors"
	"github.com/reshetovitsme/wa-capture-agent/internal/shared/metrics"
	"golang.org/x/time/rate"
)

// Bootstrapper establishes a session. Connect returns once the attempt has
// been made; the outcome arrives later as signals.
type Bootstrapper interface {
	Connect(ctx context.Context) error
}

type Options struct {
	MaxAttempts int
	MinInterval time.Duration
}

// Supervisor owns the connect and reconnect loop and records deleted
// messages.
type Supervisor struct {
	session Bootstrapper
	logs    chatlog.Repository
	opts    Options
	limiter *rate.Limiter
	metrics *metrics.Metrics
	logger  *slog.Logger

	mu       sync.Mutex
	state    domain.ConnectionState
	attempts int
	pending  []domain.Signal
	wake     chan struct{}
}

// New creates a new connection supervisor
func New(session Bootstrapper, logs chatlog.Repository, opts Options, m *metrics.Metrics, logger *slog.Logger) *Supervisor {
	limit := rate.Inf
	if opts.MinInterval > 0 {
		limit = rate.Every(opts.MinInterval)
	}
	s := &Supervisor{
		session: session,
		logs:    logs,
		opts:    opts,
		limiter: rate.NewLimiter(limit, 1),
		metrics: m,
		logger:  logger.With("component", "connection_supervisor"),
		state:   domain.ConnectionStateConnecting,
		wake:    make(chan struct{}, 1),
	}
	m.SetConnectionState(s.state.String(), domain.ConnectionStateNames())
	return s
}

// State returns the current connection state.
func (s *Supervisor) State() domain.ConnectionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Notify queues a lifecycle signal. It never blocks, so it is safe to call
// from the session's event callbacks.
func (s *Supervisor) Notify(sig domain.Signal) {
	s.mu.Lock()
	s.pending = append(s.pending, sig)
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// Run makes the initial connection and then reacts to signals until ctx is
// done or the session can no longer be recovered. An initial connect
// failure is returned as a session error.
func (s *Supervisor) Run(ctx context.Context) error {
	if err := s.session.Connect(ctx); err != nil {
		return apperrors.Session().Wrapf(err, "initial connect")
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-s.wake:
		}

		for _, sig := range s.drain() {
			if err := s.apply(ctx, sig); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				return err
			}
		}
	}
}

func (s *Supervisor) drain() []domain.Signal {
	s.mu.Lock()
	defer s.mu.Unlock()
	sigs := s.pending
	s.pending = nil
	return sigs
}

// apply runs sig through the state machine. A failed reconnect counts as
// another close and is retried until the state machine stops it.
func (s *Supervisor) apply(ctx context.Context, sig domain.Signal) error {
	for {
		action := s.step(sig)

		switch action {
		case domain.ActionStop:
			if sig.Reason == domain.DisconnectReasonLoggedOut {
				return apperrors.ErrLoggedOut
			}
			if sig.Reason.Terminal() {
				return apperrors.Session().With("reason", sig.Reason).Wrap(apperrors.ErrSessionClosed)
			}
			return apperrors.ErrReconnectExhausted
		case domain.ActionReconnect:
			err := s.reconnect(ctx)
			if err == nil {
				return nil
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			s.logger.Warn("Reconnect failed", "error", err)
			sig = domain.Closed(domain.DisconnectReasonConnectFailure)
		default:
			return nil
		}
	}
}

func (s *Supervisor) step(sig domain.Signal) domain.Action {
	s.mu.Lock()
	prev := s.state
	next, action := domain.Transition(s.state, sig, s.attempts, s.opts.MaxAttempts)
	s.state = next
	if sig.Kind == domain.SignalKindOpened {
		s.attempts = 0
	}
	if action == domain.ActionReconnect {
		s.attempts++
	}
	attempts := s.attempts
	s.mu.Unlock()

	s.metrics.SetConnectionState(next.String(), domain.ConnectionStateNames())

	switch {
	case sig.Kind == domain.SignalKindPaired:
		s.logger.Info("Credentials updated")
	case prev == domain.ConnectionStateDisconnectedTerminal:
		// already stopped
	case sig.Kind == domain.SignalKindOpened:
		s.logger.Info("Connected")
	case sig.Kind == domain.SignalKindClosed:
		s.logger.Info("Connection closed",
			"reason", sig.Reason,
			"reconnect", action == domain.ActionReconnect,
			"attempt", attempts,
		)
	}
	return action
}

func (s *Supervisor) reconnect(ctx context.Context) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}
	s.metrics.ObserveReconnect()
	if err := s.session.Connect(ctx); err != nil {
		return apperrors.Session().Wrapf(err, "reconnect")
	}
	return nil
}

// HandleDeleted appends one line per record to the deletion log. Failures
// are logged and do not stop the remaining records.
func (s *Supervisor) HandleDeleted(ctx context.Context, records []messagedomain.DeletionRecord) {
	for _, rec := range records {
		line, err := deletionLine(rec)
		if err != nil {
			s.logger.Error("Failed to encode deletion record", "message_id", rec.MessageID, "error", err)
			continue
		}
		if err := s.logs.Append(ctx, messagedomain.LogTargetDeleted, line); err != nil {
			s.metrics.ObserveAppendError(messagedomain.LogTargetDeleted.String())
			s.logger.Error("Failed to append deletion record", "message_id", rec.MessageID, "error", err)
			continue
		}
		s.metrics.ObserveDeletions(1)
	}
}

func deletionLine(rec messagedomain.DeletionRecord) (string, error) {
	raw, err := json.Marshal(rec)
	if err != nil {
		return "", err
	}
	return "Message deleted: " + string(raw) + "\n", nil
}

// IsTerminal reports whether err from Run means the session ended for good
// rather than the agent failing.
func IsTerminal(err error) bool {
	return errors.Is(err, apperrors.ErrLoggedOut) || errors.Is(err, apperrors.ErrSessionClosed)
}
