package service

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/reshetovitsme/wa-capture-agent/internal/modules/connection/domain"
	messagedomain "github.com/reshetovitsme/wa-capture-agent/internal/modules/message/domain"
	apperrors "github.com/reshetovitsme/wa-capture-agent/internal/shared/errors"
	"github.com/reshetovitsme/wa-capture-agent/internal/shared/metrics"
)

type fakeSession struct {
	mu    sync.Mutex
	calls int
	fail  func(call int) error
	dials chan int
}

func newFakeSession() *fakeSession {
	return &fakeSession{dials: make(chan int, 32)}
}

func (f *fakeSession) Connect(ctx context.Context) error {
	f.mu.Lock()
	f.calls++
	call := f.calls
	f.mu.Unlock()

	f.dials <- call
	if f.fail != nil {
		return f.fail(call)
	}
	return nil
}

func (f *fakeSession) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type memoryLog struct {
	mu    sync.Mutex
	lines []string
	err   error
}

func (m *memoryLog) Append(ctx context.Context, target messagedomain.LogTarget, line string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	if target != messagedomain.LogTargetDeleted {
		return errors.New("unexpected target " + target.String())
	}
	m.lines = append(m.lines, line)
	return nil
}

func (m *memoryLog) Close() error { return nil }

func setupSupervisor(t *testing.T, session Bootstrapper, logs *memoryLog, maxAttempts int) *Supervisor {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(session, logs, Options{MaxAttempts: maxAttempts, MinInterval: time.Millisecond},
		metrics.New(prometheus.NewRegistry()), logger)
}

type runResult struct{ err error }

func startSupervisor(t *testing.T, s *Supervisor) (context.CancelFunc, <-chan runResult) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan runResult, 1)
	go func() { done <- runResult{s.Run(ctx)} }()
	t.Cleanup(cancel)
	return cancel, done
}

func waitDial(t *testing.T, f *fakeSession, want int) {
	t.Helper()
	select {
	case got := <-f.dials:
		if got != want {
			t.Fatalf("dial %d, want %d", got, want)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for dial %d", want)
	}
}

func waitRun(t *testing.T, done <-chan runResult) error {
	t.Helper()
	select {
	case r := <-done:
		return r.err
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return")
		return nil
	}
}

func TestSupervisor_TransientCloseReconnectsOnce(t *testing.T) {
	session := newFakeSession()
	s := setupSupervisor(t, session, &memoryLog{}, 10)
	cancel, done := startSupervisor(t, s)

	waitDial(t, session, 1)
	s.Notify(domain.Opened())
	s.Notify(domain.Closed(domain.DisconnectReasonConnectionLost))
	waitDial(t, session, 2)

	select {
	case n := <-session.dials:
		t.Fatalf("unexpected extra dial %d", n)
	case <-time.After(50 * time.Millisecond):
	}

	cancel()
	if err := waitRun(t, done); err != nil {
		t.Fatalf("Run returned %v after cancel", err)
	}
	if session.Calls() != 2 {
		t.Fatalf("expected 2 connects, got %d", session.Calls())
	}
}

func TestSupervisor_LoggedOutDoesNotReconnect(t *testing.T) {
	session := newFakeSession()
	s := setupSupervisor(t, session, &memoryLog{}, 10)
	_, done := startSupervisor(t, s)

	waitDial(t, session, 1)
	s.Notify(domain.Opened())
	s.Notify(domain.Closed(domain.DisconnectReasonLoggedOut))

	err := waitRun(t, done)
	if !errors.Is(err, apperrors.ErrLoggedOut) {
		t.Fatalf("expected ErrLoggedOut, got %v", err)
	}
	if !IsTerminal(err) {
		t.Errorf("logged out should be terminal")
	}
	if session.Calls() != 1 {
		t.Fatalf("expected no reconnect, got %d connects", session.Calls())
	}
	if s.State() != domain.ConnectionStateDisconnectedTerminal {
		t.Errorf("state = %s", s.State())
	}
}

func TestSupervisor_ReconnectAttemptsAreBounded(t *testing.T) {
	session := newFakeSession()
	session.fail = func(call int) error {
		if call == 1 {
			return nil
		}
		return errors.New("dial tcp: connection refused")
	}
	s := setupSupervisor(t, session, &memoryLog{}, 3)
	_, done := startSupervisor(t, s)

	waitDial(t, session, 1)
	s.Notify(domain.Closed(domain.DisconnectReasonConnectionLost))

	err := waitRun(t, done)
	if !errors.Is(err, apperrors.ErrReconnectExhausted) {
		t.Fatalf("expected ErrReconnectExhausted, got %v", err)
	}
	if IsTerminal(err) {
		t.Errorf("exhausted retries should be reported as a failure")
	}
	if session.Calls() != 4 {
		t.Fatalf("expected 1 connect and 3 reconnects, got %d", session.Calls())
	}
}

func TestSupervisor_OpenResetsAttempts(t *testing.T) {
	session := newFakeSession()
	s := setupSupervisor(t, session, &memoryLog{}, 1)
	cancel, done := startSupervisor(t, s)

	waitDial(t, session, 1)
	for i := 2; i <= 4; i++ {
		s.Notify(domain.Closed(domain.DisconnectReasonConnectionLost))
		waitDial(t, session, i)
		s.Notify(domain.Opened())
	}

	cancel()
	if err := waitRun(t, done); err != nil {
		t.Fatalf("Run returned %v", err)
	}
}

func TestSupervisor_InitialConnectFailure(t *testing.T) {
	session := newFakeSession()
	session.fail = func(int) error { return errors.New("no route to host") }
	s := setupSupervisor(t, session, &memoryLog{}, 10)

	err := s.Run(context.Background())
	if err == nil || !strings.Contains(err.Error(), "no route to host") {
		t.Fatalf("expected bootstrap error, got %v", err)
	}
}

func TestSupervisor_HandleDeleted(t *testing.T) {
	logs := &memoryLog{}
	s := setupSupervisor(t, newFakeSession(), logs, 10)
	at := time.Date(2025, 2, 8, 0, 40, 1, 0, time.UTC)

	s.HandleDeleted(context.Background(), []messagedomain.DeletionRecord{
		{Kind: messagedomain.DeletionKindRevoke, MessageID: "3EB0A1", ChatID: "123@s.whatsapp.net", SenderID: "123@s.whatsapp.net", DeletedAt: at},
		{Kind: messagedomain.DeletionKindDeleteForMe, MessageID: "3EB0A2", ChatID: "123@s.whatsapp.net", FromMe: true, DeletedAt: at},
	})

	if len(logs.lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(logs.lines))
	}
	for i, line := range logs.lines {
		payload, ok := strings.CutPrefix(line, "Message deleted: ")
		if !ok || !strings.HasSuffix(payload, "\n") {
			t.Fatalf("line %d malformed: %q", i, line)
		}
		var rec messagedomain.DeletionRecord
		if err := json.Unmarshal([]byte(payload), &rec); err != nil {
			t.Fatalf("line %d is not JSON: %v", i, err)
		}
		if !rec.DeletedAt.Equal(at) {
			t.Errorf("line %d deleted_at = %v", i, rec.DeletedAt)
		}
	}
	if !strings.Contains(logs.lines[0], `"kind":"revoke"`) || !strings.Contains(logs.lines[1], `"from_me":true`) {
		t.Errorf("unexpected content %q", logs.lines)
	}
}

func TestSupervisor_HandleDeletedAppendFailure(t *testing.T) {
	logs := &memoryLog{err: errors.New("read-only file system")}
	s := setupSupervisor(t, newFakeSession(), logs, 10)

	s.HandleDeleted(context.Background(), []messagedomain.DeletionRecord{{MessageID: "x"}})
}
