package clock

import (
	"sync"
	"time"
)

// Clock abstracts the wall clock so filename stamps and log timestamps
// can be driven deterministically in tests.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// Real returns the system clock.
func Real() Clock { return realClock{} }

// Fixed is a Clock that always reports the same instant until Set or Advance is called.
type Fixed struct {
	mu  sync.Mutex
	now time.Time
}

func NewFixed(t time.Time) *Fixed { return &Fixed{now: t} }

func (f *Fixed) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *Fixed) Set(t time.Time) {
	f.mu.Lock()
	f.now = t
	f.mu.Unlock()
}

func (f *Fixed) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.mu.Unlock()
}

// Stamper hands out millisecond timestamps that never repeat within the
// process: when two calls land on the same millisecond the later one is
// pushed forward by one.
type Stamper struct {
	clock Clock

	mu   sync.Mutex
	last int64
}

func NewStamper(c Clock) *Stamper {
	return &Stamper{clock: c}
}

// Next returns the next millisecond stamp.
func (s *Stamper) Next() int64 {
	now := s.clock.Now().UnixMilli()

	s.mu.Lock()
	defer s.mu.Unlock()
	if now <= s.last {
		now = s.last + 1
	}
	s.last = now
	return now
}
