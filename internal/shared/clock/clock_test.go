package clock

import (
	"sync"
	"testing"
	"time"
)

func TestStamper_UsesClockMilliseconds(t *testing.T) {
	at := time.UnixMilli(1738975201123)
	s := NewStamper(NewFixed(at))

	if got := s.Next(); got != 1738975201123 {
		t.Fatalf("expected 1738975201123, got %d", got)
	}
}

func TestStamper_SameMillisecondIsBumped(t *testing.T) {
	fx := NewFixed(time.UnixMilli(1000))
	s := NewStamper(fx)

	first := s.Next()
	second := s.Next()
	if second != first+1 {
		t.Fatalf("expected %d, got %d", first+1, second)
	}

	fx.Advance(10 * time.Millisecond)
	if got := s.Next(); got != 1010 {
		t.Fatalf("expected clock to win once it moves ahead, got %d", got)
	}
}

func TestStamper_ClockGoingBackwards(t *testing.T) {
	fx := NewFixed(time.UnixMilli(5000))
	s := NewStamper(fx)
	s.Next()

	fx.Set(time.UnixMilli(4000))
	if got := s.Next(); got != 5001 {
		t.Fatalf("expected 5001, got %d", got)
	}
}

func TestStamper_ConcurrentCallsNeverCollide(t *testing.T) {
	s := NewStamper(NewFixed(time.UnixMilli(1)))

	const n = 200
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		seen = make(map[int64]bool, n)
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v := s.Next()
			mu.Lock()
			seen[v] = true
			mu.Unlock()
		}()
	}
	wg.Wait()

	if len(seen) != n {
		t.Fatalf("expected %d distinct stamps, got %d", n, len(seen))
	}
}
