package asynchook

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/unkn0wn-root/kvgate"
)

type countingHooks struct {
	gate  chan struct{} // when set, Connected blocks until closed
	total atomic.Int32
}

var _ kvgate.Hooks = (*countingHooks)(nil)

func (h *countingHooks) Connected(string, uint64) {
	if h.gate != nil {
		<-h.gate
	}
	h.total.Add(1)
}
func (h *countingHooks) DialFailed(string, uint64, error)         { h.total.Add(1) }
func (h *countingHooks) ReconnectScheduled(uint64, time.Duration) { h.total.Add(1) }
func (h *countingHooks) ConnectionLost(string, error)             { h.total.Add(1) }
func (h *countingHooks) LockAcquired(string, time.Duration)       { h.total.Add(1) }
func (h *countingHooks) LockContended(string)                     { h.total.Add(1) }

func TestForwardsAllEvents(t *testing.T) {
	inner := &countingHooks{}
	h := New(inner, 2, 16)

	h.Connected("addr", 1)
	h.DialFailed("addr", 2, errors.New("x"))
	h.ReconnectScheduled(2, time.Second)
	h.ConnectionLost("get", errors.New("y"))
	h.LockAcquired("k", time.Minute)
	h.LockContended("k")

	h.Close() // drains the queue
	if got := inner.total.Load(); got != 6 {
		t.Fatalf("expected 6 delivered events, got %d", got)
	}
}

func TestOverflowDropsInsteadOfBlocking(t *testing.T) {
	gate := make(chan struct{})
	inner := &countingHooks{gate: gate}
	h := New(inner, 1, 1)

	done := make(chan struct{})
	go func() {
		for i := 0; i < 5; i++ {
			h.Connected("addr", uint64(i))
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("emitting with a full queue must not block")
	}

	close(gate)
	h.Close()

	// One in-flight plus one queued can survive; the rest drop.
	if got := inner.total.Load(); got < 1 || got > 2 {
		t.Fatalf("expected 1-2 delivered events, got %d", got)
	}
}

func TestCloseIdempotent(t *testing.T) {
	h := New(&countingHooks{}, 1, 4)
	h.Close()
	h.Close()
}
