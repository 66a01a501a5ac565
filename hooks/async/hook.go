// usage:
//
// import (
//
//	"log/slog"
//
//	"github.com/unkn0wn-root/kvgate"
//	"github.com/unkn0wn-root/kvgate/hooks/async"
//	"github.com/unkn0wn-root/kvgate/hooks/sloghook"
//
// )
//
//	raw := sloghook.New(slog.Default(), sloghook.Options{
//	    LockEvery: 10, // sample logs: ~every 10th lock event
//	})
//
// hooks := asynchook.New(raw, 1, 1000) // 1 worker; queue 1000 events
// defer hooks.Close()
//
//	client, _ := kvgate.New(kvgate.Options{
//	    Addr:  "redis://cache.internal/",
//	    Hooks: hooks, // or `raw` if you don't want async
//	})
//
// Events are dropped, not queued, when the buffer is full: hook delivery
// must never backpressure an operation or the reconnect loop.
package asynchook

import (
	"sync"
	"time"

	"github.com/unkn0wn-root/kvgate"
)

type Hooks struct {
	inner kvgate.Hooks
	q     chan func()
	wg    sync.WaitGroup
	once  sync.Once
}

var _ kvgate.Hooks = (*Hooks)(nil)

func New(inner kvgate.Hooks, workers, qlen int) *Hooks {
	if workers <= 0 {
		workers = 1
	}
	if qlen <= 0 {
		qlen = 1024
	}

	h := &Hooks{inner: inner, q: make(chan func(), qlen)}
	h.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer h.wg.Done()
			for f := range h.q {
				f()
			}
		}()
	}
	return h
}

func (h *Hooks) Close() {
	h.once.Do(func() {
		close(h.q)
		h.wg.Wait()
	})
}

func (h *Hooks) try(f func()) {
	select {
	case h.q <- f:
	default: // drop
	}
}

func (h *Hooks) Connected(addr string, attempt uint64) {
	h.try(func() { h.inner.Connected(addr, attempt) })
}
func (h *Hooks) DialFailed(addr string, attempt uint64, err error) {
	h.try(func() { h.inner.DialFailed(addr, attempt, err) })
}
func (h *Hooks) ReconnectScheduled(attempt uint64, wait time.Duration) {
	h.try(func() { h.inner.ReconnectScheduled(attempt, wait) })
}
func (h *Hooks) ConnectionLost(op string, err error) {
	h.try(func() { h.inner.ConnectionLost(op, err) })
}
func (h *Hooks) LockAcquired(key string, ttl time.Duration) {
	h.try(func() { h.inner.LockAcquired(key, ttl) })
}
func (h *Hooks) LockContended(key string) { h.try(func() { h.inner.LockContended(key) }) }
