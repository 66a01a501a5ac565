// Package mem is an in-process kvgate backend with the same command
// semantics as the wire backend: per-entry expiry, removed-counts and an
// atomic create-if-absent. Meant for tests and embedded use where a
// networked store is overkill.
package mem

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/unkn0wn-root/kvgate/backend"
)

type entry struct {
	val string
	exp time.Time // zero => no expiry
}

// Conn is the in-process store. Safe for concurrent use.
// Expired entries are dropped lazily when touched; an optional sweep
// loop prunes the rest.
type Conn struct {
	mu     sync.Mutex
	m      map[string]entry
	ticker *time.Ticker
	stopCh chan struct{}
	wg     sync.WaitGroup

	closeOnce sync.Once
}

var _ backend.Conn = (*Conn)(nil)

type Config struct {
	// SweepInterval enables a background goroutine pruning expired
	// entries. 0 => lazy expiry only.
	SweepInterval time.Duration
}

func New(cfg Config) *Conn {
	c := &Conn{m: make(map[string]entry)}
	if cfg.SweepInterval > 0 {
		c.ticker = time.NewTicker(cfg.SweepInterval)
		c.stopCh = make(chan struct{})
		c.wg.Add(1)
		go func() {
			defer c.wg.Done()
			for {
				select {
				case <-c.ticker.C:
					c.sweep()
				case <-c.stopCh:
					return
				}
			}
		}()
	}
	return c
}

// live reports whether the entry exists and has not expired at now.
func live(e entry, ok bool, now time.Time) bool {
	return ok && (e.exp.IsZero() || now.Before(e.exp))
}

func (c *Conn) Get(_ context.Context, key string) (string, bool, error) {
	now := time.Now()
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.m[key]
	if !live(e, ok, now) {
		if ok {
			delete(c.m, key) // lazy expiry
		}
		return "", false, nil
	}
	return e.val, true, nil
}

func (c *Conn) Set(_ context.Context, key, value string, ttl time.Duration) (string, error) {
	var exp time.Time
	if ttl > 0 {
		exp = time.Now().Add(ttl)
	}
	c.mu.Lock()
	c.m[key] = entry{val: value, exp: exp}
	c.mu.Unlock()
	return "OK", nil
}

func (c *Conn) Del(_ context.Context, key string) (int64, error) {
	now := time.Now()
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.m[key]
	if !ok {
		return 0, nil
	}
	delete(c.m, key)
	if !live(e, ok, now) {
		return 0, nil // already expired: counts as gone
	}
	return 1, nil
}

// SetIfAbsent checks and writes under one lock, mirroring the atomicity
// the wire backend gets from a single server-side command.
func (c *Conn) SetIfAbsent(_ context.Context, key, value string, ttl time.Duration) (bool, error) {
	now := time.Now()
	var exp time.Time
	if ttl > 0 {
		exp = now.Add(ttl)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.m[key]; live(e, ok, now) {
		return false, nil
	}
	c.m[key] = entry{val: value, exp: exp}
	return true, nil
}

func (c *Conn) Ping(context.Context) error { return nil }

// Close stops the sweep loop. The store itself stays usable, so a conn
// shared between clients survives any one of them closing.
func (c *Conn) Close(context.Context) error {
	c.closeOnce.Do(func() {
		if c.stopCh != nil {
			close(c.stopCh)
			c.ticker.Stop()
			c.wg.Wait()
		}
	})
	return nil
}

func (c *Conn) sweep() {
	now := time.Now()
	c.mu.Lock()
	for k, e := range c.m {
		if !e.exp.IsZero() && !now.Before(e.exp) {
			delete(c.m, k)
		}
	}
	c.mu.Unlock()
}

// Dialer hands out the same conn on every dial, so the stored data
// survives a client's reconnect cycles.
type Dialer struct {
	Conn *Conn
}

var _ backend.Dialer = Dialer{}

func (d Dialer) Dial(context.Context) (backend.Conn, error) {
	if d.Conn == nil {
		return nil, errors.New("mem backend: nil conn")
	}
	return d.Conn, nil
}
