package sloghook

import (
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/unkn0wn-root/kvgate"
)

type Options struct {
	// Sampling for chatty lock events; 0/1 = log all.
	LockEvery uint64
	// Optional key redactor. Defaults to SHA-256 prefix.
	Redact func(string) string
}

// Hooks bridges kvgate events onto slog for callers who want event
// visibility without wiring a Logger. Connection events always log; lock
// events are sampled because contended locks fire per attempt.
type Hooks struct {
	l    *slog.Logger
	opts Options

	lockCtr atomic.Uint64
}

var _ kvgate.Hooks = (*Hooks)(nil)

func New(l *slog.Logger, opts Options) *Hooks {
	return &Hooks{l: l, opts: opts}
}

func (h *Hooks) redact(k string) string {
	if h.opts.Redact != nil {
		return h.opts.Redact(k)
	}
	sum := sha256.Sum256([]byte(k))
	return hex.EncodeToString(sum[:8])
}

func sample(n uint64, ctr *atomic.Uint64) bool {
	if n == 0 || n == 1 {
		return true
	}
	return ctr.Add(1)%n == 0
}

func (h *Hooks) Connected(addr string, attempt uint64) {
	if h.l == nil {
		return
	}
	h.l.Info("kvgate.connected",
		"addr", addr,
		"attempt", attempt)
}

func (h *Hooks) DialFailed(addr string, attempt uint64, err error) {
	if h.l == nil {
		return
	}
	h.l.Warn("kvgate.dial_failed",
		"addr", addr,
		"attempt", attempt,
		"err", err)
}

func (h *Hooks) ReconnectScheduled(attempt uint64, wait time.Duration) {
	if h.l == nil {
		return
	}
	h.l.Debug("kvgate.reconnect_scheduled",
		"attempt", attempt,
		"wait", wait)
}

func (h *Hooks) ConnectionLost(op string, err error) {
	if h.l == nil {
		return
	}
	h.l.Error("kvgate.connection_lost",
		"op", op,
		"err", err)
}

func (h *Hooks) LockAcquired(key string, ttl time.Duration) {
	if h.l == nil || !sample(h.opts.LockEvery, &h.lockCtr) {
		return
	}
	h.l.Debug("kvgate.lock_acquired",
		"key", h.redact(key),
		"ttl", ttl)
}

func (h *Hooks) LockContended(key string) {
	if h.l == nil || !sample(h.opts.LockEvery, &h.lockCtr) {
		return
	}
	h.l.Debug("kvgate.lock_contended",
		"key", h.redact(key))
}
