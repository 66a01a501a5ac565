package kvgate

import "time"

// Hooks lightweight callbacks for high-signal connection and lock events.
// Implementations MUST be cheap and non-blocking.
// The client calls them on hot paths; wrap with hooks/async to offload.
type Hooks interface {
	// A dial attempt succeeded and the handle was installed.
	Connected(addr string, attempt uint64)

	// A dial attempt failed; the supervisor will retry after backoff.
	DialFailed(addr string, attempt uint64, err error)

	// The next dial was armed. wait is the jittered delay.
	ReconnectScheduled(attempt uint64, wait time.Duration)

	// A command failed at the transport level; the handle was dropped
	// and a reconnect is underway. op is "get", "set", "delete" or "lock".
	ConnectionLost(op string, err error)

	// A Lock call created the marker (caller now holds the lock).
	LockAcquired(key string, ttl time.Duration)

	// A Lock call found the marker already held.
	LockContended(key string)
}

// NopHooks is the default no-op
type NopHooks struct{}

func (NopHooks) Connected(string, uint64)                 {}
func (NopHooks) DialFailed(string, uint64, error)         {}
func (NopHooks) ReconnectScheduled(uint64, time.Duration) {}
func (NopHooks) ConnectionLost(string, error)             {}
func (NopHooks) LockAcquired(string, time.Duration)       {}
func (NopHooks) LockContended(string)                     {}
