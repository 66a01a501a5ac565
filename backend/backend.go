// Package backend defines the command surface kvgate speaks to a
// key/value store, plus the single connection-establishment step.
package backend

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Conn is an established session with the backend.
//
// Implementations MUST be safe for concurrent use: one Conn is shared by
// every in-flight operation of a client. Errors are reported verbatim,
// except transport failures, which implementations wrap in *ConnError so
// the client can tell "the session is gone" from "the backend said no".
type Conn interface {
	// Get returns (value, true, nil) on hit and ("", false, nil) on miss.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores value under key and returns the backend's confirmation
	// reply. ttl > 0 attaches an expiry to the same write; ttl <= 0
	// stores without expiry.
	Set(ctx context.Context, key, value string, ttl time.Duration) (string, error)

	// Del removes key and returns how many keys were removed.
	Del(ctx context.Context, key string) (int64, error)

	// SetIfAbsent stores value under key only when key does not exist,
	// with expiry ttl on the same command. Reports whether the write was
	// accepted.
	SetIfAbsent(ctx context.Context, key, value string, ttl time.Duration) (bool, error)

	// Ping verifies the session with one round trip.
	Ping(ctx context.Context) error

	// Close releases the session's resources.
	Close(ctx context.Context) error
}

// Dialer establishes a Conn. Dial must not return a conn until the
// session is verified usable (or fail before the context ends); the
// client installs whatever Dial hands back without further checks.
type Dialer interface {
	Dial(ctx context.Context) (Conn, error)
}

// DialFunc adapts a function to the Dialer interface.
type DialFunc func(ctx context.Context) (Conn, error)

func (f DialFunc) Dial(ctx context.Context) (Conn, error) { return f(ctx) }

// ConnError marks a transport-level failure: the session is gone or
// never came up, as opposed to the backend answering with an error
// reply. Protocol replies and caller cancellation are never wrapped.
type ConnError struct {
	Err error
}

func (e *ConnError) Error() string { return fmt.Sprintf("backend: connection: %v", e.Err) }

func (e *ConnError) Unwrap() error { return e.Err }

// IsConnError reports whether err carries a *ConnError in its chain.
func IsConnError(err error) bool {
	var ce *ConnError
	return errors.As(err, &ce)
}
