package kvgate

import (
	"errors"
	"fmt"
)

var (
	// ErrNotConnected means no usable connection handle is installed
	// (still dialing, or the backend dropped and reconnect is pending).
	// Operations return it before attempting any backend call.
	ErrNotConnected = errors.New("kvgate: not connected")

	// ErrClosed is returned by every operation after Close.
	ErrClosed = errors.New("kvgate: client is closed")

	// ErrEmptyKey rejects operations on a blank key.
	ErrEmptyKey = errors.New("kvgate: empty key")

	// ErrInvalidTTL rejects a Lock without a positive expiry. A lock is
	// released only by expiring, so one without an expiry would never be.
	ErrInvalidTTL = errors.New("kvgate: lock ttl must be positive")
)

// OpError carries a failed operation's name and user key alongside the
// cause. The cause is preserved verbatim for errors.Is/As: backend error
// replies surface exactly as the backend produced them, transport
// failures carry a *backend.ConnError in the chain.
type OpError struct {
	Op  string // "get", "set", "delete", "lock", "encode", "decode"
	Key string
	Err error
}

func (e *OpError) Error() string {
	return fmt.Sprintf("kvgate: %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *OpError) Unwrap() error { return e.Err }
