// Package kvgate is a typed client for a Redis-class key/value backend.
//
// A Client owns one shared connection handle and exposes four operations:
// Get, Set (with optional atomic expiry), Delete, and Lock (an expiry-only
// mutual-exclusion marker). A supervisor goroutine establishes the handle
// and re-dials with capped exponential backoff whenever the transport
// fails; while no handle is installed, every operation fails fast with
// ErrNotConnected instead of touching the backend.
//
// Components:
//   - backend.Conn / backend.Dialer: the command surface and the single
//     connection-establishment step. backend/redis speaks to a real
//     server; backend/mem is an in-process store for tests and embedded
//     use.
//   - codec.Codec: pluggable value serialization for the typed layer
//     (JSON, Msgpack, CBOR, Protobuf, raw bytes/strings). See Typed.
//   - Logger / Hooks: structured logging facade and high-signal event
//     callbacks, both no-ops unless wired.
//
// Keys:
//
//	<key>        - caller data, stored verbatim
//	lock::<key>  - create-if-absent marker with mandatory expiry
//
// Lock pattern:
//
//	st, err := client.Lock(ctx, "job:rebuild", 30*time.Second)
//	if err == nil && st == kvgate.Acquired {
//		// sole holder until the marker expires; there is no unlock
//	}
//
// A lock is released only by its own expiry. Whoever created the marker
// holds the lock until the backend drops it, so the backend stays the
// single source of truth even when a holder crashes.
package kvgate
