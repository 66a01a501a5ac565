package kvgate

import (
	"context"
	"errors"
	"time"

	"github.com/unkn0wn-root/kvgate/codec"
)

// Typed layers a Codec over a Client so callers read and write structured
// values without touching serialization. Delete and Lock pass through
// untyped: a lock marker has no payload and Delete never reads the value.
type Typed[V any] struct {
	c  *Client
	cd codec.Codec[V]
}

// NewTyped wraps an existing client. The client keeps working untyped
// alongside; Typed adds no state beyond the codec.
func NewTyped[V any](c *Client, cd codec.Codec[V]) (*Typed[V], error) {
	if c == nil {
		return nil, errors.New("kvgate: client is required")
	}
	if cd == nil {
		return nil, errors.New("kvgate: codec is required")
	}
	return &Typed[V]{c: c, cd: cd}, nil
}

// Get reads and decodes the value under key. A stored value the codec
// cannot decode surfaces as an OpError with Op "decode".
func (t *Typed[V]) Get(ctx context.Context, key string) (V, bool, error) {
	var zero V
	raw, ok, err := t.c.Get(ctx, key)
	if err != nil || !ok {
		return zero, false, err
	}
	v, err := t.cd.Decode([]byte(raw))
	if err != nil {
		return zero, false, &OpError{Op: "decode", Key: key, Err: err}
	}
	return v, true, nil
}

// Set encodes value and stores it under key; ttl as in Client.Set.
func (t *Typed[V]) Set(ctx context.Context, key string, value V, ttl time.Duration) (string, error) {
	b, err := t.cd.Encode(value)
	if err != nil {
		return "", &OpError{Op: "encode", Key: key, Err: err}
	}
	return t.c.Set(ctx, key, string(b), ttl)
}

// Delete passes through to Client.Delete.
func (t *Typed[V]) Delete(ctx context.Context, key string) (DeleteStatus, error) {
	return t.c.Delete(ctx, key)
}

// Lock passes through to Client.Lock.
func (t *Typed[V]) Lock(ctx context.Context, key string, ttl time.Duration) (LockStatus, error) {
	return t.c.Lock(ctx, key, ttl)
}

// Client returns the underlying string client.
func (t *Typed[V]) Client() *Client { return t.c }
