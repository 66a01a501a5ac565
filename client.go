package kvgate

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/unkn0wn-root/kvgate/backend"
	redisbackend "github.com/unkn0wn-root/kvgate/backend/redis"
)

// lockPrefix namespaces mutual-exclusion markers away from caller data.
const lockPrefix = "lock::"

// connHolder pins one established handle behind a single pointer. The
// supervisor swaps the whole holder atomically; operations use whatever
// they loaded for the duration of their call.
type connHolder struct {
	conn backend.Conn
}

// Client implements Cache over one shared backend handle.
type Client struct {
	id   string
	addr string
	dial backend.Dialer
	log  Logger
	hook Hooks

	dialTimeout time.Duration
	minBackoff  time.Duration
	maxBackoff  time.Duration

	conn     atomic.Pointer[connHolder]
	state    atomic.Int32
	attempts atomic.Uint64

	errMu   sync.Mutex
	lastErr error

	baseCtx   context.Context
	cancel    context.CancelFunc
	redial    chan struct{} // cap 1: collapses concurrent loss reports
	wg        sync.WaitGroup
	closeOnce sync.Once
}

var _ Cache = (*Client)(nil)

func newClient(opts Options) (*Client, error) {
	c := &Client{
		id:     uuid.NewString(),
		addr:   opts.Addr,
		dial:   opts.Dialer,
		redial: make(chan struct{}, 1),
	}
	c.log = coalesce[Logger](opts.Logger, NopLogger{})
	c.hook = coalesce[Hooks](opts.Hooks, NopHooks{})
	c.dialTimeout = coalesce(opts.DialTimeout, defaultDialTimeout)
	c.minBackoff = coalesce(opts.ReconnectInitialBackoff, defaultInitialBackoff)
	c.maxBackoff = coalesce(opts.ReconnectMaxBackoff, defaultMaxBackoff)

	if c.dial == nil {
		if c.addr == "" {
			c.addr = redisbackend.DefaultURL
		}
		d, err := redisbackend.NewDialer(redisbackend.DialerConfig{URL: c.addr})
		if err != nil {
			return nil, fmt.Errorf("kvgate: %w", err)
		}
		c.dial = d
	}

	c.baseCtx, c.cancel = context.WithCancel(context.Background())
	c.state.Store(int32(StateConnecting))
	c.log.Info("cache client starting", Fields{"client": c.id, "addr": c.addr})

	c.wg.Add(1)
	go c.supervise()
	return c, nil
}

// Get issues a single read; a miss is (_, false, nil), not an error.
func (c *Client) Get(ctx context.Context, key string) (string, bool, error) {
	conn, err := c.ready(key)
	if err != nil {
		return "", false, err
	}
	v, ok, err := conn.Get(ctx, key)
	if err != nil {
		return "", false, c.fail("get", key, err)
	}
	return v, ok, nil
}

// Set stores value under key and returns the backend's confirmation
// reply. ttl > 0 rides on the same write command so value and expiry
// land atomically; ttl <= 0 stores without expiry.
func (c *Client) Set(ctx context.Context, key, value string, ttl time.Duration) (string, error) {
	conn, err := c.ready(key)
	if err != nil {
		return "", err
	}
	res, err := conn.Set(ctx, key, value, ttl)
	if err != nil {
		return "", c.fail("set", key, err)
	}
	return res, nil
}

// Delete removes key, mapping the backend's removed-count onto
// DeleteStatus so callers can tell "was there" from "was not".
func (c *Client) Delete(ctx context.Context, key string) (DeleteStatus, error) {
	conn, err := c.ready(key)
	if err != nil {
		return DeleteStatus{}, err
	}
	n, err := conn.Del(ctx, key)
	if err != nil {
		return DeleteStatus{}, c.fail("delete", key, err)
	}
	return DeleteStatus{Removed: n}, nil
}

// Lock attempts to create lock::<key> if and only if it does not already
// exist, with expiry ttl attached to the same command. The marker value
// is empty: holding the key IS holding the lock. Release happens only by
// expiry; crashed holders cost at most one ttl of contention.
func (c *Client) Lock(ctx context.Context, key string, ttl time.Duration) (LockStatus, error) {
	if ttl <= 0 {
		return Locked, ErrInvalidTTL
	}
	conn, err := c.ready(key)
	if err != nil {
		return Locked, err
	}
	c.log.Debug("lock attempt", Fields{"client": c.id, "key": key, "ttl": ttl.String()})
	created, err := conn.SetIfAbsent(ctx, lockPrefix+key, "", ttl)
	if err != nil {
		return Locked, c.fail("lock", key, err)
	}
	if !created {
		c.hook.LockContended(key)
		return Locked, nil
	}
	c.hook.LockAcquired(key, ttl)
	return Acquired, nil
}

// Status reports the connection lifecycle snapshot.
func (c *Client) Status() Status {
	c.errMu.Lock()
	last := c.lastErr
	c.errMu.Unlock()
	return Status{
		State:    State(c.state.Load()),
		Attempts: c.attempts.Load(),
		LastErr:  last,
	}
}

// Close stops the supervisor and releases the installed handle.
// Safe to call multiple times.
func (c *Client) Close(ctx context.Context) error {
	c.closeOnce.Do(func() {
		c.state.Store(int32(StateClosed))
		c.cancel()
		c.log.Info("cache client closing", Fields{"client": c.id})
	})
	c.wg.Wait()
	if h := c.conn.Swap(nil); h != nil {
		return h.conn.Close(ctx)
	}
	return nil
}

// ready validates key and hands back the installed handle. It returns
// ErrClosed after Close, ErrEmptyKey for blank keys and ErrNotConnected
// when no handle is installed; no backend call happens in any of those
// cases.
func (c *Client) ready(key string) (backend.Conn, error) {
	if key == "" {
		return nil, ErrEmptyKey
	}
	if State(c.state.Load()) == StateClosed {
		return nil, ErrClosed
	}
	h := c.conn.Load()
	if h == nil {
		return nil, ErrNotConnected
	}
	return h.conn, nil
}

// fail wraps a backend error for the caller and, when the failure is
// transport-level, wakes the supervisor to replace the handle. Error
// replies from a healthy backend pass through without a redial.
func (c *Client) fail(op, key string, err error) error {
	if backend.IsConnError(err) {
		c.log.Warn("backend connection lost",
			Fields{"client": c.id, "op": op, "err": err.Error()})
		c.hook.ConnectionLost(op, err)
		c.nudge()
	}
	return &OpError{Op: op, Key: key, Err: err}
}

// nudge wakes the supervisor without blocking; one pending signal is
// enough no matter how many operations saw the same dead handle.
func (c *Client) nudge() {
	select {
	case c.redial <- struct{}{}:
	default:
	}
}

// setState transitions the lifecycle state but never out of Closed.
func (c *Client) setState(s State) {
	for {
		cur := c.state.Load()
		if State(cur) == StateClosed {
			return
		}
		if c.state.CompareAndSwap(cur, int32(s)) {
			return
		}
	}
}

func (c *Client) recordDialErr(err error) {
	c.errMu.Lock()
	c.lastErr = err
	c.errMu.Unlock()
}
