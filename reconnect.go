package kvgate

import (
	"context"
	mathrand "math/rand"
	"time"

	"github.com/unkn0wn-root/kvgate/backend"
)

// supervise owns the connection for the client's whole life: the initial
// dial, re-dials with capped exponential backoff after a failure, and
// handle replacement when a command reports the transport gone. Exits
// only on Close.
func (c *Client) supervise() {
	defer c.wg.Done()

	backoff := c.minBackoff
	for {
		if c.baseCtx.Err() != nil {
			return
		}

		attempt := c.attempts.Add(1)
		c.setState(StateConnecting)

		conn, err := c.dialOnce()
		if err != nil {
			if c.baseCtx.Err() != nil {
				return // closing, not a real dial failure
			}
			c.recordDialErr(err)
			c.setState(StateFailed)
			c.log.Error("backend connect failed",
				Fields{"client": c.id, "addr": c.addr, "attempt": attempt, "err": err.Error()})
			c.hook.DialFailed(c.addr, attempt, err)

			wait := addJitter(backoff)
			c.hook.ReconnectScheduled(attempt, wait)
			select {
			case <-c.baseCtx.Done():
				return
			case <-time.After(wait):
			}
			backoff = nextBackoff(backoff, c.maxBackoff)
			continue
		}

		// Drop any loss report aimed at the previous handle so the fresh
		// one is not torn down on arrival.
		select {
		case <-c.redial:
		default:
		}

		c.recordDialErr(nil)
		c.conn.Store(&connHolder{conn: conn})
		c.setState(StateReady)
		backoff = c.minBackoff
		c.log.Debug("connected to backend",
			Fields{"client": c.id, "addr": c.addr, "attempt": attempt})
		c.hook.Connected(c.addr, attempt)

		select {
		case <-c.baseCtx.Done():
			return
		case <-c.redial:
		}

		// A command saw the transport fail. Uninstall before dialing so
		// callers fail fast instead of reusing a dead session.
		if h := c.conn.Swap(nil); h != nil {
			_ = h.conn.Close(context.Background())
		}
		c.log.Info("cache client reconnecting", Fields{"client": c.id, "addr": c.addr})
	}
}

// dialOnce runs the single connection-establishment step under the
// per-attempt timeout. Every path into a connection goes through here.
func (c *Client) dialOnce() (backend.Conn, error) {
	ctx, cancel := context.WithTimeout(c.baseCtx, c.dialTimeout)
	defer cancel()
	return c.dial.Dial(ctx)
}

// nextBackoff doubles the delay up to max.
func nextBackoff(current, max time.Duration) time.Duration {
	next := current * 2
	if next > max {
		return max
	}
	return next
}

// addJitter spreads a delay by ±20% so clients sharing a dead backend do
// not re-dial in lockstep.
func addJitter(d time.Duration) time.Duration {
	jitter := (mathrand.Float64() - 0.5) * 2 * 0.2 * float64(d)
	out := time.Duration(float64(d) + jitter)
	if out < time.Millisecond {
		out = time.Millisecond
	}
	return out
}
