package kvgate

// State is a Client's connection lifecycle phase.
type State int32

const (
	// StateConnecting: the supervisor is dialing (initially or after a
	// dropped handle).
	StateConnecting State = iota
	// StateReady: a verified handle is installed and operations run.
	StateReady
	// StateFailed: the last dial errored; the next attempt waits out the
	// backoff.
	StateFailed
	// StateClosed: Close was called. Terminal.
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Status is a point-in-time snapshot of the connection lifecycle, exposed
// so callers can observe readiness without issuing a command.
type Status struct {
	State State

	// Attempts counts dial attempts over the client's lifetime.
	Attempts uint64

	// LastErr is the most recent dial failure; nil once a dial succeeds.
	LastErr error
}
