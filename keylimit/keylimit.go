// Package keylimit implements the key-usage limiter from spec §4.4: it
// counts packets protected/unprotected under a given key and signals
// soft- and hard-limit transitions.
//
// Grounded on the libsrtp original's srtp_key_limit_* state machine
// (original_source/.../srtp.c) — a monotonic counter compared against a
// hard ceiling and a fractional soft ceiling — reimplemented as a small
// typed state machine rather than the original's mutable global enum.
package keylimit

// State is the result of a call to Update.
type State int

const (
	// Normal means no limit boundary was crossed by this call.
	Normal State = iota
	// Soft means the soft limit was crossed by this call; the packet
	// that triggered it still succeeds, and Soft is returned exactly
	// once per Limiter (spec §8 key-limit monotonicity).
	Soft
	// HardReached means the hard limit was crossed by this call; the
	// packet that triggered it still succeeds (the limiter's source
	// behavior — the caller gets one more packet through after the
	// boundary), but every later call returns Hard. Returned exactly
	// once per Limiter.
	HardReached
	// Hard means the hard limit was already reached by a prior call:
	// this call must fail with key-expired without being processed.
	Hard
)

// defaultSoftFraction is the fraction of the hard limit at which Soft is
// signalled, matching the "e.g. 1/2" default spec §4.4 suggests.
const defaultSoftFraction = 0.5

// Limiter is the key-usage limiter attached to a Stream. Not safe for
// concurrent use; like every other data-path component, a Session
// serializes access per spec §5.
type Limiter struct {
	count         uint64
	hardLimit     uint64
	softLimit     uint64
	softSignalled bool
	hardSignalled bool
	expired       bool
}

// New returns a Limiter with no configured ceiling: Update always
// returns Normal until Set is called.
func New() *Limiter {
	return &Limiter{hardLimit: ^uint64(0), softLimit: ^uint64(0)}
}

// Set establishes the hard ceiling and derives the soft ceiling as half
// of it (spec §4.4's suggested default fraction).
func (l *Limiter) Set(hardLimit uint64) {
	l.SetFraction(hardLimit, defaultSoftFraction)
}

// SetFraction is like Set but takes an explicit soft-limit fraction
// in (0, 1], for callers that don't want the 1/2 default.
func (l *Limiter) SetFraction(hardLimit uint64, softFraction float64) {
	l.hardLimit = hardLimit
	l.softLimit = uint64(float64(hardLimit) * softFraction)
	l.softSignalled = false
	l.hardSignalled = false
	l.expired = false
}

// Update increments the usage counter and returns the resulting state.
// Once the hard limit has been reached, every subsequent call returns
// Hard: the limit is monotonically non-decreasing and hard-limit is
// terminal (spec §3 invariants).
func (l *Limiter) Update() State {
	if l.expired {
		return Hard
	}
	l.count++

	if l.count >= l.hardLimit {
		l.expired = true
		if !l.hardSignalled {
			l.hardSignalled = true
			return HardReached
		}
		return Hard
	}
	if l.count >= l.softLimit {
		if !l.softSignalled {
			l.softSignalled = true
			return Soft
		}
	}
	return Normal
}

// Count returns the number of packets counted so far.
func (l *Limiter) Count() uint64 { return l.count }

// Expired reports whether the hard limit has been reached.
func (l *Limiter) Expired() bool { return l.expired }
