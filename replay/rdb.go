package replay

import "errors"

// ErrIndexLimitReached is returned by Increment when the 31-bit sender
// index would overflow.
var ErrIndexLimitReached = errors.New("replay: srtcp index limit reached")

const srtcpIndexMask = 0x7FFFFFFF // 31 bits

// RDB is the SRTCP replay database: a monotonic 31-bit sender index
// (used by the sending side) plus a sliding bitmap over received indices
// (used by the receiving side). Unlike RDBX, SRTCP's index travels on
// the wire in the trailer (spec §4.10/§4.11), so there is no ROC
// estimation step — Check/AddIndex operate directly on the 31-bit value.
type RDB struct {
	senderIndex uint32 // last value Increment handed out (0 before the first call), sender side
	windowStart uint32 // base of the receive window
	bitmap      uint64
	started     bool
}

// NewRDB returns an RDB with sender index 0 and an empty receive window.
func NewRDB() *RDB { return &RDB{} }

// GetValue returns the current sender index without advancing it.
func (r *RDB) GetValue() uint32 { return r.senderIndex }

// Increment advances the sender index, failing with
// ErrIndexLimitReached on overflow past 2^31-1.
func (r *RDB) Increment() (uint32, error) {
	if r.senderIndex >= srtcpIndexMask {
		return 0, ErrIndexLimitReached
	}
	r.senderIndex++
	return r.senderIndex, nil
}

// Check reports whether idx passes the replay window, analogous to
// RDBX.Check but operating on an absolute 31-bit index rather than a
// delta from an estimated extended index.
func (r *RDB) Check(idx uint32) error {
	idx &= srtcpIndexMask
	if !r.started {
		return nil
	}
	delta := int64(idx) - int64(r.windowStart)
	if delta > 0 {
		return nil
	}
	position := -delta
	if position >= windowWidth {
		return ErrReplayOld
	}
	if r.bitmap&(1<<uint(position)) != 0 {
		return ErrReplay
	}
	return nil
}

// AddIndex commits idx into the receive window. Like RDBX.AddIndex, this
// must only be called after Check has succeeded and authentication has
// been verified.
func (r *RDB) AddIndex(idx uint32) {
	idx &= srtcpIndexMask
	if !r.started {
		r.windowStart = idx
		r.bitmap = 1
		r.started = true
		return
	}
	delta := int64(idx) - int64(r.windowStart)
	switch {
	case delta > 0:
		if delta >= windowWidth {
			r.bitmap = 1
		} else {
			r.bitmap = (r.bitmap << uint(delta)) | 1
		}
		r.windowStart = idx
	case delta == 0:
		r.bitmap |= 1
	default:
		position := uint(-delta)
		if position < windowWidth {
			r.bitmap |= 1 << position
		}
	}
}
