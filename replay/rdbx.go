// Package replay implements the two replay-protection databases spec
// §4.2/§4.3 name as core components: RDBX for SRTP's 48-bit extended
// sequence number, RDB for SRTCP's 31-bit sender index.
//
// Grounded on the sliding-window bitmap in the libsrtp original
// (original_source/.../srtp.c rdbx_estimate_index/rdbx_check/
// rdbx_add_index) and on the rollover-tracking style of the teacher's
// cptpcrd-srtp/srtp.go updateRolloverCount, generalized from the
// teacher's single-direction heuristic into the delta/estimate contract
// spec §4.2 requires.
package replay

import "errors"

// ErrReplay is returned by Check when the index has already been seen.
var ErrReplay = errors.New("replay: index already received")

// ErrReplayOld is returned by Check when the index is older than the
// sliding window can represent.
var ErrReplayOld = errors.New("replay: index too old")

// windowWidth is the bitmap width in bits. The spec requires width >= 64;
// one uint64 is both the minimum and the libsrtp default.
const windowWidth = 64

// RDBX is the SRTP replay database: a 48-bit base index and a sliding
// bitmap whose LSB (bit 0) tracks baseIndex itself.
type RDBX struct {
	baseIndex uint64 // 48-bit extended index, low 16 bits are the ROC/seq split point
	bitmap    uint64
}

// NewRDBX returns an RDBX with base index 0 and an empty window.
func NewRDBX() *RDBX {
	return &RDBX{}
}

// BaseIndex returns the current top-of-window extended index.
func (r *RDBX) BaseIndex() uint64 { return r.baseIndex }

// SetBaseIndex forcibly sets the top-of-window index, used by
// Stream.SetROC for out-of-band rollover-counter synchronization
// (SPEC_FULL.md §E.3).
func (r *RDBX) SetBaseIndex(idx uint64) {
	r.baseIndex = idx & 0xFFFFFFFFFFFF
	r.bitmap = 0
}

// EstimateIndex chooses the ROC that minimizes |est - base| subject to
// est mod 2^16 == seq, per spec §4.2. It returns the signed delta
// (est - base) and the resulting 48-bit estimate.
func (r *RDBX) EstimateIndex(seq uint16) (delta int64, est uint64) {
	roc := uint32(r.baseIndex >> 16)

	type candidate struct {
		roc uint32
		ok  bool
	}
	candidates := []candidate{
		{roc, true},
		{roc + 1, true},
		{roc - 1, roc > 0},
	}

	base := int64(r.baseIndex)
	bestEst := (uint64(roc) << 16) | uint64(seq)
	bestDelta := int64(bestEst) - base

	for _, c := range candidates {
		if !c.ok {
			continue
		}
		e := (uint64(c.roc) << 16) | uint64(seq)
		d := int64(e) - base
		if absInt64(d) < absInt64(bestDelta) {
			bestEst = e
			bestDelta = d
		}
	}
	return bestDelta, bestEst & 0xFFFFFFFFFFFF
}

func absInt64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

// Check reports whether delta (as returned by EstimateIndex) passes the
// replay window: it fails with ErrReplay if the index is within the
// window and already marked seen, or with ErrReplayOld if it falls
// outside the window on the old side. A positive delta (ahead of the
// current base) always passes: nothing ahead of base has been recorded
// yet.
func (r *RDBX) Check(delta int64) error {
	if delta > 0 {
		return nil
	}
	position := -delta // 0 == baseIndex itself, increasing = older
	if position >= windowWidth {
		return ErrReplayOld
	}
	if r.bitmap&(1<<uint(position)) != 0 {
		return ErrReplay
	}
	return nil
}

// AddIndex commits delta into the window. It must only be called after
// Check has succeeded and, on the receive path, only after the packet's
// authentication has been verified (spec §4.2 ordering requirement).
func (r *RDBX) AddIndex(delta int64) {
	switch {
	case delta > 0:
		if delta >= windowWidth {
			r.bitmap = 1
		} else {
			r.bitmap = (r.bitmap << uint(delta)) | 1
		}
		r.baseIndex = uint64(int64(r.baseIndex) + delta)
	case delta == 0:
		r.bitmap |= 1
	default:
		position := uint(-delta)
		if position < windowWidth {
			r.bitmap |= 1 << position
		}
	}
}
