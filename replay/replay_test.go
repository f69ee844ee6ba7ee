package replay

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRDBXInOrderSequence(t *testing.T) {
	r := NewRDBX()
	for seq := uint16(0); seq < 10; seq++ {
		delta, est := r.EstimateIndex(seq)
		require.NoError(t, r.Check(delta))
		r.AddIndex(delta)
		require.Equal(t, uint64(seq), est)
	}
	require.Equal(t, uint64(9), r.BaseIndex())
}

func TestRDBXRejectsDuplicate(t *testing.T) {
	r := NewRDBX()
	delta, _ := r.EstimateIndex(5)
	require.NoError(t, r.Check(delta))
	r.AddIndex(delta)

	delta2, _ := r.EstimateIndex(5)
	require.ErrorIs(t, r.Check(delta2), ErrReplay)
}

func TestRDBXRejectsTooOld(t *testing.T) {
	r := NewRDBX()
	delta, _ := r.EstimateIndex(1000)
	r.AddIndex(delta)

	old, _ := r.EstimateIndex(1000 - windowWidth - 1)
	require.ErrorIs(t, r.Check(old), ErrReplayOld)
}

func TestRDBXAcceptsOutOfOrderWithinWindow(t *testing.T) {
	r := NewRDBX()
	d1, _ := r.EstimateIndex(10)
	r.AddIndex(d1)

	d2, _ := r.EstimateIndex(5)
	require.NoError(t, r.Check(d2))
	r.AddIndex(d2)

	// 5 was already received: replaying it fails.
	d3, _ := r.EstimateIndex(5)
	require.ErrorIs(t, r.Check(d3), ErrReplay)
}

func TestRDBXROCWraparound(t *testing.T) {
	r := NewRDBX()
	r.SetBaseIndex(uint64(0xFFFF))

	delta, est := r.EstimateIndex(0)
	require.NoError(t, r.Check(delta))
	r.AddIndex(delta)
	require.Equal(t, uint64(0x10000), est)
	require.Equal(t, uint32(1), uint32(r.BaseIndex()>>16))
}

func TestRDBSenderIndexStartsAtOneAndIncrements(t *testing.T) {
	r := NewRDB()
	v1, err := r.Increment()
	require.NoError(t, err)
	require.Equal(t, uint32(1), v1)

	v2, err := r.Increment()
	require.NoError(t, err)
	require.Equal(t, uint32(2), v2)
}

func TestRDBIncrementOverflow(t *testing.T) {
	r := &RDB{senderIndex: srtcpIndexMask}
	_, err := r.Increment()
	require.ErrorIs(t, err, ErrIndexLimitReached)
}

func TestRDBReceiveWindowDuplicateAndReplayOld(t *testing.T) {
	r := NewRDB()
	require.NoError(t, r.Check(100))
	r.AddIndex(100)

	require.ErrorIs(t, r.Check(100), ErrReplay)
	require.NoError(t, r.Check(101))
	r.AddIndex(101)

	require.ErrorIs(t, r.Check(100-windowWidth-1), ErrReplayOld)
}
