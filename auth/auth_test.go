package auth

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHMACSHA1ComputeDeterministic(t *testing.T) {
	key := make([]byte, 20)
	for i := range key {
		key[i] = byte(i + 1)
	}
	a := NewHMACSHA1(10)
	require.NoError(t, a.Init(key))

	a.Start()
	a.Update([]byte("hello rtp packet"))
	roc := [4]byte{0, 0, 0, 1}
	out1 := make([]byte, 10)
	require.NoError(t, a.Compute(roc[:], out1))

	a.Start()
	a.Update([]byte("hello rtp packet"))
	out2 := make([]byte, 10)
	require.NoError(t, a.Compute(roc[:], out2))

	require.Equal(t, out1, out2)
}

func TestHMACSHA1DifferentROCDiffersTag(t *testing.T) {
	key := make([]byte, 20)
	a := NewHMACSHA1(10)
	require.NoError(t, a.Init(key))

	a.Start()
	a.Update([]byte("payload"))
	out1 := make([]byte, 10)
	require.NoError(t, a.Compute([]byte{0, 0, 0, 1}, out1))

	a.Start()
	a.Update([]byte("payload"))
	out2 := make([]byte, 10)
	require.NoError(t, a.Compute([]byte{0, 0, 0, 2}, out2))

	require.NotEqual(t, out1, out2)
}

func TestHMACSHA1TruncatesToTagLength(t *testing.T) {
	a := NewHMACSHA1(4)
	require.NoError(t, a.Init(make([]byte, 20)))
	require.Equal(t, 4, a.TagLength())
	a.Start()
	a.Update([]byte("x"))
	out := make([]byte, 4)
	require.NoError(t, a.Compute(nil, out))
}

func TestHMACSHA1RejectsBadKeyLength(t *testing.T) {
	a := NewHMACSHA1(10)
	require.ErrorIs(t, a.Init(make([]byte, 5)), ErrKeyLength)
}

func TestNullAuthenticatorWritesNothing(t *testing.T) {
	n := NewNull()
	require.Equal(t, 0, n.TagLength())
	require.NoError(t, n.Compute(nil, nil))
}

func TestConstantTimeCompare(t *testing.T) {
	require.True(t, ConstantTimeCompare([]byte("abc"), []byte("abc")))
	require.False(t, ConstantTimeCompare([]byte("abc"), []byte("abd")))
	require.False(t, ConstantTimeCompare([]byte("abc"), []byte("ab")))
}

func TestDefaultRegistryHasBothAlgorithms(t *testing.T) {
	reg := DefaultRegistry()
	require.Contains(t, reg, TypeHMACSHA1)
	require.Contains(t, reg, TypeNull)
}
