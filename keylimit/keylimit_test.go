package keylimit

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLimiterWithoutSetNeverFires(t *testing.T) {
	l := New()
	for i := 0; i < 1000; i++ {
		require.Equal(t, Normal, l.Update())
	}
}

func TestLimiterSoftFiresOnceAtHalfway(t *testing.T) {
	l := New()
	l.Set(10)

	var states []State
	for i := 0; i < 10; i++ {
		states = append(states, l.Update())
	}
	softCount := 0
	for _, s := range states {
		if s == Soft {
			softCount++
		}
	}
	require.Equal(t, 1, softCount)
}

func TestLimiterHardBoundaryPacketStillSucceeds(t *testing.T) {
	l := New()
	l.Set(4)

	require.Equal(t, Normal, l.Update()) // 1
	require.Equal(t, Soft, l.Update())   // 2, soft = 4*0.5 = 2
	require.Equal(t, Normal, l.Update()) // 3
	require.Equal(t, HardReached, l.Update())

	// Fifth call: hard limit already reached, must fail.
	require.Equal(t, Hard, l.Update())
	require.True(t, l.Expired())
}

func TestLimiterSetFractionCustom(t *testing.T) {
	l := New()
	l.SetFraction(100, 0.9)

	var softAt int
	for i := 0; i < 100; i++ {
		if l.Update() == Soft {
			softAt = i + 1
		}
	}
	require.Equal(t, 90, softAt)
}

func TestLimiterCount(t *testing.T) {
	l := New()
	l.Set(1000)
	for i := 0; i < 5; i++ {
		l.Update()
	}
	require.Equal(t, uint64(5), l.Count())
}

func TestLimiterResetOnSet(t *testing.T) {
	l := New()
	l.Set(2)
	l.Update()
	l.Update() // HardReached
	l.Set(10)  // reconfiguring should clear expired/signalled state
	require.False(t, l.Expired())
	require.Equal(t, Normal, l.Update())
}
