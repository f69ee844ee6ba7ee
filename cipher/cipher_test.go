package cipher

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestAESICMKnownAnswerVector checks the keystream against RFC 3711
// Appendix B.2's AES-CM test vector. sessionSalt there is the already
// XOR-folded 16-byte counter base (SSRC=0, index=0), so feeding its
// first 14 bytes through Init+SetIV must reproduce it exactly: this is
// the test that would have caught the session salt never being folded
// into the counter block.
func TestAESICMKnownAnswerVector(t *testing.T) {
	key, err := hex.DecodeString("2B7E151628AED2A6ABF7158809CF4F3C")
	require.NoError(t, err)
	salt, err := hex.DecodeString("F0F1F2F3F4F5F6F7F8F9FAFBFCFD")
	require.NoError(t, err)

	c := NewAESICM()
	require.NoError(t, c.Init(append(append([]byte(nil), key...), salt...)))
	require.NoError(t, c.SetIV([16]byte{}))

	keystream := make([]byte, 48)
	require.NoError(t, c.Output(keystream, 48))

	want, err := hex.DecodeString(
		"E03EAD0935C95E80E166B16DD92B4EB4" +
			"D23513162B02D0F72A43A2FE4A5F97AB" +
			"41E95B3BB0A2E8DD477901E4FCA894C0")
	require.NoError(t, err)
	require.Equal(t, want, keystream)
}

func TestAESICMRoundTrip(t *testing.T) {
	keyMaterial := make([]byte, 16+14)
	for i := range keyMaterial {
		keyMaterial[i] = byte(i)
	}
	plaintext := []byte("this is a test rtp payload....!")

	enc := NewAESICM()
	require.NoError(t, enc.Init(keyMaterial))
	require.NoError(t, enc.SetIV([16]byte{0: 0xAA, 9: 0x01}))

	buf := append([]byte(nil), plaintext...)
	require.NoError(t, enc.Encrypt(buf))
	require.NotEqual(t, plaintext, buf)

	dec := NewAESICM()
	require.NoError(t, dec.Init(keyMaterial))
	require.NoError(t, dec.SetIV([16]byte{0: 0xAA, 9: 0x01}))
	require.NoError(t, dec.Encrypt(buf))
	require.Equal(t, plaintext, buf)
}

func TestAESICMRequiresIVBeforeUse(t *testing.T) {
	c := NewAESICM()
	require.NoError(t, c.Init(make([]byte, 16+14)))
	require.Error(t, c.Encrypt(make([]byte, 4)))
	require.Error(t, c.Output(make([]byte, 4), 4))
}

func TestAESICMRejectsBadKeyLength(t *testing.T) {
	c := NewAESICM()
	require.ErrorIs(t, c.Init(make([]byte, 10)), ErrKeyLength)
}

func TestAESICMOutputMatchesEncryptOfZeroes(t *testing.T) {
	keyMaterial := make([]byte, 16+14)
	iv := [16]byte{5: 0x42}

	a := NewAESICM()
	require.NoError(t, a.Init(keyMaterial))
	require.NoError(t, a.SetIV(iv))
	out := make([]byte, 32)
	require.NoError(t, a.Output(out, 32))

	b := NewAESICM()
	require.NoError(t, b.Init(keyMaterial))
	require.NoError(t, b.SetIV(iv))
	zero := make([]byte, 32)
	require.NoError(t, b.Encrypt(zero))

	require.Equal(t, out, zero)
}

func TestNullCipherIsIdentity(t *testing.T) {
	n := NewNull()
	require.Equal(t, 0, n.KeyLength())
	buf := []byte("unchanged")
	orig := append([]byte(nil), buf...)
	require.NoError(t, n.Encrypt(buf))
	require.Equal(t, orig, buf)

	out := []byte{1, 2, 3}
	require.NoError(t, n.Output(out, 3))
	require.Equal(t, []byte{0, 0, 0}, out)
}

func TestDefaultRegistryHasBothAlgorithms(t *testing.T) {
	reg := DefaultRegistry()
	require.Contains(t, reg, TypeAESICM)
	require.Contains(t, reg, TypeNull)
	require.Equal(t, TypeAESICM, reg[TypeAESICM]().Type())
	require.Equal(t, TypeNull, reg[TypeNull]().Type())
}
