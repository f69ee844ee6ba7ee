// Package cipher implements the SRTP keystream-generator capability set
// described in spec §4.1: an algorithm-tagged cipher that owns its own
// key material and per-packet IV, and XORs a keystream into a buffer in
// place.
package cipher

import "errors"

// ErrKeyLength is returned by Init when the supplied key material does
// not match the cipher's required length.
var ErrKeyLength = errors.New("cipher: invalid key length")

// ErrIVLength is returned by Output and Encrypt when SetIV has not yet
// been called.
var ErrIVLength = errors.New("cipher: iv not set")

// Type identifies a cipher algorithm for dispatch where the caller needs
// to know the concrete algorithm (in particular AES-ICM, whose IV
// formation differs from other ciphers per spec §4.7 step 8).
type Type int

const (
	// TypeAESICM is AES-128 in Integer Counter Mode (RFC 3711 §4.1.1).
	TypeAESICM Type = iota
	// TypeNull is the identity keystream: Encrypt is a no-op.
	TypeNull
)

func (t Type) String() string {
	switch t {
	case TypeAESICM:
		return "AES_ICM"
	case TypeNull:
		return "NULL"
	default:
		return "UNKNOWN"
	}
}

// Cipher is the capability set consumed by the protect/unprotect data
// paths. Implementations are not safe for concurrent use; a Session
// serializes all calls against a given stream per spec §5.
type Cipher interface {
	// Init ingests KeyLength()+SaltLength() bytes: the cipher key
	// followed immediately by the session salt. May be called once; the
	// result of calling it twice on the same instance is undefined.
	Init(keyMaterial []byte) error

	// SetIV establishes the per-packet 128-bit counter block and folds
	// in whatever salt Init retained (RFC 3711 §4.1.1: IV = k_s XOR
	// counter) before Output/Encrypt is next called. Must be called
	// once per packet, before Output or Encrypt.
	SetIV(iv [16]byte) error

	// Output emits n bytes of keystream into buf (which must have
	// length >= n). Used to produce the keystream prefix consumed by
	// universal-hash authenticators (spec §4.7 step 10).
	Output(buf []byte, n int) error

	// Encrypt XORs keystream into buf[0:len(buf)] in place.
	Encrypt(buf []byte) error

	// KeyLength returns the length in bytes of the key portion (not
	// including the salt) that Init expects at the front of its input.
	KeyLength() int

	// SaltLength returns the length in bytes of the salt portion Init
	// expects immediately after the key; zero for ciphers with no salt
	// component (e.g. the null cipher).
	SaltLength() int

	// Type returns the algorithm identity for dispatch.
	Type() Type
}

// Registry maps a profile-level algorithm identifier to a constructor for
// a fresh, uninitialized Cipher instance. Concrete instances in this
// package are the only ones spec §6 names (AES-128-ICM and NULL); callers
// embedding other ciphers the RFC describes as out of scope register them
// here rather than teaching the protect/unprotect data path new IV shapes.
type Registry map[Type]func() Cipher

// DefaultRegistry returns a Registry populated with this package's two
// built-in algorithms.
func DefaultRegistry() Registry {
	return Registry{
		TypeAESICM: func() Cipher { return NewAESICM() },
		TypeNull:   func() Cipher { return NewNull() },
	}
}
