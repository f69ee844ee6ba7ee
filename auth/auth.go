// Package auth implements the SRTP keyed-integrity capability set from
// spec §4.1: a MAC with optional keystream-prefix output for
// universal-hash modes (TMMHv2-style authenticators, out of this
// package's scope per spec §1 but accounted for in the interface shape).
package auth

import "errors"

// ErrKeyLength is returned by Init when key material doesn't match the
// authenticator's required length.
var ErrKeyLength = errors.New("auth: invalid key length")

// Type identifies an authentication algorithm.
type Type int

const (
	// TypeHMACSHA1 is RFC 2104 HMAC-SHA1, the sole MAC spec §6 names.
	TypeHMACSHA1 Type = iota
	// TypeNull performs no authentication; Compute writes a zero-length tag.
	TypeNull
)

func (t Type) String() string {
	switch t {
	case TypeHMACSHA1:
		return "HMAC_SHA1"
	case TypeNull:
		return "NULL"
	default:
		return "UNKNOWN"
	}
}

// Authenticator is the capability set consumed by the protect/unprotect
// data paths. Not safe for concurrent use.
type Authenticator interface {
	// Init ingests the authentication key.
	Init(key []byte) error

	// KeyLength is the length in bytes Init expects.
	KeyLength() int

	// TagLength is the number of bytes Compute writes, per the
	// crypto-policy's configured tag length (spec §3, CryptoPolicy).
	TagLength() int

	// PrefixLength is nonzero only for universal-hash MACs that need a
	// keystream prefix written ahead of the tag area before Compute is
	// invoked (spec §4.7 step 10). HMAC-SHA1 and NULL both return 0.
	PrefixLength() int

	// Start resets any per-packet accumulation state.
	Start()

	// Update feeds packet bytes into the running MAC.
	Update(data []byte)

	// Compute finalizes the MAC, having already fed `extra` (the 4-byte
	// big-endian ROC, per spec §4.7 step 12) as the last input, and
	// writes exactly TagLength() bytes into out. out must have
	// length >= TagLength().
	Compute(extra []byte, out []byte) error
}

// Registry maps an algorithm identifier to a constructor that returns a
// fresh, uninitialized Authenticator configured for the given tag length.
type Registry map[Type]func(tagLength int) Authenticator

// DefaultRegistry returns a Registry with this package's two built-in
// algorithms.
func DefaultRegistry() Registry {
	return Registry{
		TypeHMACSHA1: func(tagLength int) Authenticator { return NewHMACSHA1(tagLength) },
		TypeNull:     func(tagLength int) Authenticator { return NewNull() },
	}
}
