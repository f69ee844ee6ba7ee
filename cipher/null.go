package cipher

// Null is the identity keystream generator used by the null_sha1_80
// profile (spec §6): confidentiality is disabled, so Encrypt must be a
// byte-for-byte no-op rather than simply "not called" — callers that
// always invoke cipher.Encrypt() on the confidentiality path (as the
// protect/unprotect paths do when a profile's services bitmask omits
// confidentiality is handled by skipping the call, not via this type)
// get a safe default if they forget the services check.
type Null struct{}

// NewNull returns a Null cipher. It requires no key material.
func NewNull() *Null { return &Null{} }

// Init accepts and ignores any key material.
func (n *Null) Init(_ []byte) error { return nil }

// SetIV accepts and ignores any IV.
func (n *Null) SetIV(_ [16]byte) error { return nil }

// Output zeroes buf[:n]; the null cipher's keystream is all-zero.
func (n *Null) Output(buf []byte, nBytes int) error {
	for i := 0; i < nBytes && i < len(buf); i++ {
		buf[i] = 0
	}
	return nil
}

// Encrypt is a no-op: the null cipher leaves its input unchanged.
func (n *Null) Encrypt(_ []byte) error { return nil }

// KeyLength is zero: the null cipher consumes no key material.
func (n *Null) KeyLength() int { return 0 }

// SaltLength is zero: the null cipher has no counter block to salt.
func (n *Null) SaltLength() int { return 0 }

// Type identifies this as the null cipher.
func (n *Null) Type() Type { return TypeNull }
