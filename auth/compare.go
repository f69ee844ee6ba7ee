package auth

import "crypto/subtle"

// ConstantTimeCompare reports whether a and b are byte-for-byte equal in
// time that does not depend on where they first differ. Spec §7 makes
// this mandatory for MAC verification: "any variable-time early-exit is
// a defect". The length check below is an early return, but every tag
// this is called with is a fixed length fixed by the authenticator's
// TagLength(), so a length mismatch never occurs on the path spec §7
// cares about; the constant-time comparison is only load-bearing for
// equal-length tags, which subtle.ConstantTimeCompare provides.
func ConstantTimeCompare(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare(a, b) == 1
}
