package auth

// Null performs no authentication. It exists so policies that disable
// authentication services still have a uniform Authenticator to call
// against (spec §4.1 NULL_CIPHER's authenticator-side counterpart).
type Null struct{}

// NewNull returns a Null authenticator.
func NewNull() *Null { return &Null{} }

// Init accepts and ignores any key.
func (n *Null) Init(_ []byte) error { return nil }

// KeyLength is zero: the null authenticator consumes no key material.
func (n *Null) KeyLength() int { return 0 }

// TagLength is zero: no tag is appended.
func (n *Null) TagLength() int { return 0 }

// PrefixLength is zero.
func (n *Null) PrefixLength() int { return 0 }

// Start is a no-op.
func (n *Null) Start() {}

// Update is a no-op.
func (n *Null) Update(_ []byte) {}

// Compute writes nothing and always succeeds.
func (n *Null) Compute(_ []byte, _ []byte) error { return nil }
