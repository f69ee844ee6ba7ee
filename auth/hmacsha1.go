package auth

import (
	"crypto/hmac"
	"crypto/sha1" //nolint:gosec // HMAC-SHA1 is the RFC 3711 baseline MAC, not used for collision resistance
	"hash"
)

// HMACSHA1 is RFC 2104 HMAC-SHA1, truncated to the configured tag length
// per RFC 3711 §4.2. PrefixLength is always 0: HMAC is not a
// universal-hash mode, so no keystream prefix is required.
//
// Grounded on the teacher's generateAuthTag/verifyAuthTag in
// cptpcrd-srtp/srtp.go and the vendored Aziiiz-ssh-p2p context.go, which
// hard-code HMAC-SHA1 with a fixed 10-byte tag; generalized here to a
// caller-supplied tag length so both aes128_cm_sha1_80 and
// aes128_cm_sha1_32 (spec §6) share one implementation.
type HMACSHA1 struct {
	tagLength int
	key       []byte
	mac       hash.Hash
}

// NewHMACSHA1 returns an uninitialized HMAC-SHA1 authenticator that will
// truncate its output to tagLength bytes.
func NewHMACSHA1(tagLength int) *HMACSHA1 {
	return &HMACSHA1{tagLength: tagLength}
}

// Init ingests the authentication key (20 bytes per spec §6).
func (h *HMACSHA1) Init(key []byte) error {
	if len(key) != h.KeyLength() {
		return ErrKeyLength
	}
	h.key = append([]byte(nil), key...)
	return nil
}

// KeyLength is 20 bytes, the HMAC-SHA1 key length spec §6 specifies.
func (h *HMACSHA1) KeyLength() int { return 20 }

// TagLength returns the configured truncation length.
func (h *HMACSHA1) TagLength() int { return h.tagLength }

// PrefixLength is always 0 for HMAC-SHA1.
func (h *HMACSHA1) PrefixLength() int { return 0 }

// Start resets the running MAC for a new packet.
func (h *HMACSHA1) Start() {
	h.mac = hmac.New(sha1.New, h.key)
}

// Update feeds packet bytes into the running MAC.
func (h *HMACSHA1) Update(data []byte) {
	if h.mac == nil {
		h.Start()
	}
	h.mac.Write(data) //nolint:errcheck // hash.Hash.Write never returns an error
}

// Compute feeds the ROC (or other ordering extra bytes) as the final
// input (spec §4.2: "M = Authenticated Portion || ROC") and truncates
// the digest to TagLength() bytes.
func (h *HMACSHA1) Compute(extra []byte, out []byte) error {
	if h.mac == nil {
		h.Start()
	}
	if len(extra) > 0 {
		h.mac.Write(extra) //nolint:errcheck
	}
	sum := h.mac.Sum(nil)
	if len(out) < h.tagLength || h.tagLength > len(sum) {
		return ErrKeyLength
	}
	copy(out[:h.tagLength], sum[:h.tagLength])
	return nil
}
