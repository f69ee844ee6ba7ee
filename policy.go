package srtp

import (
	"github.com/gosrtp/srtpengine/auth"
	"github.com/gosrtp/srtpengine/cipher"
)

// SSRCSelector identifies which SSRC(s) a Policy applies to, per spec §3.
type SSRCSelector int

const (
	// SSRCUndefined is the zero value; Session.AddStream rejects it
	// with ErrBadParam.
	SSRCUndefined SSRCSelector = iota
	// SSRCSpecific binds the policy to Policy.SSRC exactly.
	SSRCSpecific
	// SSRCAnyInbound installs the policy as the session's receive-side
	// template.
	SSRCAnyInbound
	// SSRCAnyOutbound installs the policy as the session's send-side
	// template.
	SSRCAnyOutbound
)

// Services is a bitmask of the security services a CryptoPolicy applies.
type Services uint8

const (
	// ServiceConfidentiality enables encryption.
	ServiceConfidentiality Services = 1 << iota
	// ServiceAuthentication enables the MAC.
	ServiceAuthentication
)

// Has reports whether the mask includes the given service.
func (s Services) Has(svc Services) bool { return s&svc != 0 }

// CryptoPolicy names one side's (RTP or RTCP) cryptographic treatment:
// cipher algorithm and key length, authenticator algorithm, key length
// and tag length, and which services are active. Spec §3.
type CryptoPolicy struct {
	CipherType      cipher.Type
	CipherKeyLength int // key||salt concatenated length Init expects
	AuthType        auth.Type
	AuthKeyLength   int
	AuthTagLength   int
	Services        Services

	// MKI is the master key identifier this policy's packets carry.
	// A non-empty value is refused when the stream is created
	// (AddStream/Create return ErrNoSuchOp), whatever its length: this
	// core does not implement MKI-indexed multi-master-key rekeying
	// (SPEC_FULL.md §E.2).
	MKI []byte
}

// Policy is a caller-provided descriptor for one or more streams, spec §3.
type Policy struct {
	SSRCSelector SSRCSelector
	SSRC         uint32 // meaningful only when SSRCSelector == SSRCSpecific

	RTPCryptoPolicy  CryptoPolicy
	RTCPCryptoPolicy CryptoPolicy

	MasterKey  []byte
	MasterSalt []byte
}
