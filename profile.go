package srtp

import (
	"github.com/gosrtp/srtpengine/auth"
	"github.com/gosrtp/srtpengine/cipher"
)

// ProtectionProfile identifies one of the RFC 3711 baseline profiles
// spec §6 tabulates. Unsupported profiles return ErrBadParam from
// NewPolicy.
type ProtectionProfile int

const (
	// ProfileAES128CMHMACSHA1_80 is aes128_cm_sha1_80: AES-128-ICM,
	// HMAC-SHA1 with an 80-bit (10-byte) tag on both RTP and RTCP.
	ProfileAES128CMHMACSHA1_80 ProtectionProfile = iota
	// ProfileAES128CMHMACSHA1_32 is aes128_cm_sha1_32: AES-128-ICM,
	// HMAC-SHA1 truncated to 32 bits (4 bytes) on SRTP; SRTCP keeps the
	// full 80-bit (10-byte) tag per spec §6's table.
	ProfileAES128CMHMACSHA1_32
	// ProfileNullHMACSHA1_80 is null_sha1_80: no encryption, HMAC-SHA1
	// with an 80-bit tag, authentication only.
	ProfileNullHMACSHA1_80
)

// MasterKeyLength and MasterSaltLength are the RFC 3711 baseline sizes
// spec §6 fixes for every profile here.
const (
	MasterKeyLength  = 16
	MasterSaltLength = 14
)

// NewPolicy builds a Policy for the given profile, SSRC selector, and
// master key material. masterKey must be MasterKeyLength bytes and
// masterSalt must be MasterSaltLength bytes.
func NewPolicy(profile ProtectionProfile, selector SSRCSelector, ssrc uint32, masterKey, masterSalt []byte) (Policy, error) {
	if len(masterKey) != MasterKeyLength || len(masterSalt) != MasterSaltLength {
		return Policy{}, ErrBadParam
	}

	rtpCP, rtcpCP, err := cryptoPoliciesForProfile(profile)
	if err != nil {
		return Policy{}, err
	}

	return Policy{
		SSRCSelector:     selector,
		SSRC:             ssrc,
		RTPCryptoPolicy:  rtpCP,
		RTCPCryptoPolicy: rtcpCP,
		MasterKey:        append([]byte(nil), masterKey...),
		MasterSalt:       append([]byte(nil), masterSalt...),
	}, nil
}

func cryptoPoliciesForProfile(profile ProtectionProfile) (rtp, rtcp CryptoPolicy, err error) {
	switch profile {
	case ProfileAES128CMHMACSHA1_80:
		cp := CryptoPolicy{
			CipherType:      cipher.TypeAESICM,
			CipherKeyLength: MasterKeyLength + MasterSaltLength, // 30
			AuthType:        auth.TypeHMACSHA1,
			AuthKeyLength:   20,
			AuthTagLength:   10,
			Services:        ServiceConfidentiality | ServiceAuthentication,
		}
		return cp, cp, nil
	case ProfileAES128CMHMACSHA1_32:
		rtpCP := CryptoPolicy{
			CipherType:      cipher.TypeAESICM,
			CipherKeyLength: MasterKeyLength + MasterSaltLength,
			AuthType:        auth.TypeHMACSHA1,
			AuthKeyLength:   20,
			AuthTagLength:   4,
			Services:        ServiceConfidentiality | ServiceAuthentication,
		}
		rtcpCP := rtpCP
		rtcpCP.AuthTagLength = 10 // spec §6: SRTCP keeps the 80-bit tag even under the _32 profile
		return rtpCP, rtcpCP, nil
	case ProfileNullHMACSHA1_80:
		cp := CryptoPolicy{
			CipherType:      cipher.TypeNull,
			CipherKeyLength: 0,
			AuthType:        auth.TypeHMACSHA1,
			AuthKeyLength:   20,
			AuthTagLength:   10,
			Services:        ServiceAuthentication,
		}
		return cp, cp, nil
	default:
		return CryptoPolicy{}, CryptoPolicy{}, ErrBadParam
	}
}
