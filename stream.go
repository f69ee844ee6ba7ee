package srtp

import (
	"github.com/gosrtp/srtpengine/auth"
	"github.com/gosrtp/srtpengine/cipher"
	"github.com/gosrtp/srtpengine/kdf"
	"github.com/gosrtp/srtpengine/keylimit"
	"github.com/gosrtp/srtpengine/replay"
)

// Direction records which way a Stream has been used. Spec §3: once set
// to sender or receiver, it is fixed for the stream's lifetime.
type Direction int

const (
	DirectionUnknown Direction = iota
	DirectionSender
	DirectionReceiver
)

// Stream is the per-SSRC state bundle described in spec §3: an RTP
// cipher/authenticator pair, an RTCP cipher/authenticator pair, replay
// databases for each, a key limiter, direction, and service flags.
//
// A Stream cloned from a template (spec §4.9) shares its cipher,
// authenticator, and limiter with the template — templateOrigin records
// that sharing so Close can skip freeing resources it doesn't own.
type Stream struct {
	ssrc      uint32
	direction Direction

	rtpCipher cipher.Cipher
	rtpAuth   auth.Authenticator
	rtpRDBX   *replay.RDBX

	rtcpCipher cipher.Cipher
	rtcpAuth   auth.Authenticator
	rtcpRDB    *replay.RDB

	limiter *keylimit.Limiter

	rtpServices  Services
	rtcpServices Services

	// templateOrigin is non-nil when this stream was cloned from a
	// template: rtpCipher/rtpAuth/rtcpCipher/rtcpAuth/limiter are
	// shared references, not owned, and Close must not zero/free them.
	templateOrigin *Stream
}

// newStreamFromPolicy builds a Stream that owns its own cipher,
// authenticator, and limiter, deriving session keys from the policy's
// master key/salt via the KDF (spec §4.5/§4.6).
func newStreamFromPolicy(ssrc uint32, policy Policy) (*Stream, error) {
	if len(policy.RTPCryptoPolicy.MKI) > 0 || len(policy.RTCPCryptoPolicy.MKI) > 0 {
		return nil, ErrNoSuchOp
	}

	derivation, err := kdf.New(policy.MasterKey, policy.MasterSalt)
	if err != nil {
		return nil, errorsWrap(ErrAllocFail, err)
	}
	defer derivation.Close()

	rtpCipher, rtpAuthImpl, err := buildCryptoPair(derivation, policy.RTPCryptoPolicy,
		kdf.LabelRTPEncryption, kdf.LabelRTPAuth, kdf.LabelRTPSalt)
	if err != nil {
		return nil, err
	}

	rtcpCipher, rtcpAuthImpl, err := buildCryptoPair(derivation, policy.RTCPCryptoPolicy,
		kdf.LabelRTCPEncryption, kdf.LabelRTCPAuth, kdf.LabelRTCPSalt)
	if err != nil {
		return nil, err
	}

	return &Stream{
		ssrc:         ssrc,
		rtpCipher:    rtpCipher,
		rtpAuth:      rtpAuthImpl,
		rtpRDBX:      replay.NewRDBX(),
		rtcpCipher:   rtcpCipher,
		rtcpAuth:     rtcpAuthImpl,
		rtcpRDB:      replay.NewRDB(),
		limiter:      keylimit.New(),
		rtpServices:  policy.RTPCryptoPolicy.Services,
		rtcpServices: policy.RTCPCryptoPolicy.Services,
	}, nil
}

func buildCryptoPair(derivation *kdf.KDF, cp CryptoPolicy, encLabel, authLabel, saltLabel kdf.Label) (cipher.Cipher, auth.Authenticator, error) {
	cipherRegistry := cipher.DefaultRegistry()
	newCipher, ok := cipherRegistry[cp.CipherType]
	if !ok {
		return nil, nil, ErrBadParam
	}
	c := newCipher()

	if c.KeyLength() > 0 {
		if c.KeyLength()+c.SaltLength() != cp.CipherKeyLength {
			return nil, nil, ErrBadParam
		}
		cipherKey := derivation.DeriveAESICMCipherKey(encLabel, saltLabel, c.KeyLength(), c.SaltLength())
		err := c.Init(cipherKey)
		for i := range cipherKey {
			cipherKey[i] = 0
		}
		if err != nil {
			return nil, nil, errorsWrap(ErrInitFail, err)
		}
	}

	authRegistry := auth.DefaultRegistry()
	newAuth, ok := authRegistry[cp.AuthType]
	if !ok {
		return nil, nil, ErrBadParam
	}
	a := newAuth(cp.AuthTagLength)
	if a.KeyLength() > 0 {
		authKey := derivation.Derive(authLabel, a.KeyLength())
		err := a.Init(authKey)
		for i := range authKey {
			authKey[i] = 0
		}
		if err != nil {
			return nil, nil, errorsWrap(ErrInitFail, err)
		}
	}

	return c, a, nil
}

// clone materializes a concrete Stream for ssrc from a template,
// sharing the template's cipher/authenticator/limiter and owning fresh
// replay state, per spec §4.9.
func (tpl *Stream) clone(ssrc uint32) *Stream {
	origin := tpl
	if tpl.templateOrigin != nil {
		origin = tpl.templateOrigin
	}
	return &Stream{
		ssrc:           ssrc,
		direction:      tpl.direction,
		rtpCipher:      tpl.rtpCipher,
		rtpAuth:        tpl.rtpAuth,
		rtpRDBX:        replay.NewRDBX(),
		rtcpCipher:     tpl.rtcpCipher,
		rtcpAuth:       tpl.rtcpAuth,
		rtcpRDB:        replay.NewRDB(),
		limiter:        tpl.limiter,
		rtpServices:    tpl.rtpServices,
		rtcpServices:   tpl.rtcpServices,
		templateOrigin: origin,
	}
}

// isFromTemplate reports whether this stream shares resources with a
// template rather than owning them (spec §4.9's pointer-equality
// discriminator, expressed here as an explicit field).
func (s *Stream) isFromTemplate() bool { return s.templateOrigin != nil }

// SSRC returns the stream's synchronization source identifier.
func (s *Stream) SSRC() uint32 { return s.ssrc }

// Direction returns the stream's bound direction.
func (s *Stream) Direction() Direction { return s.direction }

// ROC returns the current RTP rollover counter (the top 32 bits of the
// RDBX base index), for out-of-band synchronization per SPEC_FULL.md §E.3.
func (s *Stream) ROC() uint32 { return uint32(s.rtpRDBX.BaseIndex() >> 16) }

// SetROC forcibly sets the RTP rollover counter and resets the replay
// window, for out-of-band synchronization per SPEC_FULL.md §E.3.
func (s *Stream) SetROC(roc uint32) {
	s.rtpRDBX.SetBaseIndex(uint64(roc) << 16)
}

// Close releases the stream's owned cryptographic state. The derived key
// material itself is zeroized at the point of use in buildCryptoPair, not
// here; Close's job is to drop this stream's references so a cloned
// sibling or the template it came from is unaffected (spec §4.9) and the
// owned cipher/auth/limiter become eligible for collection.
func (s *Stream) Close() {
	if !s.isFromTemplate() {
		s.rtpCipher = nil
		s.rtpAuth = nil
		s.rtcpCipher = nil
		s.rtcpAuth = nil
		s.limiter = nil
	}
}
