package srtp

import (
	"errors"

	"github.com/gosrtp/srtpengine/auth"
	"github.com/gosrtp/srtpengine/keylimit"
	"github.com/gosrtp/srtpengine/replay"
	"github.com/pion/rtp"
)

// Protect transforms the RTP packet in buf[:packetLen] into its SRTP
// wire form in place and returns the new length. buf must have at least
// MaxTrailerLen spare bytes of capacity beyond packetLen (SPEC_FULL.md
// §E.5) so the authentication tag can be appended without reallocating.
//
// Implements spec §4.7.
func (s *Session) Protect(buf []byte, packetLen int) (int, error) {
	if packetLen < 12 {
		return 0, ErrBadParam
	}

	var hdr rtp.Header
	hdrLen, err := hdr.Unmarshal(buf[:packetLen])
	if err != nil {
		return 0, errorsWrap(ErrBadParam, err)
	}

	stream, err := s.resolveSenderStream(hdr.SSRC)
	if err != nil {
		return 0, err
	}

	if stream.direction == DirectionReceiver {
		s.emit(EventSSRCCollision, hdr.SSRC)
	} else if stream.direction == DirectionUnknown {
		stream.direction = DirectionSender
	}

	if fail := s.applyKeyLimit(stream, hdr.SSRC); fail != nil {
		return 0, fail
	}

	delta, est := stream.rtpRDBX.EstimateIndex(hdr.SequenceNumber)
	if err := stream.rtpRDBX.Check(delta); err != nil {
		return 0, mapReplayErr(err)
	}
	stream.rtpRDBX.AddIndex(delta)

	tagLen := 0
	if stream.rtpServices.Has(ServiceAuthentication) {
		tagLen = stream.rtpAuth.TagLength()
	}
	newLen, err := extendBuf(buf, packetLen+tagLen)
	if err != nil {
		return 0, err
	}

	iv := formSRTPIV(stream.rtpCipher.Type(), hdr.SSRC, est)
	if err := stream.rtpCipher.SetIV(iv); err != nil {
		s.logger.Errorf("srtp protect: set iv failed for ssrc %08x: %v", hdr.SSRC, err)
		return 0, errorsWrap(ErrCipherFail, err)
	}

	if stream.rtpServices.Has(ServiceAuthentication) {
		if prefixLen := stream.rtpAuth.PrefixLength(); prefixLen > 0 {
			if err := stream.rtpCipher.Output(newLen[packetLen:packetLen+prefixLen], prefixLen); err != nil {
				return 0, errorsWrap(ErrCipherFail, err)
			}
		}
	}

	if stream.rtpServices.Has(ServiceConfidentiality) {
		if err := stream.rtpCipher.Encrypt(newLen[hdrLen:packetLen]); err != nil {
			s.logger.Errorf("srtp protect: encrypt failed for ssrc %08x: %v", hdr.SSRC, err)
			return 0, errorsWrap(ErrCipherFail, err)
		}
	}

	if stream.rtpServices.Has(ServiceAuthentication) {
		roc := rocBigEndian(est)
		stream.rtpAuth.Start()
		stream.rtpAuth.Update(newLen[:packetLen])
		if err := stream.rtpAuth.Compute(roc[:], newLen[packetLen:packetLen+tagLen]); err != nil {
			s.logger.Errorf("srtp protect: auth compute failed for ssrc %08x: %v", hdr.SSRC, err)
			return 0, errorsWrap(ErrAuthFail, err)
		}
	}

	return packetLen + tagLen, nil
}

// Unprotect verifies and decrypts the SRTP packet in buf[:packetLen] in
// place and returns the new (shorter) length. Implements spec §4.8.
func (s *Session) Unprotect(buf []byte, packetLen int) (int, error) {
	if packetLen < 12 {
		return 0, ErrBadParam
	}

	var hdr rtp.Header
	hdrLen, err := hdr.Unmarshal(buf[:packetLen])
	if err != nil {
		return 0, errorsWrap(ErrBadParam, err)
	}

	stream, provisional, err := s.resolveReceiverStream(hdr.SSRC)
	if err != nil {
		return 0, err
	}

	var delta int64
	var est uint64
	if provisional {
		est = uint64(hdr.SequenceNumber)
		delta = int64(est)
	} else {
		delta, est = stream.rtpRDBX.EstimateIndex(hdr.SequenceNumber)
		if err := stream.rtpRDBX.Check(delta); err != nil {
			return 0, mapReplayErr(err)
		}
	}

	tagLen := 0
	if stream.rtpServices.Has(ServiceAuthentication) {
		tagLen = stream.rtpAuth.TagLength()
	}
	if packetLen < hdrLen+tagLen {
		return 0, ErrBadParam
	}
	cipherEnd := packetLen - tagLen

	iv := formSRTPIV(stream.rtpCipher.Type(), hdr.SSRC, est)
	if err := stream.rtpCipher.SetIV(iv); err != nil {
		return 0, errorsWrap(ErrCipherFail, err)
	}

	if stream.rtpServices.Has(ServiceAuthentication) {
		prefixLen := stream.rtpAuth.PrefixLength()
		var prefix []byte
		if prefixLen > 0 {
			prefix = make([]byte, prefixLen)
			if err := stream.rtpCipher.Output(prefix, prefixLen); err != nil {
				return 0, errorsWrap(ErrCipherFail, err)
			}
		}

		roc := rocBigEndian(est)
		tmpTag := make([]byte, tagLen)
		stream.rtpAuth.Start()
		stream.rtpAuth.Update(buf[:cipherEnd])
		if err := stream.rtpAuth.Compute(roc[:], tmpTag); err != nil {
			s.logger.Errorf("srtp unprotect: auth compute failed for ssrc %08x: %v", hdr.SSRC, err)
			return 0, errorsWrap(ErrAuthFail, err)
		}
		if !auth.ConstantTimeCompare(tmpTag, buf[cipherEnd:packetLen]) {
			s.logger.Errorf("srtp unprotect: tag mismatch for ssrc %08x", hdr.SSRC)
			return 0, ErrAuthFail
		}
	}

	if fail := s.applyKeyLimit(stream, hdr.SSRC); fail != nil {
		return 0, fail
	}

	if stream.rtpServices.Has(ServiceConfidentiality) {
		if err := stream.rtpCipher.Encrypt(buf[hdrLen:cipherEnd]); err != nil {
			s.logger.Errorf("srtp unprotect: decrypt failed for ssrc %08x: %v", hdr.SSRC, err)
			return 0, errorsWrap(ErrCipherFail, err)
		}
	}

	if stream.direction == DirectionSender {
		s.emit(EventSSRCCollision, hdr.SSRC)
	} else if stream.direction == DirectionUnknown {
		stream.direction = DirectionReceiver
	}

	if provisional {
		stream = s.commitProvisional(hdr.SSRC)
	}
	stream.rtpRDBX.AddIndex(delta)

	return cipherEnd, nil
}

// applyKeyLimit advances stream's key limiter and translates the
// resulting state into an event (and, for Hard, a failure), per spec
// §4.7 step 4 / §4.8 step 8. EventKeyHardLimit fires once, on the
// HardReached transition; every later call returns ErrKeyExpired
// without re-emitting it.
func (s *Session) applyKeyLimit(stream *Stream, ssrc uint32) error {
	switch stream.limiter.Update() {
	case keylimit.HardReached:
		s.emit(EventKeyHardLimit, ssrc)
	case keylimit.Hard:
		return ErrKeyExpired
	case keylimit.Soft:
		s.emit(EventKeySoftLimit, ssrc)
	}
	return nil
}

func mapReplayErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, replay.ErrReplayOld) {
		return errorsWrap(ErrReplayOld, err)
	}
	return errorsWrap(ErrReplayFail, err)
}

// extendBuf re-slices buf to newLen, which must not exceed cap(buf).
// Slicing up to cap (not just len) is legal for Go slices and is how
// the tag/trailer space reserved by the caller (SPEC_FULL.md §E.5) gets
// exposed for writing.
func extendBuf(buf []byte, newLen int) ([]byte, error) {
	if newLen > cap(buf) {
		return nil, ErrBadParam
	}
	return buf[:newLen], nil
}
