package srtp

import (
	"encoding/binary"

	"github.com/gosrtp/srtpengine/auth"
	"github.com/pion/rtcp"
)

const (
	rtcpHeaderLen  = 8 // 4-byte common header + 4-byte SSRC, spec §4.10
	rtcpTrailerLen = 4
	rtcpEBit       = 0x80000000
	rtcpIndexMask  = 0x7FFFFFFF
)

// ProtectRTCP transforms the RTCP packet in buf[:packetLen] into its
// SRTCP wire form in place and returns the new length. Implements spec
// §4.10. Authentication is always applied to SRTCP regardless of the
// policy's services mask (step 10); only confidentiality is optional.
func (s *Session) ProtectRTCP(buf []byte, packetLen int) (int, error) {
	if packetLen < rtcpHeaderLen {
		return 0, ErrBadParam
	}

	var hdr rtcp.Header
	if err := hdr.Unmarshal(buf[:packetLen]); err != nil {
		return 0, errorsWrap(ErrBadParam, err)
	}
	ssrc := binary.BigEndian.Uint32(buf[4:8])

	stream, err := s.resolveSenderStream(ssrc)
	if err != nil {
		return 0, err
	}
	if stream.direction == DirectionReceiver {
		s.emit(EventSSRCCollision, ssrc)
	} else if stream.direction == DirectionUnknown {
		stream.direction = DirectionSender
	}

	seqNum, err := stream.rtcpRDB.Increment()
	if err != nil {
		s.emit(EventPacketIndexLimit, ssrc)
		return 0, errorsWrap(ErrBadParam, err)
	}

	tagLen := stream.rtcpAuth.TagLength()
	newLen, err := extendBuf(buf, packetLen+rtcpTrailerLen+tagLen)
	if err != nil {
		return 0, err
	}

	encrypting := stream.rtcpServices.Has(ServiceConfidentiality)

	iv := formSRTCPIV(stream.rtcpCipher.Type(), ssrc, seqNum)
	if err := stream.rtcpCipher.SetIV(iv); err != nil {
		return 0, errorsWrap(ErrCipherFail, err)
	}

	trailer := seqNum & rtcpIndexMask
	if encrypting {
		trailer |= rtcpEBit
	}

	if prefixLen := stream.rtcpAuth.PrefixLength(); prefixLen > 0 {
		if err := stream.rtcpCipher.Output(newLen[packetLen+rtcpTrailerLen:packetLen+rtcpTrailerLen+prefixLen], prefixLen); err != nil {
			return 0, errorsWrap(ErrCipherFail, err)
		}
	}

	if encrypting {
		if err := stream.rtcpCipher.Encrypt(newLen[rtcpHeaderLen:packetLen]); err != nil {
			s.logger.Errorf("srtcp protect: encrypt failed for ssrc %08x: %v", ssrc, err)
			return 0, errorsWrap(ErrCipherFail, err)
		}
	}

	binary.BigEndian.PutUint32(newLen[packetLen:packetLen+rtcpTrailerLen], trailer)

	stream.rtcpAuth.Start()
	stream.rtcpAuth.Update(newLen[:packetLen+rtcpTrailerLen])
	if err := stream.rtcpAuth.Compute(nil, newLen[packetLen+rtcpTrailerLen:packetLen+rtcpTrailerLen+tagLen]); err != nil {
		s.logger.Errorf("srtcp protect: auth compute failed for ssrc %08x: %v", ssrc, err)
		return 0, errorsWrap(ErrAuthFail, err)
	}

	return packetLen + rtcpTrailerLen + tagLen, nil
}

// UnprotectRTCP verifies and decrypts the SRTCP packet in buf[:packetLen]
// in place and returns the new (shorter) length. Implements spec §4.11.
func (s *Session) UnprotectRTCP(buf []byte, packetLen int) (int, error) {
	if packetLen < rtcpHeaderLen {
		return 0, ErrBadParam
	}

	var hdr rtcp.Header
	if err := hdr.Unmarshal(buf[:packetLen]); err != nil {
		return 0, errorsWrap(ErrBadParam, err)
	}
	ssrc := binary.BigEndian.Uint32(buf[4:8])

	stream, provisional, err := s.resolveReceiverStream(ssrc)
	if err != nil {
		return 0, err
	}

	tagLen := stream.rtcpAuth.TagLength()
	if packetLen < rtcpHeaderLen+rtcpTrailerLen+tagLen {
		return 0, ErrBadParam
	}
	trailerOffset := packetLen - tagLen - rtcpTrailerLen
	trailer := binary.BigEndian.Uint32(buf[trailerOffset : trailerOffset+rtcpTrailerLen])
	seqNum := trailer & rtcpIndexMask
	encrypted := trailer&rtcpEBit != 0

	if !provisional {
		if err := stream.rtcpRDB.Check(seqNum); err != nil {
			return 0, mapReplayErr(err)
		}
	}

	cipherEnd := trailerOffset
	authEnd := trailerOffset + rtcpTrailerLen

	iv := formSRTCPIV(stream.rtcpCipher.Type(), ssrc, seqNum)
	if err := stream.rtcpCipher.SetIV(iv); err != nil {
		return 0, errorsWrap(ErrCipherFail, err)
	}

	prefixLen := stream.rtcpAuth.PrefixLength()
	if prefixLen > 0 {
		prefix := make([]byte, prefixLen)
		if err := stream.rtcpCipher.Output(prefix, prefixLen); err != nil {
			return 0, errorsWrap(ErrCipherFail, err)
		}
	}

	tmpTag := make([]byte, tagLen)
	stream.rtcpAuth.Start()
	stream.rtcpAuth.Update(buf[:authEnd])
	if err := stream.rtcpAuth.Compute(nil, tmpTag); err != nil {
		s.logger.Errorf("srtcp unprotect: auth compute failed for ssrc %08x: %v", ssrc, err)
		return 0, errorsWrap(ErrAuthFail, err)
	}
	if !auth.ConstantTimeCompare(tmpTag, buf[authEnd:packetLen]) {
		s.logger.Errorf("srtcp unprotect: tag mismatch for ssrc %08x", ssrc)
		return 0, ErrAuthFail
	}

	if encrypted {
		if err := stream.rtcpCipher.Encrypt(buf[rtcpHeaderLen:cipherEnd]); err != nil {
			s.logger.Errorf("srtcp unprotect: decrypt failed for ssrc %08x: %v", ssrc, err)
			return 0, errorsWrap(ErrCipherFail, err)
		}
	}

	if stream.direction == DirectionSender {
		s.emit(EventSSRCCollision, ssrc)
	} else if stream.direction == DirectionUnknown {
		stream.direction = DirectionReceiver
	}

	if provisional {
		stream = s.commitProvisional(ssrc)
	}
	stream.rtcpRDB.AddIndex(seqNum)

	return cipherEnd, nil
}
