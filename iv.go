package srtp

import (
	"encoding/binary"

	"github.com/gosrtp/srtpengine/cipher"
)

// formSRTPIV builds the 128-bit IV for an SRTP packet per spec §4.7
// step 8 / §6. AES-ICM uses four big-endian 32-bit words
// [0, SSRC, EST>>16, EST<<16]; every other cipher family uses
// [0 (8 bytes), EST (8 bytes, big-endian)].
func formSRTPIV(cipherType cipher.Type, ssrc uint32, est uint64) [16]byte {
	var iv [16]byte
	switch cipherType {
	case cipher.TypeAESICM:
		binary.BigEndian.PutUint32(iv[4:8], ssrc)
		binary.BigEndian.PutUint32(iv[8:12], uint32(est>>16))
		binary.BigEndian.PutUint32(iv[12:16], uint32(est<<16))
	default:
		binary.BigEndian.PutUint64(iv[8:16], est)
	}
	return iv
}

// formSRTCPIV builds the 128-bit IV for an SRTCP packet per spec §4.10
// step 7 / §6, using the 31-bit sender/receive index in place of the
// 48-bit extended index.
func formSRTCPIV(cipherType cipher.Type, ssrc uint32, index uint32) [16]byte {
	return formSRTPIV(cipherType, ssrc, uint64(index))
}

// rocBigEndian returns the 4-byte big-endian rollover counter fed to the
// authenticator as the extra "M = Authenticated Portion || ROC" input
// (spec §4.2, §4.7 step 12): the top 32 bits of est after the <<16
// transformation, i.e. the ROC in network byte order.
func rocBigEndian(est uint64) [4]byte {
	var roc [4]byte
	binary.BigEndian.PutUint32(roc[:], uint32(est>>16))
	return roc
}
