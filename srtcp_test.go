package srtp

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestProtectUnprotectRTCPRoundTrip(t *testing.T) {
	sender := newTestSession(t, ProfileAES128CMHMACSHA1_80, SSRCSpecific, 0x321)
	receiver := newTestSession(t, ProfileAES128CMHMACSHA1_80, SSRCSpecific, 0x321)
	defer sender.Close()
	defer receiver.Close()

	plaintext := rtcpPacket(0x321)
	buf := withTrailerRoom(plaintext)

	n, err := sender.ProtectRTCP(buf, len(plaintext))
	require.NoError(t, err)
	require.Greater(t, n, len(plaintext))

	n2, err := receiver.UnprotectRTCP(buf, n)
	require.NoError(t, err)
	require.Equal(t, plaintext, buf[:n2])
}

func TestSRTCPSenderIndexStartsAtOneAndIncrements(t *testing.T) {
	sender := newTestSession(t, ProfileAES128CMHMACSHA1_80, SSRCSpecific, 0x654)
	defer sender.Close()

	for i := 0; i < 3; i++ {
		plaintext := rtcpPacket(0x654)
		buf := withTrailerRoom(plaintext)
		_, err := sender.ProtectRTCP(buf, len(plaintext))
		require.NoError(t, err)
	}

	stream, ok := sender.GetStream(0x654)
	require.True(t, ok)
	require.Equal(t, uint32(3), stream.rtcpRDB.GetValue())
}

func TestUnprotectRTCPRejectsReplay(t *testing.T) {
	sender := newTestSession(t, ProfileAES128CMHMACSHA1_80, SSRCSpecific, 0x999)
	receiver := newTestSession(t, ProfileAES128CMHMACSHA1_80, SSRCSpecific, 0x999)
	defer sender.Close()
	defer receiver.Close()

	plaintext := rtcpPacket(0x999)
	buf := withTrailerRoom(plaintext)
	n, err := sender.ProtectRTCP(buf, len(plaintext))
	require.NoError(t, err)
	replay := append([]byte(nil), buf[:n]...)

	_, err = receiver.UnprotectRTCP(buf[:n], n)
	require.NoError(t, err)

	_, err = receiver.UnprotectRTCP(replay, n)
	require.ErrorIs(t, err, ErrReplayFail)
}

func TestUnprotectRTCPRejectsTamperedTag(t *testing.T) {
	sender := newTestSession(t, ProfileAES128CMHMACSHA1_80, SSRCSpecific, 0x111)
	receiver := newTestSession(t, ProfileAES128CMHMACSHA1_80, SSRCSpecific, 0x111)
	defer sender.Close()
	defer receiver.Close()

	plaintext := rtcpPacket(0x111)
	buf := withTrailerRoom(plaintext)
	n, err := sender.ProtectRTCP(buf, len(plaintext))
	require.NoError(t, err)

	buf[n-1] ^= 0xFF // corrupt the last byte of the authentication tag

	_, err = receiver.UnprotectRTCP(buf, n)
	require.ErrorIs(t, err, ErrAuthFail)
}

func TestProtectRTCPRejectsUndersizedPacket(t *testing.T) {
	s := newTestSession(t, ProfileAES128CMHMACSHA1_80, SSRCSpecific, 1)
	defer s.Close()
	_, err := s.ProtectRTCP(make([]byte, 4), 4)
	require.ErrorIs(t, err, ErrBadParam)
}

func TestTemplateMaterializesRTCPStreamPerSSRC(t *testing.T) {
	key, salt := testMasterMaterial()
	senderPolicy, err := NewPolicy(ProfileAES128CMHMACSHA1_80, SSRCAnyOutbound, 0, key, salt)
	require.NoError(t, err)
	sender, err := Create([]Policy{senderPolicy})
	require.NoError(t, err)
	defer sender.Close()

	receiverPolicy, err := NewPolicy(ProfileAES128CMHMACSHA1_80, SSRCAnyInbound, 0, key, salt)
	require.NoError(t, err)
	receiver, err := Create([]Policy{receiverPolicy})
	require.NoError(t, err)
	defer receiver.Close()

	plaintext := rtcpPacket(0x700)
	buf := withTrailerRoom(plaintext)
	n, err := sender.ProtectRTCP(buf, len(plaintext))
	require.NoError(t, err)

	n2, err := receiver.UnprotectRTCP(buf, n)
	require.NoError(t, err)
	require.Equal(t, plaintext, buf[:n2])

	_, ok := receiver.GetStream(0x700)
	require.True(t, ok)
}
