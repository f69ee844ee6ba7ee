// Package srtp implements the Secure Real-time Transport Protocol (SRTP)
// and its companion control protocol SRTCP, as defined in RFC 3711.
//
// A Session holds zero or more Streams, one per SSRC, plus at most one
// template stream used to materialize streams for SSRCs seen for the
// first time. Protect/Unprotect transform RTP packets; ProtectRTCP/
// UnprotectRTCP transform RTCP packets. Callers construct policies with
// NewPolicy (for the baseline RFC 3711 profiles) or by building a Policy
// directly for custom cipher/authenticator/key-length combinations.
package srtp
