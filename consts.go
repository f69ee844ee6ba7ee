package srtp

// MaxTrailerLen is the largest trailer Protect/ProtectRTCP can append to
// a packet under the profiles this core supports: the widest
// authentication tag (10 bytes) plus the 4-byte SRTCP index/E-bit
// trailer. Per SPEC_FULL.md §E.5, callers must leave at least this many
// spare bytes of capacity past the plaintext packet length before
// calling Protect or ProtectRTCP.
const MaxTrailerLen = 10 + 4
