package srtp

import "errors"

// Error kinds surfaced to callers, per spec §7.
var (
	// ErrBadParam covers malformed input: undersized packets, unknown
	// SSRC selectors, unsupported profiles.
	ErrBadParam = errors.New("srtp: bad parameter")
	// ErrAllocFail is returned when constructing session state fails.
	ErrAllocFail = errors.New("srtp: allocation failed")
	// ErrInitFail wraps a cipher or authenticator Init failure while a
	// stream's session keys are being installed.
	ErrInitFail = errors.New("srtp: initialization failed")
	// ErrNoCtx means no stream or template exists for the packet's SSRC.
	ErrNoCtx = errors.New("srtp: no context for ssrc")
	// ErrCipherFail wraps an internal cipher failure; the packet buffer
	// must be treated as poisoned by the caller.
	ErrCipherFail = errors.New("srtp: cipher failure")
	// ErrAuthFail covers both a MAC mismatch and an authenticator
	// internal failure.
	ErrAuthFail = errors.New("srtp: authentication failure")
	// ErrReplayFail means the packet index was already seen.
	ErrReplayFail = errors.New("srtp: replay detected")
	// ErrReplayOld means the packet index is older than the replay
	// window can represent.
	ErrReplayOld = errors.New("srtp: packet index too old")
	// ErrKeyExpired means the key's hard usage limit has been reached;
	// terminal for the owning stream.
	ErrKeyExpired = errors.New("srtp: key usage limit reached")
	// ErrNoSuchOp is returned for operations this core does not
	// implement (e.g. MKI-based rekeying, SPEC_FULL.md §E.2).
	ErrNoSuchOp = errors.New("srtp: operation not supported")
)
