package srtp

// EventKind identifies one of the four event categories spec §6 names.
type EventKind int

const (
	// EventSSRCCollision fires when a stream bound to one direction
	// (sender or receiver) is used for the opposite operation.
	EventSSRCCollision EventKind = iota
	// EventKeySoftLimit fires once when a stream's key usage crosses
	// its soft limit.
	EventKeySoftLimit
	// EventKeyHardLimit fires once when a stream's key usage reaches
	// its hard limit. The triggering packet still completes; every
	// later protect/unprotect call on the stream fails.
	EventKeyHardLimit
	// EventPacketIndexLimit fires when an RTCP sender index would
	// overflow past 2^31-1.
	EventPacketIndexLimit
)

func (k EventKind) String() string {
	switch k {
	case EventSSRCCollision:
		return "ssrc_collision"
	case EventKeySoftLimit:
		return "key_soft_limit"
	case EventKeyHardLimit:
		return "key_hard_limit"
	case EventPacketIndexLimit:
		return "packet_index_limit"
	default:
		return "unknown_event"
	}
}

// Event is delivered to a Session's EventHandler.
type Event struct {
	Kind EventKind
	SSRC uint32
}

// EventHandler receives events raised synchronously from the data path.
// Spec §5: the handler runs on the calling goroutine and must not
// recurse into the session that invoked it.
type EventHandler func(Event)

func (s *Session) emit(kind EventKind, ssrc uint32) {
	switch kind {
	case EventSSRCCollision:
		s.logger.Warnf("ssrc collision on %08x", ssrc)
	case EventKeySoftLimit:
		s.logger.Warnf("key soft limit reached on ssrc %08x", ssrc)
	case EventKeyHardLimit:
		s.logger.Warnf("key hard limit reached on ssrc %08x", ssrc)
	case EventPacketIndexLimit:
		s.logger.Warnf("srtcp packet index limit reached on ssrc %08x", ssrc)
	}
	if s.eventHandler != nil {
		s.eventHandler(Event{Kind: kind, SSRC: ssrc})
	}
}
