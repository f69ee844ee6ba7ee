package srtp

import "github.com/pion/logging"

// Session is the root object: a map of concrete streams keyed by SSRC
// plus an optional template stream for wildcard policies (spec §3).
//
// Session is not safe for concurrent use; spec §5 requires the caller to
// serialize every call against a given session.
type Session struct {
	streams  map[uint32]*Stream
	template *Stream

	eventHandler EventHandler

	// keyHardLimit, when nonzero, is applied to every stream's limiter
	// as it's created (spec §4.4's ceiling has no protocol-level
	// default; a Session-wide default is this engine's convenience on
	// top of the per-stream Limiter.Set escape hatch).
	keyHardLimit uint64

	loggerFactory logging.LoggerFactory
	logger        logging.LeveledLogger
}

// SessionOption configures a Session at construction time, following the
// functional-options idiom the Pion sources use throughout (e.g.
// ReceiverInterceptorOption).
type SessionOption func(*Session)

// WithLoggerFactory overrides the default logging.LoggerFactory.
func WithLoggerFactory(lf logging.LoggerFactory) SessionOption {
	return func(s *Session) { s.loggerFactory = lf }
}

// WithEventHandler installs the handler invoked for ssrc_collision,
// key_soft_limit, key_hard_limit, and packet_index_limit events.
func WithEventHandler(h EventHandler) SessionOption {
	return func(s *Session) { s.eventHandler = h }
}

// WithKeyLimit sets the hard key-usage limit (spec §4.4) applied to every
// stream's Limiter as it is created by AddStream. A soft-limit warning is
// signalled at half of hardLimit; this option offers no other fraction,
// and Stream exposes no accessor for its limiter. Streams created before
// this option is set (there are none, since options run before any
// AddStream call) are unaffected.
func WithKeyLimit(hardLimit uint64) SessionOption {
	return func(s *Session) { s.keyHardLimit = hardLimit }
}

// NewSession constructs an empty Session with no streams.
func NewSession(opts ...SessionOption) *Session {
	s := &Session{streams: map[uint32]*Stream{}}
	for _, opt := range opts {
		opt(s)
	}
	if s.loggerFactory == nil {
		s.loggerFactory = logging.NewDefaultLoggerFactory()
	}
	s.logger = s.loggerFactory.NewLogger("srtp")
	return s
}

// Create builds a Session from a policy list, adding each in turn (spec
// §4.6). On any failure the session is torn down and the error returned.
func Create(policies []Policy, opts ...SessionOption) (*Session, error) {
	s := NewSession(opts...)
	for _, p := range policies {
		if err := s.AddStream(p); err != nil {
			s.Close()
			return nil, err
		}
	}
	return s, nil
}

// AddStream allocates a stream from policy and installs it per spec §4.6:
// a specific SSRC is pushed onto the concrete map; any_outbound or
// any_inbound installs (at most one) template with the corresponding
// bound direction; an undefined selector is ErrBadParam.
func (s *Session) AddStream(policy Policy) error {
	switch policy.SSRCSelector {
	case SSRCSpecific:
		if _, exists := s.streams[policy.SSRC]; exists {
			return ErrBadParam
		}
		stream, err := newStreamFromPolicy(policy.SSRC, policy)
		if err != nil {
			return err
		}
		if s.keyHardLimit > 0 {
			stream.limiter.Set(s.keyHardLimit)
		}
		s.streams[policy.SSRC] = stream
		s.logger.Tracef("added stream for ssrc %08x", policy.SSRC)
		return nil

	case SSRCAnyOutbound, SSRCAnyInbound:
		if s.template != nil {
			return ErrBadParam
		}
		stream, err := newStreamFromPolicy(0, policy)
		if err != nil {
			return err
		}
		if s.keyHardLimit > 0 {
			stream.limiter.Set(s.keyHardLimit)
		}
		if policy.SSRCSelector == SSRCAnyOutbound {
			stream.direction = DirectionSender
		} else {
			stream.direction = DirectionReceiver
		}
		s.template = stream
		s.logger.Tracef("installed %v template", stream.direction)
		return nil

	default:
		return ErrBadParam
	}
}

// GetStream returns the concrete stream for ssrc, if one exists. It does
// not consult the template: a template only materializes a concrete
// stream on first sighting via protect/unprotect (spec §4.9).
func (s *Session) GetStream(ssrc uint32) (*Stream, bool) {
	stream, ok := s.streams[ssrc]
	return stream, ok
}

// RemoveStream unlinks and deallocates a concrete stream, returning
// ErrNoCtx if absent (spec §4.6).
func (s *Session) RemoveStream(ssrc uint32) error {
	stream, ok := s.streams[ssrc]
	if !ok {
		return ErrNoCtx
	}
	stream.Close()
	delete(s.streams, ssrc)
	s.logger.Tracef("removed stream for ssrc %08x", ssrc)
	return nil
}

// Close tears down every concrete stream and the template, if any.
func (s *Session) Close() {
	for ssrc, stream := range s.streams {
		stream.Close()
		delete(s.streams, ssrc)
	}
	if s.template != nil {
		s.template.Close()
		s.template = nil
	}
}

// resolveSenderStream implements the stream-resolution half of spec
// §4.7 step 2 and §4.10 step 1: look up by ssrc, or clone the template
// (if any) as a new sender stream.
func (s *Session) resolveSenderStream(ssrc uint32) (*Stream, error) {
	if stream, ok := s.streams[ssrc]; ok {
		return stream, nil
	}
	if s.template == nil {
		return nil, ErrNoCtx
	}
	stream := s.template.clone(ssrc)
	stream.direction = DirectionSender
	s.streams[ssrc] = stream
	s.logger.Tracef("materialized stream for ssrc %08x from template", ssrc)
	return stream, nil
}

// resolveReceiverStream implements spec §4.8 step 2 / §4.11 step 1: look
// up by ssrc, or hand back the template itself as a provisional stream
// (not yet inserted into the concrete map — see commitProvisional).
func (s *Session) resolveReceiverStream(ssrc uint32) (stream *Stream, provisional bool, err error) {
	if stream, ok := s.streams[ssrc]; ok {
		return stream, false, nil
	}
	if s.template == nil {
		return nil, false, ErrNoCtx
	}
	return s.template, true, nil
}

// commitProvisional materializes the template into a concrete receiver
// stream for ssrc, called only after a provisional packet's
// authentication has passed (spec §4.8 step 11 / §4.11 step 10).
func (s *Session) commitProvisional(ssrc uint32) *Stream {
	stream := s.template.clone(ssrc)
	stream.direction = DirectionReceiver
	s.streams[ssrc] = stream
	s.logger.Tracef("materialized stream for ssrc %08x from template", ssrc)
	return stream
}
