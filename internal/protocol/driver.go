package protocol

import (
	"errors"

	pkgerrors "github.com/pkg/errors"
)

// Run orchestrates the full lifespan of one session: authenticate, probe
// and navigate to the origin, retrieve the secret message, log out. It
// always closes the connection on return, and never panics — every error
// kind is mapped to either a wire-reported close or a silent one.
func Run(s *Session, sink MessageSink) {
	defer s.Conn.Close()

	err := s.Authenticate()
	if err == nil {
		err = s.Navigate()
	}
	if err == nil {
		err = s.PickupMessage(sink)
	}
	if err == nil {
		s.Log.Info("session completed")
		return
	}
	s.handleError(err)
}

// handleError maps a terminal session error to the appropriate exit path:
// wire-reportable kinds get their message written before close, timeouts
// and collision-budget overflow close the connection without a word.
func (s *Session) handleError(err error) {
	if IsSilent(err) {
		s.Log.WithError(err).Debug("session closed silently")
		return
	}

	var perr *ProtocolError
	if errors.As(err, &perr) {
		if sendErr := s.send(perr.WireText()); sendErr != nil {
			s.Log.WithError(sendErr).Warn("failed to report protocol error to peer")
		}
		s.Log.WithField("kind", perr.Kind).Warn("session terminated with protocol error")
		return
	}

	s.Log.WithError(pkgerrors.Wrap(err, "session terminated unexpectedly")).Warn("closing connection")
}
