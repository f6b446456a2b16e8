// Package server implements the TCP accept loop and per-connection
// supervision around the protocol driver. It binds a listening socket,
// spawns one driver per accepted connection, and does nothing else.
package server

import (
	"context"
	"fmt"
	"net"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/rifett/tcprobots/internal/protocol"
)

// Listen binds a TCP listener on localhost, probing ports upward from
// startPort until one binds.
func Listen(startPort int) (net.Listener, int, error) {
	port := startPort
	for {
		ln, err := net.Listen("tcp", fmt.Sprintf("localhost:%d", port))
		if err == nil {
			return ln, ln.Addr().(*net.TCPAddr).Port, nil
		}
		port++
	}
}

// Server accepts connections and spawns one independent protocol driver
// per connection; drivers share no mutable state with one another.
type Server struct {
	Log  *logrus.Logger
	Sink protocol.MessageSink
}

// New builds a Server that logs through log and delivers retrieved
// messages to sink.
func New(log *logrus.Logger, sink protocol.MessageSink) *Server {
	return &Server{Log: log, Sink: sink}
}

// Serve accepts connections from ln until ctx is cancelled, at which point
// it stops accepting and waits for every in-flight session to run to
// completion. Sessions are not interrupted; each of their reads stays
// bounded by its own deadline. It never reaches into a session's per-read
// timeout logic.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		<-ctx.Done()
		return ln.Close()
	})

	for {
		conn, err := ln.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return g.Wait()
			default:
				return err
			}
		}
		g.Go(func() error {
			s.handle(conn)
			return nil
		})
	}
}

// handle builds a fresh Session for conn and runs its driver to
// completion. It never returns an error: every session failure is
// resolved (wire-reported or silent) inside protocol.Run.
func (s *Server) handle(conn net.Conn) {
	id := uuid.New()
	log := s.Log.WithFields(logrus.Fields{
		"session_id":  id.String(),
		"remote_addr": conn.RemoteAddr().String(),
	})
	log.Info("session accepted")

	sess := protocol.NewSession(conn, id, log)
	protocol.Run(sess, s.Sink)
}
