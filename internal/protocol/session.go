package protocol

import (
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Heading is the compass direction a robot faces, encoded in degrees.
type Heading int

const (
	North Heading = 0
	East  Heading = 90
	South Heading = 180
	West  Heading = 270
)

func (h Heading) String() string {
	switch h {
	case North:
		return "NORTH"
	case East:
		return "EAST"
	case South:
		return "SOUTH"
	case West:
		return "WEST"
	default:
		return "UNKNOWN"
	}
}

// turnRight rotates a heading 90 degrees clockwise, modulo 360.
func (h Heading) turnRight() Heading { return Heading((int(h) + 90) % 360) }

// Position is a signed grid coordinate pair.
type Position struct {
	X int
	Y int
}

// axis selects which coordinate of a Position an operation acts on.
type axis int

const (
	axisX axis = iota
	axisY
)

func (p Position) get(a axis) int {
	if a == axisX {
		return p.X
	}
	return p.Y
}

// Transport is the connection surface a Session drives: byte stream plus
// a settable read deadline. *net.TCPConn (and net.Conn generally)
// satisfies it.
type Transport interface {
	io.Reader
	io.Writer
	io.Closer
	SetReadDeadline(t time.Time) error
}

// Session is the per-connection state that Run mutates. It is created on
// accept, owned exclusively by the goroutine running Run for it, and
// discarded when Run returns.
type Session struct {
	ID   uuid.UUID
	Log  *logrus.Entry
	Conn Transport

	channel *Channel

	Position   Position
	Heading    Heading
	Collisions int
}

// NewSession wires a Transport into a fresh Session with its framing and
// recharge layers constructed.
func NewSession(conn Transport, id uuid.UUID, log *logrus.Entry) *Session {
	return &Session{
		ID:      id,
		Log:     log,
		Conn:    conn,
		channel: NewChannel(conn, conn),
		Heading: North,
	}
}

// read is the sole read entry point every protocol layer above framing
// uses; it threads maxLen through the recharge-aware channel, which
// records LastResponse.
func (s *Session) read(maxLen int) (string, error) {
	return s.channel.Read(maxLen)
}

// lastResponse exposes the most recent response consumed, for tests and
// invariant checks.
func (s *Session) lastResponse() string { return s.channel.LastResponse }

// send writes msg followed by the protocol delimiter.
func (s *Session) send(msg string) error {
	_, err := s.Conn.Write(append([]byte(msg), 0x07, 0x08))
	return err
}

// addCollision increments the collision counter and reports whether the
// budget (COLLISION_LIMIT) has been exceeded.
func (s *Session) addCollision() bool {
	s.Collisions++
	return s.Collisions > CollisionLimit
}
