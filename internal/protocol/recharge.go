package protocol

import (
	"io"
	"time"
)

// Deadliner is the subset of net.Conn this package needs in order to
// stretch and restore read deadlines around the RECHARGING sub-state.
type Deadliner interface {
	SetReadDeadline(t time.Time) error
}

const fullPower = "FULL POWER"
const recharging = "RECHARGING"

// Channel wraps a Reader and transparently absorbs the RECHARGING /
// FULL POWER sub-state: every response a caller sees has already had any
// RECHARGING...FULL POWER pair peeled off, and every read — including the
// one waiting out FULL POWER — is governed by its own deadline.
//
// Authentication and navigation code above Channel never observes
// RECHARGING or FULL POWER directly.
type Channel struct {
	reader *Reader
	conn   Deadliner

	// LastResponse is the most recent response string consumed. After a
	// successful Read it is the response returned to the caller; while a
	// RECHARGING/FULL POWER pair is being absorbed it holds that pair's
	// latest message, so after a failed Read it may be RECHARGING or
	// FULL POWER.
	LastResponse string
}

// NewChannel wraps src (read through conn's deadline control) with a
// recharge-aware Reader.
func NewChannel(src io.Reader, conn Deadliner, opts ...Option) *Channel {
	return &Channel{
		reader: NewReader(src, opts...),
		conn:   conn,
	}
}

// Read returns the next response meaningful to the caller, re-applying
// maxLen to the actually-awaited response after any RECHARGING interlude.
func (c *Channel) Read(maxLen int) (string, error) {
	for {
		if err := c.conn.SetReadDeadline(time.Now().Add(NormalTimeout)); err != nil {
			return "", err
		}
		resp, err := c.reader.ReadResponse(maxLen)
		if err != nil {
			return "", err
		}

		if resp != recharging {
			c.LastResponse = resp
			return resp, nil
		}

		c.LastResponse = recharging
		if err := c.conn.SetReadDeadline(time.Now().Add(RechargeTimeout)); err != nil {
			return "", err
		}
		full, err := c.reader.ReadResponse(CapFullPower)
		if err != nil {
			return "", err
		}
		if full != fullPower {
			return "", ErrLogic
		}
		c.LastResponse = full
		// Loop back around to (re-)read the response the caller actually
		// asked for, under the restored normal timeout and original maxLen.
	}
}
