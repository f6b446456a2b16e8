package protocol

// sendMoveCommand sends cmd, reads the one movement confirmation that must
// follow it, and updates the session's Position from it.
func (s *Session) sendMoveCommand(cmd string) (Position, error) {
	if err := s.send(cmd); err != nil {
		return Position{}, err
	}
	resp, err := s.read(CapMovementConfirm)
	if err != nil {
		return Position{}, err
	}
	pos, err := parseMovementConfirm(resp)
	if err != nil {
		return Position{}, err
	}
	s.Position = pos
	return pos, nil
}

// probeInitialConditions infers Heading from the displacement caused by a
// TURN LEFT followed by a MOVE. Position is already known from any prior
// confirmation; Heading is not tracked through the turn itself — only the
// subsequent displacement decides it.
func (s *Session) probeInitialConditions() error {
	for {
		oldPos, err := s.sendMoveCommand("103 TURN LEFT")
		if err != nil {
			return err
		}
		newPos, err := s.sendMoveCommand("102 MOVE")
		if err != nil {
			return err
		}

		switch {
		case newPos.Y == oldPos.Y && newPos.X > oldPos.X:
			s.Heading = East
			return nil
		case newPos.Y == oldPos.Y && newPos.X < oldPos.X:
			s.Heading = West
			return nil
		case newPos.X == oldPos.X && newPos.Y > oldPos.Y:
			s.Heading = North
			return nil
		case newPos.X == oldPos.X && newPos.Y < oldPos.Y:
			s.Heading = South
			return nil
		default:
			// Position unchanged on both axes: a collision. Retry the probe
			// from a fresh TURN LEFT.
			if s.addCollision() {
				return ErrCollisionLimit
			}
		}
	}
}

// rotate turns the robot right in place until Heading equals target.
func (s *Session) rotate(target Heading) error {
	for s.Heading != target {
		if _, err := s.sendMoveCommand("104 TURN RIGHT"); err != nil {
			return err
		}
		s.Heading = s.Heading.turnRight()
	}
	return nil
}

// walk moves the robot until Position's a-axis coordinate reaches zero,
// running the obstacle-avoidance maneuver on every collision.
func (s *Session) walk(a axis) error {
	for s.Position.get(a) != 0 {
		old := s.Position.get(a)
		if _, err := s.sendMoveCommand("102 MOVE"); err != nil {
			return err
		}
		if s.Position.get(a) == old {
			if s.addCollision() {
				return ErrCollisionLimit
			}
			if err := s.avoidObstacle(a); err != nil {
				return err
			}
		}
	}
	return nil
}

// avoidObstacle sidesteps a single obstacle to the robot's immediate front
// by going around its left side. It does not update Heading:
// the maneuver is net-zero rotation and the walker resumes assuming
// Heading unchanged.
func (s *Session) avoidObstacle(a axis) error {
	for _, cmd := range []string{"103 TURN LEFT", "102 MOVE", "104 TURN RIGHT", "102 MOVE"} {
		if _, err := s.sendMoveCommand(cmd); err != nil {
			return err
		}
	}

	if s.Position.get(a) == 0 {
		// Target row/column reached mid-maneuver; hand control back to walk.
		return nil
	}

	for _, cmd := range []string{"102 MOVE", "104 TURN RIGHT", "102 MOVE", "103 TURN LEFT"} {
		if _, err := s.sendMoveCommand(cmd); err != nil {
			return err
		}
	}
	return nil
}

// Navigate drives the robot from its probed initial position to (0, 0),
// closing the X axis gap before the Y axis gap.
func (s *Session) Navigate() error {
	if err := s.probeInitialConditions(); err != nil {
		return err
	}

	if s.Position.X > 0 {
		if err := s.rotate(West); err != nil {
			return err
		}
	} else if s.Position.X < 0 {
		if err := s.rotate(East); err != nil {
			return err
		}
	}
	if err := s.walk(axisX); err != nil {
		return err
	}

	if s.Position.Y > 0 {
		if err := s.rotate(South); err != nil {
			return err
		}
	} else if s.Position.Y < 0 {
		if err := s.rotate(North); err != nil {
			return err
		}
	}
	return s.walk(axisY)
}

// MessageSink receives a secret message retrieved from a session.
type MessageSink interface {
	Deliver(message string)
}

// PickupMessage requests the secret message, delivers it to sink, and logs
// the robot out.
func (s *Session) PickupMessage(sink MessageSink) error {
	if err := s.send("105 GET MESSAGE"); err != nil {
		return err
	}
	msg, err := s.read(CapMessage)
	if err != nil {
		return err
	}
	sink.Deliver(msg)
	return s.send("106 LOGOUT")
}
