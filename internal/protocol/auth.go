package protocol

import (
	"strconv"
	"strings"
)

// keyPair is a server/client hash-add pair, indexed by the key the client
// sends during authentication.
type keyPair struct {
	server int
	client int
}

// keyTable is the five fixed (server, client) hash-add pairs used by the
// mutual challenge. It is process-wide read-only configuration.
var keyTable = [5]keyPair{
	{23019, 32037},
	{32037, 29295},
	{18789, 13603},
	{16443, 29533},
	{18189, 21952},
}

const hashModulus = 65536

// usernameHash sums the raw UTF-8 byte values of username, multiplies by
// 1000, and reduces modulo 65536. Preserved byte-for-byte from the
// original: non-ASCII usernames hash over bytes, not runes.
func usernameHash(username string) int {
	sum := 0
	for i := 0; i < len(username); i++ {
		sum += int(username[i])
	}
	return (sum * 1000) % hashModulus
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// Authenticate runs the username + keyed-hash challenge-response exchange.
// On success it returns nil. A protocol violation is returned as a
// *ProtocolError the caller must report on the wire before closing; a
// transport error (such as a read deadline) is returned unchanged.
func (s *Session) Authenticate() error {
	username, err := s.read(CapUsername)
	if err != nil {
		return err
	}
	if len(username) > 18 {
		return ErrSyntax
	}

	if err := s.send("107 KEY REQUEST"); err != nil {
		return err
	}

	keyStr, err := s.read(CapAuthKey)
	if err != nil {
		return err
	}
	if !isAllDigits(keyStr) {
		return ErrSyntax
	}
	key, convErr := strconv.Atoi(keyStr)
	if convErr != nil {
		return ErrSyntax
	}
	if key < 0 || key > 4 {
		return ErrKeyOutOfRange
	}

	uHash := usernameHash(username)
	pair := keyTable[key]
	serverHash := (uHash + pair.server) % hashModulus
	if err := s.send(strconv.Itoa(serverHash)); err != nil {
		return err
	}

	confirm, err := s.read(CapClientConfirm)
	if err != nil {
		return err
	}
	if len(confirm) > 5 || !isAllDigits(confirm) {
		return ErrSyntax
	}
	confirmVal, convErr := strconv.Atoi(confirm)
	if convErr != nil {
		return ErrSyntax
	}
	expectedClient := (uHash + pair.client) % hashModulus
	if confirmVal != expectedClient {
		return ErrLoginFailed
	}

	return s.send("200 OK")
}

// parseMovementConfirm validates and parses an "OK <x> <y>" response.
func parseMovementConfirm(resp string) (Position, error) {
	fields := strings.Split(resp, " ")
	if len(fields) != 3 || fields[0] != "OK" {
		return Position{}, ErrSyntax
	}
	x, errX := strconv.Atoi(fields[1])
	y, errY := strconv.Atoi(fields[2])
	if errX != nil || errY != nil {
		return Position{}, ErrSyntax
	}
	return Position{X: x, Y: y}, nil
}
