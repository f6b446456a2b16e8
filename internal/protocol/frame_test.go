package protocol_test

import (
	"bytes"
	"errors"
	"io"
	"testing"

	proto "github.com/rifett/tcprobots/internal/protocol"
)

// chunkedReader serves src to callers in pieces of at most chunkSize bytes
// per Read, so tests can exercise re-assembly across arbitrary TCP chunking
// without a real socket.
type chunkedReader struct {
	src       []byte
	chunkSize int
}

func (r *chunkedReader) Read(p []byte) (int, error) {
	if len(r.src) == 0 {
		return 0, io.EOF
	}
	n := r.chunkSize
	if n > len(p) {
		n = len(p)
	}
	if n > len(r.src) {
		n = len(r.src)
	}
	copy(p, r.src[:n])
	r.src = r.src[n:]
	return n, nil
}

func TestReadResponse_ChunkedAcrossArbitraryBoundaries(t *testing.T) {
	stream := []byte("Umpa_")
	stream = append(stream, "Lumpa\a"...)
	stream = append(stream, "\b0\a\b"...)

	r := proto.NewReader(&chunkedReader{src: stream, chunkSize: 3})

	got, err := r.ReadResponse(proto.NoLengthCap)
	if err != nil {
		t.Fatalf("first read: %v", err)
	}
	if got != "Umpa_Lumpa" {
		t.Fatalf("got %q want %q", got, "Umpa_Lumpa")
	}

	got, err = r.ReadResponse(proto.NoLengthCap)
	if err != nil {
		t.Fatalf("second read: %v", err)
	}
	if got != "0" {
		t.Fatalf("got %q want %q", got, "0")
	}
}

func TestReadResponse_LengthCapRejectsBeforeDelimiter(t *testing.T) {
	src := bytes.Repeat([]byte("x"), 25)
	r := proto.NewReader(bytes.NewReader(src))

	_, err := r.ReadResponse(proto.CapUsername)
	if !errors.Is(err, proto.ErrSyntax) {
		t.Fatalf("err=%v want ErrSyntax", err)
	}
}

func TestReadResponse_QueuedEntriesNotReLengthChecked(t *testing.T) {
	// Two messages arrive in a single underlying chunk; the second, already
	// queued by the first call, is longer than the cap of 5 passed to the
	// later call and must not be re-checked against it.
	src := []byte("a-message-longer-than-five\a\bhello-there\a\b")
	r := proto.NewReader(bytes.NewReader(src))

	first, err := r.ReadResponse(proto.NoLengthCap)
	if err != nil {
		t.Fatalf("first read: %v", err)
	}
	if first != "a-message-longer-than-five" {
		t.Fatalf("got %q", first)
	}

	second, err := r.ReadResponse(5)
	if err != nil {
		t.Fatalf("second read (queued, cap=5): %v", err)
	}
	if second != "hello-there" {
		t.Fatalf("got %q want %q", second, "hello-there")
	}
}

func TestReadResponse_PropagatesUnderlyingReadError(t *testing.T) {
	r := proto.NewReader(&erroringReader{err: io.ErrClosedPipe})
	_, err := r.ReadResponse(proto.NoLengthCap)
	if !errors.Is(err, io.ErrClosedPipe) {
		t.Fatalf("err=%v want io.ErrClosedPipe", err)
	}
}

type erroringReader struct{ err error }

func (r *erroringReader) Read([]byte) (int, error) { return 0, r.err }
