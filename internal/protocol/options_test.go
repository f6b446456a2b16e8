package protocol_test

import (
	"bytes"
	"testing"

	proto "github.com/rifett/tcprobots/internal/protocol"
)

func TestReadResponse_WithDelimiterOverride(t *testing.T) {
	src := []byte("hello|world|")
	r := proto.NewReader(bytes.NewReader(src), proto.WithDelimiter([]byte{'|'}))

	first, err := r.ReadResponse(proto.NoLengthCap)
	if err != nil {
		t.Fatalf("first read: %v", err)
	}
	if first != "hello" {
		t.Fatalf("got %q want %q", first, "hello")
	}

	second, err := r.ReadResponse(proto.NoLengthCap)
	if err != nil {
		t.Fatalf("second read: %v", err)
	}
	if second != "world" {
		t.Fatalf("got %q want %q", second, "world")
	}
}

func TestReadResponse_WithChunkSizeOverride(t *testing.T) {
	// chunkSize=1 forces ReadResponse to reassemble the message one byte
	// at a time regardless of how much the underlying reader could serve
	// in a single call.
	src := bytes.NewReader([]byte("ab\a\b"))
	r := proto.NewReader(src, proto.WithChunkSize(1))

	got, err := r.ReadResponse(proto.NoLengthCap)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got != "ab" {
		t.Fatalf("got %q want %q", got, "ab")
	}
}
