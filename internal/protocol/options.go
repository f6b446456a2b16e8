package protocol

// Options configures a Reader's framing behavior.
//
// The zero value is never used directly; NewReader always starts from
// defaultOptions and applies the supplied Option funcs on top, mirroring
// the functional-options shape the rest of this package's transport
// layering uses.
type Options struct {
	// Delimiter is the byte sequence that terminates every message in
	// both directions. The protocol default is the two-byte sequence
	// 0x07 0x08 (BEL, BS).
	Delimiter []byte

	// ChunkSize is the number of bytes requested per underlying Read call
	// while accumulating a message. The protocol default is 512.
	ChunkSize int
}

var defaultOptions = Options{
	Delimiter: []byte{0x07, 0x08},
	ChunkSize: 512,
}

// Option mutates Options during Reader construction.
type Option func(*Options)

// WithDelimiter overrides the message-terminating byte sequence.
func WithDelimiter(delim []byte) Option {
	return func(o *Options) { o.Delimiter = delim }
}

// WithChunkSize overrides the number of bytes requested per underlying
// Read call while accumulating a message.
func WithChunkSize(n int) Option {
	return func(o *Options) { o.ChunkSize = n }
}
