package protocol

import (
	"bytes"
	"io"
)

// NoLengthCap disables the early-rejection length check in ReadResponse.
const NoLengthCap = -1

// Per-call length caps used by the protocol layers above Reader. Every cap
// is inclusive of the trailing two-byte delimiter.
const (
	CapFullPower       = 12
	CapUsername        = 20
	CapAuthKey         = 5
	CapClientConfirm   = 7
	CapMovementConfirm = 12
	CapMessage         = 100
)

// Reader re-assembles delimited messages out of arbitrary chunks read from
// an underlying byte stream, enforcing a per-call maximum length as bytes
// stream in rather than after the fact.
//
// A Reader is not safe for concurrent use; each session owns exactly one.
type Reader struct {
	src   io.Reader
	delim []byte
	chunk int

	pending   []string
	remainder []byte
}

// NewReader wraps src with delimited-message framing.
func NewReader(src io.Reader, opts ...Option) *Reader {
	o := defaultOptions
	for _, fn := range opts {
		fn(&o)
	}
	return &Reader{
		src:   src,
		delim: o.Delimiter,
		chunk: o.ChunkSize,
	}
}

// ReadResponse returns the next complete response, delimiter stripped.
//
// maxLen is the largest admissible size (including the delimiter) for this
// call site; pass NoLengthCap to disable the check. Already-queued
// responses from a prior over-read are never re-checked against a smaller
// maxLen passed here — the cap only guards bytes accumulated by this call.
func (r *Reader) ReadResponse(maxLen int) (string, error) {
	if len(r.pending) > 0 {
		resp := r.pending[0]
		r.pending = r.pending[1:]
		return resp, nil
	}

	buf := append([]byte(nil), r.remainder...)
	scratch := make([]byte, r.chunk)

	// The first accumulation happens unconditionally; the length cap is
	// only checked before a *subsequent* read is attempted, matching the
	// original: an initial recv() always runs, and only the while-loop's
	// repeat reads are gated by the expected-length check.
	for first := true; bytes.Index(buf, r.delim) == -1; first = false {
		if !first && maxLen != NoLengthCap && len(buf) >= maxLen {
			return "", ErrSyntax
		}
		n, err := r.src.Read(scratch)
		if n > 0 {
			buf = append(buf, scratch[:n]...)
		}
		if err != nil && bytes.Index(buf, r.delim) == -1 {
			return "", err
		}
	}
	r.queue(buf)

	resp := r.pending[0]
	r.pending = r.pending[1:]
	return resp, nil
}

// queue splits buf on every occurrence of the delimiter, appending all but
// the final segment to pending and keeping the final (possibly empty)
// segment as the new remainder.
func (r *Reader) queue(buf []byte) {
	for {
		idx := bytes.Index(buf, r.delim)
		if idx == -1 {
			r.remainder = append([]byte(nil), buf...)
			return
		}
		r.pending = append(r.pending, string(buf[:idx]))
		buf = buf[idx+len(r.delim):]
	}
}
