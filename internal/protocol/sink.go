package protocol

import (
	"fmt"
	"io"
)

// WriterSink delivers messages to an io.Writer, one per line. The
// production entry point wires this to os.Stdout; tests can substitute
// any io.Writer.
type WriterSink struct {
	w io.Writer
}

// NewWriterSink returns a MessageSink that writes each delivered message
// to w, one per line.
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

func (s *WriterSink) Deliver(message string) {
	fmt.Fprintln(s.w, message)
}
