package machine

import (
	"io"
	"unicode/utf8"
)

// Sink receives the characters a program prints, one rune per Put0
// application. *bufio.Writer, *strings.Builder and *bytes.Buffer satisfy it.
type Sink interface {
	WriteRune(r rune) (int, error)
}

// Discard is a Sink that drops everything.
var Discard Sink = discard{}

type discard struct{}

func (discard) WriteRune(r rune) (int, error) { return utf8.RuneLen(r), nil }

// NewWriterSink adapts w to a Sink. Writers that already implement WriteRune
// are returned unchanged.
func NewWriterSink(w io.Writer) Sink {
	if s, ok := w.(Sink); ok {
		return s
	}
	return &writerSink{w: w}
}

type writerSink struct {
	w   io.Writer
	buf [utf8.UTFMax]byte
}

func (s *writerSink) WriteRune(r rune) (int, error) {
	n := utf8.EncodeRune(s.buf[:], r)
	return s.w.Write(s.buf[:n])
}

// Tee returns a Sink that writes every rune to each of sinks in order,
// stopping at the first error.
func Tee(sinks ...Sink) Sink {
	return teeSink(sinks)
}

type teeSink []Sink

func (t teeSink) WriteRune(r rune) (int, error) {
	n := 0
	for _, s := range t {
		var err error
		if n, err = s.WriteRune(r); err != nil {
			return n, err
		}
	}
	return n, nil
}
