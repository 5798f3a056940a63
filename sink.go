package unabs

import (
	"strings"

	"github.com/aretw0/unabs/pkg/machine"
)

// outputChunk is the size at which buffered output is reported to hooks
// even without a newline.
const outputChunk = 1024

// hookSink forwards every rune to the underlying sink and reports output to
// a callback line by line, so hooks see text without a call per character.
type hookSink struct {
	out     machine.Sink
	pending strings.Builder
	report  func(string)
}

func newHookSink(out machine.Sink, report func(string)) *hookSink {
	return &hookSink{out: out, report: report}
}

func (s *hookSink) WriteRune(r rune) (int, error) {
	n, err := s.out.WriteRune(r)
	if err != nil {
		return n, err
	}
	s.pending.WriteRune(r)
	if r == '\n' || s.pending.Len() >= outputChunk {
		s.flush()
	}
	return n, nil
}

func (s *hookSink) flush() {
	if s.pending.Len() == 0 {
		return
	}
	chunk := s.pending.String()
	s.pending.Reset()
	s.report(chunk)
}
