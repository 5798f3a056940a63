package term

import (
	"errors"
	"fmt"
)

var (
	// ErrUnexpectedEOF is returned when the source ends before a term is complete.
	ErrUnexpectedEOF = errors.New("unexpected end of input")

	// ErrUnexpectedChar is returned for a character that cannot start a term,
	// or for input left over after the program term.
	ErrUnexpectedChar = errors.New("unexpected character")
)

// SyntaxError describes malformed program text.
type SyntaxError struct {
	Offset int // byte offset into the source
	Line   int // 1-based
	Column int // 1-based, in runes
	Char   rune
	Err    error
}

func (e *SyntaxError) Error() string {
	if errors.Is(e.Err, ErrUnexpectedEOF) {
		return fmt.Sprintf("%d:%d: %v", e.Line, e.Column, e.Err)
	}
	return fmt.Sprintf("%d:%d: %v %q", e.Line, e.Column, e.Err, e.Char)
}

func (e *SyntaxError) Unwrap() error { return e.Err }
