package term

import (
	"unicode"
	"unicode/utf8"
)

// Parse reads a single program term from src.
// Anything other than whitespace and comments after the term is an error.
func Parse(src string) (Term, error) {
	p := &parser{src: src}
	t, err := p.term()
	if err != nil {
		return nil, err
	}
	p.skip()
	if p.pos < len(p.src) {
		r, _ := utf8.DecodeRuneInString(p.src[p.pos:])
		return nil, p.errorAt(p.pos, r, ErrUnexpectedChar)
	}
	return t, nil
}

// MustParse is like Parse but panics on malformed input.
func MustParse(src string) Term {
	t, err := Parse(src)
	if err != nil {
		panic(err)
	}
	return t
}

type parser struct {
	src string
	pos int
}

// skip advances past whitespace and comments.
func (p *parser) skip() {
	for p.pos < len(p.src) {
		r, size := utf8.DecodeRuneInString(p.src[p.pos:])
		switch {
		case r == '#':
			for p.pos < len(p.src) && p.src[p.pos] != '\n' {
				p.pos++
			}
		case unicode.IsSpace(r):
			p.pos += size
		default:
			return
		}
	}
}

// next returns the next significant rune and its offset.
func (p *parser) next() (rune, int, bool) {
	p.skip()
	if p.pos >= len(p.src) {
		return 0, p.pos, false
	}
	start := p.pos
	r, size := utf8.DecodeRuneInString(p.src[p.pos:])
	p.pos += size
	return r, start, true
}

func (p *parser) term() (Term, error) {
	r, at, ok := p.next()
	if !ok {
		return nil, p.errorAt(at, 0, ErrUnexpectedEOF)
	}
	switch r {
	case 'i':
		return NewAtom(I), nil
	case 's':
		return NewAtom(S), nil
	case 'k':
		return NewAtom(K), nil
	case 'v':
		return NewAtom(V), nil
	case 'd':
		return NewAtom(D), nil
	case 'c':
		return NewAtom(C), nil
	case 'r':
		return NewAtom(R), nil
	case '.':
		// The literal is taken verbatim: no whitespace or comment skipping.
		if p.pos >= len(p.src) {
			return nil, p.errorAt(p.pos, 0, ErrUnexpectedEOF)
		}
		c, size := utf8.DecodeRuneInString(p.src[p.pos:])
		p.pos += size
		return NewPut(c), nil
	case '`':
		left, err := p.term()
		if err != nil {
			return nil, err
		}
		right, err := p.term()
		if err != nil {
			return nil, err
		}
		return NewApp(left, right), nil
	default:
		return nil, p.errorAt(at, r, ErrUnexpectedChar)
	}
}

func (p *parser) errorAt(offset int, r rune, err error) *SyntaxError {
	line, col := 1, 1
	for _, c := range p.src[:offset] {
		if c == '\n' {
			line++
			col = 1
			continue
		}
		col++
	}
	return &SyntaxError{Offset: offset, Line: line, Column: col, Char: r, Err: err}
}
