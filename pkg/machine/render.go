package machine

import (
	"strings"
	"unicode/utf8"

	"github.com/aretw0/unabs/pkg/term"
)

// DefaultRenderLimit bounds the text of the String methods of states,
// values and continuations. A captured continuation prints every frame it
// holds, and frames may hold further captures of the same tails, so the
// full text can be exponentially larger than the machine itself.
const DefaultRenderLimit = 64 << 10

// Elision ends a rendering cut short by its limit.
const Elision = "..."

// RenderState renders s like s.String, stopping after limit bytes.
// A limit of zero or less renders everything.
func RenderState(s State, limit int) string {
	p := &printer{limit: limit}
	p.state(s)
	return p.String()
}

// RenderValue renders v like v.String, stopping after limit bytes.
func RenderValue(v Value, limit int) string {
	p := &printer{limit: limit}
	p.value(v)
	return p.String()
}

// RenderKont renders k like KontString, stopping after limit bytes.
func RenderKont(k Kont, limit int) string {
	p := &printer{limit: limit}
	p.kont(k)
	return p.String()
}

// printer writes left to right and drops everything once the limit is hit,
// so the work done is proportional to the text kept, not the text implied.
type printer struct {
	sb    strings.Builder
	limit int
	cut   bool
}

func (p *printer) String() string { return p.sb.String() }

func (p *printer) str(s string) {
	if p.cut {
		return
	}
	if p.limit > 0 && p.sb.Len()+len(s) > p.limit {
		n := p.limit - p.sb.Len()
		for n > 0 && !utf8.RuneStart(s[n]) {
			n--
		}
		p.sb.WriteString(s[:n])
		p.sb.WriteString(Elision)
		p.cut = true
		return
	}
	p.sb.WriteString(s)
}

func (p *printer) state(s State) {
	switch s := s.(type) {
	case Eval:
		p.str("State: Eval\nTerm: [")
		p.term(s.T)
		p.str("]\nKont: ")
	case ApplyT:
		p.str("State: ApplyT\nValue: ")
		p.value(s.F)
		p.str("\nTerm: [")
		p.term(s.T)
		p.str("]\nKont: ")
	case ApplyV:
		p.str("State: ApplyV\nValue: ")
		p.value(s.F)
		p.str("\nWalue: ")
		p.value(s.X)
		p.str("\nKont: ")
	case ApplyK:
		p.str("State: ApplyK\nValue: ")
		p.value(s.V)
		p.str("\nKont: ")
	default:
		violation("render state", s)
	}
	p.kont(s.Kont())
}

func (p *printer) term(t term.Term) {
	if p.cut {
		return
	}
	switch t := t.(type) {
	case *term.App:
		p.str("`")
		p.term(t.Left)
		p.term(t.Right)
	default:
		p.str(t.String())
	}
}

func (p *printer) value(v Value) {
	if p.cut {
		return
	}
	switch v := v.(type) {
	case *K1:
		p.str("`k")
		p.value(v.X)
	case *S1:
		p.str("`s")
		p.value(v.X)
	case *S2:
		p.str("``s")
		p.value(v.X)
		p.value(v.Y)
	case *D1T:
		p.str("`d[")
		p.term(v.T)
		p.str("]")
	case *D1V:
		p.str("`d")
		p.value(v.X)
	case *C1:
		p.str("`c(")
		if v.K != nil {
			p.kont(v.K)
		}
		p.str(")")
	case I0, S0, K0, V0, D0, C0, Put0:
		p.str(v.String())
	default:
		violation("render value", v)
	}
}

// kont writes the prefix of every frame from the outermost in, then the
// hole, then the suffixes from the innermost out.
func (p *printer) kont(k Kont) {
	if p.cut {
		return
	}
	var frames []Kont
	for ; k != nil; k = k.next() {
		frames = append(frames, k)
	}
	for i := len(frames) - 1; i >= 0 && !p.cut; i-- {
		p.str("`")
		if f, ok := frames[i].(*BindV); ok {
			p.value(f.F)
		}
	}
	p.str("()")
	for _, k := range frames {
		if p.cut {
			return
		}
		switch f := k.(type) {
		case *BindT:
			p.str("[")
			p.term(f.T)
			p.str("]")
		case *BindV:
		case *BindW:
			p.value(f.X)
		case *SWait:
			p.str("`")
			p.value(f.F)
			p.value(f.X)
		default:
			violation("render", k)
		}
	}
}
