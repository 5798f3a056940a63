package machine

import (
	"fmt"

	"github.com/aretw0/unabs/pkg/term"
)

// State is one configuration of the machine between two transitions.
type State interface {
	fmt.Stringer
	state()
	// Kont returns the continuation the state runs under.
	Kont() Kont
}

// Eval evaluates T under K.
type Eval struct {
	T term.Term
	K Kont
}

// ApplyT applies F to the unevaluated term T.
type ApplyT struct {
	F Value
	T term.Term
	K Kont
}

// ApplyV applies F to the value X.
type ApplyV struct {
	F, X Value
	K    Kont
}

// ApplyK passes V to K. With an empty K the machine has halted.
type ApplyK struct {
	V Value
	K Kont
}

func (Eval) state()   {}
func (ApplyT) state() {}
func (ApplyV) state() {}
func (ApplyK) state() {}

func (s Eval) Kont() Kont   { return s.K }
func (s ApplyT) Kont() Kont { return s.K }
func (s ApplyV) Kont() Kont { return s.K }
func (s ApplyK) Kont() Kont { return s.K }

func (s Eval) String() string   { return RenderState(s, DefaultRenderLimit) }
func (s ApplyT) String() string { return RenderState(s, DefaultRenderLimit) }
func (s ApplyV) String() string { return RenderState(s, DefaultRenderLimit) }
func (s ApplyK) String() string { return RenderState(s, DefaultRenderLimit) }

// Start is the initial state for running t.
func Start(t term.Term) State {
	return Eval{T: t}
}

// KindOf names the variant of s: "Eval", "ApplyT", "ApplyV" or "ApplyK".
func KindOf(s State) string {
	switch s.(type) {
	case Eval:
		return "Eval"
	case ApplyT:
		return "ApplyT"
	case ApplyV:
		return "ApplyV"
	case ApplyK:
		return "ApplyK"
	default:
		violation("state kind", s)
		return ""
	}
}
