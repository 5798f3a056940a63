package machine

import (
	"fmt"

	"github.com/aretw0/unabs/pkg/term"
)

// Value is a combinator in some state of partial application.
// The numeric suffix of each variant is the number of arguments absorbed.
type Value interface {
	fmt.Stringer
	value()
}

type (
	I0 struct{}
	S0 struct{}
	K0 struct{}
	V0 struct{}
	D0 struct{}
	C0 struct{}
)

// Put0 prints Char when applied, then behaves like I0.
type Put0 struct {
	Char rune
}

// K1 is k with its first argument X; applying it returns X.
type K1 struct {
	X Value
}

// S1 is s with its first argument.
type S1 struct {
	X Value
}

// S2 is s with both of its first arguments.
type S2 struct {
	X, Y Value
}

// D1T is a delayed, unevaluated term produced by applying d to a term.
type D1T struct {
	T term.Term
}

// D1V is d applied to an already evaluated value.
type D1V struct {
	X Value
}

// C1 is a captured continuation. K is shared, never copied; nil is the
// empty continuation.
type C1 struct {
	K Kont
}

func (I0) value()   {}
func (S0) value()   {}
func (K0) value()   {}
func (V0) value()   {}
func (D0) value()   {}
func (C0) value()   {}
func (Put0) value() {}
func (*K1) value()  {}
func (*S1) value()  {}
func (*S2) value()  {}
func (*D1T) value() {}
func (*D1V) value() {}
func (*C1) value()  {}

func (I0) String() string     { return "i" }
func (S0) String() string     { return "s" }
func (K0) String() string     { return "k" }
func (V0) String() string     { return "v" }
func (D0) String() string     { return "d" }
func (C0) String() string     { return "c" }
func (p Put0) String() string { return term.PutString(p.Char) }
func (v *K1) String() string  { return RenderValue(v, DefaultRenderLimit) }
func (v *S1) String() string  { return RenderValue(v, DefaultRenderLimit) }
func (v *S2) String() string  { return RenderValue(v, DefaultRenderLimit) }
func (v *D1T) String() string { return RenderValue(v, DefaultRenderLimit) }
func (v *D1V) String() string { return RenderValue(v, DefaultRenderLimit) }
func (v *C1) String() string  { return RenderValue(v, DefaultRenderLimit) }
