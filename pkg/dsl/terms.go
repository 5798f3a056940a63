package dsl

import "github.com/aretw0/unabs/pkg/term"

// Atoms, shared since terms are immutable.
var (
	I = term.NewAtom(term.I)
	S = term.NewAtom(term.S)
	K = term.NewAtom(term.K)
	V = term.NewAtom(term.V)
	D = term.NewAtom(term.D)
	C = term.NewAtom(term.C)
	R = term.NewAtom(term.R)
)

// Apply applies f to each argument in turn: Apply(f, x, y) is ``fxy.
func Apply(f term.Term, args ...term.Term) term.Term {
	for _, x := range args {
		f = term.NewApp(f, x)
	}
	return f
}

// Print builds a term that prints s, left to right, and evaluates to i.
func Print(s string) term.Term {
	var t term.Term
	for _, c := range s {
		put := term.NewPut(c)
		if t == nil {
			t = put
			continue
		}
		t = term.NewApp(t, put)
	}
	if t == nil {
		return I
	}
	return term.NewApp(t, I)
}

// Println is Print followed by a newline.
func Println(s string) term.Term {
	return term.NewApp(R, Print(s))
}

// Seq evaluates the terms in order for their effects, keeping the value of
// the last one. Every term but the last must evaluate to i.
func Seq(terms ...term.Term) term.Term {
	if len(terms) == 0 {
		return I
	}
	t := terms[len(terms)-1]
	for i := len(terms) - 2; i >= 0; i-- {
		// `XY evaluates X before Y; `iY is Y.
		t = term.NewApp(terms[i], t)
	}
	return t
}
