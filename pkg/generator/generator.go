// Package generator produces random Unlambda programs.
package generator

import (
	"math/rand/v2"
	"strings"

	"github.com/aretw0/unabs/pkg/term"
)

// DefaultMaxLength caps the source length of Random programs. Past the cap
// only atoms are drawn, which closes every open application quickly.
const DefaultMaxLength = 4096

const atoms = "iksrdcv"

// Idioms are common combinator prefixes. Each entry is drawn as a unit; the
// number is how many extra terms it leaves open.
var idioms = []struct {
	src  string
	open int
}{
	{"`k", 0},
	{"``s", 1},
	{"``s`kk`k", 0},
	{"``s``s`ks", 1},
	{"``s``s`ks``s`kk`kk``s`kk`k", 0},
	{"``s``s`ks``s``s`ks``s`kk`ks", 1},
}

type options struct {
	maxLength int
}

// Option configures Random.
type Option func(*options)

// WithMaxLength sets the soft cap on program length.
func WithMaxLength(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxLength = n
		}
	}
}

// NewRand returns a deterministic source for seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Random returns the source of a random, syntactically complete program.
//
// Draws are made from 19 outcomes: the seven atoms, a printable ASCII .x,
// the idioms above, and a bare application for the remaining five.
func Random(rng *rand.Rand, opts ...Option) string {
	o := options{maxLength: DefaultMaxLength}
	for _, opt := range opts {
		opt(&o)
	}

	var sb strings.Builder
	open := 1
	for open > 0 {
		choice := rng.IntN(19)
		if sb.Len() >= o.maxLength {
			choice = rng.IntN(8)
		}
		switch {
		case choice < 7:
			sb.WriteByte(atoms[choice])
			open--
		case choice == 7:
			sb.WriteByte('.')
			sb.WriteByte(byte(' ' + rng.IntN(95)))
			open--
		case choice < 14:
			id := idioms[choice-8]
			sb.WriteString(id.src)
			open += id.open
		default:
			sb.WriteByte('`')
			open++
		}
	}
	return sb.String()
}

// ValueForm returns an effect-free term that evaluates directly to a value:
// one of i, k, s, v, `kX, `sX or ``sXY with operands of the same shape,
// nested at most depth levels.
func ValueForm(rng *rand.Rand, depth int) term.Term {
	if depth <= 0 {
		return valueAtom(rng)
	}
	switch rng.IntN(4) {
	case 0:
		return valueAtom(rng)
	case 1:
		return term.NewApp(term.NewAtom(term.K), ValueForm(rng, depth-1))
	case 2:
		return term.NewApp(term.NewAtom(term.S), ValueForm(rng, depth-1))
	default:
		s := term.NewApp(term.NewAtom(term.S), ValueForm(rng, depth-1))
		return term.NewApp(s, ValueForm(rng, depth-1))
	}
}

func valueAtom(rng *rand.Rand) term.Term {
	kinds := [...]term.Kind{term.I, term.K, term.S, term.V}
	return term.NewAtom(kinds[rng.IntN(len(kinds))])
}
