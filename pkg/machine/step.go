package machine

import (
	"fmt"

	"github.com/aretw0/unabs/pkg/term"
)

// Step performs a single transition from s. If s is an ApplyK on the empty
// continuation the program has halted: Step returns a nil State and the final
// Value. The only error Step can return is a failed write to out.
func Step(s State, out Sink) (State, Value, error) {
	switch s := s.(type) {
	case Eval:
		return eval(s.T, s.K), nil, nil
	case ApplyT:
		return applyT(s.F, s.T, s.K), nil, nil
	case ApplyV:
		return applyV(s.F, s.X, s.K, out)
	case ApplyK:
		if s.K == nil {
			return nil, s.V, nil
		}
		return applyK(s.V, s.K), nil, nil
	default:
		violation("step", s)
		return nil, nil, nil
	}
}

func eval(t term.Term, k Kont) State {
	switch t := t.(type) {
	case *term.App:
		return Eval{T: t.Left, K: &BindT{T: t.Right, Next: k}}
	case *term.Put:
		return ApplyK{V: Put0{Char: t.Char}, K: k}
	case *term.Atom:
		return ApplyK{V: atomValue(t.Kind), K: k}
	default:
		violation("eval", t)
		return nil
	}
}

func atomValue(kind term.Kind) Value {
	switch kind {
	case term.I:
		return I0{}
	case term.S:
		return S0{}
	case term.K:
		return K0{}
	case term.V:
		return V0{}
	case term.D:
		return D0{}
	case term.C:
		return C0{}
	case term.R:
		return Put0{Char: '\n'}
	default:
		violation("eval", kind)
		return nil
	}
}

func applyT(f Value, t term.Term, k Kont) State {
	if _, ok := f.(D0); ok {
		return ApplyK{V: &D1T{T: t}, K: k}
	}
	return Eval{T: t, K: &BindV{F: f, Next: k}}
}

func applyV(f, x Value, k Kont, out Sink) (State, Value, error) {
	switch f := f.(type) {
	case I0:
		return ApplyK{V: x, K: k}, nil, nil
	case Put0:
		if _, err := out.WriteRune(f.Char); err != nil {
			return nil, nil, fmt.Errorf("failed to write output: %w", err)
		}
		return ApplyK{V: x, K: k}, nil, nil
	case K0:
		return ApplyK{V: &K1{X: x}, K: k}, nil, nil
	case *K1:
		return ApplyK{V: f.X, K: k}, nil, nil
	case V0:
		return ApplyK{V: f, K: k}, nil, nil
	case C0:
		return ApplyV{F: x, X: &C1{K: k}, K: k}, nil, nil
	case *C1:
		return ApplyK{V: x, K: f.K}, nil, nil
	case D0:
		return ApplyK{V: &D1V{X: x}, K: k}, nil, nil
	case *D1T:
		return Eval{T: f.T, K: &BindW{X: x, Next: k}}, nil, nil
	case *D1V:
		return ApplyV{F: f.X, X: x, K: k}, nil, nil
	case S0:
		return ApplyK{V: &S1{X: x}, K: k}, nil, nil
	case *S1:
		return ApplyK{V: &S2{X: f.X, Y: x}, K: k}, nil, nil
	case *S2:
		return ApplyV{F: f.X, X: x, K: &SWait{F: f.Y, X: x, Next: k}}, nil, nil
	default:
		violation("apply", f)
		return nil, nil, nil
	}
}

func applyK(v Value, k Kont) State {
	switch k := k.(type) {
	case *BindT:
		return ApplyT{F: v, T: k.T, K: k.Next}
	case *BindV:
		return ApplyV{F: k.F, X: v, K: k.Next}
	case *BindW:
		return ApplyV{F: v, X: k.X, K: k.Next}
	case *SWait:
		return ApplyV{F: k.F, X: k.X, K: &BindV{F: v, Next: k.Next}}
	default:
		violation("continue", k)
		return nil
	}
}
