package snapshot

import (
	"fmt"

	"github.com/aretw0/unabs/pkg/machine"
	"github.com/aretw0/unabs/pkg/term"
)

type decoder struct {
	idx  *term.Index
	objs []any
}

func (d *decoder) object(n Node) (any, error) {
	switch n.Kind {
	case "i":
		return machine.I0{}, nil
	case "s":
		return machine.S0{}, nil
	case "k":
		return machine.K0{}, nil
	case "v":
		return machine.V0{}, nil
	case "d":
		return machine.D0{}, nil
	case "c":
		return machine.C0{}, nil
	case "put":
		return machine.Put0{Char: n.Char}, nil
	case "k1":
		x, err := d.valueAt(n, 0, 1)
		return &machine.K1{X: x}, err
	case "s1":
		x, err := d.valueAt(n, 0, 1)
		return &machine.S1{X: x}, err
	case "s2":
		x, err := d.valueAt(n, 0, 2)
		if err != nil {
			return nil, err
		}
		y, err := d.valueAt(n, 1, 2)
		return &machine.S2{X: x, Y: y}, err
	case "d1v":
		x, err := d.valueAt(n, 0, 1)
		return &machine.D1V{X: x}, err
	case "c1":
		k, err := d.kontAt(n, 0, 1)
		return &machine.C1{K: k}, err
	case "d1t":
		t, err := d.term(n)
		return &machine.D1T{T: t}, err
	case "bindt":
		t, err := d.term(n)
		if err != nil {
			return nil, err
		}
		next, err := d.kontAt(n, 0, 1)
		return &machine.BindT{T: t, Next: next}, err
	case "bindv":
		f, err := d.valueAt(n, 0, 2)
		if err != nil {
			return nil, err
		}
		next, err := d.kontAt(n, 1, 2)
		return &machine.BindV{F: f, Next: next}, err
	case "bindw":
		x, err := d.valueAt(n, 0, 2)
		if err != nil {
			return nil, err
		}
		next, err := d.kontAt(n, 1, 2)
		return &machine.BindW{X: x, Next: next}, err
	case "swait":
		f, err := d.valueAt(n, 0, 3)
		if err != nil {
			return nil, err
		}
		x, err := d.valueAt(n, 1, 3)
		if err != nil {
			return nil, err
		}
		next, err := d.kontAt(n, 2, 3)
		return &machine.SWait{F: f, X: x, Next: next}, err
	default:
		return nil, fmt.Errorf("%w: unknown node kind %q", ErrCorrupt, n.Kind)
	}
}

func (d *decoder) state(n Node) (machine.State, error) {
	switch n.Kind {
	case "eval":
		t, err := d.term(n)
		if err != nil {
			return nil, err
		}
		k, err := d.kontAt(n, 0, 1)
		return machine.Eval{T: t, K: k}, err
	case "applyt":
		t, err := d.term(n)
		if err != nil {
			return nil, err
		}
		f, err := d.valueAt(n, 0, 2)
		if err != nil {
			return nil, err
		}
		k, err := d.kontAt(n, 1, 2)
		return machine.ApplyT{F: f, T: t, K: k}, err
	case "applyv":
		f, err := d.valueAt(n, 0, 3)
		if err != nil {
			return nil, err
		}
		x, err := d.valueAt(n, 1, 3)
		if err != nil {
			return nil, err
		}
		k, err := d.kontAt(n, 2, 3)
		return machine.ApplyV{F: f, X: x, K: k}, err
	case "applyk":
		v, err := d.valueAt(n, 0, 2)
		if err != nil {
			return nil, err
		}
		k, err := d.kontAt(n, 1, 2)
		return machine.ApplyK{V: v, K: k}, err
	default:
		return nil, fmt.Errorf("%w: unknown state kind %q", ErrCorrupt, n.Kind)
	}
}

func (d *decoder) term(n Node) (term.Term, error) {
	if n.Term == nil {
		return nil, fmt.Errorf("%w: %s without term", ErrCorrupt, n.Kind)
	}
	t, ok := d.idx.At(*n.Term)
	if !ok {
		return nil, fmt.Errorf("%w: term %d", ErrUnknownTerm, *n.Term)
	}
	return t, nil
}

func (d *decoder) ref(n Node, i, want int) (int, error) {
	if len(n.Refs) != want {
		return 0, fmt.Errorf("%w: %s has %d refs, want %d", ErrCorrupt, n.Kind, len(n.Refs), want)
	}
	ref := n.Refs[i]
	if ref < -1 || ref >= len(d.objs) {
		return 0, fmt.Errorf("%w: dangling ref %d", ErrCorrupt, ref)
	}
	return ref, nil
}

func (d *decoder) valueAt(n Node, i, want int) (machine.Value, error) {
	ref, err := d.ref(n, i, want)
	if err != nil {
		return nil, err
	}
	return d.value(ref)
}

func (d *decoder) kontAt(n Node, i, want int) (machine.Kont, error) {
	ref, err := d.ref(n, i, want)
	if err != nil {
		return nil, err
	}
	if ref == -1 {
		return nil, nil
	}
	k, ok := d.objs[ref].(machine.Kont)
	if !ok {
		return nil, fmt.Errorf("%w: node %d is not a continuation", ErrCorrupt, ref)
	}
	return k, nil
}

func (d *decoder) value(ref int) (machine.Value, error) {
	if ref < 0 || ref >= len(d.objs) {
		return nil, fmt.Errorf("%w: dangling ref %d", ErrCorrupt, ref)
	}
	v, ok := d.objs[ref].(machine.Value)
	if !ok {
		return nil, fmt.Errorf("%w: node %d is not a value", ErrCorrupt, ref)
	}
	return v, nil
}
