package snapshot

import (
	"fmt"

	"github.com/aretw0/unabs/pkg/machine"
	"github.com/aretw0/unabs/pkg/term"
)

type encoder struct {
	idx   *term.Index
	nodes []Node
	ids   map[any]int
}

func newEncoder(idx *term.Index) *encoder {
	return &encoder{idx: idx, ids: make(map[any]int)}
}

func (e *encoder) term(t term.Term) (*int, error) {
	pos, ok := e.idx.Position(t)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTerm, t)
	}
	return &pos, nil
}

// refs encodes each object; a nil continuation becomes -1.
func (e *encoder) refs(objs ...any) ([]int, error) {
	out := make([]int, len(objs))
	for i, obj := range objs {
		if isNil(obj) {
			out[i] = -1
			continue
		}
		ref, err := e.encode(obj)
		if err != nil {
			return nil, err
		}
		out[i] = ref
	}
	return out, nil
}

// encode writes obj and everything it reaches, children first, without
// recursion. Objects already in the table are not written again.
func (e *encoder) encode(root any) (int, error) {
	stack := []any{root}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		if _, done := e.ids[top]; done {
			stack = stack[:len(stack)-1]
			continue
		}

		pending := false
		for _, c := range children(top) {
			if isNil(c) {
				continue
			}
			if _, done := e.ids[c]; !done {
				stack = append(stack, c)
				pending = true
			}
		}
		if pending {
			continue
		}

		stack = stack[:len(stack)-1]
		n, err := e.node(top)
		if err != nil {
			return 0, err
		}
		e.ids[top] = len(e.nodes)
		e.nodes = append(e.nodes, n)
	}
	return e.ids[root], nil
}

// node builds the table entry for obj, whose children are already encoded.
func (e *encoder) node(obj any) (Node, error) {
	switch o := obj.(type) {
	case machine.I0:
		return Node{Kind: "i"}, nil
	case machine.S0:
		return Node{Kind: "s"}, nil
	case machine.K0:
		return Node{Kind: "k"}, nil
	case machine.V0:
		return Node{Kind: "v"}, nil
	case machine.D0:
		return Node{Kind: "d"}, nil
	case machine.C0:
		return Node{Kind: "c"}, nil
	case machine.Put0:
		return Node{Kind: "put", Char: o.Char}, nil
	case *machine.K1:
		return Node{Kind: "k1", Refs: e.ref(o.X)}, nil
	case *machine.S1:
		return Node{Kind: "s1", Refs: e.ref(o.X)}, nil
	case *machine.S2:
		return Node{Kind: "s2", Refs: e.ref(o.X, o.Y)}, nil
	case *machine.D1V:
		return Node{Kind: "d1v", Refs: e.ref(o.X)}, nil
	case *machine.C1:
		return Node{Kind: "c1", Refs: e.ref(o.K)}, nil
	case *machine.D1T:
		pos, err := e.term(o.T)
		return Node{Kind: "d1t", Term: pos}, err
	case *machine.BindT:
		pos, err := e.term(o.T)
		return Node{Kind: "bindt", Term: pos, Refs: e.ref(o.Next)}, err
	case *machine.BindV:
		return Node{Kind: "bindv", Refs: e.ref(o.F, o.Next)}, nil
	case *machine.BindW:
		return Node{Kind: "bindw", Refs: e.ref(o.X, o.Next)}, nil
	case *machine.SWait:
		return Node{Kind: "swait", Refs: e.ref(o.F, o.X, o.Next)}, nil
	default:
		return Node{}, fmt.Errorf("cannot encode %T", obj)
	}
}

func (e *encoder) ref(objs ...any) []int {
	out := make([]int, len(objs))
	for i, obj := range objs {
		if isNil(obj) {
			out[i] = -1
			continue
		}
		out[i] = e.ids[obj]
	}
	return out
}

func children(obj any) []any {
	switch o := obj.(type) {
	case *machine.K1:
		return []any{o.X}
	case *machine.S1:
		return []any{o.X}
	case *machine.S2:
		return []any{o.X, o.Y}
	case *machine.D1V:
		return []any{o.X}
	case *machine.C1:
		return []any{o.K}
	case *machine.BindT:
		return []any{o.Next}
	case *machine.BindV:
		return []any{o.F, o.Next}
	case *machine.BindW:
		return []any{o.X, o.Next}
	case *machine.SWait:
		return []any{o.F, o.X, o.Next}
	default:
		return nil
	}
}

// isNil matches the empty continuation, which arrives as a nil interface.
func isNil(obj any) bool { return obj == nil }
