package term

// Index numbers every node of a program tree in pre-order so that references
// into the tree can be persisted as integers and resolved again after the
// program is re-parsed.
type Index struct {
	nodes []Term
	pos   map[Term]int
}

// NewIndex walks root once and records the position of every node.
func NewIndex(root Term) *Index {
	idx := &Index{pos: make(map[Term]int)}
	stack := []Term{root}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		idx.pos[top] = len(idx.nodes)
		idx.nodes = append(idx.nodes, top)
		if app, ok := top.(*App); ok {
			stack = append(stack, app.Right, app.Left)
		}
	}
	return idx
}

// Root returns the tree the index was built from.
func (x *Index) Root() Term { return x.nodes[0] }

// Len returns the number of indexed nodes.
func (x *Index) Len() int { return len(x.nodes) }

// At returns the node at pre-order position i.
func (x *Index) At(i int) (Term, bool) {
	if i < 0 || i >= len(x.nodes) {
		return nil, false
	}
	return x.nodes[i], true
}

// Position returns the pre-order position of t, which must be a node of the
// indexed tree (compared by identity).
func (x *Index) Position(t Term) (int, bool) {
	i, ok := x.pos[t]
	return i, ok
}
