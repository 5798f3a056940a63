// Package snapshot serializes machine states so a suspended run can be
// persisted and resumed later, possibly by another process.
//
// A Snapshot is a flat node table. Terms are not copied: they are referenced
// by their pre-order position in the program (see term.Index), so restoring a
// snapshot requires the same program source. Values and continuation frames
// are written once each and referenced by table position, which keeps the
// sharing created by call/cc intact across a round trip. Children always
// precede their parents, so a table can be rebuilt in a single forward pass.
package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aretw0/unabs/pkg/machine"
	"github.com/aretw0/unabs/pkg/term"
)

// Version is the current snapshot format.
const Version = 1

var (
	// ErrCorrupt is returned when a snapshot does not describe a valid state.
	ErrCorrupt = errors.New("corrupt snapshot")
	// ErrUnknownTerm is returned when a state refers to a term that is not
	// part of the indexed program.
	ErrUnknownTerm = errors.New("term is not part of the program")
	// ErrVersion is returned for snapshots written in an unsupported format.
	ErrVersion = errors.New("unsupported snapshot version")
)

// Snapshot is either a suspended State or the final Value of a halted run.
type Snapshot struct {
	Version int    `json:"version"`
	Nodes   []Node `json:"nodes"`
	State   *Node  `json:"state,omitempty"`
	Value   *int   `json:"value,omitempty"`
}

// Node is one value, continuation frame or state.
//
// Refs point at earlier nodes; -1 stands for the empty continuation.
type Node struct {
	Kind string `json:"k"`
	Char rune   `json:"c,omitempty"`
	Term *int   `json:"t,omitempty"`
	Refs []int  `json:"r,omitempty"`
}

// Halted reports whether the snapshot holds a final value.
func (s *Snapshot) Halted() bool { return s.Value != nil }

// Capture records s. Every term s refers to must belong to idx.
func Capture(idx *term.Index, s machine.State) (*Snapshot, error) {
	e := newEncoder(idx)
	var node Node
	var err error

	switch st := s.(type) {
	case machine.Eval:
		node = Node{Kind: "eval"}
		if node.Term, err = e.term(st.T); err == nil {
			node.Refs, err = e.refs(st.K)
		}
	case machine.ApplyT:
		node = Node{Kind: "applyt"}
		if node.Term, err = e.term(st.T); err == nil {
			node.Refs, err = e.refs(st.F, st.K)
		}
	case machine.ApplyV:
		node = Node{Kind: "applyv"}
		node.Refs, err = e.refs(st.F, st.X, st.K)
	case machine.ApplyK:
		node = Node{Kind: "applyk"}
		node.Refs, err = e.refs(st.V, st.K)
	default:
		return nil, fmt.Errorf("cannot capture state %T", s)
	}
	if err != nil {
		return nil, err
	}
	return &Snapshot{Version: Version, Nodes: e.nodes, State: &node}, nil
}

// CaptureResult records the final value of a halted run.
func CaptureResult(idx *term.Index, v machine.Value) (*Snapshot, error) {
	if v == nil {
		return nil, fmt.Errorf("%w: nil result", ErrCorrupt)
	}
	e := newEncoder(idx)
	ref, err := e.encode(v)
	if err != nil {
		return nil, err
	}
	return &Snapshot{Version: Version, Nodes: e.nodes, Value: &ref}, nil
}

// Restore rebuilds the captured state, or the final value when the snapshot
// is Halted. Exactly one of the returned State and Value is non-nil.
func (s *Snapshot) Restore(idx *term.Index) (machine.State, machine.Value, error) {
	if s.Version != Version {
		return nil, nil, fmt.Errorf("%w: %d", ErrVersion, s.Version)
	}
	d := &decoder{idx: idx, objs: make([]any, 0, len(s.Nodes))}
	for i, n := range s.Nodes {
		obj, err := d.object(n)
		if err != nil {
			return nil, nil, fmt.Errorf("node %d: %w", i, err)
		}
		d.objs = append(d.objs, obj)
	}

	switch {
	case s.Value != nil && s.State == nil:
		v, err := d.value(*s.Value)
		if err != nil {
			return nil, nil, err
		}
		return nil, v, nil
	case s.State != nil && s.Value == nil:
		st, err := d.state(*s.State)
		if err != nil {
			return nil, nil, err
		}
		return st, nil, nil
	default:
		return nil, nil, fmt.Errorf("%w: expected exactly one of state and value", ErrCorrupt)
	}
}

// Marshal encodes s as JSON.
func Marshal(s *Snapshot) ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	return data, nil
}

// Unmarshal decodes a snapshot written by Marshal.
func Unmarshal(data []byte) (*Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return &s, nil
}
