package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/unabs/pkg/machine"
	"github.com/aretw0/unabs/pkg/term"
)

// Overlay marks dynamic machine data on the graph.
type Overlay struct {
	// Current is the pre-order index of the term under evaluation, or -1.
	Current int
}

// OverlayFor locates the term a state is working on inside idx.
// States that are not looking at a term produce no highlight.
func OverlayFor(idx *term.Index, s machine.State) *Overlay {
	var t term.Term
	switch st := s.(type) {
	case machine.Eval:
		t = st.T
	case machine.ApplyT:
		t = st.T
	}
	if t == nil {
		return &Overlay{Current: -1}
	}
	pos, ok := idx.Position(t)
	if !ok {
		return &Overlay{Current: -1}
	}
	return &Overlay{Current: pos}
}

// GenerateMermaid produces a Mermaid flowchart of a term tree.
// It applies semantic styling:
// - Application: ((Circle))
// - Output (.x): [/Parallelogram/]
// - Combinator: [Rectangle]
// Node IDs follow the pre-order index, so n0 is the root.
func GenerateMermaid(root term.Term, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	type frame struct {
		t      term.Term
		parent int
		edge   string
	}
	next := 0
	stack := []frame{{t: root, parent: -1}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		id := next
		next++

		switch t := f.t.(type) {
		case *term.App:
			fmt.Fprintf(&sb, "    n%d((\"`\"))\n", id)
			stack = append(stack, frame{t: t.Right, parent: id, edge: "x"}, frame{t: t.Left, parent: id, edge: "f"})
		case *term.Put:
			fmt.Fprintf(&sb, "    n%d[/\"%s\"/]\n", id, escapeLabel(t.String()))
		default:
			fmt.Fprintf(&sb, "    n%d[\"%s\"]\n", id, escapeLabel(t.String()))
		}
		if f.parent >= 0 {
			fmt.Fprintf(&sb, "    n%d -- %s --> n%d\n", f.parent, f.edge, id)
		}
	}

	if overlay != nil && overlay.Current >= 0 {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")
		fmt.Fprintf(&sb, "    class n%d current;\n", overlay.Current)
	}

	return sb.String()
}

// escapeLabel makes printed characters safe inside a quoted Mermaid label.
func escapeLabel(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch {
		case r == '"':
			sb.WriteString("#quot;")
		case r == '\n':
			sb.WriteString("\\n")
		case r < 0x20 || r == 0x7f:
			fmt.Fprintf(&sb, "#%d;", r)
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
