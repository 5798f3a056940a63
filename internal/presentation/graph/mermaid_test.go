package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/unabs/internal/presentation/graph"
	"github.com/aretw0/unabs/pkg/machine"
	"github.com/aretw0/unabs/pkg/term"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateMermaid(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		contains []string
	}{
		{
			name:     "Single Atom",
			src:      "i",
			contains: []string{"graph TD\n", `n0["i"]`},
		},
		{
			name: "Application Edges",
			src:  "`ki",
			contains: []string{
				"n0((\"`\"))",
				`n1["k"]`,
				`n2["i"]`,
				"n0 -- f --> n1",
				"n0 -- x --> n2",
			},
		},
		{
			name:     "Output Shape",
			src:      "`.ai",
			contains: []string{`n1[/".a"/]`},
		},
		{
			name:     "Newline Shorthand",
			src:      "r",
			contains: []string{`n0["r"]`},
		},
		{
			name:     "Quote Escaped",
			src:      `."`,
			contains: []string{`n0[/".#quot;"/]`},
		},
		{
			name: "Pre-order Numbering",
			src:  "``sk`ii",
			contains: []string{
				"n0 -- f --> n1",
				"n1 -- f --> n2",
				"n1 -- x --> n3",
				"n0 -- x --> n4",
				"n4 -- f --> n5",
				"n4 -- x --> n6",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := graph.GenerateMermaid(term.MustParse(tt.src), nil)
			for _, want := range tt.contains {
				assert.Contains(t, got, want)
			}
			assert.NotContains(t, got, "classDef")
		})
	}
}

func TestGenerateMermaid_Overlay(t *testing.T) {
	root := term.MustParse("``ki.x")
	idx := term.NewIndex(root)

	// After one step the machine evaluates the function part `ki.
	s, _, err := machine.Step(machine.Start(root), machine.Discard)
	require.NoError(t, err)

	overlay := graph.OverlayFor(idx, s)
	assert.Equal(t, 1, overlay.Current)

	got := graph.GenerateMermaid(root, overlay)
	assert.Contains(t, got, "classDef current")
	assert.Contains(t, got, "class n1 current;")
}

func TestOverlayFor_NoTerm(t *testing.T) {
	root := term.MustParse("i")
	idx := term.NewIndex(root)

	s, _, err := machine.Step(machine.Start(root), machine.Discard)
	require.NoError(t, err)
	require.Equal(t, "ApplyK", machine.KindOf(s))

	overlay := graph.OverlayFor(idx, s)
	assert.Equal(t, -1, overlay.Current)
	assert.False(t, strings.Contains(graph.GenerateMermaid(root, overlay), "classDef"))
}
