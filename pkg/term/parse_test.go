package term_test

import (
	"errors"
	"testing"

	"github.com/aretw0/unabs/pkg/term"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"atom", "i", "i"},
		{"all atoms", "``````sk`vdcri", "``````sk`vdcri"},
		{"put", ".a", ".a"},
		{"put space", "`. i", "`. i"},
		{"newline literal renders as r", ".\n", "r"},
		{"hello", "`r```````````.H.e.l.l.o. .w.o.r.l.di", "`r```````````.H.e.l.l.o. .w.o.r.l.di"},
		{"whitespace ignored", "  `  k\n\ti ", "`ki"},
		{"comments ignored", "# leading comment\n`k # trailing\ni # done", "`ki"},
		{"dot takes hash literally", "`.#i", "`.#i"},
		{"dot takes backtick literally", "`.`i", "`.`i"},
		{"unicode literal", "`.λi", "`.λi"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := term.Parse(tt.src)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestParse_Shapes(t *testing.T) {
	got := term.MustParse("``sk.x")

	app, ok := got.(*term.App)
	require.True(t, ok)
	inner, ok := app.Left.(*term.App)
	require.True(t, ok)
	assert.Equal(t, term.S, inner.Left.(*term.Atom).Kind)
	assert.Equal(t, term.K, inner.Right.(*term.Atom).Kind)
	assert.Equal(t, 'x', app.Right.(*term.Put).Char)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		target error
		line   int
		column int
	}{
		{"empty", "", term.ErrUnexpectedEOF, 1, 1},
		{"only comment", "# nothing here", term.ErrUnexpectedEOF, 1, 15},
		{"dot needs a term after application", "`.a.", term.ErrUnexpectedEOF, 1, 5},
		{"missing argument", "``ii", term.ErrUnexpectedEOF, 1, 5},
		{"unknown letter", "`ix", term.ErrUnexpectedChar, 1, 3},
		{"uppercase not accepted", "I", term.ErrUnexpectedChar, 1, 1},
		{"trailing term", "ii", term.ErrUnexpectedChar, 1, 2},
		{"error on second line", "`i\n  q", term.ErrUnexpectedChar, 2, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := term.Parse(tt.src)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.target)

			var syn *term.SyntaxError
			require.True(t, errors.As(err, &syn))
			assert.Equal(t, tt.line, syn.Line, "line")
			assert.Equal(t, tt.column, syn.Column, "column")
		})
	}
}

func TestParse_DeepNesting(t *testing.T) {
	// 10k nested applications: `i`i`i...i
	src := ""
	for i := 0; i < 10000; i++ {
		src += "`i"
	}
	src += "i"

	got, err := term.Parse(src)
	require.NoError(t, err)
	assert.Equal(t, 20001, term.Size(got))
	assert.Equal(t, src, got.String())
}

func TestIndex(t *testing.T) {
	root := term.MustParse("``sk`ii")
	idx := term.NewIndex(root)

	assert.Equal(t, 7, idx.Len())
	assert.Same(t, root, idx.Root())

	// Pre-order: ``sk`ii -> [``sk`ii, `sk, s, k, `ii, i, i]
	want := []string{"``sk`ii", "`sk", "s", "k", "`ii", "i", "i"}
	for i, w := range want {
		node, ok := idx.At(i)
		require.True(t, ok)
		assert.Equal(t, w, node.String())

		pos, ok := idx.Position(node)
		require.True(t, ok)
		assert.Equal(t, i, pos)
	}

	_, ok := idx.At(7)
	assert.False(t, ok)
	_, ok = idx.Position(term.NewAtom(term.I))
	assert.False(t, ok, "positions are by identity, not by shape")
}
