package tui

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintBanner(t *testing.T) {
	var sb strings.Builder
	PrintBanner(&sb)
	out := sb.String()
	assert.True(t, strings.HasPrefix(out, "\n"))
	assert.Equal(t, 7, strings.Count(out, "\n"))
}

func TestNewRenderer_KeepsStateText(t *testing.T) {
	render := NewRenderer()
	out, err := render("State: Eval\nTerm: [`ii]\nKont: ()")
	require.NoError(t, err)
	assert.Contains(t, out, "State: Eval")
	assert.Contains(t, out, "Kont: ()")
}

func TestIsTerminal_File(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "out")
	require.NoError(t, err)
	defer f.Close()
	assert.False(t, IsTerminal(f))
}
