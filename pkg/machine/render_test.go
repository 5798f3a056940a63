package machine_test

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/aretw0/unabs/pkg/machine"
	"github.com/aretw0/unabs/pkg/term"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sharedCaptures builds n frames where each frame holds a capture of the
// tail it sits on, so the full rendering doubles with every frame.
func sharedCaptures(n int) machine.Kont {
	var k machine.Kont
	for range n {
		k = &machine.BindV{F: &machine.C1{K: k}, Next: k}
	}
	return k
}

func TestRender_SharedCapturesAreBounded(t *testing.T) {
	k := sharedCaptures(64)
	s := machine.ApplyK{V: &machine.C1{K: k}, K: k}

	start := time.Now()
	text := s.String()
	assert.Less(t, time.Since(start), 2*time.Second)

	assert.LessOrEqual(t, len(text), machine.DefaultRenderLimit+len(machine.Elision))
	assert.True(t, strings.HasPrefix(text, "State: ApplyK\nValue: `c("))
	assert.True(t, strings.HasSuffix(text, machine.Elision))
	assert.LessOrEqual(t, len(machine.KontString(k)), machine.DefaultRenderLimit+len(machine.Elision))
}

func TestRender_SharedValuesAreBounded(t *testing.T) {
	var v machine.Value = machine.I0{}
	for range 200 {
		v = &machine.S2{X: v, Y: v}
	}
	text := machine.RenderValue(v, 100)
	assert.Equal(t, 100+len(machine.Elision), len(text))
	assert.True(t, strings.HasPrefix(text, "``s``s"))
}

func TestRender_Unlimited(t *testing.T) {
	k := sharedCaptures(3)
	want := "``c()``c(``c()())``c(``c()``c(``c()())())()"
	assert.Equal(t, want, machine.RenderKont(k, 0))
	assert.Equal(t, want, machine.KontString(k))

	s := machine.Eval{T: term.MustParse("`.xi"), K: &machine.BindT{T: term.MustParse("r")}}
	assert.Equal(t, "State: Eval\nTerm: [`.xi]\nKont: `()[r]", machine.RenderState(s, 0))
	assert.Equal(t, machine.RenderState(s, 0), s.String())
}

func TestRender_CutKeepsRunes(t *testing.T) {
	v := &machine.K1{X: machine.Put0{Char: 'é'}}
	require.Equal(t, "`k.é", v.String())

	text := machine.RenderValue(v, 4)
	assert.True(t, utf8.ValidString(text))
	assert.Equal(t, "`k."+machine.Elision, text)
}
