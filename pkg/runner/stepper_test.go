package runner_test

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/aretw0/unabs/pkg/machine"
	"github.com/aretw0/unabs/pkg/runner"
	"github.com/aretw0/unabs/pkg/term"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func start(src string) machine.State {
	return machine.Start(term.MustParse(src))
}

func TestStepper_StepToHalt(t *testing.T) {
	var out strings.Builder
	st := runner.NewStepper(strings.NewReader(strings.Repeat("\n", 20)), &out)

	v, _, err := st.Run(context.Background(), start("`ii"))
	require.NoError(t, err)
	assert.Equal(t, "i", v.String())

	text := out.String()
	assert.True(t, strings.HasPrefix(text, "State: Eval\nTerm: [`ii]\nKont: ()\n"), text)
	assert.Contains(t, text, "State: ApplyT\n")
	assert.True(t, strings.HasSuffix(text, "-----\nResult:\ni\n"), text)
}

func TestStepper_RunToCompletion(t *testing.T) {
	var out strings.Builder
	st := runner.NewStepper(strings.NewReader("\nr\n"), &out)

	v, _, err := st.Run(context.Background(), start(hello))
	require.NoError(t, err)
	assert.Equal(t, "i", v.String())
	assert.Contains(t, out.String(), "Hello world\n-----\nResult:\ni\n")
}

func TestStepper_Quit(t *testing.T) {
	st := runner.NewStepper(strings.NewReader("\n q \n"), &strings.Builder{})

	_, s, err := st.Run(context.Background(), start(hello))
	require.ErrorIs(t, err, runner.ErrQuit)
	require.NotNil(t, s)
	assert.NotEqual(t, start(hello).String(), s.String())
}

func TestStepper_EOF(t *testing.T) {
	st := runner.NewStepper(strings.NewReader(""), &strings.Builder{})

	_, s, err := st.Run(context.Background(), start(hello))
	require.ErrorIs(t, err, io.EOF)
	assert.NotNil(t, s)
}

func TestStepper_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pr, pw := io.Pipe()
	defer pw.Close()
	st := runner.NewStepper(pr, &strings.Builder{})

	_, _, err := st.Run(ctx, start(hello))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStepper_RunBounded(t *testing.T) {
	st := runner.NewStepper(strings.NewReader("r\n"), &strings.Builder{})
	st.MaxSteps = 50

	_, s, err := st.Run(context.Background(), start("``ci`ci"))
	require.ErrorIs(t, err, machine.ErrStepLimit)
	assert.NotNil(t, s)
}

func TestStepper_Renderer(t *testing.T) {
	var out strings.Builder
	st := runner.NewStepper(strings.NewReader("q\n"), &out)
	st.Renderer = func(s string) (string, error) {
		return "[[" + s + "]]\n", nil
	}

	_, _, err := st.Run(context.Background(), start("`ii"))
	require.ErrorIs(t, err, runner.ErrQuit)
	assert.True(t, strings.HasPrefix(out.String(), "[[State: Eval"), out.String())
}
