package runner

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/aretw0/unabs/pkg/machine"
)

// ErrQuit is returned by Stepper.Run when the user leaves before the program halts.
var ErrQuit = errors.New("stepper: quit")

// ContentRenderer transforms a state dump before it is printed.
// This allows for TUI rendering (markdown to ANSI) without coupling the core package.
type ContentRenderer func(string) (string, error)

// Stepper is the interactive single-step debugger.
//
// It prints the current state and reads one command per line: an empty line
// (or anything unrecognized) takes one step, "r" runs to completion and "q"
// quits. Program output is written to the same writer as the state dumps.
type Stepper struct {
	Reader   *bufio.Reader
	Writer   io.Writer
	Renderer ContentRenderer

	// MaxSteps bounds the "r" command. Zero means unbounded.
	MaxSteps uint64

	inputChan chan inputResult
	startOnce sync.Once
}

type inputResult struct {
	text string
	err  error
}

// NewStepper creates a stepper reading commands from r and writing to w.
func NewStepper(r io.Reader, w io.Writer) *Stepper {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	return &Stepper{
		Reader: bufio.NewReader(r),
		Writer: w,
	}
}

// Run steps s until the program halts, the user quits or ctx is done.
// It returns the final value, or the state reached together with ErrQuit,
// io.EOF or ctx.Err().
func (st *Stepper) Run(ctx context.Context, s machine.State) (machine.Value, machine.State, error) {
	out := machine.NewWriterSink(st.Writer)

	st.show(s)
	fmt.Fprintln(st.Writer, "Press enter to step, `r` to run to completion, `q` to quit.")

	for {
		cmd, err := st.input(ctx)
		if err != nil {
			return nil, s, err
		}

		switch cmd {
		case "q", "quit", "exit":
			return nil, s, ErrQuit
		case "r":
			res, err := machine.Run(ctx, s, out, machine.WithMaxSteps(st.MaxSteps))
			if err != nil {
				return nil, res.State, err
			}
			st.result(res.Value)
			return res.Value, nil, nil
		}

		next, v, err := machine.Step(s, out)
		if err != nil {
			return nil, s, err
		}
		if next == nil {
			st.result(v)
			return v, nil, nil
		}
		s = next
		st.show(s)
	}
}

func (st *Stepper) show(s machine.State) {
	text := s.String()
	if st.Renderer != nil {
		if rendered, err := st.Renderer(text); err == nil {
			text = strings.TrimSpace(rendered)
		}
	}
	fmt.Fprintln(st.Writer, text)
}

func (st *Stepper) result(v machine.Value) {
	fmt.Fprintf(st.Writer, "-----\nResult:\n%s\n", v)
}

func (st *Stepper) initPump() {
	st.startOnce.Do(func() {
		st.inputChan = make(chan inputResult)
		go st.pump()
	})
}

func (st *Stepper) pump() {
	for {
		text, err := st.Reader.ReadString('\n')

		// A last line without a newline still counts.
		if text != "" {
			st.inputChan <- inputResult{text: text}
		}
		if err != nil {
			if err != io.EOF {
				st.inputChan <- inputResult{err: err}
			}
			close(st.inputChan)
			return
		}
	}
}

func (st *Stepper) input(ctx context.Context) (string, error) {
	st.initPump()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
		fmt.Fprint(st.Writer, "> ")
	}

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res, ok := <-st.inputChan:
		if !ok {
			return "", io.EOF
		}
		if res.err != nil {
			return "", fmt.Errorf("input error: %w", res.err)
		}
		return SanitizeCommand(res.text)
	}
}
