package machine

import (
	"context"

	"github.com/aretw0/unabs/pkg/term"
)

// DefaultCheckInterval is how many steps Run takes between context checks.
const DefaultCheckInterval = 1024

// Result is the outcome of Run.
type Result struct {
	// Value is the final value; nil unless the program halted.
	Value Value
	// State is where the run stopped; nil when the program halted.
	State State
	// Steps counts the transitions taken by this call.
	Steps uint64
}

// Halted reports whether the program ran to completion.
func (r Result) Halted() bool { return r.Value != nil }

type config struct {
	maxSteps      uint64
	checkInterval uint64
	observer      func(State)
}

// Option configures Run.
type Option func(*config)

// WithMaxSteps bounds the number of transitions. Zero means unbounded.
func WithMaxSteps(n uint64) Option {
	return func(c *config) { c.maxSteps = n }
}

// WithCheckInterval sets how often, in steps, the context is polled.
func WithCheckInterval(n uint64) Option {
	return func(c *config) {
		if n > 0 {
			c.checkInterval = n
		}
	}
}

// WithObserver registers fn to see every state before it is stepped.
func WithObserver(fn func(State)) Option {
	return func(c *config) { c.observer = fn }
}

// Run drives the machine from s until it halts.
//
// When the step budget runs out Run returns ErrStepLimit; when ctx is done it
// returns ctx.Err(). In both cases Result.State holds the next state to
// execute. A sink error aborts the run and Result.State is the state whose
// output failed.
func Run(ctx context.Context, s State, out Sink, opts ...Option) (Result, error) {
	cfg := config{checkInterval: DefaultCheckInterval}
	for _, opt := range opts {
		opt(&cfg)
	}
	if out == nil {
		out = Discard
	}

	var steps uint64
	for {
		if cfg.maxSteps > 0 && steps >= cfg.maxSteps {
			return Result{State: s, Steps: steps}, ErrStepLimit
		}
		if steps%cfg.checkInterval == 0 {
			if err := ctx.Err(); err != nil {
				return Result{State: s, Steps: steps}, err
			}
		}
		if cfg.observer != nil {
			cfg.observer(s)
		}

		next, v, err := Step(s, out)
		if err != nil {
			return Result{State: s, Steps: steps}, err
		}
		steps++
		if next == nil {
			return Result{Value: v, Steps: steps}, nil
		}
		s = next
	}
}

// RunTerm runs t from the initial state.
func RunTerm(ctx context.Context, t term.Term, out Sink, opts ...Option) (Result, error) {
	return Run(ctx, Start(t), out, opts...)
}
