package runner

import (
	"io"
	"log/slog"

	"github.com/aretw0/unabs"
	"github.com/aretw0/unabs/pkg/session"
)

// DefaultCheckpointEvery is the number of steps between session saves.
const DefaultCheckpointEvery = 100_000

// Option defines a functional option for configuring the Runner.
type Option func(*Runner)

// WithEngine configures the engine used to execute programs.
func WithEngine(engine *unabs.Engine) Option {
	return func(r *Runner) {
		r.Engine = engine
	}
}

// WithSessions enables durable execution through the given manager.
func WithSessions(m *session.Manager) Option {
	return func(r *Runner) {
		r.Sessions = m
	}
}

// WithSessionID sets the session ID for persistence context.
// This is required if WithSessions is used.
func WithSessionID(id string) Option {
	return func(r *Runner) {
		r.SessionID = id
	}
}

// WithCheckpointEvery sets how many steps run between saves.
func WithCheckpointEvery(n uint64) Option {
	return func(r *Runner) {
		if n > 0 {
			r.CheckpointEvery = n
		}
	}
}

// WithMaxSteps bounds the total number of steps of a run, across resumes.
func WithMaxSteps(n uint64) Option {
	return func(r *Runner) {
		r.MaxSteps = n
	}
}

// WithOutput sets where program output is streamed.
func WithOutput(w io.Writer) Option {
	return func(r *Runner) {
		r.Output = w
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.Logger = logger
	}
}
