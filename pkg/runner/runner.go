package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"time"

	"github.com/aretw0/unabs"
	"github.com/aretw0/unabs/pkg/domain"
	"github.com/aretw0/unabs/pkg/machine"
	"github.com/aretw0/unabs/pkg/session"
)

// ephemeralID names sessions that are never persisted.
const ephemeralID = "ephemeral"

// Runner runs a program to completion, checkpointing it when a session
// manager is configured.
type Runner struct {
	Engine *unabs.Engine

	// Sessions is the persistence layer for durable execution.
	// If nil, runs are ephemeral.
	Sessions  *session.Manager
	SessionID string

	// CheckpointEvery is the number of steps between saves.
	CheckpointEvery uint64

	// MaxSteps bounds the total steps of the session. Zero means unbounded.
	MaxSteps uint64

	Output io.Writer
	Logger *slog.Logger
}

// NewRunner creates a Runner writing to stdout.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		CheckpointEvery: DefaultCheckpointEvery,
		Output:          os.Stdout,
		Logger:          slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.Engine == nil {
		r.Engine = unabs.New(unabs.WithLogger(r.Logger))
	}
	return r
}

// Run executes src and returns the final session.
//
// With a session manager and ID, an existing session with that ID is resumed
// instead, and only output not printed before is written. The session is
// saved every CheckpointEvery steps and once more when the run stops, also
// when ctx is canceled. Reaching MaxSteps returns the suspended session with
// machine.ErrStepLimit.
//
// Without persistence the program runs in one pass and CheckpointEvery is
// ignored. The returned session then carries the steps, status and result
// but not the output, which only goes to Output.
func (r *Runner) Run(ctx context.Context, src string) (*domain.Session, error) {
	if !r.durable() {
		return r.runEphemeral(ctx, src)
	}

	sess, resumed, err := r.open(ctx, src)
	if err != nil {
		return nil, err
	}
	if resumed {
		if sess.Program != src && src != "" {
			return nil, fmt.Errorf("session %s holds a different program", sess.ID)
		}
		r.Logger.Info("resuming session", "session_id", sess.ID, "steps", sess.Steps, "status", sess.Status)
	}

	for !sess.Terminal() {
		budget := r.CheckpointEvery
		if r.MaxSteps > 0 {
			if sess.Steps >= r.MaxSteps {
				return sess, machine.ErrStepLimit
			}
			budget = min(budget, r.MaxSteps-sess.Steps)
		}

		sess, err = r.advance(ctx, sess, budget)
		if err != nil {
			return sess, err
		}
	}
	if sess.Status == domain.StatusFailed {
		return sess, fmt.Errorf("%w: %s", domain.ErrSessionFailed, sess.Error)
	}
	return sess, nil
}

func (r *Runner) durable() bool {
	return r.Sessions != nil && r.SessionID != ""
}

func (r *Runner) runEphemeral(ctx context.Context, src string) (*domain.Session, error) {
	sess, err := r.Engine.Start(ctx, ephemeralID, src)
	if err != nil {
		return nil, err
	}

	limit := r.MaxSteps
	if limit == 0 {
		limit = math.MaxUint64
	}
	res, err := r.Engine.ExecuteLimit(ctx, src, r.Output, limit)
	sess.Steps = res.Steps
	sess.UpdatedAt = time.Now().UTC()

	switch {
	case err == nil:
		sess.Status = domain.StatusHalted
		sess.Result = res.Value.String()
	case errors.Is(err, machine.ErrStepLimit), ctx.Err() != nil:
		sess.Status = domain.StatusSuspended
	default:
		sess.Status = domain.StatusFailed
		sess.Error = err.Error()
	}
	return sess, err
}

func (r *Runner) open(ctx context.Context, src string) (*domain.Session, bool, error) {
	sess, created, err := r.Sessions.LoadOrStart(ctx, r.SessionID, func(ctx context.Context) (*domain.Session, error) {
		return r.Engine.Start(ctx, r.SessionID, src)
	})
	return sess, !created, err
}

func (r *Runner) advance(ctx context.Context, sess *domain.Session, budget uint64) (*domain.Session, error) {
	next, err := r.Sessions.Update(ctx, sess.ID, func(ctx context.Context, current *domain.Session) (*domain.Session, error) {
		next, _, err := r.Engine.AdvanceStream(ctx, current, budget, r.Output)
		return next, err
	})
	if next == nil {
		next = sess
	}
	if err == nil {
		r.Logger.Debug("checkpoint saved", "session_id", next.ID, "steps", next.Steps, "status", next.Status)
	}
	return next, err
}
