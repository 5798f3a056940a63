package unabs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/aretw0/unabs/internal/logging"
	"github.com/aretw0/unabs/pkg/domain"
	"github.com/aretw0/unabs/pkg/machine"
	"github.com/aretw0/unabs/pkg/snapshot"
	"github.com/aretw0/unabs/pkg/term"
)

// Engine is the high-level entry point of the library. It runs programs
// one-shot, or step-bounded against persisted sessions.
// An Engine is stateless and safe for concurrent use.
type Engine struct {
	hooks         domain.LifecycleHooks
	logger        *slog.Logger
	maxSteps      uint64
	checkInterval uint64
	now           func() time.Time
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLifecycleHooks registers observability hooks. Repeated calls merge.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = e.hooks.Merge(hooks)
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithMaxSteps bounds Execute, and Advance calls made with a zero budget.
// Zero means unbounded.
func WithMaxSteps(n uint64) Option {
	return func(e *Engine) {
		e.maxSteps = n
	}
}

// WithCheckInterval sets how many steps run between context checks.
func WithCheckInterval(n uint64) Option {
	return func(e *Engine) {
		e.checkInterval = n
	}
}

// New creates an Engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		logger:        logging.NewNop(),
		checkInterval: machine.DefaultCheckInterval,
		now:           func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Compile parses src. Syntax errors are *term.SyntaxError.
func (e *Engine) Compile(src string) (term.Term, error) {
	return term.Parse(src)
}

// Execute parses src and runs it from the start, streaming output to w.
// A run stopped by the step limit or by ctx returns the Result reached so far
// together with machine.ErrStepLimit or ctx.Err().
func (e *Engine) Execute(ctx context.Context, src string, w io.Writer) (machine.Result, error) {
	return e.ExecuteLimit(ctx, src, w, e.maxSteps)
}

// ExecuteLimit is Execute with its own step limit; zero means the engine
// limit. Nothing is kept of the run besides what is written to w.
func (e *Engine) ExecuteLimit(ctx context.Context, src string, w io.Writer, maxSteps uint64) (machine.Result, error) {
	t, err := e.Compile(src)
	if err != nil {
		return machine.Result{}, err
	}
	if maxSteps == 0 {
		maxSteps = e.maxSteps
	}
	return e.run(ctx, "", machine.Start(t), machine.NewWriterSink(w), maxSteps)
}

// Start parses src and creates a session positioned before the first step.
// The session is not persisted.
func (e *Engine) Start(ctx context.Context, sessionID, src string) (*domain.Session, error) {
	if !domain.ValidSessionID(sessionID) {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidSessionID, sessionID)
	}
	if _, err := e.Compile(src); err != nil {
		return nil, err
	}
	sess := domain.NewSession(sessionID, src)
	sess.CreatedAt = e.now()
	sess.UpdatedAt = sess.CreatedAt
	e.logger.Debug("session started", "session_id", sessionID, "program_bytes", len(src))
	return sess, nil
}

// Advance runs at most budget steps of sess (zero means the engine limit)
// and returns an updated copy plus the output printed by this call.
//
// Reaching the budget is not an error: the session comes back suspended.
// When ctx is done the suspended session is still returned, along with
// ctx.Err(), so the caller can persist it.
func (e *Engine) Advance(ctx context.Context, sess *domain.Session, budget uint64) (*domain.Session, string, error) {
	return e.AdvanceStream(ctx, sess, budget, nil)
}

// AdvanceStream is Advance that also streams output to w as it is printed.
// A nil w only collects the output.
func (e *Engine) AdvanceStream(ctx context.Context, sess *domain.Session, budget uint64, w io.Writer) (*domain.Session, string, error) {
	switch sess.Status {
	case domain.StatusHalted:
		return nil, "", domain.ErrSessionHalted
	case domain.StatusFailed:
		return nil, "", fmt.Errorf("%w: %s", domain.ErrSessionFailed, sess.Error)
	}

	idx, state, value, err := e.restore(sess)
	if err != nil {
		failed := sess.Clone()
		failed.Status = domain.StatusFailed
		failed.Error = err.Error()
		failed.UpdatedAt = e.now()
		return failed, "", err
	}
	if value != nil {
		// The snapshot already holds a result; only the status was stale.
		next := sess.Clone()
		next.Status = domain.StatusHalted
		next.Result = value.String()
		return next, "", nil
	}

	if budget == 0 {
		budget = e.maxSteps
	}

	var out strings.Builder
	var sink machine.Sink = &out
	if w != nil {
		sink = machine.Tee(&out, machine.NewWriterSink(w))
	}
	res, runErr := e.run(ctx, sess.ID, state, sink, budget)

	next := sess.Clone()
	next.Steps += res.Steps
	next.Output += out.String()
	next.UpdatedAt = e.now()

	var snap *snapshot.Snapshot
	var err2 error
	switch {
	case runErr == nil:
		next.Status = domain.StatusHalted
		next.Result = res.Value.String()
		snap, err2 = snapshot.CaptureResult(idx, res.Value)
	case errors.Is(runErr, machine.ErrStepLimit):
		runErr = nil
		fallthrough
	case ctx.Err() != nil:
		next.Status = domain.StatusSuspended
		snap, err2 = snapshot.Capture(idx, res.State)
	default:
		next.Status = domain.StatusFailed
		next.Error = runErr.Error()
		snap, err2 = snapshot.Capture(idx, res.State)
	}
	if err2 != nil {
		return nil, "", fmt.Errorf("failed to capture session %s: %w", sess.ID, err2)
	}
	if next.Snapshot, err2 = snapshot.Marshal(snap); err2 != nil {
		return nil, "", err2
	}
	return next, out.String(), runErr
}

// Inspect renders the machine state sess is positioned at. A halted session
// renders as "State: Halted" followed by its value.
func (e *Engine) Inspect(sess *domain.Session) (string, error) {
	_, state, value, err := e.restore(sess)
	if err != nil {
		return "", err
	}
	if value != nil {
		return "State: Halted\nValue: " + value.String(), nil
	}
	return state.String(), nil
}

// State decodes the machine state of a session that has not halted, together
// with the index of the program tree its terms point into.
func (e *Engine) State(sess *domain.Session) (*term.Index, machine.State, error) {
	idx, state, value, err := e.restore(sess)
	if err != nil {
		return nil, nil, err
	}
	if value != nil {
		return nil, nil, domain.ErrSessionHalted
	}
	return idx, state, nil
}

func (e *Engine) restore(sess *domain.Session) (*term.Index, machine.State, machine.Value, error) {
	t, err := e.Compile(sess.Program)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("session %s: %w", sess.ID, err)
	}
	idx := term.NewIndex(t)
	if len(sess.Snapshot) == 0 {
		return idx, machine.Start(t), nil, nil
	}

	snap, err := snapshot.Unmarshal(sess.Snapshot)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("session %s: %w", sess.ID, err)
	}
	state, value, err := snap.Restore(idx)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("session %s: %w", sess.ID, err)
	}
	return idx, state, value, nil
}

// run drives the machine and reports the lifecycle through the hooks.
func (e *Engine) run(ctx context.Context, sessionID string, s machine.State, out machine.Sink, budget uint64) (machine.Result, error) {
	start := time.Now()
	e.emit(ctx, e.hooks.OnRunStart, &domain.RunEvent{Type: domain.EventRunStart, SessionID: sessionID})

	sink := newHookSink(out, func(chunk string) {
		e.emit(ctx, e.hooks.OnOutput, &domain.RunEvent{Type: domain.EventOutput, SessionID: sessionID, Output: chunk})
	})
	res, err := machine.Run(ctx, s, sink,
		machine.WithMaxSteps(budget),
		machine.WithCheckInterval(e.checkInterval),
	)
	sink.flush()

	ev := &domain.RunEvent{SessionID: sessionID, Steps: res.Steps, Elapsed: time.Since(start)}
	switch {
	case err == nil:
		ev.Type = domain.EventHalt
		ev.Result = res.Value.String()
		e.emit(ctx, e.hooks.OnHalt, ev)
		e.logger.Debug("program halted", "session_id", sessionID, "steps", res.Steps, "result", ev.Result)
	default:
		ev.Type = domain.EventSuspend
		ev.Reason = suspendReason(err)
		e.emit(ctx, e.hooks.OnSuspend, ev)
		e.logger.Debug("program suspended", "session_id", sessionID, "steps", res.Steps, "reason", ev.Reason, "err", err)
	}
	return res, err
}

func (e *Engine) emit(ctx context.Context, hook func(context.Context, *domain.RunEvent), ev *domain.RunEvent) {
	if hook == nil {
		return
	}
	ev.Timestamp = e.now()
	hook(ctx, ev)
}

func suspendReason(err error) string {
	switch {
	case errors.Is(err, machine.ErrStepLimit):
		return "step_limit"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "error"
	}
}
