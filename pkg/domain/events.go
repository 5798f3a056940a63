package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventRunStart EventType = "run_start"
	EventOutput   EventType = "output"
	EventSuspend  EventType = "suspend"
	EventHalt     EventType = "halt"
)

// RunEvent describes one observable moment of a program run.
type RunEvent struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	SessionID string    `json:"session_id,omitempty"`

	// Steps taken by the run so far.
	Steps uint64 `json:"steps"`

	// Output is the text printed since the previous output event.
	Output string `json:"output,omitempty"`

	// Result is the rendered final value (EventHalt only).
	Result string `json:"result,omitempty"`

	// Reason says why a run suspended: "step_limit", "canceled" or "error".
	Reason string `json:"reason,omitempty"`

	// Elapsed is the wall time of the run (EventSuspend and EventHalt).
	Elapsed time.Duration `json:"elapsed,omitempty"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnRunStart func(context.Context, *RunEvent)
	OnOutput   func(context.Context, *RunEvent)
	OnSuspend  func(context.Context, *RunEvent)
	OnHalt     func(context.Context, *RunEvent)
}

// Merge returns hooks that call h first and then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnRunStart: chain(h.OnRunStart, other.OnRunStart),
		OnOutput:   chain(h.OnOutput, other.OnOutput),
		OnSuspend:  chain(h.OnSuspend, other.OnSuspend),
		OnHalt:     chain(h.OnHalt, other.OnHalt),
	}
}

func chain(a, b func(context.Context, *RunEvent)) func(context.Context, *RunEvent) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, ev *RunEvent) {
		a(ctx, ev)
		b(ctx, ev)
	}
}
