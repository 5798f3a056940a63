package observability

import (
	"context"
	"log/slog"
	"sync"
	"unicode/utf8"

	"github.com/aretw0/unabs/pkg/domain"
)

// LoggingHooks returns hooks that log every lifecycle event at level.
func LoggingHooks(logger *slog.Logger, level slog.Level) domain.LifecycleHooks {
	log := func(msg string, attrs ...any) {
		logger.Log(context.Background(), level, msg, attrs...)
	}
	return domain.LifecycleHooks{
		OnRunStart: func(ctx context.Context, ev *domain.RunEvent) {
			log("run_start", "session_id", ev.SessionID)
		},
		OnOutput: func(ctx context.Context, ev *domain.RunEvent) {
			log("output", "session_id", ev.SessionID, "runes", utf8.RuneCountInString(ev.Output))
		},
		OnSuspend: func(ctx context.Context, ev *domain.RunEvent) {
			log("run_suspend",
				"session_id", ev.SessionID,
				"steps", ev.Steps,
				"reason", ev.Reason,
				"elapsed", ev.Elapsed,
			)
		},
		OnHalt: func(ctx context.Context, ev *domain.RunEvent) {
			log("run_halt",
				"session_id", ev.SessionID,
				"steps", ev.Steps,
				"result", ev.Result,
				"elapsed", ev.Elapsed,
			)
		},
	}
}

// Recorder keeps the last Capacity events.
type Recorder struct {
	mu       sync.Mutex
	events   []domain.RunEvent
	capacity int
}

// DefaultCapacity is the number of events a Recorder keeps when none is given.
const DefaultCapacity = 256

// NewRecorder creates a recorder holding at most capacity events.
func NewRecorder(capacity int) *Recorder {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Recorder{capacity: capacity}
}

// Hooks returns hooks that append every event to the recorder.
func (r *Recorder) Hooks() domain.LifecycleHooks {
	record := func(_ context.Context, ev *domain.RunEvent) {
		r.add(*ev)
	}
	return domain.LifecycleHooks{
		OnRunStart: record,
		OnOutput:   record,
		OnSuspend:  record,
		OnHalt:     record,
	}
}

func (r *Recorder) add(ev domain.RunEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.events) == r.capacity {
		copy(r.events, r.events[1:])
		r.events = r.events[:len(r.events)-1]
	}
	r.events = append(r.events, ev)
}

// Events returns a copy of the recorded events, oldest first. A non-empty
// sessionID keeps only that session's events.
func (r *Recorder) Events(sessionID string) []domain.RunEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.RunEvent, 0, len(r.events))
	for _, ev := range r.events {
		if sessionID == "" || ev.SessionID == sessionID {
			out = append(out, ev)
		}
	}
	return out
}
