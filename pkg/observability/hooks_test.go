package observability_test

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/aretw0/unabs"
	"github.com/aretw0/unabs/pkg/domain"
	"github.com/aretw0/unabs/pkg/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	eng := unabs.New(unabs.WithLifecycleHooks(observability.LoggingHooks(logger, slog.LevelDebug)))

	_, err := eng.Execute(context.Background(), "`.ai", &strings.Builder{})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "msg=run_start")
	assert.Contains(t, out, "msg=output")
	assert.Contains(t, out, "msg=run_halt")
	assert.Contains(t, out, "result=i")
}

func TestLoggingHooks_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
	eng := unabs.New(unabs.WithLifecycleHooks(observability.LoggingHooks(logger, slog.LevelDebug)))

	_, err := eng.Execute(context.Background(), "`ii", &strings.Builder{})
	require.NoError(t, err)
	assert.Empty(t, buf.String())
}

func TestRecorder(t *testing.T) {
	rec := observability.NewRecorder(0)
	eng := unabs.New(unabs.WithLifecycleHooks(rec.Hooks()))
	ctx := context.Background()

	sess, err := eng.Start(ctx, "a", "`.xi")
	require.NoError(t, err)
	_, _, err = eng.Advance(ctx, sess, 0)
	require.NoError(t, err)

	_, err = eng.Execute(ctx, "`ii", &strings.Builder{})
	require.NoError(t, err)

	events := rec.Events("a")
	require.Len(t, events, 3)
	assert.Equal(t, domain.EventRunStart, events[0].Type)
	assert.Equal(t, domain.EventOutput, events[1].Type)
	assert.Equal(t, "x", events[1].Output)
	assert.Equal(t, domain.EventHalt, events[2].Type)

	assert.Len(t, rec.Events(""), 5)
}

func TestRecorder_Capacity(t *testing.T) {
	rec := observability.NewRecorder(2)
	hooks := rec.Hooks()
	ctx := context.Background()

	hooks.OnRunStart(ctx, &domain.RunEvent{Type: domain.EventRunStart, Steps: 1})
	hooks.OnOutput(ctx, &domain.RunEvent{Type: domain.EventOutput, Steps: 2})
	hooks.OnHalt(ctx, &domain.RunEvent{Type: domain.EventHalt, Steps: 3})

	events := rec.Events("")
	require.Len(t, events, 2)
	assert.Equal(t, uint64(2), events[0].Steps)
	assert.Equal(t, uint64(3), events[1].Steps)
}
