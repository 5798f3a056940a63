package domain_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/aretw0/unabs/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestNewSession(t *testing.T) {
	s := domain.NewSession("abc", "`ii")
	assert.Equal(t, domain.StatusReady, s.Status)
	assert.False(t, s.Terminal())
	assert.Equal(t, s.CreatedAt, s.UpdatedAt)

	s.Status = domain.StatusHalted
	assert.True(t, s.Terminal())
	s.Status = domain.StatusFailed
	assert.True(t, s.Terminal())
}

func TestSession_Clone(t *testing.T) {
	s := domain.NewSession("abc", "`ii")
	s.Snapshot = json.RawMessage(`{"version":1}`)

	c := s.Clone()
	c.Snapshot[0] = '['
	c.Output = "changed"

	assert.Equal(t, `{"version":1}`, string(s.Snapshot))
	assert.Empty(t, s.Output)
}

func TestValidSessionID(t *testing.T) {
	for _, id := range []string{"abc", "run-1", "a.b"} {
		assert.True(t, domain.ValidSessionID(id), id)
	}
	for _, id := range []string{"", ".", "..", "a/b", `a\b`, "a\x00"} {
		assert.False(t, domain.ValidSessionID(id), "%q", id)
	}
}

func TestLifecycleHooks_Merge(t *testing.T) {
	var calls []string
	a := domain.LifecycleHooks{
		OnHalt: func(context.Context, *domain.RunEvent) { calls = append(calls, "a") },
	}
	b := domain.LifecycleHooks{
		OnHalt:    func(context.Context, *domain.RunEvent) { calls = append(calls, "b") },
		OnSuspend: func(context.Context, *domain.RunEvent) { calls = append(calls, "suspend") },
	}

	m := a.Merge(b)
	m.OnHalt(context.Background(), &domain.RunEvent{})
	m.OnSuspend(context.Background(), &domain.RunEvent{})

	assert.Nil(t, m.OnRunStart)
	assert.Equal(t, []string{"a", "b", "suspend"}, calls)
}
