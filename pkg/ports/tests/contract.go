// Package tests holds reusable contract suites for the ports interfaces.
package tests

import (
	"context"
	"encoding/json"
	"sort"
	"testing"
	"time"

	"github.com/aretw0/unabs/pkg/domain"
	"github.com/aretw0/unabs/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunSessionStoreContract verifies that a SessionStore implementation
// adheres to the interface contract.
func RunSessionStoreContract(t *testing.T, store ports.SessionStore) {
	t.Helper()
	ctx := context.Background()
	sessionID := "contract-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		sess := domain.NewSession(sessionID, "`r`.hi")
		sess.Status = domain.StatusSuspended
		sess.Steps = 7
		sess.Output = "h"
		sess.Snapshot = json.RawMessage(`{"version":1,"nodes":[]}`)

		require.NoError(t, store.Save(ctx, sess))

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		assert.Equal(t, sess.ID, loaded.ID)
		assert.Equal(t, sess.Program, loaded.Program)
		assert.Equal(t, sess.Status, loaded.Status)
		assert.Equal(t, sess.Steps, loaded.Steps)
		assert.Equal(t, sess.Output, loaded.Output)
		assert.JSONEq(t, string(sess.Snapshot), string(loaded.Snapshot))
		assert.True(t, sess.CreatedAt.Equal(loaded.CreatedAt))
	})

	t.Run("Save Overwrites", func(t *testing.T) {
		sess := domain.NewSession(sessionID, "`ii")
		sess.Status = domain.StatusHalted
		sess.Result = "i"
		require.NoError(t, store.Save(ctx, sess))

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusHalted, loaded.Status)
		assert.Equal(t, "i", loaded.Result)
	})

	t.Run("Load Returns Copy", func(t *testing.T) {
		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		loaded.Output = "mutated"

		again, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		assert.NotEqual(t, "mutated", again.Output)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, domain.NewSession(sessionID, "i")))
		require.NoError(t, store.Delete(ctx, sessionID))

		_, err := store.Load(ctx, sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound, "Load after Delete should return ErrSessionNotFound")

		assert.NoError(t, store.Delete(ctx, sessionID), "Delete of a missing session should succeed")
	})

	t.Run("List", func(t *testing.T) {
		id1 := sessionID + "-1"
		id2 := sessionID + "-2"
		require.NoError(t, store.Save(ctx, domain.NewSession(id1, "i")))
		require.NoError(t, store.Save(ctx, domain.NewSession(id2, "i")))
		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		sessions, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, sessions, id1)
		assert.Contains(t, sessions, id2)
	})
}

// RunProgramLoaderContract verifies that a ProgramLoader returns exactly the
// given programs, keyed by ID.
func RunProgramLoaderContract(t *testing.T, loader ports.ProgramLoader, want map[string]string) {
	t.Helper()
	ctx := context.Background()

	t.Run("GetProgram", func(t *testing.T) {
		for id, src := range want {
			p, err := loader.GetProgram(ctx, id)
			require.NoError(t, err, id)
			assert.Equal(t, id, p.ID)
			assert.Equal(t, src, p.Source)
		}
	})

	t.Run("GetProgram Not Found", func(t *testing.T) {
		_, err := loader.GetProgram(ctx, "non-existent-program")
		assert.ErrorIs(t, err, domain.ErrProgramNotFound)
	})

	t.Run("ListPrograms", func(t *testing.T) {
		ids, err := loader.ListPrograms(ctx)
		require.NoError(t, err)

		expected := make([]string, 0, len(want))
		for id := range want {
			expected = append(expected, id)
		}
		sort.Strings(expected)
		assert.Equal(t, expected, ids)
	})
}
