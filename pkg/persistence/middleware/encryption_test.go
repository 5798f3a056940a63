package middleware_test

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"strings"
	"testing"

	"github.com/aretw0/unabs/pkg/adapters/memory"
	"github.com/aretw0/unabs/pkg/domain"
	"github.com/aretw0/unabs/pkg/persistence/middleware"
	contract "github.com/aretw0/unabs/pkg/ports/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generateKey(t *testing.T) []byte {
	t.Helper()
	k := make([]byte, 32)
	_, err := rand.Read(k)
	require.NoError(t, err)
	return k
}

func secretSession() *domain.Session {
	s := domain.NewSession("test-session", "`.s`.e`.c`.r`.e`.ti")
	s.Status = domain.StatusSuspended
	s.Steps = 12
	s.Output = "secr"
	s.Snapshot = json.RawMessage(`{"version":1,"nodes":[]}`)
	return s
}

func TestEncryptionMiddleware_Contract(t *testing.T) {
	mw := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: generateKey(t)})
	contract.RunSessionStoreContract(t, mw(memory.NewStore()))
}

func TestEncryptionMiddleware_Roundtrip(t *testing.T) {
	underlying := memory.NewStore()
	secure := middleware.Chain(underlying,
		middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: generateKey(t)}))
	ctx := context.Background()
	original := secretSession()

	require.NoError(t, secure.Save(ctx, original))

	stored, err := underlying.Load(ctx, original.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.Program)
	assert.Empty(t, stored.Output)
	assert.Equal(t, domain.StatusSuspended, stored.Status, "status stays visible")
	assert.Equal(t, uint64(12), stored.Steps)
	assert.False(t, strings.Contains(string(stored.Snapshot), "nodes"))

	loaded, err := secure.Load(ctx, original.ID)
	require.NoError(t, err)
	assert.Equal(t, original.Program, loaded.Program)
	assert.Equal(t, original.Output, loaded.Output)
	assert.JSONEq(t, string(original.Snapshot), string(loaded.Snapshot))
}

func TestEncryptionMiddleware_KeyRotation(t *testing.T) {
	underlying := memory.NewStore()
	oldKey, newKey := generateKey(t), generateKey(t)
	ctx := context.Background()

	withOld := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: oldKey})(underlying)
	require.NoError(t, withOld.Save(ctx, secretSession()))

	rotated := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
		ActiveKey:    newKey,
		FallbackKeys: [][]byte{oldKey},
	})(underlying)

	loaded, err := rotated.Load(ctx, "test-session")
	require.NoError(t, err, "fallback key should decrypt")
	assert.Equal(t, "secr", loaded.Output)

	loaded.Output = "secret"
	require.NoError(t, rotated.Save(ctx, loaded))

	_, err = withOld.Load(ctx, "test-session")
	assert.Error(t, err, "data re-encrypted with the new key must not open with the old one")
}

func TestEncryptionMiddleware_RejectsClearText(t *testing.T) {
	underlying := memory.NewStore()
	require.NoError(t, underlying.Save(context.Background(), secretSession()))

	secure := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: generateKey(t)})(underlying)
	_, err := secure.Load(context.Background(), "test-session")
	assert.ErrorIs(t, err, middleware.ErrNotEncrypted)
}

func TestEncryptionMiddleware_InvalidKey(t *testing.T) {
	assert.Panics(t, func() {
		middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: []byte("short-key")})
	})
}
