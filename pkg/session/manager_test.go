package session_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aretw0/unabs/pkg/adapters/memory"
	"github.com/aretw0/unabs/pkg/domain"
	"github.com/aretw0/unabs/pkg/ports"
	"github.com/aretw0/unabs/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// slowStore adds latency to provoke races if locking is missing.
type slowStore struct {
	*memory.Store
}

func (s slowStore) Save(ctx context.Context, sess *domain.Session) error {
	time.Sleep(5 * time.Millisecond)
	return s.Store.Save(ctx, sess)
}

func (s slowStore) Load(ctx context.Context, id string) (*domain.Session, error) {
	time.Sleep(5 * time.Millisecond)
	return s.Store.Load(ctx, id)
}

func TestManager_UpdateIsSerialized(t *testing.T) {
	manager := session.NewManager(slowStore{memory.NewStore()})
	ctx := context.Background()
	id := "race-test"
	require.NoError(t, manager.Save(ctx, domain.NewSession(id, "i")))

	var wg sync.WaitGroup
	writers := 10
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := manager.Update(ctx, id, func(_ context.Context, s *domain.Session) (*domain.Session, error) {
				s.Steps++
				return s, nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	sess, err := manager.Load(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, uint64(writers), sess.Steps, "lost update")
}

func TestManager_LoadOrStart(t *testing.T) {
	manager := session.NewManager(slowStore{memory.NewStore()})
	ctx := context.Background()
	id := "atomic-init"

	var starts, creations atomic.Int32
	start := func(context.Context) (*domain.Session, error) {
		starts.Add(1)
		return domain.NewSession(id, "`ii"), nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sess, created, err := manager.LoadOrStart(ctx, id, start)
			assert.NoError(t, err)
			assert.NotNil(t, sess)
			if created {
				creations.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), starts.Load())
	assert.Equal(t, int32(1), creations.Load())

	sess, err := manager.Load(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "`ii", sess.Program)
}

func TestManager_LoadOrStartError(t *testing.T) {
	manager := session.NewManager(memory.NewStore())
	boom := errors.New("boom")

	_, created, err := manager.LoadOrStart(context.Background(), "x", func(context.Context) (*domain.Session, error) {
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)
	assert.False(t, created)

	_, err = manager.Load(context.Background(), "x")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestManager_UpdateSavesOnPartialFailure(t *testing.T) {
	manager := session.NewManager(memory.NewStore())
	ctx := context.Background()
	require.NoError(t, manager.Save(ctx, domain.NewSession("s", "i")))
	boom := errors.New("boom")

	_, err := manager.Update(ctx, "s", func(_ context.Context, s *domain.Session) (*domain.Session, error) {
		s.Status = domain.StatusFailed
		return s, boom
	})
	assert.ErrorIs(t, err, boom)

	sess, err := manager.Load(ctx, "s")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusFailed, sess.Status)

	_, err = manager.Update(ctx, "missing", func(_ context.Context, s *domain.Session) (*domain.Session, error) {
		return s, nil
	})
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

type recordingLocker struct {
	mu     sync.Mutex
	locked []string
	ttl    time.Duration
	fail   error
}

func (l *recordingLocker) Lock(_ context.Context, key string, ttl time.Duration) (ports.UnlockFunc, error) {
	if l.fail != nil {
		return nil, l.fail
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.locked = append(l.locked, key)
	l.ttl = ttl
	return func(context.Context) error { return errors.New("already expired") }, nil
}

func TestManager_DistributedLock(t *testing.T) {
	locker := &recordingLocker{}
	manager := session.NewManager(memory.NewStore(),
		session.WithLocker(locker),
		session.WithLockTTL(time.Minute),
	)
	ctx := context.Background()

	// A failing unlock is only logged.
	require.NoError(t, manager.Save(ctx, domain.NewSession("a", "i")))
	assert.Equal(t, []string{"a"}, locker.locked)
	assert.Equal(t, time.Minute, locker.ttl)

	locker.fail = errors.New("redis down")
	err := manager.Save(ctx, domain.NewSession("a", "i"))
	assert.ErrorIs(t, err, locker.fail)
}
