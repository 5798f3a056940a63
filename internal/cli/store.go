package cli

import (
	"context"
	"fmt"

	"github.com/aretw0/unabs/internal/config"
	"github.com/aretw0/unabs/pkg/adapters/file"
	"github.com/aretw0/unabs/pkg/adapters/memory"
	"github.com/aretw0/unabs/pkg/adapters/redis"
	"github.com/aretw0/unabs/pkg/persistence/middleware"
	"github.com/aretw0/unabs/pkg/ports"
	"github.com/aretw0/unabs/pkg/session"
)

// Sessions opens the configured session store and wraps it in a manager.
// The returned function releases the backend connection.
func (e *Env) Sessions(ctx context.Context) (*session.Manager, func() error, error) {
	cfg := e.Config.Store
	closeFn := func() error { return nil }

	var (
		store ports.SessionStore
		opts  = []session.Option{session.WithLogger(e.Logger)}
	)

	switch cfg.Backend {
	case config.BackendMemory:
		store = memory.NewStore()
	case config.BackendRedis:
		ttl, err := cfg.Redis.TTLDuration()
		if err != nil {
			return nil, nil, err
		}
		rs := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB,
			redis.WithPrefix(cfg.Redis.Prefix),
			redis.WithTTL(ttl),
		)
		if err := rs.Client().Ping(ctx).Err(); err != nil {
			_ = rs.Close()
			return nil, nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Redis.Addr, err)
		}
		store = rs
		closeFn = rs.Close
		// Several processes may share the server; serialize them per session.
		opts = append(opts, session.WithLocker(redis.NewLocker(rs.Client(), cfg.Redis.Prefix)))
	default:
		store = file.New(cfg.Path)
	}

	active, fallback, err := cfg.Keys()
	if err != nil {
		_ = closeFn()
		return nil, nil, err
	}
	if active != nil {
		store = middleware.Chain(store, middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
			ActiveKey:    active,
			FallbackKeys: fallback,
		}))
	}

	e.Logger.Debug("Session store ready", "backend", describeBackend(cfg), "encrypted", active != nil)
	return session.NewManager(store, opts...), closeFn, nil
}
