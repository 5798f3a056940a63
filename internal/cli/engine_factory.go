package cli

import (
	"fmt"
	"log/slog"

	"github.com/aretw0/unabs"
	"github.com/aretw0/unabs/internal/config"
	"github.com/aretw0/unabs/internal/metrics"
	"github.com/aretw0/unabs/pkg/domain"
	"github.com/aretw0/unabs/pkg/observability"
)

// Env bundles what every command needs: the loaded configuration, the
// logger and the engine collectors.
type Env struct {
	Config  *config.Config
	Logger  *slog.Logger
	Metrics *metrics.Metrics
	Debug   bool
}

// NewEnv loads the config file at path (defaults when missing) and sets up logging.
func NewEnv(path string, debug bool) (*Env, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	logger, err := createLogger(cfg.Log.Level, debug)
	if err != nil {
		return nil, err
	}
	return &Env{
		Config:  cfg,
		Logger:  logger,
		Metrics: metrics.New(),
		Debug:   debug,
	}, nil
}

// Engine creates an engine with the configured step limit and the metrics
// hooks, plus debug tracing when --debug is set.
func (e *Env) Engine(opts ...unabs.Option) *unabs.Engine {
	hooks := e.Metrics.Hooks()
	if e.Debug {
		hooks = hooks.Merge(createDebugHooks(e.Logger))
	}
	engineOpts := []unabs.Option{
		unabs.WithLogger(e.Logger),
		unabs.WithLifecycleHooks(hooks),
		unabs.WithMaxSteps(e.Config.MaxSteps),
	}
	return unabs.New(append(engineOpts, opts...)...)
}

func createDebugHooks(logger *slog.Logger) domain.LifecycleHooks {
	return observability.LoggingHooks(logger, slog.LevelDebug)
}

func describeBackend(cfg config.StoreConfig) string {
	switch cfg.Backend {
	case config.BackendRedis:
		return fmt.Sprintf("redis://%s/%d", cfg.Redis.Addr, cfg.Redis.DB)
	case config.BackendMemory:
		return "memory"
	default:
		return cfg.Path
	}
}
