package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/regula"
	"github.com/aretw0/regula/internal/config"
	loamAdapter "github.com/aretw0/regula/pkg/adapters/loam"
	"github.com/aretw0/regula/pkg/adapters/memory"
	"github.com/aretw0/regula/pkg/adapters/redis"
	"github.com/aretw0/regula/pkg/domain"
	"github.com/aretw0/regula/pkg/observability"
	"github.com/aretw0/regula/pkg/ports"
)

// NewEngine initializes an engine with standard CLI conventions.
// metrics may be nil.
func NewEngine(cfg config.Config, logger *slog.Logger, metrics *observability.Metrics) (*regula.Engine, error) {
	opts := []regula.Option{
		regula.WithLogger(logger),
		regula.WithMaxPasses(cfg.Simplifier.MaxPasses),
	}

	hooks := []domain.LifecycleHooks{createDebugHooks(logger)}
	if metrics != nil {
		hooks = append(hooks, metrics.Hooks())
	}
	opts = append(opts, regula.WithLifecycleHooks(observability.Merge(hooks...)))

	if cfg.Catalog != "" {
		catalog, err := loamAdapter.Open(cfg.Catalog)
		if err != nil {
			return nil, fmt.Errorf("error opening catalog: %w", err)
		}
		opts = append(opts, regula.WithCatalog(catalog))
	}

	return regula.New(opts...), nil
}

// NewRateLimiter picks the limiter described by cfg: none when no request
// quota is set, Redis when an address is configured, memory otherwise.
// The returned close function is never nil.
func NewRateLimiter(ctx context.Context, cfg config.Config, logger *slog.Logger) (ports.RateLimiter, func() error, error) {
	noop := func() error { return nil }
	if cfg.HTTP.RateLimit.Requests <= 0 {
		return nil, noop, nil
	}
	window, err := cfg.HTTP.RateLimit.WindowDuration()
	if err != nil {
		return nil, noop, err
	}

	if cfg.Redis.Addr == "" {
		logger.Info("Using in-memory rate limiter", "requests", cfg.HTTP.RateLimit.Requests, "window", window)
		return memory.NewLimiter(cfg.HTTP.RateLimit.Requests, window), noop, nil
	}

	limiter := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB,
		redis.WithPrefix(cfg.Redis.Prefix),
		redis.WithLimit(cfg.HTTP.RateLimit.Requests),
		redis.WithWindow(window),
	)
	if err := limiter.Ping(ctx); err != nil {
		limiter.Close()
		return nil, noop, fmt.Errorf("redis unreachable at %s: %w", cfg.Redis.Addr, err)
	}
	logger.Info("Using redis rate limiter", "addr", cfg.Redis.Addr, "requests", cfg.HTTP.RateLimit.Requests, "window", window)
	return limiter, limiter.Close, nil
}

func createDebugHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnConversionStart: func(ctx context.Context, e *domain.ConversionEvent) {
			logger.Debug("Conversion Start", "kind", e.Kind)
		},
		OnStep: func(ctx context.Context, e *domain.StepEvent) {
			logger.Debug("Step", "kind", e.Kind, "id", e.Step.ID, "type", e.Step.Kind)
		},
		OnConversionEnd: func(ctx context.Context, e *domain.ConversionEvent) {
			if e.Success {
				logger.Debug("Conversion End (Success)", "kind", e.Kind, "steps", e.Steps, "duration", e.Duration)
			} else {
				logger.Debug("Conversion End (Error)", "kind", e.Kind, "err", e.ErrorKind)
			}
		},
	}
}
