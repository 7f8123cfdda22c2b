package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/regula/pkg/domain"
)

// LogHooks logs every conversion end at info and every step at debug.
func LogHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnConversionEnd: func(ctx context.Context, e *domain.ConversionEvent) {
			logger.InfoContext(ctx, "conversion",
				"kind", e.Kind,
				"success", e.Success,
				"steps", e.Steps,
				"duration", e.Duration,
				"error_kind", e.ErrorKind,
			)
		},
		OnStep: func(ctx context.Context, e *domain.StepEvent) {
			logger.DebugContext(ctx, "step",
				"kind", e.Kind,
				"id", e.Step.ID,
				"type", e.Step.Kind,
				"title", e.Step.Title,
			)
		},
	}
}

// Merge fans each event out to every set of hooks, in order.
func Merge(all ...domain.LifecycleHooks) domain.LifecycleHooks {
	var merged domain.LifecycleHooks
	for _, h := range all {
		merged.OnConversionStart = chain(merged.OnConversionStart, h.OnConversionStart)
		merged.OnConversionEnd = chain(merged.OnConversionEnd, h.OnConversionEnd)
		merged.OnStep = chain(merged.OnStep, h.OnStep)
	}
	return merged
}

func chain[E any](a, b func(context.Context, *E)) func(context.Context, *E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e *E) {
		a(ctx, e)
		b(ctx, e)
	}
}
