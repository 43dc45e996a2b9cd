package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/clic/pkg/domain"
)

// LogHooks returns lifecycle hooks logging every dispatch and step at debug level.
func LogHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnDispatchStart: func(ctx context.Context, e *domain.DispatchEvent) {
			logger.Debug("Dispatch started", "dispatch_id", e.DispatchID, "line", e.Line)
		},
		OnDispatchEnd: func(ctx context.Context, e *domain.DispatchEvent) {
			attrs := []any{"dispatch_id", e.DispatchID}
			if e.Report != nil {
				attrs = append(attrs, "steps", len(e.Report.Steps), "completed", e.Report.Completed())
			}
			logger.Debug("Dispatch finished", attrs...)
		},
		OnStepStart: func(ctx context.Context, e *domain.StepEvent) {
			logger.Debug("Step started", "dispatch_id", e.DispatchID, "index", e.Index, "command", e.Result.CommandID)
		},
		OnStepEnd: func(ctx context.Context, e *domain.StepEvent) {
			logger.Debug("Step finished",
				"dispatch_id", e.DispatchID,
				"index", e.Index,
				"command", e.Result.CommandID,
				"status", e.Result.Status,
				"duration", e.Result.Duration,
			)
		},
	}
}

// Merge combines hooks so that every non-nil callback runs, in order.
func Merge(all ...domain.LifecycleHooks) domain.LifecycleHooks {
	var out domain.LifecycleHooks
	for _, h := range all {
		out.OnDispatchStart = chain(out.OnDispatchStart, h.OnDispatchStart)
		out.OnDispatchEnd = chain(out.OnDispatchEnd, h.OnDispatchEnd)
		out.OnStepStart = chain(out.OnStepStart, h.OnStepStart)
		out.OnStepEnd = chain(out.OnStepEnd, h.OnStepEnd)
	}
	return out
}

func chain[E any](a, b func(context.Context, E)) func(context.Context, E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e E) {
		a(ctx, e)
		b(ctx, e)
	}
}
