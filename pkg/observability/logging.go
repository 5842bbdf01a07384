package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/reddisetgo/pkg/domain"
)

// LoggingHooks logs every lifecycle event at debug level.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnProcessStart: func(ctx context.Context, e *domain.ProcessEvent) {
			logger.DebugContext(ctx, "process_start", "command", e.Command)
		},
		OnProcessFinish: func(ctx context.Context, e *domain.ProcessEvent) {
			logger.DebugContext(ctx, "process_finish",
				"command", e.Command,
				"exit_code", e.ExitCode,
				"duration", e.Duration,
				"err", e.Err,
			)
		},
		OnFlowFinish: func(ctx context.Context, e *domain.FlowEvent) {
			logger.DebugContext(ctx, "flow_finish",
				"chain", e.Selection.Chain,
				"demo", e.Selection.Demo,
				"duration", e.Duration,
				"err", e.Err,
			)
		},
	}
}
