package observability

import (
	"log/slog"

	"github.com/aretw0/crema/pkg/domain"
)

// LoggingHooks logs engine events at debug level, and failures at warn.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStage: func(e *domain.StageEvent) {
			logger.Debug("stage_translated",
				"index", e.Index,
				"stage", e.Stage,
				"kind", e.Kind,
				"phases", e.Phases,
				"elapsed", e.Elapsed,
			)
		},
		OnWarning: func(w string) {
			logger.Debug("translation_warning", "warning", w)
		},
		OnComplete: func(e *domain.CompleteEvent) {
			if e.Err != nil {
				logger.Warn("translation_failed", "label", e.Label, "mode", e.Mode, "error", e.Err)
				return
			}
			logger.Debug("translation_complete",
				"label", e.Label,
				"mode", e.Mode,
				"stages", e.Stages,
				"phases", e.Phases,
				"warnings", e.Warnings,
			)
		},
	}
}

// Chain returns hooks that call each of the given hooks in order.
func Chain(hooks ...domain.LifecycleHooks) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStage: func(e *domain.StageEvent) {
			for _, h := range hooks {
				if h.OnStage != nil {
					h.OnStage(e)
				}
			}
		},
		OnWarning: func(w string) {
			for _, h := range hooks {
				if h.OnWarning != nil {
					h.OnWarning(w)
				}
			}
		},
		OnComplete: func(e *domain.CompleteEvent) {
			for _, h := range hooks {
				if h.OnComplete != nil {
					h.OnComplete(e)
				}
			}
		},
	}
}
