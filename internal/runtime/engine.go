package runtime

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/crema/pkg/domain"
)

// Engine translates resolved source profiles into destination profiles.
// An Engine holds only configuration and is safe for concurrent use.
type Engine struct {
	mode   domain.TransitionMode
	limits Limits
	hooks  domain.LifecycleHooks
	logger *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithMode sets the transition mode (default smart).
func WithMode(mode domain.TransitionMode) EngineOption {
	return func(e *Engine) {
		if mode != "" {
			e.mode = mode
		}
	}
}

// WithMaxPressure sets the pump pressure ceiling in bar.
func WithMaxPressure(bar float64) EngineOption {
	return func(e *Engine) {
		if bar > 0 {
			e.limits.MaxPressure = bar
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets the logger used for debug tracing.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewEngine creates an engine. Without options it uses smart mode and the default limits.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		mode:   domain.DefaultTransitionMode,
		limits: DefaultLimits(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Mode returns the transition mode the engine was configured with.
func (e *Engine) Mode() domain.TransitionMode { return e.mode }

// Limits returns the destination bounds the engine validates against.
func (e *Engine) Limits() Limits { return e.limits }

// Translate converts profile into a destination profile plus the ordered
// warnings collected along the way. Any error aborts the whole document.
func (e *Engine) Translate(profile *domain.Profile) (*domain.TargetProfile, []string, error) {
	doc, warnings, err := e.translate(profile)
	if e.hooks.OnComplete != nil {
		ev := &domain.CompleteEvent{Mode: e.mode, Warnings: len(warnings), Err: err}
		if profile != nil {
			ev.Label = profile.Name
			ev.Stages = len(profile.Stages)
		}
		if doc != nil {
			ev.Phases = len(doc.Phases)
		}
		e.hooks.OnComplete(ev)
	}
	if err != nil {
		return nil, nil, err
	}
	return doc, warnings, nil
}

func (e *Engine) translate(profile *domain.Profile) (*domain.TargetProfile, []string, error) {
	if err := checkShape(profile); err != nil {
		return nil, nil, err
	}

	logger := e.logger.With("profile", profile.Name, "mode", string(e.mode))
	opts := SplitOptions{Temperature: profile.Temperature, MaxPressure: e.limits.MaxPressure}

	phases := make([]domain.Phase, 0, len(profile.Stages))
	warnings := []string{}
	start := StartTime{}
	for i, stage := range profile.Stages {
		res, err := SplitStage(stage, e.mode, start, opts)
		if err != nil {
			return nil, nil, fmt.Errorf("stage %d (%s): %w", i, stage.Name, err)
		}
		logger.Debug("stage split",
			"index", i,
			"stage", stage.Name,
			"kind", string(stage.Type),
			"phases", len(res.Phases),
			"elapsed", res.Elapsed)

		phases = append(phases, res.Phases...)
		warnings = append(warnings, res.Warnings...)
		if e.hooks.OnWarning != nil {
			for _, w := range res.Warnings {
				e.hooks.OnWarning(w)
			}
		}
		if e.hooks.OnStage != nil {
			e.hooks.OnStage(&domain.StageEvent{
				Index:   i,
				Stage:   stage.Name,
				Kind:    stage.Type,
				Phases:  len(res.Phases),
				Elapsed: res.Elapsed,
			})
		}
		start = StartTime{Seconds: res.Elapsed, Known: true}
	}

	doc := &domain.TargetProfile{
		Label: profile.Name,
		Type:  domain.ProfileTypePro,
		Description: fmt.Sprintf("Meticulous ID: %s\nAuthor: %s\nOriginal Name: %s",
			profile.ID, profile.Author, profile.Name),
		Temperature: profile.Temperature,
		Utility:     false,
		Phases:      phases,
	}
	if err := ValidateTarget(doc, e.limits); err != nil {
		return nil, nil, err
	}

	logger.Debug("profile translated", "phases", len(phases), "warnings", len(warnings))
	return doc, warnings, nil
}

// checkShape rejects documents the splitter cannot work with.
func checkShape(p *domain.Profile) error {
	if p == nil {
		return &domain.InputShapeError{Reason: "profile is nil"}
	}
	if len(p.Stages) == 0 {
		return &domain.InputShapeError{Path: "stages", Reason: "must contain at least one stage"}
	}
	for i, s := range p.Stages {
		if !s.Type.Valid() {
			return &domain.InputShapeError{
				Path:   fmt.Sprintf("stages[%d].type", i),
				Reason: fmt.Sprintf("unknown stage type %q, expected power, flow or pressure", s.Type),
			}
		}
		if len(s.Dynamics.Points) == 0 {
			return &domain.InputShapeError{
				Path:   fmt.Sprintf("stages[%d].dynamics.points", i),
				Reason: "must contain at least one point",
			}
		}
	}
	return nil
}
