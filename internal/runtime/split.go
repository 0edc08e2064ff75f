package runtime

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/aretw0/crema/pkg/domain"
)

// SplitOptions carries the profile-wide values a phase needs.
type SplitOptions struct {
	Temperature float64
	MaxPressure float64
}

// SplitResult is the outcome of splitting one stage.
type SplitResult struct {
	Phases []domain.Phase
	// Elapsed is the start time plus the duration of every produced phase.
	Elapsed  float64
	Warnings []string
}

// SplitStage expands one source stage into destination phases.
//
// A curve with N >= 2 points produces N-1 phases, each ramping to the value of
// its right-hand point. Only the last phase carries exit targets. A single-point
// curve produces one instant phase whose length comes from InferDuration.
func SplitStage(stage domain.Stage, mode domain.TransitionMode, start StartTime, opts SplitOptions) (SplitResult, error) {
	points := stage.Dynamics.Points
	if len(points) == 0 {
		return SplitResult{}, &domain.InputShapeError{
			Path:   fmt.Sprintf("stage %q dynamics.points", stage.Name),
			Reason: "must contain at least one point",
		}
	}
	if opts.MaxPressure <= 0 {
		opts.MaxPressure = domain.DefaultMaxPressure
	}

	kind := phaseKind(stage)
	if len(points) == 1 {
		return splitSingle(stage, kind, start, opts)
	}

	transition := ResolveTransition(mode, stage.Dynamics.Interpolation)
	if stage.Type == domain.KindFlow || stage.IsBloom() {
		transition = domain.TransitionInstant
	}

	total := len(points) - 1
	result := SplitResult{Phases: make([]domain.Phase, 0, total)}
	offset := 0.0
	for i := 0; i < total; i++ {
		duration := ClampDuration(points[i+1].Time - points[i].Time)
		phase := domain.Phase{
			Name:        fmt.Sprintf("%s (%d/%d)", stage.Name, i+1, total),
			Phase:       kind,
			Valve:       domain.DefaultValve,
			Duration:    duration,
			Temperature: opts.Temperature,
			Transition:  newTransition(transition, duration),
			Pump:        pumpFor(stage, points[i+1].Value, opts),
			Targets:     []domain.Target{},
		}
		if w, ok := pressureRangeWarning(stage, phase.Pump); ok {
			result.Warnings = append(result.Warnings, w)
		}
		if i == total-1 {
			targets, warnings, err := ConvertExitTriggers(stage.ExitTriggers, start.After(offset))
			if err != nil {
				return SplitResult{}, withStage(err, stage.Name)
			}
			phase.Targets = targets
			result.Warnings = append(result.Warnings, warnings...)
		}
		offset += duration
		result.Phases = append(result.Phases, phase)
	}
	result.Elapsed = start.Seconds + offset
	return result, nil
}

func splitSingle(stage domain.Stage, kind string, start StartTime, opts SplitOptions) (SplitResult, error) {
	targets, warnings, err := ConvertExitTriggers(stage.ExitTriggers, start)
	if err != nil {
		return SplitResult{}, withStage(err, stage.Name)
	}

	// The phase lasts for the trigger's own offset; a relative trigger's
	// absolute value lives only in the exit target.
	var explicit *float64
	for _, trig := range stage.ExitTriggers {
		if trig.Type == domain.TriggerTime {
			v := trig.Value
			explicit = &v
			break
		}
	}
	duration := InferDuration(stage.Type, stage.Dynamics.Points, explicit)

	phase := domain.Phase{
		Name:        stage.Name,
		Phase:       kind,
		Valve:       domain.DefaultValve,
		Duration:    duration,
		Temperature: opts.Temperature,
		Transition:  newTransition(domain.TransitionInstant, duration),
		Pump:        pumpFor(stage, stage.Dynamics.Points[0].Value, opts),
		Targets:     targets,
	}
	if w, ok := pressureRangeWarning(stage, phase.Pump); ok {
		warnings = append([]string{w}, warnings...)
	}
	return SplitResult{
		Phases:   []domain.Phase{phase},
		Elapsed:  start.Seconds + duration,
		Warnings: warnings,
	}, nil
}

// pressureRangeWarning flags pressure stages that leave the typical brewing band.
// Bloom holds are floored separately and never warned about.
func pressureRangeWarning(stage domain.Stage, pump domain.Pump) (string, bool) {
	if stage.Type != domain.KindPressure || stage.IsBloom() {
		return "", false
	}
	if pump.Pressure >= domain.TypicalMinPressure && pump.Pressure <= domain.TypicalMaxPressure {
		return "", false
	}
	return fmt.Sprintf("%s Stage '%s': pressure %.1f bar is outside typical range (%.1f-%.1f bar). Check if this is intentional.",
		domain.WarningValidation, stage.Name, pump.Pressure, domain.TypicalMinPressure, domain.TypicalMaxPressure), true
}

func newTransition(typ domain.TransitionType, phaseDuration float64) domain.Transition {
	t := domain.Transition{Type: typ}
	if typ != domain.TransitionInstant {
		t.Duration = phaseDuration
	}
	return t
}

// pumpFor builds the pump setting for a phase ramping to value.
func pumpFor(stage domain.Stage, value float64, opts SplitOptions) domain.Pump {
	if stage.IsBloom() {
		hold := 0.0
		if stage.Type != domain.KindFlow {
			hold = convertValue(stage.Type, value)
		}
		return domain.Pump{
			Target:   domain.PumpPressure,
			Pressure: math.Max(hold, domain.MinBloomPressure),
			Flow:     0,
		}
	}
	if stage.Type == domain.KindFlow {
		return domain.Pump{
			Target:   domain.PumpFlow,
			Pressure: math.Min(domain.FlowModePressureLimit, opts.MaxPressure),
			Flow:     value,
		}
	}
	return domain.Pump{
		Target:   domain.PumpPressure,
		Pressure: convertValue(stage.Type, value),
		Flow:     domain.PressureModeFlowLimit,
	}
}

// phaseKind labels the phases produced from stage.
func phaseKind(stage domain.Stage) string {
	if stage.IsBloom() {
		return domain.PhasePreinfusion
	}
	if stage.Type == domain.KindFlow {
		return stage.Key
	}
	switch strings.ToLower(stage.Key) {
	case "fill":
		return domain.PhasePreinfusion
	case "extraction":
		return domain.PhaseBrew
	}
	return stage.Key
}

func withStage(err error, name string) error {
	var rel *domain.RelativeTriggerError
	if errors.As(err, &rel) {
		rel.Stage = name
	}
	return err
}
