package domain

import (
	"fmt"
	"strings"
)

// StageKind is the physical quantity a source stage drives.
type StageKind string

const (
	KindPower    StageKind = "power"
	KindFlow     StageKind = "flow"
	KindPressure StageKind = "pressure"
)

// Valid reports whether k is a known stage kind.
func (k StageKind) Valid() bool {
	switch k {
	case KindPower, KindFlow, KindPressure:
		return true
	}
	return false
}

// Interpolation is the curve shape declared by a source stage.
type Interpolation string

const (
	InterpolationLinear  Interpolation = "linear"
	InterpolationStep    Interpolation = "step"
	InterpolationInstant Interpolation = "instant"
	InterpolationBezier  Interpolation = "bezier"
	InterpolationSpline  Interpolation = "spline"
)

// TriggerType is the quantity watched by a source exit trigger.
type TriggerType string

const (
	TriggerWeight          TriggerType = "weight"
	TriggerTime            TriggerType = "time"
	TriggerPressure        TriggerType = "pressure"
	TriggerFlow            TriggerType = "flow"
	TriggerPistonPosition  TriggerType = "piston_position"
	TriggerPower           TriggerType = "power"
	TriggerUserInteraction TriggerType = "user_interaction"
)

// Comparison is the raw comparison operator of a source exit trigger.
type Comparison string

const (
	CompareGTE Comparison = ">="
	CompareLTE Comparison = "<="
	CompareGT  Comparison = ">"
	CompareLT  Comparison = "<"
)

// Normalize trims whitespace and folds the unicode forms onto their ASCII spelling.
func (c Comparison) Normalize() Comparison {
	s := strings.TrimSpace(string(c))
	switch s {
	case "≥":
		return CompareGTE
	case "≤":
		return CompareLTE
	}
	return Comparison(s)
}

// TargetType is the quantity watched by a destination exit target.
type TargetType string

const (
	TargetVolumetric TargetType = "volumetric"
	TargetTime       TargetType = "time"
	TargetPressure   TargetType = "pressure"
	TargetFlow       TargetType = "flow"
)

// Operator is the destination comparison operator.
type Operator string

const (
	OpGTE Operator = "gte"
	OpLTE Operator = "lte"
	OpGT  Operator = "gt"
	OpLT  Operator = "lt"
)

// TransitionType describes how the pump ramps into a phase's target.
type TransitionType string

const (
	TransitionLinear    TransitionType = "linear"
	TransitionInstant   TransitionType = "instant"
	TransitionEaseInOut TransitionType = "ease-in-out"
	// TransitionBezier and TransitionSpline are only emitted by ModePreserve.
	TransitionBezier TransitionType = "bezier"
	TransitionSpline TransitionType = "spline"
)

// PumpMode is the controlled variable of a destination phase.
type PumpMode string

const (
	PumpPressure PumpMode = "pressure"
	PumpFlow     PumpMode = "flow"
)

// PhaseKind labels a destination phase. Flow stages pass their source key through,
// so the set is open; these are the values the engine derives itself.
const (
	PhasePreinfusion = "preinfusion"
	PhaseBrew        = "brew"
)

// TransitionMode is the caller's policy for mapping interpolation to transitions.
type TransitionMode string

const (
	ModeSmart    TransitionMode = "smart"
	ModePreserve TransitionMode = "preserve"
	ModeLinear   TransitionMode = "linear"
	ModeInstant  TransitionMode = "instant"
)

// DefaultTransitionMode is used when the caller does not pick one.
const DefaultTransitionMode = ModeSmart

// TransitionModes lists every accepted mode in display order.
var TransitionModes = []TransitionMode{ModeSmart, ModePreserve, ModeLinear, ModeInstant}

// ParseTransitionMode normalizes s (case-insensitive). An empty string yields the default mode.
func ParseTransitionMode(s string) (TransitionMode, error) {
	normalized := TransitionMode(strings.ToLower(strings.TrimSpace(s)))
	if normalized == "" {
		return DefaultTransitionMode, nil
	}
	for _, m := range TransitionModes {
		if m == normalized {
			return m, nil
		}
	}
	names := make([]string, len(TransitionModes))
	for i, m := range TransitionModes {
		names[i] = string(m)
	}
	return "", fmt.Errorf("invalid mode %q: choose from %s", s, strings.Join(names, ", "))
}
