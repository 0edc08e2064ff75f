package runtime

import "github.com/aretw0/crema/pkg/domain"

// ResolveTransition maps a source interpolation to a destination transition
// type under the requested mode. Overrides for flow stages, single-point
// curves and bloom holds are applied by SplitStage, not here.
func ResolveTransition(mode domain.TransitionMode, interp domain.Interpolation) domain.TransitionType {
	switch mode {
	case domain.ModeInstant:
		return domain.TransitionInstant
	case domain.ModeLinear:
		return domain.TransitionLinear
	case domain.ModePreserve:
		switch interp {
		case domain.InterpolationLinear, domain.InterpolationStep, domain.InterpolationInstant:
			return domain.TransitionLinear
		case domain.InterpolationBezier:
			return domain.TransitionBezier
		case domain.InterpolationSpline:
			return domain.TransitionSpline
		}
		return domain.TransitionInstant
	default:
		switch interp {
		case domain.InterpolationLinear, domain.InterpolationStep:
			return domain.TransitionLinear
		case domain.InterpolationBezier, domain.InterpolationSpline:
			return domain.TransitionEaseInOut
		}
		return domain.TransitionInstant
	}
}
