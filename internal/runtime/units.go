package runtime

import "github.com/aretw0/crema/pkg/domain"

// StartTime is the elapsed time at which a stage begins.
// Known is false for the first stage of a profile: there is nothing before it
// that a relative trigger could be measured from.
type StartTime struct {
	Seconds float64
	Known   bool
}

// After returns the start time shifted by d seconds.
func (s StartTime) After(d float64) StartTime {
	return StartTime{Seconds: s.Seconds + d, Known: s.Known}
}

// PowerToPressure converts a power percentage into bar. Range is checked later.
func PowerToPressure(percent float64) float64 {
	return percent / 10.0
}

// ClampDuration replaces non-positive durations with the minimal floor.
func ClampDuration(d float64) float64 {
	if d <= 0 {
		return domain.MinDuration
	}
	return d
}

// InferDuration decides how long a single-point stage lasts.
// An explicit time trigger value wins; otherwise power and pressure stages that
// jump by more than the ramp threshold get a short hold and everything else the
// default stage length.
func InferDuration(kind domain.StageKind, points []domain.Point, explicit *float64) float64 {
	if explicit != nil {
		return ClampDuration(*explicit)
	}
	if kind == domain.KindPower || kind == domain.KindPressure {
		if n := len(points); n > 0 && points[n-1].Value-0.0 > domain.RampDeltaThreshold {
			return domain.ShortRampDuration
		}
	}
	return domain.DefaultStageDuration
}

// convertValue maps a curve value of the given kind into the pump's unit.
func convertValue(kind domain.StageKind, value float64) float64 {
	if kind == domain.KindPower {
		return PowerToPressure(value)
	}
	return value
}
