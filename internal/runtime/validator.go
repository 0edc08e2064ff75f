package runtime

import (
	"math"

	"github.com/aretw0/crema/pkg/domain"
)

// Limits are the destination bounds a translated profile must respect.
type Limits struct {
	MaxPressure float64
}

// DefaultLimits returns the limits used when nothing is configured.
func DefaultLimits() Limits {
	return Limits{MaxPressure: domain.DefaultMaxPressure}
}

// ValidateTarget checks every numeric bound of doc and returns the first
// violation as a *domain.ValueOutOfRangeError. It never mutates doc.
func ValidateTarget(doc *domain.TargetProfile, limits Limits) error {
	if limits.MaxPressure <= 0 {
		limits.MaxPressure = domain.DefaultMaxPressure
	}
	if err := inRange("temperature", "", doc.Temperature, domain.MinTemperature, domain.MaxTemperature); err != nil {
		return err
	}
	for _, p := range doc.Phases {
		if err := inRange("temperature", p.Name, p.Temperature, domain.MinTemperature, domain.MaxTemperature); err != nil {
			return err
		}
		if err := inRange("pressure", p.Name, p.Pump.Pressure, 0, limits.MaxPressure); err != nil {
			return err
		}
		if err := inRange("flow", p.Name, p.Pump.Flow, 0, math.Inf(1)); err != nil {
			return err
		}
		if !(p.Duration > 0) {
			return &domain.ValueOutOfRangeError{Field: "duration", Phase: p.Name, Value: p.Duration, Max: math.Inf(1), Exclusive: true}
		}
		if err := inRange("transition duration", p.Name, p.Transition.Duration, 0, math.Inf(1)); err != nil {
			return err
		}
	}
	return nil
}

func inRange(field, phase string, v, lo, hi float64) error {
	if math.IsNaN(v) || v < lo || v > hi {
		return &domain.ValueOutOfRangeError{Field: field, Phase: phase, Value: v, Min: lo, Max: hi}
	}
	return nil
}
