// Package validator audits a translated profile against its source: every
// phase is matched back to the stage it came from and its controlled value
// and duration are compared within tolerances.
package validator

import (
	"fmt"
	"math"
	"regexp"
	"strconv"

	"github.com/aretw0/crema/internal/runtime"
	"github.com/aretw0/crema/pkg/domain"
)

// Tolerance allows the larger of an absolute and a relative deviation.
type Tolerance struct {
	Absolute float64
	Relative float64
}

// Allowed returns the permitted deviation around reference.
func (t Tolerance) Allowed(reference float64) float64 {
	return math.Max(t.Absolute, math.Abs(reference)*t.Relative)
}

// Default tolerances per compared variable.
var (
	PressureTolerance = Tolerance{Absolute: 0.1, Relative: 0.02}
	FlowTolerance     = Tolerance{Absolute: 0.2, Relative: 0.05}
	DurationTolerance = Tolerance{Absolute: 0.5, Relative: 0.02}
)

// Deviation is one compared value.
type Deviation struct {
	Variable string
	Expected float64
	Actual   float64
	Diff     float64
	Allowed  float64
	Within   bool
}

// Percent is the deviation relative to the expected value (100 when expected is 0 and actual is not).
func (d Deviation) Percent() float64 {
	if d.Expected == 0 {
		if d.Actual == 0 {
			return 0
		}
		return 100
	}
	return d.Diff / math.Abs(d.Expected) * 100
}

// Check is the audit of one destination phase.
type Check struct {
	Stage      string
	Phase      string
	SplitIndex int
	SplitTotal int
	StageType  PhaseType
	PhaseType  PhaseType
	Deviations []Deviation
}

// TypeMatches reports whether the phase kept the stage's role.
func (c Check) TypeMatches() bool { return c.StageType == c.PhaseType }

// Passed reports whether every deviation is within tolerance and the role matches.
func (c Check) Passed() bool {
	if !c.TypeMatches() {
		return false
	}
	for _, d := range c.Deviations {
		if !d.Within {
			return false
		}
	}
	return true
}

// Report is the audit of a whole profile.
type Report struct {
	Profile    string
	Checks     []Check
	Unmatched  []string
	OrderingOK bool
}

// Passed reports whether all checks passed, every phase was matched and
// preinfusion phases precede brew phases.
func (r *Report) Passed() bool {
	return r.OrderingOK && len(r.Unmatched) == 0 && len(r.Failed()) == 0
}

// ObjectivePassed reports whether every phase was matched and every compared
// value is within tolerance, ignoring phase roles.
func (r *Report) ObjectivePassed() bool {
	if len(r.Unmatched) > 0 {
		return false
	}
	for _, c := range r.Checks {
		for _, d := range c.Deviations {
			if !d.Within {
				return false
			}
		}
	}
	return true
}

// TypesPassed reports whether every phase kept its role and the roles are in order.
func (r *Report) TypesPassed() bool {
	if !r.OrderingOK {
		return false
	}
	for _, c := range r.Checks {
		if !c.TypeMatches() {
			return false
		}
	}
	return true
}

// Failed returns the checks that did not pass.
func (r *Report) Failed() []Check {
	var failed []Check
	for _, c := range r.Checks {
		if !c.Passed() {
			failed = append(failed, c)
		}
	}
	return failed
}

// Deviations counts every compared value.
func (r *Report) Deviations() int {
	n := 0
	for _, c := range r.Checks {
		n += len(c.Deviations)
	}
	return n
}

// Summary is a one-line description of the report.
func (r *Report) Summary() string {
	s := fmt.Sprintf("%d/%d phases passed", len(r.Checks)-len(r.Failed()), len(r.Checks))
	if len(r.Unmatched) > 0 {
		s += fmt.Sprintf(", %d unmatched", len(r.Unmatched))
	}
	if !r.OrderingOK {
		s += ", ordering issues found"
	}
	return s
}

var splitSuffix = regexp.MustCompile(`^(.*?)\s*\((\d+)/(\d+)\)\s*$`)

// parseSplit extracts the base name and position from "Name (i/N)".
func parseSplit(name string) (base string, index, total int, ok bool) {
	m := splitSuffix.FindStringSubmatch(name)
	if m == nil {
		return name, 0, 0, false
	}
	index, _ = strconv.Atoi(m[2])
	total, _ = strconv.Atoi(m[3])
	return m[1], index, total, true
}

// Audit compares dst with the source profile it was translated from.
// Stages and phases are walked in order; a run of split phases sharing a
// stage's name is matched to that stage.
func Audit(src *domain.Profile, dst *domain.TargetProfile) *Report {
	report := &Report{Profile: src.Name}

	si := 0
	for pi := 0; pi < len(dst.Phases); {
		if si >= len(src.Stages) {
			for _, ph := range dst.Phases[pi:] {
				report.Unmatched = append(report.Unmatched, ph.Name)
			}
			break
		}
		stage := src.Stages[si]
		si++

		base, index, total, split := parseSplit(dst.Phases[pi].Name)
		if !split || (base != stage.Name && index != 1) {
			report.Checks = append(report.Checks, checkPhase(stage, dst.Phases[pi], 0, 0))
			pi++
			continue
		}
		for pi < len(dst.Phases) {
			b, i, n, ok := parseSplit(dst.Phases[pi].Name)
			if !ok || b != base || n != total || i < index {
				break
			}
			report.Checks = append(report.Checks, checkPhase(stage, dst.Phases[pi], i, n))
			index = i + 1
			pi++
		}
	}

	types := make([]PhaseType, len(report.Checks))
	for i, c := range report.Checks {
		types[i] = c.StageType
	}
	report.OrderingOK = OrderingOK(types)
	return report
}

func checkPhase(stage domain.Stage, phase domain.Phase, index, total int) Check {
	c := Check{
		Stage:      stage.Name,
		Phase:      phase.Name,
		SplitIndex: index,
		SplitTotal: total,
		StageType:  StageType(stage),
		PhaseType:  TypeOfPhase(phase),
	}

	points := stage.Dynamics.Points
	var ref domain.Point
	var duration *float64
	switch {
	case index > 0 && index < len(points):
		ref = points[index]
		d := points[index].Time - points[index-1].Time
		duration = &d
	case len(points) > 0:
		ref = points[0]
		for _, trig := range stage.ExitTriggers {
			if trig.Type == domain.TriggerTime {
				d := trig.Value
				duration = &d
				break
			}
		}
	default:
		return c
	}

	switch {
	case stage.IsBloom():
		expected := 0.0
		if stage.Type == domain.KindPower {
			expected = runtime.PowerToPressure(ref.Value)
		} else if stage.Type == domain.KindPressure {
			expected = ref.Value
		}
		expected = math.Max(expected, domain.MinBloomPressure)
		c.Deviations = append(c.Deviations, compare("pressure", expected, phase.Pump.Pressure, PressureTolerance))
	case stage.Type == domain.KindFlow:
		c.Deviations = append(c.Deviations, compare("flow", ref.Value, phase.Pump.Flow, FlowTolerance))
	case stage.Type == domain.KindPower:
		c.Deviations = append(c.Deviations, compare("pressure", runtime.PowerToPressure(ref.Value), phase.Pump.Pressure, PressureTolerance))
	default:
		c.Deviations = append(c.Deviations, compare("pressure", ref.Value, phase.Pump.Pressure, PressureTolerance))
	}

	if duration != nil && *duration > 0 && phase.Duration > 0 {
		c.Deviations = append(c.Deviations, compare("duration", *duration, phase.Duration, DurationTolerance))
	}
	return c
}

func compare(variable string, expected, actual float64, tol Tolerance) Deviation {
	diff := math.Abs(actual - expected)
	allowed := tol.Allowed(expected)
	return Deviation{
		Variable: variable,
		Expected: expected,
		Actual:   actual,
		Diff:     diff,
		Allowed:  allowed,
		Within:   diff <= allowed+1e-9,
	}
}
