package runtime_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/aretw0/crema/internal/runtime"
	"github.com/aretw0/crema/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var opts = runtime.SplitOptions{Temperature: 93, MaxPressure: domain.DefaultMaxPressure}

func curve(values ...float64) []domain.Point {
	points := make([]domain.Point, 0, len(values)/2)
	for i := 0; i+1 < len(values); i += 2 {
		points = append(points, domain.Point{Time: values[i], Value: values[i+1]})
	}
	return points
}

func fillStage() domain.Stage {
	return domain.Stage{
		Name: "Fill",
		Key:  "Fill",
		Type: domain.KindPower,
		Dynamics: domain.Dynamics{
			Points:        curve(0, 2, 10, 5),
			Over:          "time",
			Interpolation: domain.InterpolationLinear,
		},
		ExitTriggers: []domain.ExitTrigger{{Type: domain.TriggerTime, Comparison: ">=", Value: 10}},
	}
}

func TestSplitStage_TwoPointFillRamp(t *testing.T) {
	res, err := runtime.SplitStage(fillStage(), domain.ModeSmart, known, opts)
	require.NoError(t, err)
	require.Len(t, res.Phases, 1)

	p := res.Phases[0]
	assert.Equal(t, "Fill (1/1)", p.Name)
	assert.Equal(t, domain.PhasePreinfusion, p.Phase)
	assert.Equal(t, domain.DefaultValve, p.Valve)
	assert.Equal(t, 0.5, p.Pump.Pressure)
	assert.Equal(t, domain.PumpPressure, p.Pump.Target)
	assert.Equal(t, 10.0, p.Pump.Flow)
	assert.Equal(t, 10.0, p.Duration)
	assert.Equal(t, 93.0, p.Temperature)
	assert.Equal(t, domain.Transition{Type: domain.TransitionLinear, Duration: 10}, p.Transition)
	assert.Equal(t, []domain.Target{{Type: domain.TargetTime, Operator: domain.OpGTE, Value: 10}}, p.Targets)
	assert.Empty(t, res.Warnings)
	assert.Equal(t, 10.0, res.Elapsed)
}

func TestSplitStage_InstantModeOverridesInterpolation(t *testing.T) {
	res, err := runtime.SplitStage(fillStage(), domain.ModeInstant, known, opts)
	require.NoError(t, err)
	assert.Equal(t, domain.Transition{Type: domain.TransitionInstant}, res.Phases[0].Transition)
}

func TestSplitStage_NPointsYieldNMinusOnePhases(t *testing.T) {
	for n := 2; n <= 6; n++ {
		stage := fillStage()
		stage.Name = "Ramp"
		stage.Dynamics.Points = nil
		for i := 0; i < n; i++ {
			stage.Dynamics.Points = append(stage.Dynamics.Points, domain.Point{Time: float64(i * 5), Value: float64(30 + i*10)})
		}

		res, err := runtime.SplitStage(stage, domain.ModeSmart, known, opts)
		require.NoError(t, err)
		require.Len(t, res.Phases, n-1)
		for i, p := range res.Phases {
			if i == n-2 {
				assert.NotEmpty(t, p.Targets)
			} else {
				assert.Empty(t, p.Targets)
			}
			assert.Equal(t, 5.0, p.Duration)
		}
		assert.Equal(t, fmt.Sprintf("Ramp (1/%d)", n-1), res.Phases[0].Name)
		assert.Equal(t, float64(5*(n-1)), res.Elapsed)
	}
}

func TestSplitStage_SinglePoint(t *testing.T) {
	stage := domain.Stage{
		Name:     "Hold",
		Key:      "Extraction",
		Type:     domain.KindPower,
		Dynamics: domain.Dynamics{Points: curve(0, 90), Interpolation: domain.InterpolationBezier},
	}
	res, err := runtime.SplitStage(stage, domain.ModePreserve, runtime.StartTime{Seconds: 20, Known: true}, opts)
	require.NoError(t, err)
	require.Len(t, res.Phases, 1)

	p := res.Phases[0]
	assert.Equal(t, "Hold", p.Name)
	assert.Equal(t, domain.PhaseBrew, p.Phase)
	assert.Equal(t, domain.TransitionInstant, p.Transition.Type)
	assert.Equal(t, 9.0, p.Pump.Pressure)
	assert.Equal(t, 1.5, p.Duration)
	assert.Equal(t, []domain.Target{}, p.Targets)
	assert.Equal(t, 21.5, res.Elapsed)
}

func TestSplitStage_FlowKind(t *testing.T) {
	stage := domain.Stage{
		Name:     "Flow ramp",
		Key:      "flow_1",
		Type:     domain.KindFlow,
		Dynamics: domain.Dynamics{Points: curve(0, 2, 4, 3, 10, 4), Interpolation: domain.InterpolationLinear},
	}
	res, err := runtime.SplitStage(stage, domain.ModeLinear, known, runtime.SplitOptions{Temperature: 90, MaxPressure: 10})
	require.NoError(t, err)
	require.Len(t, res.Phases, 2)
	for _, p := range res.Phases {
		assert.Equal(t, "flow_1", p.Phase)
		assert.Equal(t, domain.PumpFlow, p.Pump.Target)
		assert.Equal(t, 10.0, p.Pump.Pressure, "pressure limit follows the lower ceiling")
		assert.Equal(t, domain.Transition{Type: domain.TransitionInstant}, p.Transition)
	}
	assert.Equal(t, 3.0, res.Phases[0].Pump.Flow)
	assert.Equal(t, 4.0, res.Phases[1].Pump.Flow)
	assert.Equal(t, 6.0, res.Phases[1].Duration)
}

func TestSplitStage_PressureKind(t *testing.T) {
	stage := domain.Stage{
		Name:     "Decline",
		Key:      "decline",
		Type:     domain.KindPressure,
		Dynamics: domain.Dynamics{Points: curve(0, 9, 20, 6), Interpolation: domain.InterpolationSpline},
	}
	res, err := runtime.SplitStage(stage, domain.ModeSmart, known, opts)
	require.NoError(t, err)
	p := res.Phases[0]
	assert.Equal(t, "decline", p.Phase)
	assert.Equal(t, 6.0, p.Pump.Pressure)
	assert.Equal(t, domain.Transition{Type: domain.TransitionEaseInOut, Duration: 20}, p.Transition)
}

func TestSplitStage_PressureOutsideTypicalRange(t *testing.T) {
	stage := domain.Stage{
		Name:         "Spike",
		Key:          "spike",
		Type:         domain.KindPressure,
		Dynamics:     domain.Dynamics{Points: curve(0, 9, 5, 12, 10, 6, 15, 0.5), Interpolation: domain.InterpolationLinear},
		ExitTriggers: []domain.ExitTrigger{{Type: domain.TriggerWeight, Comparison: ">=", Value: 36}, {Type: domain.TriggerWeight, Comparison: ">=", Value: 40}},
	}
	res, err := runtime.SplitStage(stage, domain.ModeSmart, known, opts)
	require.NoError(t, err)
	require.Len(t, res.Phases, 3)
	assert.Equal(t, []string{
		"[Validation] Stage 'Spike': pressure 12.0 bar is outside typical range (1.0-10.0 bar). Check if this is intentional.",
		"[Validation] Stage 'Spike': pressure 0.5 bar is outside typical range (1.0-10.0 bar). Check if this is intentional.",
		"[Validation] Duplicate weight trigger: weight >= 40.0 (already have weight >= 36.0). Only the first trigger will be used.",
	}, res.Warnings)

	// Power stages are checked only against the hard ceiling.
	power := fillStage()
	res, err = runtime.SplitStage(power, domain.ModeSmart, known, opts)
	require.NoError(t, err)
	assert.Empty(t, res.Warnings)

	single := domain.Stage{Name: "Hold", Key: "hold", Type: domain.KindPressure, Dynamics: domain.Dynamics{Points: curve(0, 11)}}
	res, err = runtime.SplitStage(single, domain.ModeSmart, known, opts)
	require.NoError(t, err)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "pressure 11.0 bar")
}

func TestSplitStage_Bloom(t *testing.T) {
	stage := domain.Stage{
		Name:     "Bloom",
		Key:      "blooming",
		Type:     domain.KindFlow,
		Dynamics: domain.Dynamics{Points: curve(0, 0.5, 15, 0.5), Interpolation: domain.InterpolationLinear},
	}
	res, err := runtime.SplitStage(stage, domain.ModeSmart, known, opts)
	require.NoError(t, err)
	p := res.Phases[0]
	assert.Equal(t, domain.PhasePreinfusion, p.Phase)
	assert.Equal(t, domain.Pump{Target: domain.PumpPressure, Pressure: 2.0, Flow: 0}, p.Pump)
	assert.Equal(t, domain.TransitionInstant, p.Transition.Type)

	// Power blooms keep their converted value when above the floor.
	stage.Type = domain.KindPower
	stage.Dynamics.Points = curve(0, 30)
	res, err = runtime.SplitStage(stage, domain.ModeSmart, known, opts)
	require.NoError(t, err)
	assert.Equal(t, 3.0, res.Phases[0].Pump.Pressure)
}

func TestSplitStage_ZeroDurationClamped(t *testing.T) {
	stage := fillStage()
	stage.Dynamics.Points = curve(5, 2, 5, 5)
	res, err := runtime.SplitStage(stage, domain.ModeSmart, known, opts)
	require.NoError(t, err)
	assert.Equal(t, 0.1, res.Phases[0].Duration)
	assert.Equal(t, 0.1, res.Phases[0].Transition.Duration)
}

func TestSplitStage_RelativeOnLastSubPhase(t *testing.T) {
	stage := fillStage()
	stage.Dynamics.Points = curve(0, 20, 4, 40, 10, 60)
	stage.ExitTriggers = []domain.ExitTrigger{{Type: domain.TriggerTime, Comparison: ">=", Value: 3, Relative: true}}

	res, err := runtime.SplitStage(stage, domain.ModeSmart, runtime.StartTime{Seconds: 30, Known: true}, opts)
	require.NoError(t, err)
	// Base is the stage start plus the first sub-phase (4s).
	assert.Equal(t, 37.0, res.Phases[1].Targets[0].Value)
	assert.Equal(t, 40.0, res.Elapsed)
}

func TestSplitStage_RelativeWithoutStart(t *testing.T) {
	stage := fillStage()
	stage.ExitTriggers[0].Relative = true

	_, err := runtime.SplitStage(stage, domain.ModeSmart, runtime.StartTime{}, opts)
	require.Error(t, err)

	var rel *domain.RelativeTriggerError
	require.True(t, errors.As(err, &rel))
	assert.Equal(t, "Fill", rel.Stage)
}

func TestSplitStage_EmptyCurve(t *testing.T) {
	stage := fillStage()
	stage.Dynamics.Points = nil
	_, err := runtime.SplitStage(stage, domain.ModeSmart, known, opts)
	assert.True(t, errors.Is(err, domain.ErrInputShape))
}
