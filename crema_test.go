package crema_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/aretw0/crema"
	"github.com/aretw0/crema/pkg/adapters/memory"
	"github.com/aretw0/crema/pkg/domain"
	"github.com/aretw0/crema/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readFixture(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile("testdata/" + name)
	require.NoError(t, err)
	return data
}

func TestTranslator_Classic(t *testing.T) {
	res, err := crema.New().TranslateBytes(context.Background(), readFixture(t, "classic.json"))
	require.NoError(t, err)

	doc := res.Profile
	assert.Equal(t, "Classic Italian", doc.Label)
	require.Len(t, doc.Phases, 3)

	fill := doc.Phases[0]
	assert.Equal(t, "Fill (1/1)", fill.Name)
	assert.Equal(t, domain.PhasePreinfusion, fill.Phase)
	assert.Equal(t, 0.5, fill.Pump.Pressure)
	assert.Equal(t, domain.TransitionLinear, fill.Transition.Type)

	assert.Equal(t, "Extraction (1/2)", doc.Phases[1].Name)
	assert.Equal(t, domain.TransitionEaseInOut, doc.Phases[1].Transition.Type)
	assert.Empty(t, doc.Phases[1].Targets)
	assert.Equal(t, 7.0, doc.Phases[2].Pump.Pressure)
	assert.Equal(t, 20.0, doc.Phases[2].Duration)
	assert.Equal(t, []domain.Target{{Type: domain.TargetVolumetric, Operator: domain.OpGTE, Value: 36}}, doc.Phases[2].Targets)

	assert.Equal(t, []string{
		"[Unsupported] piston_position exit trigger is not supported by Gaggimate machines. This trigger will be ignored.",
		"[Validation] Duplicate weight trigger: weight <= 30.0 (already have weight >= 36.0). Only the first trigger will be used.",
		"[Validation] Conflicting weight triggers: weight >= 36.0 AND weight <= 30.0 - conditions can never both be true. Only the first trigger will be used.",
	}, res.Warnings)
}

func TestTranslator_TriggerDefaults(t *testing.T) {
	src := []byte(`{
	  "name": "Short", "id": "s-1", "author": "A", "author_id": "a",
	  "temperature": 93, "final_weight": 36,
	  "stages": [{
	    "name": "Fill", "key": "Fill", "type": "power",
	    "dynamics": {"points": [[0, 20]], "over": "time", "interpolation": "linear"},
	    "exit_triggers": [{"type": "weight", "value": 36}, {"type": "time", "value": 8}]
	  }]
	}`)

	res, err := crema.New().TranslateBytes(context.Background(), src)
	require.NoError(t, err)
	require.Len(t, res.Profile.Phases, 1)

	phase := res.Profile.Phases[0]
	assert.Equal(t, []domain.Target{
		{Type: domain.TargetVolumetric, Operator: domain.OpGTE, Value: 36},
		{Type: domain.TargetTime, Operator: domain.OpGTE, Value: 8},
	}, phase.Targets)
	assert.Equal(t, 8.0, phase.Duration, "an absent relative flag reads as absolute")
	assert.Empty(t, res.Warnings)
}

func TestTranslator_ParseWarningsFirst(t *testing.T) {
	var hooked []string
	tr := crema.New(crema.WithLifecycleHooks(domain.LifecycleHooks{
		OnWarning: func(w string) { hooked = append(hooked, w) },
	}))

	res, err := tr.TranslateBytes(context.Background(), readFixture(t, "variables.json"))
	require.NoError(t, err)
	require.NotEmpty(t, res.Warnings)
	assert.Equal(t, "[Validation] Unused variables: spare", res.Warnings[0])
	assert.Equal(t, res.Warnings, hooked)
}

func TestTranslator_Modes(t *testing.T) {
	ctx := context.Background()
	data := readFixture(t, "classic.json")

	res, err := crema.New(crema.WithMode(domain.ModeInstant)).TranslateBytes(ctx, data)
	require.NoError(t, err)
	for _, p := range res.Profile.Phases {
		assert.Equal(t, domain.TransitionInstant, p.Transition.Type)
	}

	tr := crema.New()
	res, err = tr.Translate(ctx, ports.TranslateRequest{Source: data, Mode: "PRESERVE"})
	require.NoError(t, err)
	assert.Equal(t, domain.TransitionBezier, res.Profile.Phases[1].Transition.Type)
	assert.Equal(t, domain.ModeSmart, tr.Mode(), "per-request mode does not leak")

	_, err = tr.Translate(ctx, ports.TranslateRequest{Source: data, Mode: "wobbly"})
	assert.Error(t, err)
}

func TestTranslator_Cache(t *testing.T) {
	ctx := context.Background()
	cache := memory.NewCache()
	data := readFixture(t, "classic.json")

	tr := crema.New(crema.WithCache(cache))
	first, err := tr.TranslateBytes(ctx, data)
	require.NoError(t, err)

	keys, err := cache.List(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{ports.CacheKey(domain.ModeSmart, 15, data)}, keys)

	second, err := tr.TranslateBytes(ctx, data)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// A different mode is a different key.
	_, err = tr.WithMode(domain.ModeLinear).TranslateBytes(ctx, data)
	require.NoError(t, err)
	keys, _ = cache.List(ctx)
	assert.Len(t, keys, 2)
}

func TestTranslator_MaxPressure(t *testing.T) {
	ctx := context.Background()
	data := readFixture(t, "classic.json")

	_, err := crema.New(crema.WithMaxPressure(8)).TranslateBytes(ctx, data)
	require.Error(t, err)
	assert.Equal(t, "range", crema.ErrorKind(err))

	var rangeErr *domain.ValueOutOfRangeError
	require.True(t, errors.As(err, &rangeErr))
	assert.Equal(t, "Extraction (1/2)", rangeErr.Phase)
	assert.Equal(t, 8.0, rangeErr.Max)
}

func TestErrorKind(t *testing.T) {
	assert.Equal(t, "", crema.ErrorKind(nil))
	assert.Equal(t, "input", crema.ErrorKind(&domain.InputShapeError{Reason: "x"}))
	assert.Equal(t, "relative_trigger", crema.ErrorKind(&domain.RelativeTriggerError{}))
	assert.Equal(t, "range", crema.ErrorKind(&domain.ValueOutOfRangeError{}))
	assert.Equal(t, "internal", crema.ErrorKind(errors.New("boom")))
}

func TestTranslator_String(t *testing.T) {
	assert.Equal(t, "crema(mode=smart, max_pressure=15.0)", crema.New().String())
}
