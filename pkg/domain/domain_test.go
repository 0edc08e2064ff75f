package domain

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "36.0", FormatValue(36))
	assert.Equal(t, "2.5", FormatValue(2.5))
	assert.Equal(t, "-1.0", FormatValue(-1))
	assert.Equal(t, "0.1", FormatValue(0.1))
}

func TestParseTransitionMode(t *testing.T) {
	m, err := ParseTransitionMode("")
	require.NoError(t, err)
	assert.Equal(t, ModeSmart, m)

	m, err = ParseTransitionMode("  PRESERVE ")
	require.NoError(t, err)
	assert.Equal(t, ModePreserve, m)

	_, err = ParseTransitionMode("cubic")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "smart, preserve, linear, instant")
}

func TestComparisonNormalize(t *testing.T) {
	assert.Equal(t, CompareGTE, Comparison(" >= ").Normalize())
	assert.Equal(t, CompareLTE, Comparison("≤").Normalize())
	assert.Equal(t, Comparison("="), Comparison("=").Normalize())
}

func TestPointJSON(t *testing.T) {
	var d Dynamics
	require.NoError(t, json.Unmarshal([]byte(`{"points":[[0,2],[10,5.5]],"over":"time","interpolation":"linear"}`), &d))
	require.Len(t, d.Points, 2)
	assert.Equal(t, Point{Time: 10, Value: 5.5}, d.Points[1])

	out, err := json.Marshal(d.Points[0])
	require.NoError(t, err)
	assert.JSONEq(t, `[0,2]`, string(out))

	var p Point
	assert.Error(t, json.Unmarshal([]byte(`[1]`), &p))
}

func TestErrorsMatchSentinels(t *testing.T) {
	assert.True(t, errors.Is(&InputShapeError{Reason: "x"}, ErrInputShape))
	assert.True(t, errors.Is(&UndefinedVariableError{Names: []string{"$a"}}, ErrInputShape))
	assert.True(t, errors.Is(&VariableDepthError{Name: "a", MaxDepth: 10}, ErrInputShape))
	assert.True(t, errors.Is(&RelativeTriggerError{Stage: "Fill", Value: 2}, ErrRelativeTrigger))
	assert.True(t, errors.Is(&ValueOutOfRangeError{Field: "pressure"}, ErrValueOutOfRange))
	assert.False(t, errors.Is(&ValueOutOfRangeError{}, ErrInputShape))
}

func TestValueOutOfRangeErrorMessage(t *testing.T) {
	err := &ValueOutOfRangeError{Field: "pressure", Phase: "Ramp (1/2)", Value: 16, Min: 0, Max: 15}
	assert.Equal(t, `phase "Ramp (1/2)": pressure 16.0 must be in [0.0, 15.0]`, err.Error())

	err = &ValueOutOfRangeError{Field: "flow", Phase: "P", Value: -1, Max: math.Inf(1)}
	assert.Equal(t, `phase "P": flow -1.0 must be >= 0.0`, err.Error())

	err = &ValueOutOfRangeError{Field: "temperature", Value: 200, Max: MaxTemperature}
	assert.Equal(t, `profile: temperature 200.0 must be in [0.0, 150.0]`, err.Error())
}

func TestStageIsBloom(t *testing.T) {
	for _, key := range []string{"bloom", "Blooming", " BLOOM "} {
		assert.True(t, Stage{Key: key}.IsBloom(), key)
	}
	for _, key := range []string{"", "fill", "pre-bloom"} {
		assert.False(t, Stage{Key: key}.IsBloom(), key)
	}
}
