package domain

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Sentinel errors usable with errors.Is.
var (
	// ErrInputShape is matched by every error describing a malformed source document.
	ErrInputShape = errors.New("invalid input shape")

	// ErrRelativeTrigger is matched by RelativeTriggerError.
	ErrRelativeTrigger = errors.New("relative trigger without start time")

	// ErrValueOutOfRange is matched by ValueOutOfRangeError.
	ErrValueOutOfRange = errors.New("value out of range")

	// ErrCacheMiss is returned by result caches when a key is absent.
	ErrCacheMiss = errors.New("cache miss")
)

// InputShapeError reports a source document missing required fields or carrying
// values of the wrong type.
type InputShapeError struct {
	Path   string
	Reason string
}

func (e *InputShapeError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("invalid input: %s", e.Reason)
	}
	return fmt.Sprintf("invalid input at %s: %s", e.Path, e.Reason)
}

func (e *InputShapeError) Is(target error) bool { return target == ErrInputShape }

// UndefinedVariableError reports "$name" references with no matching variable.
type UndefinedVariableError struct {
	Names     []string
	Locations []string
}

func (e *UndefinedVariableError) Error() string {
	return fmt.Sprintf("undefined variable: %s (referenced at %s)",
		strings.Join(e.Names, ", "), strings.Join(e.Locations, "; "))
}

func (e *UndefinedVariableError) Is(target error) bool { return target == ErrInputShape }

// VariableDepthError reports a variable chain deeper than the resolver allows.
type VariableDepthError struct {
	Name     string
	MaxDepth int
}

func (e *VariableDepthError) Error() string {
	return fmt.Sprintf("variable $%s: resolution exceeded max depth %d", e.Name, e.MaxDepth)
}

func (e *VariableDepthError) Is(target error) bool { return target == ErrInputShape }

// RelativeTriggerError reports a relative time trigger on a stage whose start time is unknown.
type RelativeTriggerError struct {
	Stage string
	Value float64
}

func (e *RelativeTriggerError) Error() string {
	return fmt.Sprintf("stage %q: relative time trigger +%s has no prior elapsed time to accumulate from",
		e.Stage, FormatValue(e.Value))
}

func (e *RelativeTriggerError) Is(target error) bool { return target == ErrRelativeTrigger }

// ValueOutOfRangeError reports a destination value outside its allowed bounds.
// Phase is empty for profile-level fields. Max is +Inf for fields without an upper bound.
type ValueOutOfRangeError struct {
	Field string
	Phase string
	Value float64
	Min   float64
	Max   float64
	// Exclusive marks a strict lower bound (duration must be > Min).
	Exclusive bool
}

func (e *ValueOutOfRangeError) Error() string {
	where := "profile"
	if e.Phase != "" {
		where = fmt.Sprintf("phase %q", e.Phase)
	}
	var bound string
	switch {
	case e.Exclusive:
		bound = "> " + FormatValue(e.Min)
	case math.IsInf(e.Max, 1):
		bound = ">= " + FormatValue(e.Min)
	default:
		bound = fmt.Sprintf("in [%s, %s]", FormatValue(e.Min), FormatValue(e.Max))
	}
	return fmt.Sprintf("%s: %s %s must be %s", where, e.Field, FormatValue(e.Value), bound)
}

func (e *ValueOutOfRangeError) Is(target error) bool { return target == ErrValueOutOfRange }

// ErrorKind classifies a translation error for reporting:
// "input", "relative_trigger", "range" or "internal". It returns "" for nil.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInputShape):
		return "input"
	case errors.Is(err, ErrRelativeTrigger):
		return "relative_trigger"
	case errors.Is(err, ErrValueOutOfRange):
		return "range"
	}
	return "internal"
}
