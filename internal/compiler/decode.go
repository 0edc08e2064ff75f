package compiler

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/aretw0/crema/pkg/domain"
	"github.com/mitchellh/mapstructure"
)

var pointType = reflect.TypeOf(domain.Point{})

// decodeProfile maps the validated generic document onto domain.Profile.
func decodeProfile(raw map[string]any) (*domain.Profile, error) {
	var profile domain.Profile
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       pointHook,
		WeaklyTypedInput: true,
		Result:           &profile,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build decoder: %w", err)
	}
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("failed to decode profile: %w", err)
	}
	return &profile, nil
}

// pointHook turns [time, value] arrays into domain.Point.
func pointHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if to != pointType {
		return data, nil
	}
	pair, ok := data.([]any)
	if !ok || len(pair) != 2 {
		return nil, fmt.Errorf("point: expected [time, value], got %v", data)
	}
	t, err := toFloat(pair[0])
	if err != nil {
		return nil, fmt.Errorf("point time: %w", err)
	}
	v, err := toFloat(pair[1])
	if err != nil {
		return nil, fmt.Errorf("point value: %w", err)
	}
	return domain.Point{Time: t, Value: v}, nil
}

func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case json.Number:
		return n.Float64()
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	}
	return 0, fmt.Errorf("expected number, got %T", v)
}
