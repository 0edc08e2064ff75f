package domain

import (
	"encoding/json"
	"fmt"
)

// MarshalJSON encodes a point as the two-element array used on the wire.
func (p Point) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{p.Time, p.Value})
}

// UnmarshalJSON decodes a point from a two-element array.
func (p *Point) UnmarshalJSON(data []byte) error {
	var pair []float64
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("point: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("point: expected [time, value], got %d elements", len(pair))
	}
	p.Time, p.Value = pair[0], pair[1]
	return nil
}
