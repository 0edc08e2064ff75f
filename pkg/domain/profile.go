package domain

import "strings"

// Profile is a fully resolved source (Meticulous) profile.
// Field tags follow the source wire format so the parse layer can decode a
// generic map straight into it.
type Profile struct {
	Name            string     `json:"name" mapstructure:"name"`
	ID              string     `json:"id" mapstructure:"id"`
	Author          string     `json:"author" mapstructure:"author"`
	AuthorID        string     `json:"author_id" mapstructure:"author_id"`
	PreviousAuthors []Author   `json:"previous_authors,omitempty" mapstructure:"previous_authors"`
	Temperature     float64    `json:"temperature" mapstructure:"temperature"`
	FinalWeight     float64    `json:"final_weight" mapstructure:"final_weight"`
	Variables       []Variable `json:"variables,omitempty" mapstructure:"variables"`
	Stages          []Stage    `json:"stages" mapstructure:"stages"`
}

// Author is an entry of the profile's authorship history. It is read but never translated.
type Author struct {
	Name      string `json:"name" mapstructure:"name"`
	AuthorID  string `json:"author_id" mapstructure:"author_id"`
	ProfileID string `json:"profile_id,omitempty" mapstructure:"profile_id"`
}

// Variable is a named value that stage fields may reference as "$key".
type Variable struct {
	Name  string  `json:"name" mapstructure:"name"`
	Key   string  `json:"key" mapstructure:"key"`
	Type  string  `json:"type" mapstructure:"type"`
	Value float64 `json:"value" mapstructure:"value"`
}

// Stage is one timed segment of the source timeline.
type Stage struct {
	Name         string        `json:"name" mapstructure:"name"`
	Key          string        `json:"key" mapstructure:"key"`
	Type         StageKind     `json:"type" mapstructure:"type"`
	Dynamics     Dynamics      `json:"dynamics" mapstructure:"dynamics"`
	ExitTriggers []ExitTrigger `json:"exit_triggers" mapstructure:"exit_triggers"`
	Limits       []Limit       `json:"limits,omitempty" mapstructure:"limits"`
}

// IsBloom reports whether the stage is a bloom hold ("bloom" or "blooming" key, any case).
func (s Stage) IsBloom() bool {
	k := strings.ToLower(strings.TrimSpace(s.Key))
	return k == "bloom" || k == "blooming"
}

// Dynamics is the curve a stage drives its controlled quantity along.
type Dynamics struct {
	Points        []Point       `json:"points" mapstructure:"points"`
	Over          string        `json:"over" mapstructure:"over"`
	Interpolation Interpolation `json:"interpolation" mapstructure:"interpolation"`
}

// Point is a (time, value) pair of a stage curve.
type Point struct {
	Time  float64
	Value float64
}

// Last returns the final point of the curve and false if the curve is empty.
func (d Dynamics) Last() (Point, bool) {
	if len(d.Points) == 0 {
		return Point{}, false
	}
	return d.Points[len(d.Points)-1], true
}

// ExitTrigger is a source stop condition.
type ExitTrigger struct {
	Type       TriggerType `json:"type" mapstructure:"type"`
	Value      float64     `json:"value" mapstructure:"value"`
	Relative   bool        `json:"relative" mapstructure:"relative"`
	Comparison Comparison  `json:"comparison" mapstructure:"comparison"`
}

// Limit is a source safety limit. The destination format has no equivalent.
type Limit struct {
	Type  string  `json:"type" mapstructure:"type"`
	Value float64 `json:"value" mapstructure:"value"`
}
