package domain

// TargetProfile is a translated destination (Gaggimate) profile.
type TargetProfile struct {
	Label       string  `json:"label"`
	Type        string  `json:"type"`
	Description string  `json:"description,omitempty"`
	Temperature float64 `json:"temperature"`
	Utility     bool    `json:"utility"`
	Phases      []Phase `json:"phases"`
}

// Phase is one timed segment of the destination timeline.
type Phase struct {
	Name        string     `json:"name"`
	Phase       string     `json:"phase"`
	Valve       int        `json:"valve"`
	Duration    float64    `json:"duration"`
	Temperature float64    `json:"temperature"`
	Transition  Transition `json:"transition"`
	Pump        Pump       `json:"pump"`
	Targets     []Target   `json:"targets"`
}

// Transition describes how the pump ramps into a phase's target.
type Transition struct {
	Type     TransitionType `json:"type"`
	Duration float64        `json:"duration"`
	Adaptive bool           `json:"adaptive"`
}

// Pump is the pump setting of a phase. Target names the controlled variable;
// the other field is the limit reported alongside it.
type Pump struct {
	Target   PumpMode `json:"target"`
	Pressure float64  `json:"pressure"`
	Flow     float64  `json:"flow"`
}

// Controlled returns the value of the variable the pump drives.
func (p Pump) Controlled() float64 {
	if p.Target == PumpFlow {
		return p.Flow
	}
	return p.Pressure
}

// Target is a destination exit condition.
type Target struct {
	Type     TargetType `json:"type"`
	Operator Operator   `json:"operator"`
	Value    float64    `json:"value"`
}

// Translation is the complete outcome of translating one source document.
type Translation struct {
	Profile  *TargetProfile `json:"profile"`
	Warnings []string       `json:"warnings"`
}
