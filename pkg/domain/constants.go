package domain

// Destination envelope constants.
const (
	// ProfileTypePro is the only profile type emitted for the destination format.
	ProfileTypePro = "pro"

	// DefaultValve is the valve state used for every generated phase.
	DefaultValve = 1
)

// Destination numeric bounds.
const (
	MinTemperature = 0.0
	MaxTemperature = 150.0

	// DefaultMaxPressure is the pump pressure ceiling (bar) enforced when the caller
	// does not configure one.
	DefaultMaxPressure = 15.0

	// MinBloomPressure is the floor applied to bloom holds (bar).
	MinBloomPressure = 2.0

	// PressureModeFlowLimit is the flow ceiling reported by pressure-driven phases (ml/s).
	PressureModeFlowLimit = 10.0

	// FlowModePressureLimit is the pressure ceiling reported by flow-driven phases (bar).
	FlowModePressureLimit = 12.0

	// TypicalMinPressure and TypicalMaxPressure bound ordinary brewing pressure (bar).
	// Pressure stages outside this band are translated but warned about.
	TypicalMinPressure = 1.0
	TypicalMaxPressure = 10.0
)

// Duration heuristics (seconds).
const (
	// MinDuration replaces every computed duration that is zero or negative.
	MinDuration = 0.1

	// ShortRampDuration is used for single-point stages that jump by more than RampDeltaThreshold.
	ShortRampDuration = 1.5

	// DefaultStageDuration is used when nothing else determines a stage length.
	DefaultStageDuration = 4.0

	RampDeltaThreshold = 3.0
)

// Warning categories. Every warning string starts with one of these tags.
const (
	WarningValidation  = "[Validation]"
	WarningUnsupported = "[Unsupported]"
)
