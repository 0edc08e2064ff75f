package validator

import (
	"strings"

	"github.com/aretw0/crema/pkg/domain"
)

// PhaseType is the role of a stage or phase in the shot.
type PhaseType string

const (
	TypePreinfusion PhaseType = "preinfusion"
	TypeBrew        PhaseType = "brew"
	TypeUnknown     PhaseType = "unknown"
)

var stageKeyTypes = map[string]PhaseType{
	"fill":       TypePreinfusion,
	"bloom":      TypePreinfusion,
	"blooming":   TypePreinfusion,
	"extraction": TypeBrew,
}

// StageType detects the role of a source stage from its key, then its name.
func StageType(stage domain.Stage) PhaseType {
	if t, ok := stageKeyTypes[strings.ToLower(stage.Key)]; ok {
		return t
	}
	return typeFromName(stage.Name)
}

// TypeOfPhase detects the role of a destination phase from its phase field,
// then its name.
func TypeOfPhase(phase domain.Phase) PhaseType {
	switch phase.Phase {
	case domain.PhasePreinfusion:
		return TypePreinfusion
	case domain.PhaseBrew:
		return TypeBrew
	}
	if t, ok := stageKeyTypes[strings.ToLower(phase.Phase)]; ok {
		return t
	}
	base, _, _, _ := parseSplit(phase.Name)
	return typeFromName(base)
}

func typeFromName(name string) PhaseType {
	n := strings.ToLower(name)
	for _, hint := range []string{"preinfus", "prebrew", "fill", "bloom"} {
		if strings.Contains(n, hint) {
			return TypePreinfusion
		}
	}
	for _, hint := range []string{"extraction", "brew"} {
		if strings.Contains(n, hint) {
			return TypeBrew
		}
	}
	return TypeUnknown
}

// OrderingOK reports whether every preinfusion entry comes before every brew entry.
func OrderingOK(types []PhaseType) bool {
	lastPre, firstBrew := -1, -1
	for i, t := range types {
		switch t {
		case TypePreinfusion:
			lastPre = i
		case TypeBrew:
			if firstBrew < 0 {
				firstBrew = i
			}
		}
	}
	return lastPre < 0 || firstBrew < 0 || lastPre < firstBrew
}
