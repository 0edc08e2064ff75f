package runtime

import (
	"fmt"

	"github.com/aretw0/crema/pkg/domain"
)

var triggerTargets = map[domain.TriggerType]domain.TargetType{
	domain.TriggerWeight:   domain.TargetVolumetric,
	domain.TriggerTime:     domain.TargetTime,
	domain.TriggerPressure: domain.TargetPressure,
	domain.TriggerFlow:     domain.TargetFlow,
}

var comparisonOperators = map[domain.Comparison]domain.Operator{
	domain.CompareGTE: domain.OpGTE,
	domain.CompareLTE: domain.OpLTE,
	domain.CompareGT:  domain.OpGT,
	domain.CompareLT:  domain.OpLT,
}

// MapOperator converts a source comparison. Absent or unrecognized comparisons, "=" included, become gte.
func MapOperator(c domain.Comparison) domain.Operator {
	if op, ok := comparisonOperators[c.Normalize()]; ok {
		return op
	}
	return domain.OpGTE
}

// MapTriggerType converts a supported source trigger type. ok is false for
// types the destination cannot express.
func MapTriggerType(t domain.TriggerType) (domain.TargetType, bool) {
	target, ok := triggerTargets[t]
	return target, ok
}

// ConvertExitTriggers translates the stop conditions of one stage.
//
// Unsupported types are dropped with a warning. Relative time triggers are
// offset by start; a retained one fails when the start is unknown. For every
// supported type only the first trigger survives; each later one yields a
// duplicate warning, and the first two are additionally checked for a range
// conflict on their resolved values. Survivors keep their input order.
func ConvertExitTriggers(triggers []domain.ExitTrigger, start StartTime) ([]domain.Target, []string, error) {
	var warnings []string
	var order []domain.TriggerType
	groups := make(map[domain.TriggerType][]domain.ExitTrigger)

	for _, trig := range triggers {
		if _, ok := triggerTargets[trig.Type]; !ok {
			warnings = append(warnings, fmt.Sprintf(
				"%s %s exit trigger is not supported by Gaggimate machines. This trigger will be ignored.",
				domain.WarningUnsupported, trig.Type))
			continue
		}
		if _, seen := groups[trig.Type]; !seen {
			order = append(order, trig.Type)
		}
		groups[trig.Type] = append(groups[trig.Type], trig)
	}

	targets := make([]domain.Target, 0, len(order))
	for _, typ := range order {
		group := groups[typ]
		first := group[0]
		if isRelativeTime(first) && !start.Known {
			return nil, nil, &domain.RelativeTriggerError{Value: first.Value}
		}
		for _, dup := range group[1:] {
			warnings = append(warnings, fmt.Sprintf(
				"%s Duplicate %s trigger: %s (already have %s). Only the first trigger will be used.",
				domain.WarningValidation, typ, describeTrigger(dup, dup.Value), describeTrigger(first, first.Value)))
		}
		if len(group) > 1 {
			a, b := group[0], group[1]
			va, vb := resolvedValue(a, start), resolvedValue(b, start)
			if conflicting(effectiveComparison(a), va, effectiveComparison(b), vb) {
				warnings = append(warnings, fmt.Sprintf(
					"%s Conflicting %s triggers: %s AND %s - conditions can never both be true. Only the first trigger will be used.",
					domain.WarningValidation, typ, describeTrigger(a, va), describeTrigger(b, vb)))
			}
		}

		targets = append(targets, domain.Target{
			Type:     triggerTargets[typ],
			Operator: MapOperator(first.Comparison),
			Value:    resolvedValue(first, start),
		})
	}
	return targets, warnings, nil
}

func isRelativeTime(t domain.ExitTrigger) bool {
	return t.Type == domain.TriggerTime && t.Relative
}

// resolvedValue is the absolute value of t for a stage starting at start.
func resolvedValue(t domain.ExitTrigger, start StartTime) float64 {
	if isRelativeTime(t) {
		return start.Seconds + t.Value
	}
	return t.Value
}

// effectiveComparison is the comparison MapOperator applies to t.
func effectiveComparison(t domain.ExitTrigger) domain.Comparison {
	c := t.Comparison.Normalize()
	if _, ok := comparisonOperators[c]; ok {
		return c
	}
	return domain.CompareGTE
}

// conflicting reports whether "a x" and "b y" describe ranges with no common value.
func conflicting(a domain.Comparison, x float64, b domain.Comparison, y float64) bool {
	switch a + "|" + b {
	case ">=|<=":
		return x > y
	case "<=|>=":
		return y > x
	case ">|<", ">=|<", ">|<=":
		return x >= y
	case "<|>", "<|>=", "<=|>":
		return y >= x
	}
	return false
}

func describeTrigger(t domain.ExitTrigger, value float64) string {
	return fmt.Sprintf("%s %s %s", t.Type, effectiveComparison(t), domain.FormatValue(value))
}
