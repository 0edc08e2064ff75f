package compiler

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/aretw0/crema/pkg/domain"
)

var varPattern = regexp.MustCompile(`^\$(\w+)\b`)

// slot is a location in the raw document that may hold a variable reference.
type slot struct {
	path string
	get  func() any
	set  func(any)
}

type resolver struct {
	lookup   map[string]any
	used     map[string]bool
	maxDepth int
}

// resolveVariables substitutes references in stage curves, exit trigger
// values and limit values in place. It returns a warning for every variable
// that no stage refers to.
func (p *Parser) resolveVariables(raw map[string]any) ([]string, error) {
	var keys []string
	r := &resolver{lookup: map[string]any{}, used: map[string]bool{}, maxDepth: p.maxDepth}
	for _, v := range asList(raw["variables"]) {
		def, ok := v.(map[string]any)
		if !ok {
			continue
		}
		key, _ := def["key"].(string)
		if key == "" {
			continue
		}
		if _, dup := r.lookup[key]; !dup {
			keys = append(keys, key)
			r.lookup[key] = def["value"]
		}
	}

	slots := stageSlots(raw)
	if len(r.lookup) > 0 {
		for _, s := range slots {
			v, err := r.resolve(s.get(), 0)
			if err != nil {
				return nil, err
			}
			s.set(v)
		}
		// Variables may alias each other; resolve their own values without
		// counting those references as uses.
		aliases := &resolver{lookup: r.lookup, used: map[string]bool{}, maxDepth: r.maxDepth}
		for _, s := range variableSlots(raw) {
			v, err := aliases.resolve(s.get(), 0)
			if err != nil {
				return nil, err
			}
			s.set(v)
		}
	}

	undefined := &domain.UndefinedVariableError{}
	for _, s := range slots {
		if ref, ok := s.get().(string); ok && strings.HasPrefix(ref, "$") {
			undefined.Names = append(undefined.Names, ref)
			undefined.Locations = append(undefined.Locations, s.path)
		}
	}
	if len(undefined.Names) > 0 {
		return nil, undefined
	}

	var unused []string
	for _, k := range keys {
		if !r.used[k] {
			unused = append(unused, k)
		}
	}
	if len(unused) == 0 {
		return nil, nil
	}
	return []string{fmt.Sprintf("%s Unused variables: %s", domain.WarningValidation, strings.Join(unused, ", "))}, nil
}

func (r *resolver) resolve(val any, depth int) (any, error) {
	s, ok := val.(string)
	if !ok {
		return val, nil
	}
	m := varPattern.FindStringSubmatch(s)
	if m == nil {
		return val, nil
	}
	target, defined := r.lookup[m[1]]
	if !defined {
		return val, nil
	}
	if depth >= r.maxDepth {
		return nil, &domain.VariableDepthError{Name: m[1], MaxDepth: r.maxDepth}
	}
	r.used[m[1]] = true
	return r.resolve(target, depth+1)
}

func stageSlots(raw map[string]any) []slot {
	var slots []slot
	for i, st := range asList(raw["stages"]) {
		stage, ok := st.(map[string]any)
		if !ok {
			continue
		}
		if dyn, ok := stage["dynamics"].(map[string]any); ok {
			for j, pt := range asList(dyn["points"]) {
				pair, ok := pt.([]any)
				if !ok {
					continue
				}
				for k := range pair {
					slots = append(slots, slot{
						path: fmt.Sprintf("stages[%d].dynamics.points[%d][%d]", i, j, k),
						get:  func() any { return pair[k] },
						set:  func(v any) { pair[k] = v },
					})
				}
			}
		}
		slots = append(slots, valueSlots(stage["exit_triggers"], fmt.Sprintf("stages[%d].exit_triggers", i))...)
		slots = append(slots, valueSlots(stage["limits"], fmt.Sprintf("stages[%d].limits", i))...)
	}
	return slots
}

func variableSlots(raw map[string]any) []slot {
	return valueSlots(raw["variables"], "variables")
}

// valueSlots returns the "value" field of every object in list.
func valueSlots(list any, prefix string) []slot {
	var slots []slot
	for i, item := range asList(list) {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if _, present := obj["value"]; !present {
			continue
		}
		slots = append(slots, slot{
			path: fmt.Sprintf("%s[%d].value", prefix, i),
			get:  func() any { return obj["value"] },
			set:  func(v any) { obj["value"] = v },
		})
	}
	return slots
}

func asList(v any) []any {
	list, _ := v.([]any)
	return list
}
