package schema

import (
	"fmt"
	"sort"
)

// Schema is a map of field names to their expected types.
// Example: {"name": String(), "stages": NonEmptySlice(Object(stage))}
type Schema map[string]Type

// Validate checks if data conforms to the schema.
// Returns an *AggregateError with every failure found, ordered by path.
func Validate(schema Schema, data map[string]any) error {
	if len(schema) == 0 {
		// No schema = no validation
		return nil
	}
	errs := checkObject(schema, "", data)
	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}
	return nil
}

// ValidateFields validates only specific fields from data against the schema.
// Missing fields are treated as an error.
func ValidateFields(schema Schema, data map[string]any, fields ...string) error {
	var errs []error
	for _, fieldName := range fields {
		fieldType, exists := schema[fieldName]
		if !exists {
			errs = append(errs, &ValidationError{Key: fieldName, Reason: "not defined in schema"})
			continue
		}
		errs = append(errs, checkField(fieldType, fieldName, data)...)
	}
	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}
	return nil
}

func checkObject(schema Schema, prefix string, data map[string]any) []error {
	keys := make([]string, 0, len(schema))
	for k := range schema {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var errs []error
	for _, key := range keys {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}
		errs = append(errs, checkField(schema[key], path, data, key)...)
	}
	return errs
}

// checkField validates data[key] (key defaults to the last path element).
func checkField(t Type, path string, data map[string]any, key ...string) []error {
	name := path
	if len(key) > 0 {
		name = key[0]
	}
	value, exists := data[name]
	if !exists {
		if _, optional := t.(*OptionalType); optional {
			return nil
		}
		return []error{&ValidationError{Key: path, Reason: "required"}}
	}
	return check(t, path, value)
}

// check walks composite types so that failures carry the full path.
func check(t Type, path string, value any) []error {
	switch typ := t.(type) {
	case *OptionalType:
		if value == nil {
			return nil
		}
		return check(typ.inner, path, value)
	case *ObjectType:
		obj, ok := value.(map[string]any)
		if !ok {
			return []error{&ValidationError{Key: path, Reason: "expected object", Value: value}}
		}
		return checkObject(typ.schema, path, obj)
	case *SliceType:
		items, ok := asSlice(value)
		if !ok {
			return []error{&ValidationError{Key: path, Reason: "expected array", Value: value}}
		}
		if len(items) < typ.minLen {
			return []error{&ValidationError{Key: path, Reason: fmt.Sprintf("must contain at least %d element(s)", typ.minLen)}}
		}
		var errs []error
		for i, item := range items {
			errs = append(errs, check(typ.elemType, fmt.Sprintf("%s[%d]", path, i), item)...)
		}
		return errs
	case *TupleType:
		items, ok := asSlice(value)
		if !ok {
			return []error{&ValidationError{Key: path, Reason: "expected array", Value: value}}
		}
		if len(items) != len(typ.elems) {
			return []error{&ValidationError{Key: path, Reason: fmt.Sprintf("expected %d elements, got %d", len(typ.elems), len(items))}}
		}
		var errs []error
		for i, item := range items {
			errs = append(errs, check(typ.elems[i], fmt.Sprintf("%s[%d]", path, i), item)...)
		}
		return errs
	default:
		if err := t.Validate(value); err != nil {
			return []error{&ValidationError{Key: path, Reason: err.Error(), Value: value}}
		}
		return nil
	}
}

func collapse(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	return &AggregateError{Errors: errs}
}
