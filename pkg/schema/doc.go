// Package schema provides a type-safe validation system for decoded JSON documents.
//
// It defines a small type system with built-in types (string, number, bool),
// composites (slices, fixed-size tuples, nested objects) and custom validators.
// Schemas map field names to types; validation walks the document and reports
// every failure with the JSON path of the offending value.
//
// Basic usage:
//
//	s := schema.Schema{
//	    "name":   schema.String(),
//	    "weight": schema.Number(),
//	    "tags":   schema.Optional(schema.Slice(schema.String())),
//	}
//
//	if err := schema.Validate(s, data); err != nil {
//	    for _, e := range schema.ValidationErrors(err) {
//	        // e.(*schema.ValidationError).Key is a path like "stages[0].dynamics.points[1][0]"
//	    }
//	}
//
// Number accepts json.Number as well as Go numeric types, and names unresolved
// "$variable" placeholders explicitly so callers can tell a missing substitution
// from a plain type mismatch.
//
// This package has zero external dependencies beyond the Go standard library.
package schema
