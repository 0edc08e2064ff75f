package compiler

import "github.com/aretw0/crema/pkg/schema"

var triggerSchema = schema.Schema{
	"type":       schema.String(),
	"value":      schema.Number(),
	"relative":   schema.Optional(schema.Bool()),
	"comparison": schema.Optional(schema.String()),
}

var stageSchema = schema.Schema{
	"name": schema.String(),
	"key":  schema.String(),
	"type": schema.Enum("power", "flow", "pressure"),
	"dynamics": schema.Object(schema.Schema{
		"points":        schema.NonEmptySlice(schema.Tuple(schema.Number(), schema.Number())),
		"over":          schema.String(),
		"interpolation": schema.String(),
	}),
	"exit_triggers": schema.Slice(schema.Object(triggerSchema)),
	"limits": schema.Optional(schema.Slice(schema.Object(schema.Schema{
		"type":  schema.String(),
		"value": schema.Number(),
	}))),
}

// profileSchema describes the source document accepted by Parse.
var profileSchema = schema.Schema{
	"name":         schema.String(),
	"id":           schema.String(),
	"author":       schema.String(),
	"author_id":    schema.String(),
	"temperature":  schema.Number(),
	"final_weight": schema.Number(),
	"previous_authors": schema.Optional(schema.Slice(schema.Object(schema.Schema{
		"name":       schema.String(),
		"author_id":  schema.String(),
		"profile_id": schema.Optional(schema.String()),
	}))),
	"variables": schema.Optional(schema.Slice(schema.Object(schema.Schema{
		"name":  schema.Optional(schema.String()),
		"key":   schema.String(),
		"type":  schema.Optional(schema.String()),
		"value": schema.Number(),
	}))),
	"stages": schema.NonEmptySlice(schema.Object(stageSchema)),
}
