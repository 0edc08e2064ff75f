package compiler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/aretw0/crema/pkg/domain"
	"github.com/aretw0/crema/pkg/schema"
)

// DefaultMaxDepth bounds chains of variables referring to other variables.
const DefaultMaxDepth = 10

// Parser converts raw source JSON into a fully resolved domain.Profile.
type Parser struct {
	maxDepth int
}

// ParserOption configures a Parser.
type ParserOption func(*Parser)

// WithMaxDepth overrides the variable resolution depth limit.
func WithMaxDepth(depth int) ParserOption {
	return func(p *Parser) {
		if depth > 0 {
			p.maxDepth = depth
		}
	}
}

// NewParser creates a new parser instance.
func NewParser(opts ...ParserOption) *Parser {
	p := &Parser{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse decodes data, substitutes "$name" variable references, checks the
// document shape and decodes it into a profile. The returned warnings report
// variables that are defined but never referenced.
func (p *Parser) Parse(data []byte) (*domain.Profile, []string, error) {
	data, err := Sanitize(data)
	if err != nil {
		return nil, nil, err
	}

	raw, err := decodeJSON(data)
	if err != nil {
		return nil, nil, err
	}

	warnings, err := p.resolveVariables(raw)
	if err != nil {
		return nil, nil, err
	}

	if err := schema.Validate(profileSchema, raw); err != nil {
		return nil, nil, shapeError(err)
	}

	profile, err := decodeProfile(raw)
	if err != nil {
		return nil, nil, &domain.InputShapeError{Reason: err.Error()}
	}
	return profile, warnings, nil
}

// decodeJSON keeps numbers as json.Number so integer-looking values survive
// until the schema check.
func decodeJSON(data []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, &domain.InputShapeError{Reason: fmt.Sprintf("invalid JSON: %v", err)}
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, &domain.InputShapeError{Reason: "invalid JSON: trailing data after document"}
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, &domain.InputShapeError{Reason: fmt.Sprintf("expected a JSON object, got %T", v)}
	}
	return obj, nil
}

func shapeError(err error) error {
	errs := schema.ValidationErrors(err)
	if len(errs) == 0 {
		return &domain.InputShapeError{Reason: err.Error()}
	}
	var first *schema.ValidationError
	if !errors.As(errs[0], &first) {
		return &domain.InputShapeError{Reason: errs[0].Error()}
	}
	reason := first.Reason
	if len(errs) > 1 {
		reason = fmt.Sprintf("%s (and %d more)", reason, len(errs)-1)
	}
	return &domain.InputShapeError{Path: first.Key, Reason: reason}
}
