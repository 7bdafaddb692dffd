package jddf

import (
	"errors"
)

// ErrNilSchema is returned when Validate is called without a compiled schema.
var ErrNilSchema = errors.New("jddf: nil compiled schema")

// Validator validates instances against compiled schemas under a fixed
// Config. It holds no per-call state and is safe for concurrent use.
type Validator struct {
	config Config
}

// NewValidator returns a Validator using cfg. See Config for how zero and
// negative limits are interpreted.
func NewValidator(cfg Config) *Validator {
	return &Validator{config: cfg.normalize()}
}

// Config returns the effective configuration.
func (v *Validator) Config() Config { return v.config }

// Validate matches inst against schema and returns every mismatch found, in
// traversal order. A valid instance yields an empty slice and a nil error.
//
// With MaxErrors > 0 the traversal stops as soon as that many errors were
// collected. If following refs nests deeper than MaxDepth, Validate returns
// ErrMaxDepthExceeded and no errors; this is a schema problem, not an
// instance problem.
//
// Only refs count toward MaxDepth. Descending through elements, properties,
// values or discriminator branches uses the Go stack without a bound, so
// callers accepting untrusted input should cap its nesting when decoding
// (see DecodeOptions.MaxNesting).
func (v *Validator) Validate(schema *CompiledSchema, inst Value) ([]ValidationError, error) {
	if schema == nil || schema.root == nil {
		return nil, ErrNilSchema
	}
	m := &vm{
		schema:    schema,
		maxDepth:  v.config.MaxDepth,
		maxErrors: v.config.MaxErrors,
		errors:    []ValidationError{},
	}
	err := m.validate(schema.root, inst, nil, nil, 0, nil)
	if err != nil && !errors.Is(err, errMaxErrors) {
		return nil, err
	}
	return m.errors, nil
}

// ValidateAny converts inst with FromAny and validates it.
func (v *Validator) ValidateAny(schema *CompiledSchema, inst any) ([]ValidationError, error) {
	val, err := FromAny(inst)
	if err != nil {
		return nil, err
	}
	return v.Validate(schema, val)
}
