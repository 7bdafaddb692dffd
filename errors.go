package jddf

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidForm indicates a schema node whose keywords do not form one
	// of the eight legal forms, or that breaks a per-form rule (unknown type
	// name, duplicate enum member, and so on).
	ErrInvalidForm = errors.New("jddf: invalid schema form")
	// ErrNoSuchDefinition indicates a ref naming a definition that the root
	// does not declare.
	ErrNoSuchDefinition = errors.New("jddf: no such definition")
	// ErrMaxDepthExceeded aborts a validation call whose ref nesting grew past
	// Config.MaxDepth. It almost always means the schema recurses through refs
	// without consuming any of the instance.
	ErrMaxDepthExceeded = errors.New("jddf: max depth exceeded")
)

// InvalidFormError reports where and why compilation rejected a node.
type InvalidFormError struct {
	SchemaPath []string
	Reason     string
}

func (e *InvalidFormError) Error() string {
	return fmt.Sprintf("%s at %q: %s", ErrInvalidForm.Error(), Pointer(e.SchemaPath), e.Reason)
}

func (e *InvalidFormError) Unwrap() error { return ErrInvalidForm }

// NoSuchDefinitionError reports a dangling ref.
type NoSuchDefinitionError struct {
	SchemaPath []string
	Ref        string
}

func (e *NoSuchDefinitionError) Error() string {
	return fmt.Sprintf("%s: %q referenced at %q", ErrNoSuchDefinition.Error(), e.Ref, Pointer(e.SchemaPath))
}

func (e *NoSuchDefinitionError) Unwrap() error { return ErrNoSuchDefinition }

// ValidationError locates one mismatch between an instance and a schema.
// InstancePath is relative to the validated value's root; SchemaPath is
// relative to the compiled schema's root (or to a definition, when the
// mismatch was found behind a ref).
type ValidationError struct {
	InstancePath []string `json:"instancePath" yaml:"instancePath"`
	SchemaPath   []string `json:"schemaPath" yaml:"schemaPath"`
	// Code names the kind of mismatch. It is informational: two errors
	// with the same paths always carry the same code.
	Code string `json:"code,omitempty" yaml:"code,omitempty"`
}

// Validation error codes.
const (
	CodeInvalidType = "invalid_type" // type keyword rejected the value
	CodeNotInEnum   = "not_in_enum"
	CodeNotArray    = "not_array"
	CodeNotObject   = "not_object"
	CodeRequired    = "required"
	CodeUnknownKey  = "unknown_key" // property not allowed by additionalProperties
	CodeMissingTag  = "missing_tag"
	CodeInvalidTag  = "invalid_tag" // tag value is not a string
	CodeUnknownTag  = "unknown_tag" // tag value has no mapping
)

// InstancePointer renders InstancePath as a JSON Pointer.
func (e ValidationError) InstancePointer() string { return Pointer(e.InstancePath) }

// SchemaPointer renders SchemaPath as a JSON Pointer.
func (e ValidationError) SchemaPointer() string { return Pointer(e.SchemaPath) }

func (e ValidationError) String() string {
	return fmt.Sprintf("instance %q does not match schema %q", e.InstancePointer(), e.SchemaPointer())
}

// ValidationErrors is a list of validation errors that implements error, so
// callers that prefer a single error value can return it directly.
type ValidationErrors []ValidationError

// Error summarizes the first few errors.
func (errs ValidationErrors) Error() string {
	if len(errs) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(errs)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		// e.g. /items/2 at /elements/type
		fmt.Fprintf(b, "%s at %s", displayPointer(errs[i].InstancePointer()), displayPointer(errs[i].SchemaPointer()))
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// Err returns errs as an error, or nil when there are none.
func (errs ValidationErrors) Err() error {
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// AsValidationErrors extracts ValidationErrors from an error using errors.As.
func AsValidationErrors(err error) (ValidationErrors, bool) {
	if err == nil {
		return nil, false
	}
	var errs ValidationErrors
	if errors.As(err, &errs) {
		return errs, true
	}
	return nil, false
}

func displayPointer(p string) string {
	if p == "" {
		return "/"
	}
	return p
}
