package jddf

import (
	"errors"
	"fmt"

	eng "github.com/reoring/jddf/internal/engine"
)

// DecodeOptions controls how documents are decoded before they reach the
// compiler or the validator.
type DecodeOptions struct {
	// AllowDuplicateKeys accepts objects that repeat a key (the last one
	// wins). Duplicates are rejected by default.
	AllowDuplicateKeys bool
	// MaxNesting caps array/object nesting; 0 means unlimited. Validation
	// recursion follows the instance structure, so this bounds it too.
	MaxNesting int
	// MaxBytes rejects larger inputs up front; 0 means unlimited.
	MaxBytes int64
}

// ErrDecode wraps every failure to decode a JSON or YAML document.
var ErrDecode = errors.New("jddf: decode")

// DecodeJSON decodes a single JSON document into plain Go values, keeping
// numbers as json.Number.
func DecodeJSON(data []byte, opts ...DecodeOptions) (any, error) {
	opt := lastDecodeOptions(opts)
	if err := checkSize(data, opt); err != nil {
		return nil, err
	}
	v, err := eng.Decode(eng.NewBytes(data), eng.Options{
		RejectDuplicateKeys: !opt.AllowDuplicateKeys,
		MaxNesting:          opt.MaxNesting,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return v, nil
}

// ParseSchemaJSON decodes a JSON document and checks that it has the shape of
// a schema. The result still has to go through Compile.
func ParseSchemaJSON(data []byte, opts ...DecodeOptions) (Schema, error) {
	v, err := DecodeJSON(data, opts...)
	if err != nil {
		return Schema{}, err
	}
	return SchemaFromValue(v)
}

// ParseValueJSON decodes a JSON document into a Value.
func ParseValueJSON(data []byte, opts ...DecodeOptions) (Value, error) {
	v, err := DecodeJSON(data, opts...)
	if err != nil {
		return Value{}, err
	}
	return FromAny(v)
}

func lastDecodeOptions(opts []DecodeOptions) DecodeOptions {
	if len(opts) > 0 {
		return opts[len(opts)-1]
	}
	return DecodeOptions{}
}

func checkSize(data []byte, opt DecodeOptions) error {
	if opt.MaxBytes > 0 && int64(len(data)) > opt.MaxBytes {
		return fmt.Errorf("%w: max bytes exceeded (%d > %d)", ErrDecode, len(data), opt.MaxBytes)
	}
	return nil
}
