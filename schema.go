package jddf

import (
	"errors"
	"fmt"

	json "github.com/goccy/go-json"
)

// Schema is the raw, uncompiled form of a schema document.
//
// Optional keywords are represented by nil pointers, nil maps and nil slices.
// A non-nil but empty map or slice counts as present: `{"enum": []}` is an
// enum schema with no members (and is rejected by Compile), not an empty
// schema.
//
// Schema does not enforce the rules about which keywords may appear together;
// Compile does.
type Schema struct {
	Definitions          map[string]Schema `json:"definitions,omitempty" yaml:"definitions,omitempty"`
	AdditionalProperties *bool             `json:"additionalProperties,omitempty" yaml:"additionalProperties,omitempty"`
	Ref                  *string           `json:"ref,omitempty" yaml:"ref,omitempty"`
	Type                 *string           `json:"type,omitempty" yaml:"type,omitempty"`
	Enum                 []string          `json:"enum,omitempty" yaml:"enum,omitempty"`
	Elements             *Schema           `json:"elements,omitempty" yaml:"elements,omitempty"`
	Properties           map[string]Schema `json:"properties,omitempty" yaml:"properties,omitempty"`
	OptionalProperties   map[string]Schema `json:"optionalProperties,omitempty" yaml:"optionalProperties,omitempty"`
	Values               *Schema           `json:"values,omitempty" yaml:"values,omitempty"`
	Discriminator        *Discriminator    `json:"discriminator,omitempty" yaml:"discriminator,omitempty"`
}

// Discriminator holds the tag field name and the tag value -> schema mapping
// of a discriminator schema.
type Discriminator struct {
	Tag     string            `json:"tag" yaml:"tag"`
	Mapping map[string]Schema `json:"mapping" yaml:"mapping"`
}

// ErrNotSchema indicates that a decoded value does not have the shape of a
// schema document (for example `ref` is not a string).
var ErrNotSchema = errors.New("jddf: value is not a schema")

// IsSchema reports whether v, a decoded JSON or YAML tree, has the shape of a
// schema document. It does not check keyword combinations or references; see
// Compile for that.
func IsSchema(v any) bool {
	_, err := SchemaFromValue(v)
	return err == nil
}

// SchemaFromValue converts a decoded JSON or YAML tree into a Schema. Unknown
// keywords are ignored. A keyword holding the wrong JSON type yields an error
// wrapping ErrNotSchema that names the offending location.
func SchemaFromValue(v any) (Schema, error) {
	return schemaFromValue(v, nil)
}

func schemaFromValue(v any, path []string) (Schema, error) {
	var s Schema
	obj, ok := asObject(v)
	if !ok {
		return s, notSchema(path, "expected object")
	}

	if raw, ok := obj["definitions"]; ok {
		defs, err := schemaMap(raw, append(path, "definitions"))
		if err != nil {
			return s, err
		}
		s.Definitions = defs
	}
	if raw, ok := obj["additionalProperties"]; ok {
		b, ok := raw.(bool)
		if !ok {
			return s, notSchema(append(path, "additionalProperties"), "expected boolean")
		}
		s.AdditionalProperties = &b
	}
	if raw, ok := obj["ref"]; ok {
		str, ok := raw.(string)
		if !ok {
			return s, notSchema(append(path, "ref"), "expected string")
		}
		s.Ref = &str
	}
	if raw, ok := obj["type"]; ok {
		str, ok := raw.(string)
		if !ok {
			return s, notSchema(append(path, "type"), "expected string")
		}
		s.Type = &str
	}
	if raw, ok := obj["enum"]; ok {
		arr, ok := raw.([]any)
		if !ok {
			return s, notSchema(append(path, "enum"), "expected array")
		}
		s.Enum = make([]string, 0, len(arr))
		for i, e := range arr {
			str, ok := e.(string)
			if !ok {
				return s, notSchema(append(path, "enum", fmt.Sprint(i)), "expected string")
			}
			s.Enum = append(s.Enum, str)
		}
	}
	if raw, ok := obj["elements"]; ok {
		sub, err := schemaFromValue(raw, append(path, "elements"))
		if err != nil {
			return s, err
		}
		s.Elements = &sub
	}
	if raw, ok := obj["properties"]; ok {
		m, err := schemaMap(raw, append(path, "properties"))
		if err != nil {
			return s, err
		}
		s.Properties = m
	}
	if raw, ok := obj["optionalProperties"]; ok {
		m, err := schemaMap(raw, append(path, "optionalProperties"))
		if err != nil {
			return s, err
		}
		s.OptionalProperties = m
	}
	if raw, ok := obj["values"]; ok {
		sub, err := schemaFromValue(raw, append(path, "values"))
		if err != nil {
			return s, err
		}
		s.Values = &sub
	}
	if raw, ok := obj["discriminator"]; ok {
		d, err := discriminatorFromValue(raw, append(path, "discriminator"))
		if err != nil {
			return s, err
		}
		s.Discriminator = d
	}
	return s, nil
}

func discriminatorFromValue(v any, path []string) (*Discriminator, error) {
	obj, ok := asObject(v)
	if !ok {
		return nil, notSchema(path, "expected object")
	}
	tag, ok := obj["tag"].(string)
	if !ok {
		return nil, notSchema(append(path, "tag"), "expected string")
	}
	mapping, err := schemaMap(obj["mapping"], append(path, "mapping"))
	if err != nil {
		return nil, err
	}
	return &Discriminator{Tag: tag, Mapping: mapping}, nil
}

func schemaMap(v any, path []string) (map[string]Schema, error) {
	obj, ok := asObject(v)
	if !ok {
		return nil, notSchema(path, "expected object")
	}
	out := make(map[string]Schema, len(obj))
	for k, raw := range obj {
		sub, err := schemaFromValue(raw, append(path, k))
		if err != nil {
			return nil, err
		}
		out[k] = sub
	}
	return out, nil
}

// asObject accepts both map[string]any and the map[any]any shape that some
// YAML decoders produce.
func asObject(v any) (map[string]any, bool) {
	switch t := v.(type) {
	case map[string]any:
		return t, true
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			ks, ok := k.(string)
			if !ok {
				return nil, false
			}
			out[ks] = vv
		}
		return out, true
	default:
		return nil, false
	}
}

func notSchema(path []string, msg string) error {
	return fmt.Errorf("%w: %s at %s", ErrNotSchema, msg, Pointer(path))
}

// MarshalJSON renders the schema with keyword presence preserved, so that an
// empty-but-present map or slice survives a round trip.
func (s Schema) MarshalJSON() ([]byte, error) {
	out := map[string]any{}
	if s.Definitions != nil {
		out["definitions"] = s.Definitions
	}
	if s.AdditionalProperties != nil {
		out["additionalProperties"] = *s.AdditionalProperties
	}
	if s.Ref != nil {
		out["ref"] = *s.Ref
	}
	if s.Type != nil {
		out["type"] = *s.Type
	}
	if s.Enum != nil {
		out["enum"] = s.Enum
	}
	if s.Elements != nil {
		out["elements"] = s.Elements
	}
	if s.Properties != nil {
		out["properties"] = s.Properties
	}
	if s.OptionalProperties != nil {
		out["optionalProperties"] = s.OptionalProperties
	}
	if s.Values != nil {
		out["values"] = s.Values
	}
	if s.Discriminator != nil {
		out["discriminator"] = s.Discriminator
	}
	return json.Marshal(out)
}
