package jddf

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"
)

const yamlTimestampTag = "!!timestamp"

// DecodeYAML decodes the first document of a YAML stream into JSON-like Go
// values: mappings become map[string]any and non-string keys are rejected.
// Timestamp scalars keep their source text. DecodeOptions.AllowDuplicateKeys
// has no effect, since yaml.v3 always rejects duplicate mapping keys.
func DecodeYAML(data []byte, opts ...DecodeOptions) (any, error) {
	opt := lastDecodeOptions(opts)
	if err := checkSize(data, opt); err != nil {
		return nil, err
	}
	var doc yaml.Node
	dec := yaml.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty YAML document", ErrDecode)
		}
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	root := &doc
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return nil, fmt.Errorf("%w: empty YAML document", ErrDecode)
		}
		root = root.Content[0]
	}
	out, err := yamlNodeValue(root, nil, 0, opt.MaxNesting)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return out, nil
}

// ParseSchemaYAML decodes a YAML document and checks that it has the shape of
// a schema.
func ParseSchemaYAML(data []byte, opts ...DecodeOptions) (Schema, error) {
	v, err := DecodeYAML(data, opts...)
	if err != nil {
		return Schema{}, err
	}
	return SchemaFromValue(v)
}

// ParseValueYAML decodes a YAML document into a Value.
func ParseValueYAML(data []byte, opts ...DecodeOptions) (Value, error) {
	v, err := DecodeYAML(data, opts...)
	if err != nil {
		return Value{}, err
	}
	return FromAny(v)
}

// yamlNodeValue converts a YAML node tree into JSON-like values.
func yamlNodeValue(n *yaml.Node, at *path, depth, maxNesting int) (any, error) {
	switch n.Kind {
	case yaml.AliasNode:
		if n.Alias == nil {
			return nil, fmt.Errorf("dangling alias at %s", displayPointer(Pointer(at.slice())))
		}
		return yamlNodeValue(n.Alias, at, depth, maxNesting)

	case yaml.MappingNode:
		if maxNesting > 0 && depth+1 > maxNesting {
			return nil, fmt.Errorf("max nesting of %d exceeded at %s", maxNesting, displayPointer(Pointer(at.slice())))
		}
		out := make(map[string]any, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			k := n.Content[i]
			if k.Kind != yaml.ScalarNode || k.ShortTag() != "!!str" {
				return nil, fmt.Errorf("non-string key %q at %s", k.Value, displayPointer(Pointer(at.slice())))
			}
			v, err := yamlNodeValue(n.Content[i+1], at.push(k.Value), depth+1, maxNesting)
			if err != nil {
				return nil, err
			}
			out[k.Value] = v
		}
		return out, nil

	case yaml.SequenceNode:
		if maxNesting > 0 && depth+1 > maxNesting {
			return nil, fmt.Errorf("max nesting of %d exceeded at %s", maxNesting, displayPointer(Pointer(at.slice())))
		}
		arr := make([]any, len(n.Content))
		for i, c := range n.Content {
			v, err := yamlNodeValue(c, at.push(strconv.Itoa(i)), depth+1, maxNesting)
			if err != nil {
				return nil, err
			}
			arr[i] = v
		}
		return arr, nil

	case yaml.ScalarNode:
		if n.ShortTag() == yamlTimestampTag {
			return n.Value, nil
		}
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, fmt.Errorf("at %s: %w", displayPointer(Pointer(at.slice())), err)
		}
		return v, nil
	}
	return nil, fmt.Errorf("unsupported YAML node at %s", displayPointer(Pointer(at.slice())))
}
