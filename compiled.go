package jddf

import "sort"

// Type is the scalar kind named by a type-form schema.
type Type string

const (
	TypeBoolean   Type = "boolean"
	TypeNumber    Type = "number"
	TypeFloat32   Type = "float32"
	TypeFloat64   Type = "float64"
	TypeInt8      Type = "int8"
	TypeUint8     Type = "uint8"
	TypeInt16     Type = "int16"
	TypeUint16    Type = "uint16"
	TypeInt32     Type = "int32"
	TypeUint32    Type = "uint32"
	TypeString    Type = "string"
	TypeTimestamp Type = "timestamp"
)

// intRange gives the inclusive bounds of the integer types.
var intRange = map[Type][2]float64{
	TypeInt8:   {-128, 127},
	TypeUint8:  {0, 255},
	TypeInt16:  {-32768, 32767},
	TypeUint16: {0, 65535},
	TypeInt32:  {-2147483648, 2147483647},
	TypeUint32: {0, 4294967295},
}

func knownType(t Type) bool {
	switch t {
	case TypeBoolean, TypeNumber, TypeFloat32, TypeFloat64, TypeString, TypeTimestamp:
		return true
	}
	_, ok := intRange[t]
	return ok
}

// IntegerRange returns the inclusive bounds of an integer type. ok is false
// for every other type.
func (t Type) IntegerRange() (min, max float64, ok bool) {
	r, ok := intRange[t]
	return r[0], r[1], ok
}

// CompiledSchema is a schema that passed Compile. It is immutable and safe to
// share between goroutines and validation calls.
//
// The root owns the definitions table; ref nodes anywhere in the graph carry
// only a name and are resolved against this table during validation, so the
// compiled graph never contains a cycle.
type CompiledSchema struct {
	root        *Node
	definitions map[string]*Node
}

// Root returns the top-level node.
func (c *CompiledSchema) Root() *Node { return c.root }

// Definition looks up a named definition.
func (c *CompiledSchema) Definition(name string) (*Node, bool) {
	n, ok := c.definitions[name]
	return n, ok
}

// Lookup returns the node a schema path, as carried by ValidationError,
// points into. Leaf segments such as "type" or "tag" are not nodes; trim them
// first.
func (c *CompiledSchema) Lookup(schemaPath []string) (*Node, bool) {
	n := c.root
	for i := 0; i < len(schemaPath) && n != nil; i++ {
		seg := schemaPath[i]
		switch seg {
		case "discriminator":
			continue
		case "elements":
			n = n.elements
			continue
		case "values":
			n = n.values
			continue
		}
		if i+1 == len(schemaPath) {
			return nil, false
		}
		i++
		switch seg {
		case "definitions":
			n = c.definitions[schemaPath[i]]
		case "properties":
			n = n.properties[schemaPath[i]]
		case "optionalProperties":
			n = n.optionalProperties[schemaPath[i]]
		case "mapping":
			n = n.mapping[schemaPath[i]]
		default:
			return nil, false
		}
	}
	return n, n != nil
}

// DefinitionNames returns the definition names in sorted order.
func (c *CompiledSchema) DefinitionNames() []string { return sortedKeys(c.definitions) }

// Node is one compiled schema node. Which accessors are meaningful depends on
// Form; the others return zero values.
type Node struct {
	form Form

	ref string
	typ Type

	enum    map[string]struct{}
	enumSeq []string

	elements *Node
	values   *Node

	properties           map[string]*Node
	propertyNames        []string
	optionalProperties   map[string]*Node
	optionalNames        []string
	hasProperties        bool
	additionalProperties bool

	tag         string
	mapping     map[string]*Node
	mappingKeys []string
}

// Form is the form the node was compiled from.
func (n *Node) Form() Form { return n.form }

// Ref is the definition name of a ref node.
func (n *Node) Ref() string { return n.ref }

// Type is the primitive type of a type node.
func (n *Node) Type() Type { return n.typ }

// Enum returns the members of an enum node in declaration order.
func (n *Node) Enum() []string { return append([]string(nil), n.enumSeq...) }

// Elements is the item schema of an elements node.
func (n *Node) Elements() *Node { return n.elements }

// Values is the value schema of a values node.
func (n *Node) Values() *Node { return n.values }

// Properties returns the required property names in sorted order.
func (n *Node) Properties() []string { return append([]string(nil), n.propertyNames...) }

// OptionalProperties returns the optional property names in sorted order.
func (n *Node) OptionalProperties() []string { return append([]string(nil), n.optionalNames...) }

// Property returns the schema of a required or optional property.
func (n *Node) Property(name string) (node *Node, required bool, ok bool) {
	if p, ok := n.properties[name]; ok {
		return p, true, true
	}
	if p, ok := n.optionalProperties[name]; ok {
		return p, false, true
	}
	return nil, false, false
}

// AdditionalProperties reports whether a properties node admits keys it does
// not declare.
func (n *Node) AdditionalProperties() bool { return n.additionalProperties }

// Tag is the discriminator field name.
func (n *Node) Tag() string { return n.tag }

// Mapping returns the branch for a discriminator tag value.
func (n *Node) Mapping(value string) (*Node, bool) {
	m, ok := n.mapping[value]
	return m, ok
}

// MappingKeys returns the discriminator tag values in sorted order.
func (n *Node) MappingKeys() []string { return append([]string(nil), n.mappingKeys...) }

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
