package jsonschema

import (
	"github.com/reoring/jddf"
)

// FromCompiled converts a compiled JDDF schema into an equivalent JSON Schema.
// Refs become "#/definitions/<name>" references. Timestamps map to
// format "date-time", and integer types carry their bounds.
func FromCompiled(c *jddf.CompiledSchema) *Schema {
	root := fromNode(c.Root())
	root.Schema = Draft07
	names := c.DefinitionNames()
	if len(names) > 0 {
		root.Definitions = make(map[string]*Schema, len(names))
		for _, name := range names {
			def, _ := c.Definition(name)
			root.Definitions[name] = fromNode(def)
		}
	}
	return root
}

func fromNode(n *jddf.Node) *Schema {
	switch n.Form() {
	case jddf.FormRef:
		return &Schema{Ref: "#/definitions/" + n.Ref()}
	case jddf.FormType:
		return fromType(n.Type())
	case jddf.FormEnum:
		return &Schema{Type: "string", Enum: n.Enum()}
	case jddf.FormElements:
		return &Schema{Type: "array", Items: fromNode(n.Elements())}
	case jddf.FormValues:
		return &Schema{Type: "object", AdditionalProperties: fromNode(n.Values())}
	case jddf.FormProperties:
		return fromProperties(n)
	case jddf.FormDiscriminator:
		out := &Schema{}
		for _, v := range n.MappingKeys() {
			branch, _ := n.Mapping(v)
			s := fromProperties(branch)
			tagValue := v
			s.Properties[n.Tag()] = &Schema{Type: "string", Const: &tagValue}
			s.Required = append([]string{n.Tag()}, s.Required...)
			out.OneOf = append(out.OneOf, s)
		}
		if len(out.OneOf) == 0 {
			// no branch can ever match
			out.Not = &Schema{}
		}
		return out
	}
	return &Schema{}
}

func fromProperties(n *jddf.Node) *Schema {
	out := &Schema{Type: "object", Properties: map[string]*Schema{}}
	for _, name := range n.Properties() {
		p, _, _ := n.Property(name)
		out.Properties[name] = fromNode(p)
		out.Required = append(out.Required, name)
	}
	for _, name := range n.OptionalProperties() {
		p, _, _ := n.Property(name)
		out.Properties[name] = fromNode(p)
	}
	if !n.AdditionalProperties() {
		out.AdditionalProperties = false
	}
	return out
}

func fromType(t jddf.Type) *Schema {
	switch t {
	case jddf.TypeBoolean:
		return &Schema{Type: "boolean"}
	case jddf.TypeString:
		return &Schema{Type: "string"}
	case jddf.TypeTimestamp:
		return &Schema{Type: "string", Format: "date-time"}
	case jddf.TypeNumber, jddf.TypeFloat32, jddf.TypeFloat64:
		return &Schema{Type: "number"}
	}
	lo, hi, ok := t.IntegerRange()
	if !ok {
		return &Schema{}
	}
	return &Schema{Type: "integer", Minimum: &lo, Maximum: &hi}
}
