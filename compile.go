package jddf

import (
	"fmt"
	"strings"
)

// Compile checks s for internal consistency and returns its immutable
// compiled form.
//
// Every node must use exactly one form, `definitions` may appear only on the
// root, and every ref must name a root definition. On top of that Compile
// enforces the per-form rules: type names must be known, enums must be
// non-empty and free of duplicates, properties and optionalProperties must
// not share a key, and each discriminator branch must be a properties schema
// that does not itself declare the tag.
//
// The returned error wraps ErrInvalidForm or ErrNoSuchDefinition. Compile never
// returns a partially built schema.
func Compile(s Schema) (*CompiledSchema, error) {
	c := &compiler{defs: s.Definitions}
	out := &CompiledSchema{definitions: make(map[string]*Node, len(s.Definitions))}

	for _, name := range sortedKeys(s.Definitions) {
		n, err := c.compile(s.Definitions[name], (*path)(nil).push("definitions", name), false)
		if err != nil {
			return nil, err
		}
		out.definitions[name] = n
	}

	root, err := c.compile(s, nil, true)
	if err != nil {
		return nil, err
	}
	out.root = root
	return out, nil
}

// MustCompile is like Compile but panics on error. It simplifies package-level
// schema variables.
func MustCompile(s Schema) *CompiledSchema {
	c, err := Compile(s)
	if err != nil {
		panic(err)
	}
	return c
}

type compiler struct {
	defs map[string]Schema
}

func (c *compiler) compile(s Schema, p *path, root bool) (*Node, error) {
	form, err := Classify(s, root)
	if err != nil {
		return nil, invalidForm(p, "keywords %s do not form a valid schema", describeKeywords(s, root))
	}

	n := &Node{form: form}
	switch form {
	case FormEmpty:
	case FormRef:
		if _, ok := c.defs[*s.Ref]; !ok {
			return nil, &NoSuchDefinitionError{SchemaPath: p.push("ref").slice(), Ref: *s.Ref}
		}
		n.ref = *s.Ref
	case FormType:
		t := Type(*s.Type)
		if !knownType(t) {
			return nil, invalidForm(p.push("type"), "unknown type %q", *s.Type)
		}
		n.typ = t
	case FormEnum:
		if len(s.Enum) == 0 {
			return nil, invalidForm(p.push("enum"), "enum must not be empty")
		}
		n.enum = make(map[string]struct{}, len(s.Enum))
		for _, v := range s.Enum {
			if _, dup := n.enum[v]; dup {
				return nil, invalidForm(p.push("enum"), "duplicate enum value %q", v)
			}
			n.enum[v] = struct{}{}
		}
		n.enumSeq = append([]string(nil), s.Enum...)
	case FormElements:
		if n.elements, err = c.compile(*s.Elements, p.push("elements"), false); err != nil {
			return nil, err
		}
	case FormValues:
		if n.values, err = c.compile(*s.Values, p.push("values"), false); err != nil {
			return nil, err
		}
	case FormProperties:
		if err := c.compileProperties(n, s, p); err != nil {
			return nil, err
		}
	case FormDiscriminator:
		if err := c.compileDiscriminator(n, s.Discriminator, p.push("discriminator")); err != nil {
			return nil, err
		}
	}
	return n, nil
}

func (c *compiler) compileProperties(n *Node, s Schema, p *path) error {
	n.hasProperties = s.Properties != nil
	if s.AdditionalProperties != nil {
		n.additionalProperties = *s.AdditionalProperties
	}

	n.propertyNames = sortedKeys(s.Properties)
	n.properties = make(map[string]*Node, len(s.Properties))
	for _, name := range n.propertyNames {
		sub, err := c.compile(s.Properties[name], p.push("properties", name), false)
		if err != nil {
			return err
		}
		n.properties[name] = sub
	}

	n.optionalNames = sortedKeys(s.OptionalProperties)
	n.optionalProperties = make(map[string]*Node, len(s.OptionalProperties))
	for _, name := range n.optionalNames {
		if _, dup := s.Properties[name]; dup {
			return invalidForm(p.push("optionalProperties", name), "%q is both required and optional", name)
		}
		sub, err := c.compile(s.OptionalProperties[name], p.push("optionalProperties", name), false)
		if err != nil {
			return err
		}
		n.optionalProperties[name] = sub
	}
	return nil
}

func (c *compiler) compileDiscriminator(n *Node, d *Discriminator, p *path) error {
	n.tag = d.Tag
	n.mappingKeys = sortedKeys(d.Mapping)
	n.mapping = make(map[string]*Node, len(d.Mapping))
	for _, key := range n.mappingKeys {
		bp := p.push("mapping", key)
		sub, err := c.compile(d.Mapping[key], bp, false)
		if err != nil {
			return err
		}
		if sub.form != FormProperties {
			return invalidForm(bp, "discriminator mapping must be a properties schema, got %s", sub.form)
		}
		if _, _, ok := sub.Property(d.Tag); ok {
			return invalidForm(bp, "discriminator mapping redeclares tag %q", d.Tag)
		}
		n.mapping[key] = sub
	}
	return nil
}

func invalidForm(p *path, format string, args ...any) error {
	return &InvalidFormError{SchemaPath: p.slice(), Reason: fmt.Sprintf(format, args...)}
}

func describeKeywords(s Schema, root bool) string {
	k := keywordsOf(s)
	if root {
		k &^= kwDefinitions
	}
	names := []struct {
		bit  keyword
		name string
	}{
		{kwDefinitions, "definitions"},
		{kwRef, "ref"},
		{kwType, "type"},
		{kwEnum, "enum"},
		{kwElements, "elements"},
		{kwProperties, "properties"},
		{kwOptionalProperties, "optionalProperties"},
		{kwAdditionalProperties, "additionalProperties"},
		{kwValues, "values"},
		{kwDiscriminator, "discriminator"},
	}
	var present []string
	for _, nm := range names {
		if k&nm.bit != 0 {
			present = append(present, nm.name)
		}
	}
	return "{" + strings.Join(present, ", ") + "}"
}
