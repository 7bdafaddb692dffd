package jddf

import (
	"errors"
	"strconv"

	"github.com/reoring/jddf/internal/rfc3339"
)

// errMaxErrors unwinds the traversal once the error budget is spent. It never
// escapes Validate.
var errMaxErrors = errors.New("jddf: max errors reached")

// vm holds the state of one validation call. Paths are persistent stacks, so
// branches share prefixes and nothing is copied until an error is recorded.
type vm struct {
	schema    *CompiledSchema
	maxDepth  int
	maxErrors int
	errors    []ValidationError
}

// validate matches inst against n. depth counts the refs followed so far.
// tag, when non-nil, names a discriminator tag that the properties check must
// not report as an additional property.
func (m *vm) validate(n *Node, inst Value, ip, sp *path, depth int, tag *string) error {
	switch n.form {
	case FormEmpty:
		return nil

	case FormRef:
		if depth+1 > m.maxDepth {
			return ErrMaxDepthExceeded
		}
		def := m.schema.definitions[n.ref]
		// Errors behind a ref are reported relative to the definition.
		return m.validate(def, inst, ip, (*path)(nil).push("definitions", n.ref), depth+1, nil)

	case FormType:
		if !matchType(n.typ, inst) {
			return m.report(ip, sp.push("type"), CodeInvalidType)
		}
		return nil

	case FormEnum:
		if s, ok := inst.AsString(); ok {
			if _, ok := n.enum[s]; ok {
				return nil
			}
		}
		return m.report(ip, sp.push("enum"), CodeNotInEnum)

	case FormElements:
		if inst.kind != KindArray {
			return m.report(ip, sp.push("elements"), CodeNotArray)
		}
		esp := sp.push("elements")
		for i, item := range inst.arr {
			if err := m.validate(n.elements, item, ip.push(strconv.Itoa(i)), esp, depth, nil); err != nil {
				return err
			}
		}
		return nil

	case FormProperties:
		return m.validateProperties(n, inst, ip, sp, depth, tag)

	case FormValues:
		if inst.kind != KindObject {
			return m.report(ip, sp.push("values"), CodeNotObject)
		}
		vsp := sp.push("values")
		for _, k := range inst.keys {
			if err := m.validate(n.values, inst.obj[k], ip.push(k), vsp, depth, nil); err != nil {
				return err
			}
		}
		return nil

	case FormDiscriminator:
		return m.validateDiscriminator(n, inst, ip, sp, depth)
	}
	return nil
}

func (m *vm) validateProperties(n *Node, inst Value, ip, sp *path, depth int, tag *string) error {
	if inst.kind != KindObject {
		if n.hasProperties {
			return m.report(ip, sp.push("properties"), CodeNotObject)
		}
		return m.report(ip, sp.push("optionalProperties"), CodeNotObject)
	}

	for _, name := range n.propertyNames {
		psp := sp.push("properties", name)
		v, ok := inst.obj[name]
		if !ok {
			if err := m.report(ip, psp, CodeRequired); err != nil {
				return err
			}
			continue
		}
		if err := m.validate(n.properties[name], v, ip.push(name), psp, depth, nil); err != nil {
			return err
		}
	}

	for _, name := range n.optionalNames {
		v, ok := inst.obj[name]
		if !ok {
			continue
		}
		if err := m.validate(n.optionalProperties[name], v, ip.push(name), sp.push("optionalProperties", name), depth, nil); err != nil {
			return err
		}
	}

	if n.additionalProperties {
		return nil
	}
	for _, k := range inst.keys {
		if tag != nil && k == *tag {
			continue
		}
		if _, ok := n.properties[k]; ok {
			continue
		}
		if _, ok := n.optionalProperties[k]; ok {
			continue
		}
		if err := m.report(ip.push(k), sp, CodeUnknownKey); err != nil {
			return err
		}
	}
	return nil
}

func (m *vm) validateDiscriminator(n *Node, inst Value, ip, sp *path, depth int) error {
	dsp := sp.push("discriminator")
	if inst.kind != KindObject {
		return m.report(ip, dsp, CodeNotObject)
	}
	tv, ok := inst.obj[n.tag]
	if !ok {
		return m.report(ip, dsp.push("tag"), CodeMissingTag)
	}
	value, ok := tv.AsString()
	if !ok {
		return m.report(ip.push(n.tag), dsp.push("tag"), CodeInvalidTag)
	}
	branch, ok := n.mapping[value]
	if !ok {
		return m.report(ip.push(n.tag), dsp.push("mapping"), CodeUnknownTag)
	}
	tag := n.tag
	return m.validate(branch, inst, ip, dsp.push("mapping", value), depth, &tag)
}

// report records an error and returns errMaxErrors once the budget is spent.
func (m *vm) report(ip, sp *path, code string) error {
	m.errors = append(m.errors, ValidationError{InstancePath: ip.slice(), SchemaPath: sp.slice(), Code: code})
	if m.maxErrors > 0 && len(m.errors) >= m.maxErrors {
		return errMaxErrors
	}
	return nil
}

func matchType(t Type, v Value) bool {
	switch t {
	case TypeBoolean:
		return v.kind == KindBoolean
	case TypeNumber, TypeFloat32, TypeFloat64:
		return v.kind == KindNumber
	case TypeString:
		return v.kind == KindString
	case TypeTimestamp:
		return v.kind == KindString && rfc3339.Valid(v.s)
	}
	r, ok := intRange[t]
	if !ok || v.kind != KindNumber {
		return false
	}
	return isInteger(v.n) && v.n >= r[0] && v.n <= r[1]
}
