package jddf

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
)

// Kind is the JSON kind of a Value.
type Kind int

const (
	KindNull Kind = iota
	KindBoolean
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBoolean:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Value is an instance to validate: a tagged union over the six JSON kinds.
// The zero Value is null.
type Value struct {
	kind Kind
	b    bool
	n    float64
	s    string
	arr  []Value
	obj  map[string]Value
	keys []string // sorted object keys
}

// Null is the JSON null.
func Null() Value { return Value{} }

// Bool builds a boolean value.
func Bool(b bool) Value { return Value{kind: KindBoolean, b: b} }

// Number builds a number value.
func Number(n float64) Value { return Value{kind: KindNumber, n: n} }

// String builds a string value.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Array builds an array value. The slice is retained, not copied.
func Array(items ...Value) Value { return Value{kind: KindArray, arr: items} }

// Object builds an object value. The map is retained, not copied.
func Object(members map[string]Value) Value {
	if members == nil {
		members = map[string]Value{}
	}
	return Value{kind: KindObject, obj: members, keys: sortedKeys(members)}
}

func (v Value) Kind() Kind { return v.kind }

// AsBool returns the boolean and whether v is a boolean.
func (v Value) AsBool() (bool, bool) { return v.b, v.kind == KindBoolean }

// AsNumber returns the number and whether v is a number.
func (v Value) AsNumber() (float64, bool) { return v.n, v.kind == KindNumber }

// AsString returns the string and whether v is a string.
func (v Value) AsString() (string, bool) { return v.s, v.kind == KindString }

// Len returns the number of array items or object members.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.arr)
	case KindObject:
		return len(v.obj)
	}
	return 0
}

// Index returns the i-th array item.
func (v Value) Index(i int) Value { return v.arr[i] }

// Keys returns the object member names in sorted order.
func (v Value) Keys() []string { return append([]string(nil), v.keys...) }

// Get returns an object member.
func (v Value) Get(key string) (Value, bool) {
	m, ok := v.obj[key]
	return m, ok
}

// FromAny converts a decoded JSON or YAML tree into a Value. It accepts nil,
// bool, string, json.Number, every Go integer and float type, []any,
// map[string]any and map[any]any with string keys. Anything else is an error.
func FromAny(v any) (Value, error) {
	return fromAny(v, nil)
}

func fromAny(v any, p *path) (Value, error) {
	switch t := v.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(t), nil
	case string:
		return String(t), nil
	case json.Number:
		// Literals beyond float64 range become ±Inf, which no integer type admits.
		f, err := strconv.ParseFloat(string(t), 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return Value{}, fmt.Errorf("jddf: invalid number %q at %s: %w", string(t), displayPointer(Pointer(p.slice())), err)
		}
		return Number(f), nil
	case float64:
		return Number(t), nil
	case float32:
		return Number(float64(t)), nil
	case int:
		return Number(float64(t)), nil
	case int8:
		return Number(float64(t)), nil
	case int16:
		return Number(float64(t)), nil
	case int32:
		return Number(float64(t)), nil
	case int64:
		return Number(float64(t)), nil
	case uint:
		return Number(float64(t)), nil
	case uint8:
		return Number(float64(t)), nil
	case uint16:
		return Number(float64(t)), nil
	case uint32:
		return Number(float64(t)), nil
	case uint64:
		return Number(float64(t)), nil
	case []any:
		items := make([]Value, len(t))
		for i, e := range t {
			item, err := fromAny(e, p.push(strconv.Itoa(i)))
			if err != nil {
				return Value{}, err
			}
			items[i] = item
		}
		return Array(items...), nil
	case map[string]any:
		members := make(map[string]Value, len(t))
		for k, e := range t {
			m, err := fromAny(e, p.push(k))
			if err != nil {
				return Value{}, err
			}
			members[k] = m
		}
		return Object(members), nil
	case map[any]any:
		members := make(map[string]Value, len(t))
		for k, e := range t {
			ks, ok := k.(string)
			if !ok {
				return Value{}, fmt.Errorf("jddf: non-string object key %v at %s", k, displayPointer(Pointer(p.slice())))
			}
			m, err := fromAny(e, p.push(ks))
			if err != nil {
				return Value{}, err
			}
			members[ks] = m
		}
		return Object(members), nil
	}
	return Value{}, fmt.Errorf("jddf: unsupported instance type %T at %s", v, displayPointer(Pointer(p.slice())))
}

// Interface converts v back into plain Go values (nil, bool, float64,
// string, []any, map[string]any).
func (v Value) Interface() any {
	switch v.kind {
	case KindBoolean:
		return v.b
	case KindNumber:
		return v.n
	case KindString:
		return v.s
	case KindArray:
		out := make([]any, len(v.arr))
		for i, e := range v.arr {
			out[i] = e.Interface()
		}
		return out
	case KindObject:
		out := make(map[string]any, len(v.obj))
		for k, e := range v.obj {
			out[k] = e.Interface()
		}
		return out
	}
	return nil
}

// isInteger reports whether n has no fractional part.
func isInteger(n float64) bool {
	return !math.IsInf(n, 0) && !math.IsNaN(n) && n == math.Trunc(n)
}
