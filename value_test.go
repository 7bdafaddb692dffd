package jddf_test

import (
	"encoding/json"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/reoring/jddf"
)

func TestFromAny_Kinds(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want jddf.Kind
	}{
		{"nil", nil, jddf.KindNull},
		{"bool", true, jddf.KindBoolean},
		{"string", "x", jddf.KindString},
		{"json.Number", json.Number("1.5"), jddf.KindNumber},
		{"int", 3, jddf.KindNumber},
		{"uint64", uint64(7), jddf.KindNumber},
		{"float32", float32(1.5), jddf.KindNumber},
		{"slice", []any{1, "a"}, jddf.KindArray},
		{"map", map[string]any{"a": 1}, jddf.KindObject},
		{"yaml map", map[any]any{"a": 1}, jddf.KindObject},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v, err := jddf.FromAny(tc.in)
			if err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			if v.Kind() != tc.want {
				t.Fatalf("got %s, want %s", v.Kind(), tc.want)
			}
		})
	}
}

func TestFromAny_Rejects(t *testing.T) {
	_, err := jddf.FromAny(map[string]any{"a": []any{struct{}{}}})
	if err == nil || !strings.Contains(err.Error(), "/a/0") {
		t.Fatalf("expected error locating /a/0, got %v", err)
	}
	_, err = jddf.FromAny(map[any]any{1: "x"})
	if err == nil {
		t.Fatalf("expected error for non-string key")
	}
}

func TestFromAny_HugeNumberIsInfinite(t *testing.T) {
	v, err := jddf.FromAny(json.Number("-1e400"))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if n, _ := v.AsNumber(); !math.IsInf(n, -1) {
		t.Fatalf("got %v, want -Inf", n)
	}
	if _, err := jddf.FromAny(json.Number("1x")); err == nil {
		t.Fatalf("expected error for malformed number")
	}
}

func TestValue_Accessors(t *testing.T) {
	v := jddf.Object(map[string]jddf.Value{
		"b": jddf.Array(jddf.Number(1), jddf.Bool(true)),
		"a": jddf.String("x"),
		"c": jddf.Null(),
	})
	if got := v.Keys(); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Fatalf("keys not sorted: %v", got)
	}
	if v.Len() != 3 {
		t.Fatalf("len: %d", v.Len())
	}
	a, ok := v.Get("a")
	if s, isStr := a.AsString(); !ok || !isStr || s != "x" {
		t.Fatalf("a: %v %v", s, isStr)
	}
	b, _ := v.Get("b")
	if n, ok := b.Index(0).AsNumber(); !ok || n != 1 {
		t.Fatalf("b[0]: %v", n)
	}
	if bv, ok := b.Index(1).AsBool(); !ok || !bv {
		t.Fatalf("b[1]: %v", bv)
	}
	if _, ok := b.Index(1).AsString(); ok {
		t.Fatalf("boolean must not read as string")
	}
	want := map[string]any{"a": "x", "b": []any{1.0, true}, "c": nil}
	if got := v.Interface(); !reflect.DeepEqual(got, want) {
		t.Fatalf("interface: %#v", got)
	}
	if jddf.Object(nil).Kind() != jddf.KindObject || jddf.Object(nil).Len() != 0 {
		t.Fatalf("nil members should build an empty object")
	}
}
