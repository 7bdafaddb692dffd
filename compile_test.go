package jddf_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/reoring/jddf"
)

func TestClassify(t *testing.T) {
	b := true
	cases := []struct {
		name   string
		schema jddf.Schema
		root   bool
		want   jddf.Form
		ok     bool
	}{
		{"empty", jddf.Schema{}, false, jddf.FormEmpty, true},
		{"ref", jddf.Schema{Ref: ptr("a")}, false, jddf.FormRef, true},
		{"type", jddf.Schema{Type: ptr("string")}, false, jddf.FormType, true},
		{"enum", jddf.Schema{Enum: []string{"a"}}, false, jddf.FormEnum, true},
		{"elements", jddf.Schema{Elements: &jddf.Schema{}}, false, jddf.FormElements, true},
		{"properties", jddf.Schema{Properties: map[string]jddf.Schema{}}, false, jddf.FormProperties, true},
		{"optionalProperties", jddf.Schema{OptionalProperties: map[string]jddf.Schema{}}, false, jddf.FormProperties, true},
		{"both property maps + additional", jddf.Schema{
			Properties:           map[string]jddf.Schema{},
			OptionalProperties:   map[string]jddf.Schema{},
			AdditionalProperties: &b,
		}, false, jddf.FormProperties, true},
		{"values", jddf.Schema{Values: &jddf.Schema{}}, false, jddf.FormValues, true},
		{"discriminator", jddf.Schema{Discriminator: &jddf.Discriminator{Tag: "t"}}, false, jddf.FormDiscriminator, true},
		{"definitions at root", jddf.Schema{Definitions: map[string]jddf.Schema{}, Type: ptr("string")}, true, jddf.FormType, true},
		{"definitions nested", jddf.Schema{Definitions: map[string]jddf.Schema{}}, false, 0, false},
		{"type + enum", jddf.Schema{Type: ptr("string"), Enum: []string{"a"}}, false, 0, false},
		{"type + elements", jddf.Schema{Type: ptr("string"), Elements: &jddf.Schema{}}, false, 0, false},
		{"ref + type", jddf.Schema{Ref: ptr("a"), Type: ptr("string")}, false, 0, false},
		{"additionalProperties alone", jddf.Schema{AdditionalProperties: &b}, false, 0, false},
		{"properties + values", jddf.Schema{Properties: map[string]jddf.Schema{}, Values: &jddf.Schema{}}, false, 0, false},
		{"elements + values", jddf.Schema{Elements: &jddf.Schema{}, Values: &jddf.Schema{}}, false, 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := jddf.Classify(tc.schema, tc.root)
			if tc.ok {
				if err != nil {
					t.Fatalf("unexpected err: %v", err)
				}
				if got != tc.want {
					t.Fatalf("got %s, want %s", got, tc.want)
				}
				return
			}
			if !errors.Is(err, jddf.ErrInvalidForm) {
				t.Fatalf("expected ErrInvalidForm, got %v (%s)", err, got)
			}
		})
	}
}

func TestCompile_NoSuchDefinition(t *testing.T) {
	cases := map[string]string{
		"root ref":           `{"ref":"missing"}`,
		"nested ref":         `{"elements":{"ref":"missing"}}`,
		"ref in definition":  `{"definitions":{"a":{"ref":"missing"}},"ref":"a"}`,
		"ref in mapping":     `{"discriminator":{"tag":"t","mapping":{"x":{"properties":{"a":{"ref":"missing"}}}}}}`,
		"defs without match": `{"definitions":{"a":{}},"values":{"ref":"b"}}`,
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			s, err := jddf.ParseSchemaJSON([]byte(src))
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			c, err := jddf.Compile(s)
			if !errors.Is(err, jddf.ErrNoSuchDefinition) {
				t.Fatalf("expected ErrNoSuchDefinition, got %v", err)
			}
			if errors.Is(err, jddf.ErrInvalidForm) {
				t.Fatalf("conditions must be distinguishable: %v", err)
			}
			if c != nil {
				t.Fatalf("no partial schema may be returned")
			}
		})
	}
}

func TestCompile_InvalidForm(t *testing.T) {
	cases := map[string]string{
		"nested definitions":         `{"elements":{"definitions":{}}}`,
		"definitions in definition":  `{"definitions":{"a":{"definitions":{}}}}`,
		"type and enum":              `{"type":"string","enum":["a"]}`,
		"unknown type":               `{"type":"int64"}`,
		"empty enum":                 `{"enum":[]}`,
		"duplicate enum":             `{"enum":["a","a"]}`,
		"shared property":            `{"properties":{"a":{}},"optionalProperties":{"a":{}}}`,
		"additional alone":           `{"additionalProperties":true}`,
		"mapping not properties":     `{"discriminator":{"tag":"t","mapping":{"x":{"type":"string"}}}}`,
		"mapping redeclares tag":     `{"discriminator":{"tag":"t","mapping":{"x":{"properties":{"t":{}}}}}}`,
		"mapping redeclares tag opt": `{"discriminator":{"tag":"t","mapping":{"x":{"optionalProperties":{"t":{}}}}}}`,
		"deeply nested":              `{"properties":{"a":{"values":{"elements":{"ref":"x","type":"string"}}}}}`,
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			s, err := jddf.ParseSchemaJSON([]byte(src))
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			c, err := jddf.Compile(s)
			if !errors.Is(err, jddf.ErrInvalidForm) {
				t.Fatalf("expected ErrInvalidForm, got %v", err)
			}
			if c != nil {
				t.Fatalf("no partial schema may be returned")
			}
		})
	}
}

func TestCompile_ErrorCarriesSchemaPath(t *testing.T) {
	s, err := jddf.ParseSchemaJSON([]byte(`{"properties":{"a":{"elements":{"type":"nope"}}}}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	_, err = jddf.Compile(s)
	var fe *jddf.InvalidFormError
	if !errors.As(err, &fe) {
		t.Fatalf("expected *InvalidFormError, got %T", err)
	}
	want := []string{"properties", "a", "elements", "type"}
	if !reflect.DeepEqual(fe.SchemaPath, want) {
		t.Fatalf("got %v, want %v", fe.SchemaPath, want)
	}

	s, _ = jddf.ParseSchemaJSON([]byte(`{"definitions":{"a":{"values":{"ref":"zz"}}}}`))
	_, err = jddf.Compile(s)
	var ne *jddf.NoSuchDefinitionError
	if !errors.As(err, &ne) {
		t.Fatalf("expected *NoSuchDefinitionError, got %T", err)
	}
	if ne.Ref != "zz" || jddf.Pointer(ne.SchemaPath) != "/definitions/a/values/ref" {
		t.Fatalf("unexpected error fields: %+v", ne)
	}
}

func TestCompile_Accessors(t *testing.T) {
	s, err := jddf.ParseSchemaJSON([]byte(`{
		"definitions": {"id": {"type": "uint32"}, "color": {"enum": ["red", "green"]}},
		"discriminator": {
			"tag": "kind",
			"mapping": {
				"a": {"properties": {"id": {"ref": "id"}}, "optionalProperties": {"c": {"ref": "color"}}},
				"b": {"properties": {}, "additionalProperties": true}
			}
		}
	}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	c, err := jddf.Compile(s)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if got := c.DefinitionNames(); !reflect.DeepEqual(got, []string{"color", "id"}) {
		t.Fatalf("definition names: %v", got)
	}
	color, ok := c.Definition("color")
	if !ok || color.Form() != jddf.FormEnum || !reflect.DeepEqual(color.Enum(), []string{"red", "green"}) {
		t.Fatalf("unexpected color definition")
	}
	root := c.Root()
	if root.Form() != jddf.FormDiscriminator || root.Tag() != "kind" {
		t.Fatalf("unexpected root: %s", root.Form())
	}
	if got := root.MappingKeys(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("mapping keys: %v", got)
	}
	a, _ := root.Mapping("a")
	id, required, ok := a.Property("id")
	if !ok || !required || id.Form() != jddf.FormRef || id.Ref() != "id" {
		t.Fatalf("unexpected property id")
	}
	if _, required, ok := a.Property("c"); !ok || required {
		t.Fatalf("c should be optional")
	}
	b, _ := root.Mapping("b")
	if !b.AdditionalProperties() || a.AdditionalProperties() {
		t.Fatalf("additionalProperties flags wrong")
	}
}

func TestMustCompile_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	jddf.MustCompile(jddf.Schema{Ref: ptr("missing")})
}

func TestCompiledSchema_Lookup(t *testing.T) {
	c := mustSchemaJSON(t, `{
		"definitions": {"item": {"values": {"elements": {"type": "string"}}}},
		"properties": {"items": {"ref": "item"}},
		"optionalProperties": {
			"event": {"discriminator": {"tag": "kind", "mapping": {"a": {"properties": {"n": {"type": "int8"}}}}}}
		}
	}`)
	cases := []struct {
		path []string
		want jddf.Form
	}{
		{nil, jddf.FormProperties},
		{[]string{"properties", "items"}, jddf.FormRef},
		{[]string{"definitions", "item", "values", "elements"}, jddf.FormType},
		{[]string{"optionalProperties", "event", "discriminator"}, jddf.FormDiscriminator},
		{[]string{"optionalProperties", "event", "discriminator", "mapping", "a", "properties", "n"}, jddf.FormType},
	}
	for _, tc := range cases {
		n, ok := c.Lookup(tc.path)
		if !ok || n.Form() != tc.want {
			t.Errorf("Lookup(%v): ok=%v", tc.path, ok)
		}
	}
	for _, p := range [][]string{
		{"properties", "missing"},
		{"properties"},
		{"type"},
		{"definitions", "item", "elements"},
	} {
		if _, ok := c.Lookup(p); ok {
			t.Errorf("Lookup(%v) should fail", p)
		}
	}
}
