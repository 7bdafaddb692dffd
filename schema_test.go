package jddf_test

import (
	"errors"
	"reflect"
	"testing"

	json "github.com/goccy/go-json"

	"github.com/reoring/jddf"
)

func TestIsSchema(t *testing.T) {
	cases := []struct {
		src  string
		want bool
	}{
		{`{}`, true},
		{`{"definitions":{"a":{}},"ref":"a"}`, true},
		{`{"unknownKeyword": 1}`, true},
		{`{"enum":["a","b"]}`, true},
		{`{"discriminator":{"tag":"t","mapping":{"a":{"properties":{}}}}}`, true},
		{`null`, false},
		{`[]`, false},
		{`"string"`, false},
		{`{"definitions":[]}`, false},
		{`{"definitions":{"a":3}}`, false},
		{`{"additionalProperties":"yes"}`, false},
		{`{"ref":1}`, false},
		{`{"type":true}`, false},
		{`{"enum":"a"}`, false},
		{`{"enum":["a",1]}`, false},
		{`{"elements":[]}`, false},
		{`{"properties":{"a":null}}`, false},
		{`{"optionalProperties":1}`, false},
		{`{"values":"x"}`, false},
		{`{"discriminator":{"mapping":{}}}`, false},
		{`{"discriminator":{"tag":"t"}}`, false},
		{`{"discriminator":{"tag":"t","mapping":{"a":1}}}`, false},
	}
	for _, tc := range cases {
		v, err := jddf.DecodeJSON([]byte(tc.src))
		if err != nil {
			t.Fatalf("decode %s: %v", tc.src, err)
		}
		if got := jddf.IsSchema(v); got != tc.want {
			t.Errorf("IsSchema(%s) = %v, want %v", tc.src, got, tc.want)
		}
	}
}

func TestSchemaFromValue_ErrorNamesLocation(t *testing.T) {
	v, _ := jddf.DecodeJSON([]byte(`{"properties":{"a":{"elements":{"enum":["x",2]}}}}`))
	_, err := jddf.SchemaFromValue(v)
	if !errors.Is(err, jddf.ErrNotSchema) {
		t.Fatalf("expected ErrNotSchema, got %v", err)
	}
	want := "jddf: value is not a schema: expected string at /properties/a/elements/enum/1"
	if err.Error() != want {
		t.Fatalf("got %q, want %q", err.Error(), want)
	}
}

func TestSchemaFromValue_PresenceOfEmptyKeywords(t *testing.T) {
	v, _ := jddf.DecodeJSON([]byte(`{"properties":{},"optionalProperties":{}}`))
	s, err := jddf.SchemaFromValue(v)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if s.Properties == nil || s.OptionalProperties == nil {
		t.Fatalf("empty maps must count as present: %+v", s)
	}
	if f, err := jddf.Classify(s, true); err != nil || f != jddf.FormProperties {
		t.Fatalf("expected properties form, got %s %v", f, err)
	}
}

func TestSchema_MarshalJSONKeepsPresence(t *testing.T) {
	src := `{"definitions":{"a":{"enum":["x"]}},"properties":{},"optionalProperties":{"b":{"ref":"a"}},"additionalProperties":false}`
	s, err := jddf.ParseSchemaJSON([]byte(src))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	out, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	back, err := jddf.ParseSchemaJSON(out)
	if err != nil {
		t.Fatalf("reparse %s: %v", out, err)
	}
	if !reflect.DeepEqual(s, back) {
		t.Fatalf("schema changed across marshal: %s", out)
	}
}
