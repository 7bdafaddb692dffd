package jddf_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/reoring/jddf"
)

func TestValidationErrors_Error(t *testing.T) {
	errs := jddf.ValidationErrors{
		{InstancePath: []string{}, SchemaPath: []string{"properties", "a"}},
		{InstancePath: []string{"items", "2"}, SchemaPath: []string{"elements", "type"}},
		{InstancePath: []string{"x"}, SchemaPath: []string{}},
		{InstancePath: []string{"y"}, SchemaPath: []string{}},
	}
	want := "/ at /properties/a; /items/2 at /elements/type; /x at /; ... (total 4)"
	if got := errs.Error(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	if jddf.ValidationErrors(nil).Err() != nil {
		t.Fatalf("empty list should be a nil error")
	}
}

func TestAsValidationErrors(t *testing.T) {
	errs := jddf.ValidationErrors{{InstancePath: []string{"a"}, SchemaPath: []string{"type"}}}
	wrapped := fmt.Errorf("request rejected: %w", errs.Err())
	got, ok := jddf.AsValidationErrors(wrapped)
	if !ok || len(got) != 1 || got[0].InstancePointer() != "/a" || got[0].SchemaPointer() != "/type" {
		t.Fatalf("unexpected extraction: %v %v", got, ok)
	}
	if _, ok := jddf.AsValidationErrors(errors.New("other")); ok {
		t.Fatalf("unrelated error must not match")
	}
	if _, ok := jddf.AsValidationErrors(nil); ok {
		t.Fatalf("nil must not match")
	}
}

func TestCompileErrors_Unwrap(t *testing.T) {
	fe := &jddf.InvalidFormError{SchemaPath: []string{"type"}, Reason: "unknown type"}
	if !errors.Is(fe, jddf.ErrInvalidForm) || errors.Is(fe, jddf.ErrNoSuchDefinition) {
		t.Fatalf("InvalidFormError unwraps wrong")
	}
	ne := &jddf.NoSuchDefinitionError{SchemaPath: []string{"ref"}, Ref: "x"}
	if !errors.Is(ne, jddf.ErrNoSuchDefinition) || errors.Is(ne, jddf.ErrInvalidForm) {
		t.Fatalf("NoSuchDefinitionError unwraps wrong")
	}
}
