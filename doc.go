package jddf

// Package jddf compiles JSON Data Definition Format schemas and validates
// instances against them.
//
// A schema is in exactly one of eight forms: empty, ref, type, enum,
// elements, properties, values or discriminator. Compile checks the form of
// every sub-schema and resolves every ref against the root definitions, so a
// CompiledSchema never fails to resolve at validation time.
//
// Validation reports every violation as a pair of paths: the instance path to
// the offending value and the schema path to the keyword that rejected it.
// Both render as JSON Pointers.
//
// Design policy:
// - Keep only public APIs in the root package; put decoding details under internal/.
// - Errors are values: compile failures wrap ErrInvalidForm or ErrNoSuchDefinition.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//  s, err := jddf.ParseSchemaJSON(schemaBytes)
//  compiled, err := jddf.Compile(s)
//
//  inst, err := jddf.ParseValueJSON(instanceBytes)
//  errs, err := jddf.NewValidator(jddf.DefaultConfig()).Validate(compiled, inst)
//  for _, e := range errs {
//      fmt.Println(e.InstancePointer(), e.SchemaPointer())
//  }
