// Package metrics instruments schema compilation and instance validation with
// Prometheus collectors.
//
// Metrics:
//   - jddf_validations_total: validation calls by outcome (valid, invalid, max_depth)
//   - jddf_validation_errors_total: validation errors reported across all calls
//   - jddf_validation_duration_seconds: validation call duration histogram
//   - jddf_compiles_total: compile calls by outcome (ok, invalid_form, no_such_definition)
//
// Example:
//
//	reg := prometheus.NewRegistry()
//	v, err := metrics.New(jddf.NewValidator(jddf.DefaultConfig()), reg, metrics.Options{})
//	compiled, err := v.Compile(schema)
//	errs, err := v.Validate(compiled, instance)
package metrics
