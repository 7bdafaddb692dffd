package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/reoring/jddf"
)

// Outcome label values.
const (
	OutcomeValid    = "valid"
	OutcomeInvalid  = "invalid"
	OutcomeMaxDepth = "max_depth"

	OutcomeOK               = "ok"
	OutcomeInvalidForm      = "invalid_form"
	OutcomeNoSuchDefinition = "no_such_definition"
)

// Options configures metric names and buckets. Zero values pick defaults.
type Options struct {
	Namespace       string
	Subsystem       string
	DurationBuckets []float64
}

// Validator wraps a *jddf.Validator and records every call.
type Validator struct {
	inner *jddf.Validator

	validationsTotal *prometheus.CounterVec
	errorsTotal      prometheus.Counter
	duration         prometheus.Histogram
	compilesTotal    *prometheus.CounterVec
}

// New registers the collectors on reg and returns the instrumented validator.
// A nil reg uses a fresh private registry.
func New(v *jddf.Validator, reg prometheus.Registerer, opts Options) (*Validator, error) {
	if v == nil {
		v = jddf.NewValidator(jddf.DefaultConfig())
	}
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	if opts.Namespace == "" {
		opts.Namespace = "jddf"
	}
	if len(opts.DurationBuckets) == 0 {
		// validation of a single document is usually sub-millisecond
		opts.DurationBuckets = []float64{0.00001, 0.0001, 0.001, 0.01, 0.1, 1}
	}

	m := &Validator{
		inner: v,
		validationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: opts.Namespace,
				Subsystem: opts.Subsystem,
				Name:      "validations_total",
				Help:      "Total number of validation calls by outcome",
			},
			[]string{"outcome"},
		),
		errorsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: opts.Namespace,
				Subsystem: opts.Subsystem,
				Name:      "validation_errors_total",
				Help:      "Total number of validation errors reported",
			},
		),
		duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: opts.Namespace,
				Subsystem: opts.Subsystem,
				Name:      "validation_duration_seconds",
				Help:      "Duration of validation calls in seconds",
				Buckets:   opts.DurationBuckets,
			},
		),
		compilesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: opts.Namespace,
				Subsystem: opts.Subsystem,
				Name:      "compiles_total",
				Help:      "Total number of schema compilations by outcome",
			},
			[]string{"outcome"},
		),
	}

	for _, c := range []prometheus.Collector{m.validationsTotal, m.errorsTotal, m.duration, m.compilesTotal} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Config returns the wrapped validator's configuration.
func (m *Validator) Config() jddf.Config { return m.inner.Config() }

// Compile compiles s and counts the outcome.
func (m *Validator) Compile(s jddf.Schema) (*jddf.CompiledSchema, error) {
	c, err := jddf.Compile(s)
	m.compilesTotal.WithLabelValues(compileOutcome(err)).Inc()
	return c, err
}

// Validate validates inst and records the outcome, error count and duration.
func (m *Validator) Validate(schema *jddf.CompiledSchema, inst jddf.Value) ([]jddf.ValidationError, error) {
	start := time.Now()
	errs, err := m.inner.Validate(schema, inst)
	m.duration.Observe(time.Since(start).Seconds())
	m.record(errs, err)
	return errs, err
}

// ValidateAny converts a decoded document with jddf.FromAny and validates it.
func (m *Validator) ValidateAny(schema *jddf.CompiledSchema, inst any) ([]jddf.ValidationError, error) {
	v, err := jddf.FromAny(inst)
	if err != nil {
		return nil, err
	}
	return m.Validate(schema, v)
}

func (m *Validator) record(errs []jddf.ValidationError, err error) {
	switch {
	case errors.Is(err, jddf.ErrMaxDepthExceeded):
		m.validationsTotal.WithLabelValues(OutcomeMaxDepth).Inc()
	case err != nil:
		// misuse such as a nil schema; not a validation outcome
	case len(errs) == 0:
		m.validationsTotal.WithLabelValues(OutcomeValid).Inc()
	default:
		m.validationsTotal.WithLabelValues(OutcomeInvalid).Inc()
		m.errorsTotal.Add(float64(len(errs)))
	}
}

func compileOutcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, jddf.ErrNoSuchDefinition):
		return OutcomeNoSuchDefinition
	default:
		return OutcomeInvalidForm
	}
}
