package main

import (
	"errors"
	"fmt"
	"io"

	json "github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"

	"github.com/reoring/jddf"
	"github.com/reoring/jddf/i18n"
	"github.com/reoring/jddf/metrics"
)

type validateOptions struct {
	schema     string
	configFile string
	maxDepth   int
	maxErrors  int
	format     string
	metrics    bool
	allowDup   bool
	maxNesting int
}

type errorReport struct {
	InstancePath string `json:"instancePath"`
	SchemaPath   string `json:"schemaPath"`
	Code         string `json:"code"`
	Message      string `json:"message"`
}

type instanceReport struct {
	File   string        `json:"file"`
	Valid  bool          `json:"valid"`
	Errors []errorReport `json:"errors"`
}

func newValidateCmd(a *app) *cobra.Command {
	f := &validateOptions{}
	cmd := &cobra.Command{
		Use:   "validate --schema SCHEMA INSTANCE...",
		Short: "Validate documents against a schema",
		Long: `Validate each instance document against one schema.

Errors are printed one per line as the instance path followed by the schema
path, both JSON Pointers. With --format json a single JSON array is written
instead, one entry per instance.

Examples:
  jddf validate --schema user.jddf.json alice.json bob.json
  jddf validate --schema user.jddf.yaml --max-errors 1 --format json alice.yaml
  jddf validate --schema user.jddf.json --config limits.yaml --metrics alice.json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, a, f, args)
		},
	}
	cmd.Flags().StringVar(&f.schema, "schema", "", "schema file (required)")
	cmd.Flags().StringVar(&f.configFile, "config", "", "validator config file (YAML or JSON)")
	cmd.Flags().IntVar(&f.maxDepth, "max-depth", jddf.DefaultMaxDepth, "maximum number of refs followed in a row")
	cmd.Flags().IntVar(&f.maxErrors, "max-errors", jddf.DefaultMaxErrors, "stop after this many errors per instance (0 = unlimited)")
	cmd.Flags().StringVar(&f.format, "format", "text", "output format: text, json")
	cmd.Flags().BoolVar(&f.metrics, "metrics", false, "dump Prometheus metrics to stderr when done")
	cmd.Flags().BoolVar(&f.allowDup, "allow-duplicate-keys", false, "accept JSON objects with duplicate keys (last wins)")
	cmd.Flags().IntVar(&f.maxNesting, "max-nesting", 0, "maximum document nesting (0 = unlimited)")
	_ = cmd.MarkFlagRequired("schema")
	return cmd
}

func runValidate(cmd *cobra.Command, a *app, f *validateOptions, args []string) error {
	if f.format != "text" && f.format != "json" {
		return fatal(fmt.Errorf("unknown format %q", f.format))
	}

	cfg := jddf.DefaultConfig()
	if f.configFile != "" {
		var err error
		if cfg, err = loadConfig(f.configFile); err != nil {
			return fatal(err)
		}
	}
	if cmd.Flags().Changed("max-depth") {
		cfg.MaxDepth = f.maxDepth
	}
	if cmd.Flags().Changed("max-errors") {
		cfg.MaxErrors = f.maxErrors
	}
	opts := jddf.DecodeOptions{AllowDuplicateKeys: f.allowDup, MaxNesting: f.maxNesting}

	reg := prometheus.NewRegistry()
	v, err := metrics.New(jddf.NewValidator(cfg), reg, metrics.Options{})
	if err != nil {
		return fatal(err)
	}

	s, err := readSchema(f.schema, opts)
	if err != nil {
		return fatal(fmt.Errorf("schema %s: %w", f.schema, err))
	}
	compiled, err := v.Compile(s)
	if err != nil {
		return invalid(fmt.Errorf("schema %s: %w", f.schema, err))
	}
	a.log.Debug("schema compiled", "file", f.schema, "maxDepth", v.Config().MaxDepth, "maxErrors", v.Config().MaxErrors)

	reports := make([]instanceReport, 0, len(args))
	for _, name := range args {
		inst, err := readValue(name, opts)
		if err != nil {
			return fatal(fmt.Errorf("instance %s: %w", name, err))
		}
		errs, err := v.Validate(compiled, inst)
		if err != nil {
			if errors.Is(err, jddf.ErrMaxDepthExceeded) {
				a.log.Error("validation aborted", "file", name, "error", err)
			}
			return fatal(fmt.Errorf("instance %s: %w", name, err))
		}
		a.log.Info("validated", "file", name, "errors", len(errs))
		r := instanceReport{File: name, Valid: len(errs) == 0, Errors: make([]errorReport, 0, len(errs))}
		for _, e := range errs {
			r.Errors = append(r.Errors, errorReport{
				InstancePath: e.InstancePointer(),
				SchemaPath:   e.SchemaPointer(),
				Code:         e.Code,
				Message:      describe(compiled, e),
			})
		}
		reports = append(reports, r)
	}

	if err := writeReports(cmd.OutOrStdout(), f.format, reports); err != nil {
		return fatal(err)
	}
	if f.metrics {
		if err := dumpMetrics(cmd.ErrOrStderr(), reg); err != nil {
			return fatal(err)
		}
	}
	for _, r := range reports {
		if !r.Valid {
			return errSilentInvalid
		}
	}
	return nil
}

func writeReports(w io.Writer, format string, reports []instanceReport) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(reports)
	}
	for _, r := range reports {
		if r.Valid {
			fmt.Fprintf(w, "%s: ok\n", r.File)
			continue
		}
		for _, e := range r.Errors {
			fmt.Fprintf(w, "%s: %s %s %s\n", r.File, textPointer(e.InstancePath), textPointer(e.SchemaPath), e.Message)
		}
	}
	return nil
}

// textPointer prints the root pointer as "" so every line keeps its fields.
func textPointer(p string) string {
	if p == "" {
		return `""`
	}
	return p
}

func describe(c *jddf.CompiledSchema, e jddf.ValidationError) string {
	var data map[string]string
	switch e.Code {
	case jddf.CodeUnknownKey:
		if len(e.InstancePath) > 0 {
			data = map[string]string{"key": e.InstancePath[len(e.InstancePath)-1]}
		}
	case jddf.CodeMissingTag, jddf.CodeInvalidTag, jddf.CodeUnknownTag:
		// The schema path ends in discriminator/tag or discriminator/mapping.
		if n, ok := c.Lookup(e.SchemaPath[:len(e.SchemaPath)-1]); ok && n.Form() == jddf.FormDiscriminator {
			data = map[string]string{"tag": n.Tag()}
		}
	}
	return i18n.T(e.Code, data)
}

func dumpMetrics(w io.Writer, g prometheus.Gatherer) error {
	mfs, err := g.Gather()
	if err != nil {
		return err
	}
	for _, mf := range mfs {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
