package middleware

import (
	"context"
	"fmt"
	"io"
	"net/http"

	json "github.com/goccy/go-json"

	"github.com/reoring/jddf"
)

// Validator is satisfied by *jddf.Validator and *metrics.Validator.
type Validator interface {
	Validate(schema *jddf.CompiledSchema, inst jddf.Value) ([]jddf.ValidationError, error)
}

// ctxKeyValue is the context key for the validated request body.
type ctxKeyValue struct{}

// ContextWithValue attaches a validated body to the context.
func ContextWithValue(ctx context.Context, v jddf.Value) context.Context {
	return context.WithValue(ctx, ctxKeyValue{}, v)
}

// ValueFromContext retrieves the validated body from context.
func ValueFromContext(ctx context.Context) (jddf.Value, bool) {
	v, ok := ctx.Value(ctxKeyValue{}).(jddf.Value)
	return v, ok
}

// DefaultDecodeOptions returns a recommended default for HTTP JSON boundaries.
// - Duplicate keys are errors
// - Bodies are capped at 1 MiB
func DefaultDecodeOptions() jddf.DecodeOptions {
	return jddf.DecodeOptions{MaxBytes: 1 << 20}
}

// ErrorPayload shapes validation errors for JSON responses.
func ErrorPayload(errs []jddf.ValidationError) map[string]any {
	out := make([]map[string]string, 0, len(errs))
	for _, e := range errs {
		out = append(out, map[string]string{
			"instancePath": e.InstancePointer(),
			"schemaPath":   e.SchemaPointer(),
			"code":         e.Code,
		})
	}
	return map[string]any{"errors": out}
}

// Check decodes a JSON body and validates it against schema. On failure it
// returns the HTTP status and payload to respond with; status is 0 on success.
func Check(v Validator, schema *jddf.CompiledSchema, body io.Reader, opts jddf.DecodeOptions) (jddf.Value, int, map[string]any) {
	r := body
	if opts.MaxBytes > 0 {
		// one extra byte so the decoder sees the overflow
		r = io.LimitReader(body, opts.MaxBytes+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return jddf.Value{}, http.StatusBadRequest, map[string]any{"error": fmt.Sprintf("read body: %v", err)}
	}
	inst, err := jddf.ParseValueJSON(data, opts)
	if err != nil {
		return jddf.Value{}, http.StatusBadRequest, map[string]any{"error": err.Error()}
	}
	errs, err := v.Validate(schema, inst)
	if err != nil {
		// ErrMaxDepthExceeded or a nil schema: a server-side problem
		return jddf.Value{}, http.StatusInternalServerError, map[string]any{"error": err.Error()}
	}
	if len(errs) > 0 {
		return jddf.Value{}, http.StatusBadRequest, ErrorPayload(errs)
	}
	return inst, 0, nil
}

// ValidateJSON validates request bodies against schema before calling next.
// The validated body is available through ValueFromContext.
func ValidateJSON(v Validator, schema *jddf.CompiledSchema, opts jddf.DecodeOptions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			inst, status, payload := Check(v, schema, r.Body, opts)
			if status != 0 {
				writeJSON(w, status, payload)
				return
			}
			next.ServeHTTP(w, r.WithContext(ContextWithValue(r.Context(), inst)))
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
