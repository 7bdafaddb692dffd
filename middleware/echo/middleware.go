package echomw

import (
	"github.com/labstack/echo/v4"

	"github.com/reoring/jddf"
	"github.com/reoring/jddf/middleware"
)

// ValidateJSON validates the request JSON against schema, stores the body in
// the request context on success, or responds with the error payload.
// A zero opts uses middleware.DefaultDecodeOptions.
func ValidateJSON(v middleware.Validator, schema *jddf.CompiledSchema, opts jddf.DecodeOptions) echo.MiddlewareFunc {
	if opts == (jddf.DecodeOptions{}) {
		opts = middleware.DefaultDecodeOptions()
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			inst, status, payload := middleware.Check(v, schema, c.Request().Body, opts)
			if status != 0 {
				return c.JSON(status, payload)
			}
			ctx := middleware.ContextWithValue(c.Request().Context(), inst)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

// GetValue fetches the validated body from echo.Context.
func GetValue(c echo.Context) (jddf.Value, bool) {
	return middleware.ValueFromContext(c.Request().Context())
}
