package ginmw

import (
	"github.com/gin-gonic/gin"

	"github.com/reoring/jddf"
	"github.com/reoring/jddf/middleware"
)

// ValidateJSON validates the request JSON against schema, stores the body in
// the request context on success, and otherwise aborts with the error payload.
// A zero opts uses middleware.DefaultDecodeOptions.
func ValidateJSON(v middleware.Validator, schema *jddf.CompiledSchema, opts jddf.DecodeOptions) gin.HandlerFunc {
	if opts == (jddf.DecodeOptions{}) {
		opts = middleware.DefaultDecodeOptions()
	}
	return func(c *gin.Context) {
		inst, status, payload := middleware.Check(v, schema, c.Request.Body, opts)
		if status != 0 {
			c.AbortWithStatusJSON(status, payload)
			return
		}
		c.Request = c.Request.WithContext(middleware.ContextWithValue(c.Request.Context(), inst))
		c.Next()
	}
}

// GetValue fetches the validated body from gin.Context.
func GetValue(c *gin.Context) (jddf.Value, bool) {
	return middleware.ValueFromContext(c.Request.Context())
}
