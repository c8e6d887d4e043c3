package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/ishubcg/bcg-pitchpilot-pdf/internal/shared/server/respond"
	"github.com/ishubcg/bcg-pitchpilot-pdf/internal/shared/telemetry"
)

// Recovery turns a handler panic into a 500 JSON error. If a PDF body has
// already started streaming the response is only aborted.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			telemetry.Error("panic", map[string]any{
				"request_id": RequestIDFromContext(c),
				"route":      c.FullPath(),
				"method":     c.Request.Method,
				"industry":   c.GetString(IndustryKey),
				"written":    c.Writer.Written(),
				"panic":      rec,
				"stack":      string(debug.Stack()),
			})
			if c.Writer.Written() {
				c.Abort()
				return
			}
			respond.Error(c, http.StatusInternalServerError, "internal", "Unexpected server error", nil)
		}()
		c.Next()
	}
}
