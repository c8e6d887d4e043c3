package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ishubcg/bcg-pitchpilot-pdf/internal/shared/telemetry"
)

// Context keys handlers set so the request log carries pitch details.
const (
	IndustryKey       = "industry"
	RecommendedIDsKey = "recommendedIds"
	PitchPagesKey     = "pitchPages"
)

// Logging emits a structured log per request.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.EqualFold(c.Request.Method, "OPTIONS") {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)

		fields := map[string]any{
			"request_id":  RequestIDFromContext(c),
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"route":       c.FullPath(),
			"status":      c.Writer.Status(),
			"duration_ms": float64(latency.Microseconds()) / 1000.0,
			"client_ip":   c.ClientIP(),
			"user_agent":  c.Request.UserAgent(),
		}
		if industry := c.GetString(IndustryKey); industry != "" {
			fields["industry"] = industry
		}
		if ids, ok := c.Get(RecommendedIDsKey); ok {
			fields["recommended_ids"] = ids
		}
		if pages, ok := c.Get(PitchPagesKey); ok {
			fields["pitch_pages"] = pages
		}
		telemetry.Info("request.complete", fields)
	}
}
