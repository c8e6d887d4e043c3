package respond

import (
	"github.com/gin-gonic/gin"

	"github.com/ishubcg/bcg-pitchpilot-pdf/internal/shared/telemetry"
)

// RequestIDKey is the gin context key holding the request id.
const RequestIDKey = "requestId"

// ErrorBody defines the standardized error object.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ErrorResponse wraps the error body.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// Error logs the failure and aborts with {"error":{code,message,details}}.
// Client errors log at warn and include details; server errors log at error.
func Error(c *gin.Context, status int, code, message string, details any) {
	fields := map[string]any{
		"status":     status,
		"code":       code,
		"route":      c.FullPath(),
		"method":     c.Request.Method,
		"request_id": c.GetString(RequestIDKey),
	}
	if status < 500 {
		if details != nil {
			fields["details"] = details
		}
		telemetry.Warn("http.error", fields)
	} else {
		fields["message"] = message
		telemetry.Error("http.error", fields)
	}

	c.AbortWithStatusJSON(status, ErrorResponse{
		Error: ErrorBody{Code: code, Message: message, Details: details},
	})
}
