package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ats-backend/internal/shared/telemetry"
)

// ErrorResponse is the envelope of every non-2xx JSON response:
//
//	{"error": {"code": "...", "message": "...", "details": ...}}
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody carries a stable machine code, a human message and optional details.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// Error logs the failure and aborts the request with the error envelope.
func Error(c *gin.Context, status int, code, message string, details any) {
	logError(c, status, code, message)
	c.AbortWithStatusJSON(status, ErrorResponse{Error: ErrorBody{
		Code:    code,
		Message: message,
		Details: details,
	}})
}

func logError(c *gin.Context, status int, code, message string) {
	fields := map[string]any{
		"status":     status,
		"code":       code,
		"message":    message,
		"method":     c.Request.Method,
		"path":       c.Request.URL.Path,
		"request_id": c.GetString("requestId"),
	}
	if owner := c.GetString("ownerId"); owner != "" {
		fields["owner_id"] = owner
	}
	if status >= http.StatusInternalServerError {
		telemetry.Error("http.error", fields)
		return
	}
	telemetry.Info("http.error", fields)
}
