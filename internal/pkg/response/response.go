// internal/pkg/response/response.go
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response is the envelope the portal speaks to its own clients. It mirrors
// the upstream API's envelope so pages can treat portal and upstream payloads
// uniformly.
type Response struct {
	Success                bool        `json:"success"`
	Message                string      `json:"message"`
	Data                   interface{} `json:"data,omitempty"`
	Error                  string      `json:"error,omitempty"`
	Token                  string      `json:"token,omitempty"`
	RequiresPasswordChange bool        `json:"requiresPasswordChange,omitempty"`
}

// Success sends a successful response with a message and optional data.
func Success(c *gin.Context, status int, message string, data interface{}) {
	if status == 0 {
		status = http.StatusOK
	}

	c.JSON(status, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// LoginSuccess sends a successful authentication response carrying the bearer
// token alongside the normalized user payload.
func LoginSuccess(c *gin.Context, message string, data interface{}, token string, requiresPasswordChange bool) {
	c.JSON(http.StatusOK, Response{
		Success:                true,
		Message:                message,
		Data:                   data,
		Token:                  token,
		RequiresPasswordChange: requiresPasswordChange,
	})
}

// Error sends a standardized error response.
func Error(c *gin.Context, code int, message string, err error) {
	// Abort first so no later handler writes a second body.
	c.Abort()

	resp := Response{
		Success: false,
		Message: message,
	}
	if err != nil {
		resp.Error = err.Error()
	}

	c.JSON(code, resp)
}

// ValidationError sends a 400 Bad Request response for invalid input.
func ValidationError(c *gin.Context, message string, err error) {
	Error(c, http.StatusBadRequest, message, err)
}

// Unauthorized sends a 401 Unauthorized response.
func Unauthorized(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, message, nil)
}

// Forbidden sends a 403 Forbidden response.
func Forbidden(c *gin.Context, message string) {
	Error(c, http.StatusForbidden, message, nil)
}

// NotFound sends a 404 Not Found response.
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message, nil)
}
