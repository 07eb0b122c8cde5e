// internal/middleware/device_middleware.go
package middleware

import (
	"hostel-portal/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

const deviceKeyHeader = "X-Device-Key"

// DeviceAuth authenticates gate scanner devices with a pre-shared key. Only
// the bcrypt hash of the key is configured on the portal.
func DeviceAuth(keyHash string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if keyHash == "" {
			response.Forbidden(c, "device access is not configured")
			return
		}

		key := c.GetHeader(deviceKeyHeader)
		if key == "" {
			response.Unauthorized(c, "missing device key")
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(keyHash), []byte(key)); err != nil {
			response.Unauthorized(c, "invalid device key")
			return
		}

		c.Next()
	}
}
