// internal/middleware/client_session.go
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/oklog/ulid/v2"
)

const (
	sidCookieName = "portal_sid"
	sidContextKey = "sid"

	// Cookie lifetime in seconds; sessions themselves expire in Redis.
	sidCookieMaxAge = 60 * 60 * 24 * 365
)

// ClientSession guarantees every request carries a client session id. The id
// only names the browser/device; it says nothing about who is logged in.
func ClientSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := c.Cookie(sidCookieName)
		if err != nil || sid == "" {
			sid = ulid.Make().String()
			c.SetCookie(sidCookieName, sid, sidCookieMaxAge, "/", "", false, true)
		}
		c.Set(sidContextKey, sid)
		c.Next()
	}
}

// GetSID returns the client session id set by ClientSession.
func GetSID(c *gin.Context) string {
	return c.GetString(sidContextKey)
}
