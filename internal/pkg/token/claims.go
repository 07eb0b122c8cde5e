// internal/pkg/token/claims.go
package token

import (
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the decoded payload of a portal bearer token. The portal never
// verifies the signature; claims drive UI/routing decisions only and the
// upstream API re-authorizes every request from the raw token.
type Claims struct {
	Role           string `json:"role"`
	Name           string `json:"name"`
	IsTempPassword bool   `json:"isTempPassword"`
	jwt.RegisteredClaims
}

// RoleUpper returns the role claim upper-cased for comparison against the
// portal's role constants.
func (c *Claims) RoleUpper() string {
	return strings.ToUpper(c.Role)
}
