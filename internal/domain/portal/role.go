// internal/domain/portal/role.go
package portal

import "strings"

// Role identifies which of the three portals a session belongs to.
type Role string

const (
	RoleStudent Role = "STUDENT"
	RoleParent  Role = "PARENT"
	RoleWarden  Role = "WARDEN"
)

// RoleFromClaim maps a token's role claim to a portal role. The comparison is
// case-insensitive and anything that is not WARDEN or PARENT falls back to
// STUDENT. The fallback is a deliberate catch-all, not a validation failure.
func RoleFromClaim(claim string) Role {
	switch strings.ToUpper(claim) {
	case string(RoleWarden):
		return RoleWarden
	case string(RoleParent):
		return RoleParent
	default:
		return RoleStudent
	}
}

// ParseRole strictly parses a stored role string. Unlike RoleFromClaim it
// reports failure instead of defaulting, so callers can distinguish a corrupt
// stored value from a valid one.
func ParseRole(s string) (Role, bool) {
	switch Role(strings.ToUpper(s)) {
	case RoleStudent:
		return RoleStudent, true
	case RoleParent:
		return RoleParent, true
	case RoleWarden:
		return RoleWarden, true
	default:
		return "", false
	}
}

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleParent, RoleWarden:
		return true
	default:
		return false
	}
}

// Slug is the lower-case path segment for the role ("student", "parent", "warden").
func (r Role) Slug() string {
	return strings.ToLower(string(r))
}

// LoginPath is the role-scoped login page.
func (r Role) LoginPath() string {
	return "/" + r.Slug() + "/login"
}

// DashboardPath is the role's landing page after login.
func (r Role) DashboardPath() string {
	return "/" + r.Slug() + "/dashboard"
}

// ChangePasswordPath is the role's mandatory password-change page. Wardens
// choose their own password at signup and have no such page.
func (r Role) ChangePasswordPath() string {
	if r == RoleWarden {
		return ""
	}
	return "/" + r.Slug() + "/change-password"
}

// EnforcesTempPassword reports whether the role is subject to the mandatory
// temporary-password redirect. Wardens are exempt; see DESIGN.md before
// changing this.
func (r Role) EnforcesTempPassword() bool {
	return r == RoleStudent || r == RoleParent
}
