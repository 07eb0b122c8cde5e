// internal/pkg/authz/gate.go
package authz

import (
	"hostel-portal/internal/domain/portal"
	"hostel-portal/internal/pkg/session"
	"hostel-portal/internal/pkg/token"
)

// Decision is the outcome of evaluating the gate for a protected route.
// Authorization failure is not an error: callers act on the decision by
// redirecting, never by throwing.
type Decision int

const (
	Render Decision = iota
	RedirectLogin
	RedirectRoleSelect
	RedirectChangePassword
)

func (d Decision) String() string {
	switch d {
	case Render:
		return "render"
	case RedirectLogin:
		return "redirect_login"
	case RedirectRoleSelect:
		return "redirect_role_select"
	case RedirectChangePassword:
		return "redirect_change_password"
	default:
		return "unknown"
	}
}

// Authorize decides whether a session may render a route that requires the
// given role. The checks run in a fixed order: authentication before role
// matching, role matching before the temporary-password gate. That order
// guarantees an unauthenticated or wrong-role user is never bounced to
// another role's password-change page.
//
// The gate is a UX optimization, not an access-control enforcement point:
// claims come from an unverified decode and the upstream API independently
// authorizes every request.
func Authorize(sess session.Session, required portal.Role) Decision {
	if !sess.IsAuthenticated {
		return RedirectLogin
	}

	if sess.Role != required {
		return RedirectRoleSelect
	}

	if required.EnforcesTempPassword() {
		// An undecodable token is treated as "not temporary": the gate fails
		// open here and lets the upstream reject the token if it is invalid.
		if claims, ok := token.Decode(sess.Token); ok && claims.IsTempPassword {
			return RedirectChangePassword
		}
	}

	return Render
}

// RedirectTarget maps a non-render decision to the path the client should be
// sent to for the given required role.
func RedirectTarget(d Decision, required portal.Role) string {
	switch d {
	case RedirectLogin:
		return required.LoginPath()
	case RedirectRoleSelect:
		return "/select-role"
	case RedirectChangePassword:
		return required.ChangePasswordPath()
	default:
		return ""
	}
}
