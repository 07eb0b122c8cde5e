// internal/pkg/session/session.go
package session

import "hostel-portal/internal/domain/portal"

// Session is the portal's record of who is logged in. Role is a cached UI
// hint derived from the token; the upstream API re-derives and enforces the
// role from the token on every request, so nothing here is a security
// boundary.
type Session struct {
	Token           string
	Role            portal.Role
	IsAuthenticated bool
}

// LoggedOut is the zero session returned whenever no valid token is stored.
func LoggedOut() Session {
	return Session{}
}
