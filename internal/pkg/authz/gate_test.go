package authz

import (
	"encoding/base64"
	"testing"

	"hostel-portal/internal/domain/portal"
	"hostel-portal/internal/pkg/session"
)

func mintToken(role string, temp bool) string {
	body := `{"role":"` + role + `"`
	if temp {
		body += `,"isTempPassword":true`
	}
	body += `}`
	return "h." + base64.RawURLEncoding.EncodeToString([]byte(body)) + ".s"
}

func authed(role portal.Role, tok string) session.Session {
	return session.Session{Token: tok, Role: role, IsAuthenticated: true}
}

func TestAuthorizeDecisions(t *testing.T) {
	tests := []struct {
		name     string
		sess     session.Session
		required portal.Role
		want     Decision
	}{
		{
			name:     "logged out",
			sess:     session.LoggedOut(),
			required: portal.RoleStudent,
			want:     RedirectLogin,
		},
		{
			name:     "role mismatch",
			sess:     authed(portal.RoleParent, mintToken("parent", false)),
			required: portal.RoleStudent,
			want:     RedirectRoleSelect,
		},
		{
			name:     "student with permanent password",
			sess:     authed(portal.RoleStudent, mintToken("student", false)),
			required: portal.RoleStudent,
			want:     Render,
		},
		{
			name:     "student with temporary password",
			sess:     authed(portal.RoleStudent, mintToken("student", true)),
			required: portal.RoleStudent,
			want:     RedirectChangePassword,
		},
		{
			name:     "parent with temporary password",
			sess:     authed(portal.RoleParent, mintToken("parent", true)),
			required: portal.RoleParent,
			want:     RedirectChangePassword,
		},
		{
			name:     "warden with temporary password is exempt",
			sess:     authed(portal.RoleWarden, mintToken("warden", true)),
			required: portal.RoleWarden,
			want:     Render,
		},
		{
			name: "undecodable token fails open",
			sess: authed(portal.RoleStudent, "opaque"),
			required: portal.RoleStudent,
			want: Render,
		},
		{
			// Auth check runs before the temp-password check: a logged-out
			// user never sees another role's password page.
			name:     "logged out beats temp password",
			sess:     session.Session{Token: mintToken("student", true)},
			required: portal.RoleStudent,
			want:     RedirectLogin,
		},
		{
			// Role match runs before the temp-password check.
			name:     "role mismatch beats temp password",
			sess:     authed(portal.RoleParent, mintToken("parent", true)),
			required: portal.RoleStudent,
			want:     RedirectRoleSelect,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Authorize(tt.sess, tt.required); got != tt.want {
				t.Errorf("Authorize() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRedirectTargets(t *testing.T) {
	tests := []struct {
		d        Decision
		required portal.Role
		want     string
	}{
		{RedirectLogin, portal.RoleStudent, "/student/login"},
		{RedirectLogin, portal.RoleWarden, "/warden/login"},
		{RedirectRoleSelect, portal.RoleParent, "/select-role"},
		{RedirectChangePassword, portal.RoleStudent, "/student/change-password"},
		{RedirectChangePassword, portal.RoleParent, "/parent/change-password"},
		{Render, portal.RoleStudent, ""},
	}

	for _, tt := range tests {
		if got := RedirectTarget(tt.d, tt.required); got != tt.want {
			t.Errorf("RedirectTarget(%v, %v) = %q, want %q", tt.d, tt.required, got, tt.want)
		}
	}
}
