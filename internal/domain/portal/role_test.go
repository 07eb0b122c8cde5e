package portal

import "testing"

func TestRoleFromClaim(t *testing.T) {
	tests := []struct {
		claim string
		want  Role
	}{
		{"warden", RoleWarden},
		{"WARDEN", RoleWarden},
		{"Warden", RoleWarden},
		{"parent", RoleParent},
		{"PARENT", RoleParent},
		{"student", RoleStudent},
		// Anything unrecognized falls through to STUDENT.
		{"admin", RoleStudent},
		{"", RoleStudent},
		{"superuser", RoleStudent},
	}

	for _, tt := range tests {
		if got := RoleFromClaim(tt.claim); got != tt.want {
			t.Errorf("RoleFromClaim(%q) = %v, want %v", tt.claim, got, tt.want)
		}
	}
}

func TestParseRoleStrict(t *testing.T) {
	if role, ok := ParseRole("WARDEN"); !ok || role != RoleWarden {
		t.Errorf("ParseRole(WARDEN) = (%v, %v)", role, ok)
	}
	if _, ok := ParseRole("admin"); ok {
		t.Error("ParseRole(admin) accepted an unknown role")
	}
	if _, ok := ParseRole(""); ok {
		t.Error("ParseRole(\"\") accepted the empty string")
	}
}

func TestRolePaths(t *testing.T) {
	tests := []struct {
		role           Role
		login          string
		dashboard      string
		changePassword string
	}{
		{RoleStudent, "/student/login", "/student/dashboard", "/student/change-password"},
		{RoleParent, "/parent/login", "/parent/dashboard", "/parent/change-password"},
		{RoleWarden, "/warden/login", "/warden/dashboard", ""},
	}

	for _, tt := range tests {
		if got := tt.role.LoginPath(); got != tt.login {
			t.Errorf("%v.LoginPath() = %q, want %q", tt.role, got, tt.login)
		}
		if got := tt.role.DashboardPath(); got != tt.dashboard {
			t.Errorf("%v.DashboardPath() = %q, want %q", tt.role, got, tt.dashboard)
		}
		if got := tt.role.ChangePasswordPath(); got != tt.changePassword {
			t.Errorf("%v.ChangePasswordPath() = %q, want %q", tt.role, got, tt.changePassword)
		}
	}
}

func TestEnforcesTempPassword(t *testing.T) {
	if !RoleStudent.EnforcesTempPassword() {
		t.Error("student should be subject to the temp-password gate")
	}
	if !RoleParent.EnforcesTempPassword() {
		t.Error("parent should be subject to the temp-password gate")
	}
	if RoleWarden.EnforcesTempPassword() {
		t.Error("warden must be exempt from the temp-password gate")
	}
}

func TestRouteTableLongestPrefixWins(t *testing.T) {
	table := NewRouteTable(map[string]Role{
		"/student/":      RoleStudent,
		"/parent/":       RoleParent,
		"/parent/admin/": RoleWarden,
	})

	tests := []struct {
		path string
		want Role
		ok   bool
	}{
		{"/student/dashboard", RoleStudent, true},
		{"/parent/child", RoleParent, true},
		{"/parent/admin/tools", RoleWarden, true},
		{"/select-role", "", false},
		{"/", "", false},
	}

	for _, tt := range tests {
		got, ok := table.RequiredRole(tt.path)
		if ok != tt.ok || got != tt.want {
			t.Errorf("RequiredRole(%q) = (%v, %v), want (%v, %v)", tt.path, got, ok, tt.want, tt.ok)
		}
	}
}

func TestRouteTableRejectsUnknownRole(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("NewRouteTable accepted an unknown role without panicking")
		}
	}()
	NewRouteTable(map[string]Role{"/x/": Role("ADMIN")})
}
