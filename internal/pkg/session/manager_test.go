package session

import (
	"context"
	"encoding/base64"
	"testing"

	"hostel-portal/internal/domain/portal"

	"go.uber.org/zap"
)

func tokenWithRole(role string) string {
	payload := base64.RawURLEncoding.EncodeToString([]byte(`{"role":"` + role + `"}`))
	return "header." + payload + ".sig"
}

func newTestManager() (*Manager, *MemoryStorage) {
	storage := NewMemoryStorage()
	return NewManager(storage, zap.NewNop()), storage
}

func TestLoginStoresPair(t *testing.T) {
	ctx := context.Background()
	m, storage := newTestManager()

	sess, err := m.Login(ctx, "sid1", tokenWithRole("warden"), "")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if !sess.IsAuthenticated || sess.Role != portal.RoleWarden {
		t.Errorf("session = %+v, want authenticated warden", sess)
	}

	tok, role, err := storage.GetPair(ctx, "sid1")
	if err != nil {
		t.Fatalf("GetPair: %v", err)
	}
	if tok == "" || role != "WARDEN" {
		t.Errorf("stored pair = (%q, %q)", tok, role)
	}
}

func TestLoginRoleHintWins(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager()

	// The hint takes precedence over the token claim.
	sess, err := m.Login(ctx, "sid1", tokenWithRole("warden"), portal.RoleParent)
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if sess.Role != portal.RoleParent {
		t.Errorf("Role = %v, want PARENT", sess.Role)
	}
}

func TestLoginUndecodableTokenDefaultsToStudent(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager()

	sess, err := m.Login(ctx, "sid1", "opaque-token", "")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if sess.Role != portal.RoleStudent {
		t.Errorf("Role = %v, want STUDENT", sess.Role)
	}
}

func TestHydrateRoundTrip(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager()

	if _, err := m.Login(ctx, "sid1", tokenWithRole("parent"), ""); err != nil {
		t.Fatalf("Login: %v", err)
	}

	sess, err := m.Hydrate(ctx, "sid1")
	if err != nil {
		t.Fatalf("Hydrate: %v", err)
	}
	if !sess.IsAuthenticated || sess.Role != portal.RoleParent {
		t.Errorf("session = %+v, want authenticated parent", sess)
	}
}

func TestHydrateEmptyIsLoggedOut(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager()

	sess, err := m.Hydrate(ctx, "nobody")
	if err != nil {
		t.Fatalf("Hydrate: %v", err)
	}
	if sess.IsAuthenticated {
		t.Error("empty storage should hydrate as logged out")
	}
}

func TestHydrateRepairsHalfPair(t *testing.T) {
	ctx := context.Background()
	m, storage := newTestManager()

	// Token without role.
	storage.pairs["sid1"] = [2]string{"sometoken", ""}

	sess, err := m.Hydrate(ctx, "sid1")
	if err != nil {
		t.Fatalf("Hydrate: %v", err)
	}
	if sess.IsAuthenticated {
		t.Error("half pair should hydrate as logged out")
	}

	// The remnant must be gone so the pairing invariant holds.
	tok, role, _ := storage.GetPair(ctx, "sid1")
	if tok != "" || role != "" {
		t.Errorf("remnant pair = (%q, %q), want cleared", tok, role)
	}

	// Role without token, same outcome.
	storage.pairs["sid2"] = [2]string{"", "STUDENT"}
	sess, err = m.Hydrate(ctx, "sid2")
	if err != nil {
		t.Fatalf("Hydrate: %v", err)
	}
	if sess.IsAuthenticated {
		t.Error("half pair should hydrate as logged out")
	}
}

func TestHydrateRewritesCorruptRole(t *testing.T) {
	ctx := context.Background()
	m, storage := newTestManager()

	storage.pairs["sid1"] = [2]string{tokenWithRole("warden"), "SUPERADMIN"}

	sess, err := m.Hydrate(ctx, "sid1")
	if err != nil {
		t.Fatalf("Hydrate: %v", err)
	}
	if sess.Role != portal.RoleWarden {
		t.Errorf("Role = %v, want WARDEN re-derived from token", sess.Role)
	}

	_, role, _ := storage.GetPair(ctx, "sid1")
	if role != "WARDEN" {
		t.Errorf("stored role = %q, want rewritten to WARDEN", role)
	}
}

func TestLogoutIdempotent(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager()

	if _, err := m.Login(ctx, "sid1", tokenWithRole("student"), ""); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if err := m.Logout(ctx, "sid1"); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	// Second logout on an already empty session must not fail.
	if err := m.Logout(ctx, "sid1"); err != nil {
		t.Fatalf("repeat Logout: %v", err)
	}

	sess, _ := m.Hydrate(ctx, "sid1")
	if sess.IsAuthenticated {
		t.Error("session still authenticated after logout")
	}
}

func TestClearIfTokenMatches(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager()

	oldToken := tokenWithRole("student")
	if _, err := m.Login(ctx, "sid1", oldToken, ""); err != nil {
		t.Fatalf("Login: %v", err)
	}

	cleared, err := m.ClearIfTokenMatches(ctx, "sid1", oldToken)
	if err != nil {
		t.Fatalf("ClearIfTokenMatches: %v", err)
	}
	if !cleared {
		t.Error("matching token should clear the session")
	}
	sess, _ := m.Hydrate(ctx, "sid1")
	if sess.IsAuthenticated {
		t.Error("session survived a matching clear")
	}
}

func TestClearIfTokenMatchesSparesNewerLogin(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager()

	oldToken := tokenWithRole("student")
	if _, err := m.Login(ctx, "sid1", oldToken, ""); err != nil {
		t.Fatalf("Login: %v", err)
	}

	// A fresh login lands before the stale failure's teardown arrives.
	newToken := tokenWithRole("student") + "v2"
	if _, err := m.Login(ctx, "sid1", newToken, ""); err != nil {
		t.Fatalf("re-Login: %v", err)
	}

	cleared, err := m.ClearIfTokenMatches(ctx, "sid1", oldToken)
	if err != nil {
		t.Fatalf("ClearIfTokenMatches: %v", err)
	}
	if cleared {
		t.Error("stale failure cleared a newer session")
	}

	sess, _ := m.Hydrate(ctx, "sid1")
	if !sess.IsAuthenticated || sess.Token != newToken {
		t.Errorf("newer session lost: %+v", sess)
	}
}
