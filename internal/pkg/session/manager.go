// internal/pkg/session/manager.go
package session

import (
	"context"
	"fmt"

	"hostel-portal/internal/domain/portal"
	"hostel-portal/internal/pkg/token"

	"go.uber.org/zap"
)

// Manager owns all session mutations. Every component reads and writes
// session state through it; nothing else touches the storage keys directly.
type Manager struct {
	storage Storage
	logger  *zap.Logger
}

func NewManager(storage Storage, logger *zap.Logger) *Manager {
	return &Manager{
		storage: storage,
		logger:  logger,
	}
}

// Login persists the bearer token and its derived role for the client. The
// role is the explicit hint when one is given, otherwise it is derived from
// the token's claims, with STUDENT as the catch-all for anything that is not
// WARDEN or PARENT.
func (m *Manager) Login(ctx context.Context, sid, bearer string, roleHint portal.Role) (Session, error) {
	role := roleHint
	if !role.Valid() {
		role = portal.RoleStudent
		if claims, ok := token.Decode(bearer); ok {
			role = portal.RoleFromClaim(claims.Role)
		}
	}

	if err := m.storage.SetPair(ctx, sid, bearer, string(role)); err != nil {
		return LoggedOut(), fmt.Errorf("failed to persist session: %w", err)
	}

	return Session{Token: bearer, Role: role, IsAuthenticated: true}, nil
}

// Logout clears the persisted token and role. Calling it on an already
// logged-out session is a no-op.
func (m *Manager) Logout(ctx context.Context, sid string) error {
	if err := m.storage.DeletePair(ctx, sid); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// Hydrate reads the persisted session for the client. A half-written pair
// (token without role or role without token) is treated as logged out and the
// remnant is cleared so the pairing invariant holds after every operation.
func (m *Manager) Hydrate(ctx context.Context, sid string) (Session, error) {
	bearer, storedRole, err := m.storage.GetPair(ctx, sid)
	if err != nil {
		return LoggedOut(), fmt.Errorf("failed to read session: %w", err)
	}

	if bearer == "" && storedRole == "" {
		return LoggedOut(), nil
	}

	if bearer == "" || storedRole == "" {
		m.logger.Warn("repairing malformed session pairing",
			zap.String("sid", sid),
			zap.Bool("has_token", bearer != ""),
		)
		if err := m.storage.DeletePair(ctx, sid); err != nil {
			return LoggedOut(), fmt.Errorf("failed to repair session: %w", err)
		}
		return LoggedOut(), nil
	}

	role, ok := portal.ParseRole(storedRole)
	if !ok {
		// Stored role is corrupt; re-derive from the token the same way
		// Login does and rewrite the pair.
		role = portal.RoleStudent
		if claims, decoded := token.Decode(bearer); decoded {
			role = portal.RoleFromClaim(claims.Role)
		}
		if err := m.storage.SetPair(ctx, sid, bearer, string(role)); err != nil {
			return LoggedOut(), fmt.Errorf("failed to rewrite session role: %w", err)
		}
	}

	return Session{Token: bearer, Role: role, IsAuthenticated: true}, nil
}

// ClearIfTokenMatches tears the session down only when the stored token still
// equals the token the failing request was issued with. A 403 raced by a
// fresh login must not clobber the newer session.
func (m *Manager) ClearIfTokenMatches(ctx context.Context, sid, failedToken string) (bool, error) {
	current, _, err := m.storage.GetPair(ctx, sid)
	if err != nil {
		return false, fmt.Errorf("failed to read session: %w", err)
	}
	if current == "" || current != failedToken {
		return false, nil
	}
	if err := m.storage.DeletePair(ctx, sid); err != nil {
		return false, fmt.Errorf("failed to clear session: %w", err)
	}
	return true, nil
}
