// internal/pkg/session/storage.go
package session

import "context"

// Storage keys. The pair is owned by the Manager: both keys are written and
// removed together, never individually.
const (
	TokenKey = "user_token"
	RoleKey  = "user_role"
)

// Storage is the durable backing for session state, scoped by client session
// id. Implementations must keep the token/role pair atomic: after SetPair or
// DeletePair returns, either both values are present or neither is.
type Storage interface {
	SetPair(ctx context.Context, sid, token, role string) error
	GetPair(ctx context.Context, sid string) (token, role string, err error)
	DeletePair(ctx context.Context, sid string) error
}
