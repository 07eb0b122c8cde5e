// internal/middleware/gate_middleware.go
package middleware

import (
	"net/http"

	"hostel-portal/internal/domain/portal"
	"hostel-portal/internal/pkg/authz"
	"hostel-portal/internal/pkg/session"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const sessionContextKey = "portal_session"

// GateMiddleware evaluates the authorization gate in front of every protected
// route group.
type GateMiddleware struct {
	sessions *session.Manager
	logger   *zap.Logger
}

func NewGateMiddleware(sessions *session.Manager, logger *zap.Logger) *GateMiddleware {
	return &GateMiddleware{
		sessions: sessions,
		logger:   logger,
	}
}

// Require hydrates the session and acts on the gate's decision: render falls
// through to the handler, everything else becomes a redirect. Authorization
// failure is never an error response here.
func (m *GateMiddleware) Require(required portal.Role) gin.HandlerFunc {
	if !required.Valid() {
		// Route-table misconfiguration, caught while routes are mounted.
		panic("gate middleware: unknown required role " + string(required))
	}

	return func(c *gin.Context) {
		sid := GetSID(c)

		sess, err := m.sessions.Hydrate(c.Request.Context(), sid)
		if err != nil {
			m.logger.Error("session hydrate failed", zap.String("sid", sid), zap.Error(err))
			sess = session.LoggedOut()
		}

		decision := authz.Authorize(sess, required)
		if decision != authz.Render {
			c.Redirect(http.StatusFound, authz.RedirectTarget(decision, required))
			c.Abort()
			return
		}

		c.Set(sessionContextKey, sess)
		c.Next()
	}
}

// RequireLogin is Require without the temporary-password step. The password
// change routes themselves mount behind it, otherwise a user with a
// temporary password could never reach the page that clears it.
func (m *GateMiddleware) RequireLogin(required portal.Role) gin.HandlerFunc {
	if !required.Valid() {
		panic("gate middleware: unknown required role " + string(required))
	}

	return func(c *gin.Context) {
		sid := GetSID(c)

		sess, err := m.sessions.Hydrate(c.Request.Context(), sid)
		if err != nil {
			m.logger.Error("session hydrate failed", zap.String("sid", sid), zap.Error(err))
			sess = session.LoggedOut()
		}

		decision := authz.Authorize(sess, required)
		if decision == authz.RedirectChangePassword {
			decision = authz.Render
		}
		if decision != authz.Render {
			c.Redirect(http.StatusFound, authz.RedirectTarget(decision, required))
			c.Abort()
			return
		}

		c.Set(sessionContextKey, sess)
		c.Next()
	}
}

// GetSession returns the session stored by Require. The bool is false on
// routes outside a gated group.
func GetSession(c *gin.Context) (session.Session, bool) {
	v, exists := c.Get(sessionContextKey)
	if !exists {
		return session.LoggedOut(), false
	}
	sess, ok := v.(session.Session)
	return sess, ok
}
