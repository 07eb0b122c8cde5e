// internal/handlers/auth/auth_handler.go
package auth

import (
	"net/http"

	"hostel-portal/internal/domain/auth"
	"hostel-portal/internal/domain/portal"
	"hostel-portal/internal/middleware"
	"hostel-portal/internal/pkg/response"
	"hostel-portal/internal/pkg/session"
	"hostel-portal/internal/pkg/token"
	gatelogService "hostel-portal/internal/service/gatelog"
	"hostel-portal/internal/upstream"
	ws "hostel-portal/internal/websocket"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthHandler struct {
	api      *upstream.Client
	sessions *session.Manager
	gatelog  *gatelogService.Service
	hub      *ws.Hub
	logger   *zap.Logger
}

func NewAuthHandler(api *upstream.Client, sessions *session.Manager, gatelog *gatelogService.Service, hub *ws.Hub, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		api:      api,
		sessions: sessions,
		gatelog:  gatelog,
		hub:      hub,
		logger:   logger,
	}
}

// ========== Login ==========

// Login returns the handler for one role portal's login endpoint. The portal
// the user logged in through is used as the role hint when the token itself
// does not carry a usable role claim.
func (h *AuthHandler) Login(roleHint portal.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req auth.LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, http.StatusBadRequest, "invalid request", err)
			return
		}

		sid := middleware.GetSID(c)

		res, err := h.api.Login(c.Request.Context(), sid, &req)
		if err != nil {
			h.logger.Warn("login failed",
				zap.String("email", req.Email),
				zap.String("portal", string(roleHint)),
				zap.Error(err),
			)
			response.UpstreamError(c, err)
			return
		}

		if res.Token == "" {
			response.Error(c, http.StatusBadGateway, "Invalid response from server", nil)
			return
		}

		sess, err := h.sessions.Login(c.Request.Context(), sid, res.Token, roleHint)
		if err != nil {
			h.logger.Error("failed to persist session", zap.Error(err))
			response.Error(c, http.StatusInternalServerError, "failed to start session", err)
			return
		}

		if sess.Role == portal.RoleWarden {
			h.gatelog.SetSyncSession(sid)
		}

		h.logger.Info("user logged in",
			zap.String("email", req.Email),
			zap.String("role", string(sess.Role)),
		)

		response.LoginSuccess(c, res.Message, res.User, res.Token, res.RequiresPasswordChange)
	}
}

// WardenSignup proxies warden registration, then logs the new warden in.
func (h *AuthHandler) WardenSignup(c *gin.Context) {
	var req auth.WardenSignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	sid := middleware.GetSID(c)

	res, err := h.api.WardenSignup(c.Request.Context(), sid, &req)
	if err != nil {
		h.logger.Warn("warden signup failed",
			zap.String("email", req.Email),
			zap.Error(err),
		)
		response.UpstreamError(c, err)
		return
	}

	if res.Token != "" {
		if _, err := h.sessions.Login(c.Request.Context(), sid, res.Token, portal.RoleWarden); err != nil {
			h.logger.Error("failed to persist session", zap.Error(err))
			response.Error(c, http.StatusInternalServerError, "failed to start session", err)
			return
		}
		h.gatelog.SetSyncSession(sid)
	}

	response.LoginSuccess(c, res.Message, res.User, res.Token, res.RequiresPasswordChange)
}

// ========== Logout ==========

// Logout clears the stored session pair. Always succeeds from the browser's
// point of view even when nothing was stored.
func (h *AuthHandler) Logout(c *gin.Context) {
	sid := middleware.GetSID(c)

	sess, err := h.sessions.Hydrate(c.Request.Context(), sid)
	if err == nil && sess.Role == portal.RoleWarden {
		h.gatelog.ClearSyncSession(sid)
	}

	if err := h.sessions.Logout(c.Request.Context(), sid); err != nil {
		h.logger.Error("logout failed", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "logout failed", err)
		return
	}

	h.hub.ForceLogout(sid, "logged_out")

	response.Success(c, http.StatusOK, "logout successful", nil)
}

// ========== Password Management ==========

// ChangePassword proxies the password change and refreshes the stored token
// when the upstream issues a new one.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req auth.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	sid := middleware.GetSID(c)

	res, err := h.api.ChangePassword(c.Request.Context(), sid, &req)
	if err != nil {
		response.UpstreamError(c, err)
		return
	}

	if res.Token != "" {
		var roleHint portal.Role
		if sess, hErr := h.sessions.Hydrate(c.Request.Context(), sid); hErr == nil {
			roleHint = sess.Role
		}
		if _, err := h.sessions.Login(c.Request.Context(), sid, res.Token, roleHint); err != nil {
			h.logger.Error("failed to refresh session token", zap.Error(err))
		}
	}

	response.LoginSuccess(c, res.Message, res.User, res.Token, res.RequiresPasswordChange)
}

// ========== Session ==========

// Me reports the state of the browser's session so pages can render the
// right portal without another upstream round trip.
func (h *AuthHandler) Me(c *gin.Context) {
	sid := middleware.GetSID(c)

	sess, err := h.sessions.Hydrate(c.Request.Context(), sid)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "session lookup failed", err)
		return
	}

	info := gin.H{
		"authenticated": sess.IsAuthenticated,
	}
	if sess.IsAuthenticated {
		info["role"] = sess.Role
		info["dashboard"] = sess.Role.DashboardPath()
		if claims, ok := token.Decode(sess.Token); ok {
			info["name"] = claims.Name
			info["requiresPasswordChange"] = claims.IsTempPassword && sess.Role.EnforcesTempPassword()
		}
	}

	response.Success(c, http.StatusOK, "session", info)
}

// LoginPage serves the login entry point for one role portal. A user who is
// already logged in with the matching role is sent straight to the dashboard
// instead of seeing the login form again.
func (h *AuthHandler) LoginPage(roleHint portal.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid := middleware.GetSID(c)

		sess, err := h.sessions.Hydrate(c.Request.Context(), sid)
		if err == nil && sess.IsAuthenticated && sess.Role == roleHint {
			c.Redirect(http.StatusFound, roleHint.DashboardPath())
			return
		}

		page := gin.H{
			"role":  roleHint,
			"login": roleHint.LoginPath(),
		}
		if roleHint == portal.RoleWarden {
			page["signup"] = "/warden/signup"
		}
		response.Success(c, http.StatusOK, "login", page)
	}
}

// Fallback handles "/" and any unknown path: authenticated sessions land on
// their dashboard, everyone else on the portal chooser. Both targets are
// registered routes, so the fallback can never redirect to itself.
func (h *AuthHandler) Fallback(c *gin.Context) {
	sid := middleware.GetSID(c)

	sess, err := h.sessions.Hydrate(c.Request.Context(), sid)
	if err == nil && sess.IsAuthenticated {
		c.Redirect(http.StatusFound, sess.Role.DashboardPath())
		return
	}
	c.Redirect(http.StatusFound, "/select-role")
}

// SelectRole lists the role portals with their login entry points.
func (h *AuthHandler) SelectRole(c *gin.Context) {
	roles := []portal.Role{portal.RoleStudent, portal.RoleParent, portal.RoleWarden}

	options := make([]gin.H, 0, len(roles))
	for _, role := range roles {
		options = append(options, gin.H{
			"role":  role,
			"login": role.LoginPath(),
		})
	}

	response.Success(c, http.StatusOK, "choose a portal", gin.H{"portals": options})
}
