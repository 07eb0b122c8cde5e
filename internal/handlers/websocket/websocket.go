// internal/handlers/websocket/websocket.go
package handlers

import (
	"net/http"
	"time"

	"hostel-portal/internal/middleware"
	"hostel-portal/internal/pkg/response"
	"hostel-portal/internal/pkg/session"
	ws "hostel-portal/internal/websocket"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// The session cookie carries auth, so cross-origin upgrades are
		// harmless to accept here during development.
		return true
	},
}

type WebSocketHandler struct {
	hub      *ws.Hub
	sessions *session.Manager
	logger   *zap.Logger
}

func NewWebSocketHandler(hub *ws.Hub, sessions *session.Manager, logger *zap.Logger) *WebSocketHandler {
	return &WebSocketHandler{
		hub:      hub,
		sessions: sessions,
		logger:   logger,
	}
}

// HandleConnection authenticates the browser session and upgrades it.
func (h *WebSocketHandler) HandleConnection(c *gin.Context) {
	sid := middleware.GetSID(c)
	if sid == "" {
		response.Unauthorized(c, "missing session")
		return
	}

	sess, err := h.sessions.Hydrate(c.Request.Context(), sid)
	if err != nil {
		h.logger.Error("websocket session lookup failed",
			zap.Error(err),
			zap.String("ip", c.ClientIP()),
		)
		response.Error(c, http.StatusInternalServerError, "session lookup failed", err)
		return
	}
	if !sess.IsAuthenticated {
		response.Unauthorized(c, "not logged in")
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed",
			zap.Error(err),
			zap.String("ip", c.ClientIP()),
		)
		return
	}

	client := ws.NewClient(h.hub, conn, sid, sess.Role)
	h.hub.Register <- client

	h.logger.Info("websocket client connected",
		zap.String("sid", sid),
		zap.String("role", string(sess.Role)),
	)

	go client.WritePump()
	go client.ReadPump()
}

// GetStats returns connection statistics for the warden portal.
func (h *WebSocketHandler) GetStats(c *gin.Context) {
	stats := map[string]interface{}{
		"total_connections": h.hub.TotalClients(),
		"timestamp":         time.Now(),
	}

	response.Success(c, http.StatusOK, "WebSocket stats", stats)
}
