// internal/handlers/chat/chat_handler.go
package chat

import (
	"net/http"

	"hostel-portal/internal/domain/chat"
	wstypes "hostel-portal/internal/domain/websocket"
	"hostel-portal/internal/middleware"
	"hostel-portal/internal/pkg/response"
	"hostel-portal/internal/upstream"
	ws "hostel-portal/internal/websocket"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ChatHandler proxies the parent-warden chat and mirrors sent messages onto
// the websocket chat channel so open portals update without refreshing.
type ChatHandler struct {
	api    *upstream.Client
	hub    *ws.Hub
	logger *zap.Logger
}

func NewChatHandler(api *upstream.Client, hub *ws.Hub, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{api: api, hub: hub, logger: logger}
}

// Mine returns the caller's chat thread with the warden.
func (h *ChatHandler) Mine(c *gin.Context) {
	res, err := h.api.MyChat(c.Request.Context(), middleware.GetSID(c))
	if err != nil {
		response.UpstreamError(c, err)
		return
	}
	response.UpstreamSuccess(c, res)
}

// Send posts a message to the caller's chat thread.
func (h *ChatHandler) Send(c *gin.Context) {
	var req chat.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	sid := middleware.GetSID(c)

	res, err := h.api.SendChatMessage(c.Request.Context(), sid, &req)
	if err != nil {
		response.UpstreamError(c, err)
		return
	}

	h.broadcast(c, "", req.Text)
	response.UpstreamSuccess(c, res)
}

// List returns every chat thread for the warden portal.
func (h *ChatHandler) List(c *gin.Context) {
	res, err := h.api.WardenChats(c.Request.Context(), middleware.GetSID(c))
	if err != nil {
		response.UpstreamError(c, err)
		return
	}
	response.UpstreamSuccess(c, res)
}

// Get returns one chat thread for the warden portal.
func (h *ChatHandler) Get(c *gin.Context) {
	res, err := h.api.WardenChat(c.Request.Context(), middleware.GetSID(c), c.Param("chatId"))
	if err != nil {
		response.UpstreamError(c, err)
		return
	}
	response.UpstreamSuccess(c, res)
}

// SendAsWarden posts a warden reply into a chat thread.
func (h *ChatHandler) SendAsWarden(c *gin.Context) {
	var req chat.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	chatID := c.Param("chatId")

	res, err := h.api.WardenSendMessage(c.Request.Context(), middleware.GetSID(c), chatID, &req)
	if err != nil {
		response.UpstreamError(c, err)
		return
	}

	h.broadcast(c, chatID, req.Text)
	response.UpstreamSuccess(c, res)
}

func (h *ChatHandler) broadcast(c *gin.Context, chatID, text string) {
	from := ""
	if sess, ok := middleware.GetSession(c); ok {
		from = string(sess.Role)
	}
	h.hub.BroadcastChatMessage(&wstypes.ChatMessageData{
		ChatID: chatID,
		From:   from,
		Text:   text,
	})
}
