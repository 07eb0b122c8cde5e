// internal/handlers/parent/parent_handler.go
package parent

import (
	"hostel-portal/internal/middleware"
	"hostel-portal/internal/pkg/response"
	"hostel-portal/internal/upstream"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ParentHandler serves the parent portal's read-only views of the linked
// child's record.
type ParentHandler struct {
	api    *upstream.Client
	logger *zap.Logger
}

func NewParentHandler(api *upstream.Client, logger *zap.Logger) *ParentHandler {
	return &ParentHandler{api: api, logger: logger}
}

func (h *ParentHandler) Child(c *gin.Context) {
	res, err := h.api.Child(c.Request.Context(), middleware.GetSID(c))
	if err != nil {
		response.UpstreamError(c, err)
		return
	}
	response.UpstreamSuccess(c, res)
}

func (h *ParentHandler) ChildRoom(c *gin.Context) {
	res, err := h.api.ChildRoom(c.Request.Context(), middleware.GetSID(c))
	if err != nil {
		response.UpstreamError(c, err)
		return
	}
	response.UpstreamSuccess(c, res)
}

func (h *ParentHandler) ChildFees(c *gin.Context) {
	res, err := h.api.ChildFees(c.Request.Context(), middleware.GetSID(c))
	if err != nil {
		response.UpstreamError(c, err)
		return
	}
	response.UpstreamSuccess(c, res)
}

func (h *ParentHandler) ChildEntryExit(c *gin.Context) {
	res, err := h.api.ChildEntryExit(c.Request.Context(), middleware.GetSID(c), c.Request.URL.Query())
	if err != nil {
		response.UpstreamError(c, err)
		return
	}
	response.UpstreamSuccess(c, res)
}

func (h *ParentHandler) ChildLeaves(c *gin.Context) {
	res, err := h.api.ChildLeaves(c.Request.Context(), middleware.GetSID(c))
	if err != nil {
		response.UpstreamError(c, err)
		return
	}
	response.UpstreamSuccess(c, res)
}

func (h *ParentHandler) ChildStatus(c *gin.Context) {
	res, err := h.api.ChildStatus(c.Request.Context(), middleware.GetSID(c))
	if err != nil {
		response.UpstreamError(c, err)
		return
	}
	response.UpstreamSuccess(c, res)
}

func (h *ParentHandler) ChildLocation(c *gin.Context) {
	res, err := h.api.ChildLocation(c.Request.Context(), middleware.GetSID(c))
	if err != nil {
		response.UpstreamError(c, err)
		return
	}
	response.UpstreamSuccess(c, res)
}
