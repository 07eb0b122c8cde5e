// internal/handlers/complaint/complaint_handler.go
package complaint

import (
	"net/http"

	"hostel-portal/internal/domain/complaint"
	"hostel-portal/internal/middleware"
	"hostel-portal/internal/pkg/response"
	"hostel-portal/internal/upstream"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ComplaintHandler struct {
	api    *upstream.Client
	logger *zap.Logger
}

func NewComplaintHandler(api *upstream.Client, logger *zap.Logger) *ComplaintHandler {
	return &ComplaintHandler{api: api, logger: logger}
}

// Create files a new complaint for the logged-in student.
func (h *ComplaintHandler) Create(c *gin.Context) {
	var req complaint.CreateComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	res, err := h.api.CreateComplaint(c.Request.Context(), middleware.GetSID(c), &req)
	if err != nil {
		response.UpstreamError(c, err)
		return
	}
	response.UpstreamSuccess(c, res)
}

// List returns all complaints for the warden portal.
func (h *ComplaintHandler) List(c *gin.Context) {
	res, err := h.api.Complaints(c.Request.Context(), middleware.GetSID(c))
	if err != nil {
		response.UpstreamError(c, err)
		return
	}
	response.UpstreamSuccess(c, res)
}

// Mine returns the logged-in student's own complaints.
func (h *ComplaintHandler) Mine(c *gin.Context) {
	res, err := h.api.MyComplaints(c.Request.Context(), middleware.GetSID(c))
	if err != nil {
		response.UpstreamError(c, err)
		return
	}
	response.UpstreamSuccess(c, res)
}

// UpdateStatus moves a complaint through its lifecycle.
func (h *ComplaintHandler) UpdateStatus(c *gin.Context) {
	var req complaint.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	res, err := h.api.UpdateComplaintStatus(c.Request.Context(), middleware.GetSID(c), c.Param("id"), &req)
	if err != nil {
		response.UpstreamError(c, err)
		return
	}
	response.UpstreamSuccess(c, res)
}
