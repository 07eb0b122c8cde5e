// internal/handlers/leave/leave_handler.go
package leave

import (
	"net/http"

	"hostel-portal/internal/domain/leave"
	"hostel-portal/internal/middleware"
	"hostel-portal/internal/pkg/response"
	"hostel-portal/internal/upstream"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type LeaveHandler struct {
	api    *upstream.Client
	logger *zap.Logger
}

func NewLeaveHandler(api *upstream.Client, logger *zap.Logger) *LeaveHandler {
	return &LeaveHandler{api: api, logger: logger}
}

// Create files a leave application.
func (h *LeaveHandler) Create(c *gin.Context) {
	var req leave.CreateLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	res, err := h.api.CreateLeave(c.Request.Context(), middleware.GetSID(c), &req)
	if err != nil {
		response.UpstreamError(c, err)
		return
	}
	response.UpstreamSuccess(c, res)
}

// Cancel withdraws a pending leave application.
func (h *LeaveHandler) Cancel(c *gin.Context) {
	res, err := h.api.CancelLeave(c.Request.Context(), middleware.GetSID(c), c.Param("id"))
	if err != nil {
		response.UpstreamError(c, err)
		return
	}
	response.UpstreamSuccess(c, res)
}

// List returns leave applications for the warden, with optional filters.
func (h *LeaveHandler) List(c *gin.Context) {
	res, err := h.api.Leaves(c.Request.Context(), middleware.GetSID(c), c.Request.URL.Query())
	if err != nil {
		response.UpstreamError(c, err)
		return
	}
	response.UpstreamSuccess(c, res)
}

// Mine returns the logged-in student's own leave applications.
func (h *LeaveHandler) Mine(c *gin.Context) {
	res, err := h.api.MyLeaves(c.Request.Context(), middleware.GetSID(c))
	if err != nil {
		response.UpstreamError(c, err)
		return
	}
	response.UpstreamSuccess(c, res)
}

// UpdateStatus approves or rejects a leave as the warden.
func (h *LeaveHandler) UpdateStatus(c *gin.Context) {
	var req leave.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	res, err := h.api.UpdateLeaveStatus(c.Request.Context(), middleware.GetSID(c), c.Param("id"), &req)
	if err != nil {
		response.UpstreamError(c, err)
		return
	}
	response.UpstreamSuccess(c, res)
}

// ParentApproval records a parent's consent on a leave application.
func (h *LeaveHandler) ParentApproval(c *gin.Context) {
	var req leave.ParentApprovalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	res, err := h.api.ParentLeaveApproval(c.Request.Context(), middleware.GetSID(c), c.Param("id"), &req)
	if err != nil {
		response.UpstreamError(c, err)
		return
	}
	response.UpstreamSuccess(c, res)
}

// ExportOutingReport streams the warden's outing report download.
func (h *LeaveHandler) ExportOutingReport(c *gin.Context) {
	blob, filename, err := h.api.ExportOutingReport(c.Request.Context(), middleware.GetSID(c))
	if err != nil {
		response.UpstreamError(c, err)
		return
	}

	if filename == "" {
		filename = "outing-report.xlsx"
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/octet-stream", blob)
}
