// internal/handlers/gatelog/gatelog_handler.go
package gatelog

import (
	"net/http"
	"strconv"
	"strings"

	"hostel-portal/internal/domain/gatelog"
	xerrors "hostel-portal/internal/pkg/errors"
	"hostel-portal/internal/pkg/response"
	gatelogService "hostel-portal/internal/service/gatelog"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GatelogHandler exposes the local scan journal: the scan endpoint used by
// gate devices and the journal views used by the warden portal.
type GatelogHandler struct {
	service *gatelogService.Service
	logger  *zap.Logger
}

func NewGatelogHandler(service *gatelogService.Service, logger *zap.Logger) *GatelogHandler {
	return &GatelogHandler{service: service, logger: logger}
}

// Scan journals one entry/exit scan from a gate device.
func (h *GatelogHandler) Scan(c *gin.Context) {
	var req gatelog.ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	scan, err := h.service.RecordScan(c.Request.Context(), &req)
	if err != nil {
		if xerrors.Is(err, xerrors.ErrInvalidInput) {
			response.ValidationError(c, err.Error(), nil)
			return
		}
		h.logger.Error("scan journaling failed", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "failed to record scan", err)
		return
	}

	response.Success(c, http.StatusCreated, "scan recorded", scan)
}

// List returns journaled scans for the warden security view.
func (h *GatelogHandler) List(c *gin.Context) {
	filters := &gatelog.ListFilters{
		StudentID: c.Query("studentId"),
		Direction: c.Query("direction"),
		Unsynced:  c.Query("unsynced") == "true",
	}
	if tags := c.Query("tags"); tags != "" {
		filters.Tags = strings.Split(tags, ",")
	}
	if limit := c.Query("limit"); limit != "" {
		if n, err := strconv.Atoi(limit); err == nil {
			filters.Limit = n
		}
	}

	logs, err := h.service.List(c.Request.Context(), filters)
	if err != nil {
		h.logger.Error("scan journal query failed", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "failed to load scan journal", err)
		return
	}

	response.Success(c, http.StatusOK, "scan journal", gin.H{"scans": logs})
}

// Backlog reports how many scans still wait for the sync worker.
func (h *GatelogHandler) Backlog(c *gin.Context) {
	count, err := h.service.Backlog(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to count backlog", err)
		return
	}

	response.Success(c, http.StatusOK, "sync backlog", gin.H{"pending": count})
}
