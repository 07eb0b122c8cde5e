// internal/handlers/location/location_handler.go
package location

import (
	"net/http"

	"hostel-portal/internal/domain/location"
	"hostel-portal/internal/middleware"
	"hostel-portal/internal/pkg/response"
	"hostel-portal/internal/upstream"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type LocationHandler struct {
	api    *upstream.Client
	logger *zap.Logger
}

func NewLocationHandler(api *upstream.Client, logger *zap.Logger) *LocationHandler {
	return &LocationHandler{api: api, logger: logger}
}

// Toggle flips location sharing for the logged-in student.
func (h *LocationHandler) Toggle(c *gin.Context) {
	res, err := h.api.ToggleLocation(c.Request.Context(), middleware.GetSID(c))
	if err != nil {
		response.UpstreamError(c, err)
		return
	}
	response.UpstreamSuccess(c, res)
}

// Update stores a position report from the student's device.
func (h *LocationHandler) Update(c *gin.Context) {
	var req location.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	res, err := h.api.UpdateLocation(c.Request.Context(), middleware.GetSID(c), &req)
	if err != nil {
		response.UpstreamError(c, err)
		return
	}
	response.UpstreamSuccess(c, res)
}

// Status reports the student's own sharing state.
func (h *LocationHandler) Status(c *gin.Context) {
	res, err := h.api.MyLocationStatus(c.Request.Context(), middleware.GetSID(c))
	if err != nil {
		response.UpstreamError(c, err)
		return
	}
	response.UpstreamSuccess(c, res)
}

// Student returns one student's last known position for the warden.
func (h *LocationHandler) Student(c *gin.Context) {
	res, err := h.api.StudentLocation(c.Request.Context(), middleware.GetSID(c), c.Param("id"))
	if err != nil {
		response.UpstreamError(c, err)
		return
	}
	response.UpstreamSuccess(c, res)
}

// Students returns the warden's overview of all sharing students.
func (h *LocationHandler) Students(c *gin.Context) {
	res, err := h.api.StudentLocations(c.Request.Context(), middleware.GetSID(c))
	if err != nil {
		response.UpstreamError(c, err)
		return
	}
	response.UpstreamSuccess(c, res)
}
