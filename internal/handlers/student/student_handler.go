// internal/handlers/student/student_handler.go
package student

import (
	"net/http"

	"hostel-portal/internal/domain/student"
	"hostel-portal/internal/middleware"
	"hostel-portal/internal/pkg/response"
	"hostel-portal/internal/upstream"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type StudentHandler struct {
	api    *upstream.Client
	logger *zap.Logger
}

func NewStudentHandler(api *upstream.Client, logger *zap.Logger) *StudentHandler {
	return &StudentHandler{api: api, logger: logger}
}

// Profile returns the logged-in student's own record.
func (h *StudentHandler) Profile(c *gin.Context) {
	res, err := h.api.StudentProfile(c.Request.Context(), middleware.GetSID(c))
	if err != nil {
		response.UpstreamError(c, err)
		return
	}
	response.UpstreamSuccess(c, res)
}

// List returns all students for the warden portal.
func (h *StudentHandler) List(c *gin.Context) {
	res, err := h.api.Students(c.Request.Context(), middleware.GetSID(c))
	if err != nil {
		response.UpstreamError(c, err)
		return
	}
	response.UpstreamSuccess(c, res)
}

// Get returns one student by ID.
func (h *StudentHandler) Get(c *gin.Context) {
	res, err := h.api.Student(c.Request.Context(), middleware.GetSID(c), c.Param("id"))
	if err != nil {
		response.UpstreamError(c, err)
		return
	}
	response.UpstreamSuccess(c, res)
}

// Create registers a new student.
func (h *StudentHandler) Create(c *gin.Context) {
	var req student.CreateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	res, err := h.api.CreateStudent(c.Request.Context(), middleware.GetSID(c), &req)
	if err != nil {
		h.logger.Warn("student creation failed", zap.Error(err))
		response.UpstreamError(c, err)
		return
	}
	response.UpstreamSuccess(c, res)
}

// Update edits a student record.
func (h *StudentHandler) Update(c *gin.Context) {
	var req student.UpdateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	res, err := h.api.UpdateStudent(c.Request.Context(), middleware.GetSID(c), c.Param("id"), &req)
	if err != nil {
		response.UpstreamError(c, err)
		return
	}
	response.UpstreamSuccess(c, res)
}

// Delete removes a student record.
func (h *StudentHandler) Delete(c *gin.Context) {
	res, err := h.api.DeleteStudent(c.Request.Context(), middleware.GetSID(c), c.Param("id"))
	if err != nil {
		response.UpstreamError(c, err)
		return
	}
	response.UpstreamSuccess(c, res)
}

// RegisterParent links a parent account to a student.
func (h *StudentHandler) RegisterParent(c *gin.Context) {
	var req student.RegisterParentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	res, err := h.api.RegisterParent(c.Request.Context(), middleware.GetSID(c), &req)
	if err != nil {
		response.UpstreamError(c, err)
		return
	}
	response.UpstreamSuccess(c, res)
}

// MyEntryExit returns the student's own gate log history.
func (h *StudentHandler) MyEntryExit(c *gin.Context) {
	res, err := h.api.MyEntryExitLogs(c.Request.Context(), middleware.GetSID(c))
	if err != nil {
		response.UpstreamError(c, err)
		return
	}
	response.UpstreamSuccess(c, res)
}

// EntryExitLogs returns gate logs for the warden, with optional filters.
func (h *StudentHandler) EntryExitLogs(c *gin.Context) {
	res, err := h.api.EntryExitLogs(c.Request.Context(), middleware.GetSID(c), c.Request.URL.Query())
	if err != nil {
		response.UpstreamError(c, err)
		return
	}
	response.UpstreamSuccess(c, res)
}
