// internal/handlers/fee/fee_handler.go
package fee

import (
	"net/http"

	"hostel-portal/internal/domain/fee"
	"hostel-portal/internal/middleware"
	"hostel-portal/internal/pkg/response"
	"hostel-portal/internal/upstream"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type FeeHandler struct {
	api    *upstream.Client
	logger *zap.Logger
}

func NewFeeHandler(api *upstream.Client, logger *zap.Logger) *FeeHandler {
	return &FeeHandler{api: api, logger: logger}
}

// List returns fee records, filtered by the caller's role upstream.
func (h *FeeHandler) List(c *gin.Context) {
	res, err := h.api.Fees(c.Request.Context(), middleware.GetSID(c), c.Request.URL.Query())
	if err != nil {
		response.UpstreamError(c, err)
		return
	}
	response.UpstreamSuccess(c, res)
}

// Get returns one fee record.
func (h *FeeHandler) Get(c *gin.Context) {
	res, err := h.api.Fee(c.Request.Context(), middleware.GetSID(c), c.Param("id"))
	if err != nil {
		response.UpstreamError(c, err)
		return
	}
	response.UpstreamSuccess(c, res)
}

// Create raises a fee against a student.
func (h *FeeHandler) Create(c *gin.Context) {
	var req fee.CreateFeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	res, err := h.api.CreateFee(c.Request.Context(), middleware.GetSID(c), &req)
	if err != nil {
		response.UpstreamError(c, err)
		return
	}
	response.UpstreamSuccess(c, res)
}

// Update edits a fee record.
func (h *FeeHandler) Update(c *gin.Context) {
	var req fee.UpdateFeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	res, err := h.api.UpdateFee(c.Request.Context(), middleware.GetSID(c), c.Param("id"), &req)
	if err != nil {
		response.UpstreamError(c, err)
		return
	}
	response.UpstreamSuccess(c, res)
}

// MarkPaid records an offline payment against a fee.
func (h *FeeHandler) MarkPaid(c *gin.Context) {
	var req fee.MarkPaidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	res, err := h.api.MarkFeePaid(c.Request.Context(), middleware.GetSID(c), c.Param("id"), &req)
	if err != nil {
		response.UpstreamError(c, err)
		return
	}
	response.UpstreamSuccess(c, res)
}

// Delete removes a fee record.
func (h *FeeHandler) Delete(c *gin.Context) {
	res, err := h.api.DeleteFee(c.Request.Context(), middleware.GetSID(c), c.Param("id"))
	if err != nil {
		response.UpstreamError(c, err)
		return
	}
	response.UpstreamSuccess(c, res)
}

// PaymentsSummary returns the warden's collections overview.
func (h *FeeHandler) PaymentsSummary(c *gin.Context) {
	res, err := h.api.PaymentsSummary(c.Request.Context(), middleware.GetSID(c))
	if err != nil {
		response.UpstreamError(c, err)
		return
	}
	response.UpstreamSuccess(c, res)
}

// Pay initiates an online payment for the logged-in student or parent.
func (h *FeeHandler) Pay(c *gin.Context) {
	var req fee.PayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	res, err := h.api.Pay(c.Request.Context(), middleware.GetSID(c), &req)
	if err != nil {
		h.logger.Warn("payment failed", zap.Error(err))
		response.UpstreamError(c, err)
		return
	}
	response.UpstreamSuccess(c, res)
}
