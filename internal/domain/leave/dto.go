// internal/domain/leave/dto.go
package leave

// CreateLeaveRequest for a leave or outing request
type CreateLeaveRequest struct {
	Reason  string `json:"reason" binding:"required"`
	Type    string `json:"type" binding:"required"` // leave or outing
	OutDate string `json:"outDate" binding:"required"`
	InDate  string `json:"inDate" binding:"required"`
	OutTime string `json:"outTime,omitempty"`
	InTime  string `json:"inTime,omitempty"`
}

// UpdateStatusRequest set by the warden
type UpdateStatusRequest struct {
	Status          string `json:"status" binding:"required"`
	RejectionReason string `json:"rejectionReason,omitempty"`
}

// ParentApprovalRequest set by the parent before the warden decides
type ParentApprovalRequest struct {
	Status          string `json:"status" binding:"required"`
	RejectionReason string `json:"rejectionReason,omitempty"`
}
