// internal/domain/complaint/dto.go
package complaint

// CreateComplaintRequest filed by a student
type CreateComplaintRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
	Category    string `json:"category" binding:"required"`
	Priority    string `json:"priority,omitempty"`
}

// UpdateStatusRequest set by the warden
type UpdateStatusRequest struct {
	Status     string `json:"status" binding:"required"`
	Resolution string `json:"resolution,omitempty"`
}
