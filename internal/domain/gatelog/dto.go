// internal/domain/gatelog/dto.go
package gatelog

// ScanRequest posted by a gate device
type ScanRequest struct {
	StudentID  string   `json:"studentId" binding:"required"`
	Direction  string   `json:"direction" binding:"required"` // entry or exit
	Method     string   `json:"method,omitempty"`
	DeviceName string   `json:"deviceName,omitempty"`
	Tags       []string `json:"tags,omitempty"`
}

// ListFilters for querying the local journal
type ListFilters struct {
	StudentID string
	Direction string
	Unsynced  bool
	Tags      []string
	Limit     int
}
