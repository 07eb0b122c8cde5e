// internal/domain/location/dto.go
package location

// UpdateRequest is one device coordinate sample
type UpdateRequest struct {
	Lat      float64 `json:"lat" binding:"required"`
	Lng      float64 `json:"lng" binding:"required"`
	Accuracy float64 `json:"accuracy,omitempty"`
}
