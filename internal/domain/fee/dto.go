// internal/domain/fee/dto.go
package fee

// CreateFeeRequest raised by the warden against a student
type CreateFeeRequest struct {
	StudentID string  `json:"studentId" binding:"required"`
	Amount    float64 `json:"amount" binding:"required,gt=0"`
	Term      string  `json:"term" binding:"required"`
	DueDate   string  `json:"dueDate,omitempty"`
}

// UpdateFeeRequest partial update
type UpdateFeeRequest struct {
	Amount  float64 `json:"amount,omitempty"`
	Term    string  `json:"term,omitempty"`
	DueDate string  `json:"dueDate,omitempty"`
	Status  string  `json:"status,omitempty"`
}

// MarkPaidRequest closes a fee with an optional receipt reference
type MarkPaidRequest struct {
	ReceiptNumber string `json:"receiptNumber,omitempty"`
}

// PayRequest records a student payment against pending fees
type PayRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
}
