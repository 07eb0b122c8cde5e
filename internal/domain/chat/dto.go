// internal/domain/chat/dto.go
package chat

// SendMessageRequest posts a message into the sender's chat thread
type SendMessageRequest struct {
	Text string `json:"text" binding:"required"`
}
