// internal/domain/websocket/types.go
package websocket

import (
	"encoding/json"
	"fmt"
	"time"
)

// EventType represents different real-time event types
type EventType string

const (
	// Connection events
	EventTypePing         EventType = "ping"
	EventTypePong         EventType = "pong"
	EventTypeConnected    EventType = "connected"
	EventTypeDisconnected EventType = "disconnected"
	EventTypeError        EventType = "error"

	// Chat events (server -> client)
	EventTypeChatMessage EventType = "chat:message"

	// Location events (server -> client)
	EventTypeLocationUpdate EventType = "location:update"

	// Session events
	EventTypeForceLogout EventType = "session:force_logout"

	// Subscription events
	EventTypeSubscribe   EventType = "subscribe"
	EventTypeUnsubscribe EventType = "unsubscribe"
)

// WSMessage is the universal message format
type WSMessage struct {
	Type      EventType   `json:"type"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// Subscription channels that clients can subscribe to
type ChannelType string

const (
	ChannelChat     ChannelType = "chat"
	ChannelLocation ChannelType = "location"
)

// SubscribeRequest asks for one or more channels
type SubscribeRequest struct {
	Channels []ChannelType `json:"channels"`
}

// UnsubscribeRequest drops one or more channels
type UnsubscribeRequest struct {
	Channels []ChannelType `json:"channels"`
}

// ErrorData payload for error events
type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// ChatMessageData payload broadcast when a chat message goes through the portal
type ChatMessageData struct {
	ChatID string      `json:"chat_id,omitempty"`
	From   string      `json:"from"`
	Text   string      `json:"text"`
	Raw    interface{} `json:"raw,omitempty"`
}

// NewMessage creates a timestamped message
func NewMessage(eventType EventType, data interface{}) *WSMessage {
	return &WSMessage{
		Type:      eventType,
		Data:      data,
		Timestamp: time.Now(),
	}
}

// ParseMessage decodes a raw client frame
func ParseMessage(raw []byte) (*WSMessage, error) {
	var msg WSMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		return nil, fmt.Errorf("invalid message: %w", err)
	}
	return &msg, nil
}

// ToJSON encodes the message for the wire
func (m *WSMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}
