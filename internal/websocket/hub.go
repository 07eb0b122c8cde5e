// internal/websocket/hub.go
package websocket

import (
	"context"
	"log"
	"sync"

	"hostel-portal/internal/domain/portal"
	wstypes "hostel-portal/internal/domain/websocket"
)

// SubscriberListener is notified when the number of subscribers on a channel
// crosses zero in either direction. count is the new total for the channel.
type SubscriberListener func(channel wstypes.ChannelType, count int)

type Hub struct {
	// Registered clients by session ID
	clients map[string]map[*Client]bool
	mu      sync.RWMutex

	// Registration/unregistration
	Register   chan *Client
	unregister chan *Client

	// Broadcasting
	broadcast chan *BroadcastMessage

	// Per-channel subscriber counts, used to drive pollers
	subCounts   map[wstypes.ChannelType]int
	subListener SubscriberListener
}

type BroadcastMessage struct {
	// SIDs limits delivery to specific sessions; nil means all subscribers.
	SIDs    []string
	Role    portal.Role
	Channel wstypes.ChannelType
	Message *wstypes.WSMessage
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]bool),
		Register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *BroadcastMessage, 256),
		subCounts:  make(map[wstypes.ChannelType]int),
	}
}

// SetSubscriberListener installs the callback invoked on subscription changes.
// Must be called before Run.
func (h *Hub) SetSubscriberListener(l SubscriberListener) {
	h.subListener = l
}

func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.shutdown()
			return

		case client := <-h.Register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case msg := <-h.broadcast:
			h.deliver(msg)
		}
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.clients[client.sid] == nil {
		h.clients[client.sid] = make(map[*Client]bool)
	}
	h.clients[client.sid][client] = true

	log.Printf("ws client connected: sid=%s role=%s total=%d",
		client.sid, client.role, h.totalClients())

	client.SendMessage(wstypes.NewMessage(wstypes.EventTypeConnected, map[string]interface{}{
		"role": client.role,
	}))
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if clients, ok := h.clients[client.sid]; ok {
		if _, exists := clients[client]; exists {
			delete(clients, client)

			// Release the client's channel subscriptions
			for _, channel := range client.drainSubscriptions() {
				h.subCountChangedLocked(channel, -1)
			}
			client.Close()

			if len(clients) == 0 {
				delete(h.clients, client.sid)
			}

			log.Printf("ws client disconnected: sid=%s total=%d",
				client.sid, h.totalClients())
		}
	}
}

// subscriptionChanged is called by clients when they gain or lose a channel.
func (h *Hub) subscriptionChanged(channel wstypes.ChannelType, delta int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.subCountChangedLocked(channel, delta)
}

func (h *Hub) subCountChangedLocked(channel wstypes.ChannelType, delta int) {
	h.subCounts[channel] += delta
	if h.subCounts[channel] < 0 {
		h.subCounts[channel] = 0
	}
	if h.subListener != nil {
		h.subListener(channel, h.subCounts[channel])
	}
}

func (h *Hub) deliver(msg *BroadcastMessage) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if msg.SIDs == nil {
		for _, clients := range h.clients {
			for client := range clients {
				if h.matches(client, msg) {
					client.SendMessage(msg.Message)
				}
			}
		}
		return
	}

	for _, sid := range msg.SIDs {
		if clients, ok := h.clients[sid]; ok {
			for client := range clients {
				if h.matches(client, msg) {
					client.SendMessage(msg.Message)
				}
			}
		}
	}
}

func (h *Hub) matches(client *Client, msg *BroadcastMessage) bool {
	if !client.IsSubscribed(msg.Channel) {
		return false
	}
	if msg.Role != "" && client.role != msg.Role {
		return false
	}
	return true
}

// Public methods for broadcasting

// BroadcastLocationUpdate pushes a location snapshot to location subscribers.
// Location data is restricted to warden and parent portals at subscribe time.
func (h *Hub) BroadcastLocationUpdate(data interface{}) {
	h.broadcast <- &BroadcastMessage{
		Channel: wstypes.ChannelLocation,
		Message: wstypes.NewMessage(wstypes.EventTypeLocationUpdate, data),
	}
}

// BroadcastLocationTo pushes a location snapshot to one session only.
func (h *Hub) BroadcastLocationTo(sid string, data interface{}) {
	h.broadcast <- &BroadcastMessage{
		SIDs:    []string{sid},
		Channel: wstypes.ChannelLocation,
		Message: wstypes.NewMessage(wstypes.EventTypeLocationUpdate, data),
	}
}

// BroadcastChatMessage notifies chat subscribers that a message went through.
func (h *Hub) BroadcastChatMessage(data *wstypes.ChatMessageData) {
	h.broadcast <- &BroadcastMessage{
		Channel: wstypes.ChannelChat,
		Message: wstypes.NewMessage(wstypes.EventTypeChatMessage, data),
	}
}

// ForceLogout tells every connection on a session that it has been ended.
func (h *Hub) ForceLogout(sid string, reason string) {
	h.mu.RLock()
	clients, ok := h.clients[sid]
	if !ok {
		h.mu.RUnlock()
		return
	}
	targets := make([]*Client, 0, len(clients))
	for client := range clients {
		targets = append(targets, client)
	}
	h.mu.RUnlock()

	msg := wstypes.NewMessage(wstypes.EventTypeForceLogout, map[string]interface{}{
		"reason": reason,
	})
	for _, client := range targets {
		client.SendMessage(msg)
	}
}

// SubscriberInfo identifies a session listening on a channel.
type SubscriberInfo struct {
	SID  string
	Role portal.Role
}

// Subscribers lists the sessions currently listening on a channel. A session
// with several connections appears once.
func (h *Hub) Subscribers(channel wstypes.ChannelType) []SubscriberInfo {
	h.mu.RLock()
	defer h.mu.RUnlock()

	var subs []SubscriberInfo
	for sid, clients := range h.clients {
		for client := range clients {
			if client.IsSubscribed(channel) {
				subs = append(subs, SubscriberInfo{SID: sid, Role: client.role})
				break
			}
		}
	}
	return subs
}

// SubscriberCount reports how many connections listen on a channel.
func (h *Hub) SubscriberCount(channel wstypes.ChannelType) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.subCounts[channel]
}

func (h *Hub) TotalClients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.totalClients()
}

func (h *Hub) totalClients() int {
	total := 0
	for _, clients := range h.clients {
		total += len(clients)
	}
	return total
}

func (h *Hub) shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, clients := range h.clients {
		for client := range clients {
			client.Close()
		}
	}
	h.clients = make(map[string]map[*Client]bool)
	h.subCounts = make(map[wstypes.ChannelType]int)
}
