package websocket

import (
	"sync"
	"testing"

	"hostel-portal/internal/domain/portal"
	wstypes "hostel-portal/internal/domain/websocket"
)

type countRecorder struct {
	mu     sync.Mutex
	counts map[wstypes.ChannelType][]int
}

func newCountRecorder() *countRecorder {
	return &countRecorder{counts: make(map[wstypes.ChannelType][]int)}
}

func (r *countRecorder) listener(channel wstypes.ChannelType, count int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counts[channel] = append(r.counts[channel], count)
}

func (r *countRecorder) last(channel wstypes.ChannelType) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	seq := r.counts[channel]
	if len(seq) == 0 {
		return 0
	}
	return seq[len(seq)-1]
}

func TestSubscribePermissions(t *testing.T) {
	hub := NewHub()

	tests := []struct {
		role    portal.Role
		channel wstypes.ChannelType
		want    bool
	}{
		{portal.RoleStudent, wstypes.ChannelChat, true},
		{portal.RoleParent, wstypes.ChannelChat, true},
		{portal.RoleWarden, wstypes.ChannelChat, true},
		{portal.RoleStudent, wstypes.ChannelLocation, false},
		{portal.RoleParent, wstypes.ChannelLocation, true},
		{portal.RoleWarden, wstypes.ChannelLocation, true},
		{portal.RoleWarden, wstypes.ChannelType("audit"), false},
	}

	for _, tt := range tests {
		client := NewClient(hub, nil, "sid-"+string(tt.role), tt.role)
		if got := client.Subscribe(tt.channel); got != tt.want {
			t.Errorf("%s subscribing to %s = %v, want %v", tt.role, tt.channel, got, tt.want)
		}
	}
}

func TestSubscriberCountsDriveListener(t *testing.T) {
	hub := NewHub()
	rec := newCountRecorder()
	hub.SetSubscriberListener(rec.listener)

	warden := NewClient(hub, nil, "warden-sid", portal.RoleWarden)
	parent := NewClient(hub, nil, "parent-sid", portal.RoleParent)

	warden.Subscribe(wstypes.ChannelLocation)
	if rec.last(wstypes.ChannelLocation) != 1 {
		t.Errorf("count after first subscriber = %d, want 1", rec.last(wstypes.ChannelLocation))
	}

	// Subscribing twice does not double count.
	warden.Subscribe(wstypes.ChannelLocation)
	if got := hub.SubscriberCount(wstypes.ChannelLocation); got != 1 {
		t.Errorf("count after duplicate subscribe = %d, want 1", got)
	}

	parent.Subscribe(wstypes.ChannelLocation)
	if got := hub.SubscriberCount(wstypes.ChannelLocation); got != 2 {
		t.Errorf("count = %d, want 2", got)
	}

	parent.Unsubscribe(wstypes.ChannelLocation)
	warden.Unsubscribe(wstypes.ChannelLocation)
	if rec.last(wstypes.ChannelLocation) != 0 {
		t.Errorf("count after all left = %d, want 0", rec.last(wstypes.ChannelLocation))
	}

	// Unsubscribing when not subscribed must not go negative.
	warden.Unsubscribe(wstypes.ChannelLocation)
	if got := hub.SubscriberCount(wstypes.ChannelLocation); got != 0 {
		t.Errorf("count = %d, want 0", got)
	}
}

func TestSubscribersListsSessionsOnce(t *testing.T) {
	hub := NewHub()

	a := NewClient(hub, nil, "sid-a", portal.RoleWarden)
	b := NewClient(hub, nil, "sid-a", portal.RoleWarden) // second tab, same session
	c := NewClient(hub, nil, "sid-b", portal.RoleParent)

	hub.clients["sid-a"] = map[*Client]bool{a: true, b: true}
	hub.clients["sid-b"] = map[*Client]bool{c: true}

	a.Subscribe(wstypes.ChannelLocation)
	b.Subscribe(wstypes.ChannelLocation)
	c.Subscribe(wstypes.ChannelLocation)

	subs := hub.Subscribers(wstypes.ChannelLocation)
	if len(subs) != 2 {
		t.Fatalf("subscribers = %v, want one entry per session", subs)
	}
	seen := map[string]bool{}
	for _, s := range subs {
		seen[s.SID] = true
	}
	if !seen["sid-a"] || !seen["sid-b"] {
		t.Errorf("subscribers = %v", subs)
	}
}

func TestDrainSubscriptions(t *testing.T) {
	hub := NewHub()
	client := NewClient(hub, nil, "sid", portal.RoleWarden)

	client.Subscribe(wstypes.ChannelChat)
	client.Subscribe(wstypes.ChannelLocation)

	channels := client.drainSubscriptions()
	if len(channels) != 2 {
		t.Errorf("drained %v, want both channels", channels)
	}
	if client.IsSubscribed(wstypes.ChannelChat) || client.IsSubscribed(wstypes.ChannelLocation) {
		t.Error("subscriptions survived drain")
	}
}
