// internal/service/location/tracker.go
package location

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	wstypes "hostel-portal/internal/domain/websocket"
	ws "hostel-portal/internal/websocket"

	"go.uber.org/zap"
)

// FetchFunc retrieves the location payload for one subscribed session.
type FetchFunc func(ctx context.Context, sub ws.SubscriberInfo) (interface{}, error)

// SubscriberHub is the slice of the websocket hub the tracker needs.
type SubscriberHub interface {
	Subscribers(channel wstypes.ChannelType) []ws.SubscriberInfo
	BroadcastLocationTo(sid string, data interface{})
}

// Tracker polls upstream location data at a fixed interval while at least one
// websocket client is subscribed to the location channel. Ticks that arrive
// while a previous poll is still unsettled are dropped, so a slow upstream
// never stacks requests.
type Tracker struct {
	hub      SubscriberHub
	fetch    FetchFunc
	interval time.Duration
	logger   *zap.Logger

	inFlight atomic.Bool

	mu     sync.Mutex
	cancel context.CancelFunc
}

func NewTracker(hub SubscriberHub, fetch FetchFunc, interval time.Duration, logger *zap.Logger) *Tracker {
	return &Tracker{
		hub:      hub,
		fetch:    fetch,
		interval: interval,
		logger:   logger,
	}
}

// OnSubscriberChange is wired as the hub's subscriber listener. The poll loop
// starts with the first location subscriber and stops with the last.
func (t *Tracker) OnSubscriberChange(channel wstypes.ChannelType, count int) {
	if channel != wstypes.ChannelLocation {
		return
	}
	if count > 0 {
		t.Start()
	} else {
		t.Stop()
	}
}

// Start launches the poll loop. Safe to call repeatedly.
func (t *Tracker) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	t.cancel = cancel

	t.logger.Info("location tracker started", zap.Duration("interval", t.interval))
	go t.run(ctx)
}

// Stop halts the poll loop. Safe to call repeatedly.
func (t *Tracker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.cancel == nil {
		return
	}
	t.cancel()
	t.cancel = nil
	t.logger.Info("location tracker stopped")
}

// Running reports whether the poll loop is active.
func (t *Tracker) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cancel != nil
}

func (t *Tracker) run(ctx context.Context) {
	// First poll fires immediately so new subscribers are not left waiting
	// a full interval for data.
	go t.poll(ctx)

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			go t.poll(ctx)
		}
	}
}

// poll fetches and broadcasts location data for every subscriber. At most one
// poll runs at a time; overlapping ticks are discarded.
func (t *Tracker) poll(ctx context.Context) {
	if !t.inFlight.CompareAndSwap(false, true) {
		t.logger.Debug("location poll skipped, previous poll still in flight")
		return
	}
	defer t.inFlight.Store(false)

	subs := t.hub.Subscribers(wstypes.ChannelLocation)
	for _, sub := range subs {
		data, err := t.fetch(ctx, sub)
		if err != nil {
			t.logger.Warn("location poll failed",
				zap.String("sid", sub.SID),
				zap.Error(err),
			)
			continue
		}
		t.hub.BroadcastLocationTo(sub.SID, data)
	}
}
