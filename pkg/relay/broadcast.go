package relay

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/alertkit/pkg/alerts"
	"github.com/dmitrymomot/alertkit/pkg/broadcast"
	"github.com/dmitrymomot/alertkit/pkg/cache"
	"github.com/dmitrymomot/alertkit/pkg/logger"
)

// Event is what push subscribers receive.
type Event struct {
	Scope  string         `json:"scope"`
	Alerts []alerts.Alert `json:"alerts"`
}

// Broadcast pushes alerts to in-process subscribers of a scope, for example
// SSE or WebSocket connections. One memory broadcaster is kept per scope in a
// bounded LRU; evicted broadcasters are closed along with their subscribers.
type Broadcast struct {
	scopes          *cache.LRUCache[string, broadcast.Broadcaster[Event]]
	bufferSize      int
	maxBroadcasters int
	logger          *slog.Logger
}

// BroadcastOption configures a Broadcast relay.
type BroadcastOption func(*Broadcast)

// WithBroadcastLogger sets the logger for the Broadcast relay.
func WithBroadcastLogger(l *slog.Logger) BroadcastOption {
	return func(b *Broadcast) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithMaxBroadcasters caps the number of scopes with a live broadcaster. Default 10000.
func WithMaxBroadcasters(limit int) BroadcastOption {
	return func(b *Broadcast) {
		if limit > 0 {
			b.maxBroadcasters = limit
		}
	}
}

// NewBroadcast creates a push relay. bufferSize is the per-subscriber channel buffer.
func NewBroadcast(bufferSize int, opts ...BroadcastOption) *Broadcast {
	b := &Broadcast{
		bufferSize:      bufferSize,
		maxBroadcasters: 10000,
		logger:          slog.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}

	b.scopes = cache.NewLRUCache[string, broadcast.Broadcaster[Event]](b.maxBroadcasters)
	b.scopes.SetEvictCallback(func(scope string, bc broadcast.Broadcaster[Event]) {
		if err := bc.Close(); err != nil {
			b.logger.LogAttrs(context.Background(), slog.LevelError, "Failed to close evicted broadcaster",
				logger.Scope(scope),
				logger.Error(err),
			)
		}
	})
	return b
}

func (b *Broadcast) broadcaster(scope string) broadcast.Broadcaster[Event] {
	var bc broadcast.Broadcaster[Event]
	b.scopes.Update(scope, func(current broadcast.Broadcaster[Event], found bool) (broadcast.Broadcaster[Event], bool) {
		if !found {
			current = broadcast.NewMemoryBroadcaster[Event](b.bufferSize)
		}
		bc = current
		return current, true
	})
	return bc
}

// Deliver publishes one event with all alerts. Slow subscribers miss it.
func (b *Broadcast) Deliver(ctx context.Context, scope string, list []alerts.Alert) error {
	if len(list) == 0 {
		return nil
	}
	return b.broadcaster(scope).Broadcast(ctx, broadcast.Message[Event]{
		Data: Event{Scope: scope, Alerts: alerts.CloneList(list)},
	})
}

// Subscribe returns a subscriber for the scope. It is closed when ctx is done.
func (b *Broadcast) Subscribe(ctx context.Context, scope string) broadcast.Subscriber[Event] {
	return b.broadcaster(scope).Subscribe(ctx)
}

// Close closes every broadcaster and their subscribers.
func (b *Broadcast) Close() error {
	b.scopes.Clear()
	return nil
}
