package relay

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/alertkit/pkg/alerts"
	"github.com/dmitrymomot/alertkit/pkg/logger"
)

// Relay forwards freshly created alerts of a scope to an out-of-band channel
// (push stream, message bus, email).
type Relay interface {
	Deliver(ctx context.Context, scope string, list []alerts.Alert) error
}

// Func adapts a function to the Relay interface.
type Func func(ctx context.Context, scope string, list []alerts.Alert) error

func (f Func) Deliver(ctx context.Context, scope string, list []alerts.Alert) error {
	return f(ctx, scope, list)
}

// Multi fans alerts out to several relays.
type Multi struct {
	relays []Relay
	logger *slog.Logger
}

// MultiOption configures a Multi relay.
type MultiOption func(*Multi)

// WithMultiLogger sets the logger for the Multi relay.
func WithMultiLogger(l *slog.Logger) MultiOption {
	return func(m *Multi) {
		if l != nil {
			m.logger = l
		}
	}
}

// NewMulti creates a fan-out relay. Nil relays are skipped.
func NewMulti(relays []Relay, opts ...MultiOption) *Multi {
	m := &Multi{
		relays: make([]Relay, 0, len(relays)),
		logger: slog.Default(),
	}
	for _, r := range relays {
		if r != nil {
			m.relays = append(m.relays, r)
		}
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Deliver calls every relay. Failures are logged and never returned, so one
// broken channel does not block the others.
func (m *Multi) Deliver(ctx context.Context, scope string, list []alerts.Alert) error {
	if len(list) == 0 {
		return nil
	}
	for i, r := range m.relays {
		if err := r.Deliver(ctx, scope, list); err != nil {
			m.logger.LogAttrs(ctx, slog.LevelError, "Failed to relay alerts",
				logger.Scope(scope),
				logger.Count(len(list)),
				slog.Int("relay_index", i),
				logger.Error(err),
			)
		}
	}
	return nil
}

// NoOp drops everything. Useful for tests or when no relay is configured.
type NoOp struct{}

func (NoOp) Deliver(ctx context.Context, scope string, list []alerts.Alert) error {
	return nil
}
