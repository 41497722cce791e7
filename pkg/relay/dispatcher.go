package relay

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/alertkit/pkg/alerts"
	"github.com/dmitrymomot/alertkit/pkg/logger"
)

// Dispatcher queues alerts for a scope from outside a request, for example a
// background job: the alerts are stored first so the next page shows them,
// then relayed best effort.
type Dispatcher struct {
	store  alerts.Store
	relay  Relay
	logger *slog.Logger
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithDispatcherLogger sets the logger for the Dispatcher.
func WithDispatcherLogger(l *slog.Logger) DispatcherOption {
	return func(d *Dispatcher) {
		if l != nil {
			d.logger = l
		}
	}
}

// NewDispatcher creates a dispatcher. A nil relay means store only.
func NewDispatcher(store alerts.Store, relay Relay, opts ...DispatcherOption) *Dispatcher {
	if relay == nil {
		relay = NoOp{}
	}
	d := &Dispatcher{
		store:  store,
		relay:  relay,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Publish stores the alerts of a scope and relays them.
// A store failure is returned; a relay failure is only logged.
func (d *Dispatcher) Publish(ctx context.Context, scope string, list ...alerts.Alert) error {
	if len(list) == 0 {
		return nil
	}
	if err := alerts.Push(ctx, d.store, scope, list...); err != nil {
		return fmt.Errorf("store alerts: %w", err)
	}
	if err := d.relay.Deliver(ctx, scope, list); err != nil {
		d.logger.LogAttrs(ctx, slog.LevelWarn, "Failed to relay alerts, but they were stored successfully",
			logger.Scope(scope),
			logger.Count(len(list)),
			logger.Error(err),
		)
	}
	return nil
}

// Send builds one alert and publishes it.
func (d *Dispatcher) Send(ctx context.Context, scope string, typ alerts.Type, message, title string, opts ...alerts.Options) (alerts.Alert, error) {
	b := alerts.NewBuilder(typ, message).WithTitle(title)
	for _, o := range opts {
		b.WithOptions(o)
	}
	a := b.Build()
	return a, d.Publish(ctx, scope, a)
}
