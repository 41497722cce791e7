package alertshttp

import (
	"context"

	"github.com/dmitrymomot/alertkit/pkg/alerts"
)

type managerContextKey struct{}

// WithManager adds an alert manager to the context.
func WithManager(ctx context.Context, m *alerts.Manager) context.Context {
	return context.WithValue(ctx, managerContextKey{}, m)
}

// FromContext retrieves the request alert manager from the context.
func FromContext(ctx context.Context) (*alerts.Manager, bool) {
	m, ok := ctx.Value(managerContextKey{}).(*alerts.Manager)
	return m, ok && m != nil
}

// MustFromContext retrieves the request alert manager or panics.
func MustFromContext(ctx context.Context) *alerts.Manager {
	m, ok := FromContext(ctx)
	if !ok {
		panic("alertshttp: manager not found in context")
	}
	return m
}
