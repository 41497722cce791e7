package alerts

import (
	"context"
	"fmt"
)

// Store persists alert lists between requests, keyed by an opaque scope
// such as a session token or user id.
// Implementations must keep insertion order and must not store two alerts
// with the same id in one scope: Append of a known id is a no-op.
type Store interface {
	// Load returns the alerts of a scope, or an empty slice.
	Load(ctx context.Context, scope string) ([]Alert, error)

	// Append adds one alert to the end of a scope.
	Append(ctx context.Context, scope string, alert Alert) error

	// Replace overwrites the scope with the given alerts.
	Replace(ctx context.Context, scope string, alerts []Alert) error

	// Clear removes every alert of a scope.
	Clear(ctx context.Context, scope string) error
}

// LoadManager creates a manager seeded with the alerts stored for scope.
func LoadManager(ctx context.Context, store Store, scope string, opts ...ManagerOption) (*Manager, error) {
	list, err := store.Load(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("load alerts: %w", err)
	}
	m := NewManager(opts...)
	m.Seed(list)
	return m, nil
}

// Save writes the manager's current alerts back to the store.
// An empty manager clears the scope.
func Save(ctx context.Context, store Store, scope string, m *Manager) error {
	list := m.Alerts()
	if len(list) == 0 {
		return store.Clear(ctx, scope)
	}
	return store.Replace(ctx, scope, list)
}

// Push appends alerts to a scope outside of a request, for example from a background job.
func Push(ctx context.Context, store Store, scope string, list ...Alert) error {
	for _, a := range list {
		if err := store.Append(ctx, scope, a); err != nil {
			return fmt.Errorf("push alert %s: %w", a.ID, err)
		}
	}
	return nil
}

// AppendUnique appends a to list unless an alert with the same id is present.
// Store adapters use it to keep ids unique.
func AppendUnique(list []Alert, a Alert) ([]Alert, bool) {
	for _, existing := range list {
		if existing.ID == a.ID {
			return list, false
		}
	}
	return append(list, a), true
}

// Dedupe drops repeated ids, keeping the first occurrence.
func Dedupe(list []Alert) []Alert {
	seen := make(map[string]struct{}, len(list))
	out := make([]Alert, 0, len(list))
	for _, a := range list {
		if _, ok := seen[a.ID]; ok {
			continue
		}
		seen[a.ID] = struct{}{}
		out = append(out, a)
	}
	return out
}
