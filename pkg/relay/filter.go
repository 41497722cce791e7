package relay

import (
	"context"
	"slices"

	"github.com/dmitrymomot/alertkit/pkg/alerts"
)

// Predicate decides whether an alert is forwarded.
type Predicate func(a alerts.Alert) bool

// Filter forwards only the alerts matching every predicate.
type Filter struct {
	next  Relay
	preds []Predicate
}

// NewFilter wraps next with the given predicates.
func NewFilter(next Relay, preds ...Predicate) *Filter {
	return &Filter{next: next, preds: preds}
}

func (f *Filter) Deliver(ctx context.Context, scope string, list []alerts.Alert) error {
	kept := make([]alerts.Alert, 0, len(list))
	for _, a := range list {
		if f.match(a) {
			kept = append(kept, a)
		}
	}
	if len(kept) == 0 {
		return nil
	}
	return f.next.Deliver(ctx, scope, kept)
}

func (f *Filter) match(a alerts.Alert) bool {
	for _, p := range f.preds {
		if !p(a) {
			return false
		}
	}
	return true
}

// MinPriority keeps alerts whose priority is at least min.
func MinPriority(min int) Predicate {
	return func(a alerts.Alert) bool {
		return a.Priority >= min
	}
}

// OfTypes keeps alerts of the listed types.
func OfTypes(types ...alerts.Type) Predicate {
	return func(a alerts.Alert) bool {
		return slices.Contains(types, a.Type)
	}
}

// OfKinds keeps alerts of the listed kinds.
func OfKinds(kinds ...alerts.Kind) Predicate {
	return func(a alerts.Alert) bool {
		return slices.Contains(kinds, a.Kind)
	}
}
