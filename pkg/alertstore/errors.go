package alertstore

import (
	"errors"

	"github.com/dmitrymomot/alertkit/pkg/alerts"
)

var (
	// ErrConflict is returned when an optimistic update keeps losing to concurrent writers.
	ErrConflict = errors.New("alertstore.conflict")

	// ErrSessionNotFound is returned by the session store when the scope has no live session.
	ErrSessionNotFound = errors.New("alertstore.session_not_found")
)

// unavailable wraps a backend error with alerts.ErrStoreUnavailable.
func unavailable(err error) error {
	if err == nil {
		return nil
	}
	return errors.Join(alerts.ErrStoreUnavailable, err)
}
