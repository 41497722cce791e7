package alertstore

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrymomot/alertkit/pkg/alerts"
	"github.com/dmitrymomot/alertkit/pkg/session"
)

// SessionDataKey is the session data key holding the encoded alert list.
const SessionDataKey = "flash_alerts"

// Session keeps alerts inside server-side session data. The scope is the session token.
// Read-modify-write cycles are serialized per store instance.
type Session struct {
	store session.Store
	mu    sync.Mutex
}

// NewSession creates a store on top of a session store.
func NewSession(store session.Store) *Session {
	return &Session{store: store}
}

func (s *Session) session(ctx context.Context, token string) (*session.Session, error) {
	sess, err := s.store.Get(ctx, token)
	if errors.Is(err, session.ErrSessionNotFound) || errors.Is(err, session.ErrSessionExpired) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, unavailable(err)
	}
	return sess, nil
}

func decodeSessionAlerts(sess *session.Session) ([]alerts.Alert, error) {
	raw, ok := sess.GetString(SessionDataKey)
	if !ok {
		return []alerts.Alert{}, nil
	}
	return alerts.Unmarshal([]byte(raw))
}

// Load returns an empty list when the session is gone.
func (s *Session) Load(ctx context.Context, scope string) ([]alerts.Alert, error) {
	sess, err := s.session(ctx, scope)
	if errors.Is(err, ErrSessionNotFound) {
		return []alerts.Alert{}, nil
	}
	if err != nil {
		return nil, err
	}
	return decodeSessionAlerts(sess)
}

func (s *Session) Append(ctx context.Context, scope string, a alerts.Alert) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(ctx, scope)
	if err != nil {
		return err
	}
	list, err := decodeSessionAlerts(sess)
	if err != nil {
		return err
	}
	list, added := alerts.AppendUnique(list, a)
	if !added {
		return nil
	}
	return s.write(ctx, sess, list)
}

func (s *Session) Replace(ctx context.Context, scope string, list []alerts.Alert) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(ctx, scope)
	if err != nil {
		return err
	}
	return s.write(ctx, sess, alerts.Dedupe(list))
}

// Clear is a no-op for missing sessions.
func (s *Session) Clear(ctx context.Context, scope string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(ctx, scope)
	if errors.Is(err, ErrSessionNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	return s.write(ctx, sess, nil)
}

func (s *Session) write(ctx context.Context, sess *session.Session, list []alerts.Alert) error {
	if len(list) == 0 {
		sess.Delete(SessionDataKey)
	} else {
		payload, err := alerts.Marshal(list)
		if err != nil {
			return err
		}
		sess.Set(SessionDataKey, string(payload))
	}
	return unavailable(s.store.Update(ctx, sess))
}
