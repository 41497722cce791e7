package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/alertkit/pkg/cookie"
	"github.com/dmitrymomot/alertkit/pkg/logger"
)

// Manager creates, resolves and rotates sessions.
type Manager struct {
	store         Store
	transport     Transport
	config        Config
	cookies       *cookie.Manager
	cookieOptions []cookie.Option
	logger        *slog.Logger

	activity  chan activityUpdate
	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

type activityUpdate struct {
	token string
	at    time.Time
}

// New creates a Manager. Without WithTransport the token travels in a header
// when Config.HeaderName is set and in an encrypted cookie otherwise, which
// requires WithCookieManager.
func New(opts ...Option) (*Manager, error) {
	m := &Manager{
		config:   DefaultConfig(),
		logger:   slog.Default(),
		activity: make(chan activityUpdate, 1000),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(m)
	}

	if m.store == nil {
		m.store = NewMemoryStore(m.config.CleanupInterval)
	}
	if m.transport == nil {
		switch {
		case m.config.HeaderName != "":
			m.transport = NewHeaderTransport(m.config.HeaderName)
		case m.cookies != nil:
			m.transport = NewCookieTransport(m.cookies, m.config.CookieName, m.config.SecureCookies, m.cookieOptions...)
		default:
			return nil, ErrNoCookieManager
		}
	}

	m.wg.Add(1)
	go m.activityWorker()
	return m, nil
}

// Ensure returns the current session, creating and issuing a new one when the
// request carries none or an expired one.
func (m *Manager) Ensure(ctx context.Context, w http.ResponseWriter, r *http.Request) (*Session, error) {
	session, err := m.Get(ctx, r)
	if err == nil {
		if time.Since(session.LastActivityAt) >= m.config.ActivityUpdateThreshold {
			m.queueActivity(session.Token)
		}
		return session, nil
	}

	session, err = m.create(ctx, nil)
	if err != nil {
		return nil, err
	}
	idle, _ := m.config.timeouts(false)
	if err := m.transport.SetToken(w, session.Token, idle); err != nil {
		_ = m.store.Delete(ctx, session.Token)
		return nil, err
	}
	return session, nil
}

// Get resolves the session from the request token.
func (m *Manager) Get(ctx context.Context, r *http.Request) (*Session, error) {
	token, err := m.transport.GetToken(r)
	if err != nil {
		return nil, err
	}
	session, err := m.store.Get(ctx, token)
	if err != nil {
		return nil, err
	}
	if session.IsExpired() {
		return nil, ErrSessionExpired
	}
	return session, nil
}

// Authenticate binds userID to the session and rotates its token. Session
// data, including queued alerts, moves to the new token.
func (m *Manager) Authenticate(ctx context.Context, w http.ResponseWriter, r *http.Request, userID uuid.UUID) (*Session, error) {
	session, err := m.Get(ctx, r)
	if err != nil {
		if session, err = m.create(ctx, &userID); err != nil {
			return nil, err
		}
	} else {
		token, err := generateToken()
		if err != nil {
			return nil, err
		}
		_ = m.store.Delete(ctx, session.Token)

		idle, max := m.config.timeouts(true)
		session.UserID = &userID
		session.Token = token
		session.ExpiresAt = expiry(session.CreatedAt, time.Now(), idle, max)
		session.Touch()
		if err := m.store.Create(ctx, session); err != nil {
			return nil, err
		}
	}

	idle, _ := m.config.timeouts(true)
	if err := m.transport.SetToken(w, session.Token, idle); err != nil {
		return nil, err
	}
	return session, nil
}

// Destroy deletes the session and clears the token on the client.
func (m *Manager) Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	if token, err := m.transport.GetToken(r); err == nil {
		_ = m.store.Delete(ctx, token)
	}
	return m.transport.ClearToken(w)
}

// Close stops the activity worker after draining queued updates.
func (m *Manager) Close() error {
	m.closeOnce.Do(func() { close(m.done) })
	m.wg.Wait()
	return nil
}

func (m *Manager) create(ctx context.Context, userID *uuid.UUID) (*Session, error) {
	token, err := generateToken()
	if err != nil {
		return nil, err
	}
	idle, max := m.config.timeouts(userID != nil)
	now := time.Now()
	session := NewSession(token, userID, expiry(now, now, idle, max).Sub(now))
	if err := m.store.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (m *Manager) queueActivity(token string) {
	select {
	case m.activity <- activityUpdate{token: token, at: time.Now()}:
	default:
	}
}

func (m *Manager) activityWorker() {
	defer m.wg.Done()
	for {
		select {
		case u := <-m.activity:
			m.touch(u)
		case <-m.done:
			for {
				select {
				case u := <-m.activity:
					m.touch(u)
				default:
					return
				}
			}
		}
	}
}

func (m *Manager) touch(u activityUpdate) {
	if err := m.store.UpdateActivity(context.Background(), u.token, u.at); err != nil && !errors.Is(err, ErrSessionNotFound) {
		m.logger.LogAttrs(context.Background(), slog.LevelWarn, "Failed to update session activity",
			logger.Error(err),
		)
	}
}

// expiry is the earlier of the idle deadline and the max lifetime.
func expiry(createdAt, now time.Time, idle, max time.Duration) time.Time {
	idleAt := now.Add(idle)
	if maxAt := createdAt.Add(max); maxAt.Before(idleAt) {
		return maxAt
	}
	return idleAt
}

func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", errors.Join(ErrTokenGeneration, err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
