package alerts

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/alertkit/pkg/logger"
)

// Manager holds the ordered alerts of one request or session.
// All methods are safe for concurrent use; reads return copies.
type Manager struct {
	mu         sync.Mutex
	alerts     []Alert
	now        func() time.Time
	newID      func() string
	renderer   Renderer
	defaults   Options
	defaultTTL time.Duration
	logger     *slog.Logger
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) ManagerOption {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// WithIDGenerator replaces the uuid based identifier generator.
func WithIDGenerator(fn func() string) ManagerOption {
	return func(m *Manager) {
		if fn != nil {
			m.newID = fn
		}
	}
}

// WithRenderer sets the renderer used by Render and RenderAll.
func WithRenderer(r Renderer) ManagerOption {
	return func(m *Manager) {
		m.renderer = r
	}
}

// WithDefaults sets options applied to every new alert before caller options.
func WithDefaults(opts Options) ManagerOption {
	return func(m *Manager) {
		m.defaults = m.defaults.Merge(opts)
	}
}

// WithDefaultTTL expires every new alert after ttl unless the caller overrides it.
func WithDefaultTTL(ttl time.Duration) ManagerOption {
	return func(m *Manager) {
		m.defaultTTL = ttl
	}
}

// WithLogger sets the logger for the Manager.
func WithLogger(l *slog.Logger) ManagerOption {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// NewManager creates an empty alert collection.
func NewManager(opts ...ManagerOption) *Manager {
	m := &Manager{
		now:    time.Now,
		newID:  uuid.NewString,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Entry describes one alert for AddMultiple.
type Entry struct {
	Type    Type    `json:"type"`
	Message string  `json:"message"`
	Title   string  `json:"title,omitempty"`
	Options Options `json:"-"`
}

// New starts a builder bound to the manager. The alert is stored on Commit.
func (m *Manager) New(typ Type, message string) *Builder {
	b := newBuilder(m, m.now, m.newID(), typ, message)
	b.WithOptions(m.defaults)
	if m.defaultTTL > 0 {
		b.ExpiresIn(m.defaultTTL)
	}
	return b
}

// Add stores a new alert and returns its snapshot.
// Options are applied in order; later values win.
func (m *Manager) Add(typ Type, message, title string, opts ...Options) Alert {
	b := m.New(typ, message).WithTitle(title)
	for _, o := range opts {
		b.WithOptions(o)
	}
	return b.Commit()
}

// Success adds a TypeSuccess alert.
func (m *Manager) Success(message, title string, opts ...Options) Alert {
	return m.Add(TypeSuccess, message, title, opts...)
}

// Error adds a TypeError alert.
func (m *Manager) Error(message, title string, opts ...Options) Alert {
	return m.Add(TypeError, message, title, opts...)
}

// Warning adds a TypeWarning alert.
func (m *Manager) Warning(message, title string, opts ...Options) Alert {
	return m.Add(TypeWarning, message, title, opts...)
}

// Info adds a TypeInfo alert.
func (m *Manager) Info(message, title string, opts ...Options) Alert {
	return m.Add(TypeInfo, message, title, opts...)
}

// AddMultiple adds every entry in order. Entries are not validated.
func (m *Manager) AddMultiple(entries []Entry) []Alert {
	out := make([]Alert, 0, len(entries))
	for _, e := range entries {
		out = append(out, m.Add(e.Type, e.Message, e.Title, e.Options))
	}
	return out
}

// AddWithExpiration stores an alert that expires ttl from now.
func (m *Manager) AddWithExpiration(typ Type, message, title string, ttl time.Duration) Alert {
	return m.New(typ, message).WithTitle(title).ExpiresIn(ttl).Commit()
}

// Temporary is an alias for AddWithExpiration.
func (m *Manager) Temporary(typ Type, message, title string, ttl time.Duration) Alert {
	return m.AddWithExpiration(typ, message, title, ttl)
}

// AddWithAutoDismiss stores an alert that the client dismisses after delay.
func (m *Manager) AddWithAutoDismiss(typ Type, message, title string, delay time.Duration) Alert {
	return m.New(typ, message).WithTitle(title).Flash(delay).Commit()
}

// Flash is an alias for AddWithAutoDismiss.
func (m *Manager) Flash(typ Type, message, title string, delay time.Duration) Alert {
	return m.AddWithAutoDismiss(typ, message, title, delay)
}

// append stores a committed alert. Duplicate identifiers are ignored.
func (m *Manager) append(a Alert) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.indexOf(a.ID) >= 0 {
		m.logger.LogAttrs(context.Background(), slog.LevelDebug, "Alert with duplicate id ignored",
			logger.AlertID(a.ID),
		)
		return
	}
	m.alerts = append(m.alerts, a.Clone())
}

// Must be called with lock held.
func (m *Manager) indexOf(id string) int {
	for i := range m.alerts {
		if m.alerts[i].ID == id {
			return i
		}
	}
	return -1
}

// Seed replaces the collection with previously stored alerts.
// Duplicate identifiers keep their first occurrence.
func (m *Manager) Seed(list []Alert) {
	m.mu.Lock()
	defer m.mu.Unlock()

	seen := make(map[string]struct{}, len(list))
	m.alerts = make([]Alert, 0, len(list))
	for _, a := range list {
		if _, dup := seen[a.ID]; dup {
			continue
		}
		seen[a.ID] = struct{}{}
		m.alerts = append(m.alerts, a.Clone())
	}
}

// Alerts returns all alerts in insertion order.
func (m *Manager) Alerts() []Alert {
	m.mu.Lock()
	defer m.mu.Unlock()
	return cloneAll(m.alerts)
}

// Count returns the number of stored alerts, expired ones included.
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.alerts)
}

// HasAlerts reports whether the collection is non-empty.
func (m *Manager) HasAlerts() bool {
	return m.Count() > 0
}

// ByType returns alerts whose type equals typ exactly.
func (m *Manager) ByType(typ Type) []Alert {
	return m.filter(func(a Alert) bool { return a.Type == typ })
}

// First returns the earliest stored alert.
func (m *Manager) First() (Alert, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.alerts) == 0 {
		return Alert{}, false
	}
	return m.alerts[0].Clone(), true
}

// Last returns the most recently stored alert.
func (m *Manager) Last() (Alert, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.alerts) == 0 {
		return Alert{}, false
	}
	return m.alerts[len(m.alerts)-1].Clone(), true
}

// Get returns the alert with the given id.
func (m *Manager) Get(id string) (Alert, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if i := m.indexOf(id); i >= 0 {
		return m.alerts[i].Clone(), true
	}
	return Alert{}, false
}

// RemoveByID removes the matching alert and reports whether one was found.
func (m *Manager) RemoveByID(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.indexOf(id)
	if i < 0 {
		return false
	}
	m.alerts = append(m.alerts[:i], m.alerts[i+1:]...)
	return true
}

// Dismiss marks a stored alert as dismissed.
func (m *Manager) Dismiss(id string) bool {
	return m.touch(id, func(a *Alert, now time.Time) { a.DismissedAt = &now })
}

// MarkRead marks a stored alert as read.
func (m *Manager) MarkRead(id string) bool {
	return m.touch(id, func(a *Alert, now time.Time) { a.ReadAt = &now })
}

func (m *Manager) touch(id string, fn func(a *Alert, now time.Time)) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.indexOf(id)
	if i < 0 {
		return false
	}
	fn(&m.alerts[i], m.now())
	return true
}

// Clear removes every alert.
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.alerts = nil
}

// ClearByType removes alerts of the given type and returns how many were removed.
func (m *Manager) ClearByType(typ Type) int {
	return m.removeWhere(func(a Alert) bool { return a.Type == typ })
}

// Flush returns every alert and empties the collection in one step.
func (m *Manager) Flush() []Alert {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := m.alerts
	m.alerts = nil
	if out == nil {
		return []Alert{}
	}
	return out
}

// Expired returns alerts whose expiry is at or before now. Nothing is removed.
func (m *Manager) Expired() []Alert {
	now := m.now()
	return m.filter(func(a Alert) bool { return a.IsExpired(now) })
}

// AutoDismissible returns alerts flagged for client-side auto-dismiss, expired or not.
func (m *Manager) AutoDismissible() []Alert {
	return m.filter(func(a Alert) bool { return a.AutoDismiss })
}

// CleanupExpired removes expired alerts and returns how many were removed.
// Alerts without expiry are never removed.
func (m *Manager) CleanupExpired() int {
	now := m.now()
	removed := m.removeWhere(func(a Alert) bool { return a.IsExpired(now) })
	if removed > 0 {
		m.logger.LogAttrs(context.Background(), slog.LevelDebug, "Expired alerts removed",
			logger.Count(removed),
		)
	}
	return removed
}

// Render writes one ad-hoc alert without storing it.
func (m *Manager) Render(ctx context.Context, w io.Writer, typ Type, message, title string, opts ...Options) error {
	if m.renderer == nil {
		return ErrNoRenderer
	}
	b := m.New(typ, message).WithTitle(title)
	for _, o := range opts {
		b.WithOptions(o)
	}
	return m.renderer.Render(ctx, w, b.Build())
}

// RenderAll writes every stored alert in insertion order. The collection is left untouched.
func (m *Manager) RenderAll(ctx context.Context, w io.Writer) error {
	if m.renderer == nil {
		return ErrNoRenderer
	}
	for _, a := range m.Alerts() {
		if err := m.renderer.Render(ctx, w, a); err != nil {
			return fmt.Errorf("render alert %s: %w", a.ID, err)
		}
	}
	return nil
}

// Renderer returns the configured renderer, or nil.
func (m *Manager) Renderer() Renderer {
	return m.renderer
}

func (m *Manager) filter(keep func(Alert) bool) []Alert {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Alert, 0)
	for _, a := range m.alerts {
		if keep(a) {
			out = append(out, a.Clone())
		}
	}
	return out
}

func (m *Manager) removeWhere(drop func(Alert) bool) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.alerts[:0]
	removed := 0
	for _, a := range m.alerts {
		if drop(a) {
			removed++
			continue
		}
		kept = append(kept, a)
	}
	clear(m.alerts[len(kept):])
	m.alerts = kept
	return removed
}
