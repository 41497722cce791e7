package alertshttp

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/alertkit/pkg/alerts"
	"github.com/dmitrymomot/alertkit/pkg/cookie"
	"github.com/dmitrymomot/alertkit/pkg/logger"
)

// Persister carries the alert collection of a client between requests.
type Persister interface {
	// Load returns the pending alerts of the request.
	Load(w http.ResponseWriter, r *http.Request) ([]alerts.Alert, error)

	// Save writes the final collection. It runs before response headers are sent.
	Save(w http.ResponseWriter, r *http.Request, list []alerts.Alert) error

	// Scope identifies the client for relays. ErrNoScope disables relaying.
	Scope(r *http.Request) (string, error)
}

// StorePersister keeps alerts in an alerts.Store keyed by a request scope.
type StorePersister struct {
	Store     alerts.Store
	ScopeFunc ScopeFunc
}

// NewStorePersister creates a store backed persister.
func NewStorePersister(store alerts.Store, scope ScopeFunc) *StorePersister {
	return &StorePersister{Store: store, ScopeFunc: scope}
}

func (p *StorePersister) Scope(r *http.Request) (string, error) {
	if p.ScopeFunc == nil {
		return "", ErrNoScope
	}
	return p.ScopeFunc(r)
}

// Load returns an empty list for requests without scope.
func (p *StorePersister) Load(w http.ResponseWriter, r *http.Request) ([]alerts.Alert, error) {
	scope, err := p.Scope(r)
	if errors.Is(err, ErrNoScope) {
		return []alerts.Alert{}, nil
	}
	if err != nil {
		return nil, err
	}
	return p.Store.Load(r.Context(), scope)
}

// Save drops the alerts of requests without scope.
func (p *StorePersister) Save(w http.ResponseWriter, r *http.Request, list []alerts.Alert) error {
	scope, err := p.Scope(r)
	if errors.Is(err, ErrNoScope) {
		return nil
	}
	if err != nil {
		return err
	}
	if len(list) == 0 {
		return p.Store.Clear(r.Context(), scope)
	}
	return p.Store.Replace(r.Context(), scope, list)
}

// DefaultCookieName is the flash cookie key used by CookiePersister.
const DefaultCookieName = "alerts"

// CookiePersister keeps alerts in an encrypted flash cookie. The cookie is
// deleted when read and written again only when alerts remain, so it suits
// small collections (browsers cap cookies at about 4KB). When the collection
// outgrows the cookie the oldest alerts are dropped.
type CookiePersister struct {
	Cookies   *cookie.Manager
	Name      string
	ScopeFunc ScopeFunc
	Logger    *slog.Logger
}

// CookiePersisterOption configures a CookiePersister.
type CookiePersisterOption func(*CookiePersister)

// WithCookieLogger sets the logger used to report dropped alerts.
func WithCookieLogger(l *slog.Logger) CookiePersisterOption {
	return func(p *CookiePersister) {
		if l != nil {
			p.Logger = l
		}
	}
}

// NewCookiePersister creates a cookie backed persister.
// An empty name falls back to DefaultCookieName.
func NewCookiePersister(cookies *cookie.Manager, name string, opts ...CookiePersisterOption) *CookiePersister {
	if name == "" {
		name = DefaultCookieName
	}
	p := &CookiePersister{Cookies: cookies, Name: name, Logger: slog.Default()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *CookiePersister) Scope(r *http.Request) (string, error) {
	if p.ScopeFunc == nil {
		return "", ErrNoScope
	}
	return p.ScopeFunc(r)
}

// Load treats a missing cookie as an empty collection. A tampered or
// unreadable cookie is reported together with an empty collection.
func (p *CookiePersister) Load(w http.ResponseWriter, r *http.Request) ([]alerts.Alert, error) {
	var list []alerts.Alert
	err := p.Cookies.GetFlash(w, r, p.Name, &list)
	if errors.Is(err, cookie.ErrCookieNotFound) {
		return []alerts.Alert{}, nil
	}
	if err != nil {
		return []alerts.Alert{}, errors.Join(alerts.ErrInvalidPayload, fmt.Errorf("read flash cookie: %w", err))
	}
	return alerts.Dedupe(list), nil
}

// Save keeps the newest alerts that fit into the cookie. It fails only when
// not even the newest alert fits.
func (p *CookiePersister) Save(w http.ResponseWriter, r *http.Request, list []alerts.Alert) error {
	if len(list) == 0 {
		return nil
	}

	var err error
	for dropped := range len(list) {
		err = p.Cookies.SetFlash(w, p.Name, list[dropped:])
		if errors.Is(err, cookie.ErrValueTooLarge) {
			continue
		}
		if err == nil && dropped > 0 {
			log := p.Logger
			if log == nil {
				log = slog.Default()
			}
			log.LogAttrs(r.Context(), slog.LevelWarn, "Oldest alerts dropped to fit flash cookie",
				slog.String("cookie", p.Name),
				logger.Count(dropped),
			)
		}
		return err
	}
	return err
}
