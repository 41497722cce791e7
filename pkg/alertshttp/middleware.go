package alertshttp

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/alertkit/pkg/alerts"
	"github.com/dmitrymomot/alertkit/pkg/logger"
	"github.com/dmitrymomot/alertkit/pkg/relay"
	"github.com/dmitrymomot/alertkit/pkg/requestid"
)

type middleware struct {
	persister   Persister
	relay       relay.Relay
	managerOpts []alerts.ManagerOption
	logger      *slog.Logger
}

// Option configures the middleware.
type Option func(*middleware)

// WithLogger sets the logger for the middleware.
func WithLogger(l *slog.Logger) Option {
	return func(m *middleware) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithRelay forwards alerts created during a request and still pending when
// the response is committed.
func WithRelay(r relay.Relay) Option {
	return func(m *middleware) {
		m.relay = r
	}
}

// WithManagerOptions configures the per-request managers.
func WithManagerOptions(opts ...alerts.ManagerOption) Option {
	return func(m *middleware) {
		m.managerOpts = append(m.managerOpts, opts...)
	}
}

// Middleware gives every request an alert manager seeded from the persister.
// Expired alerts are dropped on load. The final collection is saved once,
// right before the response is committed; alerts flushed by the handler are
// therefore gone on the next request.
func Middleware(p Persister, opts ...Option) func(http.Handler) http.Handler {
	mw := &middleware{
		persister: p,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(mw)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			mw.serve(next, w, r)
		})
	}
}

func (mw *middleware) serve(next http.Handler, w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	list, err := mw.persister.Load(w, r)
	if err != nil {
		mw.logger.LogAttrs(ctx, slog.LevelWarn, "Failed to load alerts, starting empty",
			logger.RequestID(requestid.FromContext(ctx)),
			logger.Error(err),
		)
	}

	m := alerts.NewManager(append([]alerts.ManagerOption{alerts.WithLogger(mw.logger)}, mw.managerOpts...)...)
	m.Seed(list)
	m.CleanupExpired()

	loaded := make(map[string]struct{}, len(list))
	for _, a := range list {
		loaded[a.ID] = struct{}{}
	}

	var pending []alerts.Alert
	ww := &responseWriter{ResponseWriter: w}
	ww.before = func() {
		pending = m.Alerts()
		if err := mw.persister.Save(w, r, pending); err != nil {
			mw.logger.LogAttrs(ctx, slog.LevelError, "Failed to save alerts",
				logger.RequestID(requestid.FromContext(ctx)),
				logger.Count(len(pending)),
				logger.Error(err),
			)
		}
	}

	next.ServeHTTP(ww, r.WithContext(WithManager(ctx, m)))
	ww.commit()

	mw.relayCreated(r, pending, loaded)
}

func (mw *middleware) relayCreated(r *http.Request, pending []alerts.Alert, loaded map[string]struct{}) {
	if mw.relay == nil {
		return
	}
	created := make([]alerts.Alert, 0, len(pending))
	for _, a := range pending {
		if _, ok := loaded[a.ID]; !ok {
			created = append(created, a)
		}
	}
	if len(created) == 0 {
		return
	}

	ctx := r.Context()
	scope, err := mw.persister.Scope(r)
	if errors.Is(err, ErrNoScope) {
		return
	}
	if err == nil {
		err = mw.relay.Deliver(ctx, scope, created)
	}
	if err != nil {
		mw.logger.LogAttrs(ctx, slog.LevelWarn, "Failed to relay alerts, but they were saved successfully",
			logger.Scope(scope),
			logger.Count(len(created)),
			logger.Error(err),
		)
	}
}
