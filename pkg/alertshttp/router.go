package alertshttp

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/dmitrymomot/alertkit/pkg/alertrender"
	"github.com/dmitrymomot/alertkit/pkg/alerts"
	"github.com/dmitrymomot/alertkit/pkg/logger"
	"github.com/dmitrymomot/alertkit/pkg/relay"
)

// RouterConfig wires the alert endpoints.
type RouterConfig struct {
	// Renderer renders markup for /html and /stream. Defaults to alertrender.New().
	Renderer *alertrender.Renderer
	// Broadcast feeds /stream and /ws. Both answer 501 when nil.
	Broadcast *relay.Broadcast
	// Scope selects the broadcast scope of a push connection.
	Scope ScopeFunc
	// CheckOrigin validates websocket origins. Nil allows same-origin requests only.
	CheckOrigin func(r *http.Request) bool
	Logger      *slog.Logger
}

type router struct {
	cfg      RouterConfig
	logger   *slog.Logger
	upgrader websocket.Upgrader
}

// Router returns the alert API. It expects Middleware upstream so every
// request carries its manager.
//
//	GET    /               pending alerts as JSON
//	GET    /html           rendered markup, ?clear=1 flushes
//	POST   /               add an alert
//	POST   /flush          return and remove every alert
//	POST   /{id}/dismiss   mark dismissed
//	POST   /{id}/read      mark read
//	DELETE /               clear
//	DELETE /{id}           remove one alert
//	DELETE /types/{type}   remove alerts of a type
//	GET    /stream         datastar SSE with pushed alerts
//	GET    /ws             websocket with pushed alerts as JSON
func Router(cfg RouterConfig) chi.Router {
	if cfg.Renderer == nil {
		cfg.Renderer = alertrender.New()
	}
	rt := &router{
		cfg:    cfg,
		logger: cfg.Logger,
		upgrader: websocket.Upgrader{
			CheckOrigin:     cfg.CheckOrigin,
			ReadBufferSize:  1024,
			WriteBufferSize: 16384,
		},
	}
	if rt.logger == nil {
		rt.logger = slog.Default()
	}

	r := chi.NewRouter()
	r.Get("/", rt.list)
	r.Post("/", rt.add)
	r.Delete("/", rt.clear)
	r.Get("/html", rt.html)
	r.Post("/flush", rt.flush)
	r.Get("/stream", rt.stream)
	r.Get("/ws", rt.socket)
	r.Delete("/types/{type}", rt.clearType)
	r.Post("/{id}/dismiss", rt.dismiss)
	r.Post("/{id}/read", rt.markRead)
	r.Delete("/{id}", rt.remove)
	return r
}

func manager(w http.ResponseWriter, r *http.Request) (*alerts.Manager, bool) {
	m, ok := FromContext(r.Context())
	if !ok {
		writeError(w, ErrNoManager)
	}
	return m, ok
}

func (rt *router) list(w http.ResponseWriter, r *http.Request) {
	m, ok := manager(w, r)
	if !ok {
		return
	}
	list := m.Alerts()
	writeJSON(w, http.StatusOK, envelope{Data: list, Meta: map[string]any{"count": len(list)}})
}

func (rt *router) html(w http.ResponseWriter, r *http.Request) {
	m, ok := manager(w, r)
	if !ok {
		return
	}
	autoClear, _ := strconv.ParseBool(r.URL.Query().Get("clear"))
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := rt.cfg.Renderer.Alerts(m, autoClear).Render(r.Context(), w); err != nil {
		rt.logger.LogAttrs(r.Context(), slog.LevelError, "Failed to render alerts",
			logger.Error(err),
		)
	}
}

// addRequest is the body of POST /. Options accepts the loosely typed bag
// understood by alerts.OptionsFromMap.
type addRequest struct {
	Type    alerts.Type    `json:"type"`
	Message string         `json:"message"`
	Title   string         `json:"title"`
	Options map[string]any `json:"options"`
}

func (rt *router) add(w http.ResponseWriter, r *http.Request) {
	m, ok := manager(w, r)
	if !ok {
		return
	}

	var req addRequest
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: %v", ErrInvalidRequest, err))
		return
	}
	if req.Type == "" {
		req.Type = alerts.TypeInfo
	}

	opts, ignored := alerts.OptionsFromMap(req.Options)
	a := m.Add(req.Type, req.Message, req.Title, opts)

	var meta map[string]any
	if len(ignored) > 0 {
		meta = map[string]any{"ignored_options": ignored}
	}
	writeJSON(w, http.StatusCreated, envelope{Data: a, Meta: meta})
}

func (rt *router) flush(w http.ResponseWriter, r *http.Request) {
	m, ok := manager(w, r)
	if !ok {
		return
	}
	list := m.Flush()
	writeJSON(w, http.StatusOK, envelope{Data: list, Meta: map[string]any{"count": len(list)}})
}

func (rt *router) clear(w http.ResponseWriter, r *http.Request) {
	m, ok := manager(w, r)
	if !ok {
		return
	}
	m.Clear()
	w.WriteHeader(http.StatusNoContent)
}

func (rt *router) clearType(w http.ResponseWriter, r *http.Request) {
	m, ok := manager(w, r)
	if !ok {
		return
	}
	removed := m.ClearByType(alerts.Type(chi.URLParam(r, "type")))
	writeJSON(w, http.StatusOK, envelope{Meta: map[string]any{"removed": removed}})
}

func (rt *router) dismiss(w http.ResponseWriter, r *http.Request) {
	rt.byID(w, r, (*alerts.Manager).Dismiss)
}

func (rt *router) markRead(w http.ResponseWriter, r *http.Request) {
	rt.byID(w, r, (*alerts.Manager).MarkRead)
}

func (rt *router) remove(w http.ResponseWriter, r *http.Request) {
	rt.byID(w, r, (*alerts.Manager).RemoveByID)
}

func (rt *router) byID(w http.ResponseWriter, r *http.Request, fn func(*alerts.Manager, string) bool) {
	m, ok := manager(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")
	if !fn(m, id) {
		writeError(w, fmt.Errorf("%w: %s", ErrAlertNotFound, id))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// subscribe resolves the push scope of a stream request.
func (rt *router) subscribe(w http.ResponseWriter, r *http.Request) (string, bool) {
	if rt.cfg.Broadcast == nil {
		writeError(w, ErrStreamNotEnabled)
		return "", false
	}
	if rt.cfg.Scope == nil {
		writeError(w, ErrNoScope)
		return "", false
	}
	scope, err := rt.cfg.Scope(r)
	if err != nil {
		writeError(w, err)
		return "", false
	}
	return scope, true
}
