package alertshttp

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/starfederation/datastar-go/datastar"

	"github.com/dmitrymomot/alertkit/pkg/logger"
)

// AlertsSelector targets the container rendered by alertrender.Renderer.List.
const AlertsSelector = "[data-alerts]"

// stream patches pushed alerts into the page over datastar SSE.
// Each alert is appended to the alerts container.
func (rt *router) stream(w http.ResponseWriter, r *http.Request) {
	scope, ok := rt.subscribe(w, r)
	if !ok {
		return
	}

	ctx := r.Context()
	sub := rt.cfg.Broadcast.Subscribe(ctx, scope)
	defer sub.Close()

	sse := datastar.NewSSE(w, r)
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-sub.Receive(ctx):
			if !ok {
				return
			}
			for _, a := range msg.Data.Alerts {
				if err := sse.PatchElementTempl(rt.cfg.Renderer.Component(a),
					datastar.WithSelector(AlertsSelector),
					datastar.WithMode(datastar.ElementPatchModeAppend),
				); err != nil {
					rt.logger.LogAttrs(ctx, slog.LevelDebug, "Alert stream closed",
						logger.Scope(scope),
						logger.Error(err),
					)
					return
				}
			}
		}
	}
}

// socket pushes relay events as JSON text frames. Incoming frames are
// discarded; a read error ends the connection.
func (rt *router) socket(w http.ResponseWriter, r *http.Request) {
	scope, ok := rt.subscribe(w, r)
	if !ok {
		return
	}

	ctx := r.Context()
	sub := rt.cfg.Broadcast.Subscribe(ctx, scope)
	defer sub.Close()

	conn, err := rt.upgrader.Upgrade(w, r, nil)
	if err != nil {
		rt.logger.LogAttrs(r.Context(), slog.LevelWarn, "Failed to upgrade websocket",
			logger.Scope(scope),
			logger.Error(err),
		)
		return
	}
	defer conn.Close()

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					rt.logger.LogAttrs(ctx, slog.LevelDebug, "Websocket read failed",
						logger.Scope(scope),
						logger.Error(err),
					)
				}
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case <-closed:
			return
		case msg, ok := <-sub.Receive(ctx):
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
				return
			}
			if err := conn.WriteJSON(msg.Data); err != nil {
				rt.logger.LogAttrs(ctx, slog.LevelDebug, "Websocket write failed",
					logger.Scope(scope),
					logger.Error(err),
				)
				return
			}
		}
	}
}
