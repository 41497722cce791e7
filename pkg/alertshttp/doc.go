// Package alertshttp plugs flash alerts into net/http.
//
// Middleware loads the pending alerts of a client through a Persister, puts a
// request scoped *alerts.Manager into the context and saves the collection
// back right before the response is committed:
//
//	store := alertstore.NewCache(alertstore.DefaultCacheCapacity)
//	r := chi.NewRouter()
//	r.Use(sessions.Middleware)
//	r.Use(alertshttp.Middleware(
//		alertshttp.NewStorePersister(store, alertshttp.SessionScope),
//		alertshttp.WithRelay(push),
//	))
//
//	r.Post("/profile", func(w http.ResponseWriter, r *http.Request) {
//		alertshttp.MustFromContext(r.Context()).Success("Profile saved", "")
//		http.Redirect(w, r, "/profile", http.StatusSeeOther)
//	})
//
// Templates render and flush the collection with alertrender.Renderer.Alerts.
// Flushed alerts are not saved, so every alert is shown once.
//
// CookiePersister keeps alerts in an encrypted flash cookie instead of a store,
// for applications without server side state.
//
// Router exposes the collection as a JSON API plus two push endpoints fed by
// relay.Broadcast: /stream (datastar SSE) and /ws (websocket).
package alertshttp
