package main

import (
	"context"
	"io"
	"net/http"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/alertkit/pkg/alertrender"
	"github.com/dmitrymomot/alertkit/pkg/alertshttp"
)

// pageHandler renders a minimal page that shows and flushes pending alerts
// and listens on the datastar stream for new ones.
func pageHandler(renderer *alertrender.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m := alertshttp.MustFromContext(r.Context())
		page := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
			if _, err := io.WriteString(w, pageHead); err != nil {
				return err
			}
			if err := renderer.Alerts(m, true).Render(ctx, w); err != nil {
				return err
			}
			if err := alertrender.Script().Render(ctx, w); err != nil {
				return err
			}
			_, err := io.WriteString(w, pageFoot)
			return err
		})
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_ = page.Render(r.Context(), w)
	}
}

const pageHead = `<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>alerts</title>
<script type="module" src="https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0-RC.5/bundles/datastar.js"></script>
</head>
<body data-on-load="@get('/alerts/stream')">
`

const pageFoot = `
</body>
</html>
`
