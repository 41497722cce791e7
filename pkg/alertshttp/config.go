package alertshttp

import (
	"net/http"
	"net/url"
	"slices"
	"strings"
)

// Config holds the HTTP integration settings.
type Config struct {
	CookieName       string   `env:"ALERTS_COOKIE_NAME" envDefault:"alerts"`
	ScopeHeader      string   `env:"ALERTS_SCOPE_HEADER" envDefault:"X-Alerts-Scope"`
	StreamBufferSize int      `env:"ALERTS_STREAM_BUFFER" envDefault:"16"`
	MaxStreamScopes  int      `env:"ALERTS_STREAM_MAX_SCOPES" envDefault:"10000"`
	AllowedOrigins   []string `env:"ALERTS_WS_ORIGINS" envSeparator:","`
}

// CheckOrigin allows same-origin websocket requests plus the configured origins.
// An empty list keeps the gorilla default (same origin only).
func (c Config) CheckOrigin() func(r *http.Request) bool {
	if len(c.AllowedOrigins) == 0 {
		return nil
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		if u, err := url.Parse(origin); err == nil && strings.EqualFold(u.Host, r.Host) {
			return true
		}
		return slices.Contains(c.AllowedOrigins, origin)
	}
}
