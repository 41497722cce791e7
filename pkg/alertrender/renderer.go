package alertrender

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/alertkit/pkg/alerts"
	"github.com/dmitrymomot/alertkit/pkg/logger"
)

// Renderer renders alerts as HTML with templ components.
// It implements alerts.Renderer and is safe for concurrent use.
type Renderer struct {
	themes       map[string]Theme
	defaultTheme string
	logger       *slog.Logger
	mu           sync.RWMutex
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithDefaultTheme selects the theme used when an alert names none,
// or names one that is not registered.
func WithDefaultTheme(name string) Option {
	return func(r *Renderer) {
		if name != "" {
			r.defaultTheme = name
		}
	}
}

// WithTheme registers an extra theme, replacing a built-in one with the same name.
func WithTheme(t Theme) Option {
	return func(r *Renderer) {
		r.themes[t.Name] = t.clone()
	}
}

// WithLogger sets the logger for the Renderer.
func WithLogger(l *slog.Logger) Option {
	return func(r *Renderer) {
		if l != nil {
			r.logger = l
		}
	}
}

// New creates a renderer with the built-in themes registered.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		themes: map[string]Theme{
			ThemeBootstrap: Bootstrap(),
			ThemeTailwind:  Tailwind(),
			ThemeMinimal:   Minimal(),
		},
		defaultTheme: ThemeBootstrap,
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds or replaces a theme at runtime.
func (r *Renderer) Register(themes ...Theme) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range themes {
		r.themes[t.Name] = t.clone()
	}
}

// Theme returns a registered theme by name.
func (r *Renderer) Theme(name string) (Theme, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.themes[name]
	if !ok {
		return Theme{}, fmt.Errorf("%w: %s", ErrUnknownTheme, name)
	}
	return t.clone(), nil
}

// resolve picks the theme for an alert, falling back to the default theme.
func (r *Renderer) resolve(ctx context.Context, name string) Theme {
	if name == "" {
		name = r.defaultTheme
	}
	r.mu.RLock()
	t, ok := r.themes[name]
	if !ok {
		t = r.themes[r.defaultTheme]
	}
	r.mu.RUnlock()
	if !ok {
		r.logger.LogAttrs(ctx, slog.LevelDebug, "Unknown alert theme, using default",
			slog.String("theme", name),
			slog.String("default_theme", r.defaultTheme),
		)
	}
	return t
}

// Render writes a single alert. It satisfies alerts.Renderer.
func (r *Renderer) Render(ctx context.Context, w io.Writer, a alerts.Alert) error {
	return r.Component(a).Render(ctx, w)
}

// Component returns the templ component of one alert.
func (r *Renderer) Component(a alerts.Alert) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return writeAlert(ctx, w, r.resolve(ctx, a.Theme), a)
	})
}

// List renders alerts inside the default theme container, in the given order.
func (r *Renderer) List(list []alerts.Alert) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		t := r.resolve(ctx, "")
		if _, err := io.WriteString(w, `<div data-alerts`+attr("class", t.Container)+` aria-live="polite">`); err != nil {
			return err
		}
		for _, a := range list {
			if err := r.Component(a).Render(ctx, w); err != nil {
				return fmt.Errorf("render alert %s: %w", a.ID, err)
			}
		}
		_, err := io.WriteString(w, `</div>`)
		return err
	})
}

// Alerts renders every alert of the manager. With autoClear the manager is
// flushed first, so each alert is rendered exactly once.
func (r *Renderer) Alerts(m *alerts.Manager, autoClear bool) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var list []alerts.Alert
		if autoClear {
			list = m.Flush()
		} else {
			list = m.Alerts()
		}
		if autoClear && len(list) > 0 {
			r.logger.LogAttrs(ctx, slog.LevelDebug, "Alerts flushed for rendering",
				logger.Count(len(list)),
			)
		}
		return r.List(list).Render(ctx, w)
	})
}

// RenderString renders a component into a string.
func RenderString(ctx context.Context, c templ.Component) (string, error) {
	var sb strings.Builder
	if err := c.Render(ctx, &sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}
