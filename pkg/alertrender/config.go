package alertrender

import "log/slog"

// Config holds renderer settings.
type Config struct {
	DefaultTheme string `env:"ALERTS_RENDER_THEME" envDefault:"bootstrap"`
	ThemesFile   string `env:"ALERTS_THEMES_FILE"`
}

// NewFromConfig creates a renderer and registers the themes of cfg.ThemesFile, if set.
func NewFromConfig(cfg Config, l *slog.Logger) (*Renderer, error) {
	r := New(WithDefaultTheme(cfg.DefaultTheme), WithLogger(l))
	if cfg.ThemesFile != "" {
		themes, err := LoadThemesFile(cfg.ThemesFile)
		if err != nil {
			return nil, err
		}
		r.Register(themes...)
	}
	if _, err := r.Theme(r.defaultTheme); err != nil {
		return nil, err
	}
	return r, nil
}
