package alerts

import "time"

// Config holds application-wide alert defaults.
type Config struct {
	Theme            string        `env:"ALERTS_THEME" envDefault:"bootstrap"`
	Position         string        `env:"ALERTS_POSITION" envDefault:"top-right"`
	Animation        string        `env:"ALERTS_ANIMATION" envDefault:"fade"`
	Dismissible      bool          `env:"ALERTS_DISMISSIBLE" envDefault:"true"`
	AutoDismiss      bool          `env:"ALERTS_AUTO_DISMISS" envDefault:"false"`
	AutoDismissDelay time.Duration `env:"ALERTS_AUTO_DISMISS_DELAY" envDefault:"5s"`
	// DefaultTTL applies an expiry to every new alert (0 disables).
	DefaultTTL time.Duration `env:"ALERTS_DEFAULT_TTL" envDefault:"0s"`
}

// DefaultConfig returns the defaults used when no environment is loaded.
func DefaultConfig() Config {
	return Config{
		Theme:            "bootstrap",
		Position:         "top-right",
		Animation:        "fade",
		Dismissible:      true,
		AutoDismiss:      false,
		AutoDismissDelay: 5 * time.Second,
	}
}

// Defaults converts the config into Options applied to every new alert.
func (c Config) Defaults() Options {
	o := Options{
		Theme:       c.Theme,
		Position:    c.Position,
		Animation:   c.Animation,
		Dismissible: Bool(c.Dismissible),
		AutoDismiss: Bool(c.AutoDismiss),
	}
	if c.AutoDismissDelay > 0 {
		o.AutoDismissDelay = Int(int(c.AutoDismissDelay.Milliseconds()))
	}
	return o
}

// NewFromConfig creates a Manager with defaults taken from cfg.
// Explicit options are applied after the config.
func NewFromConfig(cfg Config, opts ...ManagerOption) *Manager {
	configOpts := []ManagerOption{WithDefaults(cfg.Defaults())}
	if cfg.DefaultTTL > 0 {
		configOpts = append(configOpts, WithDefaultTTL(cfg.DefaultTTL))
	}
	configOpts = append(configOpts, opts...)
	return NewManager(configOpts...)
}
