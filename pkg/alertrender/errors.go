package alertrender

import "errors"

var (
	// ErrUnknownTheme is returned when a theme name is not registered.
	ErrUnknownTheme = errors.New("alertrender.unknown_theme")

	// ErrInvalidTheme is returned when a theme file cannot be decoded.
	ErrInvalidTheme = errors.New("alertrender.invalid_theme")
)
