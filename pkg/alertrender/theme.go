package alertrender

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/alertkit/pkg/alerts"
)

// Built-in theme names.
const (
	ThemeBootstrap = "bootstrap"
	ThemeTailwind  = "tailwind"
	ThemeMinimal   = "minimal"
)

// TypeStyle is the per-type look of an alert.
type TypeStyle struct {
	Class string `yaml:"class"`
	Icon  string `yaml:"icon"`
}

// Theme maps alert fields to CSS classes.
type Theme struct {
	Name         string                    `yaml:"name"`
	Container    string                    `yaml:"container"`
	Kinds        map[alerts.Kind]string    `yaml:"kinds"`
	Types        map[alerts.Type]TypeStyle `yaml:"types"`
	TitleClass   string                    `yaml:"title_class"`
	MessageClass string                    `yaml:"message_class"`
	DismissClass string                    `yaml:"dismiss_class"`
	HiddenClass  string                    `yaml:"hidden_class"`
}

// kindClass returns the wrapper class for k, falling back to the alert kind.
func (t Theme) kindClass(k alerts.Kind) string {
	if c, ok := t.Kinds[k]; ok {
		return c
	}
	return t.Kinds[alerts.KindAlert]
}

// typeStyle returns the style for typ. Unknown types use the info style.
func (t Theme) typeStyle(typ alerts.Type) TypeStyle {
	if s, ok := t.Types[typ]; ok {
		return s
	}
	return t.Types[alerts.TypeInfo]
}

func (t Theme) clone() Theme {
	c := t
	c.Kinds = maps.Clone(t.Kinds)
	c.Types = maps.Clone(t.Types)
	return c
}

// Bootstrap returns the Bootstrap 5 theme.
func Bootstrap() Theme {
	return Theme{
		Name:      ThemeBootstrap,
		Container: "alerts-container position-fixed p-3",
		Kinds: map[alerts.Kind]string{
			alerts.KindAlert:  "alert alert-dismissible fade show",
			alerts.KindToast:  "toast show align-items-center border-0",
			alerts.KindModal:  "modal-dialog modal-dialog-centered",
			alerts.KindInline: "invalid-feedback d-block",
		},
		Types: map[alerts.Type]TypeStyle{
			alerts.TypeSuccess: {Class: "alert-success", Icon: "bi bi-check-circle-fill"},
			alerts.TypeError:   {Class: "alert-danger", Icon: "bi bi-x-circle-fill"},
			alerts.TypeWarning: {Class: "alert-warning", Icon: "bi bi-exclamation-triangle-fill"},
			alerts.TypeInfo:    {Class: "alert-info", Icon: "bi bi-info-circle-fill"},
		},
		TitleClass:   "alert-heading fw-bold me-1",
		MessageClass: "alert-message",
		DismissClass: "btn-close",
		HiddenClass:  "visually-hidden",
	}
}

// Tailwind returns a Tailwind CSS theme.
func Tailwind() Theme {
	return Theme{
		Name:      ThemeTailwind,
		Container: "fixed z-50 flex flex-col gap-2 p-4",
		Kinds: map[alerts.Kind]string{
			alerts.KindAlert:  "flex items-start gap-3 rounded-md border p-4",
			alerts.KindToast:  "flex items-center gap-3 rounded-lg p-3 shadow-lg",
			alerts.KindModal:  "rounded-lg p-6 shadow-xl backdrop:bg-black/50",
			alerts.KindInline: "mt-1 text-sm",
		},
		Types: map[alerts.Type]TypeStyle{
			alerts.TypeSuccess: {Class: "border-green-300 bg-green-50 text-green-800", Icon: "check-circle"},
			alerts.TypeError:   {Class: "border-red-300 bg-red-50 text-red-800", Icon: "x-circle"},
			alerts.TypeWarning: {Class: "border-yellow-300 bg-yellow-50 text-yellow-800", Icon: "exclamation-triangle"},
			alerts.TypeInfo:    {Class: "border-blue-300 bg-blue-50 text-blue-800", Icon: "information-circle"},
		},
		TitleClass:   "font-semibold",
		MessageClass: "flex-1",
		DismissClass: "ml-auto opacity-70 hover:opacity-100",
		HiddenClass:  "sr-only",
	}
}

// Minimal returns a theme with plain semantic class names and no framework.
func Minimal() Theme {
	return Theme{
		Name:      ThemeMinimal,
		Container: "alerts",
		Kinds: map[alerts.Kind]string{
			alerts.KindAlert:  "alert",
			alerts.KindToast:  "alert alert--toast",
			alerts.KindModal:  "alert alert--modal",
			alerts.KindInline: "alert alert--inline",
		},
		Types: map[alerts.Type]TypeStyle{
			alerts.TypeSuccess: {Class: "alert--success"},
			alerts.TypeError:   {Class: "alert--error"},
			alerts.TypeWarning: {Class: "alert--warning"},
			alerts.TypeInfo:    {Class: "alert--info"},
		},
		TitleClass:   "alert__title",
		MessageClass: "alert__message",
		DismissClass: "alert__close",
		HiddenClass:  "visually-hidden",
	}
}

type themeFile struct {
	Themes []Theme `yaml:"themes"`
}

// LoadThemes decodes a YAML document with a top level "themes" list.
func LoadThemes(r io.Reader) ([]Theme, error) {
	var f themeFile
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, errors.Join(ErrInvalidTheme, err)
	}
	for i, t := range f.Themes {
		if t.Name == "" {
			return nil, errors.Join(ErrInvalidTheme, fmt.Errorf("theme #%d has no name", i))
		}
	}
	return f.Themes, nil
}

// LoadThemesFile reads themes from a YAML file.
func LoadThemesFile(path string) ([]Theme, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open themes file: %w", err)
	}
	defer f.Close()
	return LoadThemes(f)
}
