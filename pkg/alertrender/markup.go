package alertrender

import (
	"context"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/a-h/templ"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dmitrymomot/alertkit/pkg/alerts"
)

// attr returns ` name="value"` with the value escaped, or "" for empty values.
func attr(name, value string) string {
	if value == "" {
		return ""
	}
	return " " + name + `="` + templ.EscapeString(value) + `"`
}

func classes(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, " ")
}

// typeLabel is the screen reader label of a type, e.g. "Warning".
func typeLabel(t alerts.Type) string {
	return cases.Title(language.English).String(strings.ReplaceAll(string(t), "_", " "))
}

func element(k alerts.Kind) (tag, role string) {
	switch k {
	case alerts.KindToast:
		return "div", "status"
	case alerts.KindModal:
		return "dialog", "alertdialog"
	default:
		return "div", "alert"
	}
}

func openTag(t Theme, a alerts.Alert) string {
	tag, role := element(a.Kind)
	style := t.typeStyle(a.Type)

	var b strings.Builder
	b.WriteString("<" + tag)
	b.WriteString(attr("id", "alert-"+a.ID))
	b.WriteString(attr("class", classes(t.kindClass(a.Kind), style.Class, a.Class)))
	b.WriteString(attr("role", role))
	b.WriteString(attr("style", a.Style))
	if a.Kind == alerts.KindModal {
		b.WriteString(` open aria-modal="true"`)
	}
	b.WriteString(attr("data-alert-id", a.ID))
	b.WriteString(attr("data-alert-type", string(a.Type)))
	b.WriteString(attr("data-alert-kind", string(a.Kind)))
	b.WriteString(attr("data-position", a.Position))
	b.WriteString(attr("data-animation", a.Animation))
	if a.AutoDismiss {
		b.WriteString(attr("data-auto-dismiss", strconv.Itoa(a.AutoDismissDelay)))
	}
	if a.ExpiresAt != nil {
		b.WriteString(attr("data-expires-at", a.ExpiresAt.UTC().Format(time.RFC3339)))
	}
	b.WriteString(attr("data-priority", nonZero(a.Priority)))
	b.WriteString(attr("data-context", a.Context))
	b.WriteString(attr("data-field", a.Field))
	b.WriteString(attr("data-form", a.Form))
	for _, d := range a.DataAttributeList() {
		b.WriteString(attr("data-"+attrName(d.Key), d.Value))
	}
	b.WriteString(">")
	return b.String()
}

func nonZero(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}

// attrName keeps caller supplied attribute names inside [a-z0-9-_].
func attrName(key string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		}
		return '-'
	}, key)
}

func writeAlert(ctx context.Context, w io.Writer, t Theme, a alerts.Alert) error {
	tag, _ := element(a.Kind)
	style := t.typeStyle(a.Type)

	var b strings.Builder
	b.WriteString(openTag(t, a))
	b.WriteString(`<span` + attr("class", t.HiddenClass) + `>` + templ.EscapeString(typeLabel(a.Type)) + `</span>`)

	icon := a.Icon
	if icon == "" {
		icon = style.Icon
	}
	if icon != "" {
		b.WriteString(`<i` + attr("class", icon) + ` aria-hidden="true"></i>`)
	}
	if a.Title != "" {
		b.WriteString(`<strong` + attr("class", t.TitleClass) + `>` + templ.EscapeString(a.Title) + `</strong>`)
	}
	b.WriteString(`<span` + attr("class", t.MessageClass) + `>` + templ.EscapeString(a.Message) + `</span>`)
	if _, err := io.WriteString(w, b.String()); err != nil {
		return err
	}

	if a.HTMLContent != "" {
		if _, err := io.WriteString(w, `<div data-alert-content>`); err != nil {
			return err
		}
		if err := templ.Raw(a.HTMLContent).Render(ctx, w); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `</div>`); err != nil {
			return err
		}
	}

	b.Reset()
	if a.Dismissible {
		b.WriteString(`<button type="button"` + attr("class", t.DismissClass) + ` data-alert-dismiss aria-label="Close"></button>`)
	}
	b.WriteString("</" + tag + ">")
	_, err := io.WriteString(w, b.String())
	return err
}
