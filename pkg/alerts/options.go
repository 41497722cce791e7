package alerts

import (
	"encoding/json"
	"fmt"
	"maps"
	"math"
	"slices"
	"strconv"
	"time"
)

// Options lists every presentation and timing setting an alert accepts.
// Zero values mean "not set"; pointer fields distinguish an explicit false/0
// from an absent value.
type Options struct {
	Dismissible      *bool
	AutoDismiss      *bool
	AutoDismissDelay *int // milliseconds

	Kind           Kind
	Theme          string
	Position       string
	Animation      string
	Icon           string
	Class          string
	Style          string
	DataAttributes map[string]string
	HTMLContent    string

	Context string
	Field   string
	Form    string

	Priority  *int
	ExpiresAt *time.Time
}

// Bool returns a pointer to v. Handy for Options literals.
func Bool(v bool) *bool { return &v }

// Int returns a pointer to v. Handy for Options literals.
func Int(v int) *int { return &v }

// Merge returns a copy of o with every set field of next applied on top.
// Data attributes are merged key by key.
func (o Options) Merge(next Options) Options {
	out := o
	if next.Dismissible != nil {
		out.Dismissible = Bool(*next.Dismissible)
	}
	if next.AutoDismiss != nil {
		out.AutoDismiss = Bool(*next.AutoDismiss)
	}
	if next.AutoDismissDelay != nil {
		out.AutoDismissDelay = Int(*next.AutoDismissDelay)
	}
	if next.Kind != "" {
		out.Kind = next.Kind
	}
	if next.Theme != "" {
		out.Theme = next.Theme
	}
	if next.Position != "" {
		out.Position = next.Position
	}
	if next.Animation != "" {
		out.Animation = next.Animation
	}
	if next.Icon != "" {
		out.Icon = next.Icon
	}
	if next.Class != "" {
		out.Class = next.Class
	}
	if next.Style != "" {
		out.Style = next.Style
	}
	if len(next.DataAttributes) > 0 {
		merged := make(map[string]string, len(o.DataAttributes)+len(next.DataAttributes))
		maps.Copy(merged, o.DataAttributes)
		maps.Copy(merged, next.DataAttributes)
		out.DataAttributes = merged
	}
	if next.HTMLContent != "" {
		out.HTMLContent = next.HTMLContent
	}
	if next.Context != "" {
		out.Context = next.Context
	}
	if next.Field != "" {
		out.Field = next.Field
	}
	if next.Form != "" {
		out.Form = next.Form
	}
	if next.Priority != nil {
		out.Priority = Int(*next.Priority)
	}
	if next.ExpiresAt != nil {
		out.ExpiresAt = cloneTime(next.ExpiresAt)
	}
	return out
}

// apply writes the set fields onto a.
func (o Options) apply(a *Alert) {
	if o.Dismissible != nil {
		a.Dismissible = *o.Dismissible
	}
	if o.AutoDismiss != nil {
		a.AutoDismiss = *o.AutoDismiss
		if a.AutoDismiss && a.AutoDismissDelay == 0 {
			a.AutoDismissDelay = DefaultAutoDismissDelay
		}
	}
	if o.AutoDismissDelay != nil {
		a.AutoDismissDelay = *o.AutoDismissDelay
	}
	if o.Kind != "" {
		a.Kind = o.Kind
	}
	if o.Theme != "" {
		a.Theme = o.Theme
	}
	if o.Position != "" {
		a.Position = o.Position
	}
	if o.Animation != "" {
		a.Animation = o.Animation
	}
	if o.Icon != "" {
		a.Icon = o.Icon
	}
	if o.Class != "" {
		a.Class = o.Class
	}
	if o.Style != "" {
		a.Style = o.Style
	}
	if len(o.DataAttributes) > 0 {
		if a.DataAttributes == nil {
			a.DataAttributes = make(map[string]string, len(o.DataAttributes))
		}
		maps.Copy(a.DataAttributes, o.DataAttributes)
	}
	if o.HTMLContent != "" {
		a.HTMLContent = o.HTMLContent
	}
	if o.Context != "" {
		a.Context = o.Context
	}
	if o.Field != "" {
		a.Field = o.Field
	}
	if o.Form != "" {
		a.Form = o.Form
	}
	if o.Priority != nil {
		a.Priority = *o.Priority
	}
	if o.ExpiresAt != nil {
		a.ExpiresAt = cloneTime(o.ExpiresAt)
	}
}

// Recognised option keys for OptionsFromMap.
const (
	OptDismissible      = "dismissible"
	OptAutoDismiss      = "auto_dismiss"
	OptAutoDismissDelay = "auto_dismiss_delay"
	OptKind             = "alert_type"
	OptTheme            = "theme"
	OptPosition         = "position"
	OptAnimation        = "animation"
	OptIcon             = "icon"
	OptClass            = "class"
	OptStyle            = "style"
	OptDataAttributes   = "data_attributes"
	OptHTMLContent      = "html_content"
	OptContext          = "context"
	OptField            = "field"
	OptForm             = "form"
	OptPriority         = "priority"
	OptExpiresAt        = "expires_at"
)

// OptionsFromMap converts a loosely typed options bag, typically decoded JSON,
// into Options. Unknown keys are ignored and returned sorted so callers can
// report them. Values of the wrong type are coerced where a sensible
// conversion exists and skipped otherwise.
func OptionsFromMap(m map[string]any) (Options, []string) {
	var (
		o       Options
		ignored []string
	)
	for key, raw := range m {
		switch key {
		case OptDismissible:
			if v, ok := toBool(raw); ok {
				o.Dismissible = Bool(v)
			}
		case OptAutoDismiss:
			if v, ok := toBool(raw); ok {
				o.AutoDismiss = Bool(v)
			}
		case OptAutoDismissDelay:
			if v, ok := toInt(raw); ok {
				o.AutoDismissDelay = Int(v)
			}
		case OptPriority:
			if v, ok := toInt(raw); ok {
				o.Priority = Int(v)
			}
		case OptKind:
			o.Kind = Kind(toString(raw))
		case OptTheme:
			o.Theme = toString(raw)
		case OptPosition:
			o.Position = toString(raw)
		case OptAnimation:
			o.Animation = toString(raw)
		case OptIcon:
			o.Icon = toString(raw)
		case OptClass:
			o.Class = toString(raw)
		case OptStyle:
			o.Style = toString(raw)
		case OptHTMLContent:
			o.HTMLContent = toString(raw)
		case OptContext:
			o.Context = toString(raw)
		case OptField:
			o.Field = toString(raw)
		case OptForm:
			o.Form = toString(raw)
		case OptDataAttributes:
			if attrs, ok := raw.(map[string]any); ok {
				o.DataAttributes = make(map[string]string, len(attrs))
				for k, v := range attrs {
					o.DataAttributes[k] = toString(v)
				}
			} else if attrs, ok := raw.(map[string]string); ok {
				o.DataAttributes = maps.Clone(attrs)
			}
		case OptExpiresAt:
			if t, ok := toTime(raw); ok {
				o.ExpiresAt = &t
			}
		default:
			ignored = append(ignored, key)
		}
	}
	slices.Sort(ignored)
	return o, ignored
}

func toBool(v any) (bool, bool) {
	switch b := v.(type) {
	case bool:
		return b, true
	case string:
		parsed, err := strconv.ParseBool(b)
		return parsed, err == nil
	case float64:
		return b != 0, true
	case int:
		return b != 0, true
	case json.Number:
		f, err := b.Float64()
		return f != 0, err == nil
	}
	return false, false
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(math.Round(n)), true
	case json.Number:
		i, err := n.Int64()
		return int(i), err == nil
	case string:
		i, err := strconv.Atoi(n)
		return i, err == nil
	}
	return 0, false
}

func toString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case fmt.Stringer:
		return s.String()
	}
	return fmt.Sprint(v)
}

func toTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case *time.Time:
		if t == nil {
			return time.Time{}, false
		}
		return *t, true
	case string:
		parsed, err := time.Parse(time.RFC3339, t)
		return parsed, err == nil
	case float64:
		return time.Unix(int64(t), 0), true
	case int64:
		return time.Unix(t, 0), true
	case json.Number:
		sec, err := t.Int64()
		return time.Unix(sec, 0), err == nil
	}
	return time.Time{}, false
}
