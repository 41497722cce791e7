package alerts

import (
	"maps"
	"time"

	"github.com/google/uuid"
)

// Builder composes a single alert. Setters mutate the in-progress alert and
// return the builder for chaining. Nothing is stored until Commit is called.
type Builder struct {
	manager   *Manager
	now       func() time.Time
	alert     Alert
	committed bool
	snapshot  Alert
}

// NewBuilder starts an alert that is not bound to any manager.
// Commit on such a builder behaves like Build.
func NewBuilder(typ Type, message string) *Builder {
	return newBuilder(nil, time.Now, uuid.NewString(), typ, message)
}

func newBuilder(m *Manager, now func() time.Time, id string, typ Type, message string) *Builder {
	return &Builder{
		manager: m,
		now:     now,
		alert: Alert{
			ID:          id,
			Type:        typ,
			Message:     message,
			Kind:        KindAlert,
			Dismissible: true,
			CreatedAt:   now(),
		},
	}
}

// WithTitle sets the heading shown above the message.
func (b *Builder) WithTitle(title string) *Builder {
	b.alert.Title = title
	return b
}

// WithIcon overrides the theme icon for the alert type.
func (b *Builder) WithIcon(icon string) *Builder {
	b.alert.Icon = icon
	return b
}

// WithClass adds CSS classes to the wrapper element.
func (b *Builder) WithClass(class string) *Builder {
	b.alert.Class = class
	return b
}

// WithStyle sets an inline style attribute.
func (b *Builder) WithStyle(style string) *Builder {
	b.alert.Style = style
	return b
}

// Dismissible controls the close button. Alerts are dismissible by default.
func (b *Builder) Dismissible(v bool) *Builder {
	b.alert.Dismissible = v
	return b
}

// AutoDismiss toggles client-side auto-dismiss. Enabling it without a delay
// falls back to DefaultAutoDismissDelay.
func (b *Builder) AutoDismiss(v bool) *Builder {
	b.alert.AutoDismiss = v
	if v && b.alert.AutoDismissDelay == 0 {
		b.alert.AutoDismissDelay = DefaultAutoDismissDelay
	}
	return b
}

// AutoDismissDelay sets the delay, stored with millisecond precision.
// Negative values are kept as is.
func (b *Builder) AutoDismissDelay(d time.Duration) *Builder {
	b.alert.AutoDismissDelay = int(d.Milliseconds())
	return b
}

// WithContext tags the alert with a page section for inline rendering.
func (b *Builder) WithContext(context string) *Builder {
	b.alert.Context = context
	return b
}

// WithField ties an inline alert to a form field.
func (b *Builder) WithField(field string) *Builder {
	b.alert.Field = field
	return b
}

// WithForm ties an inline alert to a form.
func (b *Builder) WithForm(form string) *Builder {
	b.alert.Form = form
	return b
}

// WithPriority sets the relay priority. Higher is more urgent.
func (b *Builder) WithPriority(priority int) *Builder {
	b.alert.Priority = priority
	return b
}

// WithTheme selects a renderer theme by name.
func (b *Builder) WithTheme(theme string) *Builder {
	b.alert.Theme = theme
	return b
}

// WithPosition sets the screen position, mostly for toasts.
func (b *Builder) WithPosition(position string) *Builder {
	b.alert.Position = position
	return b
}

// WithAnimation sets the entry animation name.
func (b *Builder) WithAnimation(animation string) *Builder {
	b.alert.Animation = animation
	return b
}

// WithDataAttribute adds one data-* attribute, replacing an existing key.
func (b *Builder) WithDataAttribute(key, value string) *Builder {
	if b.alert.DataAttributes == nil {
		b.alert.DataAttributes = make(map[string]string)
	}
	b.alert.DataAttributes[key] = value
	return b
}

// WithDataAttributes merges attrs into the data-* attributes.
func (b *Builder) WithDataAttributes(attrs map[string]string) *Builder {
	if len(attrs) == 0 {
		return b
	}
	if b.alert.DataAttributes == nil {
		b.alert.DataAttributes = make(map[string]string, len(attrs))
	}
	maps.Copy(b.alert.DataAttributes, attrs)
	return b
}

// WithHTMLContent attaches trusted markup rendered without escaping.
func (b *Builder) WithHTMLContent(html string) *Builder {
	b.alert.HTMLContent = html
	return b
}

// ExpiresIn sets the expiry relative to the builder clock.
// A negative duration yields an alert that is already expired.
func (b *Builder) ExpiresIn(d time.Duration) *Builder {
	t := b.now().Add(d)
	b.alert.ExpiresAt = &t
	return b
}

// ExpiresAt sets an absolute expiry.
func (b *Builder) ExpiresAt(t time.Time) *Builder {
	b.alert.ExpiresAt = &t
	return b
}

// Temporary expires the alert after d and auto-dismisses it on the client after the same delay.
func (b *Builder) Temporary(d time.Duration) *Builder {
	return b.ExpiresIn(d).Flash(d)
}

// Flash enables auto-dismiss with the given delay.
func (b *Builder) Flash(delay time.Duration) *Builder {
	b.alert.AutoDismiss = true
	return b.AutoDismissDelay(delay)
}

// AsAlert renders the alert as a regular banner. This is the default kind.
func (b *Builder) AsAlert() *Builder {
	b.alert.Kind = KindAlert
	return b
}

// AsToast renders the alert as a floating toast.
func (b *Builder) AsToast() *Builder {
	b.alert.Kind = KindToast
	return b
}

// AsModal renders the alert as a dialog.
func (b *Builder) AsModal() *Builder {
	b.alert.Kind = KindModal
	return b
}

// AsInline renders the alert next to a form field.
func (b *Builder) AsInline() *Builder {
	b.alert.Kind = KindInline
	return b
}

// WithOptions applies every set field of opts.
func (b *Builder) WithOptions(opts Options) *Builder {
	opts.apply(&b.alert)
	return b
}

// Build returns a copy of the alert without storing it.
func (b *Builder) Build() Alert {
	if b.committed {
		return b.snapshot.Clone()
	}
	return b.alert.Clone()
}

// Commit appends the alert to the owning manager and returns a snapshot.
// Committing twice does not add a duplicate.
func (b *Builder) Commit() Alert {
	if b.committed {
		return b.snapshot.Clone()
	}
	b.snapshot = b.alert.Clone()
	b.committed = true
	if b.manager != nil {
		b.manager.append(b.snapshot)
	}
	return b.snapshot.Clone()
}
