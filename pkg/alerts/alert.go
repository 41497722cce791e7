package alerts

import (
	"maps"
	"slices"
	"time"
)

// DefaultAutoDismissDelay is used when auto-dismiss is enabled without an explicit delay.
const DefaultAutoDismissDelay = 5000

// Alert is a single flash notification.
type Alert struct {
	ID      string `json:"id" bson:"id"`
	Type    Type   `json:"type" bson:"type"`
	Message string `json:"message" bson:"message"`
	Title   string `json:"title,omitempty" bson:"title,omitempty"`
	Kind    Kind   `json:"alert_type" bson:"alert_type"`

	Theme          string            `json:"theme,omitempty" bson:"theme,omitempty"`
	Position       string            `json:"position,omitempty" bson:"position,omitempty"`
	Animation      string            `json:"animation,omitempty" bson:"animation,omitempty"`
	Icon           string            `json:"icon,omitempty" bson:"icon,omitempty"`
	Class          string            `json:"class,omitempty" bson:"class,omitempty"`
	Style          string            `json:"style,omitempty" bson:"style,omitempty"`
	DataAttributes map[string]string `json:"data_attributes,omitempty" bson:"data_attributes,omitempty"`
	// HTMLContent is rendered without escaping. Only trusted markup belongs here.
	HTMLContent string `json:"html_content,omitempty" bson:"html_content,omitempty"`

	Dismissible      bool `json:"dismissible" bson:"dismissible"`
	AutoDismiss      bool `json:"auto_dismiss" bson:"auto_dismiss"`
	AutoDismissDelay int  `json:"auto_dismiss_delay" bson:"auto_dismiss_delay"` // milliseconds

	ExpiresAt   *time.Time `json:"expires_at,omitempty" bson:"expires_at,omitempty"`
	DismissedAt *time.Time `json:"dismissed_at,omitempty" bson:"dismissed_at,omitempty"`
	ReadAt      *time.Time `json:"read_at,omitempty" bson:"read_at,omitempty"`

	Priority int `json:"priority" bson:"priority"`

	Context string `json:"context,omitempty" bson:"context,omitempty"`
	Field   string `json:"field,omitempty" bson:"field,omitempty"`
	Form    string `json:"form,omitempty" bson:"form,omitempty"`

	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// DataAttribute is a single key/value pair rendered as a data-* attribute.
type DataAttribute struct {
	Key   string
	Value string
}

// HasExpiry reports whether the alert carries an expiry timestamp.
func (a Alert) HasExpiry() bool {
	return a.ExpiresAt != nil
}

// IsExpired returns true when the alert expiry is at or before now.
// Alerts without expiry never expire.
func (a Alert) IsExpired(now time.Time) bool {
	if a.ExpiresAt == nil {
		return false
	}
	return !a.ExpiresAt.After(now)
}

// IsDismissed reports whether Dismiss was called on the alert.
func (a Alert) IsDismissed() bool {
	return a.DismissedAt != nil
}

// IsRead reports whether MarkRead was called on the alert.
func (a Alert) IsRead() bool {
	return a.ReadAt != nil
}

// AutoDismissAfter returns the auto-dismiss delay as a duration,
// or zero when auto-dismiss is disabled.
func (a Alert) AutoDismissAfter() time.Duration {
	if !a.AutoDismiss {
		return 0
	}
	return time.Duration(a.AutoDismissDelay) * time.Millisecond
}

// DataAttributeList returns caller data attributes sorted by key.
func (a Alert) DataAttributeList() []DataAttribute {
	if len(a.DataAttributes) == 0 {
		return nil
	}
	keys := slices.Sorted(maps.Keys(a.DataAttributes))
	out := make([]DataAttribute, 0, len(keys))
	for _, k := range keys {
		out = append(out, DataAttribute{Key: k, Value: a.DataAttributes[k]})
	}
	return out
}

// Clone returns a deep copy that shares no maps or timestamps with a.
func (a Alert) Clone() Alert {
	c := a
	if a.DataAttributes != nil {
		c.DataAttributes = maps.Clone(a.DataAttributes)
	}
	c.ExpiresAt = cloneTime(a.ExpiresAt)
	c.DismissedAt = cloneTime(a.DismissedAt)
	c.ReadAt = cloneTime(a.ReadAt)
	return c
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

func cloneAll(list []Alert) []Alert {
	out := make([]Alert, len(list))
	for i, a := range list {
		out[i] = a.Clone()
	}
	return out
}

// CloneList deep copies list. The result is never nil.
func CloneList(list []Alert) []Alert {
	return cloneAll(list)
}
