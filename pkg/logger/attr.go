package logger

import (
	"log/slog"
	"strconv"
	"time"
)

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Errors groups multiple non-nil errors under the key "errors".
// If all errors are nil, it returns an empty Attr.
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// RequestID records the request identifier under the key "request_id".
// If id is nil, it returns an empty Attr.
func RequestID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("request_id", id)
}

// AlertID records the alert identifier under the key "alert_id".
func AlertID(id string) slog.Attr {
	return slog.String("alert_id", id)
}

// AlertType records the alert type under the key "alert_type".
func AlertType(t any) slog.Attr {
	return slog.Any("alert_type", t)
}

// Scope records the alert scope under the key "scope".
// Scopes are often session tokens, so only the first 8 characters are kept.
// Empty scopes produce an empty Attr.
func Scope(scope string) slog.Attr {
	if scope == "" {
		return slog.Attr{}
	}
	if len(scope) > 8 {
		scope = scope[:8] + "..."
	}
	return slog.String("scope", scope)
}

// Count records a number of items under the key "count".
func Count(n int) slog.Attr {
	return slog.Int("count", n)
}

// Backend records the storage or relay backend name under the key "backend".
func Backend(name string) slog.Attr {
	return slog.String("backend", name)
}

// Recipient records a delivery address under the key "recipient".
func Recipient(addr string) slog.Attr {
	return slog.String("recipient", addr)
}

// Duration records a duration under the key "duration".
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}
