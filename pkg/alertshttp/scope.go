package alertshttp

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dmitrymomot/alertkit/pkg/session"
)

// ScopeFunc resolves the storage scope of a request.
// It returns ErrNoScope when the request has none.
type ScopeFunc func(r *http.Request) (string, error)

// SessionScope uses the token of the session put in the context by
// session.Manager.Middleware. Pairs with alertstore.Session.
func SessionScope(r *http.Request) (string, error) {
	s, ok := session.FromContext(r.Context())
	if !ok || s == nil || s.Token == "" {
		return "", ErrNoScope
	}
	return s.Token, nil
}

// UserScope uses the authenticated user id of the session, so alerts follow
// the user across devices. Anonymous sessions have no scope.
func UserScope(r *http.Request) (string, error) {
	id, ok := session.UserIDFromContext(r.Context())
	if !ok {
		return "", ErrNoScope
	}
	return id, nil
}

// HeaderScope reads the scope from a request header.
func HeaderScope(name string) ScopeFunc {
	return func(r *http.Request) (string, error) {
		v := strings.TrimSpace(r.Header.Get(name))
		if v == "" {
			return "", ErrNoScope
		}
		return v, nil
	}
}

// FirstScope tries each resolver in order and returns the first scope found.
func FirstScope(funcs ...ScopeFunc) ScopeFunc {
	return func(r *http.Request) (string, error) {
		for _, fn := range funcs {
			scope, err := fn(r)
			if err == nil {
				return scope, nil
			}
			if !errors.Is(err, ErrNoScope) {
				return "", err
			}
		}
		return "", ErrNoScope
	}
}
