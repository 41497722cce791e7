package alertshttp_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/alertkit/pkg/alertshttp"
	"github.com/dmitrymomot/alertkit/pkg/session"
)

func TestScopes(t *testing.T) {
	userID := uuid.New()
	anon := session.NewSession("anon-token", nil, time.Hour)
	authed := session.NewSession("user-token", &userID, time.Hour)

	withSession := func(s *session.Session) *http.Request {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		return req.WithContext(session.WithSession(req.Context(), s))
	}

	tests := []struct {
		name    string
		fn      alertshttp.ScopeFunc
		req     *http.Request
		want    string
		wantErr error
	}{
		{"session token", alertshttp.SessionScope, withSession(anon), "anon-token", nil},
		{"no session", alertshttp.SessionScope, httptest.NewRequest(http.MethodGet, "/", nil), "", alertshttp.ErrNoScope},
		{"user id", alertshttp.UserScope, withSession(authed), userID.String(), nil},
		{"anonymous user", alertshttp.UserScope, withSession(anon), "", alertshttp.ErrNoScope},
		{"header", alertshttp.HeaderScope(scopeHeader), scopedRequest(http.MethodGet, "/", "u1"), "u1", nil},
		{"missing header", alertshttp.HeaderScope(scopeHeader), scopedRequest(http.MethodGet, "/", ""), "", alertshttp.ErrNoScope},
		{
			"first match wins",
			alertshttp.FirstScope(alertshttp.UserScope, alertshttp.SessionScope),
			withSession(anon),
			"anon-token",
			nil,
		},
		{"nothing matches", alertshttp.FirstScope(alertshttp.UserScope), withSession(anon), "", alertshttp.ErrNoScope},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.fn(tt.req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("first scope stops on hard errors", func(t *testing.T) {
		boom := errors.New("lookup failed")
		fn := alertshttp.FirstScope(
			func(r *http.Request) (string, error) { return "", boom },
			alertshttp.HeaderScope(scopeHeader),
		)
		_, err := fn(scopedRequest(http.MethodGet, "/", "u1"))
		assert.ErrorIs(t, err, boom)
	})
}
