package cookie_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/alertkit/pkg/cookie"
)

const (
	secretA = "a-very-long-secret-key-for-cookies-0001"
	secretB = "a-very-long-secret-key-for-cookies-0002"
)

func roundTrip(w *httptest.ResponseRecorder) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range w.Result().Cookies() {
		if c.MaxAge >= 0 {
			r.AddCookie(c)
		}
	}
	return r
}

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		secrets []string
		wantErr error
	}{
		{name: "valid", secrets: []string{secretA}},
		{name: "rotation", secrets: []string{secretA, "", secretB}},
		{name: "none", secrets: nil, wantErr: cookie.ErrNoSecret},
		{name: "only empty", secrets: []string{""}, wantErr: cookie.ErrNoSecret},
		{name: "too short", secrets: []string{"short"}, wantErr: cookie.ErrSecretTooShort},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			m, err := cookie.New(tt.secrets)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, m)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, m)
		})
	}
}

func TestManager_SetGet(t *testing.T) {
	t.Parallel()
	m, err := cookie.New([]string{secretA}, cookie.WithSecure(true))
	require.NoError(t, err)

	w := httptest.NewRecorder()
	require.NoError(t, m.Set(w, "theme", "dark", cookie.WithMaxAge(60)))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "/", cookies[0].Path)
	assert.Equal(t, 60, cookies[0].MaxAge)
	assert.True(t, cookies[0].Secure)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookies[0].SameSite)

	v, err := m.Get(roundTrip(w), "theme")
	require.NoError(t, err)
	assert.Equal(t, "dark", v)

	_, err = m.Get(httptest.NewRequest(http.MethodGet, "/", nil), "theme")
	assert.ErrorIs(t, err, cookie.ErrCookieNotFound)
}

func TestManager_Encrypted(t *testing.T) {
	t.Parallel()
	m, err := cookie.New([]string{secretA})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	require.NoError(t, m.SetEncrypted(w, "sid", "token-123"))
	assert.NotContains(t, w.Result().Cookies()[0].Value, "token-123")

	v, err := m.GetEncrypted(roundTrip(w), "sid")
	require.NoError(t, err)
	assert.Equal(t, "token-123", v)

	t.Run("rotated key still decrypts", func(t *testing.T) {
		rotated, err := cookie.New([]string{secretB, secretA})
		require.NoError(t, err)
		v, err := rotated.GetEncrypted(roundTrip(w), "sid")
		require.NoError(t, err)
		assert.Equal(t, "token-123", v)
	})

	t.Run("unknown key fails", func(t *testing.T) {
		other, err := cookie.New([]string{secretB})
		require.NoError(t, err)
		_, err = other.GetEncrypted(roundTrip(w), "sid")
		assert.ErrorIs(t, err, cookie.ErrDecryptionFailed)
	})

	t.Run("garbage value", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: "sid", Value: "!!!"})
		_, err := m.GetEncrypted(r, "sid")
		assert.ErrorIs(t, err, cookie.ErrInvalidFormat)
	})
}

func TestManager_Flash(t *testing.T) {
	t.Parallel()
	m, err := cookie.New([]string{secretA})
	require.NoError(t, err)

	type item struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	}
	in := []item{{Type: "success", Message: "Saved"}, {Type: "info", Message: "Welcome back"}}

	w := httptest.NewRecorder()
	require.NoError(t, m.SetFlash(w, "alerts", in))

	read := httptest.NewRecorder()
	var out []item
	require.NoError(t, m.GetFlash(read, roundTrip(w), "alerts", &out))
	assert.Equal(t, in, out)

	deleted := read.Result().Cookies()
	require.Len(t, deleted, 1)
	assert.Equal(t, "__flash_alerts", deleted[0].Name)
	assert.Negative(t, deleted[0].MaxAge)

	err = m.GetFlash(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil), "alerts", &out)
	assert.ErrorIs(t, err, cookie.ErrCookieNotFound)
}

func TestManager_FlashTamperedIsDeleted(t *testing.T) {
	t.Parallel()
	m, err := cookie.New([]string{secretA})
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: "__flash_alerts", Value: "garbage"})
	w := httptest.NewRecorder()

	var out []string
	assert.Error(t, m.GetFlash(w, r, "alerts", &out))
	require.Len(t, w.Result().Cookies(), 1)
	assert.Negative(t, w.Result().Cookies()[0].MaxAge)
}

func TestManager_ValueTooLarge(t *testing.T) {
	t.Parallel()
	m, err := cookie.New([]string{secretA})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	err = m.SetFlash(w, "alerts", strings.Repeat("x", cookie.MaxValueSize))
	assert.ErrorIs(t, err, cookie.ErrValueTooLarge)
	assert.Empty(t, w.Result().Cookies())
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()

	m, err := cookie.NewFromConfig(cookie.Config{
		Secrets:  " " + secretA + " , " + secretB,
		Path:     "/app",
		Domain:   "example.com",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	require.NoError(t, m.Set(w, "k", "v"))
	c := w.Result().Cookies()[0]
	assert.Equal(t, "/app", c.Path)
	assert.Equal(t, "example.com", c.Domain)
	assert.Equal(t, http.SameSiteStrictMode, c.SameSite)

	_, err = cookie.NewFromConfig(cookie.Config{})
	assert.ErrorIs(t, err, cookie.ErrNoSecret)
}
