package session_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/alertkit/pkg/cookie"
	"github.com/dmitrymomot/alertkit/pkg/session"
)

func newManager(t *testing.T, opts ...session.Option) (*session.Manager, *session.MemoryStore) {
	t.Helper()
	cookies, err := cookie.New([]string{"test-secret-key-that-is-long-enough"})
	require.NoError(t, err)

	store := session.NewMemoryStore(0)
	cfg := session.DefaultConfig()
	cfg.CookieName = "test-sid"
	cfg.CleanupInterval = 0

	m, err := session.New(append([]session.Option{
		session.WithConfig(cfg),
		session.WithStore(store),
		session.WithCookieManager(cookies),
	}, opts...)...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Close() })
	return m, store
}

// replay copies response cookies onto a new request.
func replay(w *httptest.ResponseRecorder) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range w.Result().Cookies() {
		r.AddCookie(c)
	}
	return r
}

func TestManager_Ensure(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	m, store := newManager(t)

	w := httptest.NewRecorder()
	first, err := m.Ensure(ctx, w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.False(t, first.IsAuthenticated())

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "test-sid", cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	second, err := m.Ensure(ctx, httptest.NewRecorder(), replay(w))
	require.NoError(t, err)
	assert.Equal(t, first.Token, second.Token)
	assert.Equal(t, 1, store.Len())
}

func TestManager_EnsureReplacesExpired(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	m, store := newManager(t)

	w := httptest.NewRecorder()
	first, err := m.Ensure(ctx, w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)

	first.ExpiresAt = time.Now().Add(-time.Second)
	require.NoError(t, store.Update(ctx, first))

	second, err := m.Ensure(ctx, httptest.NewRecorder(), replay(w))
	require.NoError(t, err)
	assert.NotEqual(t, first.Token, second.Token)
}

func TestManager_Authenticate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	m, store := newManager(t)

	w := httptest.NewRecorder()
	anon, err := m.Ensure(ctx, w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	anon.Set("flash_alerts", "[]")
	require.NoError(t, store.Update(ctx, anon))

	userID := uuid.New()
	w2 := httptest.NewRecorder()
	authed, err := m.Authenticate(ctx, w2, replay(w), userID)
	require.NoError(t, err)
	assert.NotEqual(t, anon.Token, authed.Token)
	assert.True(t, authed.IsAuthenticated())

	_, err = store.Get(ctx, anon.Token)
	assert.ErrorIs(t, err, session.ErrSessionNotFound)

	got, err := m.Get(ctx, replay(w2))
	require.NoError(t, err)
	assert.Equal(t, userID, *got.UserID)
	_, found := got.GetString("flash_alerts")
	assert.True(t, found, "session data follows the rotated token")

	rctx := session.WithSession(ctx, got)
	id, ok := session.UserIDFromContext(rctx)
	assert.True(t, ok)
	assert.Equal(t, userID.String(), id)
}

func TestManager_Destroy(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	m, store := newManager(t)

	w := httptest.NewRecorder()
	_, err := m.Ensure(ctx, w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)

	require.NoError(t, m.Destroy(ctx, httptest.NewRecorder(), replay(w)))
	assert.Equal(t, 0, store.Len())
}

func TestManager_HeaderTransport(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	cfg := session.DefaultConfig()
	cfg.HeaderName = "X-Session"
	cfg.CleanupInterval = 0
	m, err := session.NewFromConfig(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Close() })

	w := httptest.NewRecorder()
	sess, err := m.Ensure(ctx, w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, "Bearer "+sess.Token, w.Header().Get("X-Session"))
	assert.NotEmpty(t, w.Header().Get("X-Session-Expires"))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("X-Session", "Bearer "+sess.Token)
	got, err := m.Get(ctx, r)
	require.NoError(t, err)
	assert.Equal(t, sess.ID, got.ID)
}

func TestNew_RequiresCookieManager(t *testing.T) {
	t.Parallel()
	_, err := session.New(session.WithConfig(session.Config{CookieName: "sid"}))
	assert.ErrorIs(t, err, session.ErrNoCookieManager)
}

func TestMiddleware(t *testing.T) {
	t.Parallel()
	m, _ := newManager(t)

	var seen *session.Session
	handler := m.EnsureSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = session.FromContext(r.Context())
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NotNil(t, seen)
	issued := seen.Token

	var resolved *session.Session
	lookup := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resolved, _ = session.FromContext(r.Context())
	}))
	lookup.ServeHTTP(httptest.NewRecorder(), replay(w))
	require.NotNil(t, resolved)
	assert.Equal(t, issued, resolved.Token)

	resolved = nil
	lookup.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Nil(t, resolved)
}
