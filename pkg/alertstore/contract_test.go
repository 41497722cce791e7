package alertstore_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/alertkit/pkg/alerts"
)

func newAlert(id string, typ alerts.Type, msg string) alerts.Alert {
	return alerts.Alert{
		ID:        id,
		Type:      typ,
		Message:   msg,
		Kind:      alerts.KindAlert,
		CreatedAt: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func ids(list []alerts.Alert) []string {
	out := make([]string, len(list))
	for i, a := range list {
		out[i] = a.ID
	}
	return out
}

// testStoreContract exercises the behaviour every alerts.Store must provide.
// newScope returns a scope that is valid and empty for the store under test.
func testStoreContract(t *testing.T, store alerts.Store, newScope func(t *testing.T) string) {
	t.Helper()
	ctx := context.Background()

	t.Run("empty scope loads empty list", func(t *testing.T) {
		list, err := store.Load(ctx, newScope(t))
		require.NoError(t, err)
		assert.NotNil(t, list)
		assert.Empty(t, list)
	})

	t.Run("append keeps order and ignores known ids", func(t *testing.T) {
		scope := newScope(t)
		require.NoError(t, store.Append(ctx, scope, newAlert("a", alerts.TypeSuccess, "one")))
		require.NoError(t, store.Append(ctx, scope, newAlert("b", alerts.TypeError, "two")))
		require.NoError(t, store.Append(ctx, scope, newAlert("a", alerts.TypeSuccess, "again")))

		list, err := store.Load(ctx, scope)
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, ids(list))
		assert.Equal(t, "one", list[0].Message)
		assert.Equal(t, alerts.TypeError, list[1].Type)
	})

	t.Run("timing fields survive", func(t *testing.T) {
		scope := newScope(t)
		exp := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
		a := newAlert("t", alerts.TypeInfo, "timed")
		a.ExpiresAt = &exp
		a.AutoDismiss = true
		a.AutoDismissDelay = 3000
		a.DataAttributes = map[string]string{"k": "v"}
		require.NoError(t, store.Append(ctx, scope, a))

		list, err := store.Load(ctx, scope)
		require.NoError(t, err)
		require.Len(t, list, 1)
		require.NotNil(t, list[0].ExpiresAt)
		assert.True(t, exp.Equal(*list[0].ExpiresAt))
		assert.Equal(t, 3000, list[0].AutoDismissDelay)
		assert.True(t, list[0].AutoDismiss)
		assert.Equal(t, "v", list[0].DataAttributes["k"])
	})

	t.Run("replace and clear", func(t *testing.T) {
		scope := newScope(t)
		require.NoError(t, store.Append(ctx, scope, newAlert("a", alerts.TypeInfo, "old")))
		require.NoError(t, store.Replace(ctx, scope, []alerts.Alert{
			newAlert("x", alerts.TypeInfo, "1"),
			newAlert("y", alerts.TypeInfo, "2"),
			newAlert("x", alerts.TypeInfo, "dup"),
		}))

		list, err := store.Load(ctx, scope)
		require.NoError(t, err)
		assert.Equal(t, []string{"x", "y"}, ids(list))

		require.NoError(t, store.Replace(ctx, scope, nil))
		list, err = store.Load(ctx, scope)
		require.NoError(t, err)
		assert.Empty(t, list)

		require.NoError(t, store.Append(ctx, scope, newAlert("z", alerts.TypeInfo, "3")))
		require.NoError(t, store.Clear(ctx, scope))
		list, err = store.Load(ctx, scope)
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("scopes are isolated", func(t *testing.T) {
		a, b := newScope(t), newScope(t)
		require.NoError(t, store.Append(ctx, a, newAlert("a", alerts.TypeInfo, "mine")))

		list, err := store.Load(ctx, b)
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("concurrent appends are not lost", func(t *testing.T) {
		scope := newScope(t)
		const n = 10

		var wg sync.WaitGroup
		errs := make(chan error, n)
		for i := range n {
			wg.Add(1)
			go func() {
				defer wg.Done()
				errs <- store.Append(ctx, scope, newAlert(fmt.Sprintf("c%d", i), alerts.TypeInfo, "x"))
			}()
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			require.NoError(t, err)
		}

		list, err := store.Load(ctx, scope)
		require.NoError(t, err)
		assert.Len(t, list, n)
	})
}

func uniqueScope(prefix string) func(t *testing.T) string {
	var (
		mu sync.Mutex
		n  int
	)
	return func(t *testing.T) string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("%s-%d-%d", prefix, time.Now().UnixNano(), n)
	}
}
