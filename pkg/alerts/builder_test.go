package alerts_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/alertkit/pkg/alerts"
)

func TestBuilder_Defaults(t *testing.T) {
	a := alerts.NewBuilder(alerts.TypeInfo, "hello").Build()

	assert.NotEmpty(t, a.ID)
	assert.Equal(t, alerts.TypeInfo, a.Type)
	assert.Equal(t, "hello", a.Message)
	assert.Equal(t, alerts.KindAlert, a.Kind)
	assert.True(t, a.Dismissible)
	assert.False(t, a.AutoDismiss)
	assert.Nil(t, a.ExpiresAt)
	assert.False(t, a.CreatedAt.IsZero())
}

func TestBuilder_Setters(t *testing.T) {
	clock := newFakeClock()
	m := newTestManager(clock)

	a := m.New(alerts.TypeError, "Email is invalid").
		WithTitle("Validation").
		WithIcon("bi-x").
		WithClass("shadow").
		WithStyle("color: red").
		WithContext("signup").
		WithField("email").
		WithForm("signup-form").
		WithPriority(7).
		WithTheme("tailwind").
		WithPosition("bottom-left").
		WithAnimation("slide").
		WithDataAttribute("track", "signup").
		WithDataAttributes(map[string]string{"step": "2"}).
		WithHTMLContent("<b>bold</b>").
		Dismissible(false).
		AsInline().
		Commit()

	assert.Equal(t, "Validation", a.Title)
	assert.Equal(t, "bi-x", a.Icon)
	assert.Equal(t, "shadow", a.Class)
	assert.Equal(t, "color: red", a.Style)
	assert.Equal(t, "signup", a.Context)
	assert.Equal(t, "email", a.Field)
	assert.Equal(t, "signup-form", a.Form)
	assert.Equal(t, 7, a.Priority)
	assert.Equal(t, "tailwind", a.Theme)
	assert.Equal(t, "bottom-left", a.Position)
	assert.Equal(t, "slide", a.Animation)
	assert.Equal(t, map[string]string{"track": "signup", "step": "2"}, a.DataAttributes)
	assert.Equal(t, "<b>bold</b>", a.HTMLContent)
	assert.False(t, a.Dismissible)
	assert.Equal(t, alerts.KindInline, a.Kind)
	assert.Equal(t, clock.Now(), a.CreatedAt)
}

func TestBuilder_Kinds(t *testing.T) {
	tests := []struct {
		name  string
		apply func(*alerts.Builder) *alerts.Builder
		want  alerts.Kind
	}{
		{"alert", (*alerts.Builder).AsAlert, alerts.KindAlert},
		{"toast", (*alerts.Builder).AsToast, alerts.KindToast},
		{"modal", (*alerts.Builder).AsModal, alerts.KindModal},
		{"inline", (*alerts.Builder).AsInline, alerts.KindInline},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := alerts.NewBuilder(alerts.TypeInfo, "x").AsModal()
			assert.Equal(t, tt.want, tt.apply(b).Build().Kind)
		})
	}
}

func TestBuilder_Timing(t *testing.T) {
	t.Run("flash", func(t *testing.T) {
		a := alerts.NewBuilder(alerts.TypeInfo, "x").Flash(3 * time.Second).Build()

		assert.True(t, a.AutoDismiss)
		assert.Equal(t, 3000, a.AutoDismissDelay)
		assert.Nil(t, a.ExpiresAt)
	})

	t.Run("auto dismiss without delay uses default", func(t *testing.T) {
		a := alerts.NewBuilder(alerts.TypeInfo, "x").AutoDismiss(true).Build()

		assert.True(t, a.AutoDismiss)
		assert.Equal(t, alerts.DefaultAutoDismissDelay, a.AutoDismissDelay)
	})

	t.Run("explicit delay survives auto dismiss toggle", func(t *testing.T) {
		a := alerts.NewBuilder(alerts.TypeInfo, "x").
			AutoDismissDelay(1500 * time.Millisecond).
			AutoDismiss(true).
			Build()

		assert.Equal(t, 1500, a.AutoDismissDelay)
	})

	t.Run("temporary sets expiry and flash", func(t *testing.T) {
		clock := newFakeClock()
		m := newTestManager(clock)

		a := m.New(alerts.TypeWarning, "x").Temporary(10 * time.Second).Commit()

		require.NotNil(t, a.ExpiresAt)
		assert.Equal(t, clock.Now().Add(10*time.Second), *a.ExpiresAt)
		assert.True(t, a.AutoDismiss)
		assert.Equal(t, 10000, a.AutoDismissDelay)
	})

	t.Run("absolute expiry", func(t *testing.T) {
		at := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
		a := alerts.NewBuilder(alerts.TypeInfo, "x").ExpiresAt(at).Build()

		require.NotNil(t, a.ExpiresAt)
		assert.Equal(t, at, *a.ExpiresAt)
	})

	t.Run("negative expiry is already expired", func(t *testing.T) {
		clock := newFakeClock()
		m := newTestManager(clock)
		a := m.New(alerts.TypeInfo, "x").ExpiresIn(-10 * time.Second).Build()

		assert.True(t, a.IsExpired(clock.Now()))
	})
}

func TestBuilder_Commit(t *testing.T) {
	t.Run("nothing is stored before commit", func(t *testing.T) {
		m := alerts.NewManager()
		b := m.New(alerts.TypeInfo, "x")

		_ = b.Build()
		assert.Equal(t, 0, m.Count())

		b.Commit()
		assert.Equal(t, 1, m.Count())
	})

	t.Run("double commit stores once", func(t *testing.T) {
		m := alerts.NewManager()
		b := m.New(alerts.TypeInfo, "x")

		first := b.Commit()
		second := b.Commit()

		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, 1, m.Count())
	})

	t.Run("setters after commit do not change stored alert", func(t *testing.T) {
		m := alerts.NewManager()
		b := m.New(alerts.TypeInfo, "x")
		b.Commit()

		b.WithTitle("late")
		stored, _ := m.First()
		assert.Empty(t, stored.Title)
	})

	t.Run("unbound builder commit does not panic", func(t *testing.T) {
		a := alerts.NewBuilder(alerts.TypeSuccess, "x").Commit()
		assert.Equal(t, "x", a.Message)
	})
}

func TestBuilder_WithOptions(t *testing.T) {
	a := alerts.NewBuilder(alerts.TypeInfo, "x").
		WithDataAttribute("keep", "1").
		WithOptions(alerts.Options{
			Dismissible:    alerts.Bool(false),
			AutoDismiss:    alerts.Bool(true),
			Priority:       alerts.Int(2),
			Kind:           alerts.KindToast,
			DataAttributes: map[string]string{"add": "2"},
		}).
		Build()

	assert.False(t, a.Dismissible)
	assert.True(t, a.AutoDismiss)
	assert.Equal(t, alerts.DefaultAutoDismissDelay, a.AutoDismissDelay)
	assert.Equal(t, 2, a.Priority)
	assert.Equal(t, alerts.KindToast, a.Kind)
	assert.Equal(t, map[string]string{"keep": "1", "add": "2"}, a.DataAttributes)
}
