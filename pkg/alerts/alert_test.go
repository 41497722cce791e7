package alerts_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/alertkit/pkg/alerts"
)

func TestAlert_IsExpired(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	before := now.Add(-time.Second)
	after := now.Add(time.Second)

	tests := []struct {
		name      string
		expiresAt *time.Time
		want      bool
	}{
		{"no expiry", nil, false},
		{"in the past", &before, true},
		{"exactly now", &now, true},
		{"in the future", &after, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := alerts.Alert{ExpiresAt: tt.expiresAt}
			assert.Equal(t, tt.want, a.IsExpired(now))
			assert.Equal(t, tt.expiresAt != nil, a.HasExpiry())
		})
	}
}

func TestAlert_AutoDismissAfter(t *testing.T) {
	assert.Zero(t, alerts.Alert{AutoDismissDelay: 3000}.AutoDismissAfter())
	assert.Equal(t, 3*time.Second, alerts.Alert{AutoDismiss: true, AutoDismissDelay: 3000}.AutoDismissAfter())
}

func TestAlert_DataAttributeList(t *testing.T) {
	a := alerts.Alert{DataAttributes: map[string]string{"z": "1", "a": "2", "m": "3"}}

	assert.Equal(t, []alerts.DataAttribute{
		{Key: "a", Value: "2"},
		{Key: "m", Value: "3"},
		{Key: "z", Value: "1"},
	}, a.DataAttributeList())

	assert.Nil(t, alerts.Alert{}.DataAttributeList())
}

func TestType_IsCanonical(t *testing.T) {
	for _, typ := range []alerts.Type{alerts.TypeSuccess, alerts.TypeError, alerts.TypeWarning, alerts.TypeInfo} {
		assert.True(t, typ.IsCanonical(), typ)
	}
	assert.False(t, alerts.Type("danger").IsCanonical())
	assert.False(t, alerts.Type("").IsCanonical())
}
