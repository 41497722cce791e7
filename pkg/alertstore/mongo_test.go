package alertstore_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/dmitrymomot/alertkit/pkg/alerts"
)

func TestMongo_DocumentUsesJSONKeys(t *testing.T) {
	t.Parallel()

	expires := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	alert := alerts.NewBuilder(alerts.TypeWarning, "Disk almost full").
		WithTitle("Storage").
		AsToast().
		Flash(3*time.Second).
		ExpiresAt(expires).
		WithDataAttribute("volume", "data").
		Build()

	raw, err := bson.Marshal(alert)
	require.NoError(t, err)

	var doc bson.M
	require.NoError(t, bson.Unmarshal(raw, &doc))
	for _, key := range []string{"id", "type", "message", "title", "alert_type", "auto_dismiss", "auto_dismiss_delay", "expires_at", "data_attributes", "created_at"} {
		assert.Contains(t, doc, key)
	}
	for _, key := range []string{"kind", "autodismissdelay", "expiresat", "dataattributes"} {
		assert.NotContains(t, doc, key)
	}
	assert.Equal(t, "toast", doc["alert_type"])
	assert.NotContains(t, doc, "dismissed_at")

	var decoded alerts.Alert
	require.NoError(t, bson.Unmarshal(raw, &decoded))
	assert.Equal(t, alert.ID, decoded.ID)
	assert.Equal(t, alerts.KindToast, decoded.Kind)
	assert.Equal(t, 3000, decoded.AutoDismissDelay)
	assert.Equal(t, map[string]string{"volume": "data"}, decoded.DataAttributes)
	require.NotNil(t, decoded.ExpiresAt)
	assert.True(t, expires.Equal(*decoded.ExpiresAt))
}
