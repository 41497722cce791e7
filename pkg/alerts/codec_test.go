package alerts_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/alertkit/pkg/alerts"
)

func TestCodec(t *testing.T) {
	t.Run("preserves timing fields", func(t *testing.T) {
		exp := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
		in := []alerts.Alert{{
			ID:               "a",
			Type:             alerts.TypeWarning,
			Message:          "m",
			Kind:             alerts.KindToast,
			AutoDismiss:      true,
			AutoDismissDelay: 3000,
			ExpiresAt:        &exp,
			DataAttributes:   map[string]string{"k": "v"},
		}}

		data, err := alerts.Marshal(in)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"alert_type":"toast"`)
		assert.Contains(t, string(data), `"auto_dismiss_delay":3000`)

		out, err := alerts.Unmarshal(data)
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, exp, out[0].ExpiresAt.UTC())
		assert.Equal(t, "v", out[0].DataAttributes["k"])
	})

	t.Run("nil list encodes as empty array", func(t *testing.T) {
		data, err := alerts.Marshal(nil)
		require.NoError(t, err)
		assert.Equal(t, "[]", string(data))
	})

	t.Run("empty and null input", func(t *testing.T) {
		out, err := alerts.Unmarshal(nil)
		require.NoError(t, err)
		assert.NotNil(t, out)
		assert.Empty(t, out)

		out, err = alerts.Unmarshal([]byte("null"))
		require.NoError(t, err)
		assert.NotNil(t, out)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := alerts.Unmarshal([]byte("{not json"))
		assert.ErrorIs(t, err, alerts.ErrInvalidPayload)
	})
}
