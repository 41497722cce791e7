package relay_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/alertkit/pkg/alerts"
	"github.com/dmitrymomot/alertkit/pkg/relay"
)

func TestDispatcher_Publish(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		setupStore func(*MockStore)
		setupRelay func(*MockRelay)
		wantErr    bool
	}{
		{
			name: "stores then relays",
			setupStore: func(s *MockStore) {
				s.On("Append", ctx, "u1", mock.AnythingOfType("alerts.Alert")).Return(nil).Twice()
			},
			setupRelay: func(r *MockRelay) {
				r.On("Deliver", ctx, "u1", sample()).Return(nil)
			},
		},
		{
			name: "relay failure is not returned",
			setupStore: func(s *MockStore) {
				s.On("Append", ctx, "u1", mock.AnythingOfType("alerts.Alert")).Return(nil).Twice()
			},
			setupRelay: func(r *MockRelay) {
				r.On("Deliver", ctx, "u1", sample()).Return(errors.New("push down"))
			},
		},
		{
			name: "store failure skips relay",
			setupStore: func(s *MockStore) {
				s.On("Append", ctx, "u1", mock.AnythingOfType("alerts.Alert")).Return(alerts.ErrStoreUnavailable).Once()
			},
			setupRelay: func(r *MockRelay) {},
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := new(MockStore)
			r := new(MockRelay)
			tt.setupStore(store)
			tt.setupRelay(r)

			err := relay.NewDispatcher(store, r).Publish(ctx, "u1", sample()...)
			if tt.wantErr {
				assert.ErrorIs(t, err, alerts.ErrStoreUnavailable)
				r.AssertNotCalled(t, "Deliver", mock.Anything, mock.Anything, mock.Anything)
			} else {
				require.NoError(t, err)
			}
			store.AssertExpectations(t)
			r.AssertExpectations(t)
		})
	}
}

func TestDispatcher_Send(t *testing.T) {
	ctx := context.Background()
	store := alerts.NewMemoryStore()
	push := relay.NewBroadcast(4)
	defer push.Close()

	sub := push.Subscribe(ctx, "u1")
	d := relay.NewDispatcher(store, push)

	a, err := d.Send(ctx, "u1", alerts.TypeInfo, "Export ready", "Reports", alerts.Options{Priority: alerts.Int(3)})
	require.NoError(t, err)
	assert.Equal(t, 3, a.Priority)

	stored, err := store.Load(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, a.ID, stored[0].ID)

	msg := <-sub.Receive(ctx)
	assert.Equal(t, a.ID, msg.Data.Alerts[0].ID)

	require.NoError(t, relay.NewDispatcher(store, nil).Publish(ctx, "u1"))
}
