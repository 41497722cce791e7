package broadcast_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/alertkit/pkg/broadcast"
)

type event struct {
	Scope string
	IDs   []string
}

func receive[T any](t *testing.T, sub broadcast.Subscriber[T]) (broadcast.Message[T], bool) {
	t.Helper()
	select {
	case msg, ok := <-sub.Receive(context.Background()):
		return msg, ok
	case <-time.After(200 * time.Millisecond):
		t.Fatal("timed out waiting for message")
		return broadcast.Message[T]{}, false
	}
}

func TestMemoryBroadcaster_Delivery(t *testing.T) {
	b := broadcast.NewMemoryBroadcaster[event](4)
	defer b.Close()
	ctx := context.Background()

	first := b.Subscribe(ctx)
	second := b.Subscribe(ctx)
	assert.Equal(t, 2, b.Len())

	require.NoError(t, b.Broadcast(ctx, broadcast.Message[event]{Data: event{Scope: "u1", IDs: []string{"a", "b"}}}))

	for _, sub := range []broadcast.Subscriber[event]{first, second} {
		msg, ok := receive(t, sub)
		require.True(t, ok)
		assert.Equal(t, "u1", msg.Data.Scope)
		assert.Equal(t, []string{"a", "b"}, msg.Data.IDs)
	}
}

func TestMemoryBroadcaster_ContextEndsSubscription(t *testing.T) {
	b := broadcast.NewMemoryBroadcaster[string](4)
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	sub := b.Subscribe(ctx)
	cancel()

	_, ok := receive(t, sub)
	assert.False(t, ok)
	assert.Eventually(t, func() bool { return b.Len() == 0 }, time.Second, 5*time.Millisecond)
}

func TestMemoryBroadcaster_SlowSubscriberDropped(t *testing.T) {
	b := broadcast.NewMemoryBroadcaster[int](1)
	defer b.Close()
	ctx := context.Background()

	slow := b.Subscribe(ctx)
	for i := range 5 {
		require.NoError(t, b.Broadcast(ctx, broadcast.Message[int]{Data: i}))
	}

	msg, ok := receive(t, slow)
	require.True(t, ok)
	assert.Equal(t, 0, msg.Data)

	_, ok = receive(t, slow)
	assert.False(t, ok, "dropped subscriber must be closed")
}

func TestMemoryBroadcaster_Close(t *testing.T) {
	b := broadcast.NewMemoryBroadcaster[string](0)
	ctx := context.Background()
	sub := b.Subscribe(ctx)

	require.NoError(t, b.Close())
	require.NoError(t, b.Close())

	_, ok := receive(t, sub)
	assert.False(t, ok)

	late := b.Subscribe(ctx)
	_, ok = receive(t, late)
	assert.False(t, ok)
	assert.NoError(t, b.Broadcast(ctx, broadcast.Message[string]{Data: "ignored"}))
	assert.Equal(t, 0, b.Len())
}

func TestMemoryBroadcaster_CloseWithLiveSubscriber(t *testing.T) {
	b := broadcast.NewMemoryBroadcaster[string](1)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sub := b.Subscribe(ctx)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = b.Close()
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("close waited for the subscriber context")
	}
	_, ok := receive(t, sub)
	assert.False(t, ok)
}

func TestMemoryBroadcaster_Concurrent(t *testing.T) {
	b := broadcast.NewMemoryBroadcaster[int](1000)
	defer b.Close()
	ctx := context.Background()
	sub := b.Subscribe(ctx)

	var wg sync.WaitGroup
	for w := range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 50 {
				_ = b.Broadcast(ctx, broadcast.Message[int]{Data: w*100 + i})
			}
		}()
	}
	wg.Wait()

	seen := make(map[int]struct{})
	for len(seen) < 500 {
		msg, ok := receive(t, sub)
		require.True(t, ok)
		seen[msg.Data] = struct{}{}
	}
	assert.Len(t, seen, 500)
}
