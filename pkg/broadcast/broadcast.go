package broadcast

import (
	"context"
	"sync"
)

// Message carries one payload to every subscriber.
type Message[T any] struct {
	Data T
}

// Subscriber is one receiving end of a Broadcaster.
type Subscriber[T any] interface {
	// Receive returns the message channel. It is closed when the subscriber
	// is closed, dropped as too slow, or the broadcaster shuts down.
	Receive(ctx context.Context) <-chan Message[T]

	// Close stops delivery. Safe to call more than once.
	Close() error
}

// Broadcaster fans messages out to its subscribers without blocking the sender.
type Broadcaster[T any] interface {
	// Subscribe registers a subscriber that lives until ctx is done or it is closed.
	Subscribe(ctx context.Context) Subscriber[T]

	// Broadcast delivers msg to every subscriber that has buffer space left.
	Broadcast(ctx context.Context, msg Message[T]) error

	// Close closes every subscriber. Later subscriptions are born closed.
	Close() error
}

type subscriber[T any] struct {
	ch     chan Message[T]
	closed bool
	mu     sync.RWMutex
}

func newSubscriber[T any](bufferSize int) *subscriber[T] {
	return &subscriber[T]{ch: make(chan Message[T], bufferSize)}
}

func (s *subscriber[T]) Receive(context.Context) <-chan Message[T] {
	return s.ch
}

func (s *subscriber[T]) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.closed = true
		close(s.ch)
	}
	return nil
}

// send reports false when the subscriber is closed or its buffer is full.
func (s *subscriber[T]) send(msg Message[T]) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return false
	}
	select {
	case s.ch <- msg:
		return true
	default:
		return false
	}
}
