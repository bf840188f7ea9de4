package pubsub

import (
	"context"
	"sync"
	"time"
)

const defaultBufferSize = 64

// Broker fans events out to any number of subscribers. Publishing never
// blocks: events are dropped for subscribers whose channel is full.
type Broker[T any] struct {
	subs       map[chan Event[T]]struct{}
	mu         sync.RWMutex
	done       chan struct{}
	bufferSize int
}

// NewBroker creates a broker with the default per-subscriber buffer.
func NewBroker[T any]() *Broker[T] {
	return NewBrokerWithBuffer[T](defaultBufferSize)
}

// NewBrokerWithBuffer creates a broker with a custom per-subscriber buffer.
func NewBrokerWithBuffer[T any](size int) *Broker[T] {
	return &Broker[T]{
		subs:       make(map[chan Event[T]]struct{}),
		done:       make(chan struct{}),
		bufferSize: size,
	}
}

// Subscribe returns a channel of future events. The subscription ends — and
// the channel closes — when ctx is cancelled or the broker is closed.
// Subscribing to a closed broker yields an already-closed channel.
func (b *Broker[T]) Subscribe(ctx context.Context) <-chan Event[T] {
	b.mu.Lock()
	defer b.mu.Unlock()

	select {
	case <-b.done:
		ch := make(chan Event[T])
		close(ch)
		return ch
	default:
	}

	sub := make(chan Event[T], b.bufferSize)
	b.subs[sub] = struct{}{}

	go func() {
		<-ctx.Done()
		b.mu.Lock()
		defer b.mu.Unlock()

		select {
		case <-b.done:
			return // Close already tore the subscription down.
		default:
		}

		delete(b.subs, sub)
		close(sub)
	}()

	return sub
}

// Publish delivers an event to every subscriber that has room for it.
func (b *Broker[T]) Publish(eventType EventType, payload T) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	select {
	case <-b.done:
		return
	default:
	}

	event := Event[T]{
		Type:      eventType,
		Payload:   payload,
		Timestamp: time.Now(),
	}

	for sub := range b.subs {
		select {
		case sub <- event:
		default:
			// Subscriber is not keeping up; drop rather than block.
		}
	}
}

// Close shuts the broker down and closes all subscriber channels.
func (b *Broker[T]) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	select {
	case <-b.done:
		return
	default:
	}

	close(b.done)
	for sub := range b.subs {
		close(sub)
	}
	b.subs = nil
}

// SubscriberCount returns the number of active subscriptions.
func (b *Broker[T]) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}
