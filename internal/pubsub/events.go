// Package pubsub provides a small generic publish/subscribe broker. The
// harness uses it to fan debug-log entries out to live subscribers without
// coupling the logger to any particular consumer.
package pubsub

import (
	"context"
	"time"
)

// EventType labels what happened to the payload.
type EventType string

// EmittedEvent is published for every new payload (e.g. a log entry).
const EmittedEvent EventType = "emitted"

// Event is a published payload with its type and publication time.
type Event[T any] struct {
	Type      EventType
	Payload   T
	Timestamp time.Time
}

// Subscriber provides a subscription channel for events.
type Subscriber[T any] interface {
	Subscribe(ctx context.Context) <-chan Event[T]
}

// Publisher allows publishing events with a typed payload.
type Publisher[T any] interface {
	Publish(eventType EventType, payload T)
}
