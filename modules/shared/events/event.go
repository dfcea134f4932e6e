// Package events provides the event primitives shared by the storefront
// models, views and orchestrator. Components publish events without knowing
// who will handle them.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// EventType is the wire name of an event (e.g. "cart:item-added").
type EventType string

func (t EventType) String() string { return string(t) }

// Event is a payload bound to exactly one EventType.
// Implementations must be value types so that the zero value reports its type.
type Event interface {
	EventType() EventType
}

// Envelope wraps a published event with delivery metadata.
// Catch-all observers receive envelopes; typed handlers receive the payload.
type Envelope struct {
	ID        string
	Type      EventType
	Timestamp time.Time
	Payload   Event
}

func NewEnvelope(event Event) Envelope {
	return Envelope{
		ID:        uuid.New().String(),
		Type:      event.EventType(),
		Timestamp: time.Now().UTC(),
		Payload:   event,
	}
}

// Publisher publishes events to every subscriber of their type.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// Handler handles events of the type it was subscribed to.
type Handler interface {
	Handle(ctx context.Context, event Event) error
}

// HandlerFunc is an adapter to use ordinary functions as event handlers.
type HandlerFunc func(ctx context.Context, event Event) error

func (f HandlerFunc) Handle(ctx context.Context, event Event) error {
	return f(ctx, event)
}

// Observer receives every published event regardless of type.
type Observer func(ctx context.Context, envelope Envelope)

// Subscription is returned by Subscribe and releases the handler.
type Subscription interface {
	// Unsubscribe removes the handler. Calling it more than once is a no-op.
	Unsubscribe()
}

// Subscriber registers handlers for an event type.
type Subscriber interface {
	Subscribe(eventType EventType, handler Handler) (Subscription, error)
}

// Bus is both sides of the event channel.
type Bus interface {
	Publisher
	Subscriber
}
