// Package eventbus provides the in-memory event bus that mediates between the
// storefront models, views and orchestrator.
package eventbus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/0wem/weblarek/modules/shared/events"
)

// DefaultMaxDepth bounds nested publishing from inside handlers.
const DefaultMaxDepth = 16

var (
	// ErrEventProcessingDepthExceeded is returned when event handlers
	// trigger too many nested events.
	ErrEventProcessingDepthExceeded = errors.New("event processing depth exceeded")
	ErrNilEvent                     = errors.New("nil event")
	ErrNilHandler                   = errors.New("nil handler")
)

// InMemoryEventBus implements a synchronous event bus.
// Events are delivered in the publisher's goroutine, to handlers in
// registration order, before Publish returns. A failing handler aborts the
// delivery and its error is returned to the publisher.
//
// The bus assumes a single logical event loop: publishing from several
// goroutines at once is safe for the bus itself but the depth guard then
// counts all of them together.
type InMemoryEventBus struct {
	mu        sync.RWMutex
	handlers  map[events.EventType][]*subscription
	observers []*observer
	depth     atomic.Int32
	maxDepth  int32
	logger    *slog.Logger
}

// Option configures an InMemoryEventBus.
type Option func(*InMemoryEventBus)

// WithMaxDepth limits nested event processing to prevent infinite loops.
func WithMaxDepth(depth int) Option {
	return func(b *InMemoryEventBus) {
		if depth > 0 {
			b.maxDepth = int32(depth)
		}
	}
}

func New(logger *slog.Logger, opts ...Option) *InMemoryEventBus {
	if logger == nil {
		logger = slog.Default()
	}
	b := &InMemoryEventBus{
		handlers: make(map[events.EventType][]*subscription),
		maxDepth: DefaultMaxDepth,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Publish implements events.Publisher.
func (b *InMemoryEventBus) Publish(ctx context.Context, event events.Event) error {
	if event == nil {
		return ErrNilEvent
	}
	eventType := event.EventType()

	depth := b.depth.Add(1)
	defer b.depth.Add(-1)
	if depth > b.maxDepth {
		return fmt.Errorf("%w: %s", ErrEventProcessingDepthExceeded, eventType)
	}

	b.mu.RLock()
	handlers := slices.Clone(b.handlers[eventType])
	observers := slices.Clone(b.observers)
	b.mu.RUnlock()

	b.logger.Debug("publishing event", slog.String("event_type", eventType.String()), slog.Int("handler_count", len(handlers)))

	if len(observers) > 0 {
		envelope := events.NewEnvelope(event)
		for _, o := range observers {
			if o.active.Load() {
				o.fn(ctx, envelope)
			}
		}
	}

	for _, s := range handlers {
		// A handler released by an earlier handler of this delivery is skipped.
		if !s.active.Load() {
			continue
		}
		if err := s.handler.Handle(ctx, event); err != nil {
			b.logger.Error("event handler failed", slog.String("event_type", eventType.String()), slog.Any("error", err))
			return fmt.Errorf("handler failed for event %s: %w", eventType, err)
		}
	}

	return nil
}

// Subscribe implements events.Subscriber.
func (b *InMemoryEventBus) Subscribe(eventType events.EventType, handler events.Handler) (events.Subscription, error) {
	if handler == nil {
		return nil, ErrNilHandler
	}
	s := &subscription{bus: b, eventType: eventType, handler: handler}
	s.active.Store(true)

	b.mu.Lock()
	b.handlers[eventType] = append(b.handlers[eventType], s)
	b.mu.Unlock()

	b.logger.Debug("subscribed to event", slog.String("event_type", eventType.String()))
	return s, nil
}

// SubscribeAll registers an observer for every event, mirroring the
// "observe everything" diagnostics subscription. Observers run before the
// typed handlers and cannot fail a delivery.
func (b *InMemoryEventBus) SubscribeAll(fn events.Observer) events.Subscription {
	o := &observer{bus: b, fn: fn}
	o.active.Store(true)

	b.mu.Lock()
	b.observers = append(b.observers, o)
	b.mu.Unlock()
	return o
}

// HandlersFor implements HandlerRegistry.
// Returns a copy of the active handlers to avoid race conditions.
func (b *InMemoryEventBus) HandlersFor(eventType events.EventType) []events.Handler {
	b.mu.RLock()
	defer b.mu.RUnlock()

	result := make([]events.Handler, 0, len(b.handlers[eventType]))
	for _, s := range b.handlers[eventType] {
		result = append(result, s.handler)
	}
	return result
}

// HandlerCount returns the number of handlers registered for eventType.
func (b *InMemoryEventBus) HandlerCount(eventType events.EventType) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.handlers[eventType])
}

func (b *InMemoryEventBus) remove(s *subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[s.eventType] = slices.DeleteFunc(b.handlers[s.eventType], func(other *subscription) bool {
		return other == s
	})
	if len(b.handlers[s.eventType]) == 0 {
		delete(b.handlers, s.eventType)
	}
}

func (b *InMemoryEventBus) removeObserver(o *observer) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.observers = slices.DeleteFunc(b.observers, func(other *observer) bool {
		return other == o
	})
}

type subscription struct {
	bus       *InMemoryEventBus
	eventType events.EventType
	handler   events.Handler
	active    atomic.Bool
}

func (s *subscription) Unsubscribe() {
	if s.active.CompareAndSwap(true, false) {
		s.bus.remove(s)
	}
}

type observer struct {
	bus    *InMemoryEventBus
	fn     events.Observer
	active atomic.Bool
}

func (o *observer) Unsubscribe() {
	if o.active.CompareAndSwap(true, false) {
		o.bus.removeObserver(o)
	}
}

// HandlerRegistry provides access to registered event handlers.
// Buffer dispatches through it without managing subscriptions.
type HandlerRegistry interface {
	// HandlersFor returns all handlers registered for the given event type.
	HandlersFor(eventType events.EventType) []events.Handler
}

// Compile-time interface checks.
var (
	_ events.Bus      = (*InMemoryEventBus)(nil)
	_ HandlerRegistry = (*InMemoryEventBus)(nil)
)
