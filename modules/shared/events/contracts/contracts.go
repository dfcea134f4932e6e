// Package contracts defines the closed set of storefront events: the wire
// contract between models, views and the orchestrator.
// Components should import event types from here, NOT from each other.
package contracts

import (
	"context"
	"fmt"

	"github.com/0wem/weblarek/modules/shared/events"
)

// Event is implemented only by the payload types declared in this package.
type Event interface {
	events.Event
	sealed()
}

// contract seals an event payload into the closed set.
type contract struct{}

func (contract) sealed() {}

// On subscribes a typed handler. The event type is taken from E, so a
// handler can never be registered under a name that carries another payload.
func On[E Event](sub events.Subscriber, fn func(ctx context.Context, event E) error) (events.Subscription, error) {
	var zero E
	return sub.Subscribe(zero.EventType(), events.HandlerFunc(func(ctx context.Context, event events.Event) error {
		typed, ok := event.(E)
		if !ok {
			return fmt.Errorf("unexpected event type: %T", event)
		}
		return fn(ctx, typed)
	}))
}

// Types lists every event type in the closed set.
func Types() []events.EventType {
	return []events.EventType{
		ProductsChangedEventType,
		ProductSelectedEventType,
		CartItemAddedEventType,
		CartItemRemovedEventType,
		CartClearedEventType,
		BuyerDataChangedEventType,
		BuyerClearedEventType,
		FormValidateEventType,
		CardSelectEventType,
		CardAddEventType,
		CardRemoveEventType,
		BasketOpenEventType,
		BasketOrderEventType,
		OrderChangeEventType,
		OrderSubmitEventType,
		ContactsSubmitEventType,
		OrderSuccessCloseEventType,
		ModalOpenEventType,
		ModalCloseEventType,
		OrderPlacedEventType,
	}
}
