// Package notifications reacts to placed orders.
package notifications

import (
	"fmt"
	"log/slog"

	"github.com/0wem/weblarek/modules/notifications/application/eventhandlers"
	"github.com/0wem/weblarek/modules/shared/events"
	"github.com/0wem/weblarek/modules/shared/events/contracts"
)

// Module represents the notification module entry point.
type Module struct {
	orderPlaced  *eventhandlers.OrderPlacedHandler
	subscription events.Subscription
}

type Config struct {
	EventSubscriber events.Subscriber
	Logger          *slog.Logger
}

// New initializes the notification module and subscribes to events.
func New(cfg Config) (*Module, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("module", "notifications")

	orderPlacedHandler := eventhandlers.NewOrderPlacedHandler(logger)

	sub, err := contracts.On(cfg.EventSubscriber, orderPlacedHandler.Handle)
	if err != nil {
		return nil, fmt.Errorf("subscribe to %s: %w", contracts.OrderPlacedEventType, err)
	}

	return &Module{orderPlaced: orderPlacedHandler, subscription: sub}, nil
}

// OnSent forwards to the order placed handler.
func (m *Module) OnSent(fn func(contracts.OrderPlaced)) {
	m.orderPlaced.OnSent(fn)
}

// Close stops listening for events.
func (m *Module) Close() {
	m.subscription.Unsubscribe()
}
