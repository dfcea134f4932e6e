package eventhandlers

import (
	"context"
	"log/slog"

	"github.com/0wem/weblarek/modules/shared/events/contracts"
)

// OrderPlacedHandler sends the order confirmation.
//
// IMPORTANT: This handler runs inside the order transaction and must stay
// free of external side effects. It only records the confirmation; delivery
// belongs to an outbox consumer.
type OrderPlacedHandler struct {
	logger *slog.Logger
	sent   func(contracts.OrderPlaced)
}

func NewOrderPlacedHandler(logger *slog.Logger) *OrderPlacedHandler {
	return &OrderPlacedHandler{logger: logger}
}

// OnSent registers a callback run after each recorded confirmation.
func (h *OrderPlacedHandler) OnSent(fn func(contracts.OrderPlaced)) {
	h.sent = fn
}

// Handle processes the OrderPlaced event.
func (h *OrderPlacedHandler) Handle(ctx context.Context, event contracts.OrderPlaced) error {
	h.logger.InfoContext(ctx, "sending order confirmation",
		slog.String("order_id", event.OrderID),
		slog.String("email", event.Email),
		slog.String("total", event.Total.String()),
		slog.String("action", "order_confirmation"),
	)
	if h.sent != nil {
		h.sent(event)
	}
	return nil
}
