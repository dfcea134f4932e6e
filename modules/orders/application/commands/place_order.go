// Package commands contains write use cases for the orders module.
package commands

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/0wem/weblarek/internal/platform/eventbus"
	"github.com/0wem/weblarek/modules/orders/domain"
	"github.com/0wem/weblarek/modules/shared/transaction"
	"github.com/0wem/weblarek/modules/shared/types"
)

var tracer = otel.Tracer("github.com/0wem/weblarek/modules/orders")

// PlaceOrderCommand carries the POST /order/ body.
type PlaceOrderCommand struct {
	Payload types.OrderPayload
}

type PlaceOrderHandler struct {
	orders          domain.OrderRepository
	products        domain.ProductRepository
	txScope         transaction.Scope
	handlerRegistry eventbus.HandlerRegistry
}

func NewPlaceOrderHandler(
	orders domain.OrderRepository,
	products domain.ProductRepository,
	txScope transaction.Scope,
	handlerRegistry eventbus.HandlerRegistry,
) *PlaceOrderHandler {
	return &PlaceOrderHandler{
		orders:          orders,
		products:        products,
		txScope:         txScope,
		handlerRegistry: handlerRegistry,
	}
}

// Handle validates and stores the order. OrderPlaced handlers run before
// commit; a failing handler rolls the order back.
func (h *PlaceOrderHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) (types.OrderResult, error) {
	ctx, span := tracer.Start(ctx, "orders.PlaceOrder")
	defer span.End()
	span.SetAttributes(attribute.Int("order.items", len(cmd.Payload.Items)))

	buyer := types.Profile{
		Payment: cmd.Payload.Payment,
		Email:   cmd.Payload.Email,
		Phone:   cmd.Payload.Phone,
		Address: cmd.Payload.Address,
	}

	result, err := transaction.ExecuteWithResult(ctx, h.txScope, func(ctx context.Context) (types.OrderResult, error) {
		// Reruns of this closure start from an empty buffer.
		pending := eventbus.NewBuffer(h.handlerRegistry, 0)

		items, err := h.resolve(ctx, cmd.Payload.Items)
		if err != nil {
			return types.OrderResult{}, err
		}

		order, err := domain.Place(buyer, items, cmd.Payload.Total)
		if err != nil {
			return types.OrderResult{}, err
		}

		if err := h.orders.Save(ctx, order); err != nil {
			return types.OrderResult{}, fmt.Errorf("saving order: %w", err)
		}

		if err := pending.PublishAll(ctx, order.PullEvents()); err != nil {
			return types.OrderResult{}, fmt.Errorf("publishing event: %w", err)
		}
		if err := pending.Flush(ctx); err != nil {
			return types.OrderResult{}, fmt.Errorf("flushing events: %w", err)
		}
		return order.Result(), nil
	})
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return types.OrderResult{}, err
	}
	span.SetAttributes(attribute.String("order.id", result.ID))
	return result, nil
}

func (h *PlaceOrderHandler) resolve(ctx context.Context, ids []string) ([]types.Product, error) {
	items := make([]types.Product, 0, len(ids))
	for _, id := range ids {
		p, err := h.products.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrProductNotFound) {
				return nil, fmt.Errorf("%w: %q", domain.ErrProductNotFound, id)
			}
			return nil, fmt.Errorf("finding product: %w", err)
		}
		items = append(items, p)
	}
	return items, nil
}
