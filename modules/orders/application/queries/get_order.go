package queries

import (
	"context"
	"time"

	"github.com/0wem/weblarek/modules/orders/domain"
	"github.com/0wem/weblarek/modules/shared/types"
)

// GetOrderQuery requests a placed order by ID.
type GetOrderQuery struct {
	OrderID string
}

// OrderDTO is the read model of a placed order.
type OrderDTO struct {
	ID       string        `json:"id"`
	Payment  types.Payment `json:"payment"`
	Email    string        `json:"email"`
	Phone    string        `json:"phone"`
	Address  string        `json:"address"`
	Total    types.Price   `json:"total"`
	Items    []string      `json:"items"`
	PlacedAt time.Time     `json:"placedAt"`
}

type GetOrderHandler struct {
	orders domain.OrderRepository
}

func NewGetOrderHandler(orders domain.OrderRepository) *GetOrderHandler {
	return &GetOrderHandler{orders: orders}
}

func (h *GetOrderHandler) Handle(ctx context.Context, q GetOrderQuery) (OrderDTO, error) {
	id, err := domain.ParseOrderID(q.OrderID)
	if err != nil {
		return OrderDTO{}, err
	}
	order, err := h.orders.FindByID(ctx, id)
	if err != nil {
		return OrderDTO{}, err
	}
	buyer := order.Buyer()
	return OrderDTO{
		ID:       order.ID().String(),
		Payment:  buyer.Payment,
		Email:    buyer.Email,
		Phone:    buyer.Phone,
		Address:  buyer.Address,
		Total:    types.NewPrice(order.Total()),
		Items:    order.ItemIDs(),
		PlacedAt: order.PlacedAt(),
	}, nil
}
