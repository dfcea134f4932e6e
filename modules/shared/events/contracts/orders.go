package contracts

import (
	"github.com/0wem/weblarek/modules/shared/events"
	"github.com/0wem/weblarek/modules/shared/types"
)

// OrderPlacedEventType is published by the order API after an order is stored.
const OrderPlacedEventType events.EventType = "order:placed"

type OrderPlaced struct {
	contract
	OrderID string
	Email   string
	Total   types.Price
}

func (OrderPlaced) EventType() events.EventType { return OrderPlacedEventType }
