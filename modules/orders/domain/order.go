// Package domain contains business entities and rules for orders.
package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	buyerdomain "github.com/0wem/weblarek/modules/buyer/domain"
	shareddomain "github.com/0wem/weblarek/modules/shared/domain"
	"github.com/0wem/weblarek/modules/shared/events/contracts"
	"github.com/0wem/weblarek/modules/shared/types"
)

// Order is the aggregate root for the order bounded context.
// Orders are immutable once placed.
type Order struct {
	shareddomain.Events
	id       OrderID
	buyer    types.Profile
	items    []OrderItem
	total    decimal.Decimal
	placedAt time.Time
}

// OrderItem is a product snapshot taken when the order is placed.
// Duplicated product ids produce one item each.
type OrderItem struct {
	ProductID string
	Title     string
	Price     decimal.Decimal
}

// Place validates an order the way the public storefront API does and
// records an OrderPlaced event. products are the resolved catalog entries
// for the requested ids, in request order.
func Place(buyer types.Profile, products []types.Product, claimed types.Price) (*Order, error) {
	if invalid := invalidFields(buyerdomain.Validate(buyer)); len(invalid) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidBuyer, strings.Join(invalid, ", "))
	}
	if len(products) == 0 {
		return nil, ErrNoItems
	}

	items := make([]OrderItem, 0, len(products))
	for _, p := range products {
		if !p.ForSale() {
			return nil, fmt.Errorf("%w: %q", ErrProductNotForSale, p.ID)
		}
		items = append(items, OrderItem{ProductID: p.ID, Title: p.Title, Price: p.Price.Amount()})
	}

	total := types.TotalPrice(products)
	if claimed.IsPriceless() || !claimed.Amount().Equal(total) {
		return nil, fmt.Errorf("%w: got %s, want %s", ErrTotalMismatch, claimed, total)
	}

	o := &Order{
		id:       NewOrderID(),
		buyer:    buyer,
		items:    items,
		total:    total,
		placedAt: time.Now().UTC(),
	}
	o.Record(contracts.OrderPlaced{
		OrderID: o.id.String(),
		Email:   buyer.Email,
		Total:   types.NewPrice(total),
	})
	return o, nil
}

// Reconstitute rebuilds an order from persistence.
func Reconstitute(id OrderID, buyer types.Profile, items []OrderItem, total decimal.Decimal, placedAt time.Time) *Order {
	return &Order{
		id:       id,
		buyer:    buyer,
		items:    items,
		total:    total,
		placedAt: placedAt,
	}
}

// Getters

func (o *Order) ID() OrderID { return o.id }
func (o *Order) Buyer() types.Profile { return o.buyer }
func (o *Order) Items() []OrderItem { return o.items }
func (o *Order) Total() decimal.Decimal { return o.total }
func (o *Order) PlacedAt() time.Time { return o.placedAt }

// ItemIDs returns the product ids in order, duplicates included.
func (o *Order) ItemIDs() []string {
	ids := make([]string, 0, len(o.items))
	for _, item := range o.items {
		ids = append(ids, item.ProductID)
	}
	return ids
}

// Result is the API response for a placed order.
func (o *Order) Result() types.OrderResult {
	return types.OrderResult{ID: o.id.String(), Total: types.NewPrice(o.total)}
}

func invalidFields(v types.Validation) []string {
	var fields []string
	if !v.Payment {
		fields = append(fields, types.FieldPayment.String())
	}
	if !v.Email {
		fields = append(fields, types.FieldEmail.String())
	}
	if !v.Phone {
		fields = append(fields, types.FieldPhone.String())
	}
	if !v.Address {
		fields = append(fields, types.FieldAddress.String())
	}
	return fields
}
