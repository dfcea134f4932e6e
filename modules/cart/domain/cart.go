// Package domain contains the shopping cart model.
package domain

import (
	"context"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/0wem/weblarek/modules/shared/events"
	"github.com/0wem/weblarek/modules/shared/events/contracts"
	"github.com/0wem/weblarek/modules/shared/types"
)

// Cart holds product references in insertion order. Duplicates are kept.
// Count and total are derived from the list on every call.
type Cart struct {
	items     []types.Product
	publisher events.Publisher
}

func NewCart(publisher events.Publisher) *Cart {
	return &Cart{publisher: publisher}
}

// AddItem appends product and publishes cart:item-added.
func (c *Cart) AddItem(ctx context.Context, product types.Product) error {
	c.items = append(c.items, product)
	return c.publisher.Publish(ctx, contracts.CartItemAdded{Item: product, Items: c.Items()})
}

// RemoveItem removes every entry with the given id and publishes
// cart:item-removed. An absent id still publishes, with a nil Item.
func (c *Cart) RemoveItem(ctx context.Context, id string) error {
	var removed *types.Product
	c.items = slices.DeleteFunc(c.items, func(p types.Product) bool {
		if p.ID != id {
			return false
		}
		if removed == nil {
			item := p
			removed = &item
		}
		return true
	})
	return c.publisher.Publish(ctx, contracts.CartItemRemoved{Item: removed, Items: c.Items()})
}

// Clear empties the cart and publishes cart:cleared.
func (c *Cart) Clear(ctx context.Context) error {
	c.items = nil
	return c.publisher.Publish(ctx, contracts.CartCleared{Items: c.Items()})
}

func (c *Cart) Items() []types.Product {
	items := make([]types.Product, len(c.items))
	copy(items, c.items)
	return items
}

// TotalPrice sums item prices, priceless items counting as 0.
func (c *Cart) TotalPrice() decimal.Decimal {
	return types.TotalPrice(c.items)
}

func (c *Cart) Count() int { return len(c.items) }

func (c *Cart) HasItem(id string) bool {
	return slices.ContainsFunc(c.items, func(p types.Product) bool { return p.ID == id })
}
