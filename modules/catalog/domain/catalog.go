// Package domain contains the product catalog model.
package domain

import (
	"context"
	"slices"

	"github.com/0wem/weblarek/modules/shared/events"
	"github.com/0wem/weblarek/modules/shared/events/contracts"
	"github.com/0wem/weblarek/modules/shared/types"
)

// Catalog owns the product list (in server order) and the current selection.
// The selection is held by id and always resolves to a listed product.
type Catalog struct {
	products  []types.Product
	selected  string
	publisher events.Publisher
}

func NewCatalog(publisher events.Publisher) *Catalog {
	return &Catalog{publisher: publisher}
}

// SetProducts replaces the whole collection and publishes products:changed.
// A selection that no longer resolves is cleared.
func (c *Catalog) SetProducts(ctx context.Context, products []types.Product) error {
	c.products = slices.Clone(products)
	if _, ok := c.ProductByID(c.selected); !ok {
		c.selected = ""
	}
	return c.publisher.Publish(ctx, contracts.ProductsChanged{Products: c.Products()})
}

func (c *Catalog) Products() []types.Product {
	return slices.Clone(c.products)
}

// ProductByID reports absence for an unknown id; it is not an error.
func (c *Catalog) ProductByID(id string) (types.Product, bool) {
	if id == "" {
		return types.Product{}, false
	}
	i := slices.IndexFunc(c.products, func(p types.Product) bool { return p.ID == id })
	if i < 0 {
		return types.Product{}, false
	}
	return c.products[i], true
}

// SetSelected selects product (nil clears) and publishes product:selected.
// A product that is not in the catalog clears the selection.
func (c *Catalog) SetSelected(ctx context.Context, product *types.Product) error {
	var selected *types.Product
	c.selected = ""
	if product != nil {
		if p, ok := c.ProductByID(product.ID); ok {
			c.selected = p.ID
			selected = &p
		}
	}
	return c.publisher.Publish(ctx, contracts.ProductSelected{Product: selected})
}

func (c *Catalog) Selected() (types.Product, bool) {
	return c.ProductByID(c.selected)
}
