// Package queries contains read use cases for the orders module.
package queries

import (
	"context"
	"fmt"

	"github.com/0wem/weblarek/modules/orders/domain"
	"github.com/0wem/weblarek/modules/shared/types"
)

// ProductListResult is the GET /product/ response.
type ProductListResult struct {
	Total int             `json:"total"`
	Items []types.Product `json:"items"`
}

type ListProductsHandler struct {
	products domain.ProductRepository
}

func NewListProductsHandler(products domain.ProductRepository) *ListProductsHandler {
	return &ListProductsHandler{products: products}
}

func (h *ListProductsHandler) Handle(ctx context.Context) (ProductListResult, error) {
	items, err := h.products.List(ctx)
	if err != nil {
		return ProductListResult{}, fmt.Errorf("listing products: %w", err)
	}
	if items == nil {
		items = []types.Product{}
	}
	return ProductListResult{Total: len(items), Items: items}, nil
}
