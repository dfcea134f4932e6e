package persistence

import (
	"context"
	"slices"

	"github.com/0wem/weblarek/modules/orders/domain"
	"github.com/0wem/weblarek/modules/shared/types"
)

// ProductRepository serves a fixed product list in its original order.
type ProductRepository struct {
	items []types.Product
	byID  map[string]types.Product
}

func NewProductRepository(items []types.Product) *ProductRepository {
	byID := make(map[string]types.Product, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}
	return &ProductRepository{items: slices.Clone(items), byID: byID}
}

func (r *ProductRepository) List(ctx context.Context) ([]types.Product, error) {
	return slices.Clone(r.items), nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (types.Product, error) {
	p, ok := r.byID[id]
	if !ok {
		return types.Product{}, domain.ErrProductNotFound
	}
	return p, nil
}

var _ domain.ProductRepository = (*ProductRepository)(nil)
