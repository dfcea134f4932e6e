package domain

import (
	"context"

	"github.com/0wem/weblarek/modules/shared/types"
)

// OrderRepository defines persistence operations for orders.
type OrderRepository interface {
	Save(ctx context.Context, order *Order) error
	FindByID(ctx context.Context, id OrderID) (*Order, error)
}

// ProductRepository is the catalog the order API serves and validates
// against.
type ProductRepository interface {
	List(ctx context.Context) ([]types.Product, error)
	// FindByID returns ErrProductNotFound for unknown ids.
	FindByID(ctx context.Context, id string) (types.Product, error)
}
