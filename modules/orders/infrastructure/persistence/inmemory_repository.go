// Package persistence implements repository interfaces for orders.
package persistence

import (
	"context"
	"slices"
	"sync"

	"github.com/0wem/weblarek/modules/orders/domain"
)

// InMemoryRepository implements domain.OrderRepository using in-memory storage.
// Useful for testing and development.
type InMemoryRepository struct {
	mu     sync.RWMutex
	orders map[string]*domain.Order
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		orders: make(map[string]*domain.Order),
	}
}

func (r *InMemoryRepository) Save(ctx context.Context, order *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.orders[order.ID().String()] = domain.Reconstitute(
		order.ID(),
		order.Buyer(),
		slices.Clone(order.Items()),
		order.Total(),
		order.PlacedAt(),
	)
	return nil
}

func (r *InMemoryRepository) FindByID(ctx context.Context, id domain.OrderID) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id.String()]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	return order, nil
}

// Compile-time interface check.
var _ domain.OrderRepository = (*InMemoryRepository)(nil)
