package commands_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0wem/weblarek/internal/platform/eventbus"
	"github.com/0wem/weblarek/modules/orders/application/commands"
	"github.com/0wem/weblarek/modules/orders/domain"
	"github.com/0wem/weblarek/modules/shared/events/contracts"
	"github.com/0wem/weblarek/modules/shared/transaction"
	"github.com/0wem/weblarek/modules/shared/types"
)

type mockOrderRepository struct {
	saveFn     func(ctx context.Context, order *domain.Order) error
	findByIDFn func(ctx context.Context, id domain.OrderID) (*domain.Order, error)
}

func (m *mockOrderRepository) Save(ctx context.Context, order *domain.Order) error {
	return m.saveFn(ctx, order)
}

func (m *mockOrderRepository) FindByID(ctx context.Context, id domain.OrderID) (*domain.Order, error) {
	return m.findByIDFn(ctx, id)
}

type mockProductRepository struct {
	products map[string]types.Product
}

func (m *mockProductRepository) List(ctx context.Context) ([]types.Product, error) {
	return nil, errors.New("not used")
}

func (m *mockProductRepository) FindByID(ctx context.Context, id string) (types.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return types.Product{}, domain.ErrProductNotFound
	}
	return p, nil
}

func catalog() *mockProductRepository {
	return &mockProductRepository{products: map[string]types.Product{
		"a": {ID: "a", Title: "A", Price: types.PriceFromInt(750)},
		"b": {ID: "b", Title: "B", Price: types.PriceFromInt(1450)},
		"z": {ID: "z", Title: "Z", Price: types.Priceless},
	}}
}

func payload(total int64, items ...string) types.OrderPayload {
	return types.OrderPayload{
		Payment: types.PaymentCard,
		Email:   "buyer@example.com",
		Phone:   "+7 (999) 123-45-67",
		Address: "Санкт-Петербург, Невский 1",
		Total:   types.PriceFromInt(total),
		Items:   items,
	}
}

func newBus() *eventbus.InMemoryEventBus {
	return eventbus.New(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))
}

func TestPlaceOrder_SavesAndPublishes(t *testing.T) {
	var saved *domain.Order
	repo := &mockOrderRepository{saveFn: func(ctx context.Context, order *domain.Order) error {
		saved = order
		return nil
	}}
	bus := newBus()
	var placed []contracts.OrderPlaced
	_, err := contracts.On(bus, func(ctx context.Context, e contracts.OrderPlaced) error {
		placed = append(placed, e)
		return nil
	})
	require.NoError(t, err)

	h := commands.NewPlaceOrderHandler(repo, catalog(), transaction.None, bus)
	result, err := h.Handle(context.Background(), commands.PlaceOrderCommand{Payload: payload(2950, "a", "b", "a")})

	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, saved.ID().String(), result.ID)
	assert.True(t, result.Total.Equals(types.PriceFromInt(2950)))
	assert.Empty(t, saved.PendingEvents())
	require.Len(t, placed, 1)
	assert.Equal(t, result.ID, placed[0].OrderID)
	assert.Equal(t, "buyer@example.com", placed[0].Email)
}

func TestPlaceOrder_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		payload types.OrderPayload
		want    error
	}{
		{"unknown product", payload(750, "a", "missing"), domain.ErrProductNotFound},
		{"priceless product", payload(0, "z"), domain.ErrProductNotForSale},
		{"no items", payload(0), domain.ErrNoItems},
		{"total mismatch", payload(1, "a"), domain.ErrTotalMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockOrderRepository{saveFn: func(ctx context.Context, order *domain.Order) error {
				t.Fatal("save must not be called")
				return nil
			}}
			h := commands.NewPlaceOrderHandler(repo, catalog(), transaction.None, newBus())

			_, err := h.Handle(context.Background(), commands.PlaceOrderCommand{Payload: tt.payload})
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestPlaceOrder_HandlerFailurePropagates(t *testing.T) {
	repo := &mockOrderRepository{saveFn: func(ctx context.Context, order *domain.Order) error { return nil }}
	bus := newBus()
	errHandler := errors.New("handler failed")
	_, err := contracts.On(bus, func(ctx context.Context, e contracts.OrderPlaced) error {
		return errHandler
	})
	require.NoError(t, err)

	rolledBack := false
	scope := transaction.ScopeFunc(func(ctx context.Context, fn func(ctx context.Context) error) error {
		err := fn(ctx)
		rolledBack = err != nil
		return err
	})

	h := commands.NewPlaceOrderHandler(repo, catalog(), scope, bus)
	_, err = h.Handle(context.Background(), commands.PlaceOrderCommand{Payload: payload(750, "a")})

	assert.ErrorIs(t, err, errHandler)
	assert.True(t, rolledBack)
}

func TestPlaceOrder_SaveFailure(t *testing.T) {
	errSave := errors.New("disk full")
	repo := &mockOrderRepository{saveFn: func(ctx context.Context, order *domain.Order) error { return errSave }}

	h := commands.NewPlaceOrderHandler(repo, catalog(), transaction.None, newBus())
	_, err := h.Handle(context.Background(), commands.PlaceOrderCommand{Payload: payload(750, "a")})

	assert.ErrorIs(t, err, errSave)
}
