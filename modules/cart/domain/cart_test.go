package domain_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0wem/weblarek/modules/cart/domain"
	"github.com/0wem/weblarek/modules/shared/events"
	"github.com/0wem/weblarek/modules/shared/events/contracts"
	"github.com/0wem/weblarek/modules/shared/types"
)

type mockPublisher struct {
	publishFn func(ctx context.Context, event events.Event) error
	published []events.Event
}

func (m *mockPublisher) Publish(ctx context.Context, event events.Event) error {
	m.published = append(m.published, event)
	if m.publishFn != nil {
		return m.publishFn(ctx, event)
	}
	return nil
}

var (
	itemX = types.Product{ID: "x", Title: "X", Price: types.PriceFromInt(100)}
	itemY = types.Product{ID: "y", Title: "Y", Price: types.Priceless}
	itemZ = types.Product{ID: "z", Title: "Z", Price: types.PriceFromInt(50)}
)

func TestCart_AddItemPublishesItemAndList(t *testing.T) {
	pub := &mockPublisher{}
	cart := domain.NewCart(pub)

	require.NoError(t, cart.AddItem(context.Background(), itemX))

	require.Len(t, pub.published, 1)
	added := pub.published[0].(contracts.CartItemAdded)
	assert.Equal(t, itemX, added.Item)
	assert.Equal(t, []types.Product{itemX}, added.Items)
	assert.Equal(t, 1, cart.Count())
	assert.True(t, cart.HasItem("x"))
}

func TestCart_RemoveItemRemovesAllMatching(t *testing.T) {
	pub := &mockPublisher{}
	cart := domain.NewCart(pub)
	ctx := context.Background()
	require.NoError(t, cart.AddItem(ctx, itemX))
	require.NoError(t, cart.AddItem(ctx, itemX))

	require.NoError(t, cart.RemoveItem(ctx, "x"))

	assert.Zero(t, cart.Count())
	assert.False(t, cart.HasItem("x"))
	removed := pub.published[len(pub.published)-1].(contracts.CartItemRemoved)
	require.NotNil(t, removed.Item)
	assert.Equal(t, "x", removed.Item.ID)
	assert.Empty(t, removed.Items)
}

func TestCart_RemoveAbsentItemStillPublishes(t *testing.T) {
	pub := &mockPublisher{}
	cart := domain.NewCart(pub)
	ctx := context.Background()
	require.NoError(t, cart.AddItem(ctx, itemX))

	require.NoError(t, cart.RemoveItem(ctx, "missing"))

	require.Len(t, pub.published, 2)
	removed := pub.published[1].(contracts.CartItemRemoved)
	assert.Nil(t, removed.Item)
	assert.Equal(t, []types.Product{itemX}, removed.Items)
}

func TestCart_AddThenRemoveRestoresContents(t *testing.T) {
	cart := domain.NewCart(&mockPublisher{})
	ctx := context.Background()
	require.NoError(t, cart.AddItem(ctx, itemY))
	before := cart.Items()

	require.NoError(t, cart.AddItem(ctx, itemX))
	require.NoError(t, cart.RemoveItem(ctx, "x"))

	assert.Equal(t, before, cart.Items())
}

func TestCart_TotalPriceTreatsPricelessAsZero(t *testing.T) {
	cart := domain.NewCart(&mockPublisher{})
	ctx := context.Background()
	for _, item := range []types.Product{itemX, itemY, itemZ} {
		require.NoError(t, cart.AddItem(ctx, item))
	}

	assert.True(t, cart.TotalPrice().Equal(decimal.NewFromInt(150)), "got %s", cart.TotalPrice())
	assert.Equal(t, 3, cart.Count())
}

func TestCart_ClearPublishesEmptyList(t *testing.T) {
	pub := &mockPublisher{}
	cart := domain.NewCart(pub)
	ctx := context.Background()
	require.NoError(t, cart.AddItem(ctx, itemX))

	require.NoError(t, cart.Clear(ctx))

	cleared := pub.published[len(pub.published)-1].(contracts.CartCleared)
	assert.NotNil(t, cleared.Items)
	assert.Empty(t, cleared.Items)
	assert.True(t, cart.TotalPrice().IsZero())
}

func TestCart_PropagatesPublishError(t *testing.T) {
	errHandler := errors.New("handler")
	cart := domain.NewCart(&mockPublisher{
		publishFn: func(ctx context.Context, event events.Event) error { return errHandler },
	})

	err := cart.AddItem(context.Background(), itemX)

	assert.ErrorIs(t, err, errHandler)
}
