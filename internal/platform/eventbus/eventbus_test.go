package eventbus_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0wem/weblarek/internal/platform/eventbus"
	"github.com/0wem/weblarek/modules/shared/events"
	"github.com/0wem/weblarek/modules/shared/events/contracts"
)

func newBus(opts ...eventbus.Option) *eventbus.InMemoryEventBus {
	return eventbus.New(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)), opts...)
}

func TestPublish_InvokesHandlersInRegistrationOrder(t *testing.T) {
	bus := newBus()
	var calls []string

	for _, name := range []string{"first", "second", "third"} {
		_, err := contracts.On(bus, func(ctx context.Context, e contracts.BasketOpen) error {
			calls = append(calls, name)
			return nil
		})
		require.NoError(t, err)
	}

	require.NoError(t, bus.Publish(context.Background(), contracts.BasketOpen{}))
	assert.Equal(t, []string{"first", "second", "third"}, calls)
}

func TestPublish_DeliversSynchronouslyBeforeReturning(t *testing.T) {
	bus := newBus()
	delivered := false
	_, err := contracts.On(bus, func(ctx context.Context, e contracts.ModalOpen) error {
		delivered = true
		return nil
	})
	require.NoError(t, err)

	require.NoError(t, bus.Publish(context.Background(), contracts.ModalOpen{}))
	assert.True(t, delivered)
}

func TestPublish_ExactNameMatching(t *testing.T) {
	bus := newBus()
	called := false
	_, err := contracts.On(bus, func(ctx context.Context, e contracts.ModalOpen) error {
		called = true
		return nil
	})
	require.NoError(t, err)

	require.NoError(t, bus.Publish(context.Background(), contracts.ModalClose{}))
	assert.False(t, called)
}

func TestPublish_HandlerErrorAbortsDelivery(t *testing.T) {
	bus := newBus()
	errBoom := errors.New("boom")
	secondCalled := false

	_, err := contracts.On(bus, func(ctx context.Context, e contracts.BasketOrder) error {
		return errBoom
	})
	require.NoError(t, err)
	_, err = contracts.On(bus, func(ctx context.Context, e contracts.BasketOrder) error {
		secondCalled = true
		return nil
	})
	require.NoError(t, err)

	err = bus.Publish(context.Background(), contracts.BasketOrder{})

	require.Error(t, err)
	assert.ErrorIs(t, err, errBoom)
	assert.Contains(t, err.Error(), "basket:order")
	assert.False(t, secondCalled)
}

func TestUnsubscribe_RemovesOnlyThatHandler(t *testing.T) {
	bus := newBus()
	var calls []string

	first, err := contracts.On(bus, func(ctx context.Context, e contracts.CartCleared) error {
		calls = append(calls, "first")
		return nil
	})
	require.NoError(t, err)
	_, err = contracts.On(bus, func(ctx context.Context, e contracts.CartCleared) error {
		calls = append(calls, "second")
		return nil
	})
	require.NoError(t, err)

	first.Unsubscribe()
	first.Unsubscribe()

	require.NoError(t, bus.Publish(context.Background(), contracts.CartCleared{}))
	assert.Equal(t, []string{"second"}, calls)
	assert.Equal(t, 1, bus.HandlerCount(contracts.CartClearedEventType))
}

func TestUnsubscribe_DuringDeliverySkipsReleasedHandler(t *testing.T) {
	bus := newBus()
	var later events.Subscription
	laterCalled := false

	_, err := contracts.On(bus, func(ctx context.Context, e contracts.ModalClose) error {
		later.Unsubscribe()
		return nil
	})
	require.NoError(t, err)
	later, err = contracts.On(bus, func(ctx context.Context, e contracts.ModalClose) error {
		laterCalled = true
		return nil
	})
	require.NoError(t, err)

	require.NoError(t, bus.Publish(context.Background(), contracts.ModalClose{}))
	assert.False(t, laterCalled)
}

func TestSubscribeAll_ObservesEveryEvent(t *testing.T) {
	bus := newBus()
	var seen []events.EventType
	sub := bus.SubscribeAll(func(ctx context.Context, envelope events.Envelope) {
		assert.NotEmpty(t, envelope.ID)
		seen = append(seen, envelope.Type)
	})

	ctx := context.Background()
	require.NoError(t, bus.Publish(ctx, contracts.ModalOpen{}))
	require.NoError(t, bus.Publish(ctx, contracts.BasketOpen{}))
	sub.Unsubscribe()
	require.NoError(t, bus.Publish(ctx, contracts.ModalClose{}))

	assert.Equal(t, []events.EventType{contracts.ModalOpenEventType, contracts.BasketOpenEventType}, seen)
}

func TestPublish_NestedPublishingIsBounded(t *testing.T) {
	bus := newBus(eventbus.WithMaxDepth(3))
	calls := 0
	_, err := contracts.On(bus, func(ctx context.Context, e contracts.BasketOpen) error {
		calls++
		return bus.Publish(ctx, contracts.BasketOpen{})
	})
	require.NoError(t, err)

	err = bus.Publish(context.Background(), contracts.BasketOpen{})

	assert.ErrorIs(t, err, eventbus.ErrEventProcessingDepthExceeded)
	assert.Equal(t, 3, calls)
}

func TestPublish_NilEvent(t *testing.T) {
	bus := newBus()
	assert.ErrorIs(t, bus.Publish(context.Background(), nil), eventbus.ErrNilEvent)
}

func TestSubscribe_NilHandler(t *testing.T) {
	bus := newBus()
	_, err := bus.Subscribe(contracts.ModalOpenEventType, nil)
	assert.ErrorIs(t, err, eventbus.ErrNilHandler)
}

func TestLogEvents_WritesDebugEnvelope(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	bus := eventbus.New(logger)
	sub := eventbus.LogEvents(bus, logger)
	defer sub.Unsubscribe()

	require.NoError(t, bus.Publish(context.Background(), contracts.OrderChange{Key: "address", Value: "Moscow"}))

	assert.Contains(t, buf.String(), "event_type=order:change")
	assert.Contains(t, buf.String(), "Moscow")
}

func TestBuffer_FlushDispatchesBufferedEvents(t *testing.T) {
	bus := newBus()
	var placed []string
	_, err := contracts.On(bus, func(ctx context.Context, e contracts.OrderPlaced) error {
		placed = append(placed, e.OrderID)
		return nil
	})
	require.NoError(t, err)

	buf := eventbus.NewBuffer(bus, 0)
	ctx := context.Background()
	require.NoError(t, buf.Publish(ctx, contracts.OrderPlaced{OrderID: "a"}))
	require.NoError(t, buf.PublishAll(ctx, []events.Event{contracts.OrderPlaced{OrderID: "b"}}))

	assert.Empty(t, placed)
	assert.Equal(t, 2, buf.Len())

	require.NoError(t, buf.Flush(ctx))
	assert.Equal(t, []string{"a", "b"}, placed)
	assert.Zero(t, buf.Len())
}

func TestBuffer_HandlerEventsRunInNextRound(t *testing.T) {
	bus := newBus()
	buf := eventbus.NewBuffer(bus, 2)
	var calls []string
	_, err := contracts.On(bus, func(ctx context.Context, e contracts.OrderPlaced) error {
		calls = append(calls, "placed:"+e.OrderID)
		return buf.Publish(ctx, contracts.BasketOpen{})
	})
	require.NoError(t, err)
	_, err = contracts.On(bus, func(ctx context.Context, e contracts.BasketOpen) error {
		calls = append(calls, "basket")
		return nil
	})
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, buf.Publish(ctx, contracts.OrderPlaced{OrderID: "a"}))
	require.NoError(t, buf.Publish(ctx, contracts.OrderPlaced{OrderID: "b"}))

	require.NoError(t, buf.Flush(ctx))
	assert.Equal(t, []string{"placed:a", "placed:b", "basket", "basket"}, calls)
}

func TestBuffer_StopsAfterMaxRounds(t *testing.T) {
	bus := newBus()
	buf := eventbus.NewBuffer(bus, 3)
	calls := 0
	_, err := contracts.On(bus, func(ctx context.Context, e contracts.OrderPlaced) error {
		calls++
		return buf.Publish(ctx, e)
	})
	require.NoError(t, err)

	require.NoError(t, buf.Publish(context.Background(), contracts.OrderPlaced{OrderID: "a"}))

	assert.ErrorIs(t, buf.Flush(context.Background()), eventbus.ErrEventProcessingDepthExceeded)
	assert.Equal(t, 3, calls)
}

func TestBuffer_NilEvent(t *testing.T) {
	buf := eventbus.NewBuffer(newBus(), 0)
	assert.ErrorIs(t, buf.Publish(context.Background(), nil), eventbus.ErrNilEvent)
}

func TestBuffer_FlushReturnsHandlerError(t *testing.T) {
	bus := newBus()
	errHandler := errors.New("handler")
	_, err := contracts.On(bus, func(ctx context.Context, e contracts.OrderPlaced) error {
		return errHandler
	})
	require.NoError(t, err)

	buf := eventbus.NewBuffer(bus, 10)
	require.NoError(t, buf.Publish(context.Background(), contracts.OrderPlaced{OrderID: "a"}))

	assert.ErrorIs(t, buf.Flush(context.Background()), errHandler)
}
