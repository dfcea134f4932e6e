package contracts_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0wem/weblarek/modules/shared/events"
	"github.com/0wem/weblarek/modules/shared/events/contracts"
)

func TestTypes_AreUnique(t *testing.T) {
	seen := make(map[events.EventType]bool)
	for _, eventType := range contracts.Types() {
		assert.False(t, seen[eventType], "duplicate event type %s", eventType)
		seen[eventType] = true
	}
}

func TestTypes_WireNames(t *testing.T) {
	want := []string{
		"products:changed", "product:selected",
		"cart:item-added", "cart:item-removed", "cart:cleared",
		"buyer:data-changed", "buyer:cleared", "form:validate",
		"card:select", "card:add", "card:remove",
		"basket:open", "basket:order",
		"order:change", "order:submit", "contacts:submit",
		"order-success:close", "modal:open", "modal:close",
		"order:placed",
	}

	var got []string
	for _, eventType := range contracts.Types() {
		got = append(got, eventType.String())
	}
	assert.Equal(t, want, got)
}

type recordingSubscriber struct {
	eventType events.EventType
	handler   events.Handler
}

func (r *recordingSubscriber) Subscribe(eventType events.EventType, handler events.Handler) (events.Subscription, error) {
	r.eventType = eventType
	r.handler = handler
	return nil, nil
}

func TestOn_RegistersUnderPayloadType(t *testing.T) {
	sub := &recordingSubscriber{}
	var got contracts.CardAdd

	_, err := contracts.On(sub, func(ctx context.Context, e contracts.CardAdd) error {
		got = e
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, contracts.CardAddEventType, sub.eventType)

	event := contracts.CardAdd{}
	event.Product.ID = "p1"
	require.NoError(t, sub.handler.Handle(context.Background(), event))
	assert.Equal(t, "p1", got.Product.ID)
}

func TestOn_RejectsMismatchedPayload(t *testing.T) {
	sub := &recordingSubscriber{}
	_, err := contracts.On(sub, func(ctx context.Context, e contracts.CardAdd) error {
		return errors.New("must not be called")
	})
	require.NoError(t, err)

	err = sub.handler.Handle(context.Background(), contracts.CardRemove{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected event type")
}
