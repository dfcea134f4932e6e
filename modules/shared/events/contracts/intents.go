package contracts

import (
	"github.com/0wem/weblarek/modules/shared/events"
	"github.com/0wem/weblarek/modules/shared/types"
)

// Intent events published by views. They describe what the user asked for;
// the orchestrator decides whether and how a model changes.
const (
	CardSelectEventType        events.EventType = "card:select"
	CardAddEventType           events.EventType = "card:add"
	CardRemoveEventType        events.EventType = "card:remove"
	BasketOpenEventType        events.EventType = "basket:open"
	BasketOrderEventType       events.EventType = "basket:order"
	OrderChangeEventType       events.EventType = "order:change"
	OrderSubmitEventType       events.EventType = "order:submit"
	ContactsSubmitEventType    events.EventType = "contacts:submit"
	OrderSuccessCloseEventType events.EventType = "order-success:close"
	ModalOpenEventType         events.EventType = "modal:open"
	ModalCloseEventType        events.EventType = "modal:close"
)

// FormFields maps form input names to their current values.
type FormFields map[string]string

type CardSelect struct {
	contract
	Product types.Product
}

func (CardSelect) EventType() events.EventType { return CardSelectEventType }

type CardAdd struct {
	contract
	Product types.Product
}

func (CardAdd) EventType() events.EventType { return CardAddEventType }

type CardRemove struct {
	contract
	Product types.Product
}

func (CardRemove) EventType() events.EventType { return CardRemoveEventType }

type BasketOpen struct{ contract }

func (BasketOpen) EventType() events.EventType { return BasketOpenEventType }

type BasketOrder struct{ contract }

func (BasketOrder) EventType() events.EventType { return BasketOrderEventType }

// OrderChange is a single live form input change.
type OrderChange struct {
	contract
	Key   types.Field
	Value string
}

func (OrderChange) EventType() events.EventType { return OrderChangeEventType }

type OrderSubmit struct {
	contract
	Fields FormFields
}

func (OrderSubmit) EventType() events.EventType { return OrderSubmitEventType }

type ContactsSubmit struct {
	contract
	Fields FormFields
}

func (ContactsSubmit) EventType() events.EventType { return ContactsSubmitEventType }

type OrderSuccessClose struct{ contract }

func (OrderSuccessClose) EventType() events.EventType { return OrderSuccessCloseEventType }

type ModalOpen struct{ contract }

func (ModalOpen) EventType() events.EventType { return ModalOpenEventType }

type ModalClose struct{ contract }

func (ModalClose) EventType() events.EventType { return ModalCloseEventType }
