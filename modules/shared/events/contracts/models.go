package contracts

import (
	"github.com/0wem/weblarek/modules/shared/events"
	"github.com/0wem/weblarek/modules/shared/types"
)

// Change events published by the catalog, cart and buyer models.
const (
	ProductsChangedEventType  events.EventType = "products:changed"
	ProductSelectedEventType  events.EventType = "product:selected"
	CartItemAddedEventType    events.EventType = "cart:item-added"
	CartItemRemovedEventType  events.EventType = "cart:item-removed"
	CartClearedEventType      events.EventType = "cart:cleared"
	BuyerDataChangedEventType events.EventType = "buyer:data-changed"
	BuyerClearedEventType     events.EventType = "buyer:cleared"
	FormValidateEventType     events.EventType = "form:validate"
)

// ProductsChanged carries the catalog's new item list.
type ProductsChanged struct {
	contract
	Products []types.Product
}

func (ProductsChanged) EventType() events.EventType { return ProductsChangedEventType }

// ProductSelected carries the new selection; Product is nil when cleared.
type ProductSelected struct {
	contract
	Product *types.Product
}

func (ProductSelected) EventType() events.EventType { return ProductSelectedEventType }

type CartItemAdded struct {
	contract
	Item  types.Product
	Items []types.Product
}

func (CartItemAdded) EventType() events.EventType { return CartItemAddedEventType }

// CartItemRemoved is published even when nothing matched; Item is nil then.
type CartItemRemoved struct {
	contract
	Item  *types.Product
	Items []types.Product
}

func (CartItemRemoved) EventType() events.EventType { return CartItemRemovedEventType }

type CartCleared struct {
	contract
	Items []types.Product
}

func (CartCleared) EventType() events.EventType { return CartClearedEventType }

type BuyerDataChanged struct {
	contract
	OldData types.Profile
	NewData types.Profile
}

func (BuyerDataChanged) EventType() events.EventType { return BuyerDataChangedEventType }

type BuyerCleared struct {
	contract
	OldData types.Profile
	NewData types.Profile
}

func (BuyerCleared) EventType() events.EventType { return BuyerClearedEventType }

// FormValidate carries the per-field validation result of the buyer profile.
type FormValidate struct {
	contract
	types.Validation
}

func (FormValidate) EventType() events.EventType { return FormValidateEventType }
