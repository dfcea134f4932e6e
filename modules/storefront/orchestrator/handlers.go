package orchestrator

import (
	"context"
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	buyerdomain "github.com/0wem/weblarek/modules/buyer/domain"
	"github.com/0wem/weblarek/modules/shared/events/contracts"
	"github.com/0wem/weblarek/modules/shared/types"
	"github.com/0wem/weblarek/modules/storefront/view"
)

func (o *Orchestrator) onProductsChanged(ctx context.Context, e contracts.ProductsChanged) error {
	cards := make([]*view.CatalogCard, 0, len(e.Products))
	for _, p := range e.Products {
		cards = append(cards, view.NewCatalogCard(p, o.cdn, o.bus))
	}
	o.views.Gallery.SetItems(cards)
	return nil
}

func (o *Orchestrator) onProductSelected(ctx context.Context, e contracts.ProductSelected) error {
	if e.Product == nil {
		return nil
	}
	o.disposeTransient()

	preview, err := view.NewPreviewCard(*e.Product, o.cart.HasItem(e.Product.ID), o.cdn, o.bus)
	if err != nil {
		return err
	}
	o.preview = preview
	return o.show(ctx, StatePreview, preview)
}

func (o *Orchestrator) onCartItemAdded(ctx context.Context, e contracts.CartItemAdded) error {
	o.onCartChanged()
	return nil
}

func (o *Orchestrator) onCartItemRemoved(ctx context.Context, e contracts.CartItemRemoved) error {
	o.onCartChanged()
	return nil
}

func (o *Orchestrator) onCartCleared(ctx context.Context, e contracts.CartCleared) error {
	o.onCartChanged()
	return nil
}

func (o *Orchestrator) onCardSelect(ctx context.Context, e contracts.CardSelect) error {
	product, ok := o.catalog.ProductByID(e.Product.ID)
	if !ok {
		o.logger.Debug("ignoring selection of unknown product", slog.String("product_id", e.Product.ID))
		return nil
	}
	return o.catalog.SetSelected(ctx, &product)
}

func (o *Orchestrator) onCardAdd(ctx context.Context, e contracts.CardAdd) error {
	product, ok := o.catalog.ProductByID(e.Product.ID)
	if !ok || !product.ForSale() {
		o.logger.Debug("ignoring add of unavailable product", slog.String("product_id", e.Product.ID))
		return nil
	}
	return o.cart.AddItem(ctx, product)
}

func (o *Orchestrator) onCardRemove(ctx context.Context, e contracts.CardRemove) error {
	return o.cart.RemoveItem(ctx, e.Product.ID)
}

func (o *Orchestrator) onBasketOpen(ctx context.Context, e contracts.BasketOpen) error {
	o.disposeTransient()
	o.basket = view.NewBasket(o.bus)
	o.refreshBasket()
	return o.show(ctx, StateCartReview, o.basket)
}

func (o *Orchestrator) onBasketOrder(ctx context.Context, e contracts.BasketOrder) error {
	if o.cart.Count() == 0 {
		o.logger.Debug("ignoring checkout of empty cart")
		return nil
	}
	o.disposeTransient()
	return o.show(ctx, StateOrderDetails, o.views.OrderForm)
}

func (o *Orchestrator) onOrderChange(ctx context.Context, e contracts.OrderChange) error {
	err := o.buyer.Change(ctx, e.Key, e.Value)
	if errors.Is(err, buyerdomain.ErrUnknownField) {
		o.logger.Warn("ignoring change of unknown buyer field", slog.String("field", e.Key.String()))
		return nil
	}
	return err
}

// onFormValidate forwards the result to the form on screen only.
func (o *Orchestrator) onFormValidate(ctx context.Context, e contracts.FormValidate) error {
	switch o.state {
	case StateOrderDetails:
		o.views.OrderForm.Validate(e.Validation)
	case StateContactDetails:
		o.views.ContactsForm.Validate(e.Validation)
	}
	return nil
}

func (o *Orchestrator) onOrderSubmit(ctx context.Context, e contracts.OrderSubmit) error {
	if o.state != StateOrderDetails {
		return nil
	}

	payment := types.Payment(e.Fields[types.FieldPayment.String()])
	address := e.Fields[types.FieldAddress.String()]
	if err := o.buyer.SetData(ctx, types.Patch{Payment: &payment, Address: &address}); err != nil {
		return err
	}

	result := buyerdomain.Validate(o.buyer.Data())
	if !result.Payment || !result.Address {
		o.views.OrderForm.Validate(result)
		return nil
	}
	return o.show(ctx, StateContactDetails, o.views.ContactsForm)
}

// onContactsSubmit sends the order. A submit that arrives while a request
// is in flight is dropped.
func (o *Orchestrator) onContactsSubmit(ctx context.Context, e contracts.ContactsSubmit) error {
	if o.state != StateContactDetails {
		return nil
	}
	if o.inFlight {
		o.logger.Debug("ignoring contacts submit while order is in flight")
		return nil
	}

	email := e.Fields[types.FieldEmail.String()]
	phone := e.Fields[types.FieldPhone.String()]
	if err := o.buyer.SetData(ctx, types.Patch{Email: &email, Phone: &phone}); err != nil {
		return err
	}
	if !o.buyer.IsValid() {
		o.views.ContactsForm.Validate(buyerdomain.Validate(o.buyer.Data()))
		return nil
	}

	order := types.NewOrder(o.buyer.Data(), o.cart.Items())

	ctx, span := o.tracer.Start(ctx, "orchestrator.SendOrder")
	defer span.End()
	span.SetAttributes(
		attribute.Int("order.items", len(order.Items)),
		attribute.String("order.total", order.Total.String()),
	)

	o.inFlight = true
	o.views.ContactsForm.SetPending(true)
	result, err := o.comm.SendOrder(ctx, order)
	o.inFlight = false
	o.views.ContactsForm.SetPending(false)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		o.logger.Warn("order not sent, staying on contact details", slog.Any("error", err))
		o.views.ContactsForm.SetSubmitError(OrderNotSentMessage)
		return nil
	}

	charged := order.Total
	if !result.Total.IsPriceless() {
		charged = result.Total.Amount()
	}
	o.logger.Info("order placed", slog.String("order_id", result.ID), slog.String("total", charged.String()))

	o.views.ContactsForm.SetSubmitError("")
	o.views.Success.SetTotal(charged)
	return o.show(ctx, StateSuccess, o.views.Success)
}

func (o *Orchestrator) onOrderSuccessClose(ctx context.Context, e contracts.OrderSuccessClose) error {
	return o.views.Modal.Close(ctx)
}

func (o *Orchestrator) onModalOpen(ctx context.Context, e contracts.ModalOpen) error {
	o.views.Page.LockScroll()
	return nil
}

func (o *Orchestrator) onModalClose(ctx context.Context, e contracts.ModalClose) error {
	o.views.Page.UnlockScroll()
	o.disposeTransient()
	o.views.Modal.SetContent(nil)
	return o.transition(ctx, StateBrowsing)
}
