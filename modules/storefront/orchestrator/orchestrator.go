// Package orchestrator drives the storefront checkout. It reacts to model
// change events and view intent events, calls model methods and decides
// which view the modal shows next.
package orchestrator

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	buyerdomain "github.com/0wem/weblarek/modules/buyer/domain"
	cartdomain "github.com/0wem/weblarek/modules/cart/domain"
	catalogdomain "github.com/0wem/weblarek/modules/catalog/domain"
	"github.com/0wem/weblarek/modules/shared/events"
	"github.com/0wem/weblarek/modules/shared/events/contracts"
	"github.com/0wem/weblarek/modules/shared/types"
	"github.com/0wem/weblarek/modules/storefront/view"
)

// OrderNotSentMessage is shown on the contacts form when sending fails.
const OrderNotSentMessage = "Не удалось оформить заказ, попробуйте ещё раз"

// Communicator fetches the catalog and sends orders.
type Communicator interface {
	ProductList(ctx context.Context) ([]types.Product, error)
	SendOrder(ctx context.Context, order types.Order) (types.OrderResult, error)
}

// FallbackFunc supplies the static catalog used when fetching fails.
type FallbackFunc func() ([]types.Product, error)

// Views are the long-lived views the orchestrator renders into. Preview and
// basket views are transient and created per modal opening.
type Views struct {
	Page         *view.Page
	Header       *view.Header
	Gallery      *view.Gallery
	Modal        *view.Modal
	OrderForm    *view.OrderForm
	ContactsForm *view.ContactsForm
	Success      *view.Success
}

type Orchestrator struct {
	bus      events.Bus
	catalog  *catalogdomain.Catalog
	cart     *cartdomain.Cart
	buyer    *buyerdomain.Buyer
	comm     Communicator
	views    Views
	fallback FallbackFunc
	cdn      string
	logger   *slog.Logger
	tracer   trace.Tracer

	state    State
	preview  *view.PreviewCard
	basket   *view.Basket
	inFlight bool
	subs     []events.Subscription
}

type Option func(*Orchestrator)

// WithFallback sets the catalog used when fetching fails or returns nothing.
func WithFallback(fn FallbackFunc) Option {
	return func(o *Orchestrator) { o.fallback = fn }
}

// WithCDN sets the origin product images are resolved against.
func WithCDN(cdn string) Option {
	return func(o *Orchestrator) { o.cdn = cdn }
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func New(
	bus events.Bus,
	catalog *catalogdomain.Catalog,
	cart *cartdomain.Cart,
	buyer *buyerdomain.Buyer,
	comm Communicator,
	views Views,
	opts ...Option,
) *Orchestrator {
	o := &Orchestrator{
		bus:     bus,
		catalog: catalog,
		cart:    cart,
		buyer:   buyer,
		comm:    comm,
		views:   views,
		logger:  slog.Default(),
		tracer:  otel.Tracer("github.com/0wem/weblarek/modules/storefront/orchestrator"),
		state:   StateBrowsing,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Start subscribes every handler. Call it once before Load.
func (o *Orchestrator) Start() error {
	registrations := []func() (events.Subscription, error){
		func() (events.Subscription, error) { return contracts.On(o.bus, o.onProductsChanged) },
		func() (events.Subscription, error) { return contracts.On(o.bus, o.onProductSelected) },
		func() (events.Subscription, error) { return contracts.On(o.bus, o.onCartItemAdded) },
		func() (events.Subscription, error) { return contracts.On(o.bus, o.onCartItemRemoved) },
		func() (events.Subscription, error) { return contracts.On(o.bus, o.onCartCleared) },
		func() (events.Subscription, error) { return contracts.On(o.bus, o.onCardSelect) },
		func() (events.Subscription, error) { return contracts.On(o.bus, o.onCardAdd) },
		func() (events.Subscription, error) { return contracts.On(o.bus, o.onCardRemove) },
		func() (events.Subscription, error) { return contracts.On(o.bus, o.onBasketOpen) },
		func() (events.Subscription, error) { return contracts.On(o.bus, o.onBasketOrder) },
		func() (events.Subscription, error) { return contracts.On(o.bus, o.onOrderChange) },
		func() (events.Subscription, error) { return contracts.On(o.bus, o.onFormValidate) },
		func() (events.Subscription, error) { return contracts.On(o.bus, o.onOrderSubmit) },
		func() (events.Subscription, error) { return contracts.On(o.bus, o.onContactsSubmit) },
		func() (events.Subscription, error) { return contracts.On(o.bus, o.onOrderSuccessClose) },
		func() (events.Subscription, error) { return contracts.On(o.bus, o.onModalOpen) },
		func() (events.Subscription, error) { return contracts.On(o.bus, o.onModalClose) },
	}
	for _, register := range registrations {
		sub, err := register()
		if err != nil {
			o.Stop()
			return fmt.Errorf("subscribing orchestrator: %w", err)
		}
		o.subs = append(o.subs, sub)
	}
	return nil
}

// Stop releases every subscription and any transient view.
func (o *Orchestrator) Stop() {
	for _, sub := range o.subs {
		sub.Unsubscribe()
	}
	o.subs = nil
	o.disposeTransient()
}

func (o *Orchestrator) State() State { return o.state }

// Preview returns the open preview view, if any.
func (o *Orchestrator) Preview() (*view.PreviewCard, bool) {
	return o.preview, o.preview != nil
}

// Basket returns the open basket view, if any.
func (o *Orchestrator) Basket() (*view.Basket, bool) {
	return o.basket, o.basket != nil
}

// Load fills the catalog. A failed or empty fetch falls back to the static
// list so browsing never starts empty.
func (o *Orchestrator) Load(ctx context.Context) error {
	ctx, span := o.tracer.Start(ctx, "orchestrator.Load")
	defer span.End()

	products, err := o.comm.ProductList(ctx)
	switch {
	case err != nil:
		o.logger.Warn("catalog fetch failed, using fallback list", slog.Any("error", err))
		products = nil
	case len(products) == 0:
		o.logger.Warn("catalog fetch returned no products, using fallback list")
	}

	if len(products) == 0 {
		if o.fallback == nil {
			return ErrCatalogUnavailable
		}
		products, err = o.fallback()
		if err != nil {
			return fmt.Errorf("loading fallback catalog: %w", err)
		}
		span.SetAttributes(attribute.Bool("catalog.fallback", true))
	}

	span.SetAttributes(attribute.Int("catalog.products", len(products)))
	return o.catalog.SetProducts(ctx, products)
}

// transition moves to the next step. Leaving the success step by any path
// resets the cart and the buyer.
func (o *Orchestrator) transition(ctx context.Context, to State) error {
	if o.state == to {
		return nil
	}
	from := o.state
	o.logger.Debug("checkout state changed", slog.String("from", from.String()), slog.String("to", to.String()))
	o.state = to
	if from != StateSuccess {
		return nil
	}
	if err := o.cart.Clear(ctx); err != nil {
		return err
	}
	return o.buyer.Clear(ctx)
}

func (o *Orchestrator) disposeTransient() {
	if o.preview != nil {
		o.preview.Dispose()
		o.preview = nil
	}
	o.basket = nil
}

// show puts content into the modal and opens it.
func (o *Orchestrator) show(ctx context.Context, to State, content view.Renderer) error {
	o.views.Modal.SetContent(content)
	if err := o.transition(ctx, to); err != nil {
		return err
	}
	return o.views.Modal.Open(ctx)
}

func (o *Orchestrator) refreshBasket() {
	if o.basket == nil {
		return
	}
	o.basket.SetItems(o.cart.Items())
	o.basket.SetTotal(o.cart.TotalPrice())
}

func (o *Orchestrator) onCartChanged() {
	o.views.Header.SetCount(o.cart.Count())
	o.refreshBasket()
}
