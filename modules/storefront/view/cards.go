package view

import (
	"context"
	"fmt"
	"io"
	"net/url"

	"github.com/a-h/templ"

	"github.com/0wem/weblarek/modules/shared/events"
	"github.com/0wem/weblarek/modules/shared/events/contracts"
	"github.com/0wem/weblarek/modules/shared/types"
)

// Preview button labels.
const (
	LabelBuy         = "Купить"
	LabelRemove      = "Удалить из корзины"
	LabelUnavailable = "Недоступно"
)

func cardSelectAction(id string) string {
	return fmt.Sprintf(ActionCardSelect, url.PathEscape(id))
}

func basketDeleteAction(index int) string {
	return fmt.Sprintf(ActionBasketDelete, index)
}

// CatalogCard is a product tile in the gallery.
type CatalogCard struct {
	emitter
	product types.Product
	cdn     string
}

func NewCatalogCard(product types.Product, cdn string, publisher events.Publisher) *CatalogCard {
	return &CatalogCard{emitter: emitter{publisher}, product: product, cdn: cdn}
}

func (c *CatalogCard) ProductID() string { return c.product.ID }

// Click publishes card:select for the card's product.
func (c *CatalogCard) Click(ctx context.Context) error {
	return c.emit(ctx, contracts.CardSelect{Product: c.product})
}

func (c *CatalogCard) Render(ctx context.Context, w io.Writer) error {
	p := c.product
	return el("form", attrs(class("gallery__item"), a("method", "post"), urlAttr("action", cardSelectAction(p.ID))),
		el("button", attrs(class("card"), a("type", "submit")),
			categoryBadge(p.Category),
			el("h2", attrs(class("card__title")), text(p.Title)),
			productImage(c.cdn, p),
			el("span", attrs(class("card__price")), text(FormatPrice(p.Price))),
		),
	).Render(ctx, w)
}

func categoryBadge(category types.Category) templ.Component {
	return el("span", attrs(class("card__category", CategoryClass(category))), text(category.String()))
}

func productImage(cdn string, p types.Product) templ.Component {
	return el("img", attrs(class("card__image"), urlAttr("src", ImageURL(cdn, p.Image)), a("alt", p.Title)))
}

// PreviewCard is the full product view shown in the modal. While it is
// open it follows cart events so its button reflects the cart live.
// Dispose releases those subscriptions.
type PreviewCard struct {
	emitter
	product types.Product
	cdn     string
	inCart  bool
	subs    []events.Subscription
}

func NewPreviewCard(product types.Product, inCart bool, cdn string, bus events.Bus) (*PreviewCard, error) {
	p := &PreviewCard{emitter: emitter{bus}, product: product, cdn: cdn, inCart: inCart}

	subscribe := []func() (events.Subscription, error){
		func() (events.Subscription, error) {
			return contracts.On(bus, func(ctx context.Context, e contracts.CartItemAdded) error {
				if e.Item.ID == p.product.ID {
					p.inCart = true
				}
				return nil
			})
		},
		func() (events.Subscription, error) {
			return contracts.On(bus, func(ctx context.Context, e contracts.CartItemRemoved) error {
				if e.Item != nil && e.Item.ID == p.product.ID {
					p.inCart = false
				}
				return nil
			})
		},
		func() (events.Subscription, error) {
			return contracts.On(bus, func(ctx context.Context, e contracts.CartCleared) error {
				p.inCart = false
				return nil
			})
		},
	}
	for _, fn := range subscribe {
		sub, err := fn()
		if err != nil {
			p.Dispose()
			return nil, fmt.Errorf("subscribing preview: %w", err)
		}
		p.subs = append(p.subs, sub)
	}
	return p, nil
}

func (p *PreviewCard) ProductID() string { return p.product.ID }

func (p *PreviewCard) InCart() bool { return p.inCart }

func (p *PreviewCard) SetInCart(inCart bool) { p.inCart = inCart }

// ButtonLabel reports the label the action button renders with.
func (p *PreviewCard) ButtonLabel() string {
	switch {
	case !p.product.ForSale():
		return LabelUnavailable
	case p.inCart:
		return LabelRemove
	default:
		return LabelBuy
	}
}

// ButtonDisabled reports whether the action button is inert.
func (p *PreviewCard) ButtonDisabled() bool { return !p.product.ForSale() }

// ClickButton publishes card:remove when the product is in the cart and
// card:add otherwise. Priceless products publish nothing.
func (p *PreviewCard) ClickButton(ctx context.Context) error {
	if !p.product.ForSale() {
		return nil
	}
	if p.inCart {
		return p.emit(ctx, contracts.CardRemove{Product: p.product})
	}
	return p.emit(ctx, contracts.CardAdd{Product: p.product})
}

// Dispose releases the cart subscriptions. It is safe to call twice.
func (p *PreviewCard) Dispose() {
	for _, sub := range p.subs {
		sub.Unsubscribe()
	}
	p.subs = nil
}

func (p *PreviewCard) Render(ctx context.Context, w io.Writer) error {
	disabled := p.ButtonDisabled()
	return el("div", attrs(class("card", "card_full")),
		productImage(p.cdn, p.product),
		el("div", attrs(class("card__column")),
			categoryBadge(p.product.Category),
			el("h2", attrs(class("card__title")), text(p.product.Title)),
			el("p", attrs(class("card__text")), text(p.product.Description)),
			el("div", attrs(class("card__row")),
				postButton(ActionPreviewButton,
					attrs(class("button", "card__button", templ.KV("button_alt", disabled)), a("disabled", disabled)),
					text(p.ButtonLabel()),
				),
				el("span", attrs(class("card__price")), text(FormatPrice(p.product.Price))),
			),
		),
	).Render(ctx, w)
}

// BasketCard is one numbered basket row.
type BasketCard struct {
	emitter
	product types.Product
	index   int
}

// NewBasketCard creates a row; index is 1-based.
func NewBasketCard(product types.Product, index int, publisher events.Publisher) *BasketCard {
	return &BasketCard{emitter: emitter{publisher}, product: product, index: index}
}

func (b *BasketCard) Index() int { return b.index }

func (b *BasketCard) ProductID() string { return b.product.ID }

// ClickDelete publishes card:remove for the row's product.
func (b *BasketCard) ClickDelete(ctx context.Context) error {
	return b.emit(ctx, contracts.CardRemove{Product: b.product})
}

func (b *BasketCard) Render(ctx context.Context, w io.Writer) error {
	return el("li", attrs(class("basket__item", "card", "card_compact")),
		el("span", attrs(class("basket__item-index")), number(b.index)),
		el("span", attrs(class("card__title")), text(b.product.Title)),
		el("span", attrs(class("card__price")), text(FormatPrice(b.product.Price))),
		postButton(basketDeleteAction(b.index),
			attrs(class("basket__item-delete", "card__button"), a("aria-label", "удалить")),
			nil,
		),
	).Render(ctx, w)
}

var (
	_ Renderer = (*CatalogCard)(nil)
	_ Renderer = (*PreviewCard)(nil)
	_ Renderer = (*BasketCard)(nil)
	_ Disposer = (*PreviewCard)(nil)
)
