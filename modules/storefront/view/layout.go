package view

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"github.com/shopspring/decimal"

	"github.com/0wem/weblarek/modules/shared/events"
	"github.com/0wem/weblarek/modules/shared/events/contracts"
	"github.com/0wem/weblarek/modules/shared/types"
)

// Page is the document shell. It owns the scroll lock only.
type Page struct {
	header  Renderer
	gallery Renderer
	modal   Renderer
	locked  bool
}

func NewPage(header, gallery, modal Renderer) *Page {
	return &Page{header: header, gallery: gallery, modal: modal}
}

func (p *Page) LockScroll() { p.locked = true }
func (p *Page) UnlockScroll() { p.locked = false }
func (p *Page) Locked() bool { return p.locked }

func (p *Page) Render(ctx context.Context, w io.Writer) error {
	var style string
	if p.locked {
		style = "overflow: hidden"
	}
	return templ.Join(
		templ.Raw("<!DOCTYPE html>"),
		el("html", attrs(a("lang", "ru")),
			el("head", nil,
				el("meta", attrs(a("charset", "utf-8"))),
				el("meta", attrs(a("name", "viewport"), a("content", "width=device-width, initial-scale=1.0"))),
				el("title", nil, text("Web-ларёк")),
				el("link", attrs(a("rel", "stylesheet"), urlAttr("href", "/static/styles.css"))),
			),
			el("body", attrs(a("style", optional(style))),
				el("div", attrs(class("page")),
					el("div", attrs(class("page__wrapper")),
						p.header,
						el("main", attrs(class("gallery")), p.gallery),
					),
					p.modal,
				),
			),
		),
	).Render(ctx, w)
}

// Header shows the logo and the basket counter.
type Header struct {
	emitter
	count int
}

func NewHeader(publisher events.Publisher) *Header {
	return &Header{emitter: emitter{publisher}}
}

func (h *Header) SetCount(count int) { h.count = count }

func (h *Header) Count() int { return h.count }

// ClickBasket publishes basket:open.
func (h *Header) ClickBasket(ctx context.Context) error {
	return h.emit(ctx, contracts.BasketOpen{})
}

func (h *Header) Render(ctx context.Context, w io.Writer) error {
	return el("header", attrs(class("header")),
		el("div", attrs(class("header__container")),
			el("a", attrs(class("header__logo"), urlAttr("href", "/")),
				el("img", attrs(class("header__logo-image"), urlAttr("src", "/static/logo.svg"), a("alt", "Web-ларёк"))),
			),
			postButton(ActionBasketOpen, attrs(class("header__basket")),
				el("span", attrs(class("header__basket-counter")), number(h.count)),
			),
		),
	).Render(ctx, w)
}

// Gallery lists catalog cards in catalog order.
type Gallery struct {
	cards []*CatalogCard
}

func NewGallery() *Gallery { return &Gallery{} }

// SetItems replaces the cards.
func (g *Gallery) SetItems(cards []*CatalogCard) {
	g.cards = cards
}

func (g *Gallery) Len() int { return len(g.cards) }

// Card finds the card for a product id.
func (g *Gallery) Card(productID string) (*CatalogCard, bool) {
	for _, c := range g.cards {
		if c.ProductID() == productID {
			return c, true
		}
	}
	return nil, false
}

func (g *Gallery) Render(ctx context.Context, w io.Writer) error {
	cards := make([]templ.Component, 0, len(g.cards))
	for _, c := range g.cards {
		cards = append(cards, c)
	}
	return templ.Join(cards...).Render(ctx, w)
}

// Modal hosts one content view at a time. Open and Close publish
// modal:open and modal:close; the close control, a backdrop click and the
// Escape key all go through Close.
type Modal struct {
	emitter
	open    bool
	content Renderer
}

func NewModal(publisher events.Publisher) *Modal {
	return &Modal{emitter: emitter{publisher}, content: Empty}
}

func (m *Modal) IsOpen() bool { return m.open }

func (m *Modal) Content() Renderer { return m.content }

// SetContent swaps the hosted view. Nil clears it.
func (m *Modal) SetContent(content Renderer) {
	if content == nil {
		content = Empty
	}
	m.content = content
}

// Open shows the modal. Opening an open modal is a no-op.
func (m *Modal) Open(ctx context.Context) error {
	if m.open {
		return nil
	}
	m.open = true
	return m.emit(ctx, contracts.ModalOpen{})
}

// Close hides the modal. Closing a closed modal is a no-op.
func (m *Modal) Close(ctx context.Context) error {
	if !m.open {
		return nil
	}
	m.open = false
	return m.emit(ctx, contracts.ModalClose{})
}

func (m *Modal) ClickClose(ctx context.Context) error { return m.Close(ctx) }

func (m *Modal) ClickBackdrop(ctx context.Context) error { return m.Close(ctx) }

// PressKey closes the modal on Escape.
func (m *Modal) PressKey(ctx context.Context, key string) error {
	if key != "Escape" {
		return nil
	}
	return m.Close(ctx)
}

func (m *Modal) Render(ctx context.Context, w io.Writer) error {
	return el("div", attrs(class("modal", templ.KV("modal_active", m.open))),
		el("form", attrs(class("modal__backdrop"), a("method", "post"), urlAttr("action", ActionModalBackdrop)),
			el("button", attrs(a("type", "submit"), a("aria-label", "закрыть"))),
		),
		el("div", attrs(class("modal__container")),
			postButton(ActionModalClose, attrs(class("modal__close"), a("aria-label", "закрыть")), nil),
			el("div", attrs(class("modal__content")), when(m.open, m.content)),
		),
	).Render(ctx, w)
}

// EmptyBasketMessage is shown instead of rows when the basket is empty.
const EmptyBasketMessage = "Корзина пуста"

// Basket lists the cart with a total and the checkout control.
type Basket struct {
	emitter
	rows  []*BasketCard
	total decimal.Decimal
}

func NewBasket(publisher events.Publisher) *Basket {
	return &Basket{emitter: emitter{publisher}}
}

// SetItems rebuilds the numbered rows from products.
func (b *Basket) SetItems(products []types.Product) {
	b.rows = make([]*BasketCard, 0, len(products))
	for i, p := range products {
		b.rows = append(b.rows, NewBasketCard(p, i+1, b.publisher))
	}
}

func (b *Basket) SetTotal(total decimal.Decimal) { b.total = total }

func (b *Basket) Total() decimal.Decimal { return b.total }

func (b *Basket) Rows() []*BasketCard { return b.rows }

// Row finds a row by its 1-based index.
func (b *Basket) Row(index int) (*BasketCard, bool) {
	if index < 1 || index > len(b.rows) {
		return nil, false
	}
	return b.rows[index-1], true
}

// CanOrder reports whether the checkout control is enabled.
func (b *Basket) CanOrder() bool { return len(b.rows) > 0 }

// ClickOrder publishes basket:order. It does nothing while empty.
func (b *Basket) ClickOrder(ctx context.Context) error {
	if !b.CanOrder() {
		return nil
	}
	return b.emit(ctx, contracts.BasketOrder{})
}

func (b *Basket) Render(ctx context.Context, w io.Writer) error {
	rows := make([]templ.Component, 0, len(b.rows))
	for _, row := range b.rows {
		rows = append(rows, row)
	}
	return el("div", attrs(class("basket")),
		el("h2", attrs(class("modal__title")), text("Корзина")),
		el("ul", attrs(class("basket__list")), rows...),
		when(len(b.rows) == 0, el("div", attrs(class("basket__empty")), text(EmptyBasketMessage))),
		el("div", attrs(class("modal__actions")),
			postButton(ActionBasketOrder,
				attrs(class("button", "basket__button", templ.KV("button_alt", !b.CanOrder())), a("disabled", !b.CanOrder())),
				text("Оформить"),
			),
			el("span", attrs(class("basket__price")), text(FormatAmount(b.total))),
		),
	).Render(ctx, w)
}

// Success confirms a placed order with the charged total.
type Success struct {
	emitter
	total decimal.Decimal
}

func NewSuccess(publisher events.Publisher) *Success {
	return &Success{emitter: emitter{publisher}}
}

func (s *Success) SetTotal(total decimal.Decimal) { s.total = total }

// Description is the confirmation line, e.g. "Списано 750 синапсов".
func (s *Success) Description() string {
	return "Списано " + FormatAmount(s.total)
}

// ClickClose publishes order-success:close.
func (s *Success) ClickClose(ctx context.Context) error {
	return s.emit(ctx, contracts.OrderSuccessClose{})
}

func (s *Success) Render(ctx context.Context, w io.Writer) error {
	return el("div", attrs(class("order-success")),
		el("h2", attrs(class("film__title")), text("Заказ оформлен")),
		el("p", attrs(class("order-success__description")), text(s.Description())),
		postButton(ActionSuccessClose, attrs(class("button", "order-success__close")), text("За новыми покупками!")),
	).Render(ctx, w)
}

var (
	_ Renderer = (*Page)(nil)
	_ Renderer = (*Header)(nil)
	_ Renderer = (*Gallery)(nil)
	_ Renderer = (*Modal)(nil)
	_ Renderer = (*Basket)(nil)
	_ Renderer = (*Success)(nil)
)
