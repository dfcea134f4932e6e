package view_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0wem/weblarek/internal/platform/eventbus"
	"github.com/0wem/weblarek/modules/shared/events"
	"github.com/0wem/weblarek/modules/shared/events/contracts"
	"github.com/0wem/weblarek/modules/shared/types"
	"github.com/0wem/weblarek/modules/storefront/view"
)

func newBus() *eventbus.InMemoryEventBus {
	return eventbus.New(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// record collects every event published on bus.
func record(bus *eventbus.InMemoryEventBus) *[]events.Event {
	var got []events.Event
	bus.SubscribeAll(func(ctx context.Context, envelope events.Envelope) {
		got = append(got, envelope.Payload)
	})
	return &got
}

func render(t *testing.T, r view.Renderer) string {
	t.Helper()
	html, err := view.RenderString(context.Background(), r)
	require.NoError(t, err)
	return html
}

var (
	forSale   = types.Product{ID: "a", Title: "+1 час в сутках", Category: types.CategorySoftSkill, Image: "/5_Dots.svg", Price: types.PriceFromInt(750)}
	priceless = types.Product{ID: "b", Title: "Мамка-таймер", Category: types.CategoryOther, Price: types.Priceless}
)

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "750 синапсов", view.FormatPrice(types.PriceFromInt(750)))
	assert.Equal(t, "0 синапсов", view.FormatPrice(types.PriceFromInt(0)))
	assert.Equal(t, "Бесценно", view.FormatPrice(types.Priceless))
	assert.Equal(t, "2.5 синапсов", view.FormatAmount(decimal.RequireFromString("2.5")))
}

func TestCategoryClass(t *testing.T) {
	tests := map[types.Category]string{
		types.CategorySoftSkill:  "card__category_soft",
		types.CategoryHardSkill:  "card__category_hard",
		types.CategoryOther:      "card__category_other",
		types.CategoryAdditional: "card__category_additional",
		types.CategoryButton:     "card__category_button",
		types.Category("новое"):  "card__category_other",
	}
	for category, want := range tests {
		assert.Equal(t, want, view.CategoryClass(category), category)
	}
}

func TestImageURL(t *testing.T) {
	assert.Equal(t, "https://cdn.example/content/weblarek/5_Dots.svg", view.ImageURL("https://cdn.example/content/weblarek/", "/5_Dots.svg"))
	assert.Equal(t, "https://other/x.svg", view.ImageURL("https://cdn.example", "https://other/x.svg"))
	assert.Equal(t, "/x.svg", view.ImageURL("", "/x.svg"))
}

func TestFormatPhone(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"999", "+7 (999"},
		{"9991", "+7 (999) 1"},
		{"999123", "+7 (999) 123"},
		{"9991234", "+7 (999) 123-4"},
		{"9161234567", "+7 (916) 123-45-67"},
		{"79991234567", "+7 (999) 123-45-67"},
		{"89991234567", "+7 (999) 123-45-67"},
		{"+7 (999) 123-45-67", "+7 (999) 123-45-67"},
		{"+7 (99", "+7 (99"},
		{"7999123456789", "+7 (999) 123-45-67"},
		{"8 916 123 45 6", "+7 (891) 612-34-56"},
		{"９９９", ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, view.FormatPhone(tt.input))
		})
	}
}

func TestCatalogCard_ClickPublishesSelect(t *testing.T) {
	bus := newBus()
	got := record(bus)
	card := view.NewCatalogCard(forSale, "https://cdn", bus)

	require.NoError(t, card.Click(context.Background()))

	require.Len(t, *got, 1)
	assert.Equal(t, "a", (*got)[0].(contracts.CardSelect).Product.ID)
	html := render(t, card)
	assert.Contains(t, html, "card__category_soft")
	assert.Contains(t, html, "750 синапсов")
	assert.Contains(t, html, "https://cdn/5_Dots.svg")
	assert.Contains(t, html, "/cards/a/select")
}

func TestCatalogCard_EscapesText(t *testing.T) {
	card := view.NewCatalogCard(types.Product{ID: "x", Title: "<script>"}, "", newBus())

	html := render(t, card)

	assert.NotContains(t, html, "<script>")
	assert.Contains(t, html, "&lt;script&gt;")
}

func TestPreviewCard_ButtonStates(t *testing.T) {
	bus := newBus()

	buy, err := view.NewPreviewCard(forSale, false, "", bus)
	require.NoError(t, err)
	assert.Equal(t, view.LabelBuy, buy.ButtonLabel())

	remove, err := view.NewPreviewCard(forSale, true, "", bus)
	require.NoError(t, err)
	assert.Equal(t, view.LabelRemove, remove.ButtonLabel())

	unavailable, err := view.NewPreviewCard(priceless, false, "", bus)
	require.NoError(t, err)
	assert.Equal(t, view.LabelUnavailable, unavailable.ButtonLabel())
	assert.True(t, unavailable.ButtonDisabled())
	assert.Contains(t, render(t, unavailable), "disabled")
	assert.Contains(t, render(t, unavailable), "Бесценно")
}

func TestPreviewCard_ClickButtonTogglesIntent(t *testing.T) {
	bus := newBus()
	got := record(bus)
	preview, err := view.NewPreviewCard(forSale, false, "", bus)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, preview.ClickButton(ctx))
	preview.SetInCart(true)
	require.NoError(t, preview.ClickButton(ctx))

	require.Len(t, *got, 2)
	assert.IsType(t, contracts.CardAdd{}, (*got)[0])
	assert.IsType(t, contracts.CardRemove{}, (*got)[1])
}

func TestPreviewCard_PricelessPublishesNothing(t *testing.T) {
	bus := newBus()
	got := record(bus)
	preview, err := view.NewPreviewCard(priceless, false, "", bus)
	require.NoError(t, err)

	require.NoError(t, preview.ClickButton(context.Background()))

	assert.Empty(t, *got)
}

func TestPreviewCard_FollowsCartUntilDisposed(t *testing.T) {
	bus := newBus()
	ctx := context.Background()
	preview, err := view.NewPreviewCard(forSale, false, "", bus)
	require.NoError(t, err)

	require.NoError(t, bus.Publish(ctx, contracts.CartItemAdded{Item: priceless}))
	assert.False(t, preview.InCart())

	require.NoError(t, bus.Publish(ctx, contracts.CartItemAdded{Item: forSale}))
	assert.True(t, preview.InCart())

	require.NoError(t, bus.Publish(ctx, contracts.CartItemRemoved{Item: nil}))
	assert.True(t, preview.InCart())

	require.NoError(t, bus.Publish(ctx, contracts.CartCleared{}))
	assert.False(t, preview.InCart())

	preview.Dispose()
	preview.Dispose()
	assert.Zero(t, bus.HandlerCount(contracts.CartItemAddedEventType))
	require.NoError(t, bus.Publish(ctx, contracts.CartItemAdded{Item: forSale}))
	assert.False(t, preview.InCart())
}

func TestBasket_RowsAreNumberedFromOne(t *testing.T) {
	bus := newBus()
	got := record(bus)
	basket := view.NewBasket(bus)
	basket.SetItems([]types.Product{forSale, priceless})
	basket.SetTotal(decimal.NewFromInt(750))

	row, ok := basket.Row(2)
	require.True(t, ok)
	assert.Equal(t, "b", row.ProductID())
	_, ok = basket.Row(0)
	assert.False(t, ok)

	require.NoError(t, row.ClickDelete(context.Background()))
	require.Len(t, *got, 1)
	assert.Equal(t, "b", (*got)[0].(contracts.CardRemove).Product.ID)

	html := render(t, basket)
	assert.Contains(t, html, `<span class="basket__item-index">1</span>`)
	assert.Contains(t, html, `<span class="basket__item-index">2</span>`)
	assert.Contains(t, html, "750 синапсов")
	assert.NotContains(t, html, view.EmptyBasketMessage)
}

func TestBasket_EmptyDisablesCheckout(t *testing.T) {
	bus := newBus()
	got := record(bus)
	basket := view.NewBasket(bus)
	basket.SetItems(nil)

	require.NoError(t, basket.ClickOrder(context.Background()))

	assert.False(t, basket.CanOrder())
	assert.Empty(t, *got)
	html := render(t, basket)
	assert.Contains(t, html, view.EmptyBasketMessage)
	assert.Contains(t, html, "disabled")
	assert.Contains(t, html, "0 синапсов")
}

func TestModal_ClosePathsShareOneEvent(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name  string
		close func(m *view.Modal) error
	}{
		{"close control", func(m *view.Modal) error { return m.ClickClose(ctx) }},
		{"backdrop", func(m *view.Modal) error { return m.ClickBackdrop(ctx) }},
		{"escape", func(m *view.Modal) error { return m.PressKey(ctx, "Escape") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bus := newBus()
			got := record(bus)
			modal := view.NewModal(bus)
			require.NoError(t, modal.Open(ctx))

			require.NoError(t, tt.close(modal))
			require.NoError(t, tt.close(modal))

			assert.False(t, modal.IsOpen())
			require.Len(t, *got, 2)
			assert.IsType(t, contracts.ModalOpen{}, (*got)[0])
			assert.IsType(t, contracts.ModalClose{}, (*got)[1])
		})
	}
}

func TestModal_OtherKeysIgnored(t *testing.T) {
	bus := newBus()
	modal := view.NewModal(bus)
	ctx := context.Background()
	require.NoError(t, modal.Open(ctx))

	require.NoError(t, modal.PressKey(ctx, "Enter"))

	assert.True(t, modal.IsOpen())
}

func TestModal_RendersContentOnlyWhenOpen(t *testing.T) {
	modal := view.NewModal(newBus())
	modal.SetContent(view.NewCatalogCard(forSale, "", newBus()))

	assert.NotContains(t, render(t, modal), forSale.Title)

	require.NoError(t, modal.Open(context.Background()))
	html := render(t, modal)
	assert.Contains(t, html, "modal_active")
	assert.Contains(t, html, forSale.Title)
}

func TestHeader_CounterAndBasketIntent(t *testing.T) {
	bus := newBus()
	got := record(bus)
	header := view.NewHeader(bus)
	header.SetCount(3)

	require.NoError(t, header.ClickBasket(context.Background()))

	assert.Contains(t, render(t, header), `<span class="header__basket-counter">3</span>`)
	require.Len(t, *got, 1)
	assert.IsType(t, contracts.BasketOpen{}, (*got)[0])
}

func TestGallery_CardLookup(t *testing.T) {
	bus := newBus()
	gallery := view.NewGallery()
	gallery.SetItems([]*view.CatalogCard{view.NewCatalogCard(forSale, "", bus), view.NewCatalogCard(priceless, "", bus)})

	card, ok := gallery.Card("b")
	require.True(t, ok)
	assert.Equal(t, "b", card.ProductID())
	_, ok = gallery.Card("missing")
	assert.False(t, ok)
	assert.Equal(t, 2, gallery.Len())
}

func TestPage_ScrollLock(t *testing.T) {
	page := view.NewPage(view.Empty, view.Empty, view.Empty)

	page.LockScroll()
	assert.True(t, page.Locked())
	assert.Contains(t, render(t, page), "overflow: hidden")

	page.UnlockScroll()
	assert.False(t, page.Locked())
	assert.NotContains(t, render(t, page), "overflow: hidden")
}

func TestSuccess_Description(t *testing.T) {
	bus := newBus()
	got := record(bus)
	success := view.NewSuccess(bus)
	success.SetTotal(decimal.NewFromInt(750))

	require.NoError(t, success.ClickClose(context.Background()))

	assert.Equal(t, "Списано 750 синапсов", success.Description())
	assert.Contains(t, render(t, success), "За новыми покупками!")
	require.Len(t, *got, 1)
	assert.IsType(t, contracts.OrderSuccessClose{}, (*got)[0])
}
