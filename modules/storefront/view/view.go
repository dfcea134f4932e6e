// Package view contains the storefront's render-only view components.
//
// Views project a data snapshot into HTML and turn user interaction into
// intent events. They never call model methods and never call each other;
// what they hold is a transient copy for rendering, not a source of truth.
package view

import (
	"context"
	"strings"

	"github.com/a-h/templ"

	"github.com/0wem/weblarek/modules/shared/events"
)

// Renderer is implemented by every view. Views are templ components, so
// any of them can be handed to templ.Handler or nested in another one.
type Renderer = templ.Component

// Disposer is implemented by transient views that hold bus subscriptions.
type Disposer interface {
	Dispose()
}

// Empty renders nothing.
var Empty Renderer = templ.NopComponent

// Form actions the browser host routes back to the view interactions.
const (
	ActionBasketOpen     = "/basket/open"
	ActionBasketOrder    = "/basket/order"
	ActionBasketDelete   = "/basket/items/%d/delete"
	ActionPreviewButton  = "/preview/button"
	ActionCardSelect     = "/cards/%s/select"
	ActionOrderPayment   = "/order/payment"
	ActionOrderAddress   = "/order/address"
	ActionOrderSubmit    = "/order/submit"
	ActionContactsEmail  = "/contacts/email"
	ActionContactsPhone  = "/contacts/phone"
	ActionContactsSubmit = "/contacts/submit"
	ActionSuccessClose   = "/success/close"
	ActionModalClose     = "/modal/close"
	ActionModalBackdrop  = "/modal/backdrop"
	ActionModalKey       = "/modal/key"
)

// emitter is embedded by views that publish intents.
type emitter struct {
	publisher events.Publisher
}

func (e emitter) emit(ctx context.Context, event events.Event) error {
	return e.publisher.Publish(ctx, event)
}

// RenderString renders r into a string. Intended for tests and logging.
func RenderString(ctx context.Context, r Renderer) (string, error) {
	var sb strings.Builder
	if err := r.Render(ctx, &sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}
