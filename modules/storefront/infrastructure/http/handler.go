// Package http hosts a storefront session in the browser. Every form post
// is mapped onto one view interaction and answered with a redirect to the
// freshly rendered page.
package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/a-h/templ"

	"github.com/0wem/weblarek/modules/shared/types"
	"github.com/0wem/weblarek/modules/storefront"
	"github.com/0wem/weblarek/modules/storefront/view"
)

var (
	ErrNotVisible  = errors.New("view is not on screen")
	ErrUnknownItem = errors.New("unknown item")
)

type Handler struct {
	app    *storefront.App
	logger *slog.Logger
}

// RegisterRoutes registers the page and every view action on mux.
func RegisterRoutes(mux *http.ServeMux, app *storefront.App, logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	h := &Handler{app: app, logger: logger}

	mux.HandleFunc("GET /{$}", h.handlePage)
	mux.HandleFunc("GET /health", h.handleHealth)

	mux.HandleFunc("POST "+view.ActionBasketOpen, h.action(h.basketOpen))
	mux.HandleFunc("POST "+view.ActionBasketOrder, h.action(h.basketOrder))
	mux.HandleFunc("POST /basket/items/{index}/delete", h.action(h.basketDelete))
	mux.HandleFunc("POST /cards/{id}/select", h.action(h.cardSelect))
	mux.HandleFunc("POST "+view.ActionPreviewButton, h.action(h.previewButton))
	mux.HandleFunc("POST "+view.ActionOrderPayment, h.action(h.orderPayment))
	mux.HandleFunc("POST "+view.ActionOrderAddress, h.action(h.orderAddress))
	mux.HandleFunc("POST "+view.ActionOrderSubmit, h.action(h.orderSubmit))
	mux.HandleFunc("POST "+view.ActionContactsEmail, h.action(h.contactsEmail))
	mux.HandleFunc("POST "+view.ActionContactsPhone, h.action(h.contactsPhone))
	mux.HandleFunc("POST "+view.ActionContactsSubmit, h.action(h.contactsSubmit))
	mux.HandleFunc("POST "+view.ActionSuccessClose, h.action(h.successClose))
	mux.HandleFunc("POST "+view.ActionModalClose, h.action(h.modalClose))
	mux.HandleFunc("POST "+view.ActionModalBackdrop, h.action(h.modalClose))
	mux.HandleFunc("POST "+view.ActionModalKey, h.action(h.modalKey))
}

func (h *Handler) handlePage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-store")
	templ.Handler(h.app.Page(), templ.WithErrorHandler(h.renderError)).ServeHTTP(w, r)
}

func (h *Handler) renderError(r *http.Request, err error) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.logger.ErrorContext(r.Context(), "render failed", slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	})
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

// action runs fn with exclusive access to the session and redirects back
// to the page.
func (h *Handler) action(fn func(ctx context.Context, r *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		err := h.app.Do(func() error { return fn(ctx, r) })
		if err != nil {
			h.handleError(w, r, err)
			return
		}
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

func (h *Handler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrNotVisible):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, ErrUnknownItem):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, types.ErrUnknownPayment):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		h.logger.ErrorContext(r.Context(), "action failed", slog.String("path", r.URL.Path), slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// onScreen reports whether r is the open modal's content.
func (h *Handler) onScreen(r view.Renderer) bool {
	modal := h.app.Views.Modal
	return modal.IsOpen() && modal.Content() == r
}

func (h *Handler) basketOpen(ctx context.Context, r *http.Request) error {
	return h.app.Views.Header.ClickBasket(ctx)
}

func (h *Handler) basketOrder(ctx context.Context, r *http.Request) error {
	basket, ok := h.app.Orchestrator.Basket()
	if !ok {
		return ErrNotVisible
	}
	return basket.ClickOrder(ctx)
}

func (h *Handler) basketDelete(ctx context.Context, r *http.Request) error {
	basket, ok := h.app.Orchestrator.Basket()
	if !ok {
		return ErrNotVisible
	}
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		return ErrUnknownItem
	}
	row, ok := basket.Row(index)
	if !ok {
		return ErrUnknownItem
	}
	return row.ClickDelete(ctx)
}

func (h *Handler) cardSelect(ctx context.Context, r *http.Request) error {
	card, ok := h.app.Views.Gallery.Card(r.PathValue("id"))
	if !ok {
		return ErrUnknownItem
	}
	return card.Click(ctx)
}

func (h *Handler) previewButton(ctx context.Context, r *http.Request) error {
	preview, ok := h.app.Orchestrator.Preview()
	if !ok {
		return ErrNotVisible
	}
	return preview.ClickButton(ctx)
}

func (h *Handler) orderPayment(ctx context.Context, r *http.Request) error {
	form := h.app.Views.OrderForm
	if !h.onScreen(form) {
		return ErrNotVisible
	}
	return form.SelectPayment(ctx, types.Payment(r.PostFormValue("payment")))
}

func (h *Handler) orderAddress(ctx context.Context, r *http.Request) error {
	form := h.app.Views.OrderForm
	if !h.onScreen(form) {
		return ErrNotVisible
	}
	return form.InputAddress(ctx, r.PostFormValue("address"))
}

func (h *Handler) orderSubmit(ctx context.Context, r *http.Request) error {
	form := h.app.Views.OrderForm
	if !h.onScreen(form) {
		return ErrNotVisible
	}
	return form.Submit(ctx)
}

func (h *Handler) contactsEmail(ctx context.Context, r *http.Request) error {
	form := h.app.Views.ContactsForm
	if !h.onScreen(form) {
		return ErrNotVisible
	}
	return form.InputEmail(ctx, r.PostFormValue("email"))
}

func (h *Handler) contactsPhone(ctx context.Context, r *http.Request) error {
	form := h.app.Views.ContactsForm
	if !h.onScreen(form) {
		return ErrNotVisible
	}
	return form.InputPhone(ctx, r.PostFormValue("phone"))
}

func (h *Handler) contactsSubmit(ctx context.Context, r *http.Request) error {
	form := h.app.Views.ContactsForm
	if !h.onScreen(form) {
		return ErrNotVisible
	}
	return form.Submit(ctx)
}

func (h *Handler) successClose(ctx context.Context, r *http.Request) error {
	success := h.app.Views.Success
	if !h.onScreen(success) {
		return ErrNotVisible
	}
	return success.ClickClose(ctx)
}

func (h *Handler) modalClose(ctx context.Context, r *http.Request) error {
	return h.app.Views.Modal.ClickClose(ctx)
}

func (h *Handler) modalKey(ctx context.Context, r *http.Request) error {
	return h.app.Views.Modal.PressKey(ctx, r.PostFormValue("key"))
}
