// Package http provides HTTP handlers for the orders module.
package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/0wem/weblarek/modules/orders/application/commands"
	"github.com/0wem/weblarek/modules/orders/application/queries"
	"github.com/0wem/weblarek/modules/orders/domain"
	"github.com/0wem/weblarek/modules/shared/types"
)

const maxBodyBytes = 1 << 20

type Handler struct {
	placeOrder   *commands.PlaceOrderHandler
	getOrder     *queries.GetOrderHandler
	listProducts *queries.ListProductsHandler
	products     domain.ProductRepository
	logger       *slog.Logger
}

// RegisterRoutes registers the orders module routes to the given mux.
func RegisterRoutes(
	mux *http.ServeMux,
	placeOrder *commands.PlaceOrderHandler,
	getOrder *queries.GetOrderHandler,
	listProducts *queries.ListProductsHandler,
	products domain.ProductRepository,
	logger *slog.Logger,
) {
	h := &Handler{
		placeOrder:   placeOrder,
		getOrder:     getOrder,
		listProducts: listProducts,
		products:     products,
		logger:       logger,
	}

	mux.HandleFunc("GET /product/", h.handleListProducts)
	mux.HandleFunc("GET /product/{id}", h.handleGetProduct)
	mux.HandleFunc("POST /order/", h.handlePlaceOrder)
	mux.HandleFunc("GET /order/{id}", h.handleGetOrder)
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) handleListProducts(w http.ResponseWriter, r *http.Request) {
	result, err := h.listProducts.Handle(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.products.FindByID(r.Context(), r.PathValue("id"))
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *Handler) handlePlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req types.OrderPayload
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.placeOrder.Handle(r.Context(), commands.PlaceOrderCommand{Payload: req})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.logger.InfoContext(r.Context(), "order placed", slog.String("order_id", result.ID), slog.String("total", result.Total.String()))
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.getOrder.Handle(r.Context(), queries.GetOrderQuery{OrderID: r.PathValue("id")})
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

// Helper functions

func (h *Handler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrOrderNotFound),
		errors.Is(err, domain.ErrInvalidOrderID):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrProductNotFound):
		if r.Method == http.MethodGet {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNoItems),
		errors.Is(err, domain.ErrProductNotForSale),
		errors.Is(err, domain.ErrTotalMismatch),
		errors.Is(err, domain.ErrInvalidBuyer):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.ErrorContext(r.Context(), "request failed", slog.String("path", r.URL.Path), slog.Any("error", err))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}
