// Package orders provides the order API the storefront talks to.
// This is the public API for the orders bounded context.
package orders

import (
	"log/slog"
	"net/http"

	"github.com/0wem/weblarek/internal/platform/eventbus"
	"github.com/0wem/weblarek/modules/orders/application/commands"
	"github.com/0wem/weblarek/modules/orders/application/queries"
	"github.com/0wem/weblarek/modules/orders/domain"
	httphandler "github.com/0wem/weblarek/modules/orders/infrastructure/http"
	"github.com/0wem/weblarek/modules/shared/transaction"
)

// Module is the public API for the orders bounded context.
// External communication: HTTP API (RegisterRoutes)
// Cross-module communication: Domain Events (order:placed)
type Module interface {
	// RegisterRoutes registers the module's HTTP routes to the given mux.
	RegisterRoutes(mux *http.ServeMux)
}

// Config holds the module configuration.
type Config struct {
	Orders   domain.OrderRepository
	Products domain.ProductRepository
	// TxScope defaults to transaction.None.
	TxScope transaction.Scope
	// HandlerRegistry receives order:placed before commit.
	HandlerRegistry eventbus.HandlerRegistry
	Logger          *slog.Logger
}

type module struct {
	placeOrderHandler   *commands.PlaceOrderHandler
	getOrderHandler     *queries.GetOrderHandler
	listProductsHandler *queries.ListProductsHandler
	products            domain.ProductRepository
	logger              *slog.Logger
}

// New creates a new orders module.
func New(cfg Config) Module {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("module", "orders")

	txScope := cfg.TxScope
	if txScope == nil {
		txScope = transaction.None
	}

	registry := cfg.HandlerRegistry
	if registry == nil {
		registry = eventbus.New(logger)
	}

	return &module{
		placeOrderHandler:   commands.NewPlaceOrderHandler(cfg.Orders, cfg.Products, txScope, registry),
		getOrderHandler:     queries.NewGetOrderHandler(cfg.Orders),
		listProductsHandler: queries.NewListProductsHandler(cfg.Products),
		products:            cfg.Products,
		logger:              logger,
	}
}

func (m *module) RegisterRoutes(mux *http.ServeMux) {
	httphandler.RegisterRoutes(mux, m.placeOrderHandler, m.getOrderHandler, m.listProductsHandler, m.products, m.logger)
}
