// Package storefront wires the storefront core into one application
// context: the event bus, the three models, the views and the orchestrator.
// There are no package-level singletons; everything hangs off App.
package storefront

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/a-h/templ"

	"github.com/0wem/weblarek/internal/platform/eventbus"
	buyerdomain "github.com/0wem/weblarek/modules/buyer/domain"
	cartdomain "github.com/0wem/weblarek/modules/cart/domain"
	catalogdomain "github.com/0wem/weblarek/modules/catalog/domain"
	"github.com/0wem/weblarek/modules/catalog/seed"
	"github.com/0wem/weblarek/modules/shared/events"
	"github.com/0wem/weblarek/modules/storefront/orchestrator"
	"github.com/0wem/weblarek/modules/storefront/view"
)

var ErrNoCommunicator = errors.New("storefront: communicator is required")

// Config holds the application configuration.
type Config struct {
	Communicator orchestrator.Communicator
	// CDN is the origin product image paths are resolved against.
	CDN      string
	Fallback orchestrator.FallbackFunc
	Logger   *slog.Logger
	// MaxDepth bounds nested event publishing; zero keeps the bus default.
	MaxDepth int
}

// App is a storefront session. Every interaction must go through Do so the
// core sees one event at a time.
type App struct {
	mu sync.Mutex

	Bus          *eventbus.InMemoryEventBus
	Catalog      *catalogdomain.Catalog
	Cart         *cartdomain.Cart
	Buyer        *buyerdomain.Buyer
	Views        orchestrator.Views
	Orchestrator *orchestrator.Orchestrator

	diagnostics events.Subscription
	logger      *slog.Logger
}

// New builds and starts a session. The catalog is empty until Load.
func New(cfg Config) (*App, error) {
	if cfg.Communicator == nil {
		return nil, ErrNoCommunicator
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("module", "storefront")
	fallback := cfg.Fallback
	if fallback == nil {
		fallback = seed.Products
	}

	var opts []eventbus.Option
	if cfg.MaxDepth > 0 {
		opts = append(opts, eventbus.WithMaxDepth(cfg.MaxDepth))
	}
	bus := eventbus.New(logger, opts...)

	orderForm, err := view.NewOrderForm(bus)
	if err != nil {
		return nil, err
	}
	contactsForm, err := view.NewContactsForm(bus)
	if err != nil {
		return nil, err
	}

	header := view.NewHeader(bus)
	gallery := view.NewGallery()
	modal := view.NewModal(bus)
	views := orchestrator.Views{
		Page:         view.NewPage(header, gallery, modal),
		Header:       header,
		Gallery:      gallery,
		Modal:        modal,
		OrderForm:    orderForm,
		ContactsForm: contactsForm,
		Success:      view.NewSuccess(bus),
	}

	app := &App{
		Bus:     bus,
		Catalog: catalogdomain.NewCatalog(bus),
		Cart:    cartdomain.NewCart(bus),
		Buyer:   buyerdomain.NewBuyer(bus),
		Views:   views,
		logger:  logger,
	}
	app.Orchestrator = orchestrator.New(bus, app.Catalog, app.Cart, app.Buyer, cfg.Communicator, views,
		orchestrator.WithCDN(cfg.CDN),
		orchestrator.WithFallback(fallback),
		orchestrator.WithLogger(logger),
	)
	if err := app.Orchestrator.Start(); err != nil {
		return nil, err
	}
	app.diagnostics = eventbus.LogEvents(bus, logger)

	return app, nil
}

// Do runs fn with exclusive access to the session.
func (a *App) Do(fn func() error) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return fn()
}

// Load fetches the catalog, falling back to the static list.
func (a *App) Load(ctx context.Context) error {
	return a.Do(func() error {
		if err := a.Orchestrator.Load(ctx); err != nil {
			return fmt.Errorf("loading catalog: %w", err)
		}
		a.logger.Info("catalog loaded", slog.Int("products", len(a.Catalog.Products())))
		return nil
	})
}

// Page is the whole page as a component. Rendering takes the session lock.
func (a *App) Page() templ.Component {
	return templ.ComponentFunc(a.Render)
}

// Render writes the whole page.
func (a *App) Render(ctx context.Context, w io.Writer) error {
	return a.Do(func() error {
		return a.Views.Page.Render(ctx, w)
	})
}

// Close releases every subscription held by the session.
func (a *App) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.Orchestrator.Stop()
	a.Views.OrderForm.Dispose()
	a.Views.ContactsForm.Dispose()
	if a.diagnostics != nil {
		a.diagnostics.Unsubscribe()
	}
}
