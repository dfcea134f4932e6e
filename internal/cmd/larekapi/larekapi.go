// Package larekapi parses order API configuration and runs the service.
package larekapi

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/0wem/weblarek/internal/platform/cmd"
	"github.com/0wem/weblarek/internal/platform/eventbus"
	"github.com/0wem/weblarek/internal/platform/httpserver"
	"github.com/0wem/weblarek/internal/platform/logging"
	platformspanner "github.com/0wem/weblarek/internal/platform/spanner"
	"github.com/0wem/weblarek/internal/platform/sqlite"
	"github.com/0wem/weblarek/internal/platform/telemetry"
	"github.com/0wem/weblarek/modules/catalog/seed"
	"github.com/0wem/weblarek/modules/notifications"
	"github.com/0wem/weblarek/modules/orders"
	"github.com/0wem/weblarek/modules/orders/domain"
	"github.com/0wem/weblarek/modules/orders/infrastructure/persistence"
	"github.com/0wem/weblarek/modules/orders/infrastructure/persistence/migrations"
	"github.com/0wem/weblarek/modules/shared/transaction"
)

// Order store backends.
const (
	StoreMemory  = "memory"
	StoreSQLite  = "sqlite"
	StoreSpanner = "spanner"
)

var ErrUnknownStore = errors.New("unknown order store")

// Config holds order API command configuration.
type Config struct {
	HTTP       httpserver.Config `envPrefix:"LAREKAPI_HTTP_"`
	LogLevel   slog.Level        `env:"LAREKAPI_LOG_LEVEL" envDefault:"info"`
	Store      string            `env:"LAREKAPI_STORE" envDefault:"memory"`
	SQLitePath string            `env:"LAREKAPI_SQLITE_PATH" envDefault:"larekapi.db"`
	Spanner    platformspanner.Config
	Telemetry  telemetry.Config
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	cfg := Config{HTTP: httpserver.DefaultConfig()}
	cfg.HTTP.Port = 8081
	if err := cmd.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.IntVar(&cfg.HTTP.Port, "port", cfg.HTTP.Port, "The order API HTTP port")
	fs.StringVar(&cfg.Store, "store", cfg.Store, "Order store: memory, sqlite or spanner")
	fs.StringVar(&cfg.SQLitePath, "sqlite-path", cfg.SQLitePath, "SQLite database file")
	if err := cmd.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the order API.
func Run(ctx context.Context, cfg Config) error {
	logger := logging.New(os.Stdout, cfg.LogLevel)
	logger.Info("starting order API", slog.String("store", cfg.Store))

	return cmd.RunWithTelemetry(ctx, cmd.ServiceLarekAPI, cfg.Telemetry, logger, func(ctx context.Context) error {
		st, err := OpenStore(ctx, cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		handler, err := NewHandler(st, logger)
		if err != nil {
			return err
		}
		return cmd.Serve(ctx, logger, httpserver.New(cfg.HTTP, handler, logger))
	})
}

// Store bundles an order repository with its transaction scope.
type Store struct {
	Orders  domain.OrderRepository
	TxScope transaction.Scope
	close   func()
}

func (s *Store) Close() {
	if s.close != nil {
		s.close()
	}
}

// OpenStore opens the backend named by cfg.Store.
func OpenStore(ctx context.Context, cfg Config) (*Store, error) {
	switch cfg.Store {
	case StoreMemory, "":
		return &Store{Orders: persistence.NewInMemoryRepository(), TxScope: transaction.None}, nil
	case StoreSQLite:
		db, err := sqlite.Open(cfg.SQLitePath, migrations.FS)
		if err != nil {
			return nil, err
		}
		return &Store{
			Orders:  persistence.NewSQLiteRepository(db),
			TxScope: sqlite.NewTransactionScope(db),
			close:   func() { closeDB(db) },
		}, nil
	case StoreSpanner:
		client, err := platformspanner.Open(ctx, cfg.Spanner)
		if err != nil {
			return nil, err
		}
		return &Store{
			Orders:  persistence.NewSpannerRepository(client),
			TxScope: platformspanner.NewOrderScope(client),
			close:   client.Close,
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStore, cfg.Store)
	}
}

func closeDB(db *sql.DB) {
	if err := db.Close(); err != nil {
		slog.Error("close sqlite db", slog.Any("error", err))
	}
}

// NewHandler builds the order API router with all module handlers.
func NewHandler(st *Store, logger *slog.Logger) (http.Handler, error) {
	products, err := seed.Products()
	if err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}

	// Event bus for inter-module communication
	eventBus := eventbus.New(logger)

	ordersModule := orders.New(orders.Config{
		Orders:          st.Orders,
		Products:        persistence.NewProductRepository(products),
		TxScope:         st.TxScope,
		HandlerRegistry: eventBus,
		Logger:          logger,
	})
	if _, err := notifications.New(notifications.Config{EventSubscriber: eventBus, Logger: logger}); err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	ordersModule.RegisterRoutes(mux)

	return httpserver.Middleware(mux,
		httpserver.Recovery(logger),
		httpserver.Tracing(cmd.ServiceLarekAPI),
		httpserver.Logging(logger),
	), nil
}
