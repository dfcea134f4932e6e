// Package storefront parses storefront configuration and hosts a session
// over HTTP.
package storefront

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/0wem/weblarek/internal/platform/cmd"
	"github.com/0wem/weblarek/internal/platform/httpserver"
	"github.com/0wem/weblarek/internal/platform/logging"
	"github.com/0wem/weblarek/internal/platform/telemetry"
	"github.com/0wem/weblarek/modules/communication"
	"github.com/0wem/weblarek/modules/storefront"
	storefronthttp "github.com/0wem/weblarek/modules/storefront/infrastructure/http"
)

// Config holds storefront command configuration.
type Config struct {
	APIOrigin      string            `env:"WEBLAREK_API_ORIGIN" envDefault:"http://localhost:8081"`
	CDN            string            `env:"WEBLAREK_CDN_URL"`
	HTTP           httpserver.Config `envPrefix:"WEBLAREK_HTTP_"`
	LogLevel       slog.Level        `env:"WEBLAREK_LOG_LEVEL" envDefault:"info"`
	RequestTimeout time.Duration     `env:"WEBLAREK_REQUEST_TIMEOUT" envDefault:"10s"`
	Telemetry      telemetry.Config
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	cfg := Config{HTTP: httpserver.DefaultConfig()}
	if err := cmd.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.CDN == "" {
		cfg.CDN = cfg.APIOrigin
	}
	fs.IntVar(&cfg.HTTP.Port, "port", cfg.HTTP.Port, "The storefront HTTP port")
	fs.StringVar(&cfg.APIOrigin, "api", cfg.APIOrigin, "Product API origin")
	fs.StringVar(&cfg.CDN, "cdn", cfg.CDN, "Image CDN origin")
	if err := cmd.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run loads the catalog and serves the storefront until ctx is done.
func Run(ctx context.Context, cfg Config) error {
	logger := logging.New(os.Stdout, cfg.LogLevel)
	logger.Info("starting storefront", slog.String("api", cfg.APIOrigin))

	return cmd.RunWithTelemetry(ctx, cmd.ServiceStorefront, cfg.Telemetry, logger, func(ctx context.Context) error {
		app, handler, err := NewHandler(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer app.Close()
		return cmd.Serve(ctx, logger, httpserver.New(cfg.HTTP, handler, logger))
	})
}

// NewHandler builds a loaded session and its router.
func NewHandler(ctx context.Context, cfg Config, logger *slog.Logger) (*storefront.App, http.Handler, error) {
	client := communication.NewClient(cfg.APIOrigin,
		communication.WithLogger(logger),
		communication.WithTimeout(cfg.RequestTimeout),
	)
	app, err := storefront.New(storefront.Config{
		Communicator: client,
		CDN:          cfg.CDN,
		Logger:       logger,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("create storefront: %w", err)
	}
	if err := app.Load(ctx); err != nil {
		app.Close()
		return nil, nil, err
	}

	mux := http.NewServeMux()
	storefronthttp.RegisterRoutes(mux, app, logger)

	return app, httpserver.Middleware(mux,
		httpserver.Recovery(logger),
		httpserver.Tracing(cmd.ServiceStorefront),
		httpserver.Logging(logger),
	), nil
}
