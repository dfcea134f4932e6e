// Package cmd holds the startup plumbing shared by the service commands.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/0wem/weblarek/internal/platform/config"
	"github.com/0wem/weblarek/internal/platform/httpserver"
	"github.com/0wem/weblarek/internal/platform/telemetry"
)

const defaultOTelShutdownTimeout = 5 * time.Second

// Service identifiers used for telemetry and logs.
const (
	ServiceLarekAPI   = "larekapi"
	ServiceStorefront = "storefront"
)

// ParseConfig loads environment defaults into cfg.
func ParseConfig[T any](cfg *T) error {
	if cfg == nil {
		return errors.New("config target is required")
	}
	return config.ParseEnv(cfg)
}

// ParseArgs parses command-line flags.
func ParseArgs(fs *flag.FlagSet, args []string) error {
	if fs == nil {
		return errors.New("flag parser is required")
	}
	if args == nil {
		args = []string{}
	}
	return fs.Parse(args)
}

// RunWithTelemetry configures tracing and executes a service run loop.
func RunWithTelemetry(ctx context.Context, service string, cfg telemetry.Config, logger *slog.Logger, run func(context.Context) error) error {
	service = strings.TrimSpace(service)
	if service == "" {
		return fmt.Errorf("service name is required")
	}
	if run == nil {
		return fmt.Errorf("run function is required")
	}

	shutdown, err := telemetry.Setup(ctx, service, cfg)
	if err != nil {
		return fmt.Errorf("setup telemetry: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), defaultOTelShutdownTimeout)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown failed", slog.String("service", service), slog.Any("error", err))
		}
	}()

	return run(ctx)
}

// Serve runs every server until ctx is cancelled or one of them fails,
// then waits for all of them to drain.
func Serve(ctx context.Context, logger *slog.Logger, servers ...*httpserver.Server) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, srv := range servers {
		g.Go(func() error {
			if err := srv.Run(gctx); err != nil {
				return fmt.Errorf("serve %s: %w", srv.Addr(), err)
			}
			return nil
		})
	}
	err := g.Wait()
	logger.Info("servers stopped")
	return err
}
