// Package spanner backs the order store with Cloud Spanner. It opens the
// client, runs order placement in a read-write transaction and lets
// repositories find that transaction on the context.
package spanner

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/spanner"
)

var ErrIncompleteConfig = errors.New("spanner: incomplete database path")

// Config names the order database.
type Config struct {
	ProjectID  string `env:"SPANNER_PROJECT_ID" envDefault:"local-project"`
	InstanceID string `env:"SPANNER_INSTANCE_ID" envDefault:"local-instance"`
	DatabaseID string `env:"SPANNER_DATABASE_ID" envDefault:"larek-db"`
}

// Database is the fully qualified database name.
func (c Config) Database() string {
	return "projects/" + c.ProjectID + "/instances/" + c.InstanceID + "/databases/" + c.DatabaseID
}

func (c Config) validate() error {
	if c.ProjectID == "" || c.InstanceID == "" || c.DatabaseID == "" {
		return fmt.Errorf("%w: %q", ErrIncompleteConfig, c.Database())
	}
	return nil
}

// Open connects to the order database. SPANNER_EMULATOR_HOST is honoured
// by the client library. Close the client on shutdown.
func Open(ctx context.Context, cfg Config) (*spanner.Client, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	client, err := spanner.NewClient(ctx, cfg.Database())
	if err != nil {
		return nil, fmt.Errorf("open spanner %s: %w", cfg.Database(), err)
	}
	return client, nil
}
