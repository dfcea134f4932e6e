// Package main starts the order API process.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	larekapicmd "github.com/0wem/weblarek/internal/cmd/larekapi"
	"github.com/0wem/weblarek/internal/platform/config"
)

func main() {
	cfg, err := larekapicmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("parse config: %v", err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := larekapicmd.Run(ctx, cfg); err != nil {
		config.Exitf("order API: %v", err)
	}
}
