// Package main starts the storefront process.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	storefrontcmd "github.com/0wem/weblarek/internal/cmd/storefront"
	"github.com/0wem/weblarek/internal/platform/config"
)

func main() {
	cfg, err := storefrontcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("parse config: %v", err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := storefrontcmd.Run(ctx, cfg); err != nil {
		config.Exitf("storefront: %v", err)
	}
}
