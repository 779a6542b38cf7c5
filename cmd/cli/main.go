package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/gallerykeeper/internal/buildinfo"
	"github.com/dmitrijs2005/gallerykeeper/internal/client/cli"
	"github.com/dmitrijs2005/gallerykeeper/internal/client/config"
	"github.com/dmitrijs2005/gallerykeeper/internal/logging"
)

func main() {
	buildinfo.PrintBuildData(os.Stdout)

	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	log, err := logging.New(cfg.LogFormat, os.Stderr, cfg.Debug)
	if err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	if z, ok := log.(*logging.ZapLogger); ok {
		defer func() { _ = z.Sync() }()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := cli.NewApp(ctx, cfg, log)
	if err != nil {
		return err
	}

	app.Run(ctx)
	return nil
}
