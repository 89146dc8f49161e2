package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/hoaxify/hoaxify-cli/internal/client/cli"
	"github.com/hoaxify/hoaxify-cli/internal/client/config"
	"github.com/hoaxify/hoaxify-cli/internal/logging"
)

func main() {
	cfg := config.LoadConfig()
	logger := logging.NewDefault(os.Stderr, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(ctx)
}
