package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/GustavoCaso/finbot/internal/cli/web"
	"github.com/GustavoCaso/finbot/internal/config"
	"github.com/GustavoCaso/finbot/internal/logger"
	"github.com/GustavoCaso/finbot/internal/store"
)

func main() {
	configPath := os.Getenv("FINBOT_CONFIG")
	if configPath == "" {
		configPath = "finbot.yml"
	}

	conf, err := config.Parse(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to parse the configuration. %s", err.Error())
		os.Exit(1)
	}

	appLogger := logger.New(conf.Logger)

	appLogger.Info("Using storage", "backend", string(conf.Storage.Backend))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	s, err := store.OpenFromConfig(ctx, conf, appLogger)
	if err != nil {
		appLogger.Fatal("Unable to open the ledger", "error", err.Error())
	}

	err = web.Run(ctx, conf, s, appLogger)
	if err != nil {
		appLogger.Error("failed to run the finbot web service", "error", err)
	}

	if closeErr := s.Close(); closeErr != nil {
		appLogger.Error("Error closing storage", "error", closeErr)
		os.Exit(1)
	}

	if err != nil {
		os.Exit(1)
	}
}
