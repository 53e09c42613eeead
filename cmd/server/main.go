package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/aarushi-rai/currency-exchange-be/internal/config"
	"github.com/aarushi-rai/currency-exchange-be/internal/logging"
	"github.com/aarushi-rai/currency-exchange-be/internal/rates"
	"github.com/aarushi-rai/currency-exchange-be/internal/server"
	"github.com/aarushi-rai/currency-exchange-be/internal/storage/postgres"
)

func main() {
	loadLocalEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := logging.New(cfg.LogLevel)

	ctx := context.Background()
	store, err := postgres.NewStore(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("init database: %v", err)
	}
	defer store.Close()

	source := rates.NewClient(cfg.RatesAPIURL, cfg.RatesAPIKey, cfg.RatesTimeout, logger)

	srv := server.New(cfg, logger, server.Stores{
		Users:    store,
		Sessions: store,
		History:  store,
	}, source)

	go func() {
		logger.Info("currency exchange backend listening", "addr", cfg.HTTPAddress())
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http server error: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Error("graceful shutdown", "error", err)
	}
}

func loadLocalEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found; relying on existing environment")
	}
}
