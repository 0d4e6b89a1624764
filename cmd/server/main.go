package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"choreboard/internal/config"
	"choreboard/internal/server"
	"choreboard/internal/storage"
	"choreboard/internal/storage/memory"
	"choreboard/internal/storage/postgres"
	"choreboard/internal/storage/sqlite"
	"choreboard/pkg/logging"
)

func main() {
	loadLocalEnv()
	logging.Setup()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	store, err := openStore(ctx, cfg)
	if err != nil {
		slog.Error("init storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("storage initialized", "backend", cfg.StoreBackend)

	srv := server.New(cfg, store)

	go func() {
		slog.Info("choreboard listening", "addr", cfg.HTTPAddress())
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			slog.Error("http server error", "error", err)
			os.Exit(1)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		slog.Error("graceful shutdown error", "error", err)
	}
}

// openStore picks the persistence backend from config. The default
// in-memory backend matches the original behavior: a restart loses all
// users and chores.
func openStore(ctx context.Context, cfg config.Config) (storage.Store, error) {
	switch cfg.StoreBackend {
	case config.BackendSQLite:
		return sqlite.New(cfg.SQLitePath)
	case config.BackendPostgres:
		return postgres.New(ctx, cfg.DatabaseURL)
	default:
		return memory.New(), nil
	}
}

func loadLocalEnv() {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found; relying on existing environment")
	}
}
