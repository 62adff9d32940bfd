package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/hongminglow/task-tracker/internal/config"
	"github.com/hongminglow/task-tracker/internal/server"
	"github.com/hongminglow/task-tracker/internal/storage"
	"github.com/hongminglow/task-tracker/internal/storage/memory"
	"github.com/hongminglow/task-tracker/internal/storage/postgres"
)

func main() {
	loadLocalEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx := context.Background()
	store, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatalf("init storage: %v", err)
	}
	defer store.Close()

	srv := server.New(cfg, store)

	go func() {
		log.Printf("task tracker listening on %s (storage=%s)", cfg.HTTPAddress(), cfg.StorageDriver)
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server error: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		log.Printf("graceful shutdown error: %v", err)
	}
}

func openStore(ctx context.Context, cfg config.Config) (storage.Store, error) {
	if cfg.StorageDriver == config.DriverMemory {
		log.Println("using in-memory storage; data is lost on restart")
		return memory.New(), nil
	}
	store, err := postgres.NewStore(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	return store, nil
}

func loadLocalEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found; relying on existing environment")
	}
}
