package main

import (
	"log"
	"log/slog"
	"net/http"
	"net/url"

	"Encore/config"
	"Encore/database"
	"Encore/handlers"
	"Encore/logger"
	"Encore/services"
	"Encore/store"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.Environment, cfg.Debug)

	slog.Info("Initializing Encore components...")

	services.InitSessionStore(cfg)

	st, err := openStore(cfg)
	if err != nil {
		log.Fatal("Failed to open store: ", err)
	}

	performerService := services.NewPerformerService(st)
	earningsService := services.NewEarningsService(st)
	settingsService := services.NewSettingsService(st)
	queueService := services.NewQueueService(st, earningsService)

	if err := performerService.EnsureAdmin(cfg); err != nil {
		log.Fatal("Failed to seed admin performer: ", err)
	}

	router := handlers.NewRouter(queueService, settingsService, earningsService, performerService)

	addr := ":" + cfg.ServerPort
	slog.Info("Encore is starting",
		"addr", addr,
		"environment", cfg.Environment,
		"debug", cfg.Debug)

	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatalf("FATAL: Server failed to start: %v", err)
	}
}

// openStore picks the backend from the DATABASE_URL scheme: postgres for a
// postgres URL, in-memory for anything else.
func openStore(cfg *config.Config) (store.Store, error) {
	u, err := url.Parse(cfg.DatabaseURL)
	if err == nil && (u.Scheme == "postgres" || u.Scheme == "postgresql") {
		if err := database.Connect(cfg.DatabaseURL); err != nil {
			return nil, err
		}
		if err := database.RunMigrations(); err != nil {
			return nil, err
		}
		slog.Info("Using Postgres store")
		return store.NewPostgresStore(database.DB), nil
	}

	slog.Info("Using in-memory store", "database_url", cfg.DatabaseURL)
	return store.NewMemoryStore(), nil
}
