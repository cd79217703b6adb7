package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"autosuggest/internal/config"
	"autosuggest/internal/db"
	"autosuggest/internal/feedback"
	"autosuggest/internal/jobs"
	"autosuggest/internal/logger"
	"autosuggest/internal/metrics"
	"autosuggest/internal/ranking"
	"autosuggest/internal/server"
	"autosuggest/internal/termstore"
)

// termStore is what the server needs from a backing store.
type termStore interface {
	ranking.Store
	feedback.Store
	metrics.TopTermSource
	jobs.Seeder
	Ping(ctx context.Context) error
}

func main() {
	ctx := context.Background()
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	if err := cfg.Validate(); err != nil {
		fatal("invalid configuration", "error", err)
	}

	seed, err := config.LoadSeedFile(cfg.SeedFile)
	if err != nil {
		fatal("failed to load seed file", "path", cfg.SeedFile, "error", err)
	}

	var store termStore
	if cfg.UseMemoryStore() {
		mem := termstore.NewMemory()
		n := mem.Seed(seed)
		log.Info("using in-memory term store", "terms", n)
		store = mem
	} else {
		database, err := db.New(ctx, cfg.DatabaseURL)
		if err != nil {
			fatal("failed to connect to database", "error", err)
		}
		defer database.Close()

		if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
			fatal("failed to run migrations", "error", err)
		}
		log.Info("migrations completed successfully")

		n, err := database.SeedTerms(ctx, seed)
		if err != nil {
			fatal("failed to seed terms", "error", err)
		}
		log.Info("seeded terms", "inserted", n, "in_file", seed.Len())
		store = database
	}

	metrics.Init(store)

	jobCtx, stopJobs := context.WithCancel(ctx)
	defer stopJobs()
	if cfg.SeedReloadInterval > 0 {
		go jobs.NewSeedReloader(store, cfg.SeedFile, cfg.SeedReloadInterval).Start(jobCtx)
	}

	srv := server.New(cfg)
	srv.RegisterRoutes(server.Deps{
		Engine:    ranking.NewEngine(store),
		Selection: feedback.NewService(store, log, metrics.ObserveSelection),
		Pinger:    store,
	})

	go func() {
		if err := srv.Start(); err != nil {
			log.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	stopJobs()
	if err := srv.Shutdown(); err != nil {
		log.Error("server forced to shutdown", "error", err)
	}
	log.Info("server exited")
}

func fatal(msg string, args ...any) {
	slog.Error(msg, args...)
	os.Exit(1)
}
