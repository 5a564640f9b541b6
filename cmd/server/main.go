package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"lexipedia/internal/config"
	"lexipedia/internal/db"
	"lexipedia/internal/email"
	"lexipedia/internal/jobs"
	"lexipedia/internal/metrics"
	"lexipedia/internal/models"
	"lexipedia/internal/review"
	"lexipedia/internal/server"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := config.Load()

	yamlCfg, err := config.LoadYAMLConfig()
	if err != nil {
		log.Fatalf("Failed to load config file: %v", err)
	}
	yamlCfg.Apply(cfg)

	// Initialize database
	database, err := db.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	// Run migrations
	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Migrations completed successfully")

	// Seed any extra parts of speech from the config file
	if yamlCfg != nil && len(yamlCfg.PartsOfSpeech) > 0 {
		parts := make([]models.PartOfSpeech, 0, len(yamlCfg.PartsOfSpeech))
		for _, p := range yamlCfg.PartsOfSpeech {
			parts = append(parts, models.PartOfSpeech{Name: p.Name, Description: p.Description})
		}
		if err := database.SeedPartsOfSpeech(ctx, parts); err != nil {
			log.Fatalf("Failed to seed parts of speech: %v", err)
		}
	}

	// Metrics
	metrics.Init(database)

	// Email notifications and the review engine
	notifier := email.NewNotifier(cfg, database)
	engine := review.NewEngine(database, notifier)

	// Background ledger reconciler
	reconciler := jobs.NewStatsReconciler(database, cfg.StatsReconcileInterval, cfg.StatsMaxAge)
	go reconciler.Start(ctx)

	// HTTP server
	srv := server.New(cfg)
	if err := srv.RegisterRoutes(ctx, database, engine, notifier); err != nil {
		log.Fatalf("Failed to register routes: %v", err)
	}

	go func() {
		if err := srv.Start(); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	cancel()
	if err := srv.Shutdown(); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited")
}
