package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwillems/portfolio-tracker/internal/api"
	"github.com/bwillems/portfolio-tracker/internal/config"
	"github.com/bwillems/portfolio-tracker/internal/database"
	"github.com/bwillems/portfolio-tracker/internal/repository"
	"github.com/bwillems/portfolio-tracker/internal/scheduler"
	"github.com/bwillems/portfolio-tracker/internal/service"
	"github.com/bwillems/portfolio-tracker/internal/yahoo"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Open database connection
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	log.Printf("Connected to database: %s", cfg.Database.Path)

	// Create repositories and services
	priceRepo := repository.NewPriceRepository(db)
	yahooClient := yahoo.NewFinanceClient()

	systemService := service.NewSystemService(db)
	positionService := service.NewPositionService()
	syncService := service.NewSyncService(yahooClient, priceRepo)

	// Load the positions document, if configured
	if cfg.Positions.File != "" {
		count, err := positionService.LoadFromFile(cfg.Positions.File)
		if err != nil {
			log.Fatalf("Failed to load positions from %s: %v", cfg.Positions.File, err)
		}
		log.Printf("Loaded %d positions from %s", count, cfg.Positions.File)
	}

	// Start the background jobs
	jobs := scheduler.New(positionService, syncService)
	if cfg.Scheduler.Enabled {
		if err := jobs.Start(cfg.Scheduler); err != nil {
			log.Fatalf("Failed to start scheduler: %v", err)
		}
		defer jobs.Stop()
	}

	// Create router
	router := api.NewRouter(systemService, positionService, syncService, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
