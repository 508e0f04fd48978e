package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/luis122448/catalog-music-service/internal/catalog"
	"github.com/luis122448/catalog-music-service/internal/config"
	"github.com/luis122448/catalog-music-service/internal/handlers"
	"github.com/luis122448/catalog-music-service/internal/logger"
	"github.com/luis122448/catalog-music-service/internal/metadata"
	"github.com/luis122448/catalog-music-service/internal/objectstore"
	"github.com/luis122448/catalog-music-service/internal/scanner"
	"github.com/luis122448/catalog-music-service/internal/store"
)

func main() {
	cfg := config.Load()

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	// Initialize Logger
	appLogger := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})

	// Initialize DB
	db, err := store.NewSQLiteDB(cfg.DBPath)
	if err != nil {
		appLogger.Error("Failed to init DB", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Initialize Object Store Gateway
	objects, err := objectstore.New(cfg, appLogger)
	if err != nil {
		appLogger.Error("Failed to init object store", "error", err)
		os.Exit(1)
	}

	// Initialize Ingestion Pipeline
	extractor := metadata.NewExtractor(appLogger)
	resolver := catalog.NewResolver(db, appLogger)
	sc := scanner.New(objects, db, extractor, resolver, appLogger)

	if cfg.ScanOnStartup {
		sc.TriggerScan()
	}

	// Initialize Router
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Routes
	h := handlers.NewHandler(db, sc, objects, appLogger)
	h.RegisterRoutes(r)

	// Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		log.Printf("Server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}
