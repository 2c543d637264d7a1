package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Sourabh71/AI-Analyst/internal/analyzer"
	"github.com/Sourabh71/AI-Analyst/internal/config"
	"github.com/Sourabh71/AI-Analyst/internal/db"
	"github.com/Sourabh71/AI-Analyst/internal/metrics"
	"github.com/Sourabh71/AI-Analyst/internal/repository"
	"github.com/Sourabh71/AI-Analyst/internal/router"
	"github.com/Sourabh71/AI-Analyst/internal/services"
	"github.com/Sourabh71/AI-Analyst/internal/storage"
	"github.com/Sourabh71/AI-Analyst/internal/utils"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := utils.NewLogger(cfg.LogLevel)

	// Run migrations before opening the shared connection
	if err := db.RunMigrations(cfg.DatabasePath); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}

	database, err := db.NewSQLiteDB(cfg.DatabasePath)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	defer database.Close()

	store, err := storage.New(context.Background(), cfg)
	if err != nil {
		logger.Fatal("Failed to initialize storage", "error", err)
	}
	if cfg.S3Endpoint == "" {
		logger.Warn("S3_ENDPOINT not set, keeping uploaded documents in memory")
	}

	m := metrics.New()

	sessionService := services.NewService(services.Dependencies{
		Repo:    repository.NewRepository(database),
		Storage: store,
		Analyzer: analyzer.NewOpenRouterAnalyzer(analyzer.Options{
			Endpoint: cfg.LLMEndpoint,
			Model:    cfg.LLMModel,
			Timeout:  cfg.LLMTimeout,
		}, logger),
		Credentials: services.EnvCredentials{Var: cfg.APIKeyEnv},
		Metrics:     m,
		Logger:      logger,
		SessionTTL:  cfg.SessionTTL,
	})

	handler := router.NewRouter(sessionService, router.Options{
		MaxFileSize:    cfg.MaxFileSize,
		AllowedOrigins: cfg.CORSAllowedOrigins,
		Metrics:        m,
	}, logger)

	// The write timeout has to outlast a slow model call
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.LLMTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Starting server", "port", cfg.Port, "model", cfg.LLMModel)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", "error", err)
	}

	logger.Info("Server exited")
}
