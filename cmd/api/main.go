// cmd/api/main.go
// Main entry point for the match service
// This file bootstraps all components and starts the server

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/imadgeboyega/kiekky-match/internal/auth"
	"github.com/imadgeboyega/kiekky-match/internal/common/clock"
	"github.com/imadgeboyega/kiekky-match/internal/common/database"
	"github.com/imadgeboyega/kiekky-match/internal/common/logging"
	"github.com/imadgeboyega/kiekky-match/internal/common/utils"
	"github.com/imadgeboyega/kiekky-match/internal/config"
	"github.com/imadgeboyega/kiekky-match/internal/dating"
	"github.com/imadgeboyega/kiekky-match/internal/presets"
)

var startTime = time.Now()

func main() {
	// 1. Load environment variables
	envErr := godotenv.Load()

	// 2. Load configuration
	cfg := config.Load()

	logger := logging.New(cfg.LogLevel, cfg.Environment)
	defer logger.Sync()

	logger.Info("starting kiekky match service", "environment", cfg.Environment)
	if envErr != nil {
		logger.Warn("no .env file found, using environment variables", "error", envErr)
	}

	// 3. Validate configuration
	if err := cfg.Validate(); err != nil {
		logger.Error("configuration validation failed", "error", err)
		os.Exit(1)
	}

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
	logger.Info("server exited gracefully")
}

func run(cfg *config.Config, logger *logging.Logger) error {
	ctx := context.Background()
	clk := clock.Real()

	// 4. Candidate source
	provider, closeProvider, err := buildProvider(ctx, cfg, clk, logger)
	if err != nil {
		return err
	}
	defer closeProvider()

	// 5. Preset store
	store, closeStore, err := buildPresetStore(ctx, cfg, clk, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	// 6. Match engine
	engine, err := dating.NewService(provider, cfg.Matching(), logger)
	if err != nil {
		return fmt.Errorf("failed to build match engine: %w", err)
	}

	// 7. Router
	authMiddleware := auth.NewMiddleware(cfg.JWTSecret, logger)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(loggingMiddleware(logger))
	router.Use(middleware.Timeout(cfg.RequestTimeout))

	router.Get("/health", healthCheck)
	router.Handle("/metrics", promhttp.Handler())

	dating.RegisterRoutes(router, dating.NewHandler(engine, logger), authMiddleware)
	presets.RegisterRoutes(router, presets.NewHandler(store, logger), authMiddleware)

	// 8. Create and start HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return fmt.Errorf("failed to start server: %w", err)
	case sig := <-quit:
		logger.Info("shutdown signal received", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return nil
}

func buildProvider(ctx context.Context, cfg *config.Config, clk clock.Clock, logger *logging.Logger) (dating.CandidateProvider, func(), error) {
	if cfg.CandidateSource == "seed" {
		pool, err := dating.LoadSeedFile(cfg.SeedFile)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("using seed candidate pool", "file", cfg.SeedFile)
		return pool, func() {}, nil
	}

	db, err := database.NewPostgresDBFromURL(ctx, cfg.DatabaseURL, database.DefaultPoolConfig)
	if err != nil {
		return nil, nil, err
	}
	if err := runMigrations(ctx, db, logger); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	logger.Info("connected to PostgreSQL")

	return dating.NewPostgresProvider(db, clk, cfg.MaxCandidates), func() { db.Close() }, nil
}

func buildPresetStore(ctx context.Context, cfg *config.Config, clk clock.Clock, logger *logging.Logger) (presets.Store, func(), error) {
	if cfg.PresetStore == "memory" {
		logger.Info("using in-memory preset store")
		return presets.NewMemoryStore(clk), func() {}, nil
	}

	client, err := database.NewRedisClientFromURL(ctx, cfg.RedisURL)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("connected to Redis")

	return presets.NewRedisStore(client, clk), func() { client.Close() }, nil
}

// healthCheck returns server health status
func healthCheck(w http.ResponseWriter, r *http.Request) {
	utils.SuccessResponse(w, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"uptime":    time.Since(startTime).String(),
	}, http.StatusOK)
}

// loggingMiddleware logs all requests
func loggingMiddleware(logger *logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(wrapped, r)

			logger.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", wrapped.Status(),
				"duration", time.Since(start).String(),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}
