// DevTrack - Activity Intelligence Server
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ashureev/devtrack/internal/api"
	"github.com/ashureev/devtrack/internal/classify"
	"github.com/ashureev/devtrack/internal/config"
	"github.com/ashureev/devtrack/internal/middleware"
	"github.com/ashureev/devtrack/internal/store"
	"github.com/ashureev/devtrack/internal/tracker"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("Starting server", "port", cfg.Port, "db_path", cfg.DBPath)

	// Initialize dependencies.
	repo, err := store.NewSQLite(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer func() {
		if closeErr := repo.Close(); closeErr != nil {
			slog.Error("Failed to close repository", "error", closeErr)
		}
	}()

	if err := repo.Ping(context.Background()); err != nil {
		slog.Error("Database health check failed", "error", err)
		os.Exit(1)
	}

	// Bootstrap the schema once, before the server accepts traffic.
	if err := repo.Migrate(context.Background()); err != nil {
		slog.Error("Failed to migrate database", "error", err)
		os.Exit(1)
	}
	slog.Info("Database ready")

	// The rule table is loaded once and injected; it is never reloaded at
	// runtime.
	rules := classify.DefaultRules()
	if cfg.RulesPath != "" {
		rules, err = classify.LoadRules(cfg.RulesPath)
		if err != nil {
			slog.Error("Failed to load category rules", "error", err, "path", cfg.RulesPath)
			os.Exit(1)
		}
		slog.Info("Loaded category rules", "path", cfg.RulesPath, "rules", len(rules))
	}
	classifier := classify.New(rules)

	// Initialize services.
	svc := tracker.NewService(repo, classifier)
	agg := tracker.NewAggregator(repo)

	// Initialize handlers.
	baseHandler := api.NewHandler(svc, agg)
	activityHandler := api.NewActivityHandler(baseHandler)
	healthHandler := api.NewHealthHandler(repo)

	// Setup router.
	r := chi.NewRouter()

	// Global middleware.
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	// Routes.
	healthHandler.RegisterHealth(r)
	activityHandler.RegisterRoutes(r)
	r.Handle("/metrics", promhttp.Handler())

	// Create server.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start server.
	go func() {
		slog.Info("Server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal.
	<-ctx.Done()
	stop()

	slog.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server stopped successfully")
}
