// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/chefassist/marketrun/internal/aisle"
	"github.com/chefassist/marketrun/internal/api"
	"github.com/chefassist/marketrun/internal/listservice"
	"github.com/chefassist/marketrun/internal/liststore"
	"github.com/chefassist/marketrun/internal/mcpserver"
	"github.com/chefassist/marketrun/internal/sse"
)

// Run starts the HTTP server with the given options.
func Run(ctx context.Context, opts ...Option) error {
	app := &application{}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return fmt.Errorf("config is required")
	}

	cfg := app.config

	// Initialize structured JSON logger.
	logger := app.logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: cfg.App.LogLevel,
		}))
	}
	slog.SetDefault(logger)

	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("sqlite_path", cfg.SQLite.Path),
		slog.String("auth_mode", cfg.Auth.Mode),
		slog.String("log_level", cfg.App.LogLevel.String()))

	// Initialize list store.
	db, err := liststore.Open(cfg.SQLite.Path)
	if err != nil {
		return fmt.Errorf("init list store: %w", err)
	}
	defer db.Close()

	// Aisle classifier: built-in table, optionally replaced from file.
	classifier := aisle.NewDefault()
	if cfg.Aisles.Path != "" {
		if err := classifier.LoadFile(cfg.Aisles.Path); err != nil {
			logger.Warn("aisle rules load failed, keeping built-in table",
				slog.String("path", cfg.Aisles.Path),
				slog.String("error", err.Error()))
		}
	}

	// SSE broker.
	broker := sse.NewBroker()
	defer broker.Close()

	// Build list service and router.
	svc := listservice.New(db, classifier, func(userID, kind string) {
		broker.Publish(userID, sse.Event{Type: kind, Data: map[string]string{}})
	})
	apiRouter := api.NewRouter(svc, cfg.Auth.AuthEnabled(), cfg.Auth.Secret, broker)

	// Build chi router.
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Health check endpoints (unauthenticated).
	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/health/ready", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Mount API routes under /api.
	r.Mount("/api", apiRouter)

	httpServer := &http.Server{
		Addr:    cfg.App.HTTP.Address(),
		Handler: r,
	}

	logger.Info("Server starting...", slog.String("http_address", cfg.App.HTTP.Address()))

	g, gCtx := errgroup.WithContext(ctx)

	// Hot-reload the aisle rules file when configured.
	if cfg.Aisles.Path != "" {
		g.Go(func() error {
			if err := aisle.Watch(gCtx, classifier, cfg.Aisles.Path, logger); err != nil {
				logger.Warn("aisle watcher unavailable", slog.String("error", err.Error()))
			}
			return nil
		})
	}

	// Start HTTP server.
	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	// Handle shutdown signals.
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}

		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}

// RunMCP serves the grocery list tools over MCP stdio, backed by the same
// list store as the HTTP server. Logs go to stderr because the stdio
// transport owns stdout.
func RunMCP(_ context.Context, opts ...Option) error {
	app := &application{}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return fmt.Errorf("config is required")
	}

	cfg := app.config

	logger := app.logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level: cfg.App.LogLevel,
		}))
	}
	slog.SetDefault(logger)

	db, err := liststore.Open(cfg.SQLite.Path)
	if err != nil {
		return fmt.Errorf("init list store: %w", err)
	}
	defer db.Close()

	classifier := aisle.NewDefault()
	if cfg.Aisles.Path != "" {
		if err := classifier.LoadFile(cfg.Aisles.Path); err != nil {
			logger.Warn("aisle rules load failed, keeping built-in table",
				slog.String("error", err.Error()))
		}
	}

	svc := listservice.New(db, classifier, nil)

	logger.Info("MCP server starting on stdio")
	return mcpserver.New(svc).ServeStdio()
}
