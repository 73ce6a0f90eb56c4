package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"bookrate/internal/config"
	"bookrate/internal/core"
	"bookrate/internal/logging"
	"bookrate/internal/store"
	"bookrate/internal/web"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	// Load and validate configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured logging based on config
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"addr", cfg.Server.Addr(),
		"users_path", cfg.Data.UsersPath,
		"ratings_path", cfg.Data.RatingsPath,
		"books_path", cfg.Data.BooksPath,
		"sample_size", cfg.Data.SampleSize,
	)

	st := store.New(cfg.Data.UsersPath, cfg.Data.RatingsPath, cfg.Data.BooksPath)
	service := core.NewService(st)

	// Fail fast when the datasets are unreadable rather than on the
	// first request.
	stats, err := service.Stats(context.Background())
	if err != nil {
		slog.Error("datasets unavailable", "error", err)
		os.Exit(1)
	}
	slog.Info("datasets loaded",
		"users", stats.Users,
		"ratings", stats.Ratings,
		"books", stats.Books,
	)

	server, err := web.NewServer(service, cfg)
	if err != nil {
		slog.Error("failed to create server", "error", err)
		os.Exit(1)
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	slog.Info("server starting", "addr", cfg.Server.Addr())
	if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
