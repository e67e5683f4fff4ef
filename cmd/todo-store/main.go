// Package main provides the entry point for the to-do store server.
package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/sipico/todo-store/internal/api"
	"github.com/sipico/todo-store/internal/config"
	"github.com/sipico/todo-store/internal/metrics"
	"github.com/sipico/todo-store/internal/store"
)

const version = "0.1.0"

func main() {
	if err := run(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logLevel := new(slog.LevelVar)
	logLevel.Set(parseLogLevel(cfg.LogLevel))
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	if err := metrics.Init(prometheus.DefaultRegisterer, version); err != nil {
		return fmt.Errorf("failed to initialize metrics: %w", err)
	}

	s, err := store.New(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer func() { _ = s.Close() }()

	handler := api.NewHandler(s, logLevel, logger)
	router := handler.NewRouter()

	// Metrics on a separate listener so it is never exposed alongside the API
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler())
		logger.Info("metrics server listening", "addr", cfg.MetricsListenAddr)
		if err := http.ListenAndServe(cfg.MetricsListenAddr, mux); err != nil {
			logger.Error("metrics server failed", "error", err)
		}
	}()

	logger.Info("todo-store starting",
		"version", version,
		"addr", cfg.ListenAddr,
		"database", cfg.DatabasePath,
	)
	return http.ListenAndServe(cfg.ListenAddr, router)
}

// parseLogLevel maps the configured level to its slog value.
// Config validation already rejected unknown values.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
