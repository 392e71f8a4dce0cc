// Package cli consolidates the bootstrap steps shared by cmd/fintrackd,
// cmd/fintrack-worker and cmd/fintrack-import.
package cli

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"fintrack/internal/config"
	"fintrack/internal/store"
	"fintrack/internal/store/memory"
	"fintrack/internal/storage"
)

// SetupLogger initializes structured logging and sets it as the process
// default.
func SetupLogger() *slog.Logger {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it.
// Returns the config or exits the process on validation failure.
func LoadAndValidateConfig(logger *slog.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	return cfg
}

// CleanupFunc releases resources held by an opened store.
type CleanupFunc func() error

// OpenStore builds the configured persistence backend. The returned
// cleanup is a no-op for the memory backend.
func OpenStore(logger *slog.Logger, cfg *config.Config) (store.Store, CleanupFunc) {
	if cfg.DataBackend == "memory" {
		logger.Info("Initialized memory backend", "backend", cfg.DataBackend)
		return memory.New(), func() error { return nil }
	}

	sqliteStore, err := storage.NewSQLiteStore(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to initialize SQLite store", "error", err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	logger.Info("Initialized SQLite backend", "backend", cfg.DataBackend, "path", cfg.SQLiteDBPath)
	return sqliteStore, sqliteStore.Close
}
