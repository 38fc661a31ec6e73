package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/AlexTLDR/guestlist/internal/config"
	"github.com/AlexTLDR/guestlist/internal/database"
	"github.com/AlexTLDR/guestlist/internal/server"
	"github.com/AlexTLDR/guestlist/internal/storage"
	"github.com/AlexTLDR/guestlist/pkg/logging"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file (ignore error if a file doesn't exist)
	// Use Overload to force to overwrite any existing environment variables
	if err := godotenv.Overload(); err != nil {
		slog.Warn("no .env file loaded", "error", err)
	}

	logging.Setup()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := db.Close(); err != nil {
			slog.Error("failed to close database", "error", err)
		}
	}()

	if err := db.Migrate(); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	store, err := storage.NewS3Store(context.Background(), cfg.AWSRegion, cfg.BucketName, cfg.PresignTTL)
	if err != nil {
		slog.Error("failed to initialize object storage", "error", err)
		os.Exit(1)
	}

	srv := server.New(cfg, db, store)

	slog.Info("server starting", "port", cfg.Port, "bucket", cfg.BucketName)
	if err := srv.Start(":" + cfg.Port); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
