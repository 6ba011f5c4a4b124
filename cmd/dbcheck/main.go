// cmd/dbcheck/main.go
// Connectivity check for the candidate store

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/imadgeboyega/kiekky-match/internal/common/database"
	"github.com/imadgeboyega/kiekky-match/internal/common/logging"
)

func main() {
	logger := logging.New("info", "development")

	if err := godotenv.Load(); err != nil {
		logger.Warn("no .env file found, using environment variables", "error", err)
	}

	if err := run(os.Getenv("DATABASE_URL"), logger); err != nil {
		logger.Error("candidate store check failed", "error", err)
		logger.Sync()
		os.Exit(1)
	}
	logger.Sync()
}

func run(dbURL string, logger *logging.Logger) error {
	if dbURL == "" {
		return errors.New("DATABASE_URL not found")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := database.NewPostgresDBFromURL(ctx, dbURL, database.DefaultPoolConfig)
	if err != nil {
		return fmt.Errorf("can't reach database: %w", err)
	}
	defer db.Close()

	logger.Info("connected to database")

	var total, matchable int
	if err := db.GetContext(ctx, &total, `SELECT COUNT(*) FROM users`); err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}
	err = db.GetContext(ctx, &matchable, `
		SELECT COUNT(*) FROM users
		WHERE is_profile_complete = TRUE
		  AND latitude IS NOT NULL AND longitude IS NOT NULL
		  AND date_of_birth IS NOT NULL`)
	if err != nil {
		return fmt.Errorf("failed to count matchable profiles: %w", err)
	}

	logger.Info("candidate store ready", "users", total, "matchable", matchable)
	return nil
}
