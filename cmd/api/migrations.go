package main

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/imadgeboyega/kiekky-match/internal/common/logging"
)

// migrations bring an existing users table up to what the candidate
// provider reads. Each statement is idempotent.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id SERIAL PRIMARY KEY,
		username VARCHAR(100) UNIQUE NOT NULL,
		is_profile_complete BOOLEAN DEFAULT FALSE,
		created_at TIMESTAMPTZ DEFAULT NOW(),
		updated_at TIMESTAMPTZ DEFAULT NOW()
	)`,
	`ALTER TABLE users ADD COLUMN IF NOT EXISTS display_name VARCHAR(100)`,
	`ALTER TABLE users ADD COLUMN IF NOT EXISTS date_of_birth DATE`,
	`ALTER TABLE users ADD COLUMN IF NOT EXISTS latitude DOUBLE PRECISION`,
	`ALTER TABLE users ADD COLUMN IF NOT EXISTS longitude DOUBLE PRECISION`,
	`ALTER TABLE users ADD COLUMN IF NOT EXISTS location VARCHAR(255)`,
	`ALTER TABLE users ADD COLUMN IF NOT EXISTS interests TEXT[] DEFAULT '{}'`,
	`ALTER TABLE users ADD COLUMN IF NOT EXISTS parenting_style VARCHAR(32)`,
	`ALTER TABLE users ADD COLUMN IF NOT EXISTS traits TEXT[] DEFAULT '{}'`,
	`ALTER TABLE users ADD COLUMN IF NOT EXISTS travel_preference VARCHAR(32)`,
	`CREATE INDEX IF NOT EXISTS idx_users_lat_lng ON users(latitude, longitude)`,
	`CREATE TABLE IF NOT EXISTS blocked_users (
		id SERIAL PRIMARY KEY,
		user_id INTEGER REFERENCES users(id) ON DELETE CASCADE,
		blocked_id INTEGER REFERENCES users(id) ON DELETE CASCADE,
		created_at TIMESTAMPTZ DEFAULT NOW(),
		UNIQUE(user_id, blocked_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_blocked_users_blocked ON blocked_users(blocked_id)`,
}

func runMigrations(ctx context.Context, db *sqlx.DB, logger *logging.Logger) error {
	for i, stmt := range migrations {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	logger.Info("database migrations completed", "statements", len(migrations))
	return nil
}
