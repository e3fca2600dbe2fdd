package database

import (
	"context"
	"fmt"

	"github.com/samellow/matchsense/internal/config"
)

const generatedBetsSchema = `
CREATE TABLE IF NOT EXISTS generated_bets (
	id UUID PRIMARY KEY,
	bet_date DATE NOT NULL UNIQUE,
	result JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_generated_bets_created_at ON generated_bets (created_at DESC);
`

// Initialize creates a database connection pool and ensures the schema exists
func Initialize(ctx context.Context, cfg *config.DatabaseConfig) (*DB, error) {
	db, err := NewDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if _, err := db.pool.Exec(ctx, generatedBetsSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return db, nil
}
