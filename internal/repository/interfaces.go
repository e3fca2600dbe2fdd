// Package repository provides data access for persisted generation results.
package repository

import (
	"context"

	"github.com/samellow/matchsense/internal/models"
)

// GeneratedBetRepository manages persisted generation results
type GeneratedBetRepository interface {
	// Save stores a run's result, replacing any earlier result for the same date
	Save(ctx context.Context, record *models.BetRecord) error

	// GetByDate retrieves the stored result for an ISO date, or models.ErrNotFound
	GetByDate(ctx context.Context, date string) (*models.BetRecord, error)

	// GetRecent retrieves up to limit results, newest first
	GetRecent(ctx context.Context, limit int) ([]*models.BetRecord, error)
}
