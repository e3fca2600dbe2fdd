package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/samellow/matchsense/internal/database"
	"github.com/samellow/matchsense/internal/models"
)

// PostgresGeneratedBetRepository implements GeneratedBetRepository using PostgreSQL
type PostgresGeneratedBetRepository struct {
	db *database.DB
}

// NewPostgresGeneratedBetRepository creates a new repository instance
func NewPostgresGeneratedBetRepository(db *database.DB) *PostgresGeneratedBetRepository {
	return &PostgresGeneratedBetRepository{db: db}
}

// Save stores a run's result, replacing any earlier result for the same date
func (r *PostgresGeneratedBetRepository) Save(ctx context.Context, record *models.BetRecord) error {
	payload, err := json.Marshal(record.Result)
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	query := `
		INSERT INTO generated_bets (id, bet_date, result, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (bet_date) DO UPDATE SET
			id = EXCLUDED.id,
			result = EXCLUDED.result,
			created_at = EXCLUDED.created_at`

	_, err = r.db.GetPool().Exec(ctx, query,
		record.ID,
		record.Date,
		payload,
		record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save bet record: %w", err)
	}

	return nil
}

// GetByDate retrieves the stored result for an ISO date
func (r *PostgresGeneratedBetRepository) GetByDate(ctx context.Context, date string) (*models.BetRecord, error) {
	query := `
		SELECT id, bet_date, result, created_at
		FROM generated_bets
		WHERE bet_date = $1`

	record, err := r.scanRecord(r.db.GetPool().QueryRow(ctx, query, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get bet record: %w", err)
	}

	return record, nil
}

// GetRecent retrieves up to limit results, newest first
func (r *PostgresGeneratedBetRepository) GetRecent(ctx context.Context, limit int) ([]*models.BetRecord, error) {
	query := `
		SELECT id, bet_date, result, created_at
		FROM generated_bets
		ORDER BY bet_date DESC
		LIMIT $1`

	rows, err := r.db.GetPool().Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query bet records: %w", err)
	}
	defer rows.Close()

	var records []*models.BetRecord
	for rows.Next() {
		record, err := r.scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bet record: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bet records: %w", err)
	}

	return records, nil
}

func (r *PostgresGeneratedBetRepository) scanRecord(row pgx.Row) (*models.BetRecord, error) {
	var (
		record  models.BetRecord
		betDate time.Time
		payload []byte
	)
	if err := row.Scan(&record.ID, &betDate, &payload, &record.CreatedAt); err != nil {
		return nil, err
	}
	record.Date = betDate.Format("2006-01-02")
	if err := json.Unmarshal(payload, &record.Result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal result: %w", err)
	}
	return &record, nil
}
