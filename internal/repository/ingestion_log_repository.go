package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/operata/feedback-portal/internal/domain"
)

type ingestionLogRepository struct {
	pool *pgxpool.Pool
}

// NewIngestionLogRepository wires a repository backed by pgxpool.
func NewIngestionLogRepository(pool *pgxpool.Pool) IngestionLogRepository {
	return &ingestionLogRepository{pool: pool}
}

func (r *ingestionLogRepository) Record(ctx context.Context, entry domain.IngestionLogEntry) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	_, err := r.pool.Exec(ctx,
		`INSERT INTO ingestion_logs (id, file_name, tab_name, error_message)
		 VALUES ($1, $2, $3, $4)`,
		entry.ID, entry.FileName, entry.TabName, entry.ErrorMessage)
	if err != nil {
		return fmt.Errorf("failed to record ingestion log: %w", err)
	}
	return nil
}

func (r *ingestionLogRepository) List(ctx context.Context, limit, offset int) ([]domain.IngestionLogEntry, error) {
	if limit <= 0 {
		limit = 200
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, file_name, tab_name, error_message, created_at
		 FROM ingestion_logs ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list ingestion logs: %w", err)
	}
	defer rows.Close()

	var entries []domain.IngestionLogEntry
	for rows.Next() {
		var entry domain.IngestionLogEntry
		if err := rows.Scan(&entry.ID, &entry.FileName, &entry.TabName,
			&entry.ErrorMessage, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan ingestion log: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
