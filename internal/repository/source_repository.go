package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/operata/feedback-portal/internal/domain"
)

type sourceRepository struct {
	pool *pgxpool.Pool
}

// NewSourceRepository wires the sources lookup table.
func NewSourceRepository(pool *pgxpool.Pool) SourceRepository {
	return &sourceRepository{pool: pool}
}

func (r *sourceRepository) GetByID(ctx context.Context, id int64) (domain.Source, error) {
	var source domain.Source
	err := r.pool.QueryRow(ctx,
		"SELECT id, name, sector FROM sources WHERE id = $1", id).
		Scan(&source.ID, &source.Name, &source.Sector)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Source{}, fmt.Errorf("%w: source %d", domain.ErrRecordNotFound, id)
		}
		return domain.Source{}, fmt.Errorf("failed to get source: %w", err)
	}
	return source, nil
}
