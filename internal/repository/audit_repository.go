package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/operata/feedback-portal/internal/domain"
)

type auditRepository struct {
	pool *pgxpool.Pool
}

// NewAuditRepository wires a read-only view of the audit trail.
func NewAuditRepository(pool *pgxpool.Pool) AuditRepository {
	return &auditRepository{pool: pool}
}

func (r *auditRepository) ListByIncidence(ctx context.Context, incidenceID int64) ([]domain.AuditEntry, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, created_at, field_key, old_value, new_value, actor, comment, id_incidence
		 FROM audit_entries WHERE id_incidence = $1 ORDER BY id`, incidenceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.AuditEntry
	for rows.Next() {
		var entry domain.AuditEntry
		if err := rows.Scan(&entry.ID, &entry.Timestamp, &entry.FieldKey, &entry.OldValue,
			&entry.NewValue, &entry.Actor, &entry.Comment, &entry.IncidenceID); err != nil {
			return nil, fmt.Errorf("failed to scan audit entry: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (r *auditRepository) CountByIncidence(ctx context.Context, incidenceID int64) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx,
		"SELECT count(*) FROM audit_entries WHERE id_incidence = $1", incidenceID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count audit entries: %w", err)
	}
	return count, nil
}
