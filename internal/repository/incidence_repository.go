package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/operata/feedback-portal/internal/domain"
)

// incidenceRepository implements IncidenceRepository over pgx.
type incidenceRepository struct {
	pool *pgxpool.Pool
}

// NewIncidenceRepository creates a new incidence repository.
func NewIncidenceRepository(pool *pgxpool.Pool) IncidenceRepository {
	return &incidenceRepository{pool: pool}
}

const incidenceColumns = "id_incidence, source_id, misc_json, created_at, updated_at"

// GetByID retrieves an incidence record by primary key.
func (r *incidenceRepository) GetByID(ctx context.Context, id int64) (domain.IncidenceRecord, error) {
	row := r.pool.QueryRow(ctx,
		"SELECT "+incidenceColumns+" FROM incidences WHERE id_incidence = $1", id)
	record, err := scanIncidence(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.IncidenceRecord{}, fmt.Errorf("%w: incidence %d", domain.ErrRecordNotFound, id)
		}
		return domain.IncidenceRecord{}, fmt.Errorf("failed to get incidence: %w", err)
	}
	return record, nil
}

// Upsert runs get-or-create, merge, and audit append in one transaction.
// The row is locked with FOR UPDATE so the merge function sees a stable
// pre-merge snapshot; a concurrent first-writer of the same external key is
// serialized through INSERT ... ON CONFLICT DO NOTHING plus a locked re-read.
func (r *incidenceRepository) Upsert(ctx context.Context, id *int64, merge MergeFunc) (domain.IncidenceRecord, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return domain.IncidenceRecord{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var record domain.IncidenceRecord
	if id != nil {
		record, err = r.lockOrSeed(ctx, tx, *id)
	} else {
		record, err = r.createAssigned(ctx, tx)
	}
	if err != nil {
		return domain.IncidenceRecord{}, err
	}

	merged, entries, err := merge(record)
	if err != nil {
		return domain.IncidenceRecord{}, err
	}

	miscJSON, err := merged.MiscJSON()
	if err != nil {
		return domain.IncidenceRecord{}, fmt.Errorf("failed to marshal payload column: %w", err)
	}

	var sourceID any
	if merged.SourceID != nil {
		sourceID = *merged.SourceID
	}
	row := tx.QueryRow(ctx,
		`UPDATE incidences SET source_id = $2, misc_json = $3, updated_at = now()
		 WHERE id_incidence = $1
		 RETURNING `+incidenceColumns,
		merged.ID, sourceID, miscJSON)
	updated, err := scanIncidence(row)
	if err != nil {
		return domain.IncidenceRecord{}, fmt.Errorf("failed to persist merged record: %w", err)
	}

	if err := insertAuditEntries(ctx, tx, entries); err != nil {
		return domain.IncidenceRecord{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.IncidenceRecord{}, fmt.Errorf("failed to commit upsert: %w", err)
	}
	return updated, nil
}

// lockOrSeed fetches an existing record under a row lock, creating an empty
// record seeded with the externally-assigned key when none exists yet.
func (r *incidenceRepository) lockOrSeed(ctx context.Context, tx pgx.Tx, id int64) (domain.IncidenceRecord, error) {
	row := tx.QueryRow(ctx,
		"SELECT "+incidenceColumns+" FROM incidences WHERE id_incidence = $1 FOR UPDATE", id)
	record, err := scanIncidence(row)
	if err == nil {
		return record, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return domain.IncidenceRecord{}, fmt.Errorf("failed to lock incidence: %w", err)
	}

	if _, err := tx.Exec(ctx,
		`INSERT INTO incidences (id_incidence, misc_json) VALUES ($1, '{}'::jsonb)
		 ON CONFLICT (id_incidence) DO NOTHING`, id); err != nil {
		return domain.IncidenceRecord{}, fmt.Errorf("failed to seed incidence %d: %w", id, err)
	}

	// Keep the key sequence ahead of explicitly-seeded keys so store-assigned
	// creates cannot collide with them later.
	if _, err := tx.Exec(ctx,
		`SELECT setval(pg_get_serial_sequence('incidences', 'id_incidence'),
		        GREATEST($1::bigint, (SELECT last_value FROM incidences_id_incidence_seq)))`, id); err != nil {
		return domain.IncidenceRecord{}, fmt.Errorf("failed to advance incidence key sequence: %w", err)
	}

	row = tx.QueryRow(ctx,
		"SELECT "+incidenceColumns+" FROM incidences WHERE id_incidence = $1 FOR UPDATE", id)
	record, err = scanIncidence(row)
	if err != nil {
		return domain.IncidenceRecord{}, fmt.Errorf("failed to re-read seeded incidence: %w", err)
	}
	return record, nil
}

// createAssigned inserts a fresh record and lets the store assign the key.
func (r *incidenceRepository) createAssigned(ctx context.Context, tx pgx.Tx) (domain.IncidenceRecord, error) {
	row := tx.QueryRow(ctx,
		`INSERT INTO incidences (misc_json) VALUES ('{}'::jsonb) RETURNING `+incidenceColumns)
	record, err := scanIncidence(row)
	if err != nil {
		return domain.IncidenceRecord{}, fmt.Errorf("failed to create incidence: %w", err)
	}
	return record, nil
}

func insertAuditEntries(ctx context.Context, tx pgx.Tx, entries []domain.AuditEntry) error {
	for _, entry := range entries {
		var oldValue any
		if entry.OldValue != nil {
			oldValue = *entry.OldValue
		}
		var incidenceID any
		if entry.IncidenceID != nil {
			incidenceID = *entry.IncidenceID
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO audit_entries (created_at, field_key, old_value, new_value, actor, comment, id_incidence)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			entry.Timestamp, entry.FieldKey, oldValue, entry.NewValue,
			entry.Actor, entry.Comment, incidenceID); err != nil {
			return fmt.Errorf("failed to append audit entry for %s: %w", entry.FieldKey, err)
		}
	}
	return nil
}

func scanIncidence(row pgx.Row) (domain.IncidenceRecord, error) {
	var (
		record   domain.IncidenceRecord
		sourceID *int64
		miscJSON []byte
		created  time.Time
		updated  time.Time
	)
	if err := row.Scan(&record.ID, &sourceID, &miscJSON, &created, &updated); err != nil {
		return domain.IncidenceRecord{}, err
	}
	misc, err := domain.MiscFromJSON(json.RawMessage(miscJSON))
	if err != nil {
		return domain.IncidenceRecord{}, fmt.Errorf("failed to decode payload column: %w", err)
	}
	record.SourceID = sourceID
	record.Misc = misc
	record.CreatedAt = created
	record.UpdatedAt = updated
	return record, nil
}
