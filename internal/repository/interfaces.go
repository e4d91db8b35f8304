package repository

import (
	"context"

	"github.com/operata/feedback-portal/internal/domain"
)

// MergeFunc computes a record's next state and the audit entries describing
// the change. It runs against a stable pre-merge snapshot: implementations
// of IncidenceRepository must hold the row locked for the duration so the
// audit comparison cannot race a concurrent writer.
type MergeFunc func(record domain.IncidenceRecord) (domain.IncidenceRecord, []domain.AuditEntry, error)

// IncidenceRepository defines storage operations for incidence records.
type IncidenceRepository interface {
	// GetByID fetches a record by primary key.
	GetByID(ctx context.Context, id int64) (domain.IncidenceRecord, error)

	// Upsert runs get-or-create-then-merge as one atomic unit. When id is
	// nil a new record is created and the store assigns the key; when id
	// names a record that does not exist yet, the record is created seeded
	// with that key. The merge function's record update and its audit
	// entries are persisted in the same transaction, or not at all.
	Upsert(ctx context.Context, id *int64, merge MergeFunc) (domain.IncidenceRecord, error)
}

// AuditRepository reads the append-only audit trail. Entries are only ever
// written through IncidenceRepository.Upsert.
type AuditRepository interface {
	ListByIncidence(ctx context.Context, incidenceID int64) ([]domain.AuditEntry, error)
	CountByIncidence(ctx context.Context, incidenceID int64) (int64, error)
}

// SourceRepository reads the sources table backing foreign-key sector
// resolution.
type SourceRepository interface {
	GetByID(ctx context.Context, id int64) (domain.Source, error)
}

// IngestionLogRepository stores upload-level failures for operator review.
type IngestionLogRepository interface {
	Record(ctx context.Context, entry domain.IngestionLogEntry) error
	List(ctx context.Context, limit, offset int) ([]domain.IngestionLogEntry, error)
}
