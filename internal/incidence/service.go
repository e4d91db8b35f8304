package incidence

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/operata/feedback-portal/internal/domain"
	"github.com/operata/feedback-portal/internal/repository"
)

// Reserved payload keys the engine maintains itself. They are merged into
// the record's JSON column but excluded from the audit trail: the trail
// records operator field edits, not the engine's own bookkeeping.
var reservedKeys = map[string]bool{
	domain.PrimaryKeyField: true,
	domain.SectorKey:       true,
}

// Service is the upsert engine: it resolves a payload onto exactly one
// backing record and appends the audit entries for every changed field, in
// one transaction.
type Service struct {
	incidences repository.IncidenceRepository
	logger     *zap.Logger
}

// NewService creates an upsert engine over the given record store.
func NewService(incidences repository.IncidenceRepository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{incidences: incidences, logger: logger}
}

// UpsertResult reports what an upsert did.
type UpsertResult struct {
	IncidenceID int64
	Created     bool
	Audit       []domain.AuditEntry
}

// Upsert merges a payload into the record named by id, creating the record
// if needed. A nil id asks the store to assign the key, which is back-filled
// into the payload before merge so the JSON column always carries its own
// primary key. An empty payload is rejected outright: upstream components
// never legitimately produce one.
func (s *Service) Upsert(ctx context.Context, id *int64, payload map[string]any, actor, comment string) (UpsertResult, error) {
	if len(payload) == 0 {
		return UpsertResult{}, domain.ErrEmptyPayload
	}

	var result UpsertResult
	record, err := s.incidences.Upsert(ctx, id, func(current domain.IncidenceRecord) (domain.IncidenceRecord, []domain.AuditEntry, error) {
		result.Created = len(current.Misc) == 0

		incoming := make(map[string]any, len(payload)+1)
		for key, value := range payload {
			incoming[key] = normalizeValue(value)
		}
		incoming[domain.PrimaryKeyField] = current.ID

		auditable := make(map[string]any, len(incoming))
		for key, value := range incoming {
			if !reservedKeys[key] {
				auditable[key] = value
			}
		}
		recordID := current.ID
		entries := DiffPayload(current.Misc, auditable, actor, comment, &recordID)

		merged := make(map[string]any, len(current.Misc)+len(incoming))
		for key, value := range current.Misc {
			merged[key] = value
		}
		for key, value := range incoming {
			merged[key] = value
		}

		result.Audit = entries
		return current.WithMisc(merged), entries, nil
	})
	if err != nil {
		return UpsertResult{}, fmt.Errorf("upsert failed: %w", err)
	}

	result.IncidenceID = record.ID
	s.logger.Info("incidence upserted",
		zap.Int64("id_incidence", record.ID),
		zap.Bool("created", result.Created),
		zap.Int("audit_entries", len(result.Audit)))
	return result, nil
}

// Get fetches a record by primary key.
func (s *Service) Get(ctx context.Context, id int64) (domain.IncidenceRecord, error) {
	return s.incidences.GetByID(ctx, id)
}

// normalizeValue maps typed values onto the form they take after a trip
// through the JSON column, so a re-upsert of the same payload compares equal
// to what was stored and produces no audit entries.
func normalizeValue(v any) any {
	switch value := v.(type) {
	case time.Time:
		return domain.ValueString(value)
	case decimal.Decimal:
		return value.String()
	default:
		return v
	}
}
