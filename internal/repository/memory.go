package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/operata/feedback-portal/internal/domain"
)

// MemoryStore is an in-memory implementation of the incidence, audit, source,
// and ingestion-log repositories sharing one lock, mirroring the atomicity
// the Postgres implementations get from a transaction. It backs unit tests
// and local development without a database.
type MemoryStore struct {
	mu         sync.Mutex
	nextID     int64
	nextAudit  int64
	incidences map[int64]domain.IncidenceRecord
	audit      []domain.AuditEntry
	sources    map[int64]domain.Source
	logs       []domain.IngestionLogEntry
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		nextID:     1,
		nextAudit:  1,
		incidences: make(map[int64]domain.IncidenceRecord),
		sources:    make(map[int64]domain.Source),
	}
}

// AddSource seeds a source row for tests.
func (m *MemoryStore) AddSource(source domain.Source) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sources[source.ID] = source
}

func (m *MemoryStore) GetByID(_ context.Context, id int64) (domain.IncidenceRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	record, ok := m.incidences[id]
	if !ok {
		return domain.IncidenceRecord{}, fmt.Errorf("%w: incidence %d", domain.ErrRecordNotFound, id)
	}
	return record.WithMisc(record.Misc), nil
}

func (m *MemoryStore) Upsert(_ context.Context, id *int64, merge MergeFunc) (domain.IncidenceRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var record domain.IncidenceRecord
	switch {
	case id == nil:
		assigned := m.nextID
		m.nextID++
		record = domain.NewIncidenceRecord(assigned, nil)
	default:
		existing, ok := m.incidences[*id]
		if ok {
			record = existing
		} else {
			record = domain.NewIncidenceRecord(*id, nil)
			if *id >= m.nextID {
				m.nextID = *id + 1
			}
		}
	}

	merged, entries, err := merge(record)
	if err != nil {
		return domain.IncidenceRecord{}, err
	}

	merged.UpdatedAt = time.Now()
	m.incidences[merged.ID] = merged
	for _, entry := range entries {
		entry.ID = m.nextAudit
		m.nextAudit++
		m.audit = append(m.audit, entry)
	}
	return merged, nil
}

func (m *MemoryStore) ListByIncidence(_ context.Context, incidenceID int64) ([]domain.AuditEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var entries []domain.AuditEntry
	for _, entry := range m.audit {
		if entry.IncidenceID != nil && *entry.IncidenceID == incidenceID {
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

func (m *MemoryStore) CountByIncidence(ctx context.Context, incidenceID int64) (int64, error) {
	entries, err := m.ListByIncidence(ctx, incidenceID)
	if err != nil {
		return 0, err
	}
	return int64(len(entries)), nil
}

func (m *MemoryStore) getSource(id int64) (domain.Source, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	source, ok := m.sources[id]
	if !ok {
		return domain.Source{}, fmt.Errorf("%w: source %d", domain.ErrRecordNotFound, id)
	}
	return source, nil
}

// Sources returns the store's SourceRepository view.
func (m *MemoryStore) Sources() SourceRepository {
	return sourceView{store: m}
}

type sourceView struct{ store *MemoryStore }

func (v sourceView) GetByID(_ context.Context, id int64) (domain.Source, error) {
	return v.store.getSource(id)
}

func (m *MemoryStore) Record(_ context.Context, entry domain.IngestionLogEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	m.logs = append(m.logs, entry)
	return nil
}

func (m *MemoryStore) List(_ context.Context, limit, offset int) ([]domain.IngestionLogEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if offset >= len(m.logs) {
		return nil, nil
	}
	entries := m.logs[offset:]
	if limit > 0 && limit < len(entries) {
		entries = entries[:limit]
	}
	out := make([]domain.IngestionLogEntry, len(entries))
	copy(out, entries)
	return out, nil
}
