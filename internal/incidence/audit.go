// Package incidence implements the upsert engine and the field-level audit
// trail for incidence records.
package incidence

import (
	"sort"
	"time"

	"github.com/operata/feedback-portal/internal/domain"
)

// DiffPayload compares the stringified old and new value of every key in the
// new mapping and returns one audit entry per changed key. Unchanged keys
// produce nothing, which is what makes repeated upserts of the same payload
// idempotent. A key with no prior value records a nil old value.
func DiffPayload(oldMapping, newMapping map[string]any, actor, comment string, incidenceID *int64) []domain.AuditEntry {
	if actor == "" {
		actor = domain.AnonymousActor
	}

	keys := make([]string, 0, len(newMapping))
	for key := range newMapping {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	now := time.Now()
	var entries []domain.AuditEntry
	for _, key := range keys {
		newValue := domain.ValueString(newMapping[key])

		var oldValue *string
		if prior, existed := oldMapping[key]; existed {
			s := domain.ValueString(prior)
			oldValue = &s
			if s == newValue {
				continue
			}
		}

		var idCopy *int64
		if incidenceID != nil {
			v := *incidenceID
			idCopy = &v
		}
		entries = append(entries, domain.AuditEntry{
			Timestamp:   now,
			FieldKey:    key,
			OldValue:    oldValue,
			NewValue:    newValue,
			Actor:       actor,
			Comment:     comment,
			IncidenceID: idCopy,
		})
	}
	return entries
}
