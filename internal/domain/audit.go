package domain

import "time"

// AnonymousActor is recorded when no acting user is supplied.
const AnonymousActor = "anonymous"

// AuditEntry is one immutable field-level change record. Entries are only
// written when the stringified old and new values differ; a key appearing for
// the first time is recorded with a nil OldValue.
type AuditEntry struct {
	ID          int64     `json:"id"`
	Timestamp   time.Time `json:"timestamp"`
	FieldKey    string    `json:"field_key"`
	OldValue    *string   `json:"old_value,omitempty"`
	NewValue    string    `json:"new_value"`
	Actor       string    `json:"actor"`
	Comment     string    `json:"comment"`
	IncidenceID *int64    `json:"id_incidence,omitempty"`
}
