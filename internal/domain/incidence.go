package domain

import (
	"encoding/json"
	"time"
)

// SectorKey is the reserved payload key carrying the record's sector tag.
const SectorKey = "sector"

// PrimaryKeyField is the payload key that mirrors the record's primary key.
const PrimaryKeyField = "id_incidence"

// IncidenceRecord is one logical feedback record: an integer primary key, an
// optional foreign key to the sources table, and a single JSON-valued column
// holding the full canonical payload.
type IncidenceRecord struct {
	ID        int64          `json:"id_incidence"`
	SourceID  *int64         `json:"source_id,omitempty"`
	Misc      map[string]any `json:"misc_json"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// NewIncidenceRecord creates a record with a copied payload map.
func NewIncidenceRecord(id int64, misc map[string]any) IncidenceRecord {
	now := time.Now()
	return IncidenceRecord{
		ID:        id,
		Misc:      copyPayload(misc),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// WithMisc returns a copy of the record with a replaced payload column.
func (r IncidenceRecord) WithMisc(misc map[string]any) IncidenceRecord {
	out := r
	out.Misc = copyPayload(misc)
	out.UpdatedAt = time.Now()
	return out
}

// WithSourceID returns a copy of the record pointing at a different source.
func (r IncidenceRecord) WithSourceID(sourceID *int64) IncidenceRecord {
	out := r
	if sourceID != nil {
		v := *sourceID
		out.SourceID = &v
	} else {
		out.SourceID = nil
	}
	out.UpdatedAt = time.Now()
	return out
}

// MiscJSON marshals the payload column for storage.
func (r *IncidenceRecord) MiscJSON() (json.RawMessage, error) {
	if r.Misc == nil {
		r.Misc = make(map[string]any)
	}
	return json.Marshal(r.Misc)
}

// MiscFromJSON decodes a stored JSON column back into a payload map.
func MiscFromJSON(raw json.RawMessage) (map[string]any, error) {
	var misc map[string]any
	err := json.Unmarshal(raw, &misc)
	return misc, err
}

func copyPayload(payload map[string]any) map[string]any {
	out := make(map[string]any, len(payload))
	for k, v := range payload {
		out[k] = v
	}
	return out
}
