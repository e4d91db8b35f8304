package domain

// SchemaVersion is one immutable spreadsheet template revision: an ordered
// collection of field definitions plus an O(1) by-key index. New template
// revisions get a new version identifier rather than mutating an existing one.
type SchemaVersion struct {
	ID     string
	fields []FieldDefinition
	byKey  map[string]int
}

// NewSchemaVersion builds an indexed schema version from declared fields.
// The field slice is copied so later mutation of the caller's slice cannot
// leak into the published version.
func NewSchemaVersion(id string, fields []FieldDefinition) SchemaVersion {
	copied := make([]FieldDefinition, len(fields))
	copy(copied, fields)

	byKey := make(map[string]int, len(copied))
	for i, field := range copied {
		byKey[field.Key] = i
	}

	return SchemaVersion{
		ID:     id,
		fields: copied,
		byKey:  byKey,
	}
}

// Fields returns the field definitions in declaration order.
func (s SchemaVersion) Fields() []FieldDefinition {
	out := make([]FieldDefinition, len(s.fields))
	copy(out, s.fields)
	return out
}

// FieldByKey looks up a field definition by its key.
func (s SchemaVersion) FieldByKey(key string) (FieldDefinition, bool) {
	idx, ok := s.byKey[key]
	if !ok {
		return FieldDefinition{}, false
	}
	return s.fields[idx], true
}

// Len returns the number of declared fields.
func (s SchemaVersion) Len() int {
	return len(s.fields)
}
