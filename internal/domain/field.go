package domain

// FieldType represents the declared semantic type of a spreadsheet field
type FieldType string

const (
	FieldTypeString   FieldType = "string"
	FieldTypeInteger  FieldType = "integer"
	FieldTypeFloat    FieldType = "float"
	FieldTypeBoolean  FieldType = "boolean"
	FieldTypeDateTime FieldType = "datetime"
	FieldTypeDecimal  FieldType = "decimal"
)

// FieldDefinition declares where one logical field lives on a spreadsheet tab
// and what shape its value must take. LabelCell and ValueCell are A1-style
// addresses; they are read independently so diagnostics can tell a moved label
// apart from a missing value.
type FieldDefinition struct {
	Key           string    `json:"key"`
	Label         string    `json:"label"`
	LabelCell     string    `json:"label_cell"`
	ValueCell     string    `json:"value_cell"`
	Type          FieldType `json:"type"`
	IsDropdown    bool      `json:"is_dropdown"`
	AllowedValues []string  `json:"allowed_values,omitempty"`
}

// Allows reports whether value is one of the field's allowed dropdown values.
func (f FieldDefinition) Allows(value string) bool {
	for _, allowed := range f.AllowedValues {
		if allowed == value {
			return true
		}
	}
	return false
}
