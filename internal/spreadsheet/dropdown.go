package spreadsheet

import "github.com/operata/feedback-portal/internal/domain"

// ValidateDropdown checks a coerced value against the field's allowed set.
// Returns nil when the field is not a dropdown (not applicable). Invalid
// selections are reported, never corrected, at ingestion time; correction
// happens later through the contingent dropdown resolver during editing.
func ValidateDropdown(value any, field domain.FieldDefinition) *bool {
	if !field.IsDropdown {
		return nil
	}
	ok := field.Allows(domain.ValueString(value))
	return &ok
}
