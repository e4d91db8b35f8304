package ingestion

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/operata/feedback-portal/internal/domain"
	"github.com/operata/feedback-portal/internal/spreadsheet"
)

// FieldReport diagnoses one schema field against what the spreadsheet
// actually contained.
type FieldReport struct {
	Key           string   `json:"key"`
	DeclaredType  string   `json:"declaredType"`
	IsDropdown    bool     `json:"isDropdown"`
	SchemaLabel   string   `json:"schemaLabel"`
	SheetLabel    *string  `json:"sheetLabel"`
	LabelMatch    *bool    `json:"labelMatch"`
	RawValue      *string  `json:"rawValue"`
	StoredValue   *string  `json:"storedValue"`
	ValueMatch    *bool    `json:"valueMatch"`
	DropdownValid *bool    `json:"dropdownValid,omitempty"`
	CoercionLog   []string `json:"coercionLog,omitempty"`
}

// Report is the structured diagnostic for one tab: every field's label and
// value status plus running pass/fail totals.
type Report struct {
	ID            uuid.UUID     `json:"id"`
	Tab           string        `json:"tab"`
	SchemaVersion string        `json:"schemaVersion"`
	Fields        []FieldReport `json:"fields"`
	LabelPass     int           `json:"labelPass"`
	LabelFail     int           `json:"labelFail"`
	ValuePass     int           `json:"valuePass"`
	ValueFail     int           `json:"valueFail"`
}

// GenerateReport walks every field in the schema and records label-match,
// value-match, dropdown validity, and the coercion log. It is a pure
// function and always runs to completion: a failing field never stops the
// walk. Value match compares the stored (coerced) value against the raw
// spreadsheet text, so any transformation at all is surfaced, not just
// type mismatches.
func GenerateReport(tab string, sv domain.SchemaVersion, doc Document) Report {
	report := Report{
		ID:            uuid.New(),
		Tab:           tab,
		SchemaVersion: sv.ID,
	}

	contents := doc.TabContents[tab]
	labels := doc.TabLabels[tab]

	for _, field := range sv.Fields() {
		fr := FieldReport{
			Key:          field.Key,
			DeclaredType: string(field.Type),
			IsDropdown:   field.IsDropdown,
			SchemaLabel:  field.Label,
		}

		if label, ok := labels[field.Key]; ok {
			fr.SheetLabel = &label
			match := label == field.Label
			fr.LabelMatch = &match
			if match {
				report.LabelPass++
			} else {
				report.LabelFail++
			}
		}

		if raw, ok := contents[field.Key]; ok {
			rawText := domain.ValueString(raw)
			fr.RawValue = &rawText

			coerced, logs := spreadsheet.Coerce(raw, field.Type)
			fr.CoercionLog = logs
			if coerced != nil {
				stored := domain.ValueString(coerced)
				fr.StoredValue = &stored
			}

			match := fr.StoredValue != nil && *fr.StoredValue == rawText
			fr.ValueMatch = &match
			if match {
				report.ValuePass++
			} else {
				report.ValueFail++
			}

			fr.DropdownValid = spreadsheet.ValidateDropdown(coerced, field)
		}

		report.Fields = append(report.Fields, fr)
	}

	return report
}

// Render formats the report for a human reviewer.
func (r Report) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Diagnostic report %s: tab %q, schema %s\n", r.ID, r.Tab, r.SchemaVersion)
	b.WriteString(strings.Repeat("-", 60) + "\n")

	for _, f := range r.Fields {
		fmt.Fprintf(&b, "field %s (%s", f.Key, f.DeclaredType)
		if f.IsDropdown {
			b.WriteString(", dropdown")
		}
		b.WriteString(")\n")
		fmt.Fprintf(&b, "  schema label: %q\n", f.SchemaLabel)
		fmt.Fprintf(&b, "  sheet label:  %s  match: %s\n", strOrMissing(f.SheetLabel), boolOrNA(f.LabelMatch))
		fmt.Fprintf(&b, "  raw value:    %s\n", strOrMissing(f.RawValue))
		fmt.Fprintf(&b, "  stored value: %s  match: %s\n", strOrMissing(f.StoredValue), boolOrNA(f.ValueMatch))
		if f.DropdownValid != nil {
			fmt.Fprintf(&b, "  dropdown valid: %t\n", *f.DropdownValid)
		}
		for _, line := range f.CoercionLog {
			fmt.Fprintf(&b, "  ! %s\n", line)
		}
	}

	b.WriteString(strings.Repeat("-", 60) + "\n")
	fmt.Fprintf(&b, "labels: %d pass / %d fail; values: %d pass / %d fail\n",
		r.LabelPass, r.LabelFail, r.ValuePass, r.ValueFail)
	return b.String()
}

func strOrMissing(s *string) string {
	if s == nil {
		return "(missing)"
	}
	return fmt.Sprintf("%q", *s)
}

func boolOrNA(b *bool) string {
	if b == nil {
		return "n/a"
	}
	return fmt.Sprintf("%t", *b)
}
