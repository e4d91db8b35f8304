package schema

import "github.com/operata/feedback-portal/internal/domain"

// Dropdown choice sets referenced by the declared versions. The leading
// placeholder is part of the published template, so it belongs to the
// declaration rather than being injected at read time.
var (
	emissionTypeChoices = []string{
		"Please Select",
		"Venting",
		"Fugitive Leak",
		"Flaring",
		"Surface Emission",
		"Other",
	}

	emissionCauseChoices = []string{
		"Please Select",
		"Planned Maintenance",
		"Unplanned Maintenance",
		"Equipment Failure",
		"Thief Hatch Open",
		"Pilot Out",
		"Cover Integrity",
		"Gas Collection Outage",
		"Unknown",
	}
)

// publishedVersions declares every spreadsheet template revision this portal
// accepts. A revision is immutable once published; edits to the template get
// a new version identifier.
func publishedVersions() []domain.SchemaVersion {
	v070Fields := []domain.FieldDefinition{
		{Key: "id_incidence", Label: "Incidence/Emission ID", LabelCell: "A3", ValueCell: "B3", Type: domain.FieldTypeInteger},
		{Key: "facility_name", Label: "Facility Name", LabelCell: "A4", ValueCell: "B4", Type: domain.FieldTypeString},
		{Key: "contact_name", Label: "Contact Name", LabelCell: "A5", ValueCell: "B5", Type: domain.FieldTypeString},
		{Key: "contact_phone", Label: "Contact Phone", LabelCell: "A6", ValueCell: "B6", Type: domain.FieldTypeString},
		{Key: "contact_email", Label: "Contact Email", LabelCell: "A7", ValueCell: "B7", Type: domain.FieldTypeString},
		{Key: "observation_timestamp", Label: "Observation Date/Time", LabelCell: "A8", ValueCell: "B8", Type: domain.FieldTypeDateTime},
		{Key: "emission_type", Label: "Emission Type", LabelCell: "A9", ValueCell: "B9", Type: domain.FieldTypeString, IsDropdown: true, AllowedValues: emissionTypeChoices},
		{Key: "emission_cause", Label: "Emission Cause", LabelCell: "A10", ValueCell: "B10", Type: domain.FieldTypeString, IsDropdown: true, AllowedValues: emissionCauseChoices},
		{Key: "equipment_running", Label: "Was equipment operating?", LabelCell: "A11", ValueCell: "B11", Type: domain.FieldTypeBoolean},
		{Key: "estimated_flow_rate", Label: "Estimated Flow Rate (scf/h)", LabelCell: "A12", ValueCell: "B12", Type: domain.FieldTypeDecimal},
		{Key: "plume_length_m", Label: "Plume Length (m)", LabelCell: "A13", ValueCell: "B13", Type: domain.FieldTypeFloat},
		{Key: "ogi_survey_count", Label: "OGI Surveys This Year", LabelCell: "A14", ValueCell: "B14", Type: domain.FieldTypeInteger},
		{Key: "mitigation_notes", Label: "Mitigation Notes", LabelCell: "A15", ValueCell: "B15", Type: domain.FieldTypeString},
	}

	// v071 relocated the mitigation notes value cell and added a repair
	// completion timestamp below it.
	v071Fields := make([]domain.FieldDefinition, len(v070Fields))
	copy(v071Fields, v070Fields)
	for i, field := range v071Fields {
		if field.Key == "mitigation_notes" {
			field.ValueCell = "C15"
			v071Fields[i] = field
		}
	}
	v071Fields = append(v071Fields, domain.FieldDefinition{
		Key: "repair_timestamp", Label: "Repair Completed Date/Time", LabelCell: "A16", ValueCell: "B16", Type: domain.FieldTypeDateTime,
	})

	return []domain.SchemaVersion{
		domain.NewSchemaVersion("v070", v070Fields),
		domain.NewSchemaVersion("v071", v071Fields),
	}
}
