// Package refdata holds the dropdown and contingent-choice reference data.
// The data is constructed once at process start and passed into components
// by value; nothing writes to it after load.
package refdata

// PlaceholderOption is the disabled first entry of every dropdown and the
// sentinel an illegal selection is reset to.
const PlaceholderOption = "Please Select"

// ReferenceData is the immutable lookup table set for dropdown rendering and
// contingent-choice resolution.
type ReferenceData struct {
	// Options maps a field key to its full display list, placeholder first.
	Options map[string][]string

	// Contingent maps a parent field key to, per parent value, the legal
	// choice list of each dependent field.
	Contingent map[string]map[string]map[string][]string
}

// Default returns the reference data shipped with the portal.
func Default() ReferenceData {
	return ReferenceData{
		Options: map[string][]string{
			"emission_type": withPlaceholder(
				"Venting",
				"Fugitive Leak",
				"Flaring",
				"Surface Emission",
				"Other",
			),
			"emission_cause": withPlaceholder(
				"Planned Maintenance",
				"Unplanned Maintenance",
				"Equipment Failure",
				"Thief Hatch Open",
				"Pilot Out",
				"Cover Integrity",
				"Gas Collection Outage",
				"Unknown",
			),
		},
		Contingent: map[string]map[string]map[string][]string{
			"emission_type": {
				"Venting": {
					"emission_cause": withPlaceholder("Planned Maintenance", "Unplanned Maintenance", "Unknown"),
				},
				"Fugitive Leak": {
					"emission_cause": withPlaceholder("Equipment Failure", "Thief Hatch Open", "Unknown"),
				},
				"Flaring": {
					"emission_cause": withPlaceholder("Pilot Out", "Unplanned Maintenance", "Unknown"),
				},
				"Surface Emission": {
					"emission_cause": withPlaceholder("Cover Integrity", "Gas Collection Outage", "Unknown"),
				},
				"Other": {
					"emission_cause": withPlaceholder("Unknown"),
				},
			},
		},
	}
}

// OptionsFor returns the display list for a field key, or just the
// placeholder when the field has no declared options.
func (r ReferenceData) OptionsFor(fieldKey string) []string {
	options, ok := r.Options[fieldKey]
	if !ok {
		return []string{PlaceholderOption}
	}
	out := make([]string, len(options))
	copy(out, options)
	return out
}

// DependentFields lists the field keys whose choices hang off the given
// parent field.
func (r ReferenceData) DependentFields(parentKey string) []string {
	byValue, ok := r.Contingent[parentKey]
	if !ok {
		return nil
	}
	seen := make(map[string]bool)
	var fields []string
	for _, dependents := range byValue {
		for key := range dependents {
			if !seen[key] {
				seen[key] = true
				fields = append(fields, key)
			}
		}
	}
	return fields
}

func withPlaceholder(options ...string) []string {
	return append([]string{PlaceholderOption}, options...)
}
