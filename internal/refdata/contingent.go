package refdata

// Recompute resolves the legal choice lists of every field dependent on
// parentKey for the given parent value, and resets any current selection
// that is no longer legal back to the placeholder. current is mutated in
// place so an editing session can call this repeatedly as the parent value
// changes; the function is idempotent for a fixed parent value.
func Recompute(parentKey, parentValue string, ref ReferenceData, current map[string]string) map[string][]string {
	byValue, ok := ref.Contingent[parentKey]
	if !ok {
		return nil
	}

	dependents, ok := byValue[parentValue]
	if !ok {
		// Unknown parent value (including the placeholder itself): every
		// dependent collapses to the bare placeholder list.
		dependents = make(map[string][]string, len(ref.DependentFields(parentKey)))
		for _, key := range ref.DependentFields(parentKey) {
			dependents[key] = []string{PlaceholderOption}
		}
	}

	result := make(map[string][]string, len(dependents))
	for fieldKey, legal := range dependents {
		choices := make([]string, len(legal))
		copy(choices, legal)
		result[fieldKey] = choices

		if current == nil {
			continue
		}
		selected, has := current[fieldKey]
		if !has {
			continue
		}
		if !contains(choices, selected) {
			current[fieldKey] = PlaceholderOption
		}
	}
	return result
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
