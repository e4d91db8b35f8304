package refdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecomputeResetsIllegalSelection(t *testing.T) {
	ref := Default()
	current := map[string]string{"emission_cause": "Cover Integrity"}

	choices := Recompute("emission_type", "Venting", ref, current)

	require.Contains(t, choices, "emission_cause")
	assert.Contains(t, choices["emission_cause"], "Planned Maintenance")
	assert.NotContains(t, choices["emission_cause"], "Cover Integrity")
	assert.Equal(t, PlaceholderOption, current["emission_cause"])
}

func TestRecomputeKeepsLegalSelection(t *testing.T) {
	ref := Default()
	current := map[string]string{"emission_cause": "Equipment Failure"}

	Recompute("emission_type", "Fugitive Leak", ref, current)

	assert.Equal(t, "Equipment Failure", current["emission_cause"])
}

func TestRecomputeIdempotent(t *testing.T) {
	ref := Default()
	current := map[string]string{"emission_cause": "Pilot Out"}

	first := Recompute("emission_type", "Surface Emission", ref, current)
	second := Recompute("emission_type", "Surface Emission", ref, current)

	assert.Equal(t, first, second)
	assert.Equal(t, PlaceholderOption, current["emission_cause"])
}

func TestRecomputeUnknownParentValue(t *testing.T) {
	ref := Default()
	current := map[string]string{"emission_cause": "Unknown"}

	choices := Recompute("emission_type", PlaceholderOption, ref, current)

	require.Contains(t, choices, "emission_cause")
	assert.Equal(t, []string{PlaceholderOption}, choices["emission_cause"])
	assert.Equal(t, PlaceholderOption, current["emission_cause"])
}

func TestRecomputeUnknownParentKey(t *testing.T) {
	ref := Default()
	assert.Nil(t, Recompute("no_such_field", "x", ref, nil))
}

func TestOptionsForAlwaysPlaceholderFirst(t *testing.T) {
	ref := Default()

	for _, key := range []string{"emission_type", "emission_cause", "not_declared"} {
		options := ref.OptionsFor(key)
		require.NotEmpty(t, options, "field %s", key)
		assert.Equal(t, PlaceholderOption, options[0], "field %s", key)
	}
}
