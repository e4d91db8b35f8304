package incidence

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/operata/feedback-portal/internal/domain"
)

func TestDiffPayloadNewKeys(t *testing.T) {
	id := int64(42)
	entries := DiffPayload(
		map[string]any{},
		map[string]any{"facility_name": "Station 9", "plume_length_m": 12.5},
		"inspector", "initial upload", &id)

	require.Len(t, entries, 2)
	byKey := make(map[string]domain.AuditEntry)
	for _, entry := range entries {
		byKey[entry.FieldKey] = entry
	}

	facility := byKey["facility_name"]
	assert.Nil(t, facility.OldValue, "first write records no prior value")
	assert.Equal(t, "Station 9", facility.NewValue)
	assert.Equal(t, "inspector", facility.Actor)
	require.NotNil(t, facility.IncidenceID)
	assert.Equal(t, int64(42), *facility.IncidenceID)

	plume := byKey["plume_length_m"]
	assert.Equal(t, "12.5", plume.NewValue)
}

func TestDiffPayloadExactlyChangedKeys(t *testing.T) {
	old := map[string]any{
		"facility_name":  "Station 9",
		"contact_name":   "R. Alvarez",
		"plume_length_m": 12.5,
	}
	incoming := map[string]any{
		"facility_name":  "Station 9", // unchanged
		"contact_name":   "M. Okafor", // changed
		"plume_length_m": 13.0,        // changed
		"contact_phone":  "555-0142",  // new
	}

	entries := DiffPayload(old, incoming, "", "", nil)
	require.Len(t, entries, 3, "exactly the differing keys are audited")

	for _, entry := range entries {
		assert.Equal(t, domain.AnonymousActor, entry.Actor)
		assert.NotEqual(t, "facility_name", entry.FieldKey)
	}
}

func TestDiffPayloadIdempotent(t *testing.T) {
	state := map[string]any{"contact_name": "M. Okafor", "ogi_survey_count": int64(3)}

	entries := DiffPayload(state, state, "", "", nil)
	assert.Empty(t, entries, "diffing a state against itself logs nothing")
}

func TestDiffPayloadStringifiedComparison(t *testing.T) {
	// int64 3 stored, float64 3 incoming: same canonical string, no entry.
	old := map[string]any{"ogi_survey_count": int64(3)}
	incoming := map[string]any{"ogi_survey_count": float64(3)}

	entries := DiffPayload(old, incoming, "", "", nil)
	assert.Empty(t, entries)
}
