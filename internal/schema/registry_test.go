package schema

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/operata/feedback-portal/internal/domain"
)

func TestRegistryGet(t *testing.T) {
	registry := NewRegistry()

	sv, err := registry.Get("v070")
	require.NoError(t, err)
	assert.Equal(t, "v070", sv.ID)
	assert.Equal(t, 13, sv.Len())

	field, ok := sv.FieldByKey("estimated_flow_rate")
	require.True(t, ok)
	assert.Equal(t, domain.FieldTypeDecimal, field.Type)
	assert.Equal(t, "B12", field.ValueCell)
}

func TestRegistryUnknownVersion(t *testing.T) {
	registry := NewRegistry()

	_, err := registry.Get("v999")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrSchemaNotFound))
}

func TestV071Revision(t *testing.T) {
	registry := NewRegistry()

	sv, err := registry.Get("v071")
	require.NoError(t, err)
	assert.Equal(t, 14, sv.Len())

	notes, ok := sv.FieldByKey("mitigation_notes")
	require.True(t, ok)
	assert.Equal(t, "C15", notes.ValueCell)

	repair, ok := sv.FieldByKey("repair_timestamp")
	require.True(t, ok)
	assert.Equal(t, domain.FieldTypeDateTime, repair.Type)
}

func TestVersionsAreIsolated(t *testing.T) {
	registry := NewRegistry()

	sv, err := registry.Get("v070")
	require.NoError(t, err)

	fields := sv.Fields()
	fields[0].Key = "mutated"

	again, err := registry.Get("v070")
	require.NoError(t, err)
	_, ok := again.FieldByKey("id_incidence")
	assert.True(t, ok, "published versions must not observe caller mutation")
}
