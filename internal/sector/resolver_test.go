package sector

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/operata/feedback-portal/internal/domain"
	"github.com/operata/feedback-portal/internal/repository"
)

func strPtr(s string) *string { return &s }

func TestResolveConflictPrefersEmbedded(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	resolver := NewResolver(PreferEmbedded{}, zap.New(core))

	sector, sectorType, err := resolver.Resolve(strPtr("Oil & Gas"), "Landfill")
	require.NoError(t, err, "a conflict must not abort processing")
	assert.Equal(t, "Landfill", sector)
	assert.Equal(t, domain.SectorTypeLandfill, sectorType)

	require.Equal(t, 1, logs.Len(), "the disagreement must be logged")
	entry := logs.All()[0]
	assert.Equal(t, "sector sources disagree", entry.Message)
}

func TestResolveConflictPolicySwappable(t *testing.T) {
	resolver := NewResolver(PreferForeignKey{}, zap.NewNop())

	sector, sectorType, err := resolver.Resolve(strPtr("Oil & Gas"), "Landfill")
	require.NoError(t, err)
	assert.Equal(t, "Oil & Gas", sector)
	assert.Equal(t, domain.SectorTypeOilGas, sectorType)
}

func TestResolveSingleSource(t *testing.T) {
	resolver := NewResolver(nil, nil)

	sector, _, err := resolver.Resolve(strPtr("Refining"), nil)
	require.NoError(t, err)
	assert.Equal(t, "Refining", sector)

	sector, _, err = resolver.Resolve(nil, "Composting")
	require.NoError(t, err)
	assert.Equal(t, "Composting", sector)
}

func TestResolveAgreementDoesNotLog(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	resolver := NewResolver(PreferEmbedded{}, zap.New(core))

	_, _, err := resolver.Resolve(strPtr("Landfill"), "Landfill")
	require.NoError(t, err)
	assert.Zero(t, logs.Len())
}

func TestResolveNoSourceIsFatal(t *testing.T) {
	resolver := NewResolver(nil, nil)

	_, _, err := resolver.Resolve(nil, "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnknownSector))
}

func TestResolveUnknownSectorName(t *testing.T) {
	resolver := NewResolver(nil, nil)

	_, _, err := resolver.Resolve(nil, "Agriculture")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnknownSectorType))
}

func TestResolveRecordJoinsSourceTable(t *testing.T) {
	store := repository.NewMemoryStore()
	store.AddSource(domain.Source{ID: 7, Name: "Kettleman Hills", Sector: "Landfill"})

	sourceID := int64(7)
	record := domain.NewIncidenceRecord(1001, map[string]any{domain.SectorKey: "Landfill"}).
		WithSourceID(&sourceID)

	resolver := NewResolver(PreferEmbedded{}, zap.NewNop())
	sector, sectorType, err := resolver.ResolveRecord(context.Background(), store.Sources(), record)
	require.NoError(t, err)
	assert.Equal(t, "Landfill", sector)
	assert.Equal(t, domain.SectorTypeLandfill, sectorType)
}

func TestResolveRecordConflict(t *testing.T) {
	store := repository.NewMemoryStore()
	store.AddSource(domain.Source{ID: 7, Name: "Elk Hills", Sector: "Oil & Gas"})

	sourceID := int64(7)
	record := domain.NewIncidenceRecord(1001, map[string]any{domain.SectorKey: "Landfill"}).
		WithSourceID(&sourceID)

	core, logs := observer.New(zap.ErrorLevel)
	resolver := NewResolver(PreferEmbedded{}, zap.New(core))

	sector, _, err := resolver.ResolveRecord(context.Background(), store.Sources(), record)
	require.NoError(t, err)
	assert.Equal(t, "Landfill", sector, "embedded value wins under the default policy")
	assert.Equal(t, 1, logs.Len())
}

func TestResolveRecordDanglingSource(t *testing.T) {
	store := repository.NewMemoryStore()

	sourceID := int64(404)
	record := domain.NewIncidenceRecord(1001, map[string]any{domain.SectorKey: "Refining"}).
		WithSourceID(&sourceID)

	resolver := NewResolver(nil, nil)
	sector, _, err := resolver.ResolveRecord(context.Background(), store.Sources(), record)
	require.NoError(t, err, "a dangling source reference degrades to the embedded value")
	assert.Equal(t, "Refining", sector)
}
