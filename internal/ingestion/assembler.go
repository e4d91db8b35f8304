package ingestion

import (
	"fmt"

	"github.com/operata/feedback-portal/internal/domain"
	"github.com/operata/feedback-portal/internal/spreadsheet"
)

// Assemble merges the coerced field values of one tab with document-level
// metadata into a single canonical payload. A document without a sector or
// without the requested tab is rejected outright; those are fatal for the
// whole ingestion, unlike per-field coercion failures which degrade to an
// omitted key. The sector lands in the payload under the reserved "sector"
// key so downstream consumers never need the original document again.
func Assemble(doc Document, tab string, sv domain.SchemaVersion) (map[string]any, string, error) {
	sector := doc.sectorOf()
	if sector == "" {
		return nil, "", domain.ErrMissingSector
	}

	contents, ok := doc.TabContents[tab]
	if !ok {
		return nil, "", fmt.Errorf("%w: %q", domain.ErrMissingTab, tab)
	}

	payload := make(map[string]any, sv.Len()+1)
	for _, field := range sv.Fields() {
		raw, present := contents[field.Key]
		if !present {
			continue
		}
		coerced, _ := spreadsheet.Coerce(raw, field.Type)
		if coerced == nil {
			continue
		}
		payload[field.Key] = coerced
	}
	payload[domain.SectorKey] = sector

	return payload, sector, nil
}
