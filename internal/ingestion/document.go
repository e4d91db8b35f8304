package ingestion

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/operata/feedback-portal/internal/domain"
	"github.com/operata/feedback-portal/internal/schema"
	"github.com/operata/feedback-portal/internal/spreadsheet"
)

// MetaTab is the hidden worksheet carrying document-level metadata on
// published templates.
const MetaTab = "_meta"

// DefaultTab is the worksheet operators fill in.
const DefaultTab = "Feedback Form"

// Document is the canonical in-memory form of one uploaded workbook:
// document-level metadata, the schema version declared per tab, and the raw
// label/value cells read for every declared field.
type Document struct {
	Metadata    map[string]string            `json:"metadata"`
	Schemas     map[string]string            `json:"schemas"`
	TabContents map[string]map[string]any    `json:"tab_contents"`
	TabLabels   map[string]map[string]string `json:"tab_labels"`
}

// ParseWorkbook reads an xlsx upload into a Document. The _meta sheet names
// the schema version and sector (rows "schema_version" / "sector" / "tab" in
// column A with values in column B); explicit overrides win over the sheet.
// Per-field cells are read independently for label and value so diagnostics
// can tell a moved label apart from a missing value; an absent data tab
// simply yields no tab_contents entry and is diagnosed later by the
// assembler, not here.
func ParseWorkbook(data []byte, registry *schema.Registry, overrides map[string]string) (Document, error) {
	wb, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return Document{}, fmt.Errorf("failed to open xlsx: %w", err)
	}
	defer func() { _ = wb.Close() }()

	doc := Document{
		Metadata:    map[string]string{},
		Schemas:     map[string]string{},
		TabContents: map[string]map[string]any{},
		TabLabels:   map[string]map[string]string{},
	}

	meta := readMetaTab(wb)
	for key, value := range meta {
		doc.Metadata[key] = value
	}
	for key, value := range overrides {
		if strings.TrimSpace(value) != "" {
			doc.Metadata[key] = value
		}
	}

	tab := doc.Metadata["tab"]
	if tab == "" {
		tab = DefaultTab
	}
	delete(doc.Metadata, "tab")

	version := doc.Metadata["schema_version"]
	delete(doc.Metadata, "schema_version")
	doc.Schemas[tab] = version

	sv, err := registry.Get(version)
	if err != nil {
		return Document{}, err
	}

	if !spreadsheet.HasTab(wb, tab) {
		return doc, nil
	}

	contents := make(map[string]any, sv.Len())
	labels := make(map[string]string, sv.Len())
	for _, field := range sv.Fields() {
		if label := spreadsheet.ReadCell(wb, tab, field.LabelCell); label != nil {
			labels[field.Key] = *label
		}
		if value := spreadsheet.ReadCell(wb, tab, field.ValueCell); value != nil {
			contents[field.Key] = *value
		}
	}
	doc.TabContents[tab] = contents
	doc.TabLabels[tab] = labels

	return doc, nil
}

// Tab returns the single data tab this document declares.
func (d Document) Tab() string {
	for tab := range d.Schemas {
		return tab
	}
	return DefaultTab
}

// SchemaVersion returns the schema version declared for a tab.
func (d Document) SchemaVersion(tab string) string {
	return d.Schemas[tab]
}

func readMetaTab(wb *excelize.File) map[string]string {
	meta := make(map[string]string)
	if !spreadsheet.HasTab(wb, MetaTab) {
		return meta
	}
	rows, err := wb.GetRows(MetaTab)
	if err != nil {
		return meta
	}
	for _, row := range rows {
		if len(row) < 2 {
			continue
		}
		key := strings.TrimSpace(row[0])
		value := strings.TrimSpace(row[1])
		if key != "" && value != "" {
			meta[strings.ToLower(key)] = value
		}
	}
	return meta
}

// sectorOf pulls the document sector, empty when absent.
func (d Document) sectorOf() string {
	return strings.TrimSpace(d.Metadata[domain.SectorKey])
}
