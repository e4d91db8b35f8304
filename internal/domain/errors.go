package domain

import "errors"

// Fatal ingestion conditions. These abort the whole upload and propagate to
// the caller; per-field problems never surface as errors (they degrade into
// the diagnostic report instead).
var (
	// ErrSchemaNotFound is returned when a spreadsheet declares an unknown
	// schema version.
	ErrSchemaNotFound = errors.New("schema version not found")

	// ErrMissingTab is returned when a required worksheet is absent from the
	// uploaded document.
	ErrMissingTab = errors.New("required tab missing from document")

	// ErrMissingSector is returned when document metadata carries no sector.
	ErrMissingSector = errors.New("document metadata missing sector")

	// ErrEmptyPayload is returned when an upsert is attempted with no keys.
	// Upstream components never produce an empty payload, so this is a
	// programmer error rather than a user error.
	ErrEmptyPayload = errors.New("empty payload")

	// ErrUnknownSector is returned when neither the foreign-key join nor the
	// embedded JSON field yields a sector.
	ErrUnknownSector = errors.New("sector could not be resolved from any source")

	// ErrUnknownSectorType is returned when a resolved sector name is not in
	// either recognized sector list.
	ErrUnknownSectorType = errors.New("sector name has no known sector type")

	// ErrRecordNotFound is returned by repositories when a primary key does
	// not exist.
	ErrRecordNotFound = errors.New("record not found")

	// ErrUnsupportedFormat is returned when an uploaded file is not an xlsx
	// workbook.
	ErrUnsupportedFormat = errors.New("unsupported file format")
)
