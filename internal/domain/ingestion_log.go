package domain

import (
	"time"

	"github.com/google/uuid"
)

// IngestionLogEntry captures upload-level failures for later operator review.
type IngestionLogEntry struct {
	ID           uuid.UUID `json:"id"`
	FileName     string    `json:"file_name"`
	TabName      string    `json:"tab_name,omitempty"`
	ErrorMessage string    `json:"error_message"`
	CreatedAt    time.Time `json:"created_at"`
}
