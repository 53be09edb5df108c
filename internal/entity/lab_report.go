package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/bloodwork-analyzer/constants"
)

// LabReport represents one ingested blood-test document for data transfer
// between layers.
type LabReport struct {
	ID          uuid.UUID              `json:"id"`
	SourcePath  string                 `json:"source_path"`
	Filename    string                 `json:"filename"`
	ContentHash []byte                 `json:"content_hash"`
	RawText     string                 `json:"raw_text,omitempty"`
	Status      constants.ReportStatus `json:"status"`
	TextQuality *string                `json:"text_quality,omitempty"`
	Diagnosis   *string                `json:"diagnosis,omitempty"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
}
