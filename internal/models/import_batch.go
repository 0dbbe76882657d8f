package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const ImportStatusCompleted = "completed"

// ImportBatch records one spreadsheet upload and the rows it skipped.
type ImportBatch struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Filename     string         `json:"filename"`
	TotalRows    int            `json:"totalRows"`
	CreatedCount int            `json:"createdCount"`
	SkippedCount int            `json:"skippedCount"`
	SkippedRows  datatypes.JSON `json:"skippedRows"`
	Status       string         `gorm:"index" json:"status"`
	StartedAt    time.Time      `json:"startedAt"`
	CompletedAt  *time.Time     `json:"completedAt,omitempty"`
	CreatedAt    time.Time      `json:"createdAt"`
}
