package invoices

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"invoice-dashboard-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// RecordImport stores a summary of a finished spreadsheet import.
func (s *InvoiceService) RecordImport(ctx context.Context, filename string, startedAt time.Time, result *IngestResult) (*models.ImportBatch, error) {
	skipped, err := json.Marshal(result.Skipped)
	if err != nil {
		return nil, fmt.Errorf("encode skipped rows: %w", err)
	}

	completedAt := time.Now()
	batch := &models.ImportBatch{
		ID:           uuid.New(),
		Filename:     filename,
		TotalRows:    result.CreatedCount() + result.SkippedCount(),
		CreatedCount: result.CreatedCount(),
		SkippedCount: result.SkippedCount(),
		SkippedRows:  datatypes.JSON(skipped),
		Status:       models.ImportStatusCompleted,
		StartedAt:    startedAt,
		CompletedAt:  &completedAt,
	}
	if err := s.batches.Create(ctx, batch); err != nil {
		return nil, fmt.Errorf("record import batch: %w", err)
	}
	return batch, nil
}
