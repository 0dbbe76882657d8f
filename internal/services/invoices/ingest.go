package invoices

import (
	"context"
	"fmt"
	"log"
	"math"

	"invoice-dashboard-backend/internal/models"

	"github.com/shopspring/decimal"
)

// SkippedRow pairs a rejected input row with the reason it was rejected.
type SkippedRow struct {
	Row    RawRow `json:"row"`
	Reason string `json:"reason"`
}

// IngestResult is the outcome of a bulk create. Created and Skipped keep input order.
type IngestResult struct {
	Created []models.Invoice
	Skipped []SkippedRow
}

func (r *IngestResult) CreatedCount() int { return len(r.Created) }
func (r *IngestResult) SkippedCount() int { return len(r.Skipped) }

// Message is the human-readable summary returned to clients.
func (r *IngestResult) Message() string {
	return fmt.Sprintf("Upload complete: %d saved, %d skipped.", r.CreatedCount(), r.SkippedCount())
}

// Ingest validates and persists rows one at a time. A row that fails
// validation or insertion is reported in Skipped and never affects the others.
func (s *InvoiceService) Ingest(ctx context.Context, rows []RawRow) (*IngestResult, error) {
	if len(rows) == 0 {
		return nil, ErrNoInvoiceData
	}
	log.Printf("Processing %d invoices", len(rows))

	result := &IngestResult{
		Created: make([]models.Invoice, 0, len(rows)),
		Skipped: []SkippedRow{},
	}

	for i, row := range rows {
		invoice, reason := normalizeRow(row)
		if reason != "" {
			log.Printf("Skipping row %d: %s", i+1, reason)
			result.Skipped = append(result.Skipped, SkippedRow{Row: row, Reason: reason})
			continue
		}

		if err := s.store.Create(ctx, invoice); err != nil {
			log.Printf("Skipping row %d: error saving invoice %q: %v", i+1, invoice.Invoice, err)
			result.Skipped = append(result.Skipped, SkippedRow{Row: row, Reason: err.Error()})
			continue
		}

		result.Created = append(result.Created, *invoice)
	}

	log.Println(result.Message())
	return result, nil
}

// normalizeRow maps a raw row onto an unsaved invoice, or returns the skip reason.
func normalizeRow(row RawRow) (*models.Invoice, string) {
	number, okNumber := row.lookup(fieldInvoice)
	status, okStatus := row.lookup(fieldStatus)
	method, okMethod := row.lookup(fieldMethod)
	amountRaw, okAmount := row.lookup(fieldAmount)
	if !okNumber || !okStatus || !okMethod || !okAmount {
		return nil, ReasonMissingFields
	}

	amount, ok := parseAmount(amountRaw)
	if !ok {
		return nil, ReasonInvalidAmount
	}

	return &models.Invoice{
		Invoice: number,
		Status:  status,
		Method:  method,
		Amount:  amount,
	}, ""
}

// parseAmount accepts a finite decimal strictly greater than zero.
func parseAmount(raw string) (float64, bool) {
	d, err := decimal.NewFromString(raw)
	if err != nil || !d.IsPositive() {
		return 0, false
	}
	amount := d.InexactFloat64()
	if math.IsInf(amount, 0) || amount <= 0 {
		return 0, false
	}
	return amount, true
}
