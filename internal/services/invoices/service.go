package invoices

import (
	"context"

	"invoice-dashboard-backend/internal/models"
	"invoice-dashboard-backend/internal/repository"
)

// Store is the persistence the service needs. *repository.InvoiceRepository
// satisfies it.
type Store interface {
	Create(ctx context.Context, invoice *models.Invoice) error
	Count(ctx context.Context, filter repository.InvoiceFilter) (int64, error)
	Find(ctx context.Context, filter repository.InvoiceFilter, offset, limit int) ([]models.Invoice, error)
}

// BatchStore records spreadsheet imports.
type BatchStore interface {
	Create(ctx context.Context, batch *models.ImportBatch) error
}

type InvoiceService struct {
	store   Store
	batches BatchStore
}

func NewInvoiceService(store Store, batches BatchStore) *InvoiceService {
	return &InvoiceService{
		store:   store,
		batches: batches,
	}
}
