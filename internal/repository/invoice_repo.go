package repository

import (
	"context"
	"strings"

	"invoice-dashboard-backend/internal/models"

	"gorm.io/gorm"
)

// InvoiceFilter narrows a listing. Empty fields do not constrain the result.
type InvoiceFilter struct {
	Search string
	Status string
	Method string
}

type InvoiceRepository struct {
	db *gorm.DB
}

func NewInvoiceRepository(db *gorm.DB) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

// Create inserts a new invoice; the store assigns the ID.
func (r *InvoiceRepository) Create(ctx context.Context, invoice *models.Invoice) error {
	return r.db.WithContext(ctx).Create(invoice).Error
}

// GetByID returns gorm.ErrRecordNotFound when the invoice does not exist.
func (r *InvoiceRepository) GetByID(ctx context.Context, id uint) (*models.Invoice, error) {
	var invoice models.Invoice
	err := r.db.WithContext(ctx).First(&invoice, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

// Count returns how many invoices match the filter, ignoring pagination.
func (r *InvoiceRepository) Count(ctx context.Context, filter InvoiceFilter) (int64, error) {
	var total int64
	err := r.filtered(ctx, filter).Count(&total).Error
	return total, err
}

// Find returns up to limit invoices matching the filter, newest first.
func (r *InvoiceRepository) Find(ctx context.Context, filter InvoiceFilter, offset, limit int) ([]models.Invoice, error) {
	invoices := []models.Invoice{}
	err := r.filtered(ctx, filter).
		Order("id DESC").
		Offset(offset).
		Limit(limit).
		Find(&invoices).Error
	return invoices, err
}

func (r *InvoiceRepository) filtered(ctx context.Context, filter InvoiceFilter) *gorm.DB {
	dbQuery := r.db.WithContext(ctx).Model(&models.Invoice{})

	if filter.Search != "" {
		dbQuery = dbQuery.Where(`invoice_search LIKE ? ESCAPE '\'`, "%"+escapeLike(models.FoldLabel(filter.Search))+"%")
	}
	if filter.Status != "" {
		dbQuery = dbQuery.Where("status = ?", filter.Status)
	}
	if filter.Method != "" {
		dbQuery = dbQuery.Where("method = ?", filter.Method)
	}
	return dbQuery
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes the search term match literally inside a LIKE pattern.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
