package invoices

import (
	"context"
	"fmt"

	"invoice-dashboard-backend/internal/models"
	"invoice-dashboard-backend/internal/repository"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 5
	// MaxPageSize is also the export ceiling: a listing never returns more rows.
	MaxPageSize = 10000
)

// ListParams selects one page of the filtered listing. Zero Page or PageSize
// means the default.
type ListParams struct {
	Page     int
	PageSize int
	Search   string
	Status   string
	Method   string
}

// ListResult is a page of invoices plus the count of all matching invoices.
type ListResult struct {
	Invoices []models.Invoice `json:"invoices"`
	Total    int64            `json:"total"`
}

func (p ListParams) withDefaults() (ListParams, error) {
	if p.Page == 0 {
		p.Page = DefaultPage
	}
	if p.PageSize == 0 {
		p.PageSize = DefaultPageSize
	}
	if p.Page < 1 {
		return p, fmt.Errorf("%w: page must be greater than 0", ErrInvalidListParams)
	}
	if p.PageSize < 1 || p.PageSize > MaxPageSize {
		return p, fmt.Errorf("%w: pageSize must be between 1 and %d", ErrInvalidListParams, MaxPageSize)
	}
	return p, nil
}

func (p ListParams) filter() repository.InvoiceFilter {
	return repository.InvoiceFilter{
		Search: p.Search,
		Status: p.Status,
		Method: p.Method,
	}
}

// List counts the matching invoices and then fetches the requested page,
// newest first. The count and the fetch are separate reads, so an insert
// landing between them can make Total disagree with the page by a row or so.
func (s *InvoiceService) List(ctx context.Context, params ListParams) (*ListResult, error) {
	params, err := params.withDefaults()
	if err != nil {
		return nil, err
	}
	filter := params.filter()

	total, err := s.store.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count invoices: %w", err)
	}

	invoices, err := s.store.Find(ctx, filter, (params.Page-1)*params.PageSize, params.PageSize)
	if err != nil {
		return nil, fmt.Errorf("find invoices: %w", err)
	}

	return &ListResult{Invoices: invoices, Total: total}, nil
}
