// Package export turns the filtered invoice listing into a downloadable
// single-sheet workbook.
package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"math/big"
	"strings"
	"time"

	"invoice-dashboard-backend/internal/models"
	"invoice-dashboard-backend/internal/services/invoices"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// PageSize approximates "every matching invoice". Matches beyond it are not
// exported; Workbook.Truncated reports when that happened.
const PageSize = invoices.MaxPageSize

const SheetName = "Invoices"

// ErrNothingToExport is returned when the filter matches no invoices.
var ErrNothingToExport = errors.New("no invoices to export")

// Columns is the header row of the exported sheet.
var Columns = []string{"Invoice", "Status", "Method", "Amount"}

// Lister is the listing the assembler reads from: the service in-process, or
// the HTTP client from the CLI.
type Lister interface {
	List(ctx context.Context, params invoices.ListParams) (*invoices.ListResult, error)
}

// Filter is the listing filter without pagination.
type Filter struct {
	Search string
	Status string
	Method string
}

// Row is one exported invoice, already formatted for display.
type Row struct {
	Invoice string
	Status  string
	Method  string
	Amount  string
}

type Assembler struct {
	lister   Lister
	currency string
	now      func() time.Time
}

func NewAssembler(lister Lister, currency string) *Assembler {
	return &Assembler{
		lister:   lister,
		currency: currency,
		now:      time.Now,
	}
}

// Workbook is an assembled export ready to be written out.
type Workbook struct {
	Filename string
	Rows     []Row
	// Total is the number of matching invoices; it exceeds len(Rows) only
	// when the PageSize ceiling truncated the export.
	Total     int64
	Truncated bool
}

// Build fetches every matching invoice (up to PageSize) and reshapes it.
func (a *Assembler) Build(ctx context.Context, filter Filter) (*Workbook, error) {
	result, err := a.lister.List(ctx, invoices.ListParams{
		Page:     1,
		PageSize: PageSize,
		Search:   filter.Search,
		Status:   filter.Status,
		Method:   filter.Method,
	})
	if err != nil {
		return nil, fmt.Errorf("fetch invoices for export: %w", err)
	}
	if len(result.Invoices) == 0 {
		return nil, ErrNothingToExport
	}

	return &Workbook{
		Filename:  Filename(a.now()),
		Rows:      Reshape(result.Invoices, a.currency),
		Total:     result.Total,
		Truncated: result.Total > int64(len(result.Invoices)),
	}, nil
}

// Reshape flattens invoices into display rows.
func Reshape(list []models.Invoice, currency string) []Row {
	rows := make([]Row, 0, len(list))
	for _, inv := range list {
		rows = append(rows, Row{
			Invoice: inv.Invoice,
			Status:  inv.Status,
			Method:  inv.Method,
			Amount:  FormatAmount(currency, inv.Amount),
		})
	}
	return rows
}

// FormatAmount renders an amount as "<currency> 1234.50". Rounding works on
// the exact binary value of amount, half away from zero, so 1.005 (stored as
// 1.00499...) becomes "1.00".
func FormatAmount(currency string, amount float64) string {
	fixed := exactDecimal(amount).StringFixed(2)
	if currency == "" {
		return fixed
	}
	return currency + " " + fixed
}

// exactDecimal expands a float64 to enough decimal places that rounding to
// cents cannot be pushed across a half-cent boundary.
func exactDecimal(f float64) decimal.Decimal {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(new(big.Float).SetFloat64(f).Text('f', 40))
	if err != nil {
		return decimal.NewFromFloat(f)
	}
	return d
}

// Filename is "invoices-<timestamp>.xlsx" with the UTC ISO timestamp cut to
// seconds and its ':' and 'T' replaced by '-'.
func Filename(t time.Time) string {
	stamp := t.UTC().Format("2006-01-02T15:04:05")
	stamp = strings.NewReplacer(":", "-", "T", "-").Replace(stamp)
	return "invoices-" + stamp + ".xlsx"
}

// WriteTo serializes the workbook as xlsx.
func (wb *Workbook) WriteTo(w io.Writer) (int64, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return 0, fmt.Errorf("rename sheet: %w", err)
	}

	sw, err := f.NewStreamWriter(SheetName)
	if err != nil {
		return 0, fmt.Errorf("open stream writer: %w", err)
	}

	if err := sw.SetColWidth(1, 1, 20); err != nil {
		return 0, err
	}
	if err := sw.SetColWidth(2, 4, 16); err != nil {
		return 0, err
	}

	header := make([]any, len(Columns))
	for i, c := range Columns {
		header[i] = c
	}
	if err := sw.SetRow("A1", header); err != nil {
		return 0, err
	}

	for i, r := range wb.Rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := sw.SetRow(cell, []any{r.Invoice, r.Status, r.Method, r.Amount}); err != nil {
			return 0, err
		}
	}

	if err := sw.Flush(); err != nil {
		return 0, fmt.Errorf("flush sheet: %w", err)
	}

	return f.WriteTo(w)
}
