// Package spreadsheet reads uploaded invoice workbooks into raw rows.
package spreadsheet

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"invoice-dashboard-backend/internal/services/invoices"

	"github.com/xuri/excelize/v2"
)

var (
	// ErrUnsupportedType is returned for files that are not .xlsx or .xls.
	ErrUnsupportedType = errors.New("unsupported file type, expected .xlsx or .xls")
	// ErrUnreadable is returned when the workbook cannot be opened or has no sheet.
	ErrUnreadable = errors.New("cannot read spreadsheet")
)

// CheckExtension accepts the spreadsheet extensions the dashboard offers.
func CheckExtension(filename string) error {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xls":
		return nil
	default:
		return ErrUnsupportedType
	}
}

// ReadRows parses the first sheet of a workbook. The first row supplies the
// field names; every following non-blank row becomes one RawRow keyed by them.
// Blank cells are left out of the row, as are columns with a blank header.
func ReadRows(r io.Reader) ([]invoices.RawRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("%w: workbook has no sheets", ErrUnreadable)
	}

	records, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	if len(records) == 0 {
		return []invoices.RawRow{}, nil
	}

	header := make([]string, len(records[0]))
	for i, name := range records[0] {
		header[i] = strings.TrimSpace(name)
	}

	rows := make([]invoices.RawRow, 0, len(records)-1)
	for _, record := range records[1:] {
		row := invoices.RawRow{}
		for i, cell := range record {
			if i >= len(header) || header[i] == "" || strings.TrimSpace(cell) == "" {
				continue
			}
			row[header[i]] = cell
		}
		if len(row) == 0 {
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}
