package invoices

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// RawRow is one loosely-typed input row, from a JSON payload or a spreadsheet.
type RawRow map[string]any

type field int

const (
	fieldInvoice field = iota
	fieldStatus
	fieldMethod
	fieldAmount
)

// fieldAliases maps each logical field to its spreadsheet header and its wire key.
var fieldAliases = [...]struct {
	friendly  string
	canonical string
}{
	fieldInvoice: {friendly: "InvoiceNumber", canonical: "invoice"},
	fieldStatus:  {friendly: "Status", canonical: "status"},
	fieldMethod:  {friendly: "Method", canonical: "method"},
	fieldAmount:  {friendly: "Amount", canonical: "amount"},
}

// lookup resolves a logical field. A present canonical key wins over the
// friendly one; empty values count as absent.
func (r RawRow) lookup(f field) (string, bool) {
	alias := fieldAliases[f]
	if v, ok := cellString(r[alias.canonical]); ok {
		return v, true
	}
	return cellString(r[alias.friendly])
}

func cellString(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		s := strings.TrimSpace(t)
		return s, s != ""
	case json.Number:
		return t.String(), true
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return "", false
		}
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case float32:
		return cellString(float64(t))
	case int:
		return strconv.Itoa(t), true
	case int64:
		return strconv.FormatInt(t, 10), true
	default:
		return "", false
	}
}
