package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Invoice is the sole persisted entity of the dashboard. The JSON shape is the
// wire format of the REST surface: {id, invoice, status, method, amount}.
type Invoice struct {
	ID      uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Invoice string  `gorm:"column:invoice;not null;index" json:"invoice"`
	Status  string  `gorm:"not null;index" json:"status"`
	Method  string  `gorm:"not null;index" json:"method"`
	Amount  float64 `gorm:"not null" json:"amount"`
	// SearchKey is the lower-cased label that search matches against.
	SearchKey string    `gorm:"column:invoice_search;not null;default:'';index" json:"-"`
	CreatedAt time.Time `json:"-"`
}

// BeforeSave keeps SearchKey in step with the label.
func (i *Invoice) BeforeSave(tx *gorm.DB) error {
	i.SearchKey = FoldLabel(i.Invoice)
	return nil
}

// FoldLabel is the case folding applied to labels and search terms.
func FoldLabel(s string) string {
	return strings.ToLower(s)
}

// Values the dashboard offers in its pickers. Storage accepts any text.
var (
	InvoiceStatuses = []string{"Paid", "Unpaid", "Pending"}
	PaymentMethods  = []string{"Credit Card", "PayPal", "Bank Transfer"}
)
