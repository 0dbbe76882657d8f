// Package testutil provides an in-memory store for tests.
package testutil

import (
	"testing"

	"invoice-dashboard-backend/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens a private in-memory SQLite database with the schema migrated.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// Every connection to :memory: is a separate database.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&models.Invoice{}, &models.ImportBatch{}))
	return db
}

// SeedInvoices inserts n invoices labelled INV-001.. in ID order and returns them.
func SeedInvoices(t testing.TB, db *gorm.DB, n int, status, method string) []models.Invoice {
	t.Helper()

	out := make([]models.Invoice, 0, n)
	for i := 1; i <= n; i++ {
		inv := models.Invoice{
			Invoice: invoiceLabel(i),
			Status:  status,
			Method:  method,
			Amount:  float64(i) * 10,
		}
		require.NoError(t, db.Create(&inv).Error)
		out = append(out, inv)
	}
	return out
}

func invoiceLabel(i int) string {
	const digits = "0123456789"
	return "INV-" + string([]byte{digits[i/100%10], digits[i/10%10], digits[i%10]})
}
