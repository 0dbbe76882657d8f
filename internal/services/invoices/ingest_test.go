package invoices

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"invoice-dashboard-backend/internal/models"
	"invoice-dashboard-backend/internal/repository"
	"invoice-dashboard-backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDBService(t *testing.T) *InvoiceService {
	t.Helper()
	db := testutil.NewDB(t)
	return NewInvoiceService(repository.NewInvoiceRepository(db), repository.NewImportBatchRepository(db))
}

// failingStore rejects inserts of one invoice label and stores the rest in memory.
type failingStore struct {
	rejectLabel string
	created     []models.Invoice
}

func (s *failingStore) Create(_ context.Context, inv *models.Invoice) error {
	if inv.Invoice == s.rejectLabel {
		return errors.New("duplicate key value violates unique constraint")
	}
	inv.ID = uint(len(s.created) + 1)
	s.created = append(s.created, *inv)
	return nil
}

func (s *failingStore) Count(context.Context, repository.InvoiceFilter) (int64, error) {
	return int64(len(s.created)), nil
}

func (s *failingStore) Find(context.Context, repository.InvoiceFilter, int, int) ([]models.Invoice, error) {
	return s.created, nil
}

func TestIngest_MixedBatch(t *testing.T) {
	svc := newDBService(t)

	rows := []RawRow{
		{"InvoiceNumber": "INV-001", "Status": "Paid", "Method": "PayPal", "Amount": "100"},
		{"InvoiceNumber": "INV-002", "Status": "Paid", "Method": "PayPal", "Amount": "-5"},
		{"invoice": "INV-003", "status": "Unpaid", "method": "Bank Transfer", "amount": 42.5},
	}

	result, err := svc.Ingest(context.Background(), rows)
	require.NoError(t, err)

	require.Len(t, result.Created, 2)
	require.Len(t, result.Skipped, 1)
	assert.Equal(t, ReasonInvalidAmount, result.Skipped[0].Reason)
	assert.Equal(t, rows[1], result.Skipped[0].Row)

	assert.Equal(t, "INV-001", result.Created[0].Invoice)
	assert.Equal(t, 100.0, result.Created[0].Amount)
	assert.Equal(t, "INV-003", result.Created[1].Invoice)
	assert.Equal(t, 42.5, result.Created[1].Amount)
	assert.Greater(t, result.Created[1].ID, result.Created[0].ID)
	assert.Equal(t, "Upload complete: 2 saved, 1 skipped.", result.Message())
}

func TestIngest_MissingFields(t *testing.T) {
	complete := RawRow{"invoice": "INV-1", "status": "Paid", "method": "PayPal", "amount": "10"}

	for _, key := range []string{"invoice", "status", "method", "amount"} {
		for _, variant := range []string{"absent", "empty", "blank", "nil"} {
			t.Run(key+"/"+variant, func(t *testing.T) {
				row := RawRow{}
				for k, v := range complete {
					row[k] = v
				}
				switch variant {
				case "absent":
					delete(row, key)
				case "empty":
					row[key] = ""
				case "blank":
					row[key] = "   "
				case "nil":
					row[key] = nil
				}

				result, err := newDBService(t).Ingest(context.Background(), []RawRow{row})
				require.NoError(t, err)
				assert.Empty(t, result.Created)
				require.Len(t, result.Skipped, 1)
				assert.Equal(t, ReasonMissingFields, result.Skipped[0].Reason)
			})
		}
	}
}

func TestIngest_InvalidAmount(t *testing.T) {
	for _, amount := range []any{"0", "-5", "abc", "12abc", "NaN", "Infinity", "1e400", 0.0, -3.0, json.Number("-1")} {
		row := RawRow{"invoice": "INV-1", "status": "Paid", "method": "PayPal", "amount": amount}

		result, err := newDBService(t).Ingest(context.Background(), []RawRow{row})
		require.NoError(t, err)
		assert.Empty(t, result.Created, "amount %v", amount)
		require.Len(t, result.Skipped, 1)
		assert.Equal(t, ReasonInvalidAmount, result.Skipped[0].Reason, "amount %v", amount)
	}
}

func TestIngest_AcceptedAmounts(t *testing.T) {
	for amount, want := range map[any]float64{
		"12.34":            12.34,
		" 7 ":              7,
		"1e3":              1000,
		json.Number("0.5"): 0.5,
		99.99:              99.99,
		3:                  3,
	} {
		row := RawRow{"invoice": "INV-1", "status": "Paid", "method": "PayPal", "amount": amount}

		result, err := newDBService(t).Ingest(context.Background(), []RawRow{row})
		require.NoError(t, err)
		require.Len(t, result.Created, 1, "amount %v", amount)
		assert.InDelta(t, want, result.Created[0].Amount, 1e-9)
	}
}

func TestIngest_CanonicalNameWins(t *testing.T) {
	row := RawRow{
		"InvoiceNumber": "FRIENDLY", "invoice": "CANONICAL",
		"Status": "Unpaid", "status": "Paid",
		"Method": "PayPal",
		"Amount": "1", "amount": "",
	}

	result, err := newDBService(t).Ingest(context.Background(), []RawRow{row})
	require.NoError(t, err)
	require.Len(t, result.Created, 1)

	inv := result.Created[0]
	assert.Equal(t, "CANONICAL", inv.Invoice)
	assert.Equal(t, "Paid", inv.Status)
	assert.Equal(t, "PayPal", inv.Method)
	assert.Equal(t, 1.0, inv.Amount)
}

func TestIngest_EmptyInput(t *testing.T) {
	store := &failingStore{}
	svc := NewInvoiceService(store, nil)

	_, err := svc.Ingest(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNoInvoiceData)

	_, err = svc.Ingest(context.Background(), []RawRow{})
	assert.ErrorIs(t, err, ErrNoInvoiceData)
	assert.Empty(t, store.created)
}

func TestIngest_StoreFailureIsRowScoped(t *testing.T) {
	store := &failingStore{rejectLabel: "INV-002"}
	svc := NewInvoiceService(store, nil)

	rows := []RawRow{
		{"invoice": "INV-001", "status": "Paid", "method": "PayPal", "amount": "1"},
		{"invoice": "INV-002", "status": "Paid", "method": "PayPal", "amount": "2"},
		{"invoice": "INV-003", "status": "Paid", "method": "PayPal", "amount": "3"},
	}

	result, err := svc.Ingest(context.Background(), rows)
	require.NoError(t, err)

	require.Len(t, result.Created, 2)
	assert.Equal(t, "INV-001", result.Created[0].Invoice)
	assert.Equal(t, "INV-003", result.Created[1].Invoice)
	require.Len(t, result.Skipped, 1)
	assert.Equal(t, "duplicate key value violates unique constraint", result.Skipped[0].Reason)
}

func TestIngest_CountsAddUp(t *testing.T) {
	rows := []RawRow{
		{"invoice": "A", "status": "Paid", "method": "PayPal", "amount": "1"},
		{"invoice": "B", "status": "Paid", "method": "PayPal"},
		nil,
		{"invoice": "C", "status": "Paid", "method": "PayPal", "amount": "x"},
		{"InvoiceNumber": "D", "Status": "Pending", "Method": "Credit Card", "Amount": "4"},
	}

	result, err := newDBService(t).Ingest(context.Background(), rows)
	require.NoError(t, err)
	assert.Equal(t, len(rows), result.CreatedCount()+result.SkippedCount())
	assert.Equal(t, 2, result.CreatedCount())
}

func TestIngest_NoDeduplication(t *testing.T) {
	svc := newDBService(t)
	row := RawRow{"invoice": "INV-1", "status": "Paid", "method": "PayPal", "amount": "10"}

	first, err := svc.Ingest(context.Background(), []RawRow{row})
	require.NoError(t, err)
	second, err := svc.Ingest(context.Background(), []RawRow{row})
	require.NoError(t, err)

	require.Len(t, first.Created, 1)
	require.Len(t, second.Created, 1)
	assert.NotEqual(t, first.Created[0].ID, second.Created[0].ID)
}
