package invoices

import (
	"context"
	"testing"

	"invoice-dashboard-backend/internal/repository"
	"invoice-dashboard-backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestList_SecondPageOfTwelve(t *testing.T) {
	db := testutil.NewDB(t)
	seeded := testutil.SeedInvoices(t, db, 12, "Paid", "PayPal")
	svc := NewInvoiceService(repository.NewInvoiceRepository(db), nil)

	result, err := svc.List(context.Background(), ListParams{Page: 2, PageSize: 5})
	require.NoError(t, err)

	assert.EqualValues(t, 12, result.Total)
	require.Len(t, result.Invoices, 5)
	wantIDs := []uint{seeded[6].ID, seeded[5].ID, seeded[4].ID, seeded[3].ID, seeded[2].ID}
	for i, inv := range result.Invoices {
		assert.Equal(t, wantIDs[i], inv.ID)
	}
}

func TestList_Defaults(t *testing.T) {
	db := testutil.NewDB(t)
	testutil.SeedInvoices(t, db, 8, "Paid", "PayPal")
	svc := NewInvoiceService(repository.NewInvoiceRepository(db), nil)

	result, err := svc.List(context.Background(), ListParams{})
	require.NoError(t, err)
	assert.Len(t, result.Invoices, DefaultPageSize)
	assert.EqualValues(t, 8, result.Total)
}

func TestList_PageBounds(t *testing.T) {
	db := testutil.NewDB(t)
	testutil.SeedInvoices(t, db, 7, "Paid", "PayPal")
	svc := NewInvoiceService(repository.NewInvoiceRepository(db), nil)

	for page := 1; page <= 4; page++ {
		result, err := svc.List(context.Background(), ListParams{Page: page, PageSize: 3})
		require.NoError(t, err)
		assert.LessOrEqual(t, len(result.Invoices), 3)
		assert.LessOrEqual(t, int64(len(result.Invoices)), result.Total)
	}

	last, err := svc.List(context.Background(), ListParams{Page: 3, PageSize: 3})
	require.NoError(t, err)
	assert.Len(t, last.Invoices, 1)

	beyond, err := svc.List(context.Background(), ListParams{Page: 9, PageSize: 3})
	require.NoError(t, err)
	assert.NotNil(t, beyond.Invoices)
	assert.Empty(t, beyond.Invoices)
	assert.EqualValues(t, 7, beyond.Total)
}

func TestList_StatusFilterIsExact(t *testing.T) {
	db := testutil.NewDB(t)
	testutil.SeedInvoices(t, db, 3, "Paid", "PayPal")
	testutil.SeedInvoices(t, db, 2, "Unpaid", "PayPal")
	testutil.SeedInvoices(t, db, 1, "paid", "PayPal")
	svc := NewInvoiceService(repository.NewInvoiceRepository(db), nil)

	result, err := svc.List(context.Background(), ListParams{Status: "Paid", PageSize: 100})
	require.NoError(t, err)
	assert.EqualValues(t, 3, result.Total)
	for _, inv := range result.Invoices {
		assert.Equal(t, "Paid", inv.Status)
	}
}

func TestList_InvalidParams(t *testing.T) {
	svc := NewInvoiceService(&failingStore{}, nil)

	for _, params := range []ListParams{
		{Page: -1},
		{PageSize: -5},
		{PageSize: MaxPageSize + 1},
	} {
		_, err := svc.List(context.Background(), params)
		assert.ErrorIs(t, err, ErrInvalidListParams, "%+v", params)
	}
}
