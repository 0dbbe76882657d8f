package client_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"invoice-dashboard-backend/internal/client"
	"invoice-dashboard-backend/internal/routes"
	"invoice-dashboard-backend/internal/services/export"
	"invoice-dashboard-backend/internal/services/invoices"
	"invoice-dashboard-backend/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newServer(t *testing.T) (*client.Client, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.NewDB(t)
	r := gin.New()
	routes.RegisterRoutes(r, db, routes.Options{CurrencyPrefix: "Ugx", MaxUploadBytes: 1 << 20})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return client.New(srv.URL+"/", 5*time.Second), db
}

func TestClient_CreateAndList(t *testing.T) {
	c, _ := newServer(t)
	ctx := context.Background()

	created, err := c.Create(ctx, []invoices.RawRow{
		{"InvoiceNumber": "INV-A1", "Status": "Paid", "Method": "PayPal", "Amount": 12.5},
		{"InvoiceNumber": "INV-A2", "Status": "Paid", "Method": "PayPal"},
		{"InvoiceNumber": "INV-B1", "Status": "Unpaid", "Method": "Credit Card", "Amount": "40"},
	})
	require.NoError(t, err)
	assert.Len(t, created.CreatedInvoices, 2)
	require.Len(t, created.SkippedRows, 1)
	assert.Equal(t, invoices.ReasonMissingFields, created.SkippedRows[0].Reason)

	page, err := c.List(ctx, invoices.ListParams{Search: "inv-a"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, page.Total)
	require.Len(t, page.Invoices, 1)
	assert.Equal(t, "INV-A1", page.Invoices[0].Invoice)
	assert.Equal(t, 12.5, page.Invoices[0].Amount)
}

func TestClient_APIErrors(t *testing.T) {
	c, _ := newServer(t)
	ctx := context.Background()

	_, err := c.Create(ctx, nil)
	var apiErr *client.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "No invoice data provided", apiErr.Message)

	_, err = c.List(ctx, invoices.ListParams{PageSize: invoices.MaxPageSize + 1})
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
}

func TestClient_Unreachable(t *testing.T) {
	c := client.New("http://127.0.0.1:1", time.Second)

	_, err := c.List(context.Background(), invoices.ListParams{})
	require.Error(t, err)
	var apiErr *client.APIError
	assert.False(t, errors.As(err, &apiErr))
}

func TestClient_ExportAssembledLocally(t *testing.T) {
	c, db := newServer(t)
	testutil.SeedInvoices(t, db, 7, "Paid", "Bank Transfer")

	wb, err := export.NewAssembler(c, "Ugx").Build(context.Background(), export.Filter{Method: "Bank Transfer"})
	require.NoError(t, err)

	assert.EqualValues(t, 7, wb.Total)
	assert.False(t, wb.Truncated)
	require.Len(t, wb.Rows, 7)
	assert.Equal(t, export.Row{Invoice: "INV-007", Status: "Paid", Method: "Bank Transfer", Amount: "Ugx 70.00"}, wb.Rows[0])
}
