package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"invoice-dashboard-backend/internal/client"
	"invoice-dashboard-backend/internal/models"
	"invoice-dashboard-backend/internal/services/invoices"
	"invoice-dashboard-backend/internal/spreadsheet"

	"github.com/spf13/cobra"
)

var newInvoice struct {
	invoice string
	status  string
	method  string
	amount  string
}

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a single invoice",
	RunE: func(cmd *cobra.Command, args []string) error {
		row := invoices.RawRow{}
		for key, value := range map[string]string{
			"invoice": newInvoice.invoice,
			"status":  newInvoice.status,
			"method":  newInvoice.method,
			"amount":  newInvoice.amount,
		} {
			if value != "" {
				row[key] = value
			}
		}

		result, err := newClient().Create(cmd.Context(), []invoices.RawRow{row})
		if err != nil {
			return err
		}
		printCreateResult(result)
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file.xlsx>",
	Short: "Bulk-create invoices from the first sheet of a spreadsheet",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		if err := spreadsheet.CheckExtension(path); err != nil {
			return err
		}

		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()

		rows, err := spreadsheet.ReadRows(f)
		if err != nil {
			return err
		}
		fmt.Printf("Read %d rows from %s\n", len(rows), filepath.Base(path))

		result, err := newClient().Create(cmd.Context(), rows)
		if err != nil {
			return err
		}
		printCreateResult(result)
		return nil
	},
}

func init() {
	createCmd.Flags().StringVar(&newInvoice.invoice, "invoice", "", "invoice label, e.g. INV-001")
	createCmd.Flags().StringVar(&newInvoice.status, "status", "", "one of "+strings.Join(models.InvoiceStatuses, ", "))
	createCmd.Flags().StringVar(&newInvoice.method, "method", "", "one of "+strings.Join(models.PaymentMethods, ", "))
	createCmd.Flags().StringVar(&newInvoice.amount, "amount", "", "positive amount, e.g. 120.50")
}

func printCreateResult(result *client.CreateResult) {
	fmt.Println(result.Message)
	for _, inv := range result.CreatedInvoices {
		fmt.Printf("  created #%d %s\n", inv.ID, inv.Invoice)
	}
	for _, skipped := range result.SkippedRows {
		fmt.Printf("  skipped %v: %s\n", skipped.Row, skipped.Reason)
	}
}
