package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"invoice-dashboard-backend/internal/models"
	"invoice-dashboard-backend/internal/services/export"
	"invoice-dashboard-backend/internal/services/invoices"

	"github.com/spf13/cobra"
)

var listParams invoices.ListParams

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Show one page of invoices",
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := newClient().List(cmd.Context(), listParams)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tINVOICE\tSTATUS\tMETHOD\tAMOUNT")
		for _, inv := range result.Invoices {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", inv.ID, inv.Invoice, inv.Status, inv.Method, export.FormatAmount(settings.Currency, inv.Amount))
		}
		if err := w.Flush(); err != nil {
			return err
		}

		page := listParams.Page
		if page == 0 {
			page = invoices.DefaultPage
		}
		fmt.Printf("\npage %d, %d invoices shown, %d total\n", page, len(result.Invoices), result.Total)
		return nil
	},
}

func init() {
	addFilterFlags(listCmd, &listParams.Search, &listParams.Status, &listParams.Method)
	listCmd.Flags().IntVar(&listParams.Page, "page", invoices.DefaultPage, "1-based page number")
	listCmd.Flags().IntVar(&listParams.PageSize, "page-size", invoices.DefaultPageSize, "invoices per page")
}

func addFilterFlags(cmd *cobra.Command, search, status, method *string) {
	cmd.Flags().StringVar(search, "search", "", "case-insensitive substring of the invoice label")
	cmd.Flags().StringVar(status, "status", "", "exact status, e.g. "+strings.Join(models.InvoiceStatuses, ", "))
	cmd.Flags().StringVar(method, "method", "", "exact payment method, e.g. "+strings.Join(models.PaymentMethods, ", "))
}
