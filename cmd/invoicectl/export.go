package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"invoice-dashboard-backend/internal/services/export"

	"github.com/spf13/cobra"
)

var (
	exportFilter export.Filter
	exportDir    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Download every matching invoice as an .xlsx file",
	RunE: func(cmd *cobra.Command, args []string) error {
		assembler := export.NewAssembler(newClient(), settings.Currency)

		wb, err := assembler.Build(cmd.Context(), exportFilter)
		if errors.Is(err, export.ErrNothingToExport) {
			fmt.Fprintln(os.Stderr, "warning: no invoices to export")
			return nil
		}
		if err != nil {
			return err
		}
		if wb.Truncated {
			fmt.Fprintf(os.Stderr, "warning: export limited to %d of %d matching invoices\n", len(wb.Rows), wb.Total)
		}

		path := filepath.Join(exportDir, wb.Filename)
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		if _, err := wb.WriteTo(f); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}

		fmt.Printf("Exported %d invoices to %s\n", len(wb.Rows), path)
		return nil
	},
}

func init() {
	addFilterFlags(exportCmd, &exportFilter.Search, &exportFilter.Status, &exportFilter.Method)
	exportCmd.Flags().StringVarP(&exportDir, "output-dir", "o", ".", "directory to write the workbook into")
}
