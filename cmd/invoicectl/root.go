package main

import (
	"fmt"
	"os"
	"time"

	"invoice-dashboard-backend/internal/client"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// cliConfig is the optional YAML file behind --config.
type cliConfig struct {
	Server   string        `yaml:"server"`
	Currency string        `yaml:"currency"`
	Timeout  time.Duration `yaml:"timeout"`
}

var (
	cfgFile   string
	serverURL string
	settings  = cliConfig{
		Server:   "http://localhost:8080",
		Currency: "Ugx",
		Timeout:  30 * time.Second,
	}
)

var rootCmd = &cobra.Command{
	Use:   "invoicectl",
	Short: "Work with the invoice dashboard from the command line",
	Long: `invoicectl lists, creates, imports and exports invoices through the
dashboard's HTTP API.

Example Usage:
  invoicectl list --status Paid --page 2
  invoicectl create --invoice INV-001 --status Paid --method PayPal --amount 120.50
  invoicectl import invoices.xlsx
  invoicectl export --method "Bank Transfer"`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(cfgFile); err != nil {
			return err
		}
		if cmd.Flags().Changed("server") {
			settings.Server = serverURL
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to a YAML config file (server, currency, timeout)")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", settings.Server, "base URL of the invoice API")

	rootCmd.AddCommand(listCmd, createCmd, importCmd, exportCmd)
}

func loadConfig(path string) error {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func newClient() *client.Client {
	return client.New(settings.Server, settings.Timeout)
}
