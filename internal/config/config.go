package config

import (
	"fmt"
	"log"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all server configuration.
type Config struct {
	// Server configuration
	Port            int           `env:"PORT"             envDefault:"8080"`
	ReadTimeout     time.Duration `env:"READ_TIMEOUT"     envDefault:"15s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT"    envDefault:"60s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	AllowedOrigins  []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`
	LogFormat       string        `env:"LOG_FORMAT"       envDefault:"json"`

	// Database configuration
	DBDriver   string `env:"DB_DRIVER"    envDefault:"postgres"`
	DBURL      string `env:"DATABASE_URL"`
	DBLogLevel string `env:"DB_LOG_LEVEL" envDefault:"warn"`

	// Invoice handling
	CurrencyPrefix string `env:"CURRENCY_PREFIX"  envDefault:"Ugx"`
	MaxUploadBytes int64  `env:"MAX_UPLOAD_BYTES" envDefault:"10485760"`
}

// Load reads .env (if present) and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on system env")
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.DBDriver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if c.DBURL == "" {
		if c.DBDriver == DriverPostgres {
			return fmt.Errorf("DATABASE_URL environment variable is not set")
		}
		c.DBURL = "invoices.db"
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("MAX_UPLOAD_BYTES must be positive")
	}
	if c.LogFormat != "json" && c.LogFormat != "pretty" {
		log.Printf("Invalid value for LOG_FORMAT: %s, using default: json", c.LogFormat)
		c.LogFormat = "json"
	}
	return nil
}
