package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv unsets the given variables for the duration of the test.
func clearEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

var allKeys = []string{
	"PORT", "READ_TIMEOUT", "WRITE_TIMEOUT", "SHUTDOWN_TIMEOUT", "CORS_ALLOWED_ORIGINS",
	"LOG_FORMAT", "DB_DRIVER", "DATABASE_URL", "DB_LOG_LEVEL", "CURRENCY_PREFIX", "MAX_UPLOAD_BYTES",
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t, allKeys...)
	t.Setenv("DB_DRIVER", "sqlite")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.AllowedOrigins)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "invoices.db", cfg.DBURL)
	assert.Equal(t, "Ugx", cfg.CurrencyPrefix)
	assert.EqualValues(t, 10<<20, cfg.MaxUploadBytes)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t, allKeys...)
	t.Setenv("PORT", "9090")
	t.Setenv("DATABASE_URL", "postgres://localhost/invoices")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test,http://b.test")
	t.Setenv("CURRENCY_PREFIX", "USD")
	t.Setenv("LOG_FORMAT", "pretty")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, DriverPostgres, cfg.DBDriver)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins)
	assert.Equal(t, "USD", cfg.CurrencyPrefix)
	assert.Equal(t, "pretty", cfg.LogFormat)
}

func TestLoad_PostgresRequiresURL(t *testing.T) {
	clearEnv(t, allKeys...)

	_, err := Load()
	assert.ErrorContains(t, err, "DATABASE_URL")
}

func TestValidate(t *testing.T) {
	t.Run("unknown driver", func(t *testing.T) {
		cfg := Config{DBDriver: "mysql", DBURL: "x", MaxUploadBytes: 1, LogFormat: "json"}
		assert.Error(t, cfg.validate())
	})

	t.Run("non-positive upload limit", func(t *testing.T) {
		cfg := Config{DBDriver: DriverSQLite, MaxUploadBytes: 0, LogFormat: "json"}
		assert.Error(t, cfg.validate())
	})

	t.Run("unknown log format falls back to json", func(t *testing.T) {
		cfg := Config{DBDriver: DriverSQLite, MaxUploadBytes: 1, LogFormat: "xml"}
		require.NoError(t, cfg.validate())
		assert.Equal(t, "json", cfg.LogFormat)
	})
}

func TestInitDB_SQLite(t *testing.T) {
	db, err := InitDB(&Config{DBDriver: DriverSQLite, DBURL: ":memory:", DBLogLevel: "silent"})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	defer sqlDB.Close()
	assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)
}

func TestParseLogLevel(t *testing.T) {
	assert.NotEqual(t, parseLogLevel("silent"), parseLogLevel("info"))
	assert.Equal(t, parseLogLevel("warn"), parseLogLevel("bogus"))
}
