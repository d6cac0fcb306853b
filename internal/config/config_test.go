package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/lead-service/internal/config"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestConfigLoad_FromYAMLAndEnv(t *testing.T) {
	yaml := `
app:
  name: lead-service
  version: 0.1.0
  env: test
  port: 18080
  allowed_origins: ["https://app.example.com"]

logger:
  level: info
  format: json
  output_target: stdout
  time_format: rfc3339

pagination:
  default_page_size: 25
  max_page_size: 50

store:
  driver: postgres

postgres:
  host: 127.0.0.1
  port: 5432
  sslmode: disable
  max_conns: 5
  min_conns: 1
`
	path := writeTempConfig(t, yaml)

	t.Setenv("APP_POSTGRES_USER", "testuser")
	t.Setenv("APP_POSTGRES_PASSWORD", "testpass")
	t.Setenv("APP_POSTGRES_DB", "testdb")

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 18080, cfg.App.Port)
	assert.Equal(t, []string{"https://app.example.com"}, cfg.App.AllowedOrigins)
	assert.Equal(t, 25, cfg.Pagination.DefaultPageSize)
	assert.Equal(t, 50, cfg.Pagination.MaxPageSize)
	assert.Equal(t, config.DriverPostgres, cfg.Store.Driver)
	assert.Equal(t, "testuser", cfg.Postgres.User)
	assert.Equal(t, "testpass", cfg.Postgres.Password)
	assert.Equal(t, "testdb", cfg.Postgres.DBName)
	assert.Equal(t, "127.0.0.1", cfg.Postgres.Host)
	assert.Equal(t, int32(5), cfg.Postgres.MaxConns)
	assert.Equal(t, "rfc3339", cfg.Logger.TimeFormat)
	assert.Equal(t, "dev", cfg.Logger.Env, "test env maps to dev logging")
	assert.Equal(t, "lead-service", cfg.Logger.ServiceName)
}

func TestConfigLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, config.DriverMemory, cfg.Store.Driver)
	assert.Equal(t, 20, cfg.Pagination.DefaultPageSize)
	assert.Equal(t, 100, cfg.Pagination.MaxPageSize)
	assert.Equal(t, []string{"*"}, cfg.App.AllowedOrigins)
	assert.True(t, cfg.Seed.Enabled)
	assert.Equal(t, 100, cfg.Seed.Count)
	assert.Equal(t, int64(42), cfg.Seed.Seed)
}

func TestConfigLoad_EnvOverridesDefaults(t *testing.T) {
	t.Setenv("APP_STORE_DRIVER", "sqlite")
	t.Setenv("APP_SQLITE_PATH", "/tmp/leads-test.db")
	t.Setenv("APP_PAGINATION_MAX_PAGE_SIZE", "40")

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.DriverSQLite, cfg.Store.Driver)
	assert.Equal(t, "/tmp/leads-test.db", cfg.SQLite.Path)
	assert.Equal(t, 40, cfg.Pagination.MaxPageSize)
}

func TestConfigLoad_MissingPostgresSecretsFails(t *testing.T) {
	yaml := `
store:
  driver: postgres
postgres:
  host: localhost
  port: 5432
`
	path := writeTempConfig(t, yaml)

	t.Setenv("APP_POSTGRES_USER", "")
	t.Setenv("APP_POSTGRES_PASSWORD", "")
	t.Setenv("APP_POSTGRES_DB", "")

	_, err := config.Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "APP_POSTGRES_PASSWORD")
}

func TestConfigLoad_Invalid(t *testing.T) {
	cases := map[string]string{
		"unknown driver":    "store:\n  driver: mongo\n",
		"default above max": "pagination:\n  default_page_size: 200\n  max_page_size: 100\n",
		"zero page size":    "pagination:\n  default_page_size: 0\n",
		"bad env":           "app:\n  env: qa\n",
	}
	for name, yaml := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := config.Load(writeTempConfig(t, yaml))
			assert.Error(t, err)
		})
	}
}

func TestConfigLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
