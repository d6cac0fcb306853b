package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load reads the YAML file at path (skipped when path is empty), applies APP_* env
// overrides such as APP_POSTGRES_PASSWORD and validates the result.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config file not found: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if cfg.Logger.Env == "" {
		cfg.Logger.Env = cfg.App.LoggerEnv()
	}
	if cfg.Logger.ServiceName == "" {
		cfg.Logger.ServiceName = cfg.App.Name
	}
	if cfg.Logger.ServiceVersion == "" {
		cfg.Logger.ServiceVersion = cfg.App.Version
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks struct tags and the settings each store driver needs.
// Logger settings are validated by logger.New after its own defaults apply.
func (c *Config) Validate() error {
	v := validator.New()
	for _, section := range []any{c.App, c.Pagination, c.Store, c.Postgres, c.Seed} {
		if err := v.Struct(section); err != nil {
			return fmt.Errorf("config validation error: %w", err)
		}
	}

	switch c.Store.Driver {
	case DriverPostgres:
		var missing []string
		if c.Postgres.Host == "" {
			missing = append(missing, "postgres.host")
		}
		if c.Postgres.User == "" {
			missing = append(missing, "postgres.user (APP_POSTGRES_USER)")
		}
		if c.Postgres.Password == "" {
			missing = append(missing, "postgres.password (APP_POSTGRES_PASSWORD)")
		}
		if c.Postgres.DBName == "" {
			missing = append(missing, "postgres.db (APP_POSTGRES_DB)")
		}
		if len(missing) > 0 {
			return fmt.Errorf("config validation error: missing %s", strings.Join(missing, ", "))
		}
	case DriverSQLite:
		if c.SQLite.Path == "" {
			return errors.New("config validation error: missing sqlite.path")
		}
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "Lead Management API")
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", 8080)
	v.SetDefault("app.allowed_origins", []string{"*"})

	// logger keys must be known to viper for APP_LOGGER_* overrides to apply
	v.SetDefault("logger.level", "")
	v.SetDefault("logger.format", "")
	v.SetDefault("logger.env", "")

	v.SetDefault("pagination.default_page_size", 20)
	v.SetDefault("pagination.max_page_size", 100)

	v.SetDefault("store.driver", DriverMemory)

	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", 5432)
	v.SetDefault("postgres.user", "")
	v.SetDefault("postgres.password", "")
	v.SetDefault("postgres.db", "")
	v.SetDefault("postgres.sslmode", "disable")
	v.SetDefault("postgres.max_conns", 10)
	v.SetDefault("postgres.min_conns", 1)
	v.SetDefault("postgres.max_conn_lifetime", 3600)
	v.SetDefault("postgres.max_conn_idle_time", 300)
	v.SetDefault("postgres.health_check_period", 30)

	v.SetDefault("sqlite.path", "data/leads.db")

	v.SetDefault("seed.enabled", true)
	v.SetDefault("seed.count", 100)
	v.SetDefault("seed.seed", 42)
}
