package config

import (
	"github.com/maxviazov/lead-service/internal/logger"
)

// Store drivers understood by bootstrap.OpenStore.
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	App        AppConfig           `mapstructure:"app"`
	Logger     logger.LoggerConfig `mapstructure:"logger"`
	Pagination PaginationConfig    `mapstructure:"pagination"`
	Store      StoreConfig         `mapstructure:"store"`
	Postgres   PostgresConfig      `mapstructure:"postgres"`
	SQLite     SQLiteConfig        `mapstructure:"sqlite"`
	Seed       SeedConfig          `mapstructure:"seed"`
}

type AppConfig struct {
	Name           string   `mapstructure:"name" validate:"required"`
	Version        string   `mapstructure:"version" validate:"required"`
	Env            string   `mapstructure:"env" validate:"oneof=development staging production test"`
	Port           int      `mapstructure:"port" validate:"min=1,max=65535"`
	AllowedOrigins []string `mapstructure:"allowed_origins" validate:"min=1"`
}

// PaginationConfig bounds list requests. The HTTP edge clamps page_size to MaxPageSize.
type PaginationConfig struct {
	DefaultPageSize int `mapstructure:"default_page_size" validate:"min=1,ltefield=MaxPageSize"`
	MaxPageSize     int `mapstructure:"max_page_size" validate:"min=1"`
}

type StoreConfig struct {
	Driver string `mapstructure:"driver" validate:"oneof=memory postgres sqlite"`
}

type PostgresConfig struct {
	Host              string `mapstructure:"host"`
	Port              int    `mapstructure:"port" validate:"min=0,max=65535"`
	User              string `mapstructure:"user"`
	Password          string `mapstructure:"password"`
	DBName            string `mapstructure:"db"`
	SSLMode           string `mapstructure:"sslmode" validate:"omitempty,oneof=disable allow prefer require verify-ca verify-full"`
	MaxConns          int32  `mapstructure:"max_conns" validate:"min=0"`
	MinConns          int32  `mapstructure:"min_conns" validate:"min=0"`
	MaxConnLifetime   int    `mapstructure:"max_conn_lifetime"`   // seconds
	MaxConnIdleTime   int    `mapstructure:"max_conn_idle_time"`  // seconds
	HealthCheckPeriod int    `mapstructure:"health_check_period"` // seconds
}

type SQLiteConfig struct {
	Path string `mapstructure:"path"`
}

// SeedConfig controls fake data loaded into an empty store on startup.
type SeedConfig struct {
	Enabled bool  `mapstructure:"enabled"`
	Count   int   `mapstructure:"count" validate:"min=0,max=100000"`
	Seed    int64 `mapstructure:"seed"`
}

// LoggerEnv maps the application environment onto the logger's dev/staging/prod scale.
func (a AppConfig) LoggerEnv() string {
	switch a.Env {
	case "production":
		return "prod"
	case "staging":
		return "staging"
	default:
		return "dev"
	}
}
