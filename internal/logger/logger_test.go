package logger_test

import (
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	logpkg "github.com/maxviazov/lead-service/internal/logger"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name        string
		config      *logpkg.LoggerConfig
		expectError bool
		wantLevel   zerolog.Level
	}{
		{
			name: "valid production environment",
			config: &logpkg.LoggerConfig{
				ServiceName:    "test-service",
				ServiceVersion: "1.0.0",
				Env:            "prod",
				Level:          "info",
				TimeField:      "timestamp",
				TimeFormat:     "unix",
				Fields:         map[string]interface{}{"key": "value"},
			},
			wantLevel: zerolog.InfoLevel,
		},
		{
			name: "invalid configuration - wrong env",
			config: &logpkg.LoggerConfig{
				ServiceName: "bad-service",
				Env:         "wrong-env",
				Level:       "debug",
			},
			expectError: true,
		},
		{
			name: "invalid configuration - wrong time format",
			config: &logpkg.LoggerConfig{
				Env:        "prod",
				TimeFormat: "iso",
			},
			expectError: true,
		},
		{
			name: "development environment with debug level",
			config: &logpkg.LoggerConfig{
				ServiceName: "test-service",
				Env:         "dev",
				Level:       "debug",
				DebugFile:   filepath.Join(t.TempDir(), "logs", "debug.log"),
			},
			wantLevel: zerolog.DebugLevel,
		},
		{
			name: "staging console on stderr",
			config: &logpkg.LoggerConfig{
				Env:          "staging",
				Level:        "warn",
				Format:       "console",
				OutputTarget: "stderr",
			},
			wantLevel: zerolog.WarnLevel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := logpkg.New(tt.config)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantLevel, zerolog.GlobalLevel())
		})
	}
	zerolog.SetGlobalLevel(zerolog.TraceLevel)
}

func TestNew_Defaults(t *testing.T) {
	cfg := &logpkg.LoggerConfig{}
	_, err := logpkg.New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.TraceLevel) })

	assert.Equal(t, "prod", cfg.Env)
	assert.Equal(t, "info", cfg.Level)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, "stdout", cfg.OutputTarget)
	assert.Equal(t, "ts", cfg.TimeField)
	assert.Equal(t, "lead-service", cfg.ServiceName)
	assert.True(t, cfg.Stacktrace)
	assert.False(t, cfg.WithCaller)
	assert.NotNil(t, cfg.Fields)
}

func TestNew_DevDefaults(t *testing.T) {
	cfg := &logpkg.LoggerConfig{Env: "dev", DebugFile: filepath.Join(t.TempDir(), "debug.log")}
	_, err := logpkg.New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.TraceLevel) })

	assert.Equal(t, "debug", cfg.Level)
	assert.Equal(t, "console", cfg.Format)
	assert.Equal(t, "stderr", cfg.OutputTarget)
	assert.True(t, cfg.WithCaller)
	assert.False(t, cfg.Stacktrace)
}
