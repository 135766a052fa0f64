package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"grid-supply/internal/core"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"APP_ENV", "SERVER_PORT", "ALLOWED_ORIGINS", "LOG_LEVEL", "LOG_ENCODING",
		"DATABASE_URL", "FORECAST_API_BASE_URL", "FORECAST_TIMEOUT_MS", "POLICY_FILE",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "production", cfg.Server.AppEnv)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Nil(t, cfg.Server.AllowedOrigins)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "json", cfg.Logger.Encoding)
	assert.Empty(t, cfg.Database.URL)
	assert.Equal(t, "http://localhost:8000", cfg.Forecast.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Forecast.Timeout)
	assert.Equal(t, core.DefaultPolicy(), cfg.Policy)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_ENV", "development")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("ALLOWED_ORIGINS", "http://localhost:5173, https://grid.example.com,")
	t.Setenv("DATABASE_URL", "postgres://grid@localhost/grid")
	t.Setenv("FORECAST_API_BASE_URL", "http://model:8000/")
	t.Setenv("FORECAST_TIMEOUT_MS", "250")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, "console", cfg.Logger.Encoding)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, []string{"http://localhost:5173", "https://grid.example.com"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "postgres://grid@localhost/grid", cfg.Database.URL)
	assert.Equal(t, "http://model:8000", cfg.Forecast.BaseURL)
	assert.Equal(t, 250*time.Millisecond, cfg.Forecast.Timeout)
}

func TestLoad_BadTimeoutFallsBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("FORECAST_TIMEOUT_MS", "soon")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, cfg.Forecast.Timeout)
}

func TestLoad_PolicyFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "policy.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tax_rate: 0.12\nshortfall_buffer: 1.25\n"), 0o600))
	t.Setenv("POLICY_FILE", path)

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("0.12").Equal(cfg.Policy.TaxRate))
	assert.True(t, decimal.RequireFromString("1.25").Equal(cfg.Policy.ShortfallBuffer))
}

func TestLoad_MissingPolicyFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("POLICY_FILE", filepath.Join(t.TempDir(), "absent.yaml"))

	_, err := Load()
	assert.Error(t, err)
}

func TestParsePolicy(t *testing.T) {
	base := core.DefaultPolicy()

	t.Run("empty document keeps defaults", func(t *testing.T) {
		p, err := ParsePolicy(nil, base)
		require.NoError(t, err)
		assert.Equal(t, base, p)
	})

	t.Run("overrides", func(t *testing.T) {
		p, err := ParsePolicy([]byte(`
default_accuracy: 90
critical_fulfillment: 60
default_line_length_km: 250
default_terrain: Hilly
top_materials_by_value: 3
`), base)
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(90).Equal(p.DefaultAccuracy))
		assert.True(t, decimal.NewFromInt(60).Equal(p.CriticalFulfillment))
		assert.True(t, decimal.NewFromInt(250).Equal(p.DefaultLineLength))
		assert.Equal(t, "Hilly", p.DefaultTerrain)
		assert.Equal(t, 3, p.TopMaterialsByValue)
		assert.True(t, base.TaxRate.Equal(p.TaxRate))
	})

	invalid := []struct {
		name string
		doc  string
	}{
		{"unknown key", "tax: 0.1\n"},
		{"negative tax", "tax_rate: -0.1\n"},
		{"buffer below one", "shortfall_buffer: 0.9\n"},
		{"zero line length", "default_line_length_km: 0\n"},
		{"negative top", "top_materials_by_value: -1\n"},
		{"malformed", "tax_rate: [1, 2\n"},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ParsePolicy([]byte(tt.doc), base)
			assert.Error(t, err)
			assert.Equal(t, base, p)
		})
	}
}
