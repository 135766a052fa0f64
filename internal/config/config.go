// Package config loads process configuration from the environment and the optional policy file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"grid-supply/internal/core"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig
	Logger   LoggerConfig
	Database DatabaseConfig
	Forecast ForecastConfig
	Policy   core.Policy
}

type ServerConfig struct {
	AppEnv         string
	Port           string
	AllowedOrigins []string
}

type LoggerConfig struct {
	Level    string
	Encoding string
}

// DatabaseConfig selects the store. An empty URL means the seeded in-memory store.
type DatabaseConfig struct {
	URL string
}

type ForecastConfig struct {
	BaseURL string
	Timeout time.Duration
}

// Load reads the environment. When POLICY_FILE is set the file must exist and parse.
// Call godotenv.Load before Load to pick up a .env file.
func Load() (*Config, error) {
	appEnv := getEnv("APP_ENV", "production")
	encoding := "json"
	level := "info"
	if appEnv == "development" {
		encoding = "console"
		level = "debug"
	}

	cfg := &Config{
		Server: ServerConfig{
			AppEnv:         appEnv,
			Port:           getEnv("SERVER_PORT", "8080"),
			AllowedOrigins: getEnvSlice("ALLOWED_ORIGINS", nil),
		},
		Logger: LoggerConfig{
			Level:    getEnv("LOG_LEVEL", level),
			Encoding: getEnv("LOG_ENCODING", encoding),
		},
		Database: DatabaseConfig{
			URL: getEnv("DATABASE_URL", ""),
		},
		Forecast: ForecastConfig{
			BaseURL: strings.TrimRight(getEnv("FORECAST_API_BASE_URL", "http://localhost:8000"), "/"),
			Timeout: time.Duration(getEnvInt("FORECAST_TIMEOUT_MS", 5000)) * time.Millisecond,
		},
		Policy: core.DefaultPolicy(),
	}

	if path := getEnv("POLICY_FILE", ""); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read policy file: %w", err)
		}
		policy, err := ParsePolicy(data, cfg.Policy)
		if err != nil {
			return nil, fmt.Errorf("failed to parse policy file %s: %w", path, err)
		}
		cfg.Policy = policy
	}
	return cfg, nil
}

// policyFile mirrors core.Policy for YAML overrides. Absent keys keep their defaults.
type policyFile struct {
	TaxRate                    *float64 `yaml:"tax_rate"`
	DefaultAccuracy            *float64 `yaml:"default_accuracy"`
	ShortfallBuffer            *float64 `yaml:"shortfall_buffer"`
	RecordedConfidence         *float64 `yaml:"recorded_confidence"`
	RemoteReadyConfidence      *float64 `yaml:"remote_ready_confidence"`
	RemoteUnreadyConfidence    *float64 `yaml:"remote_unready_confidence"`
	HeuristicConfidence        *float64 `yaml:"heuristic_confidence"`
	CriticalFulfillment        *float64 `yaml:"critical_fulfillment"`
	DefaultLineLength          *float64 `yaml:"default_line_length_km"`
	DefaultTerrain             *string  `yaml:"default_terrain"`
	DefaultDistanceFromStorage *float64 `yaml:"default_distance_from_storage_km"`
	AtRiskCompletionThreshold  *float64 `yaml:"at_risk_completion"`
	TopMaterialsByValue        *int     `yaml:"top_materials_by_value"`
}

// ParsePolicy applies the YAML overrides in data on top of base.
func ParsePolicy(data []byte, base core.Policy) (core.Policy, error) {
	var f policyFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return base, err
	}

	p := base
	setDecimal(&p.TaxRate, f.TaxRate)
	setDecimal(&p.DefaultAccuracy, f.DefaultAccuracy)
	setDecimal(&p.ShortfallBuffer, f.ShortfallBuffer)
	setDecimal(&p.RecordedConfidence, f.RecordedConfidence)
	setDecimal(&p.RemoteReadyConfidence, f.RemoteReadyConfidence)
	setDecimal(&p.RemoteUnreadyConfidence, f.RemoteUnreadyConfidence)
	setDecimal(&p.HeuristicConfidence, f.HeuristicConfidence)
	setDecimal(&p.CriticalFulfillment, f.CriticalFulfillment)
	setDecimal(&p.DefaultLineLength, f.DefaultLineLength)
	setDecimal(&p.DefaultDistanceFromStorage, f.DefaultDistanceFromStorage)
	setDecimal(&p.AtRiskCompletionThreshold, f.AtRiskCompletionThreshold)
	if f.DefaultTerrain != nil {
		p.DefaultTerrain = *f.DefaultTerrain
	}
	if f.TopMaterialsByValue != nil {
		p.TopMaterialsByValue = *f.TopMaterialsByValue
	}

	if p.TaxRate.IsNegative() {
		return base, fmt.Errorf("tax_rate cannot be negative")
	}
	if p.ShortfallBuffer.LessThan(decimal.NewFromInt(1)) {
		return base, fmt.Errorf("shortfall_buffer must be at least 1")
	}
	if !p.DefaultLineLength.IsPositive() {
		return base, fmt.Errorf("default_line_length_km must be positive")
	}
	if p.TopMaterialsByValue < 0 {
		return base, fmt.Errorf("top_materials_by_value cannot be negative")
	}
	return p, nil
}

func setDecimal(dst *decimal.Decimal, v *float64) {
	if v != nil {
		*dst = decimal.NewFromFloat(*v)
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvSlice(key string, fallback []string) []string {
	value, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(value) == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
