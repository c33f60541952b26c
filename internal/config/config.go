package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"intraday-simulator/internal/data"
	"intraday-simulator/internal/format"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Backend kinds.
const (
	BackendPostgREST = "postgrest"
	BackendPostgres  = "postgres"
	BackendSnapshot  = "snapshot"
)

// Config is the on-disk configuration shape (YAML).
type Config struct {
	// Optional: load the table schema from a separate YAML (e.g. examples/schemas/*.yaml).
	// If both SchemaFile and Schema are provided, every key set under Schema overrides SchemaFile.
	SchemaFile string        `yaml:"schema_file"`
	Schema     data.Schema   `yaml:"schema"`
	Backend    BackendConfig `yaml:"backend"`
	Locale     format.Locale `yaml:"locale"`
	Server     ServerConfig  `yaml:"server"`
	Limits     LimitsConfig  `yaml:"limits"`
	Log        LogConfig     `yaml:"log"`
}

type BackendConfig struct {
	Kind         string        `yaml:"kind"`
	BaseURL      string        `yaml:"base_url"`
	RESTPath     string        `yaml:"rest_path"`
	APIKey       string        `yaml:"api_key"`
	Timeout      time.Duration `yaml:"timeout"`
	PostgresDSN  string        `yaml:"postgres_dsn"`
	SnapshotPath string        `yaml:"snapshot_path"`
}

type ServerConfig struct {
	Port           string   `yaml:"port"`
	Env            string   `yaml:"env"`
	StaticDir      string   `yaml:"static_dir"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// LimitsConfig bounds the drawdown input the way the dashboard slider did.
type LimitsConfig struct {
	DrawdownCeiling float64 `yaml:"drawdown_ceiling"`
	DefaultDrawdown float64 `yaml:"default_drawdown"`
}

type LogConfig struct {
	Level       string `yaml:"level"`
	Encoding    string `yaml:"encoding"`
	Development bool   `yaml:"development"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Schema: data.DefaultSchema,
		Backend: BackendConfig{
			Kind:     BackendPostgREST,
			RESTPath: data.DefaultRESTPath,
			Timeout:  30 * time.Second,
		},
		Locale: format.French,
		Server: ServerConfig{
			Port:           "8080",
			Env:            "development",
			StaticDir:      "./web/dist",
			AllowedOrigins: []string{"*"},
		},
		Limits: LimitsConfig{
			DrawdownCeiling: 10000,
			DefaultDrawdown: 1000,
		},
		Log: LogConfig{
			Level:    "info",
			Encoding: "console",
		},
	}
}

// Load reads path (optional), applies .env and environment overrides, and validates.
func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads and merges config, but does not validate it.
// Useful for debugging/printing partial configs.
func LoadUnchecked(path string) (*Config, error) {
	c := Default()
	// inline holds only the schema keys written in the config file.
	var inline schemaFileWrapper
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(raw, c); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &inline); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}
	// If schema_file is set, load it and merge in any explicit overrides from c.Schema.
	if c.SchemaFile != "" {
		schemaPath := c.SchemaFile
		if !filepath.IsAbs(schemaPath) && path != "" {
			// Prefer interpreting relative paths as relative to the config file directory,
			// but fall back to the provided path (relative to cwd) if that doesn't exist.
			cand := filepath.Join(filepath.Dir(path), schemaPath)
			if _, err := os.Stat(cand); err == nil {
				schemaPath = cand
			}
		}
		loaded, err := loadSchemaFile(schemaPath)
		if err != nil {
			return nil, err
		}
		c.Schema = MergeSchema(loaded, inline.Schema)
	}

	if err := loadDotEnv(); err != nil {
		return nil, err
	}
	if err := c.applyEnv(); err != nil {
		return nil, err
	}
	return c, nil
}

// loadDotEnv loads ENV_FILE (default .env) when present. Existing variables win.
func loadDotEnv() error {
	path := os.Getenv("ENV_FILE")
	if path == "" {
		path = ".env"
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	str := map[string]*string{
		"SCENARIO_BACKEND":      &c.Backend.Kind,
		"SCENARIO_BASE_URL":     &c.Backend.BaseURL,
		"SCENARIO_API_KEY":      &c.Backend.APIKey,
		"SCENARIO_POSTGRES_DSN": &c.Backend.PostgresDSN,
		"SCENARIO_SNAPSHOT":     &c.Backend.SnapshotPath,
		"SCENARIO_TABLE":        &c.Schema.Table,
		"SCENARIO_RATIO_COLUMN": &c.Schema.RatioColumn,
		"API_PORT":              &c.Server.Port,
		"API_ENV":               &c.Server.Env,
		"STATIC_DIR":            &c.Server.StaticDir,
		"LOG_LEVEL":             &c.Log.Level,
		"LOG_ENCODING":          &c.Log.Encoding,
	}
	for key, dst := range str {
		if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	if v := os.Getenv("SCENARIO_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("SCENARIO_TIMEOUT: %w", err)
		}
		c.Backend.Timeout = d
	}
	if v := os.Getenv("SCENARIO_DRAWDOWN_CEILING"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("SCENARIO_DRAWDOWN_CEILING: %w", err)
		}
		c.Limits.DrawdownCeiling = f
	}
	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		c.Server.AllowedOrigins = splitList(v)
	}
	return nil
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	switch c.Backend.Kind {
	case BackendPostgREST:
		if c.Backend.BaseURL == "" {
			return errors.New("backend.base_url is required for the postgrest backend")
		}
		if c.Backend.APIKey == "" {
			return errors.New("backend.api_key is required for the postgrest backend (or SCENARIO_API_KEY)")
		}
		if c.Backend.Timeout <= 0 {
			return errors.New("backend.timeout must be > 0")
		}
	case BackendPostgres:
		if c.Backend.PostgresDSN == "" {
			return errors.New("backend.postgres_dsn is required for the postgres backend")
		}
	case BackendSnapshot:
		if c.Backend.SnapshotPath == "" {
			return errors.New("backend.snapshot_path is required for the snapshot backend")
		}
	default:
		return fmt.Errorf("unsupported backend kind: %q", c.Backend.Kind)
	}
	if err := c.Schema.Validate(); err != nil {
		return fmt.Errorf("schema config invalid: %w", err)
	}
	if c.Limits.DrawdownCeiling <= 0 {
		return errors.New("limits.drawdown_ceiling must be > 0")
	}
	if c.Limits.DefaultDrawdown < 0 || c.Limits.DefaultDrawdown > c.Limits.DrawdownCeiling {
		return errors.New("limits.default_drawdown must be within [0, drawdown_ceiling]")
	}
	return nil
}

type schemaFileWrapper struct {
	Schema data.Schema `yaml:"schema"`
}

func loadSchemaFile(path string) (data.Schema, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return data.Schema{}, err
	}
	var w schemaFileWrapper
	if err := yaml.Unmarshal(raw, &w); err != nil {
		return data.Schema{}, err
	}
	return w.Schema, nil
}

// MergeSchema overlays non-empty fields from override onto base.
func MergeSchema(base, override data.Schema) data.Schema {
	out := base
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&out.Table, override.Table)
	set(&out.AssetColumn, override.AssetColumn)
	set(&out.CapitalColumn, override.CapitalColumn)
	set(&out.DrawdownColumn, override.DrawdownColumn)
	set(&out.GainColumn, override.GainColumn)
	set(&out.RiskPerTradeColumn, override.RiskPerTradeColumn)
	set(&out.CapitalUsedAtSellColumn, override.CapitalUsedAtSellColumn)
	set(&out.WinRateColumn, override.WinRateColumn)
	set(&out.AnnualizedReturnColumn, override.AnnualizedReturnColumn)
	set(&out.RatioColumn, override.RatioColumn)
	set(&out.TradeCountColumn, override.TradeCountColumn)
	return out
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
