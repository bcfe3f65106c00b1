// ABOUTME: Glucolog configuration with clinical threshold overrides.
// ABOUTME: JSON config file plus GLUCOLOG_* environment variables; .env supported for dev.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/glucolog/glucolog/internal/analysis"
	"github.com/glucolog/glucolog/internal/storage"
	"github.com/joho/godotenv"
)

// GlucoseConfig overrides the clinical constants used by the pattern
// analyzer. Zero values fall back to the defaults.
type GlucoseConfig struct {
	LowMgdl       float64 `json:"low_mgdl,omitempty"`
	HighMgdl      float64 `json:"high_mgdl,omitempty"`
	VeryLowMgdl   float64 `json:"very_low_mgdl,omitempty"`
	VeryHighMgdl  float64 `json:"very_high_mgdl,omitempty"`
	AnomalyZScore float64 `json:"anomaly_z_score,omitempty"`
	DawnRiseMgdl  float64 `json:"dawn_rise_mgdl,omitempty"`
}

// CorrelationConfig overrides the correlation analyzer's constants.
type CorrelationConfig struct {
	MinOverlapDays int     `json:"min_overlap_days,omitempty"`
	Negligible     float64 `json:"negligible,omitempty"`
	Weak           float64 `json:"weak,omitempty"`
	Moderate       float64 `json:"moderate,omitempty"`
	Strong         float64 `json:"strong,omitempty"`
}

// Config stores glucolog configuration. It is passed explicitly to storage,
// analysis, and servers at construction.
type Config struct {
	// DataDir is the root directory for data storage. Supports ~ expansion.
	// Defaults to the XDG data directory.
	DataDir string `json:"data_dir,omitempty"`

	// DatabasePath overrides the SQLite file location entirely.
	DatabasePath string `json:"database_path,omitempty"`

	// ListenAddr is the ingest server bind address. Defaults to :8080.
	ListenAddr string `json:"listen_addr,omitempty"`

	Glucose     GlucoseConfig     `json:"glucose,omitempty"`
	Correlation CorrelationConfig `json:"correlation,omitempty"`
}

// GetDataDir returns the configured data directory with ~ expanded.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return storage.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// GetDatabasePath returns the SQLite file path.
func (c *Config) GetDatabasePath() string {
	if c.DatabasePath != "" {
		return ExpandPath(c.DatabasePath)
	}
	return filepath.Join(c.GetDataDir(), "glucolog.db")
}

// GetListenAddr returns the ingest server bind address.
func (c *Config) GetListenAddr() string {
	if c.ListenAddr == "" {
		return ":8080"
	}
	return c.ListenAddr
}

// OpenStorage opens the repository at the configured path.
func (c *Config) OpenStorage() (storage.Repository, error) {
	return storage.Open(c.GetDatabasePath())
}

// NewAnalyzer creates an analyzer with the configured overrides applied on
// top of the defaults.
func (c *Config) NewAnalyzer(repo storage.Repository) *analysis.Analyzer {
	a := analysis.New(repo)

	setFloat := func(dst *float64, v float64) {
		if v != 0 {
			*dst = v
		}
	}
	setFloat(&a.Thresholds.LowMgdl, c.Glucose.LowMgdl)
	setFloat(&a.Thresholds.HighMgdl, c.Glucose.HighMgdl)
	setFloat(&a.Thresholds.VeryLowMgdl, c.Glucose.VeryLowMgdl)
	setFloat(&a.Thresholds.VeryHighMgdl, c.Glucose.VeryHighMgdl)
	setFloat(&a.Thresholds.AnomalyZScore, c.Glucose.AnomalyZScore)
	setFloat(&a.Thresholds.DawnRiseMgdl, c.Glucose.DawnRiseMgdl)

	if c.Correlation.MinOverlapDays > 0 {
		a.MinOverlapDays = c.Correlation.MinOverlapDays
	}
	setFloat(&a.Cutoffs.Negligible, c.Correlation.Negligible)
	setFloat(&a.Cutoffs.Weak, c.Correlation.Weak)
	setFloat(&a.Cutoffs.Moderate, c.Correlation.Moderate)
	setFloat(&a.Cutoffs.Strong, c.Correlation.Strong)

	return a
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "glucolog", "config.json")
}

// Load reads config from disk and applies environment overrides. A missing
// config file yields defaults, not an error. A .env file in the working
// directory is loaded first when present.
func Load() (*Config, error) {
	// Best effort; absence is the normal case outside development.
	_ = godotenv.Load()

	cfg := &Config{}

	path := GetConfigPath()
	data, err := os.ReadFile(path)
	if err == nil {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg.applyEnv()
	return cfg, nil
}

// applyEnv overlays GLUCOLOG_* environment variables.
func (c *Config) applyEnv() {
	if v := os.Getenv("GLUCOLOG_DATA_DIR"); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv("GLUCOLOG_DB"); v != "" {
		c.DatabasePath = v
	}
	if v := os.Getenv("GLUCOLOG_LISTEN_ADDR"); v != "" {
		c.ListenAddr = v
	}
	if v, ok := envFloat("GLUCOLOG_GLUCOSE_LOW"); ok {
		c.Glucose.LowMgdl = v
	}
	if v, ok := envFloat("GLUCOLOG_GLUCOSE_HIGH"); ok {
		c.Glucose.HighMgdl = v
	}
	if v := os.Getenv("GLUCOLOG_MIN_OVERLAP_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Correlation.MinOverlapDays = n
		}
	}
}

func envFloat(key string) (float64, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
