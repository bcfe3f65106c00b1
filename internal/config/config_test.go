// ABOUTME: Tests for configuration loading, env overrides, and analyzer wiring.
// ABOUTME: Uses t.Setenv with XDG_CONFIG_HOME pointed at temp dirs.
package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/glucolog/glucolog/internal/analysis"
	"github.com/glucolog/glucolog/internal/storage"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("GLUCOLOG_DB", "")
	t.Setenv("GLUCOLOG_DATA_DIR", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.DatabasePath != "" {
		t.Errorf("DatabasePath = %q, want empty default", cfg.DatabasePath)
	}
	if cfg.GetListenAddr() != ":8080" {
		t.Errorf("GetListenAddr() = %q, want :8080", cfg.GetListenAddr())
	}
	if got := cfg.GetDatabasePath(); filepath.Base(got) != "glucolog.db" {
		t.Errorf("GetDatabasePath() = %q, want a glucolog.db path", got)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("GLUCOLOG_DB", "/tmp/override.db")
	t.Setenv("GLUCOLOG_LISTEN_ADDR", "127.0.0.1:9999")
	t.Setenv("GLUCOLOG_GLUCOSE_LOW", "80")
	t.Setenv("GLUCOLOG_GLUCOSE_HIGH", "160")
	t.Setenv("GLUCOLOG_MIN_OVERLAP_DAYS", "5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.GetDatabasePath() != "/tmp/override.db" {
		t.Errorf("GetDatabasePath() = %q, want /tmp/override.db", cfg.GetDatabasePath())
	}
	if cfg.GetListenAddr() != "127.0.0.1:9999" {
		t.Errorf("GetListenAddr() = %q", cfg.GetListenAddr())
	}
	if cfg.Glucose.LowMgdl != 80 || cfg.Glucose.HighMgdl != 160 {
		t.Errorf("Glucose thresholds = %+v, want 80/160", cfg.Glucose)
	}
	if cfg.Correlation.MinOverlapDays != 5 {
		t.Errorf("MinOverlapDays = %d, want 5", cfg.Correlation.MinOverlapDays)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("GLUCOLOG_DB", "")
	t.Setenv("GLUCOLOG_DATA_DIR", "")
	t.Setenv("GLUCOLOG_LISTEN_ADDR", "")

	cfg := &Config{
		DataDir:    "/tmp/glucolog-data",
		ListenAddr: ":9000",
		Glucose:    GlucoseConfig{LowMgdl: 75},
	}
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.DataDir != "/tmp/glucolog-data" {
		t.Errorf("DataDir = %q, want /tmp/glucolog-data", loaded.DataDir)
	}
	if loaded.ListenAddr != ":9000" {
		t.Errorf("ListenAddr = %q, want :9000", loaded.ListenAddr)
	}
	if loaded.Glucose.LowMgdl != 75 {
		t.Errorf("Glucose.LowMgdl = %v, want 75", loaded.Glucose.LowMgdl)
	}
}

func TestLoadBadConfigFile(t *testing.T) {
	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)

	dir := filepath.Join(configHome, "glucolog")
	if err := os.MkdirAll(dir, 0750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte("{broken"), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(); err == nil {
		t.Error("Expected error for malformed config file")
	}
}

func TestNewAnalyzerAppliesOverrides(t *testing.T) {
	db, err := storage.Open(filepath.Join(t.TempDir(), "glucolog.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer db.Close()

	cfg := &Config{
		Glucose:     GlucoseConfig{LowMgdl: 80, HighMgdl: 170, AnomalyZScore: 3},
		Correlation: CorrelationConfig{MinOverlapDays: 7, Strong: 0.8},
	}
	a := cfg.NewAnalyzer(db)

	if a.Thresholds.LowMgdl != 80 || a.Thresholds.HighMgdl != 170 {
		t.Errorf("Thresholds = %+v, want low 80 high 170", a.Thresholds)
	}
	if a.Thresholds.AnomalyZScore != 3 {
		t.Errorf("AnomalyZScore = %v, want 3", a.Thresholds.AnomalyZScore)
	}
	// Unset fields keep their defaults.
	defaults := analysis.DefaultThresholds()
	if a.Thresholds.VeryLowMgdl != defaults.VeryLowMgdl {
		t.Errorf("VeryLowMgdl = %v, want default %v", a.Thresholds.VeryLowMgdl, defaults.VeryLowMgdl)
	}
	if a.MinOverlapDays != 7 {
		t.Errorf("MinOverlapDays = %d, want 7", a.MinOverlapDays)
	}
	if a.Cutoffs.Strong != 0.8 {
		t.Errorf("Cutoffs.Strong = %v, want 0.8", a.Cutoffs.Strong)
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home dir")
	}

	tests := []struct {
		input string
		want  string
	}{
		{"~", home},
		{"~/data", filepath.Join(home, "data")},
		{"/absolute/path", "/absolute/path"},
		{"relative", "relative"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := ExpandPath(tt.input); got != tt.want {
			t.Errorf("ExpandPath(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
