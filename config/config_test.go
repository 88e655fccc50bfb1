package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	return path
}

// TestLoadAppConfig_AppliesDefaults tests that omitted fields pick defaults
func TestLoadAppConfig_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
dataset:
  path: data/routes.json
`)

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Dataset.Path != "data/routes.json" {
		t.Errorf("dataset path = %q, want data/routes.json", cfg.Dataset.Path)
	}
	if cfg.Projection.DwellSeconds != DefaultDwellSeconds {
		t.Errorf("dwell = %d, want default %d", cfg.Projection.DwellSeconds, DefaultDwellSeconds)
	}
	if cfg.Projection.MinAvgSpeedMS == nil || *cfg.Projection.MinAvgSpeedMS != DefaultMinAvgSpeedMS {
		t.Errorf("min speed should default to %v, got %v", DefaultMinAvgSpeedMS, cfg.Projection.MinAvgSpeedMS)
	}
	if cfg.Projection.MaxAvgSpeedMS == nil || *cfg.Projection.MaxAvgSpeedMS != DefaultMaxAvgSpeedMS {
		t.Errorf("max speed should default to %v, got %v", DefaultMaxAvgSpeedMS, cfg.Projection.MaxAvgSpeedMS)
	}
	if cfg.Export.Format != "csv" {
		t.Errorf("format = %q, want csv", cfg.Export.Format)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("port = %d, want 8080", cfg.Server.Port)
	}

	t.Logf("✓ Defaults applied: dwell=%ds port=%d", cfg.Projection.DwellSeconds, cfg.Server.Port)
}

// TestLoadAppConfig_ExplicitZeroDisablesSpeedChecks tests the pointer
// semantics of the speed bounds
func TestLoadAppConfig_ExplicitZeroDisablesSpeedChecks(t *testing.T) {
	path := writeConfig(t, `
projection:
  minAvgSpeedMS: 0
  maxAvgSpeedMS: 0
`)

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Projection.MinAvgSpeedMS == nil || *cfg.Projection.MinAvgSpeedMS != 0 {
		t.Errorf("explicit 0 min speed should stay 0, got %v", cfg.Projection.MinAvgSpeedMS)
	}
	if cfg.Projection.MaxAvgSpeedMS == nil || *cfg.Projection.MaxAvgSpeedMS != 0 {
		t.Errorf("explicit 0 max speed should stay 0, got %v", cfg.Projection.MaxAvgSpeedMS)
	}
}

// TestLoadAppConfig_DwellByBusType tests per-type dwell overrides
func TestLoadAppConfig_DwellByBusType(t *testing.T) {
	path := writeConfig(t, `
projection:
  dwellSeconds: 20
  dwellByBusType:
    BRT: 45
    Minibus: 15
`)

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Projection.DwellSeconds != 20 {
		t.Errorf("dwell = %d, want 20", cfg.Projection.DwellSeconds)
	}
	if cfg.Projection.DwellByBusType["BRT"] != 45 {
		t.Errorf("BRT dwell = %d, want 45", cfg.Projection.DwellByBusType["BRT"])
	}
	if cfg.Projection.DwellByBusType["Minibus"] != 15 {
		t.Errorf("Minibus dwell = %d, want 15", cfg.Projection.DwellByBusType["Minibus"])
	}
}

// TestLoadAppConfig_MissingFile tests error handling for missing config
func TestLoadAppConfig_MissingFile(t *testing.T) {
	_, err := LoadAppConfig(filepath.Join(t.TempDir(), "nope.yml"))
	if err == nil {
		t.Error("loading non-existent config should return error")
	}
	t.Logf("✓ Missing config returns error: %v", err)
}

// TestLoadAppConfig_InvalidYAML tests error handling for broken YAML
func TestLoadAppConfig_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "invalid: yaml: content: [[[")
	if _, err := LoadAppConfig(path); err == nil {
		t.Error("loading invalid YAML should return error")
	}
}

// TestLoadAppConfig_RejectsUnknownFormat tests the export format enum
func TestLoadAppConfig_RejectsUnknownFormat(t *testing.T) {
	path := writeConfig(t, `
export:
  format: parquet
`)
	if _, err := LoadAppConfig(path); err == nil {
		t.Error("unknown export format should fail validation")
	}
}

// TestLoadAppConfig_RejectsNegativeDwell tests projection validation
func TestLoadAppConfig_RejectsNegativeDwell(t *testing.T) {
	path := writeConfig(t, `
projection:
  dwellSeconds: -5
`)
	if _, err := LoadAppConfig(path); err == nil {
		t.Error("negative dwell should fail validation")
	}
}

// TestLoadAppConfig_EnvOverrides tests environment variable precedence
func TestLoadAppConfig_EnvOverrides(t *testing.T) {
	t.Setenv("DATASET_PATH", "/srv/override.json")
	t.Setenv("PORT", "9090")

	path := writeConfig(t, `
dataset:
  path: data/routes.json
server:
  port: 8081
`)

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Dataset.Path != "/srv/override.json" {
		t.Errorf("env should override dataset path, got %q", cfg.Dataset.Path)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("env should override port, got %d", cfg.Server.Port)
	}

	t.Logf("✓ Environment overrides applied")
}

// TestDefaults_StandaloneUse tests the flag-only configuration path
func TestDefaults_StandaloneUse(t *testing.T) {
	cfg := Defaults()

	if cfg.Projection.DwellSeconds != DefaultDwellSeconds {
		t.Errorf("dwell = %d, want %d", cfg.Projection.DwellSeconds, DefaultDwellSeconds)
	}
	if cfg.Export.Format != "csv" {
		t.Errorf("format = %q, want csv", cfg.Export.Format)
	}
}
