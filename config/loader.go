package config

import (
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Projection defaults. Dwell mirrors the schedule padding buses get at
// each intermediate stop; the speed bounds bracket plausible urban bus
// averages (1 m/s walking pace to 80 km/h).
const (
	DefaultDwellSeconds  = 30
	DefaultMinAvgSpeedMS = 1.0
	DefaultMaxAvgSpeedMS = 22.2
)

// LoadAppConfig loads and validates the application configuration. An
// empty path falls back to the conventional locations. A .env file, when
// present, is folded into the process environment first so deployment
// overrides win over the YAML values.
func LoadAppConfig(path string) (AppConfig, error) {
	_ = godotenv.Load()

	paths := []string{"config.yml", "config.yaml"}
	if path != "" {
		paths = []string{path}
	}
	var data []byte
	var err error
	for _, p := range paths {
		data, err = os.ReadFile(p)
		if err == nil {
			break
		}
	}
	if err != nil {
		return AppConfig{}, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return AppConfig{}, err
	}
	v := validator.New()
	if err := v.Struct(cfg.Server); err != nil {
		return AppConfig{}, err
	}
	if err := v.Struct(cfg.Projection); err != nil {
		return AppConfig{}, err
	}
	if err := v.Struct(cfg.Export); err != nil {
		return AppConfig{}, err
	}
	applyDefaults(&cfg)
	applyEnvOverrides(&cfg)
	return cfg, nil
}

// Defaults returns a configuration usable without any config file, for
// CLI runs driven entirely by flags.
func Defaults() AppConfig {
	var cfg AppConfig
	applyDefaults(&cfg)
	applyEnvOverrides(&cfg)
	return cfg
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Projection.DwellSeconds == 0 {
		cfg.Projection.DwellSeconds = DefaultDwellSeconds
	}
	if cfg.Projection.MinAvgSpeedMS == nil {
		v := DefaultMinAvgSpeedMS
		cfg.Projection.MinAvgSpeedMS = &v
	}
	if cfg.Projection.MaxAvgSpeedMS == nil {
		v := DefaultMaxAvgSpeedMS
		cfg.Projection.MaxAvgSpeedMS = &v
	}
	if cfg.Export.Format == "" {
		cfg.Export.Format = "csv"
	}
	if cfg.Export.Output == "" {
		cfg.Export.Output = "node_table.csv"
	}
	if cfg.Export.Codespace == "" {
		cfg.Export.Codespace = "BUS"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
}

func applyEnvOverrides(cfg *AppConfig) {
	if v := os.Getenv("DATASET_PATH"); v != "" {
		cfg.Dataset.Path = v
	}
	if v := os.Getenv("DATASET_CACHE_PATH"); v != "" {
		cfg.Dataset.CachePath = v
	}
	if v := os.Getenv("NATS_URL"); v != "" {
		cfg.Publish.NATSURL = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Store.SQLitePath = v
	}
	if v := os.Getenv("POSTGRES_DSN"); v != "" {
		cfg.Store.PostgresDSN = v
	}
	if v := os.Getenv("CODESPACE"); v != "" {
		cfg.Export.Codespace = v
	}
	if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil && p > 0 {
			cfg.Server.Port = p
		}
	}
}
