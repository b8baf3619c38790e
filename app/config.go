package app

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/courtsight/chassis/logging"
)

// Config is the application-level configuration for the runtime chassis.
type Config struct {
	Logging logging.Config `yaml:"logging"`
	Faults  FaultsConfig   `yaml:"faults"`
	Perf    PerfConfig     `yaml:"perf"`
}

// FaultsConfig configures the error middleware.
type FaultsConfig struct {
	// MaxRecent bounds the retained ring of recent error records.
	MaxRecent int `yaml:"max_recent" validate:"omitempty,min=1"`
}

// PerfConfig configures performance instrumentation.
type PerfConfig struct {
	// ThresholdMS is the duration threshold in milliseconds above which
	// successful operations emit a performance record.
	ThresholdMS int `yaml:"threshold_ms" validate:"omitempty,min=1"`
}

// DefaultConfig returns the configuration used when no file is supplied.
func DefaultConfig() Config {
	return Config{
		Logging: logging.DefaultConfig(),
		Faults:  FaultsConfig{MaxRecent: 50},
		Perf:    PerfConfig{ThresholdMS: 1000},
	}
}

// LoadConfig reads the YAML config at path, overlays environment variables
// and validates the result. An empty path loads defaults plus environment.
//
// Recognized environment variables: CHASSIS_LOG_DIR, CHASSIS_LOG_LEVEL,
// CHASSIS_LOG_FORMAT, CHASSIS_PERF_THRESHOLD_MS.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}

		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(&cfg)

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("CHASSIS_LOG_DIR"); v != "" {
		cfg.Logging.Dir = v
	}

	if v := os.Getenv("CHASSIS_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}

	if v := os.Getenv("CHASSIS_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}

	if v := os.Getenv("CHASSIS_PERF_THRESHOLD_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			cfg.Perf.ThresholdMS = ms
		}
	}
}
