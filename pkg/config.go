package pkg

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the dashboard settings. All fields have working
// defaults so the dashboard runs without any settings file.
type Config struct {
	APIURL         string   `yaml:"api_url"`
	TimeoutSeconds int      `yaml:"timeout_seconds"`
	ChartWindow    int      `yaml:"chart_window"`
	RankLimit      int      `yaml:"rank_limit"`
	Countries      []string `yaml:"countries"`
	LogLevel       string   `yaml:"log_level"`
	SnapshotPath   string   `yaml:"snapshot_path"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() Config {
	return Config{
		APIURL:         "https://api.covid19api.com",
		TimeoutSeconds: 20,
		ChartWindow:    14,
		RankLimit:      0,
		LogLevel:       "info",
		SnapshotPath:   "chart.png",
	}
}

// LoadConfig reads settings from an optional yaml file, then applies
// environment overrides. A missing file is not an error; a present but
// invalid one is.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return cfg, fmt.Errorf("read config: %w", err)
			}
		} else if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config: %w", err)
		}
	}
	applyEnv(&cfg)
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("COVIDASH_API_URL"); v != "" {
		cfg.APIURL = v
	}
	if v := os.Getenv("COVIDASH_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("COVIDASH_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.TimeoutSeconds = n
		}
	}
	if v := os.Getenv("COVIDASH_SNAPSHOT_PATH"); v != "" {
		cfg.SnapshotPath = v
	}
}

func (cfg Config) validate() error {
	if cfg.APIURL == "" {
		return errors.New("api_url must not be empty")
	}
	if cfg.TimeoutSeconds <= 0 {
		return fmt.Errorf("timeout_seconds must be positive, got %d", cfg.TimeoutSeconds)
	}
	if cfg.ChartWindow <= 0 {
		return fmt.Errorf("chart_window must be positive, got %d", cfg.ChartWindow)
	}
	if cfg.RankLimit < 0 {
		return fmt.Errorf("rank_limit must not be negative, got %d", cfg.RankLimit)
	}
	return nil
}

// Timeout is the per-request HTTP timeout.
func (cfg Config) Timeout() time.Duration {
	return time.Duration(cfg.TimeoutSeconds) * time.Second
}
