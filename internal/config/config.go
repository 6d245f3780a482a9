package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Market struct {
		Proxy          string `yaml:"proxy"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
	} `yaml:"market"`
	Fetch struct {
		MaxConcurrency int `yaml:"max_concurrency"`
	} `yaml:"fetch"`
	Trend struct {
		ShortWindow  int `yaml:"short_window"`
		LongWindow   int `yaml:"long_window"`
		ForecastDays int `yaml:"forecast_days"`
		Degree       int `yaml:"degree"`
	} `yaml:"trend"`
	Ledger struct {
		EarnOnSell *bool `yaml:"earn_on_sell"`
	} `yaml:"ledger"`
	Watch struct {
		Cron    string   `yaml:"cron"`
		Symbols []string `yaml:"symbols"`
	} `yaml:"watch"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults. A missing file is not an error: defaults apply.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Market.Proxy = v
	}
	if v := os.Getenv("FETCH_MAX_CONCURRENCY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Fetch.MaxConcurrency = n
		}
	}
	if v := os.Getenv("WATCH_CRON"); v != "" {
		cfg.Watch.Cron = v
	}

	// Defaults
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/greenvest.db"
	}
	if cfg.Market.TimeoutSeconds == 0 {
		cfg.Market.TimeoutSeconds = 30
	}
	if cfg.Fetch.MaxConcurrency == 0 {
		cfg.Fetch.MaxConcurrency = 5
	}
	if cfg.Trend.ShortWindow == 0 {
		cfg.Trend.ShortWindow = 20
	}
	if cfg.Trend.LongWindow == 0 {
		cfg.Trend.LongWindow = 50
	}
	if cfg.Trend.ForecastDays == 0 {
		cfg.Trend.ForecastDays = 10
	}
	if cfg.Trend.Degree == 0 {
		cfg.Trend.Degree = 3
	}
	if cfg.Ledger.EarnOnSell == nil {
		t := true // reference behavior: trading activity earns on both sides
		cfg.Ledger.EarnOnSell = &t
	}
	if cfg.Watch.Cron == "" {
		cfg.Watch.Cron = "0 0 9 * * 1-5"
	}

	return cfg, nil
}

// Validate checks that all numeric settings are usable.
func (c *Config) Validate() error {
	if c.Fetch.MaxConcurrency <= 0 {
		return fmt.Errorf("fetch.max_concurrency must be positive")
	}
	if c.Trend.ShortWindow <= 0 || c.Trend.LongWindow <= 0 {
		return fmt.Errorf("trend windows must be positive")
	}
	if c.Trend.ShortWindow >= c.Trend.LongWindow {
		return fmt.Errorf("trend.short_window must be smaller than trend.long_window")
	}
	if c.Trend.ForecastDays <= 0 {
		return fmt.Errorf("trend.forecast_days must be positive")
	}
	if c.Trend.Degree < 1 {
		return fmt.Errorf("trend.degree must be at least 1")
	}
	return nil
}
