package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// WatchedAsset names one asset to track: the display name shown on its box and
// the exchange symbol used when fetching.
type WatchedAsset struct {
	Name   string `yaml:"name"`
	Symbol string `yaml:"symbol"`
}

// Config holds all application configuration.
type Config struct {
	Assets []WatchedAsset `yaml:"assets"`

	DataSource struct {
		// BaseURL of the exchange REST API.
		BaseURL string `yaml:"base_url"`
		Proxy   string `yaml:"proxy"`
	} `yaml:"data_source"`

	Chainlink struct {
		RPCURL string `yaml:"rpc_url"`
		// Feeds maps symbol to the aggregator contract address.
		Feeds map[string]string `yaml:"feeds"`
	} `yaml:"chainlink"`

	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`

	Schedule struct {
		RefreshCron string `yaml:"refresh_cron"`
	} `yaml:"schedule"`

	UI struct {
		Theme         string `yaml:"theme"`
		Compact       bool   `yaml:"compact"`
		TimeRangeDays int    `yaml:"time_range_days"`
	} `yaml:"ui"`
}

// Load reads config from a YAML file, then applies environment overrides and
// defaults. A missing file is not an error; overrides and defaults still apply.
// Env keys are accepted in both lower_case and UPPER_CASE forms.
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

	get := func(keys ...string) string {
		for _, k := range keys {
			if v := strings.TrimSpace(os.Getenv(k)); v != "" {
				return v
			}
		}
		return ""
	}

	if v := get("binance_base_url", "BINANCE_BASE_URL"); v != "" {
		cfg.DataSource.BaseURL = v
	}
	if v := get("https_proxy", "HTTPS_PROXY"); v != "" {
		cfg.DataSource.Proxy = v
	}
	if v := get("rpc_url", "RPC_URL"); v != "" {
		cfg.Chainlink.RPCURL = v
	}
	if v := get("sqlite_path", "SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := get("refresh_cron", "REFRESH_CRON"); v != "" {
		cfg.Schedule.RefreshCron = v
	}
	if v := get("time_range_days", "TIME_RANGE_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.UI.TimeRangeDays = n
		}
	}

	// Defaults
	if len(cfg.Assets) == 0 {
		cfg.Assets = []WatchedAsset{
			{Name: "Bitcoin", Symbol: "BTCUSDT"},
			{Name: "Ethereum", Symbol: "ETHUSDT"},
			{Name: "Solana", Symbol: "SOLUSDT"},
		}
	}
	if cfg.DataSource.BaseURL == "" {
		cfg.DataSource.BaseURL = "https://api.binance.com"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/coinboard.db"
	}
	if cfg.Schedule.RefreshCron == "" {
		cfg.Schedule.RefreshCron = "0 */1 * * * *"
	}
	if cfg.UI.Theme == "" {
		cfg.UI.Theme = "dark"
	}
	if cfg.UI.TimeRangeDays == 0 {
		cfg.UI.TimeRangeDays = 30
	}

	return cfg, nil
}

// Symbols returns the watched exchange symbols in config order.
func (c *Config) Symbols() []string {
	out := make([]string, 0, len(c.Assets))
	for _, a := range c.Assets {
		out = append(out, a.Symbol)
	}
	return out
}

// Validate checks that required fields are usable.
func (c *Config) Validate() error {
	if len(c.Assets) == 0 {
		return fmt.Errorf("assets list is empty")
	}
	seen := make(map[string]bool, len(c.Assets))
	for _, a := range c.Assets {
		if strings.TrimSpace(a.Symbol) == "" {
			return fmt.Errorf("asset %q has no symbol", a.Name)
		}
		if seen[a.Symbol] {
			return fmt.Errorf("duplicate asset symbol %q", a.Symbol)
		}
		seen[a.Symbol] = true
	}
	if c.UI.TimeRangeDays < 0 {
		return fmt.Errorf("ui.time_range_days must not be negative")
	}
	return nil
}
