package infra

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"trade_console/internal/catalog"
	"trade_console/internal/domain"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultUserAgent is sent with catalog requests
	DefaultUserAgent = "trade-console/1.0"
)

// Config holds every application setting.
// LoadConfig applies defaults, then the file, then environment overrides.
type Config struct {
	App struct {
		Name      string `yaml:"name"`
		Version   string `yaml:"version"`
		InboxSize int    `yaml:"inbox_size"`
	} `yaml:"app"`

	Stake struct {
		Initial   string          `yaml:"initial"`
		Min       decimal.Decimal `yaml:"min"`
		MaxPayout decimal.Decimal `yaml:"max_payout"`
		Step      decimal.Decimal `yaml:"step"`
		Currency  string          `yaml:"currency"`
	} `yaml:"stake"`

	Catalog struct {
		URL             string                   `yaml:"url"`
		PollIntervalSec int                      `yaml:"poll_interval_sec"`
		MaxRetries      int                      `yaml:"max_retries"`
		DefaultSymbol   string                   `yaml:"default_symbol"`
		Categories      []catalog.CategoryConfig `yaml:"categories"`
		Labels          []catalog.LabelRule      `yaml:"labels"`
		Groups          []domain.MarketGroup     `yaml:"groups"` // served when url is empty
		Webhook         bool                     `yaml:"webhook"`
	} `yaml:"catalog"`

	Storage struct {
		Path              string `yaml:"path"`
		FavoritesKey      string `yaml:"favorites_key"`
		SelectedMarketKey string `yaml:"selected_market_key"`
	} `yaml:"storage"`

	Metrics struct {
		Addr      string `yaml:"addr"`
		PprofAddr string `yaml:"pprof_addr"`
	} `yaml:"metrics"`

	Logging struct {
		Level string `yaml:"level"`
		Dir   string `yaml:"dir"`
	} `yaml:"logging"`
}

// DefaultConfig returns the settings used for anything the file omits.
func DefaultConfig() *Config {
	var cfg Config
	cfg.App.Name = "trade-console"
	cfg.App.Version = "dev"
	cfg.App.InboxSize = 256

	cfg.Stake.Initial = "10"
	cfg.Stake.Min = decimal.RequireFromString("0.35")
	cfg.Stake.MaxPayout = decimal.NewFromInt(50000)
	cfg.Stake.Step = decimal.NewFromInt(1)
	cfg.Stake.Currency = "USD"

	cfg.Catalog.PollIntervalSec = 300
	cfg.Catalog.MaxRetries = 3
	cfg.Catalog.DefaultSymbol = "1HZ100V"

	cfg.Storage.FavoritesKey = catalog.FavoritesKey
	cfg.Storage.SelectedMarketKey = "selected-market"

	cfg.Metrics.Addr = "localhost:9090"
	cfg.Metrics.PprofAddr = "localhost:6060"

	cfg.Logging.Level = "info"
	cfg.Logging.Dir = "logs"
	return &cfg
}

// LoadConfig reads and parses the configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, domain.ErrConfigNotFound)
		}
		return nil, err
	}
	return ParseConfig(data)
}

// ParseConfig decodes YAML over the defaults, applies environment overrides
// and validates the result.
func ParseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, &domain.ConfigError{Field: "yaml", Err: err}
	}

	overrideWithEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks configuration validity
func (c *Config) Validate() error {
	if !c.Stake.Min.IsPositive() {
		return &domain.ConfigError{Field: "stake.min", Err: errors.New("must be positive")}
	}
	if c.Stake.MaxPayout.LessThan(c.Stake.Min) {
		return &domain.ConfigError{Field: "stake.max_payout", Err: fmt.Errorf("%s is below stake.min %s", c.Stake.MaxPayout, c.Stake.Min)}
	}
	if !c.Stake.Step.IsPositive() {
		return &domain.ConfigError{Field: "stake.step", Err: errors.New("must be positive")}
	}
	if strings.TrimSpace(c.Stake.Currency) == "" {
		return &domain.ConfigError{Field: "stake.currency", Err: errors.New("is required")}
	}

	if c.Catalog.URL != "" && !hasPrefix(c.Catalog.URL, "http://") && !hasPrefix(c.Catalog.URL, "https://") {
		return &domain.ConfigError{Field: "catalog.url", Err: fmt.Errorf("invalid URL: %s", c.Catalog.URL)}
	}
	if c.Catalog.URL == "" && len(c.Catalog.Groups) == 0 {
		return &domain.ConfigError{Field: "catalog.url", Err: errors.New("url or groups is required")}
	}
	if c.Catalog.PollIntervalSec <= 0 {
		return &domain.ConfigError{Field: "catalog.poll_interval_sec", Err: errors.New("must be positive")}
	}
	seen := make(map[domain.Category]bool)
	for _, cat := range c.Catalog.Categories {
		if cat.ID == "" || cat.Label == "" {
			return &domain.ConfigError{Field: "catalog.categories", Err: errors.New("id and label are required")}
		}
		if seen[cat.ID] {
			return &domain.ConfigError{Field: "catalog.categories", Err: fmt.Errorf("duplicate category %s", cat.ID)}
		}
		seen[cat.ID] = true
	}
	for i, rule := range c.Catalog.Labels {
		if rule.Display == "" {
			return &domain.ConfigError{Field: fmt.Sprintf("catalog.labels[%d]", i), Err: errors.New("display is required")}
		}
	}

	if c.App.InboxSize <= 0 {
		return &domain.ConfigError{Field: "app.inbox_size", Err: errors.New("must be positive")}
	}
	return nil
}

func hasPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && s[0:len(prefix)] == prefix
}

// overrideWithEnv overwrites settings from environment variables when set.
func overrideWithEnv(cfg *Config) {
	if url := os.Getenv("TRADE_CATALOG_URL"); url != "" {
		cfg.Catalog.URL = url
	}
	if currency := os.Getenv("TRADE_CURRENCY"); currency != "" {
		cfg.Stake.Currency = strings.ToUpper(currency)
	}
	if path := os.Getenv("TRADE_DB_PATH"); path != "" {
		cfg.Storage.Path = path
	}
	if level := os.Getenv("TRADE_LOG_LEVEL"); level != "" {
		cfg.Logging.Level = level
	}
}
