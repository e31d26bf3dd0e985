package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DemoAPIKey is the sentinel value that disables the Alpha Vantage provider.
const DemoAPIKey = "demo"

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		Output string `yaml:"output"`
	} `yaml:"logging"`
	Providers struct {
		// Minimum spacing between outbound calls to the same provider.
		MinRequestInterval time.Duration `yaml:"min_request_interval"`
		AlphaVantage       struct {
			APIKey  string        `yaml:"api_key"`
			BaseURL string        `yaml:"base_url"`
			Timeout time.Duration `yaml:"timeout"`
		} `yaml:"alphavantage"`
		Yahoo struct {
			Enabled bool          `yaml:"enabled"`
			BaseURL string        `yaml:"base_url"`
			Timeout time.Duration `yaml:"timeout"`
		} `yaml:"yahoo"`
		CoinGecko struct {
			Enabled bool          `yaml:"enabled"`
			BaseURL string        `yaml:"base_url"`
			Timeout time.Duration `yaml:"timeout"`
		} `yaml:"coingecko"`
	} `yaml:"providers"`
	Cache struct {
		Backend string `yaml:"backend"` // "memory" or "redis"
		Prefix  string `yaml:"prefix"`
		Redis   struct {
			Host     string `yaml:"host"`
			Port     int    `yaml:"port"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
		} `yaml:"redis"`
		TTL struct {
			Price    time.Duration `yaml:"price"`
			Signal   time.Duration `yaml:"signal"`
			Metadata time.Duration `yaml:"metadata"`
		} `yaml:"ttl"`
	} `yaml:"cache"`
	Stream struct {
		RefreshInterval time.Duration `yaml:"refresh_interval"`
	} `yaml:"stream"`
	Events struct {
		Enabled bool     `yaml:"enabled"`
		Brokers []string `yaml:"brokers"`
		Topic   string   `yaml:"topic"`
	} `yaml:"events"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	c.applyDefaults()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("ALPHA_VANTAGE_API_KEY"); v != "" {
		c.Providers.AlphaVantage.APIKey = v
	}
	if v := os.Getenv("YAHOO_FINANCE_ENABLED"); v != "" {
		c.Providers.Yahoo.Enabled = v == "true" || v == "1"
	}
	if v := os.Getenv("COINGECKO_ENABLED"); v != "" {
		c.Providers.CoinGecko.Enabled = v == "true" || v == "1"
	}
	if v := os.Getenv("REDIS_HOST"); v != "" {
		c.Cache.Backend = "redis"
		c.Cache.Redis.Host = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		c.Cache.Redis.Password = v
	}
	if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.Server.Port = p
		}
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Events.Enabled = true
		c.Events.Brokers = strings.Split(v, ",")
	}

	return c, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 10 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 10 * time.Second
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10 * time.Second
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "console"
	}
	if c.Logging.Output == "" {
		c.Logging.Output = "stdout"
	}
	if c.Providers.MinRequestInterval == 0 {
		c.Providers.MinRequestInterval = time.Second
	}
	if c.Providers.AlphaVantage.APIKey == "" {
		c.Providers.AlphaVantage.APIKey = DemoAPIKey
	}
	if c.Providers.AlphaVantage.BaseURL == "" {
		c.Providers.AlphaVantage.BaseURL = "https://www.alphavantage.co/query"
	}
	if c.Providers.AlphaVantage.Timeout == 0 {
		c.Providers.AlphaVantage.Timeout = 15 * time.Second
	}
	if c.Providers.Yahoo.BaseURL == "" {
		c.Providers.Yahoo.BaseURL = "https://query1.finance.yahoo.com/v8/finance/chart"
	}
	if c.Providers.Yahoo.Timeout == 0 {
		c.Providers.Yahoo.Timeout = 10 * time.Second
	}
	if c.Providers.CoinGecko.BaseURL == "" {
		c.Providers.CoinGecko.BaseURL = "https://api.coingecko.com/api/v3"
	}
	if c.Providers.CoinGecko.Timeout == 0 {
		c.Providers.CoinGecko.Timeout = 10 * time.Second
	}
	if c.Cache.Backend == "" {
		c.Cache.Backend = "memory"
	}
	if c.Cache.Prefix == "" {
		c.Cache.Prefix = "insightsapi"
	}
	if c.Cache.Redis.Host == "" {
		c.Cache.Redis.Host = "localhost"
	}
	if c.Cache.Redis.Port == 0 {
		c.Cache.Redis.Port = 6379
	}
	if c.Cache.TTL.Price == 0 {
		c.Cache.TTL.Price = 5 * time.Minute
	}
	if c.Cache.TTL.Signal == 0 {
		c.Cache.TTL.Signal = 10 * time.Minute
	}
	if c.Cache.TTL.Metadata == 0 {
		c.Cache.TTL.Metadata = 24 * time.Hour
	}
	if c.Stream.RefreshInterval == 0 {
		c.Stream.RefreshInterval = 30 * time.Second
	}
	if c.Events.Topic == "" {
		c.Events.Topic = "signal-events"
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Cache.Backend != "memory" && c.Cache.Backend != "redis" {
		return fmt.Errorf("cache.backend must be 'memory' or 'redis', got '%s'", c.Cache.Backend)
	}
	if c.Events.Enabled && len(c.Events.Brokers) == 0 {
		return fmt.Errorf("events.brokers cannot be empty when events are enabled")
	}
	if c.Providers.MinRequestInterval < 0 {
		return fmt.Errorf("providers.min_request_interval cannot be negative")
	}
	return nil
}

// AlphaVantageEnabled reports whether a real (non-sentinel) key is configured.
func (c *Config) AlphaVantageEnabled() bool {
	return c.Providers.AlphaVantage.APIKey != "" && c.Providers.AlphaVantage.APIKey != DemoAPIKey
}
