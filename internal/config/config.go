package config

import (
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig   `yaml:"server" envconfig:"SERVER"`
	Data     DataConfig     `yaml:"data" envconfig:"DATA"`
	Refresh  RefreshConfig  `yaml:"refresh" envconfig:"REFRESH"`
	Security SecurityConfig `yaml:"security" envconfig:"SECURITY"`
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT" default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" default:"15s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
}

// DataConfig locates the master workbook and names its sheets. The
// sheet names match the workbook producer's fixed layout; they are
// configuration of the loading collaborator, not of the engine.
type DataConfig struct {
	WorkbookPath  string `yaml:"workbook_path" envconfig:"WORKBOOK_PATH" default:"data/master.xlsx"`
	PriceSheet    string `yaml:"price_sheet" envconfig:"PRICE_SHEET" default:"stock_prices_latest"`
	DividendSheet string `yaml:"dividend_sheet" envconfig:"DIVIDEND_SHEET" default:"dividends"`
	EarningsSheet string `yaml:"earnings_sheet" envconfig:"EARNINGS_SHEET" default:"earnings"`
}

// RefreshConfig controls the background snapshot refresher.
type RefreshConfig struct {
	Enabled  bool   `yaml:"enabled" envconfig:"ENABLED" default:"true"`
	Schedule string `yaml:"schedule" envconfig:"SCHEDULE" default:"@every 5m"`
}

// SecurityConfig contains security-related configuration
type SecurityConfig struct {
	RateLimit RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// RateLimitConfig contains rate limiting configuration
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED" default:"true"`
	RPS     float64 `yaml:"rps" envconfig:"RPS" default:"100"`
	Burst   int     `yaml:"burst" envconfig:"BURST" default:"50"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level" envconfig:"LEVEL" default:"info"`
	Format string `yaml:"format" envconfig:"FORMAT" default:"json"`
}

// Load loads configuration from environment variables and, when
// present, a YAML config file. Environment values take precedence.
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("FINDASH", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	configFile := getConfigFilePath()
	if _, err := os.Stat(configFile); err == nil {
		fileConfig, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = mergeConfigs(*fileConfig, cfg)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// getConfigFilePath returns the config file location, overridable for
// deployments that keep the file outside the working directory.
func getConfigFilePath() string {
	if p := os.Getenv("FINDASH_CONFIG_FILE"); p != "" {
		return p
	}
	return "config.yaml"
}

// loadFromFile loads configuration from YAML file
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// mergeConfigs merges file config with env config (env takes precedence)
func mergeConfigs(fileConfig, envConfig Config) Config {
	if envConfig.Server.Port == 0 {
		envConfig.Server.Port = fileConfig.Server.Port
	}
	if envConfig.Server.ReadTimeout == 0 {
		envConfig.Server.ReadTimeout = fileConfig.Server.ReadTimeout
	}
	if envConfig.Server.WriteTimeout == 0 {
		envConfig.Server.WriteTimeout = fileConfig.Server.WriteTimeout
	}
	if envConfig.Server.IdleTimeout == 0 {
		envConfig.Server.IdleTimeout = fileConfig.Server.IdleTimeout
	}
	if envConfig.Server.ShutdownTimeout == 0 {
		envConfig.Server.ShutdownTimeout = fileConfig.Server.ShutdownTimeout
	}
	if envConfig.Data.WorkbookPath == "" {
		envConfig.Data.WorkbookPath = fileConfig.Data.WorkbookPath
	}
	if envConfig.Data.PriceSheet == "" {
		envConfig.Data.PriceSheet = fileConfig.Data.PriceSheet
	}
	if envConfig.Data.DividendSheet == "" {
		envConfig.Data.DividendSheet = fileConfig.Data.DividendSheet
	}
	if envConfig.Data.EarningsSheet == "" {
		envConfig.Data.EarningsSheet = fileConfig.Data.EarningsSheet
	}
	if envConfig.Refresh.Schedule == "" {
		envConfig.Refresh.Schedule = fileConfig.Refresh.Schedule
	}
	if envConfig.Logging.Level == "" {
		envConfig.Logging.Level = fileConfig.Logging.Level
	}
	if envConfig.Logging.Format == "" {
		envConfig.Logging.Format = fileConfig.Logging.Format
	}

	return envConfig
}

// validate checks the configuration for values that would fail at
// startup anyway, so the failure happens here with a usable message.
func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Data.WorkbookPath == "" {
		return fmt.Errorf("workbook path must not be empty")
	}
	if c.Data.PriceSheet == "" || c.Data.DividendSheet == "" || c.Data.EarningsSheet == "" {
		return fmt.Errorf("sheet names must not be empty")
	}
	switch c.Logging.Format {
	case "json", "text":
	default:
		return fmt.Errorf("invalid logging format: %s", c.Logging.Format)
	}
	return nil
}
