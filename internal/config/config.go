package config

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds all configuration for the tracker
type Config struct {
	Database  DatabaseConfig
	Cache     CacheConfig
	Scheduler SchedulerConfig
	Business  BusinessConfig
	Logging   LoggingConfig
}

type DatabaseConfig struct {
	Path string
}

type CacheConfig struct {
	Enabled  bool
	Addr     string
	Password string
	DB       int
}

type SchedulerConfig struct {
	RefreshInterval string
}

type BusinessConfig struct {
	MonthlyIncome   string
	DefaultCurrency string
}

type LoggingConfig struct {
	Level  string
	Format string
}

// Load reads configuration from environment variables and files
func Load() (*Config, error) {
	// Set defaults
	viper.SetDefault("SQLITE_PATH", "./data/fintrack.db")
	viper.SetDefault("CACHE_ENABLED", false)
	viper.SetDefault("CACHE_ADDR", "localhost:6379")
	viper.SetDefault("CACHE_PASSWORD", "")
	viper.SetDefault("CACHE_DB", 0)
	viper.SetDefault("SUMMARY_REFRESH_INTERVAL", "5m")
	viper.SetDefault("MONTHLY_INCOME", "0")
	viper.SetDefault("DEFAULT_CURRENCY", "USD")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "text")

	// Read from environment variables
	viper.AutomaticEnv()

	// Try to read from .env file (optional)
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	// Don't fail if .env file doesn't exist
	_ = viper.ReadInConfig()

	// The keys are flat env-style names, so the struct is filled field by
	// field; Unmarshal would look for nested keys and miss all of them.
	config := Config{
		Database: DatabaseConfig{
			Path: viper.GetString("SQLITE_PATH"),
		},
		Cache: CacheConfig{
			Enabled:  viper.GetBool("CACHE_ENABLED"),
			Addr:     viper.GetString("CACHE_ADDR"),
			Password: viper.GetString("CACHE_PASSWORD"),
			DB:       viper.GetInt("CACHE_DB"),
		},
		Scheduler: SchedulerConfig{
			RefreshInterval: viper.GetString("SUMMARY_REFRESH_INTERVAL"),
		},
		Business: BusinessConfig{
			MonthlyIncome:   viper.GetString("MONTHLY_INCOME"),
			DefaultCurrency: viper.GetString("DEFAULT_CURRENCY"),
		},
		Logging: LoggingConfig{
			Level:  viper.GetString("LOG_LEVEL"),
			Format: viper.GetString("LOG_FORMAT"),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Database.Path == "" {
		return fmt.Errorf("SQLITE_PATH is required")
	}

	if c.Cache.Enabled && c.Cache.Addr == "" {
		return fmt.Errorf("CACHE_ADDR is required when the cache is enabled")
	}

	if _, err := time.ParseDuration(c.Scheduler.RefreshInterval); err != nil {
		return fmt.Errorf("SUMMARY_REFRESH_INTERVAL must be a valid duration: %w", err)
	}

	income, err := decimal.NewFromString(c.Business.MonthlyIncome)
	if err != nil {
		return fmt.Errorf("MONTHLY_INCOME must be a valid decimal: %w", err)
	}
	if income.IsNegative() {
		return fmt.Errorf("MONTHLY_INCOME must not be negative")
	}

	return nil
}

// GetMonthlyIncome returns the configured monthly income as decimal
func (c *Config) GetMonthlyIncome() decimal.Decimal {
	income, _ := decimal.NewFromString(c.Business.MonthlyIncome)
	return income
}

// GetRefreshInterval returns the summary refresh interval as duration
func (c *Config) GetRefreshInterval() time.Duration {
	interval, _ := time.ParseDuration(c.Scheduler.RefreshInterval)
	return interval
}
