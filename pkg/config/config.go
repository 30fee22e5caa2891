package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
// All environment variables are read here and nowhere else.
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// Database (optional audit trail)
	Database DatabaseConfig

	// Redis (optional fetch cache)
	Redis RedisConfig

	// Market data
	Yahoo YahooConfig

	// Financial constants used by the valuation engine
	Market MarketConfig

	// Strategy engine configuration file (YAML); empty = built-in defaults
	StrategyConfigPath string

	// Logging
	LogLevel  string
	LogFormat string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Enabled  bool
}

// DatabaseConfig holds PostgreSQL configuration for the audit trail.
// The audit trail is optional; it is enabled only when URL is set.
type DatabaseConfig struct {
	URL string

	// Connection Pool
	MaxConns        int
	MinConns        int
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// YahooConfig holds Yahoo Finance endpoint configuration
type YahooConfig struct {
	QuoteBaseURL string
	NewsBaseURL  string
	PageBaseURL  string
	RatePerSec   float64 // requests per second against Yahoo endpoints
}

// MarketConfig holds market-wide constants fed into CAPM/WACC
type MarketConfig struct {
	RiskFreeRate      float64 // approximate 10y treasury yield
	EquityRiskPremium float64 // historical average
}

// Load reads configuration from environment variables.
// This is the only function that calls os.Getenv().
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		// Server
		Port: getEnv("PORT", "8090"),
		Env:  getEnv("ENV", "development"),

		// Database
		Database: DatabaseConfig{
			URL:             getEnv("DATABASE_URL", ""),
			MaxConns:        getEnvAsInt("DB_MAX_CONNS", 10),
			MinConns:        getEnvAsInt("DB_MIN_CONNS", 2),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", "1h"),
			MaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", "30m"),
		},

		// Redis
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
		},

		// Market data
		Yahoo: YahooConfig{
			QuoteBaseURL: getEnv("YAHOO_QUOTE_BASE_URL", "https://query1.finance.yahoo.com"),
			NewsBaseURL:  getEnv("YAHOO_NEWS_BASE_URL", "https://feeds.finance.yahoo.com"),
			PageBaseURL:  getEnv("YAHOO_PAGE_BASE_URL", "https://finance.yahoo.com"),
			RatePerSec:   getEnvAsFloat("YAHOO_RATE_PER_SEC", 2.0),
		},

		// Financial constants
		Market: MarketConfig{
			RiskFreeRate:      getEnvAsFloat("RISK_FREE_RATE", 0.045),
			EquityRiskPremium: getEnvAsFloat("EQUITY_RISK_PREMIUM", 0.08),
		},

		StrategyConfigPath: getEnv("STRATEGY_CONFIG", ""),

		// Logging
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "console"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// AuditEnabled reports whether the Postgres audit trail is configured
func (c *Config) AuditEnabled() bool {
	return c.Database.URL != ""
}

// validate checks if configuration values are sane
func (c *Config) validate() error {
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	if c.Market.RiskFreeRate < 0 || c.Market.RiskFreeRate > 0.25 {
		return fmt.Errorf("RISK_FREE_RATE %.4f out of range [0, 0.25]", c.Market.RiskFreeRate)
	}
	if c.Market.EquityRiskPremium <= 0 || c.Market.EquityRiskPremium > 0.25 {
		return fmt.Errorf("EQUITY_RISK_PREMIUM %.4f out of range (0, 0.25]", c.Market.EquityRiskPremium)
	}

	if c.Yahoo.RatePerSec <= 0 {
		return fmt.Errorf("YAHOO_RATE_PER_SEC must be positive")
	}

	return nil
}

// Helper functions (private, only used within this file)

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	paths := []string{
		".env",
	}

	// Also try relative to executable
	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}
