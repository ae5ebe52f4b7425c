package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Supported record sources
const (
	SourceCSV      = "csv"
	SourcePostgres = "postgres"
	SourceSQLite   = "sqlite"
)

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Config holds all configuration for the application
type Config struct {
	// Common
	Environment string
	LogLevel    string

	// Record source
	Data DataConfig

	// Database (PostgreSQL record source)
	Database DatabaseConfig

	// Redis (record snapshot cache)
	Redis RedisConfig

	// Services
	API APIConfig
}

// DataConfig selects and configures the price record source
type DataConfig struct {
	Source       string // "csv", "postgres" or "sqlite"
	CSVPath      string
	SQLitePath   string
	Table        string
	CacheEnabled bool
	CacheTTL     time.Duration
	CacheKey     string
}

// DatabaseConfig holds PostgreSQL configuration
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Database        string
	SSLMode         string
	MaxConnections  int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host         string
	Port         int
	Password     string
	DB           int
	PoolSize     int
	MinIdleConns int
}

// APIConfig holds REST API configuration
type APIConfig struct {
	Port         int
	JWTSecret    string
	RateLimitRPS int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Load loads configuration from environment variables
// It automatically loads .env file if it exists in the current directory
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	cfg := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		Data: DataConfig{
			Source:       strings.ToLower(getEnv("DATA_SOURCE", SourceCSV)),
			CSVPath:      getEnv("DATA_CSV_PATH", "data/stocks.csv"),
			SQLitePath:   getEnv("DATA_SQLITE_PATH", "data/stocks.db"),
			Table:        getEnv("DATA_TABLE", "price_records"),
			CacheEnabled: getEnvAsBool("DATA_CACHE_ENABLED", false),
			CacheTTL:     getEnvAsDuration("DATA_CACHE_TTL", 5*time.Minute),
			CacheKey:     getEnv("DATA_CACHE_KEY", "stock-analysis:records"),
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnvAsInt("DB_PORT", 5432),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", "postgres"),
			Database:        getEnv("DB_NAME", "stocks"),
			SSLMode:         getEnv("DB_SSL_MODE", "disable"),
			MaxConnections:  getEnvAsInt("DB_MAX_CONNECTIONS", 10),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
		},
		Redis: RedisConfig{
			Host:         getEnv("REDIS_HOST", "localhost"),
			Port:         getEnvAsInt("REDIS_PORT", 6379),
			Password:     getEnv("REDIS_PASSWORD", ""),
			DB:           getEnvAsInt("REDIS_DB", 0),
			PoolSize:     getEnvAsInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: getEnvAsInt("REDIS_MIN_IDLE_CONNS", 2),
		},
		API: APIConfig{
			Port:         getEnvAsInt("API_PORT", 8090),
			JWTSecret:    getEnv("API_JWT_SECRET", ""),
			RateLimitRPS: getEnvAsInt("API_RATE_LIMIT_RPS", 100),
			ReadTimeout:  getEnvAsDuration("API_READ_TIMEOUT", 10*time.Second),
			WriteTimeout: getEnvAsDuration("API_WRITE_TIMEOUT", 30*time.Second),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.Data.Source {
	case SourceCSV:
		if c.Data.CSVPath == "" {
			return fmt.Errorf("DATA_CSV_PATH is required for the csv source")
		}
	case SourceSQLite:
		if c.Data.SQLitePath == "" {
			return fmt.Errorf("DATA_SQLITE_PATH is required for the sqlite source")
		}
	case SourcePostgres:
		if c.Database.Host == "" {
			return fmt.Errorf("DB_HOST is required for the postgres source")
		}
	default:
		return fmt.Errorf("unknown DATA_SOURCE %q (expected csv, postgres or sqlite)", c.Data.Source)
	}
	if c.Data.Source != SourceCSV && !identifierPattern.MatchString(c.Data.Table) {
		return fmt.Errorf("DATA_TABLE %q is not a valid table name", c.Data.Table)
	}
	if c.Data.CacheEnabled {
		if c.Redis.Host == "" {
			return fmt.Errorf("REDIS_HOST is required when DATA_CACHE_ENABLED is set")
		}
		if c.Data.CacheTTL <= 0 {
			return fmt.Errorf("DATA_CACHE_TTL must be positive")
		}
	}
	if c.API.Port <= 0 || c.API.Port > 65535 {
		return fmt.Errorf("API_PORT %d is out of range", c.API.Port)
	}
	if c.API.RateLimitRPS <= 0 {
		return fmt.Errorf("API_RATE_LIMIT_RPS must be positive")
	}
	return nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return intValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return boolValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return duration
}
