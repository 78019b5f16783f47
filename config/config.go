package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Dataset   DatasetConfig
	Swap      SwapConfig
	Cache     CacheConfig
	History   HistoryConfig
	RateLimit RateLimitConfig
	Log       LogConfig
	Metrics   MetricsConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// DatasetConfig points at the three nutrient tables and the optional
// substitution table override
type DatasetConfig struct {
	GroupsFile        string `mapstructure:"groups_file"`
	FoodsFile         string `mapstructure:"foods_file"`
	NutrientsFile     string `mapstructure:"nutrients_file"`
	SubstitutionsFile string `mapstructure:"substitutions_file"`
}

// SwapConfig tunes recommendation output
type SwapConfig struct {
	MaxPerGoal         int     `mapstructure:"max_per_goal"`
	MinImpact          float64 `mapstructure:"min_impact"`
	MaxSuggestions     int     `mapstructure:"max_suggestions"`
	MinSuggestionScore float64 `mapstructure:"min_suggestion_score"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	Type       string        `mapstructure:"type"` // "memory" or "redis"
	RedisURL   string        `mapstructure:"redis_url"`
	TTL        time.Duration `mapstructure:"ttl"`
	MaxEntries int           `mapstructure:"max_entries"`
}

// HistoryConfig locates the applied-swap database
type HistoryConfig struct {
	Path string `mapstructure:"path"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"` // requests per minute
	Burst int `mapstructure:"burst"`
}

// LogConfig holds logger configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// MetricsConfig controls the Prometheus endpoint
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// IsProduction reports whether the server runs in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// Load loads configuration from a .env file, environment variables and config files.
// Environment variables use the NUTRISWAP_ prefix with '.' replaced by '_',
// e.g. NUTRISWAP_CACHE_REDIS_URL.
func Load() (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, fmt.Errorf("error reading .env file: %w", err)
	}

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/nutriswap/")

	v.SetEnvPrefix("NUTRISWAP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Config file is optional; env vars and defaults cover everything
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// loadEnvFile loads ./.env when present. Variables already set in the
// environment are not overridden.
func loadEnvFile() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:*", "http://127.0.0.1:*"})

	v.SetDefault("dataset.groups_file", "data/FD_GROUP.csv")
	v.SetDefault("dataset.foods_file", "data/FOOD_DES.csv")
	v.SetDefault("dataset.nutrients_file", "data/NUT_DATA.csv")
	v.SetDefault("dataset.substitutions_file", "")

	v.SetDefault("swap.max_per_goal", 5)
	v.SetDefault("swap.min_impact", 0.1)
	v.SetDefault("swap.max_suggestions", 5)
	v.SetDefault("swap.min_suggestion_score", 40)

	v.SetDefault("cache.type", "memory")
	v.SetDefault("cache.redis_url", "")
	v.SetDefault("cache.ttl", "1h")
	v.SetDefault("cache.max_entries", 10000)

	v.SetDefault("history.path", "nutriswap.db")

	v.SetDefault("ratelimit.per_ip", 120)
	v.SetDefault("ratelimit.burst", 20)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}

	if config.Cache.Type != "memory" && config.Cache.Type != "redis" {
		return fmt.Errorf("cache type must be 'memory' or 'redis', got: %s", config.Cache.Type)
	}

	if config.Cache.Type == "redis" && config.Cache.RedisURL == "" {
		return fmt.Errorf("Redis URL is required when cache type is 'redis'")
	}

	if config.Swap.MaxPerGoal <= 0 {
		return fmt.Errorf("swap.max_per_goal must be positive, got: %d", config.Swap.MaxPerGoal)
	}

	if config.Swap.MinImpact <= 0 || config.Swap.MinImpact >= 1 {
		return fmt.Errorf("swap.min_impact must be in (0,1), got: %v", config.Swap.MinImpact)
	}

	// 0 turns rate limiting off
	if config.RateLimit.PerIP < 0 {
		return fmt.Errorf("ratelimit.per_ip must not be negative, got: %d", config.RateLimit.PerIP)
	}

	if config.Log.Format != "json" && config.Log.Format != "console" {
		return fmt.Errorf("log format must be 'json' or 'console', got: %s", config.Log.Format)
	}

	if config.Metrics.Enabled && !strings.HasPrefix(config.Metrics.Path, "/") {
		return fmt.Errorf("metrics path must start with '/', got: %q", config.Metrics.Path)
	}

	return nil
}
