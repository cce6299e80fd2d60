package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Dataset   DatasetConfig
	Charts    ChartsConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig
	Log       LogConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// DatasetConfig holds input dataset configuration
type DatasetConfig struct {
	DefaultPath            string `mapstructure:"default_path"`
	UseDefaultWhenNoUpload bool   `mapstructure:"use_default_when_no_upload"`
	MaxUploadBytes         int64  `mapstructure:"max_upload_bytes"`
	PreviewRows            int    `mapstructure:"preview_rows"`
}

// ChartsConfig holds chart rendering configuration
type ChartsConfig struct {
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`
}

// CacheConfig holds report cache configuration
type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"` // uploads per minute per client IP, 0 disables
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Load loads configuration from a .env file, environment variables and config files
func Load() (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, fmt.Errorf("error reading .env file: %w", err)
	}

	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/listinglens/")

	// Environment variable settings: LISTINGLENS_SERVER_PORT -> server.port
	v.SetEnvPrefix("LISTINGLENS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// loadEnvFile loads ./.env into the process environment if it exists.
// Variables already set in the environment win.
func loadEnvFile() error {
	if _, err := os.Stat(".env"); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return godotenv.Load(".env")
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:*"})

	// Dataset defaults
	v.SetDefault("dataset.default_path", "cleaned_replaced_banggood.csv")
	v.SetDefault("dataset.use_default_when_no_upload", false)
	v.SetDefault("dataset.max_upload_bytes", 32<<20) // 32 MiB
	v.SetDefault("dataset.preview_rows", 5)

	// Chart defaults
	v.SetDefault("charts.width", 640)
	v.SetDefault("charts.height", 480)

	// Cache defaults
	v.SetDefault("cache.ttl", "30m")

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 60)

	// Log defaults
	v.SetDefault("log.level", "info")
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Server.Port == "" {
		return fmt.Errorf("server port is required (set LISTINGLENS_SERVER_PORT)")
	}
	switch config.Server.Environment {
	case "development", "test", "production":
	default:
		return fmt.Errorf("environment must be 'development', 'test' or 'production', got: %s", config.Server.Environment)
	}
	if config.Dataset.MaxUploadBytes <= 0 {
		return fmt.Errorf("dataset max_upload_bytes must be positive, got: %d", config.Dataset.MaxUploadBytes)
	}
	if config.Dataset.PreviewRows <= 0 {
		return fmt.Errorf("dataset preview_rows must be positive, got: %d", config.Dataset.PreviewRows)
	}
	if config.Charts.Width <= 0 || config.Charts.Height <= 0 {
		return fmt.Errorf("chart size must be positive, got: %dx%d", config.Charts.Width, config.Charts.Height)
	}
	if config.Cache.TTL <= 0 {
		return fmt.Errorf("cache ttl must be positive, got: %s", config.Cache.TTL)
	}
	if config.RateLimit.PerIP < 0 {
		return fmt.Errorf("ratelimit per_ip must not be negative, got: %d", config.RateLimit.PerIP)
	}
	if _, err := zerolog.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("log level %q: %w", config.Log.Level, err)
	}
	return nil
}
