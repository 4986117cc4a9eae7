package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Application settings
type Config struct {
	Server   ServerConfig
	Logging  LoggingConfig
	Storage  StorageConfig
	Import   ImportConfig
	Negative NegativeConfig
	Remote   RemoteConfig
}

// Server settings
type ServerConfig struct {
	Port               string
	RequestTimeout     time.Duration
	ShutdownTimeout    time.Duration
	RateLimitPerSecond int
	RateLimitBurst     int
}

// Storage settings
type StorageConfig struct {
	// memory or sqlite
	Driver     string
	SQLitePath string
}

type ImportConfig struct {
	MaxUploadBytes int64
}

type NegativeConfig struct {
	// YAML file with lists seeded into an empty store
	SeedFile string
}

// Remote provider settings
type RemoteConfig struct {
	FeedURL            string
	SinkURL            string
	SinkSecret         string
	Timeout            time.Duration
	RateLimitPerSecond int
}

// Logging settings
type LoggingConfig struct {
	Level string
}

const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
)

// Load reads .env (if present) and then the environment
func Load() (*Config, error) {
	_ = godotenv.Load()

	config := &Config{
		Server: ServerConfig{
			Port:               getEnv("PORT", "8080"),
			RequestTimeout:     getDurationEnv("REQUEST_TIMEOUT", "30s"),
			ShutdownTimeout:    getDurationEnv("SHUTDOWN_TIMEOUT", "10s"),
			RateLimitPerSecond: getIntEnv("RATE_LIMIT_PER_SECOND", 50),
			RateLimitBurst:     getIntEnv("RATE_LIMIT_BURST", 100),
		},
		Storage: StorageConfig{
			Driver:     getEnv("STORAGE_DRIVER", DriverMemory),
			SQLitePath: getEnv("SQLITE_PATH", "./data/adsplanner.db"),
		},
		Import: ImportConfig{
			MaxUploadBytes: int64(getIntEnv("MAX_UPLOAD_BYTES", 10<<20)),
		},
		Negative: NegativeConfig{
			SeedFile: getEnv("NEGATIVE_LISTS_FILE", ""),
		},
		Remote: RemoteConfig{
			FeedURL:            getEnv("REMOTE_FEED_URL", ""),
			SinkURL:            getEnv("REMOTE_SINK_URL", ""),
			SinkSecret:         getEnv("REMOTE_SINK_SECRET", ""),
			Timeout:            getDurationEnv("REMOTE_TIMEOUT", "15s"),
			RateLimitPerSecond: getIntEnv("REMOTE_RATE_LIMIT_PER_SECOND", 10),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case DriverMemory, DriverSQLite:
	default:
		return fmt.Errorf("unsupported STORAGE_DRIVER %q", c.Storage.Driver)
	}
	if c.Server.RateLimitPerSecond <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_SECOND must be positive")
	}
	if c.Import.MaxUploadBytes <= 0 {
		return fmt.Errorf("MAX_UPLOAD_BYTES must be positive")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getDurationEnv(key, defaultValue string) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
