package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	Port            string        `json:"port"`
	MetricsPort     string        `json:"metrics_port"`
	Env             string        `json:"env"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout"`
	HTTPTimeout     time.Duration `json:"http_timeout"`

	// Hosted backend (PostgREST-style REST API)
	BackendURL        string        `json:"backend_url"`
	BackendServiceKey string        `json:"backend_service_key"`
	BackendTimeout    time.Duration `json:"backend_timeout"`

	// Media storage bucket (S3-compatible)
	StorageEndpoint  string `json:"storage_endpoint"`
	StorageRegion    string `json:"storage_region"`
	StorageAccessKey string `json:"storage_access_key"`
	StorageSecretKey string `json:"storage_secret_key"`
	StorageBucket    string `json:"storage_bucket"`
	// StoragePublicURL is the prefix under which bucket objects are publicly
	// reachable. Derived from BackendURL and bucket when not set explicitly.
	StoragePublicURL string `json:"storage_public_url"`
	MaxUploadSize    int64  `json:"max_upload_size"`

	// Cache configuration. Empty RedisURL selects the in-process cache.
	RedisURL    string        `json:"redis_url"`
	CachePrefix string        `json:"cache_prefix"`
	CacheTTL    time.Duration `json:"cache_ttl"`

	// Security
	SessionSecret string `json:"session_secret"`

	// Logging
	LogLevel string `json:"log_level"`
	LogFile  string `json:"log_file"`
}

// Load loads configuration from environment variables and validates it
func Load() *Config {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: Error loading .env file: %v", err)
	}

	cfg := &Config{
		// Server configuration
		Port:            getEnv("PORT", "8080"),
		MetricsPort:     getEnv("METRICS_PORT", "9090"),
		Env:             getEnv("APP_ENV", "development"),
		ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		HTTPTimeout:     getEnvAsDuration("HTTP_TIMEOUT", 30*time.Second),

		// Hosted backend
		BackendURL:        getEnv("BACKEND_URL", ""),
		BackendServiceKey: getEnv("BACKEND_SERVICE_KEY", ""),
		BackendTimeout:    getEnvAsDuration("BACKEND_TIMEOUT", 15*time.Second),

		// Storage bucket
		StorageEndpoint:  getEnv("STORAGE_ENDPOINT", ""),
		StorageRegion:    getEnv("STORAGE_REGION", "auto"),
		StorageAccessKey: getEnv("STORAGE_ACCESS_KEY", ""),
		StorageSecretKey: getEnv("STORAGE_SECRET_KEY", ""),
		StorageBucket:    getEnv("STORAGE_BUCKET", "media"),
		StoragePublicURL: getEnv("STORAGE_PUBLIC_URL", ""),
		MaxUploadSize:    getEnvAsInt64("MAX_UPLOAD_SIZE", 10<<20), // 10MB

		// Cache
		RedisURL:    getEnv("REDIS_URL", ""),
		CachePrefix: getEnv("CACHE_PREFIX", "halcyon:"),
		CacheTTL:    getEnvAsDuration("CACHE_TTL", 5*time.Minute),

		// Security
		SessionSecret: getEnv("SESSION_SECRET", ""),

		// Logging
		LogLevel: getEnv("LOG_LEVEL", "info"),
		LogFile:  getEnv("LOG_FILE", ""),
	}

	if cfg.StoragePublicURL == "" && cfg.BackendURL != "" {
		cfg.StoragePublicURL = strings.TrimSuffix(cfg.BackendURL, "/") +
			"/storage/v1/object/public/" + cfg.StorageBucket
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	return cfg
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.BackendURL == "" {
		return fmt.Errorf("BACKEND_URL is required")
	}
	if c.BackendServiceKey == "" {
		return fmt.Errorf("BACKEND_SERVICE_KEY is required")
	}
	if c.SessionSecret == "" {
		return fmt.Errorf("SESSION_SECRET is required")
	}
	return nil
}

// IsDevelopment reports whether the app runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Helper functions for environment variable handling
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(name string, defaultVal int64) int64 {
	valueStr := getEnv(name, "")
	if valueStr == "" {
		return defaultVal
	}
	value, err := strconv.ParseInt(valueStr, 10, 64)
	if err != nil {
		log.Printf("Invalid %s value: %v, using default: %d", name, err, defaultVal)
		return defaultVal
	}
	return value
}

func getEnvAsDuration(name string, defaultVal time.Duration) time.Duration {
	valueStr := getEnv(name, "")
	if valueStr == "" {
		return defaultVal
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Invalid %s value: %v, using default: %v", name, err, defaultVal)
		return defaultVal
	}
	return value
}
