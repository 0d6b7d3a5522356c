package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rgehrsitz/goalplan/internal/ssy"
)

// AppConfig holds the service configuration read from the environment
type AppConfig struct {
	// Server
	Port     string
	Env      string
	LogLevel string

	// Plan storage. DatabaseURL selects Postgres, PlanServiceURL a remote
	// plan service; with neither set plans live in memory.
	DatabaseURL    string
	PlanServiceURL string
	RedisAddr      string
	PlanCacheTTL   time.Duration

	RateLimitPerMinute int

	// Report archive
	S3 S3Config

	// Plausible calendar years for plan and scheme inputs
	SsyMinYear int
	SsyMaxYear int
}

// S3Config holds AWS S3 configuration
type S3Config struct {
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	Endpoint        string // Optional: for MinIO/LocalStack local dev
}

// Enabled reports whether an archive bucket is configured
func (c S3Config) Enabled() bool {
	return c.Bucket != ""
}

// Load reads configuration from environment variables
func Load() (*AppConfig, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	ttl, err := getEnvDuration("PLAN_CACHE_TTL", 10*time.Minute)
	if err != nil {
		return nil, err
	}
	rate, err := getEnvInt("RATE_LIMIT_PER_MINUTE", 120)
	if err != nil {
		return nil, err
	}
	minYear, err := getEnvInt("SSY_MIN_YEAR", ssy.DefaultMinYear)
	if err != nil {
		return nil, err
	}
	maxYear, err := getEnvInt("SSY_MAX_YEAR", ssy.DefaultMaxYear)
	if err != nil {
		return nil, err
	}

	cfg := &AppConfig{
		Port:               getEnv("PORT", "8080"),
		Env:                getEnv("ENV", "development"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		PlanServiceURL:     getEnv("PLAN_SERVICE_URL", ""),
		RedisAddr:          getEnv("REDIS_ADDR", ""),
		PlanCacheTTL:       ttl,
		RateLimitPerMinute: rate,
		S3: S3Config{
			Region:          getEnv("S3_REGION", "us-east-1"),
			Bucket:          getEnv("S3_BUCKET", ""),
			AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
			Endpoint:        getEnv("S3_ENDPOINT", ""),
		},
		SsyMinYear: minYear,
		SsyMaxYear: maxYear,
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// IsProduction reports whether the service runs in production
func (c *AppConfig) IsProduction() bool {
	return c.Env == "production"
}

func (c *AppConfig) validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	if c.DatabaseURL != "" && c.PlanServiceURL != "" {
		return fmt.Errorf("DATABASE_URL and PLAN_SERVICE_URL are mutually exclusive")
	}
	if c.RateLimitPerMinute <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be positive")
	}
	if c.PlanCacheTTL <= 0 {
		return fmt.Errorf("PLAN_CACHE_TTL must be positive")
	}
	if c.SsyMinYear > c.SsyMaxYear {
		return fmt.Errorf("SSY_MIN_YEAR (%d) must not exceed SSY_MAX_YEAR (%d)", c.SsyMinYear, c.SsyMaxYear)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return v, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration such as 5m: %w", key, err)
	}
	return v, nil
}
