package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Slot backends
const (
	SlotBackendMemory   = "memory"
	SlotBackendBolt     = "bolt"
	SlotBackendRedis    = "redis"
	SlotBackendPostgres = "postgres"
)

// Config holds all runtime configuration for the service
type Config struct {
	Port        string
	Environment string
	LogLevel    slog.Level

	// Record cache
	FixtureSource    string
	FixtureTimeout   time.Duration
	SimulatedLatency time.Duration
	BcryptCost       int

	// Persisted slots
	SlotBackend string
	BoltPath    string
	RedisURL    string
	DatabaseURL string

	// Events
	KafkaBrokers []string
}

// LoadConfig reads an optional .env file and then the process environment
func LoadConfig() (*Config, error) {
	// .env is optional; real environment variables always win
	_ = godotenv.Load()

	level, err := parseLogLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}

	latency, err := getEnvAsDuration("SIMULATED_LATENCY", 0)
	if err != nil {
		return nil, err
	}

	fixtureTimeout, err := getEnvAsDuration("FIXTURE_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    level,

		FixtureSource:    getEnv("FIXTURE_SOURCE", "public/api/db.json"),
		FixtureTimeout:   fixtureTimeout,
		SimulatedLatency: latency,
		BcryptCost:       getEnvAsInt("BCRYPT_COST", 10),

		SlotBackend: strings.ToLower(getEnv("SLOT_BACKEND", SlotBackendMemory)),
		BoltPath:    getEnv("BOLT_PATH", "data/learnhub.db"),
		RedisURL:    getEnv("REDIS_URL", ""),
		DatabaseURL: getEnv("DATABASE_URL", ""),

		KafkaBrokers: splitList(getEnv("KAFKA_BROKERS", "")),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks cross-field requirements
func (c *Config) Validate() error {
	switch c.SlotBackend {
	case SlotBackendMemory, SlotBackendBolt:
	case SlotBackendRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("REDIS_URL is required when SLOT_BACKEND=%s", c.SlotBackend)
		}
	case SlotBackendPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required when SLOT_BACKEND=%s", c.SlotBackend)
		}
	default:
		return fmt.Errorf("unknown SLOT_BACKEND %q", c.SlotBackend)
	}

	if c.SimulatedLatency < 0 {
		return fmt.Errorf("SIMULATED_LATENCY must not be negative")
	}

	return nil
}

// IsProduction reports whether the service runs in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func parseLogLevel(raw string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(raw)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid LOG_LEVEL %q: %w", raw, err)
	}
	return level, nil
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
