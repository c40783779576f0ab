package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

type AppConfig struct {
	HTTPAddr    string
	Environment string

	BudgetAPIURL     string
	BudgetAPITimeout time.Duration

	DraftBackend  string
	DraftTTL      time.Duration
	DraftDebounce time.Duration
	RedisAddr     string
	RedisPass     string
	DatabaseURL   string

	SessionCacheSize int
	SessionTTL       time.Duration

	JWTSecret string
	JWTIssuer string

	KafkaBrokers []string
	KafkaTopic   string

	SubmitRollback bool
}

func Load() AppConfig {
	return AppConfig{
		HTTPAddr:    ":" + getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "production"),

		BudgetAPIURL:     getEnv("BUDGET_API_URL", "http://localhost:8000/api"),
		BudgetAPITimeout: durationEnv("BUDGET_API_TIMEOUT", 10*time.Second),

		DraftBackend:  strings.ToLower(getEnv("DRAFT_BACKEND", BackendMemory)),
		DraftTTL:      durationEnv("DRAFT_TTL", 720*time.Hour),
		DraftDebounce: durationEnv("DRAFT_DEBOUNCE", 500*time.Millisecond),
		RedisAddr:     getEnv("REDIS_ADDR", "redis:6379"),
		RedisPass:     getEnv("REDIS_PASS", ""),
		DatabaseURL:   getEnv("DATABASE_URL", ""),

		SessionCacheSize: intEnv("SESSION_CACHE_SIZE", 1024),
		SessionTTL:       durationEnv("SESSION_TTL", 2*time.Hour),

		JWTSecret: getEnv("JWT_SECRET", ""),
		JWTIssuer: getEnv("JWT_ISSUER", ""),

		KafkaBrokers: parseCSVEnv("KAFKA_BROKERS", ""),
		KafkaTopic:   getEnv("KAFKA_TOPIC", "onboarding-activity"),

		SubmitRollback: boolEnv("SUBMIT_ROLLBACK", false),
	}
}

func (c AppConfig) Development() bool {
	return c.Environment == "development"
}

// Validate reports settings that cannot work together.
func (c AppConfig) Validate() error {
	switch c.DraftBackend {
	case BackendMemory, BackendRedis:
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DRAFT_BACKEND=postgres requires DATABASE_URL")
		}
	default:
		return fmt.Errorf("unknown DRAFT_BACKEND %q", c.DraftBackend)
	}
	if c.SessionCacheSize <= 0 {
		return fmt.Errorf("SESSION_CACHE_SIZE must be positive, got %d", c.SessionCacheSize)
	}
	if c.DraftDebounce < 0 {
		return fmt.Errorf("DRAFT_DEBOUNCE must not be negative")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseCSVEnv(key, fallback string) []string {
	val := getEnv(key, fallback)
	var out []string
	for _, p := range strings.Split(val, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func durationEnv(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return d
}

func intEnv(key string, fallback int) int {
	n, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return n
}

func boolEnv(key string, fallback bool) bool {
	b, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return b
}
