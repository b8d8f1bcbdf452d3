package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"go-mission/internal/shared/connection"

	"github.com/joho/godotenv"
)

type Config struct {
	Port     string
	Postgres connection.PostgresConfig

	RedisAddr   string
	KafkaBroker string

	JWTSecret     string
	RBACModelPath string

	// ReturnDinnerCutoff is a time of day; zero means disabled.
	ReturnDinnerCutoff time.Duration
	RecomputeLockTTL   time.Duration
	ScaleCacheTTL      time.Duration

	ExportS3Bucket   string
	ExportS3Prefix   string
	ExportS3Endpoint string
	AWSRegion        string
	ExportRateLimit  float64
	ConnectRetries   int

	// ClientRateLimit throttles every /api/v1 request per client IP.
	ClientRateLimit float64
	ClientBurst     int

	OutboxPollInterval time.Duration
	OutboxBatchSize    int
}

// Load reads .env when present, then the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Port: getEnv("PORT", "8080"),
		Postgres: connection.PostgresConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			User:     getEnv("DB_USER", "postgres"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     getEnv("DB_NAME", "mission"),
			Port:     getEnv("DB_PORT", "5432"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		KafkaBroker:    getEnv("KAFKA_BROKER", "localhost:9092"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		RBACModelPath:  getEnv("RBAC_MODEL_PATH", "internal/rbac/infra/model.conf"),
		ExportS3Bucket: os.Getenv("EXPORT_S3_BUCKET"),
		ExportS3Prefix: getEnv("EXPORT_S3_PREFIX", "payment-exports/"),
		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		ConnectRetries: 5,

		ExportS3Endpoint: os.Getenv("EXPORT_S3_ENDPOINT"),
	}

	var err error
	if cfg.ReturnDinnerCutoff, err = ParseClock(os.Getenv("COMPENSATION_RETURN_DINNER_CUTOFF")); err != nil {
		return Config{}, fmt.Errorf("COMPENSATION_RETURN_DINNER_CUTOFF: %w", err)
	}
	if cfg.RecomputeLockTTL, err = getDuration("COMPENSATION_RECOMPUTE_LOCK_TTL", 30*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.ScaleCacheTTL, err = getDuration("SCALE_CACHE_TTL", 30*time.Minute); err != nil {
		return Config{}, err
	}
	if cfg.ExportRateLimit, err = getFloat("RATE_LIMIT_EXPORT_RPS", 0.5); err != nil {
		return Config{}, err
	}
	if cfg.ClientRateLimit, err = getFloat("RATE_LIMIT_CLIENT_RPS", 20); err != nil {
		return Config{}, err
	}
	if cfg.ClientBurst, err = getInt("RATE_LIMIT_CLIENT_BURST", 40); err != nil {
		return Config{}, err
	}
	if cfg.OutboxPollInterval, err = getDuration("OUTBOX_POLL_INTERVAL", 3*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.OutboxBatchSize, err = getInt("OUTBOX_BATCH_SIZE", 50); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// ParseClock parses HH:MM into an offset from midnight. Empty input is zero.
func ParseClock(raw string) (time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	t, err := time.Parse("15:04", raw)
	if err != nil {
		return 0, fmt.Errorf("expected HH:MM, got %q", raw)
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func getInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s: expected a positive integer, got %q", key, v)
	}
	return n, nil
}

func getFloat(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return f, nil
}
