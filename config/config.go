// config/config.go
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Config holds everything main needs to wire the service.
type Config struct {
	Port           string
	DatabaseURL    string
	AllowedOrigins string
	AutoMigrate    bool

	// EnforceRadius turns on the nearby radius filter. Off by default: the
	// deployed behaviour returns every active offer, nearest first.
	EnforceRadius       bool
	DefaultRadiusMeters int

	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxLifetime time.Duration

	// PoolStatsInterval of 0 disables the pool monitor job.
	PoolStatsInterval time.Duration

	LogLevel  string
	LogPretty bool
}

// Load reads .env (if present) and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("⚠️  No .env file found, reading environment variables directly")
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function so tests don't need to touch
// the real environment.
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		Port:                stringOr(getenv("PORT"), "4000"),
		DatabaseURL:         getenv("DATABASE_URL"),
		AllowedOrigins:      normalizeOrigins(stringOr(getenv("ALLOWED_ORIGINS"), "*")),
		LogLevel:            strings.ToLower(stringOr(getenv("LOG_LEVEL"), "info")),
		DefaultRadiusMeters: 2000,
		DBMaxOpenConns:      10,
		DBMaxIdleConns:      5,
		DBConnMaxLifetime:   30 * time.Minute,
		PoolStatsInterval:   5 * time.Minute,
		AutoMigrate:         true,
	}

	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL environment variable not set")
	}

	var err error
	if cfg.EnforceRadius, err = boolOr(getenv, "ENFORCE_RADIUS", false); err != nil {
		return nil, err
	}
	if cfg.LogPretty, err = boolOr(getenv, "LOG_PRETTY", false); err != nil {
		return nil, err
	}
	if cfg.AutoMigrate, err = boolOr(getenv, "AUTO_MIGRATE", cfg.AutoMigrate); err != nil {
		return nil, err
	}
	if cfg.DefaultRadiusMeters, err = intOr(getenv, "DEFAULT_RADIUS_METERS", cfg.DefaultRadiusMeters); err != nil {
		return nil, err
	}
	if cfg.DefaultRadiusMeters <= 0 {
		return nil, errors.Errorf("DEFAULT_RADIUS_METERS must be positive, got %d", cfg.DefaultRadiusMeters)
	}
	if cfg.DBMaxOpenConns, err = intOr(getenv, "DB_MAX_OPEN_CONNS", cfg.DBMaxOpenConns); err != nil {
		return nil, err
	}
	if cfg.DBMaxIdleConns, err = intOr(getenv, "DB_MAX_IDLE_CONNS", cfg.DBMaxIdleConns); err != nil {
		return nil, err
	}
	if cfg.DBConnMaxLifetime, err = durationOr(getenv, "DB_CONN_MAX_LIFETIME", cfg.DBConnMaxLifetime); err != nil {
		return nil, err
	}
	if cfg.PoolStatsInterval, err = durationOr(getenv, "POOL_STATS_INTERVAL", cfg.PoolStatsInterval); err != nil {
		return nil, err
	}

	return cfg, nil
}

func stringOr(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return strings.TrimSpace(v)
}

func boolOr(getenv func(string) string, key string, fallback bool) (bool, error) {
	raw := strings.TrimSpace(getenv(key))
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, errors.Wrapf(err, "invalid %s", key)
	}
	return v, nil
}

func intOr(getenv func(string) string, key string, fallback int) (int, error) {
	raw := strings.TrimSpace(getenv(key))
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid %s", key)
	}
	return v, nil
}

func durationOr(getenv func(string) string, key string, fallback time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(getenv(key))
	if raw == "" {
		return fallback, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid %s", key)
	}
	return v, nil
}

// normalizeOrigins trims each comma-separated origin, the format Fiber's CORS
// config expects.
func normalizeOrigins(raw string) string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, ",")
}
