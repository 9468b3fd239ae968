package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultAppEnv          = "dev"
	defaultPort            = "8080"
	defaultLogLevel        = "debug"
	defaultStoreBackend    = StoreFile
	defaultDataDir         = "./data"
	defaultDatabaseURL     = "studiobook.db"
	defaultLockTTL         = "10s"
	defaultJWTSecret       = "change-me-jwt-secret"
	defaultJWTTTL          = "24h"
	defaultSubmitRate      = "30"
	defaultLoginRate       = "10"
	defaultShutdownTimeout = "10s"
	defaultTrustProxy      = "false"
)

// Storage backends.
const (
	StoreFile = "file"
	StoreDB   = "db"
)

type Config struct {
	AppEnv   string
	Port     string
	LogLevel string

	StoreBackend string
	DataDir      string
	DatabaseURL  string

	RedisURL string
	LockTTL  time.Duration

	JWTSecret         string
	JWTTTL            time.Duration
	AdminEmail        string
	AdminPasswordHash string

	CORSAllowedOrigins []string
	SubmitRatePerMin   int
	LoginRatePerMin    int
	TrustProxy         bool
	ShutdownTimeout    time.Duration
}

// Load reads .env if present, then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return fromEnv()
}

func fromEnv() (*Config, error) {
	cfg := &Config{}
	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = strings.TrimSpace(os.Getenv("ENV"))
	}
	if appEnv == "" {
		appEnv = defaultAppEnv
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.Port = strings.TrimSpace(getEnv("PORT", defaultPort))
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(getEnv("LOG_LEVEL", defaultLogLevel)))
	cfg.StoreBackend = strings.ToLower(strings.TrimSpace(getEnv("STORE_BACKEND", defaultStoreBackend)))
	cfg.DataDir = strings.TrimSpace(getEnv("DATA_DIR", defaultDataDir))
	cfg.DatabaseURL = strings.TrimSpace(getEnv("DATABASE_URL", defaultDatabaseURL))
	cfg.RedisURL = strings.TrimSpace(os.Getenv("REDIS_URL"))
	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret))
	cfg.AdminEmail = strings.ToLower(strings.TrimSpace(os.Getenv("ADMIN_EMAIL")))
	cfg.AdminPasswordHash = strings.TrimSpace(os.Getenv("ADMIN_PASSWORD_HASH"))
	cfg.CORSAllowedOrigins = parseListEnv("CORS_ALLOWED_ORIGINS")
	cfg.TrustProxy = parseBoolEnv("TRUST_PROXY", defaultTrustProxy)

	var err error
	cfg.LockTTL, err = parseDurationEnv("LOCK_TTL", defaultLockTTL)
	if err != nil {
		return nil, err
	}

	cfg.JWTTTL, err = parseDurationEnv("JWT_TTL", defaultJWTTTL)
	if err != nil {
		return nil, err
	}

	cfg.ShutdownTimeout, err = parseDurationEnv("SHUTDOWN_TIMEOUT", defaultShutdownTimeout)
	if err != nil {
		return nil, err
	}

	cfg.SubmitRatePerMin, err = parseIntEnv("SUBMIT_RATE_PER_MIN", defaultSubmitRate)
	if err != nil {
		return nil, err
	}
	cfg.LoginRatePerMin, err = parseIntEnv("LOGIN_RATE_PER_MIN", defaultLoginRate)
	if err != nil {
		return nil, err
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	if cfg.Port == "" {
		return fmt.Errorf("PORT must not be empty")
	}
	if cfg.StoreBackend != StoreFile && cfg.StoreBackend != StoreDB {
		return fmt.Errorf("STORE_BACKEND must be one of: file, db")
	}
	if cfg.StoreBackend == StoreFile && cfg.DataDir == "" {
		return fmt.Errorf("DATA_DIR must not be empty when STORE_BACKEND=file")
	}
	if cfg.StoreBackend == StoreDB && cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL must not be empty when STORE_BACKEND=db")
	}
	if cfg.LockTTL <= 0 {
		return fmt.Errorf("LOCK_TTL must be > 0")
	}
	if cfg.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be > 0")
	}
	if cfg.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be > 0")
	}
	if cfg.SubmitRatePerMin <= 0 {
		return fmt.Errorf("SUBMIT_RATE_PER_MIN must be > 0")
	}
	if cfg.LoginRatePerMin <= 0 {
		return fmt.Errorf("LOGIN_RATE_PER_MIN must be > 0")
	}

	if isProdLike(cfg.AppEnv) {
		if isEmptyOrDefault(cfg.JWTSecret, defaultJWTSecret) {
			return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
		}
		if cfg.AdminEmail == "" || cfg.AdminPasswordHash == "" {
			return fmt.Errorf("in prod/release ADMIN_EMAIL and ADMIN_PASSWORD_HASH must be set")
		}
	}

	return nil
}

// IsProdLike reports whether the app runs in a production-like environment.
func (c *Config) IsProdLike() bool { return isProdLike(c.AppEnv) }

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func parseIntEnv(name, fallback string) (int, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return n, nil
}

func parseBoolEnv(name, fallback string) bool {
	value := strings.ToLower(strings.TrimSpace(getEnv(name, fallback)))
	return value == "1" || value == "true" || value == "yes" || value == "on"
}

// parseListEnv splits a comma-separated variable, dropping blanks.
func parseListEnv(name string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(name), ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
