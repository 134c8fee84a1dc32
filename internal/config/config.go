package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// DefaultSessionSecret is only acceptable for local development.
const DefaultSessionSecret = "dev-secret-please-change"

type Config struct {
	AppEnv        string
	Port          string
	DBDriver      string // sqlite | postgres
	DBDSN         string
	LogLevel      string
	LogFile       string
	SessionSecret string
	SessionTTL    time.Duration
	CookieSecure  bool
	CSRFEnabled   bool
	SeedDemo      bool
	RateLimitMax  int
}

// Dev reports whether the service runs with development logging and defaults.
func (c Config) Dev() bool { return c.AppEnv == "development" || c.AppEnv == "dev" }

func Load() Config {
	// .env is optional; real environment wins over the file.
	_ = godotenv.Load()

	cfg := Config{
		AppEnv:        getEnv("APP_ENV", "development"),
		Port:          getEnv("PORT", "8080"),
		DBDriver:      getEnv("DB_DRIVER", "sqlite"),
		DBDSN:         getEnv("DB_DSN", "storefront.db"), // sqlite file in project root
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFile:       getEnv("LOG_FILE", ""),
		SessionSecret: getEnv("SESSION_SECRET", DefaultSessionSecret),
		SessionTTL:    getEnvDuration("SESSION_TTL", 7*24*time.Hour),
		CookieSecure:  getEnvBool("COOKIE_SECURE", false),
		CSRFEnabled:   getEnvBool("CSRF_ENABLED", true),
		SeedDemo:      getEnvBool("SEED_DEMO", true),
		RateLimitMax:  getEnvInt("RATE_LIMIT_MAX", 120),
	}
	log.Printf("[config] APP_ENV=%s PORT=%s DB_DRIVER=%s LOG_LEVEL=%s LOG_FILE=%s CSRF_ENABLED=%t SEED_DEMO=%t",
		cfg.AppEnv, cfg.Port, cfg.DBDriver, cfg.LogLevel, cfg.LogFile, cfg.CSRFEnabled, cfg.SeedDemo)
	return cfg
}

// Validate rejects settings that must never reach a non-development deployment.
func (c Config) Validate() error {
	if !c.Dev() && c.SessionSecret == DefaultSessionSecret {
		return errors.New("SESSION_SECRET must be set outside development")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
