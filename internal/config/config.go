package config

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"home-inventory-go/pkg/logger"
)

type Config struct {
	HTTPPort   string
	Env        string
	CORSOrigin string
	DB         DBConfig
	Redis      RedisConfig
	Session    SessionConfig
	RateLimit  RateLimitConfig
	Policy     PolicyConfig
}

type DBConfig struct {
	DSN             string
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	TimeZone        string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type RedisConfig struct {
	Enabled  bool
	Addr     string
	Password string
	DB       int
}

type SessionConfig struct {
	Secret       string
	Issuer       string
	CookieName   string
	CookieSecure bool
	TTL          time.Duration
}

type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

// PolicyConfig captures behaviors the app generations disagreed on.
// Both variants ship behind flags pending a product decision.
type PolicyConfig struct {
	// Status returned when a house does not exist or the user is not a
	// member of it. 404 conceals existence from non-members.
	MembershipDeniedStatus int
	// Status returned when a member's role is below the required minimum.
	RoleDeniedStatus int
	// What deleting a category does to products still referencing it:
	// "orphan" nulls their category, "block" refuses the delete.
	CategoryDelete string
}

const (
	CategoryDeleteOrphan = "orphan"
	CategoryDeleteBlock  = "block"
)

func Load(log logger.Logger) (Config, error) {
	err := loadDotEnv(log)
	if err != nil {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Config{
		HTTPPort:   getEnv("HTTP_PORT", "8080"),
		Env:        getEnv("ENV", "development"),
		CORSOrigin: getEnv("CORS_ORIGIN", "http://localhost:3000"),
		DB: DBConfig{
			DSN:             getEnv("DB_DSN", ""),
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", "postgres"),
			Name:            getEnv("DB_NAME", "home_inventory"),
			SSLMode:         getEnv("DB_SSLMODE", "disable"),
			TimeZone:        getEnv("DB_TIMEZONE", "UTC"),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
		},
		Redis: RedisConfig{
			Enabled:  getEnvBool("REDIS_ENABLED", false),
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Session: SessionConfig{
			Secret:       getEnv("SESSION_SECRET", ""),
			Issuer:       getEnv("SESSION_ISSUER", "home-inventory"),
			CookieName:   getEnv("SESSION_COOKIE_NAME", "session"),
			CookieSecure: getEnvBool("SESSION_COOKIE_SECURE", false),
			TTL:          getEnvDuration("SESSION_TTL", 6*time.Hour),
		},
		RateLimit: RateLimitConfig{
			Requests: getEnvInt("RATE_LIMIT_REQUESTS", 15),
			Window:   getEnvDuration("RATE_LIMIT_WINDOW", time.Minute),
		},
		Policy: PolicyConfig{
			MembershipDeniedStatus: getEnvInt("POLICY_MEMBERSHIP_DENIED_STATUS", http.StatusNotFound),
			RoleDeniedStatus:       getEnvInt("POLICY_ROLE_DENIED_STATUS", http.StatusForbidden),
			CategoryDelete:         getEnv("POLICY_CATEGORY_DELETE", CategoryDeleteOrphan),
		},
	}

	if cfg.Session.Secret == "" {
		return Config{}, fmt.Errorf("SESSION_SECRET is required")
	}
	if cfg.Policy.CategoryDelete != CategoryDeleteOrphan && cfg.Policy.CategoryDelete != CategoryDeleteBlock {
		return Config{}, fmt.Errorf("POLICY_CATEGORY_DELETE must be %q or %q", CategoryDeleteOrphan, CategoryDeleteBlock)
	}
	if cfg.Policy.MembershipDeniedStatus != http.StatusForbidden && cfg.Policy.MembershipDeniedStatus != http.StatusNotFound {
		return Config{}, fmt.Errorf("POLICY_MEMBERSHIP_DENIED_STATUS must be 403 or 404")
	}
	if cfg.Policy.RoleDeniedStatus != http.StatusForbidden && cfg.Policy.RoleDeniedStatus != http.StatusNotFound {
		return Config{}, fmt.Errorf("POLICY_ROLE_DENIED_STATUS must be 403 or 404")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func (c DBConfig) GetDSN() string {
	if c.DSN != "" {
		return c.DSN
	}
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.TimeZone
}
