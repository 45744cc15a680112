// Package config provides configuration management and environment variable handling for the application
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ProductionConfig holds all configuration for the registration portal
type ProductionConfig struct {
	Server   ServerConfig   `json:"server"`
	Redis    RedisConfig    `json:"redis"`
	Admin    AdminConfig    `json:"admin"`
	SMTP     SMTPConfig     `json:"smtp"`
	Session  SessionConfig  `json:"session"`
	Security SecurityConfig `json:"security"`
	Logging  LoggingConfig  `json:"logging"`
	Metrics  MetricsConfig  `json:"metrics"`
}

type ServerConfig struct {
	Host            string        `json:"host"`
	Port            int           `json:"port"`
	ReadTimeout     time.Duration `json:"read_timeout"`
	WriteTimeout    time.Duration `json:"write_timeout"`
	IdleTimeout     time.Duration `json:"idle_timeout"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout"`
	BodyLimit       int           `json:"body_limit"`
}

type RedisConfig struct {
	URL            string        `json:"url"`
	Password       string        `json:"password"`
	DB             int           `json:"db"`
	ConnectRetries int           `json:"connect_retries"`
	RetryDelay     time.Duration `json:"retry_delay"`
	HealthInterval time.Duration `json:"health_interval"`
}

// AdminConfig seeds the singleton administrator account on first run.
// Both values are secrets and must never be logged.
type AdminConfig struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type SMTPConfig struct {
	Host      string `json:"host"`
	Port      int    `json:"port"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	FromEmail string `json:"from_email"`
	FromName  string `json:"from_name"`
}

type SessionConfig struct {
	Secret string        `json:"secret"`
	TTL    time.Duration `json:"ttl"`
	Issuer string        `json:"issuer"`

	CookieSecure   bool   `json:"cookie_secure"`
	CookieSameSite string `json:"cookie_samesite"`
}

type SecurityConfig struct {
	BcryptCost      int           `json:"bcrypt_cost"`
	AuthRateLimit   int           `json:"auth_rate_limit"`   // requests per minute
	GlobalRateLimit int           `json:"global_rate_limit"` // requests per minute
	RateLimitWindow time.Duration `json:"rate_limit_window"`
}

type LoggingConfig struct {
	FilePath   string `json:"file_path"`
	MaxSize    int    `json:"max_size"` // MB
	MaxBackups int    `json:"max_backups"`
	MaxAge     int    `json:"max_age"` // days
	Compress   bool   `json:"compress"`
}

type MetricsConfig struct {
	Enabled bool   `json:"enabled"`
	Path    string `json:"path"`
}

// LoadProductionConfig loads and validates configuration from environment variables
func LoadProductionConfig() (*ProductionConfig, error) {
	// Merge .env into the environment; a missing file is not an error
	_ = godotenv.Load()

	cfg := &ProductionConfig{
		Server: ServerConfig{
			Host:            getEnvString("SERVER_HOST", "0.0.0.0"),
			Port:            getEnvInt("SERVER_PORT", 8080),
			ReadTimeout:     getEnvDuration("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:    getEnvDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:     getEnvDuration("SERVER_IDLE_TIMEOUT", 120*time.Second),
			ShutdownTimeout: getEnvDuration("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
			BodyLimit:       getEnvInt("SERVER_BODY_LIMIT", 1*1024*1024), // 1MB, form posts only
		},
		Redis: RedisConfig{
			URL:            getEnvString("REDIS_URL", "redis://localhost:6379"),
			Password:       getEnvString("REDIS_PASSWORD", ""),
			DB:             getEnvInt("REDIS_DB", 0),
			ConnectRetries: getEnvInt("REDIS_CONNECT_RETRIES", 3),
			RetryDelay:     getEnvDuration("REDIS_RETRY_DELAY", 1*time.Second),
			HealthInterval: getEnvDuration("REDIS_HEALTH_INTERVAL", 30*time.Second),
		},
		Admin: AdminConfig{
			Username: getEnvString("ADMIN_USERNAME", "admin"),
			Password: getEnvString("ADMIN_PASSWORD", "securepassword"),
		},
		SMTP: SMTPConfig{
			Host:      getEnvString("SMTP_SERVER", "smtp.example.com"),
			Port:      getEnvInt("SMTP_PORT", 587),
			Username:  getEnvString("SMTP_USER", "user@example.com"),
			Password:  getEnvString("SMTP_PASSWORD", "smtppassword"),
			FromEmail: getEnvString("SMTP_FROM_EMAIL", getEnvString("SMTP_USER", "user@example.com")),
			FromName:  getEnvString("SMTP_FROM_NAME", "Student Portal"),
		},
		Session: SessionConfig{
			Secret:         getEnvString("SESSION_SECRET", "supersecretkey-change-me-in-production"),
			TTL:            getEnvDuration("SESSION_TTL", 24*time.Hour),
			Issuer:         getEnvString("SESSION_ISSUER", "enrolld"),
			CookieSecure:   getEnvBool("SESSION_COOKIE_SECURE", true),
			CookieSameSite: getEnvString("SESSION_COOKIE_SAMESITE", "Strict"),
		},
		Security: SecurityConfig{
			BcryptCost:      getEnvInt("BCRYPT_COST", 12),
			AuthRateLimit:   getEnvInt("AUTH_RATE_LIMIT", 20),
			GlobalRateLimit: getEnvInt("GLOBAL_RATE_LIMIT", 2000),
			RateLimitWindow: getEnvDuration("RATE_LIMIT_WINDOW", 1*time.Minute),
		},
		Logging: LoggingConfig{
			FilePath:   getEnvString("LOG_FILE_PATH", "logs.txt"),
			MaxSize:    getEnvInt("LOG_MAX_SIZE", 100),
			MaxBackups: getEnvInt("LOG_MAX_BACKUPS", 10),
			MaxAge:     getEnvInt("LOG_MAX_AGE", 30),
			Compress:   getEnvBool("LOG_COMPRESS", true),
		},
		Metrics: MetricsConfig{
			Enabled: getEnvBool("METRICS_ENABLED", true),
			Path:    getEnvString("METRICS_PATH", "/metrics"),
		},
	}

	if err := ValidateProductionConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Helper functions for environment variable parsing
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// ValidateProductionConfig validates the loaded configuration
func ValidateProductionConfig(cfg *ProductionConfig) error {
	var errors []string

	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		errors = append(errors, "SERVER_PORT must be between 1 and 65535")
	}

	if cfg.Redis.URL == "" {
		errors = append(errors, "REDIS_URL is required")
	}
	if cfg.Redis.ConnectRetries < 1 {
		errors = append(errors, "REDIS_CONNECT_RETRIES must be at least 1")
	}

	if cfg.Admin.Username == "" {
		errors = append(errors, "ADMIN_USERNAME is required")
	}
	if cfg.Admin.Password == "" {
		errors = append(errors, "ADMIN_PASSWORD is required")
	}

	if cfg.SMTP.Host == "" {
		errors = append(errors, "SMTP_SERVER is required")
	}
	if cfg.SMTP.Port <= 0 || cfg.SMTP.Port > 65535 {
		errors = append(errors, "SMTP_PORT must be between 1 and 65535")
	}
	if cfg.SMTP.Username == "" {
		errors = append(errors, "SMTP_USER is required")
	}
	if cfg.SMTP.Password == "" {
		errors = append(errors, "SMTP_PASSWORD is required")
	}

	if len(cfg.Session.Secret) < 32 {
		errors = append(errors, "SESSION_SECRET must be at least 32 characters long")
	}
	if cfg.Session.TTL <= 0 {
		errors = append(errors, "SESSION_TTL must be positive")
	}

	if cfg.Security.BcryptCost < 10 || cfg.Security.BcryptCost > 14 {
		errors = append(errors, "BCRYPT_COST must be between 10 and 14")
	}

	if cfg.Logging.FilePath == "" {
		errors = append(errors, "LOG_FILE_PATH is required")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errors, "; "))
	}

	return nil
}
