package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	defaultPort              = "5001"
	defaultSQLitePath        = "favorites.db"
	defaultMigrationsDir     = "migrations"
	defaultRateLimitRequests = 60
	defaultRateLimitWindow   = time.Minute
)

// Config holds all configuration for the application
type Config struct {
	Environment Environment

	// Server configuration
	ServerPort     string
	ServerHost     string
	AllowedOrigins []string

	// Database configuration
	DBDriver      string
	DatabaseURL   string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBSSLMode     string
	SQLitePath    string
	MigrationsDir string

	// Rate limiting, disabled when RedisURL is empty
	RedisURL          string
	RateLimitRequests int
	RateLimitWindow   time.Duration

	// Logging
	LogLevel  string
	LogFormat string
}

// LoadConfig builds a Config from environment variables, Docker secrets and
// defaults, in that order of precedence, and validates the result.
func LoadConfig() (*Config, error) {
	// A missing .env file is fine; real deployments use the environment.
	_ = godotenv.Load()

	env := GetEnvironment()
	cfg := &Config{Environment: env}

	cfg.ServerPort = lookup(env, "PORT", "server_port")
	if cfg.ServerPort == "" {
		cfg.ServerPort = lookup(env, "SERVER_PORT", "server_port")
	}
	if cfg.ServerPort == "" && env != Production {
		cfg.ServerPort = defaultPort
	}
	cfg.ServerHost = lookup(env, "SERVER_HOST", "server_host")
	cfg.AllowedOrigins = splitList(lookup(env, "ALLOWED_ORIGINS", "allowed_origins"))
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = []string{"*"}
	}

	cfg.DBDriver = strings.ToLower(orDefault(lookup(env, "DB_DRIVER", "db_driver"), DriverPostgres))
	cfg.DatabaseURL = lookup(env, "DATABASE_URL", "database_url")
	cfg.DBHost = lookup(env, "DB_HOST", "db_host")
	cfg.DBPort = orDefault(lookup(env, "DB_PORT", "db_port"), "5432")
	cfg.DBUser = lookup(env, "DB_USER", "db_user")
	cfg.DBPassword = lookup(env, "DB_PASSWORD", "db_password")
	cfg.DBName = lookup(env, "DB_NAME", "db_name")
	cfg.DBSSLMode = orDefault(lookup(env, "DB_SSL_MODE", "db_ssl_mode"), "disable")
	cfg.SQLitePath = orDefault(lookup(env, "SQLITE_PATH", "sqlite_path"), defaultSQLitePath)
	cfg.MigrationsDir = orDefault(lookup(env, "MIGRATIONS_DIR", "migrations_dir"), defaultMigrationsDir)

	cfg.RedisURL = lookup(env, "REDIS_URL", "redis_url")
	cfg.RateLimitRequests = defaultRateLimitRequests
	if raw := lookup(env, "RATE_LIMIT_REQUESTS", "rate_limit_requests"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid RATE_LIMIT_REQUESTS %q: %w", raw, err)
		}
		cfg.RateLimitRequests = n
	}
	cfg.RateLimitWindow = defaultRateLimitWindow
	if raw := lookup(env, "RATE_LIMIT_WINDOW", "rate_limit_window"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid RATE_LIMIT_WINDOW %q: %w", raw, err)
		}
		cfg.RateLimitWindow = d
	}

	cfg.LogLevel = orDefault(lookup(env, "LOG_LEVEL", "log_level"), "info")
	logFormat := "text"
	if env == Production {
		logFormat = "json"
	}
	cfg.LogFormat = strings.ToLower(orDefault(lookup(env, "LOG_FORMAT", "log_format"), logFormat))

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// DSN returns the postgres connection string, preferring DatabaseURL over
// the individual DB_* parts. It is empty when neither is configured.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	if c.DBHost == "" {
		return ""
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

// IsProduction reports whether the config was loaded for production
func (c *Config) IsProduction() bool {
	return c.Environment == Production
}

// Addr is the listen address for the HTTP server
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

// RateLimitEnabled reports whether a redis backend was configured
func (c *Config) RateLimitEnabled() bool {
	return c.RedisURL != ""
}

// lookup reads key from the environment and falls back to the Docker secret
// of the given name. CI only ever uses environment variables.
func lookup(env Environment, key, secret string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	if env == CI {
		return ""
	}
	return readSecret(secret)
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	data, err := os.ReadFile(filepath.Join(secretsDir, name))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
