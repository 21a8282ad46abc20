package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Menu source kinds.
const (
	MenuSourceHTTP = "http"
	MenuSourceFile = "file"
	MenuSourceS3   = "s3"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Logger   LoggerConfig
	Auth     AuthConfig
	Menu     MenuConfig
	S3       S3Config
	Receipt  ReceiptConfig
	Events   EventsConfig
	Session  SessionConfig
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Host string
	Port int
}

// DatabaseConfig holds configuration of the persisted menu cache.
type DatabaseConfig struct {
	Enabled         bool
	Host            string
	Port            int
	User            string
	Password        string
	Database        string
	MaxConnections  int
	MinConnections  int
	MaxConnLifetime int // seconds
}

// LoggerConfig holds logger-related configuration.
type LoggerConfig struct {
	Level  string
	Format string // "json" or "console"
}

// AuthConfig holds authentication configuration.
type AuthConfig struct {
	APIKey string
}

// MenuConfig controls where the menu comes from and how often.
type MenuConfig struct {
	Source         string
	Endpoint       string
	File           string
	RequestTimeout time.Duration
	RetryAttempts  int
	RetryBackoff   time.Duration
	RetryMaxWait   time.Duration
	Freshness      time.Duration
	EnrichSeed     uint64
}

// S3Config holds AWS S3 configuration for the published menu object.
type S3Config struct {
	Bucket string
	Region string
	Key    string
}

// ReceiptConfig holds receipt layout and printer settings.
type ReceiptConfig struct {
	Width          int
	Header         []string
	Footer         []string
	CutLines       int
	PrinterEnabled bool
	PrinterOutput  string // "stdout", "stderr" or a file path
}

// EventsConfig holds message broker configuration. An empty URL disables
// publishing.
type EventsConfig struct {
	RabbitMQURL string
}

// SessionConfig holds kiosk session settings.
type SessionConfig struct {
	IdleTimeout time.Duration
}

// Load loads configuration from environment variables, reading a .env file
// first when one is present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvAsInt("SERVER_PORT", 8080),
		},
		Database: DatabaseConfig{
			Enabled:         getEnvAsBool("DB_ENABLED", false),
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnvAsInt("DB_PORT", 5432),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", ""),
			Database:        getEnv("DB_NAME", "kiosk"),
			MaxConnections:  getEnvAsInt("DB_MAX_CONNECTIONS", 10),
			MinConnections:  getEnvAsInt("DB_MIN_CONNECTIONS", 1),
			MaxConnLifetime: getEnvAsInt("DB_MAX_CONN_LIFETIME", 300),
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Auth: AuthConfig{
			APIKey: getEnv("API_KEY", ""),
		},
		Menu: MenuConfig{
			Source:         getEnv("MENU_SOURCE", MenuSourceHTTP),
			Endpoint:       getEnv("MENU_ENDPOINT", ""),
			File:           getEnv("MENU_FILE", "data/menu.json"),
			RequestTimeout: getEnvAsDuration("MENU_REQUEST_TIMEOUT", 10*time.Second),
			RetryAttempts:  getEnvAsInt("MENU_RETRY_ATTEMPTS", 3),
			RetryBackoff:   getEnvAsDuration("MENU_RETRY_BACKOFF", 500*time.Millisecond),
			RetryMaxWait:   getEnvAsDuration("MENU_RETRY_MAX_BACKOFF", 5*time.Second),
			Freshness:      getEnvAsDuration("MENU_FRESHNESS", 5*time.Minute),
			EnrichSeed:     uint64(getEnvAsInt("MENU_ENRICH_SEED", 1)),
		},
		S3: S3Config{
			Bucket: getEnv("S3_BUCKET", ""),
			Region: getEnv("S3_REGION", "us-east-1"),
			Key:    getEnv("S3_KEY", "menu.json"),
		},
		Receipt: ReceiptConfig{
			Width:          getEnvAsInt("RECEIPT_WIDTH", 40),
			Header:         getEnvAsList("RECEIPT_HEADER", nil),
			Footer:         getEnvAsList("RECEIPT_FOOTER", nil),
			CutLines:       getEnvAsInt("RECEIPT_CUT_LINES", 4),
			PrinterEnabled: getEnvAsBool("PRINTER_ENABLED", true),
			PrinterOutput:  getEnv("PRINTER_OUTPUT", "stdout"),
		},
		Events: EventsConfig{
			RabbitMQURL: getEnv("RABBITMQ_URL", ""),
		},
		Session: SessionConfig{
			IdleTimeout: getEnvAsDuration("SESSION_IDLE_TIMEOUT", 15*time.Minute),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Database.Enabled {
		if err := c.Database.validate(); err != nil {
			return err
		}
	}

	if c.Auth.APIKey == "" {
		return fmt.Errorf("API key is required")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLogLevels[c.Logger.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Logger.Format != "json" && c.Logger.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", c.Logger.Format)
	}

	switch c.Menu.Source {
	case MenuSourceHTTP:
		if c.Menu.Endpoint == "" {
			return fmt.Errorf("menu endpoint is required when menu source is http")
		}
	case MenuSourceFile:
		if c.Menu.File == "" {
			return fmt.Errorf("menu file is required when menu source is file")
		}
	case MenuSourceS3:
		if c.S3.Bucket == "" {
			return fmt.Errorf("S3 bucket is required when menu source is s3")
		}
		if c.S3.Region == "" {
			return fmt.Errorf("S3 region is required when menu source is s3")
		}
		if c.S3.Key == "" {
			return fmt.Errorf("S3 key is required when menu source is s3")
		}
	default:
		return fmt.Errorf("invalid menu source: %s (must be http, file, or s3)", c.Menu.Source)
	}

	if c.Menu.RetryAttempts < 1 {
		return fmt.Errorf("menu retry attempts must be at least 1")
	}

	if c.Menu.Freshness <= 0 {
		return fmt.Errorf("menu freshness must be positive")
	}

	if c.Receipt.Width < 20 {
		return fmt.Errorf("receipt width must be at least 20 characters")
	}

	if c.Receipt.CutLines < 0 {
		return fmt.Errorf("receipt cut lines cannot be negative")
	}

	if c.Session.IdleTimeout <= 0 {
		return fmt.Errorf("session idle timeout must be positive")
	}

	return nil
}

func (c *DatabaseConfig) validate() error {
	if c.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid database port: %d", c.Port)
	}

	if c.User == "" {
		return fmt.Errorf("database user is required")
	}

	if c.Database == "" {
		return fmt.Errorf("database name is required")
	}

	if c.MaxConnections < 1 {
		return fmt.Errorf("database max connections must be at least 1")
	}

	if c.MinConnections < 1 {
		return fmt.Errorf("database min connections must be at least 1")
	}

	if c.MinConnections > c.MaxConnections {
		return fmt.Errorf("database min connections cannot exceed max connections")
	}

	return nil
}

// ConnectionString returns the PostgreSQL connection string.
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.Database,
	)
}

// Address returns the server address.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value.
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value.
func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvAsDuration retrieves an environment variable as a time.Duration or returns a default value.
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

// getEnvAsList splits a "|" separated variable into lines.
func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return strings.Split(value, "|")
}
