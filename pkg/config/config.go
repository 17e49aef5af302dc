package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all configuration for pitchline-engine.
// Configuration can come from YAML file (config.yaml) or environment variables.
// Environment variables always override YAML values for fields that support both.
// Secrets (passwords, API keys) must only come from environment variables.
type Config struct {
	// Server configuration
	BindAddr string `yaml:"bind_addr" env:"BIND_ADDR" env-default:"127.0.0.1"`
	Port     string `yaml:"port" env:"PORT" env-default:"8085"`
	Env      string `yaml:"env" env:"ENVIRONMENT" env-default:"local"`
	Version  string `yaml:"-"` // Set at load time, not from config

	// Database configuration (PostgreSQL)
	Database DatabaseConfig `yaml:"database"`

	// Text-generation configuration
	AI AIConfig `yaml:"ai"`

	// Google Maps configuration (geocoding and nearby search)
	Maps MapsConfig `yaml:"maps"`

	// Outbound mail configuration
	SMTP SMTPConfig `yaml:"smtp"`

	// Outreach sender identity placed into generated emails
	Outreach OutreachConfig `yaml:"outreach"`
}

// DatabaseConfig holds PostgreSQL database configuration.
type DatabaseConfig struct {
	Host           string `yaml:"host" env:"PGHOST" env-default:"localhost"`
	Port           int    `yaml:"port" env:"PGPORT" env-default:"5432"`
	User           string `yaml:"user" env:"PGUSER" env-default:"pitchline"`
	Password       string `yaml:"-" env:"PGPASSWORD"` // Secret - not in YAML
	Database       string `yaml:"database" env:"PGDATABASE" env-default:"pitchline_engine"`
	MaxConnections int32  `yaml:"max_connections" env:"PGMAX_CONNECTIONS" env-default:"25"`
	SSLMode        string `yaml:"ssl_mode" env:"PGSSLMODE" env-default:"disable"`
	MigrationsPath string `yaml:"migrations_path" env:"PGMIGRATIONS_PATH" env-default:"migrations"`
}

// AIConfig holds the text-generation endpoint configuration.
// Provider selects the backend: "openai" for any OpenAI-compatible endpoint,
// "anthropic" for the Anthropic API.
type AIConfig struct {
	Provider    string  `yaml:"provider" env:"AI_PROVIDER" env-default:"openai"`
	BaseURL     string  `yaml:"base_url" env:"AI_BASE_URL" env-default:"https://api.openai.com/v1"`
	Model       string  `yaml:"model" env:"AI_MODEL" env-default:"gpt-4o-mini"`
	APIKey      string  `yaml:"-" env:"AI_API_KEY"` // Secret - not in YAML
	Temperature float64 `yaml:"temperature" env:"AI_TEMPERATURE" env-default:"0"`
}

// MapsConfig holds the Google Maps API configuration.
type MapsConfig struct {
	APIKey string `yaml:"-" env:"GOOGLE_MAPS_API_KEY"` // Secret - not in YAML
	// SearchRadiusMeters is the fixed nearby-search radius around a property.
	SearchRadiusMeters int `yaml:"search_radius_meters" env:"MAPS_SEARCH_RADIUS_METERS" env-default:"8000"`
}

// SMTPConfig holds outbound mail transport configuration.
type SMTPConfig struct {
	Host     string `yaml:"host" env:"SMTP_HOST" env-default:"smtp.gmail.com"`
	Port     int    `yaml:"port" env:"SMTP_PORT" env-default:"587"`
	From     string `yaml:"from" env:"SMTP_FROM" env-default:""`
	Password string `yaml:"-" env:"SMTP_PASSWORD"` // Secret - not in YAML
}

// OutreachConfig holds the sender identity used in generated emails.
type OutreachConfig struct {
	SenderName string `yaml:"sender_name" env:"OUTREACH_SENDER_NAME" env-default:""`
}

// Load reads configuration from config.yaml with environment variable overrides.
// The version parameter is injected at build time and set on the returned Config.
func Load(version string) (*Config, error) {
	cfg := &Config{
		Version: version,
	}

	if err := cleanenv.ReadConfig("config.yaml", cfg); err != nil {
		return nil, fmt.Errorf("failed to read config.yaml: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.AI.Provider {
	case "openai", "anthropic":
	default:
		return fmt.Errorf("unsupported ai.provider %q (want \"openai\" or \"anthropic\")", c.AI.Provider)
	}
	if c.Maps.SearchRadiusMeters <= 0 {
		return fmt.Errorf("maps.search_radius_meters must be positive, got %d", c.Maps.SearchRadiusMeters)
	}
	if c.SMTP.Port <= 0 || c.SMTP.Port > 65535 {
		return fmt.Errorf("smtp.port out of range: %d", c.SMTP.Port)
	}
	return nil
}

// ConnectionString returns a PostgreSQL connection string.
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}
