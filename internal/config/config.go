// Package config manages environment variables.
//
// It reads variables from the process environment (optionally seeded
// from a `.env` file), maps them into structured Go types, and
// validates that required values are present so the application fails
// fast on bad or missing configuration.
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	// Side-effect import: loads a `.env` file into the process env
	// before any env var is read.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix shared by every environment variable this
// service reads. Keys are nested with "." after the prefix is stripped,
// e.g. STUDYKIT_SERVER.PORT -> server.port -> Config.Server.Port.
const EnvPrefix = "STUDYKIT_"

// Config is the root configuration object for the application.
//
// Observability is a pointer because it is optional; defaults are
// injected at load time when it is absent.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Redis         RedisConfig          `koanf:"redis" validate:"required"`
	Auth          AuthConfig           `koanf:"auth" validate:"required"`
	Storage       StorageConfig        `koanf:"storage" validate:"required"`
	AI            AIConfig             `koanf:"ai" validate:"required"`
	Integration   IntegrationConfig    `koanf:"integration"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
// Timeouts are stored as seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required"`
}

// DatabaseConfig contains PostgreSQL connection parameters and pool tuning.
type DatabaseConfig struct {
	Host            string `koanf:"host" validate:"required"`
	Port            int    `koanf:"port" validate:"required"`
	User            string `koanf:"user" validate:"required"`
	Password        string `koanf:"password" validate:"required"`
	Name            string `koanf:"name" validate:"required"`
	SSLMode         string `koanf:"ssl_mode" validate:"required"`
	MaxOpenConns    int    `koanf:"max_open_conns" validate:"required"`
	MaxIdleConns    int    `koanf:"max_idle_conns" validate:"required"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime" validate:"required"`
	ConnMaxIdleTime int    `koanf:"conn_max_idle_time" validate:"required"`
}

// RedisConfig contains Redis connection details. Address is "host:port".
type RedisConfig struct {
	Address string `koanf:"address" validate:"required"`
}

// AuthConfig stores token signing configuration.
type AuthConfig struct {
	SecretKey     string `koanf:"secret_key" validate:"required,min=32"`
	TokenTTLHours int    `koanf:"token_ttl_hours" validate:"required,min=1"`
}

// StorageConfig covers both the local spool directory that uploaded
// documents are processed from and the S3 bucket used by the generic
// upload endpoints.
type StorageConfig struct {
	UploadDir        string   `koanf:"upload_dir" validate:"required"`
	MaxFileSizeMB    int64    `koanf:"max_file_size_mb" validate:"required,min=1"`
	AllowedFileTypes []string `koanf:"allowed_file_types" validate:"required,min=1"`
	S3Bucket         string   `koanf:"s3_bucket" validate:"required"`
	S3Region         string   `koanf:"s3_region" validate:"required"`
	PresignTTLMin    int      `koanf:"presign_ttl_min" validate:"required,min=1"`
}

// AIConfig tunes the question-generation subsystem.
//
// ContentCharLimit caps how much document text is inlined into a
// prompt. CacheTTLMin controls how long generated responses stay in
// Redis; zero disables caching.
type AIConfig struct {
	Model            string `koanf:"model" validate:"required"`
	MaxTokens        int    `koanf:"max_tokens" validate:"required,min=1"`
	ContentCharLimit int    `koanf:"content_char_limit" validate:"required,min=100"`
	TimeoutSeconds   int    `koanf:"timeout_seconds" validate:"required,min=1"`
	CacheTTLMin      int    `koanf:"cache_ttl_min" validate:"min=0"`
	MaxRetries       int    `koanf:"max_retries" validate:"min=0"`
}

// IntegrationConfig holds third-party API credentials that are not
// part of the core data path.
type IntegrationConfig struct {
	ResendAPIKey string `koanf:"resend_api_key"`
}

// Load reads configuration from environment variables, unmarshals it
// into Config, validates it, and applies observability defaults.
//
// Every failure is reported as an error so the caller (and tests)
// decide how to die.
func Load() (*Config, error) {
	k := koanf.New(".")

	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("loading environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if cfg.Observability == nil {
		cfg.Observability = DefaultObservabilityConfig()
	}

	// Service name and environment are forced so telemetry is tagged
	// consistently regardless of what the environment sets.
	cfg.Observability.ServiceName = "studykit"
	cfg.Observability.Environment = cfg.Primary.Env

	if err := cfg.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return cfg, nil
}
