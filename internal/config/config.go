package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure.
// It is read-only after Load() returns and thread-safe for concurrent reads.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Auth      AuthConfig      `yaml:"auth"`
	Sync      SyncConfig      `yaml:"sync"`
	Worker    WorkerConfig    `yaml:"worker"`
	Log       LogConfig       `yaml:"log"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// DevMode skips the secret checks in validate. Env-only.
	DevMode bool `yaml:"-" env:"SOLACE_DEV_MODE"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port            int      `yaml:"port" env:"SOLACE_PORT"`
	ReadTimeout     Duration `yaml:"read_timeout" env:"SOLACE_READ_TIMEOUT"`
	WriteTimeout    Duration `yaml:"write_timeout" env:"SOLACE_WRITE_TIMEOUT"`
	ShutdownTimeout Duration `yaml:"shutdown_timeout" env:"SOLACE_SHUTDOWN_TIMEOUT"`
}

// DatabaseConfig contains database settings.
type DatabaseConfig struct {
	Path string `yaml:"path" env:"SOLACE_DB_PATH"`
}

// AuthConfig contains authentication settings.
type AuthConfig struct {
	JWTSecret string `yaml:"-" env:"SOLACE_JWT_SECRET"` // env-only, never in YAML
}

// SyncConfig bounds the batch sync endpoint.
type SyncConfig struct {
	MaxOperations    int      `yaml:"max_operations" env:"SOLACE_SYNC_MAX_OPERATIONS"`
	MaxBodyBytes     int64    `yaml:"max_body_bytes" env:"SOLACE_SYNC_MAX_BODY_BYTES"`
	OperationTimeout Duration `yaml:"operation_timeout" env:"SOLACE_SYNC_OPERATION_TIMEOUT"`
	BatchTimeout     Duration `yaml:"batch_timeout" env:"SOLACE_SYNC_BATCH_TIMEOUT"`
}

// WorkerConfig contains background worker settings.
type WorkerConfig struct {
	PurgeInterval  Duration `yaml:"purge_interval" env:"SOLACE_PURGE_INTERVAL"`
	PurgeRetention Duration `yaml:"purge_retention" env:"SOLACE_PURGE_RETENTION"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string `yaml:"level" env:"SOLACE_LOG_LEVEL"`
	Format string `yaml:"format" env:"SOLACE_LOG_FORMAT"`
}

// TelemetryConfig contains OpenTelemetry export settings.
// Tracing is disabled while Endpoint is empty.
type TelemetryConfig struct {
	Endpoint    string `yaml:"endpoint" env:"SOLACE_OTEL_ENDPOINT"`
	ServiceName string `yaml:"service_name" env:"SOLACE_OTEL_SERVICE_NAME"`
}

// Duration is a wrapper around time.Duration that supports YAML and env string parsing.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler for Duration.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	return d.UnmarshalText([]byte(s))
}

// UnmarshalText implements encoding.TextUnmarshaler for Duration.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler for Duration.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Load loads configuration with precedence: defaults → YAML file → env vars.
// Returns an immutable Config suitable for concurrent read access.
func Load() (*Config, error) {
	cfg := newDefaults()

	// Determine config path
	configPath := getEnv("SOLACE_CONFIG_PATH", "config/solace.yaml")

	// Load YAML file if it exists (missing file is not an error)
	if err := loadYAMLFile(cfg, configPath); err != nil {
		return nil, err
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromFile loads configuration from a specific path.
// Used for testing and explicit path specification.
func LoadFromFile(path string) (*Config, error) {
	cfg := newDefaults()

	// Load YAML file (file must exist for this function)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadDatabaseConfig resolves only the database section, skipping validation.
// Offline maintenance commands use it so they run without the JWT secret.
func LoadDatabaseConfig() (*DatabaseConfig, error) {
	cfg := newDefaults()
	if err := loadYAMLFile(cfg, getEnv("SOLACE_CONFIG_PATH", "config/solace.yaml")); err != nil {
		return nil, err
	}
	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	return &cfg.Database, nil
}

// newDefaults returns a Config with all default values.
func newDefaults() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     Duration(30 * time.Second),
			WriteTimeout:    Duration(90 * time.Second),
			ShutdownTimeout: Duration(15 * time.Second),
		},
		Database: DatabaseConfig{
			Path: "data/solace.db",
		},
		Sync: SyncConfig{
			MaxOperations:    500,
			MaxBodyBytes:     1 << 20,
			OperationTimeout: Duration(10 * time.Second),
			BatchTimeout:     Duration(60 * time.Second),
		},
		Worker: WorkerConfig{
			PurgeInterval:  Duration(24 * time.Hour),
			PurgeRetention: Duration(30 * 24 * time.Hour),
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Telemetry: TelemetryConfig{
			ServiceName: "solace",
		},
	}
}

// loadYAMLFile loads configuration from a YAML file if it exists.
// Missing file is not an error; we just use defaults.
func loadYAMLFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides overrides cfg with every SOLACE_* variable that is set.
// Unset variables leave the YAML or default value in place.
func applyEnvOverrides(cfg *Config) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// validate checks that required configuration values are set and sane.
// In dev mode (SOLACE_DEV_MODE=true), the JWT secret check is skipped.
func (c *Config) validate() error {
	if c.Sync.MaxOperations <= 0 {
		return errors.New("sync.max_operations must be positive")
	}
	if c.Sync.MaxBodyBytes <= 0 {
		return errors.New("sync.max_body_bytes must be positive")
	}
	if c.Sync.OperationTimeout < 0 || c.Sync.BatchTimeout < 0 {
		return errors.New("sync timeouts must not be negative")
	}
	if c.Worker.PurgeInterval < 0 || c.Worker.PurgeRetention < 0 {
		return errors.New("worker durations must not be negative")
	}

	if c.DevMode {
		return nil
	}
	if c.Auth.JWTSecret == "" {
		return errors.New("SOLACE_JWT_SECRET is required")
	}
	return nil
}

// devJWTSecret signs tokens when DevMode is on and no secret is configured.
const devJWTSecret = "solace-dev-insecure-secret"

// SigningKey returns the HMAC key for bearer tokens. In dev mode without a
// configured secret it falls back to a fixed, insecure key.
func (c *Config) SigningKey() []byte {
	if c.Auth.JWTSecret == "" && c.DevMode {
		return []byte(devJWTSecret)
	}
	return []byte(c.Auth.JWTSecret)
}

// getEnv returns the value of an environment variable or a default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
