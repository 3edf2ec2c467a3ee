package config

import (
	"os"
	"strconv"
	"time"

	"networkd-agent/internal/domain/errors"
)

// Spec source backends selectable via SPEC_SOURCE.
const (
	SourceMySQL = "mysql"
	SourceYAML  = "yaml"
)

// Config is a struct that holds application configuration
type Config struct {
	Source   SourceConfig
	Database DatabaseConfig
	Agent    AgentConfig
	Health   HealthConfig
}

// SourceConfig selects where desired interface specs come from
type SourceConfig struct {
	Backend  string // mysql or yaml
	SpecFile string // used by the yaml backend
}

// DatabaseConfig is a struct that holds database configuration
type DatabaseConfig struct {
	Host         string
	Port         string
	User         string
	Password     string
	Database     string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  time.Duration
}

// AgentConfig is a struct that holds agent configuration
type AgentConfig struct {
	UnitDirectory   string
	BackupDirectory string
	PollInterval    time.Duration
	Backoff         BackoffConfig
}

// BackoffConfig is a struct that holds exponential backoff configuration
type BackoffConfig struct {
	Enabled     bool
	MaxInterval time.Duration
	Multiplier  float64
}

// HealthConfig is a struct that holds health check configuration
type HealthConfig struct {
	Port string
}

// ConfigLoader is an interface for loading configuration
type ConfigLoader interface {
	Load() (*Config, error)
}

// EnvironmentConfigLoader is an implementation that loads configuration from environment variables
type EnvironmentConfigLoader struct{}

// NewEnvironmentConfigLoader creates a new EnvironmentConfigLoader
func NewEnvironmentConfigLoader() ConfigLoader {
	return &EnvironmentConfigLoader{}
}

// Load loads configuration from environment variables
func (l *EnvironmentConfigLoader) Load() (*Config, error) {
	config := &Config{
		Source: SourceConfig{
			Backend:  getEnvOrDefault("SPEC_SOURCE", SourceYAML),
			SpecFile: getEnvOrDefault("SPEC_FILE", "/etc/networkd-agent/interfaces.yaml"),
		},
		Database: DatabaseConfig{
			Host:         getEnvOrDefault("DB_HOST", "127.0.0.1"),
			Port:         getEnvOrDefault("DB_PORT", "3306"),
			User:         getEnvOrDefault("DB_USER", "root"),
			Password:     getEnvOrDefault("DB_PASSWORD", ""),
			Database:     getEnvOrDefault("DB_NAME", "networkd"),
			MaxOpenConns: getEnvIntOrDefault("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns: getEnvIntOrDefault("DB_MAX_IDLE_CONNS", 5),
			MaxLifetime:  getEnvDurationOrDefault("DB_MAX_LIFETIME", 5*time.Minute),
		},
		Agent: AgentConfig{
			UnitDirectory:   getEnvOrDefault("NETWORKD_UNIT_DIR", "/etc/systemd/network"),
			BackupDirectory: getEnvOrDefault("BACKUP_DIR", "/var/lib/networkd-agent/backups"),
			PollInterval:    getEnvDurationOrDefault("POLL_INTERVAL", 30*time.Second),
			Backoff: BackoffConfig{
				Enabled:     getEnvBoolOrDefault("BACKOFF_ENABLED", true),
				MaxInterval: getEnvDurationOrDefault("BACKOFF_MAX_INTERVAL", 5*time.Minute),
				Multiplier:  getEnvFloatOrDefault("BACKOFF_MULTIPLIER", 2.0),
			},
		},
		Health: HealthConfig{
			Port: getEnvOrDefault("HEALTH_PORT", "8080"),
		},
	}

	// Validate configuration
	if err := l.validate(config); err != nil {
		return nil, err
	}

	return config, nil
}

// validate validates the configuration
func (l *EnvironmentConfigLoader) validate(config *Config) error {
	// Validate spec source configuration
	switch config.Source.Backend {
	case SourceMySQL, SourceYAML:
	default:
		return errors.NewValidationError("unknown spec source backend: "+config.Source.Backend, nil)
	}
	if config.Source.Backend == SourceYAML && config.Source.SpecFile == "" {
		return errors.NewValidationError("spec file not configured", nil)
	}

	// Validate database configuration (only when the mysql backend is selected)
	if config.Source.Backend == SourceMySQL {
		if config.Database.Host == "" {
			return errors.NewValidationError("database host not configured", nil)
		}
		if config.Database.Port == "" {
			return errors.NewValidationError("database port not configured", nil)
		}
		if config.Database.User == "" {
			return errors.NewValidationError("database user not configured", nil)
		}
		if config.Database.Database == "" {
			return errors.NewValidationError("database name not configured", nil)
		}
	}

	// Validate agent configuration
	if config.Agent.UnitDirectory == "" {
		return errors.NewValidationError("unit directory not configured", nil)
	}
	if config.Agent.PollInterval <= 0 {
		return errors.NewValidationError("invalid polling interval", nil)
	}

	// Validate health check configuration
	if config.Health.Port == "" {
		return errors.NewValidationError("health check port not configured", nil)
	}

	return nil
}

// Environment variable helper functions

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
