// Package config defines the configuration structures of MolForge. No I/O or
// parsing logic lives here, only plain data types and validation.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/turtacn/molforge/internal/domain/druglike"
)

// ─────────────────────────────────────────────────────────────────────────────
// Sub-configuration structs
// ─────────────────────────────────────────────────────────────────────────────

// ServerConfig holds HTTP server tunables.
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"` // "debug" | "release" | "test"
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	MaxBodySize     int64         `mapstructure:"max_body_size"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	SlowThreshold   time.Duration `mapstructure:"slow_threshold"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
	RateLimitRPS    float64       `mapstructure:"rate_limit_rps"`
	RateLimitBurst  int           `mapstructure:"rate_limit_burst"`
}

// Address returns host:port for net.Listen.
func (s ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level       string   `mapstructure:"level"`
	Format      string   `mapstructure:"format"` // "json" | "console"
	OutputPaths []string `mapstructure:"output_paths"`
}

// ChemConfig selects and tunes the structure provider.
type ChemConfig struct {
	// Driver is "http" (RDKit sidecar) or "exec" (local bridge command).
	Driver          string        `mapstructure:"driver"`
	Endpoint        string        `mapstructure:"endpoint"`
	BridgeCommand   string        `mapstructure:"bridge_command"`
	BridgeArgs      []string      `mapstructure:"bridge_args"`
	TempDir         string        `mapstructure:"temp_dir"`
	Timeout         time.Duration `mapstructure:"timeout"`
	MaxSMILESLength int           `mapstructure:"max_smiles_length"`
	RandomSeed      int           `mapstructure:"random_seed"`

	RetryMaxAttempts     int           `mapstructure:"retry_max_attempts"`
	RetryInitialInterval time.Duration `mapstructure:"retry_initial_interval"`
	RetryMaxInterval     time.Duration `mapstructure:"retry_max_interval"`

	BreakerFailures int           `mapstructure:"breaker_failures"`
	BreakerInterval time.Duration `mapstructure:"breaker_interval"`
	BreakerTimeout  time.Duration `mapstructure:"breaker_timeout"`
}

// RulesConfig carries the drug-likeness thresholds.
type RulesConfig struct {
	Lipinski druglike.LipinskiThresholds `mapstructure:"lipinski"`
	Ghose    druglike.GhoseThresholds    `mapstructure:"ghose"`
	Veber    druglike.VeberThresholds    `mapstructure:"veber"`
}

// Thresholds converts the section into the domain type.
func (r RulesConfig) Thresholds() druglike.Thresholds {
	return druglike.Thresholds{Lipinski: r.Lipinski, Ghose: r.Ghose, Veber: r.Veber}
}

// ViewerConfig configures the 3D viewer link.
type ViewerConfig struct {
	BaseURL string `mapstructure:"base_url"`
}

// RedisConfig holds the structure cache connection parameters.
type RedisConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	Addr         string        `mapstructure:"addr"`
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db"`
	PoolSize     int           `mapstructure:"pool_size"`
	MinIdleConns int           `mapstructure:"min_idle_conns"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	KeyPrefix    string        `mapstructure:"key_prefix"`
	TTL          time.Duration `mapstructure:"ttl"`
}

// MinIOConfig holds the PDB archive parameters.
type MinIOConfig struct {
	Enabled       bool          `mapstructure:"enabled"`
	Endpoint      string        `mapstructure:"endpoint"`
	AccessKey     string        `mapstructure:"access_key"`
	SecretKey     string        `mapstructure:"secret_key"`
	UseSSL        bool          `mapstructure:"use_ssl"`
	Region        string        `mapstructure:"region"`
	Bucket        string        `mapstructure:"bucket"`
	PresignExpiry time.Duration `mapstructure:"presign_expiry"`
}

// KafkaConfig holds the conversion event publisher parameters.
type KafkaConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	Brokers      []string      `mapstructure:"brokers"`
	Topic        string        `mapstructure:"topic"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	RequiredAcks int           `mapstructure:"required_acks"`
}

// MetricsConfig holds Prometheus exposition settings.
type MetricsConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Namespace string `mapstructure:"namespace"`
	Path      string `mapstructure:"path"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Root configuration
// ─────────────────────────────────────────────────────────────────────────────

// Config is the root configuration object.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Log     LogConfig     `mapstructure:"log"`
	Chem    ChemConfig    `mapstructure:"chem"`
	Rules   RulesConfig   `mapstructure:"rules"`
	Viewer  ViewerConfig  `mapstructure:"viewer"`
	Redis   RedisConfig   `mapstructure:"redis"`
	MinIO   MinIOConfig   `mapstructure:"minio"`
	Kafka   KafkaConfig   `mapstructure:"kafka"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// Validate checks the configuration for required fields and legal values.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("config: server.port %d out of range", c.Server.Port)
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("config: server.mode %q must be debug, release or test", c.Server.Mode)
	}
	if c.Server.RateLimitRPS < 0 || c.Server.RateLimitBurst < 0 {
		return fmt.Errorf("config: server.rate_limit_rps and server.rate_limit_burst must not be negative")
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: log.level %q is not supported", c.Log.Level)
	}
	if c.Log.Format != "json" && c.Log.Format != "console" {
		return fmt.Errorf("config: log.format %q must be json or console", c.Log.Format)
	}

	switch c.Chem.Driver {
	case "http":
		if c.Chem.Endpoint == "" {
			return fmt.Errorf("config: chem.endpoint is required for the http driver")
		}
	case "exec":
		if c.Chem.BridgeCommand == "" {
			return fmt.Errorf("config: chem.bridge_command is required for the exec driver")
		}
	default:
		return fmt.Errorf("config: chem.driver %q must be http or exec", c.Chem.Driver)
	}
	if c.Chem.Timeout <= 0 {
		return fmt.Errorf("config: chem.timeout must be positive")
	}

	if err := c.Rules.Thresholds().Validate(); err != nil {
		return fmt.Errorf("config: rules: %w", err)
	}

	if c.Viewer.BaseURL == "" {
		return fmt.Errorf("config: viewer.base_url is required")
	}

	if c.Redis.Enabled && c.Redis.Addr == "" {
		return fmt.Errorf("config: redis.addr is required when redis is enabled")
	}
	if c.MinIO.Enabled {
		if c.MinIO.Endpoint == "" || c.MinIO.Bucket == "" {
			return fmt.Errorf("config: minio.endpoint and minio.bucket are required when minio is enabled")
		}
	}
	if c.Kafka.Enabled {
		if len(c.Kafka.Brokers) == 0 || c.Kafka.Topic == "" {
			return fmt.Errorf("config: kafka.brokers and kafka.topic are required when kafka is enabled")
		}
	}
	if c.Metrics.Enabled && c.Metrics.Namespace == "" {
		return fmt.Errorf("config: metrics.namespace is required when metrics are enabled")
	}
	return nil
}

//Personal.AI order the ending
