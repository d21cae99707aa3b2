package config

import (
	"time"

	"github.com/turtacn/molforge/internal/domain/druglike"
	"github.com/turtacn/molforge/internal/domain/molecule"
)

// ─────────────────────────────────────────────────────────────────────────────
// Default value constants
// ─────────────────────────────────────────────────────────────────────────────

const (
	DefaultServerHost            = "0.0.0.0"
	DefaultServerPort            = 8080
	DefaultServerMode            = "release"
	DefaultServerReadTimeout     = 15 * time.Second
	DefaultServerWriteTimeout    = 60 * time.Second
	DefaultServerMaxBodySize     = 1 << 20
	DefaultServerShutdownTimeout = 30 * time.Second
	DefaultServerSlowThreshold   = 3 * time.Second
	DefaultServerRateLimitRPS    = 2.0
	DefaultServerRateLimitBurst  = 10

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	DefaultChemDriver               = "http"
	DefaultChemEndpoint             = "http://localhost:8001"
	DefaultChemTimeout              = 45 * time.Second
	DefaultChemRandomSeed           = 0xf00d
	DefaultChemRetryMaxAttempts     = 3
	DefaultChemRetryInitialInterval = 200 * time.Millisecond
	DefaultChemRetryMaxInterval     = 2 * time.Second
	DefaultChemBreakerFailures      = 5
	DefaultChemBreakerInterval      = 60 * time.Second
	DefaultChemBreakerTimeout       = 30 * time.Second

	DefaultViewerBaseURL = "https://molview.org/"

	DefaultRedisAddr      = "localhost:6379"
	DefaultRedisPoolSize  = 10
	DefaultRedisKeyPrefix = "molforge:"
	DefaultRedisTTL       = 24 * time.Hour
	DefaultRedisTimeout   = 3 * time.Second

	DefaultMinIOEndpoint      = "localhost:9000"
	DefaultMinIOBucket        = "molforge-structures"
	DefaultMinIORegion        = "us-east-1"
	DefaultMinIOPresignExpiry = time.Hour

	DefaultKafkaBroker       = "localhost:9092"
	DefaultKafkaTopic        = "molecule.converted"
	DefaultKafkaWriteTimeout = 10 * time.Second

	DefaultMetricsNamespace = "molforge"
	DefaultMetricsPath      = "/metrics"
)

// NewDefaultConfig returns a Config with every default applied.
func NewDefaultConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills every zero-value field in cfg with its default. Fields
// already set are left unchanged.
//
// Thresholds are all-or-nothing: a rules section that is entirely zero gets
// the published cut-offs, a partially set one is kept as written so that a
// deliberate zero limit survives.
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}

	// ── Server ────────────────────────────────────────────────────────────────
	if cfg.Server.Host == "" {
		cfg.Server.Host = DefaultServerHost
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultServerPort
	}
	if cfg.Server.Mode == "" {
		cfg.Server.Mode = DefaultServerMode
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = DefaultServerReadTimeout
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = DefaultServerWriteTimeout
	}
	if cfg.Server.MaxBodySize == 0 {
		cfg.Server.MaxBodySize = DefaultServerMaxBodySize
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = DefaultServerShutdownTimeout
	}
	if cfg.Server.SlowThreshold == 0 {
		cfg.Server.SlowThreshold = DefaultServerSlowThreshold
	}
	if cfg.Server.RateLimitRPS == 0 {
		cfg.Server.RateLimitRPS = DefaultServerRateLimitRPS
	}
	if cfg.Server.RateLimitBurst == 0 {
		cfg.Server.RateLimitBurst = DefaultServerRateLimitBurst
	}

	// ── Log ───────────────────────────────────────────────────────────────────
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}

	// ── Chem ──────────────────────────────────────────────────────────────────
	if cfg.Chem.Driver == "" {
		cfg.Chem.Driver = DefaultChemDriver
	}
	if cfg.Chem.Driver == "http" && cfg.Chem.Endpoint == "" {
		cfg.Chem.Endpoint = DefaultChemEndpoint
	}
	if cfg.Chem.Timeout == 0 {
		cfg.Chem.Timeout = DefaultChemTimeout
	}
	if cfg.Chem.MaxSMILESLength == 0 {
		cfg.Chem.MaxSMILESLength = molecule.DefaultMaxSMILESLength
	}
	if cfg.Chem.RandomSeed == 0 {
		cfg.Chem.RandomSeed = DefaultChemRandomSeed
	}
	if cfg.Chem.RetryMaxAttempts == 0 {
		cfg.Chem.RetryMaxAttempts = DefaultChemRetryMaxAttempts
	}
	if cfg.Chem.RetryInitialInterval == 0 {
		cfg.Chem.RetryInitialInterval = DefaultChemRetryInitialInterval
	}
	if cfg.Chem.RetryMaxInterval == 0 {
		cfg.Chem.RetryMaxInterval = DefaultChemRetryMaxInterval
	}
	if cfg.Chem.BreakerFailures == 0 {
		cfg.Chem.BreakerFailures = DefaultChemBreakerFailures
	}
	if cfg.Chem.BreakerInterval == 0 {
		cfg.Chem.BreakerInterval = DefaultChemBreakerInterval
	}
	if cfg.Chem.BreakerTimeout == 0 {
		cfg.Chem.BreakerTimeout = DefaultChemBreakerTimeout
	}

	// ── Rules ─────────────────────────────────────────────────────────────────
	if cfg.Rules == (RulesConfig{}) {
		d := druglike.DefaultThresholds()
		cfg.Rules = RulesConfig{Lipinski: d.Lipinski, Ghose: d.Ghose, Veber: d.Veber}
	}

	// ── Viewer ────────────────────────────────────────────────────────────────
	if cfg.Viewer.BaseURL == "" {
		cfg.Viewer.BaseURL = DefaultViewerBaseURL
	}

	// ── Redis ─────────────────────────────────────────────────────────────────
	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = DefaultRedisAddr
	}
	if cfg.Redis.PoolSize == 0 {
		cfg.Redis.PoolSize = DefaultRedisPoolSize
	}
	if cfg.Redis.KeyPrefix == "" {
		cfg.Redis.KeyPrefix = DefaultRedisKeyPrefix
	}
	if cfg.Redis.TTL == 0 {
		cfg.Redis.TTL = DefaultRedisTTL
	}
	if cfg.Redis.DialTimeout == 0 {
		cfg.Redis.DialTimeout = DefaultRedisTimeout
	}
	if cfg.Redis.ReadTimeout == 0 {
		cfg.Redis.ReadTimeout = DefaultRedisTimeout
	}
	if cfg.Redis.WriteTimeout == 0 {
		cfg.Redis.WriteTimeout = DefaultRedisTimeout
	}

	// ── MinIO ─────────────────────────────────────────────────────────────────
	if cfg.MinIO.Endpoint == "" {
		cfg.MinIO.Endpoint = DefaultMinIOEndpoint
	}
	if cfg.MinIO.Bucket == "" {
		cfg.MinIO.Bucket = DefaultMinIOBucket
	}
	if cfg.MinIO.Region == "" {
		cfg.MinIO.Region = DefaultMinIORegion
	}
	if cfg.MinIO.PresignExpiry == 0 {
		cfg.MinIO.PresignExpiry = DefaultMinIOPresignExpiry
	}

	// ── Kafka ─────────────────────────────────────────────────────────────────
	if len(cfg.Kafka.Brokers) == 0 {
		cfg.Kafka.Brokers = []string{DefaultKafkaBroker}
	}
	if cfg.Kafka.Topic == "" {
		cfg.Kafka.Topic = DefaultKafkaTopic
	}
	if cfg.Kafka.WriteTimeout == 0 {
		cfg.Kafka.WriteTimeout = DefaultKafkaWriteTimeout
	}

	// ── Metrics ───────────────────────────────────────────────────────────────
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = DefaultMetricsPath
	}
}

//Personal.AI order the ending
