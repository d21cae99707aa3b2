package main

import (
	"context"
	"fmt"

	"github.com/turtacn/molforge/internal/application/conversion"
	"github.com/turtacn/molforge/internal/config"
	"github.com/turtacn/molforge/internal/domain/molecule"
	"github.com/turtacn/molforge/internal/infrastructure/database/redis"
	"github.com/turtacn/molforge/internal/infrastructure/messaging/kafka"
	"github.com/turtacn/molforge/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/molforge/internal/infrastructure/storage/minio"
	"github.com/turtacn/molforge/internal/interfaces/http/handlers"
)

// dependencies holds the optional backing services. A nil field means the
// service is disabled in configuration.
type dependencies struct {
	redisClient *redis.Client
	cache       redis.Cache
	archive     *minio.StructureArchive
	minioClient *minio.MinIOClient
	publisher   *kafka.EventPublisher
	logger      logging.Logger
}

func connectDependencies(_ context.Context, cfg *config.Config, logger logging.Logger) (*dependencies, error) {
	d := &dependencies{logger: logger}

	if cfg.Redis.Enabled {
		rc, err := redis.NewClient(&redis.RedisConfig{
			Addr:         cfg.Redis.Addr,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
			DialTimeout:  cfg.Redis.DialTimeout,
			ReadTimeout:  cfg.Redis.ReadTimeout,
			WriteTimeout: cfg.Redis.WriteTimeout,
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("redis: %w", err)
		}
		d.redisClient = rc
		d.cache = redis.NewRedisCache(rc, logger,
			redis.WithPrefix(cfg.Redis.KeyPrefix),
			redis.WithDefaultTTL(cfg.Redis.TTL))
	}

	if cfg.MinIO.Enabled {
		mc, err := minio.NewMinIOClient(&minio.MinIOConfig{
			Endpoint:        cfg.MinIO.Endpoint,
			AccessKeyID:     cfg.MinIO.AccessKey,
			SecretAccessKey: cfg.MinIO.SecretKey,
			UseSSL:          cfg.MinIO.UseSSL,
			Region:          cfg.MinIO.Region,
			Bucket:          cfg.MinIO.Bucket,
			PresignExpiry:   cfg.MinIO.PresignExpiry,
		}, logger)
		if err != nil {
			d.Close()
			return nil, fmt.Errorf("minio: %w", err)
		}
		d.minioClient = mc
		d.archive = minio.NewStructureArchive(mc, logger)
	}

	if cfg.Kafka.Enabled {
		producer, err := kafka.NewProducer(kafka.ProducerConfig{
			Brokers:      cfg.Kafka.Brokers,
			Acks:         acksName(cfg.Kafka.RequiredAcks),
			WriteTimeout: cfg.Kafka.WriteTimeout,
		}, logger)
		if err != nil {
			d.Close()
			return nil, fmt.Errorf("kafka: %w", err)
		}
		d.publisher = kafka.NewEventPublisher(producer, cfg.Kafka.Topic)
	}
	return d, nil
}

// acksName maps the numeric required_acks setting onto the producer's names.
func acksName(n int) string {
	switch n {
	case 0:
		return "none"
	case -1:
		return "all"
	default:
		return "one"
	}
}

func (d *dependencies) serviceOptions() []conversion.Option {
	var opts []conversion.Option
	if d.cache != nil {
		opts = append(opts, conversion.WithCache(d.cache))
	}
	if d.archive != nil {
		opts = append(opts, conversion.WithArchive(d.archive))
	}
	if d.publisher != nil {
		opts = append(opts, conversion.WithPublisher(d.publisher))
	}
	return opts
}

func (d *dependencies) checkers() []handlers.HealthChecker {
	var out []handlers.HealthChecker
	if d.cache != nil {
		out = append(out, &redisHealthAdapter{cache: d.cache})
	}
	if d.archive != nil {
		out = append(out, &minioHealthAdapter{archive: d.archive})
	}
	return out
}

// Close releases every connected service, logging failures.
func (d *dependencies) Close() {
	if d.publisher != nil {
		if err := d.publisher.Close(); err != nil {
			d.logger.Warn("kafka producer close failed", logging.Err(err))
		}
	}
	if d.minioClient != nil {
		if err := d.minioClient.Close(); err != nil {
			d.logger.Warn("minio client close failed", logging.Err(err))
		}
	}
	if d.redisClient != nil {
		if err := d.redisClient.Close(); err != nil {
			d.logger.Warn("redis client close failed", logging.Err(err))
		}
	}
}

// Adapters for HealthHandler
type providerHealthAdapter struct {
	provider molecule.StructureProvider
}

func (a *providerHealthAdapter) Name() string {
	return "chem_" + a.provider.Name()
}

func (a *providerHealthAdapter) Check(ctx context.Context) error {
	return a.provider.Ping(ctx)
}

type redisHealthAdapter struct {
	cache redis.Cache
}

func (a *redisHealthAdapter) Name() string {
	return "redis"
}

func (a *redisHealthAdapter) Check(ctx context.Context) error {
	return a.cache.Ping(ctx)
}

type minioHealthAdapter struct {
	archive *minio.StructureArchive
}

func (a *minioHealthAdapter) Name() string {
	return "minio"
}

func (a *minioHealthAdapter) Check(ctx context.Context) error {
	return a.archive.Ping(ctx)
}

//Personal.AI order the ending
