// Package kafka publishes conversion events so downstream consumers (compound
// registries, analytics) learn about every structure MolForge generates.
package kafka

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/turtacn/molforge/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/molforge/pkg/errors"
)

var (
	ErrProducerClosed = errors.New(errors.ErrCodeMessagingError, "producer closed")
)

// ProducerConfig holds configuration for the Producer.
type ProducerConfig struct {
	Brokers         []string
	Acks            string // "none" | "one" | "all"
	MaxRetries      int
	BatchTimeout    time.Duration
	WriteTimeout    time.Duration
	MaxMessageBytes int
}

// Message is a single record to publish.
type Message struct {
	Topic   string
	Key     []byte
	Value   []byte
	Headers map[string]string
}

// ProducerMetrics holds producer counters.
type ProducerMetrics struct {
	MessagesSent   atomic.Int64
	MessagesFailed atomic.Int64
	BytesSent      atomic.Int64
}

// WriterInterface abstracts kafka.Writer for testing.
type WriterInterface interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
	Stats() kafka.WriterStats
}

// Producer publishes messages through a kafka.Writer.
type Producer struct {
	writer  WriterInterface
	config  ProducerConfig
	logger  logging.Logger
	closed  atomic.Bool
	metrics *ProducerMetrics
}

// ValidateProducerConfig checks required fields.
func ValidateProducerConfig(cfg ProducerConfig) error {
	if len(cfg.Brokers) == 0 {
		return errors.NewValidationError("brokers", "at least one kafka broker is required")
	}
	switch cfg.Acks {
	case "", "none", "one", "all":
	default:
		return errors.NewValidationError("acks", "must be none, one or all")
	}
	return nil
}

// NewProducer creates a Producer. No connection is made until the first write.
func NewProducer(cfg ProducerConfig, logger logging.Logger) (*Producer, error) {
	if err := ValidateProducerConfig(cfg); err != nil {
		return nil, err
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 3
	}
	if cfg.BatchTimeout == 0 {
		cfg.BatchTimeout = 10 * time.Millisecond
	}
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = 10 * time.Second
	}
	if cfg.MaxMessageBytes == 0 {
		cfg.MaxMessageBytes = 1024 * 1024
	}

	var requiredAcks kafka.RequiredAcks
	switch cfg.Acks {
	case "none":
		requiredAcks = kafka.RequireNone
	case "all":
		requiredAcks = kafka.RequireAll
	default:
		requiredAcks = kafka.RequireOne
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Balancer:     &kafka.Hash{},
		MaxAttempts:  cfg.MaxRetries + 1,
		BatchTimeout: cfg.BatchTimeout,
		WriteTimeout: cfg.WriteTimeout,
		RequiredAcks: requiredAcks,
		Compression:  kafka.Snappy,
		Transport:    &kafka.Transport{DialTimeout: 10 * time.Second},
	}
	return newProducerWithWriter(writer, cfg, logger), nil
}

func newProducerWithWriter(w WriterInterface, cfg ProducerConfig, logger logging.Logger) *Producer {
	if cfg.MaxMessageBytes == 0 {
		cfg.MaxMessageBytes = 1024 * 1024
	}
	return &Producer{writer: w, config: cfg, logger: logger, metrics: &ProducerMetrics{}}
}

// Publish writes one message synchronously.
func (p *Producer) Publish(ctx context.Context, msg *Message) error {
	if p.closed.Load() {
		return ErrProducerClosed
	}
	if msg.Topic == "" {
		return errors.NewValidationError("topic", "topic required")
	}
	if len(msg.Value) == 0 {
		return errors.NewValidationError("value", "value required")
	}
	if len(msg.Value) > p.config.MaxMessageBytes {
		return errors.NewValidationError("value", "message too large")
	}

	if err := p.writer.WriteMessages(ctx, toKafkaMessage(msg)); err != nil {
		p.metrics.MessagesFailed.Add(1)
		return errors.Wrap(err, errors.ErrCodeMessagingError, "publish failed")
	}
	p.metrics.MessagesSent.Add(1)
	p.metrics.BytesSent.Add(int64(len(msg.Value)))
	return nil
}

func toKafkaMessage(msg *Message) kafka.Message {
	headers := make([]kafka.Header, 0, len(msg.Headers))
	for k, v := range msg.Headers {
		headers = append(headers, kafka.Header{Key: k, Value: []byte(v)})
	}
	return kafka.Message{Topic: msg.Topic, Key: msg.Key, Value: msg.Value, Headers: headers}
}

// Metrics returns the producer counters.
func (p *Producer) Metrics() *ProducerMetrics {
	return p.metrics
}

// Close flushes pending writes and closes the writer. Later calls are no-ops.
func (p *Producer) Close() error {
	if !p.closed.CompareAndSwap(false, true) {
		return nil
	}
	stats := p.writer.Stats()
	p.logger.Info("Kafka producer closing",
		logging.Int64("messages", stats.Messages),
		logging.Int64("errors", stats.Errors),
		logging.Int64("sent", p.metrics.MessagesSent.Load()))
	return p.writer.Close()
}

//Personal.AI order the ending
