package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/molforge/internal/domain/druglike"
	"github.com/turtacn/molforge/internal/domain/molecule"
	"github.com/turtacn/molforge/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/molforge/pkg/errors"
)

type mockWriter struct {
	mock.Mock
}

func (m *mockWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	return m.Called(ctx, msgs).Error(0)
}

func (m *mockWriter) Close() error {
	return m.Called().Error(0)
}

func (m *mockWriter) Stats() kafka.WriterStats {
	return kafka.WriterStats{}
}

func TestValidateProducerConfig(t *testing.T) {
	assert.Error(t, ValidateProducerConfig(ProducerConfig{}))
	assert.Error(t, ValidateProducerConfig(ProducerConfig{Brokers: []string{"b:9092"}, Acks: "two"}))
	assert.NoError(t, ValidateProducerConfig(ProducerConfig{Brokers: []string{"b:9092"}, Acks: "all"}))
}

func TestNewProducer(t *testing.T) {
	p, err := NewProducer(ProducerConfig{Brokers: []string{"localhost:9092"}}, logging.NewNopLogger())
	require.NoError(t, err)
	assert.Equal(t, 3, p.config.MaxRetries)

	_, err = NewProducer(ProducerConfig{}, logging.NewNopLogger())
	assert.True(t, errors.IsValidation(err))
}

func TestPublish_Success(t *testing.T) {
	w := &mockWriter{}
	p := newProducerWithWriter(w, ProducerConfig{}, logging.NewNopLogger())

	w.On("WriteMessages", mock.Anything, mock.MatchedBy(func(msgs []kafka.Message) bool {
		return len(msgs) == 1 && msgs[0].Topic == "t" && string(msgs[0].Key) == "k" && len(msgs[0].Headers) == 1
	})).Return(nil)

	err := p.Publish(context.Background(), &Message{Topic: "t", Key: []byte("k"), Value: []byte("v"), Headers: map[string]string{"a": "b"}})
	require.NoError(t, err)
	assert.Equal(t, int64(1), p.Metrics().MessagesSent.Load())
	assert.Equal(t, int64(1), p.Metrics().BytesSent.Load())
}

func TestPublish_Validation(t *testing.T) {
	p := newProducerWithWriter(&mockWriter{}, ProducerConfig{MaxMessageBytes: 4}, logging.NewNopLogger())
	ctx := context.Background()

	assert.True(t, errors.IsValidation(p.Publish(ctx, &Message{Value: []byte("v")})))
	assert.True(t, errors.IsValidation(p.Publish(ctx, &Message{Topic: "t"})))
	assert.True(t, errors.IsValidation(p.Publish(ctx, &Message{Topic: "t", Value: []byte("12345")})))
}

func TestPublish_WriterError(t *testing.T) {
	w := &mockWriter{}
	p := newProducerWithWriter(w, ProducerConfig{}, logging.NewNopLogger())
	w.On("WriteMessages", mock.Anything, mock.Anything).Return(fmt.Errorf("leader not available"))

	err := p.Publish(context.Background(), &Message{Topic: "t", Value: []byte("v")})
	assert.True(t, errors.IsCode(err, errors.ErrCodeMessagingError))
	assert.Equal(t, int64(1), p.Metrics().MessagesFailed.Load())
}

func TestClose_Idempotent(t *testing.T) {
	w := &mockWriter{}
	p := newProducerWithWriter(w, ProducerConfig{}, logging.NewNopLogger())
	w.On("Close").Return(nil).Once()

	require.NoError(t, p.Close())
	require.NoError(t, p.Close())
	assert.ErrorIs(t, p.Publish(context.Background(), &Message{Topic: "t", Value: []byte("v")}), ErrProducerClosed)
	w.AssertExpectations(t)
}

func TestEventPublisher_PublishConversion(t *testing.T) {
	w := &mockWriter{}
	ep := NewEventPublisher(newProducerWithWriter(w, ProducerConfig{}, logging.NewNopLogger()), "")

	d := molecule.Descriptors{MolecularWeight: 46.069, LogP: -0.0014, HBondDonors: 1, HBondAcceptors: 1}
	e := NewConversionEvent("abc", "CCO", d, druglike.Evaluate(d, druglike.DefaultThresholds()), 9, false)
	assert.NotEmpty(t, e.EventID)
	assert.Equal(t, "No violations", e.Verdicts["lipinski"])
	assert.Equal(t, "2 violation(s)", e.Verdicts["ghose"])
	assert.Equal(t, "Passed", e.Verdicts["veber"])

	var captured kafka.Message
	w.On("WriteMessages", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		captured = args.Get(1).([]kafka.Message)[0]
	}).Return(nil)

	require.NoError(t, ep.PublishConversion(context.Background(), e))
	assert.Equal(t, TopicMoleculeConverted, captured.Topic)
	assert.Equal(t, "abc", string(captured.Key))

	var decoded ConversionEvent
	require.NoError(t, json.Unmarshal(captured.Value, &decoded))
	assert.Equal(t, "CCO", decoded.SMILES)
	assert.Equal(t, 9, decoded.AtomCount)
}

//Personal.AI order the ending
