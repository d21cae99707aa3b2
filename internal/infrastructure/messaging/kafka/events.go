package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/turtacn/molforge/internal/domain/druglike"
	"github.com/turtacn/molforge/internal/domain/molecule"
	"github.com/turtacn/molforge/pkg/errors"
)

// ConversionEvent announces a completed conversion. The PDB block itself is
// not included; consumers fetch it from the archive or API by StructureID.
type ConversionEvent struct {
	EventID     string               `json:"event_id"`
	OccurredAt  time.Time            `json:"occurred_at"`
	StructureID string               `json:"structure_id"`
	SMILES      string               `json:"smiles"`
	Descriptors molecule.Descriptors `json:"descriptors"`
	Verdicts    map[string]string    `json:"verdicts"`
	AtomCount   int                  `json:"atom_count,omitempty"`
	Cached      bool                 `json:"cached"`
}

// NewConversionEvent builds an event with a fresh id.
func NewConversionEvent(structureID, smiles string, d molecule.Descriptors, a druglike.Assessment, atoms int, cached bool) ConversionEvent {
	verdicts := make(map[string]string, 3)
	for _, r := range a.Results() {
		verdicts[string(r.Rule)] = r.Verdict()
	}
	return ConversionEvent{
		EventID:     uuid.NewString(),
		OccurredAt:  time.Now().UTC(),
		StructureID: structureID,
		SMILES:      smiles,
		Descriptors: d,
		Verdicts:    verdicts,
		AtomCount:   atoms,
		Cached:      cached,
	}
}

// EventPublisher publishes ConversionEvents keyed by structure id.
type EventPublisher struct {
	producer *Producer
	topic    string
}

// NewEventPublisher returns a publisher writing to topic, or
// TopicMoleculeConverted when topic is empty.
func NewEventPublisher(p *Producer, topic string) *EventPublisher {
	if topic == "" {
		topic = TopicMoleculeConverted
	}
	return &EventPublisher{producer: p, topic: topic}
}

// PublishConversion serialises e and publishes it.
func (ep *EventPublisher) PublishConversion(ctx context.Context, e ConversionEvent) error {
	body, err := json.Marshal(e)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeSerialization, "failed to encode conversion event")
	}
	return ep.producer.Publish(ctx, &Message{
		Topic: ep.topic,
		Key:   []byte(e.StructureID),
		Value: body,
		Headers: map[string]string{
			HeaderEventID:   e.EventID,
			HeaderEventType: "molecule.converted",
			HeaderSource:    "molforge",
		},
	})
}

// Close closes the underlying producer.
func (ep *EventPublisher) Close() error {
	return ep.producer.Close()
}

//Personal.AI order the ending
