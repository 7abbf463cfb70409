// Package events publishes sample mutation events for downstream systems.
// Publishing is best-effort: a broker failure is logged and never surfaced
// to the mutation's caller.
package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"samplecatalog/src/infra/kafka"
)

// Event types emitted by the sample service.
const (
	SampleCreated      = "sample.created"
	SampleUpdated      = "sample.updated"
	SampleDeleted      = "sample.deleted"
	SampleValuesAdded  = "sample.values_added"
	SampleValueUpdated = "sample.value_updated"
	SampleValueRemoved = "sample.value_removed"
)

// SampleEvent describes one committed mutation.
type SampleEvent struct {
	Type       string    `json:"type"`
	SampleID   string    `json:"sample_id"`
	EmbeddedID *string   `json:"embedded_id,omitempty"`
	ActorID    *string   `json:"actor_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Publisher is what the sample service sees; mutations call it after each
// successful store write.
type Publisher interface {
	PublishSampleEvent(ctx context.Context, event SampleEvent)
}

// KafkaPublisher emits events to a Kafka topic, partitioned by sample id so
// per-document ordering is preserved.
type KafkaPublisher struct {
	logger      *slog.Logger
	kafkaClient *kafka.KafkaClient
	topic       string
}

func NewKafkaPublisher(logger *slog.Logger, kafkaClient *kafka.KafkaClient, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		logger:      logger,
		kafkaClient: kafkaClient,
		topic:       topic,
	}
}

func (p *KafkaPublisher) PublishSampleEvent(_ context.Context, event SampleEvent) {
	eventBytes, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("failed to marshal sample event",
			"error", err,
			"event_type", event.Type,
			"sample_id", event.SampleID)
		return
	}

	msg := kafka.Message{
		Key:   event.SampleID,
		Value: eventBytes,
		Headers: map[string]string{
			"event_type": event.Type,
		},
	}

	if err := p.kafkaClient.Producer([]kafka.Message{msg}, p.topic); err != nil {
		p.logger.Error("failed to publish sample event",
			"error", err,
			"topic", p.topic,
			"event_type", event.Type,
			"sample_id", event.SampleID)
		return
	}

	p.logger.Debug("published sample event",
		"event_type", event.Type,
		"sample_id", event.SampleID)
}

// NoopPublisher is used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishSampleEvent(context.Context, SampleEvent) {}
