package audit

import (
	"context"
	"encoding/json"
	"fmt"

	"estatehub/internal/platform/kafka/producer"
)

// MessageProducer is satisfied by *producer.Producer.
type MessageProducer interface {
	ProduceAsync(ctx context.Context, msg *producer.Message) error
}

// KafkaSink publishes events as JSON keyed by actor id, so one actor's events
// stay ordered within a partition.
type KafkaSink struct {
	producer MessageProducer
	topic    string
}

func NewKafkaSink(p MessageProducer, topic string) *KafkaSink {
	return &KafkaSink{producer: p, topic: topic}
}

func (s *KafkaSink) Forward(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal audit event: %w", err)
	}
	return s.producer.ProduceAsync(ctx, &producer.Message{
		Topic: s.topic,
		Key:   []byte(event.ActorID),
		Value: payload,
		Headers: map[string]string{
			"event_type":  string(event.Action),
			"target_type": event.TargetType,
		},
	})
}
