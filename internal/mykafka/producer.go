package mykafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

// Producer publishes event envelopes. The zero value is a disabled producer
// whose PublishEvent is a no-op, which keeps Kafka optional.
type Producer struct {
	w      *kafka.Writer
	source string
}

func NewProducer(brokers []string, source string) *Producer {
	if len(brokers) == 0 {
		return &Producer{source: source}
	}
	return &Producer{
		w: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireAll,
			BatchTimeout:           10 * time.Millisecond,
			AllowAutoTopicCreation: true,
		},
		source: source,
	}
}

func (p *Producer) Enabled() bool {
	return p != nil && p.w != nil
}

func (p *Producer) PublishEvent(ctx context.Context, topic, key, eventType string, payload any) error {
	if !p.Enabled() {
		return nil
	}

	env, err := NewEnvelope(p.source, eventType, payload, time.Now())
	if err != nil {
		return fmt.Errorf("kafka: marshal payload: %w", err)
	}
	value, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("kafka: marshal envelope: %w", err)
	}

	msg := kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: value,
		Time:  env.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(eventType)},
		},
	}
	if err := p.w.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka: write %s: %w", topic, err)
	}
	return nil
}

func (p *Producer) Close() error {
	if !p.Enabled() {
		return nil
	}
	return p.w.Close()
}
