package mykafka

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

type Producer struct {
	writer *kafka.Writer
	topics map[string]struct{}
}

func NewProducer(brokers []string, topics []string) (*Producer, error) {
	if len(brokers) == 0 || brokers[0] == "" {
		return nil, fmt.Errorf("kafka: no brokers configured")
	}

	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}

	known := make(map[string]struct{}, len(topics))
	for _, t := range topics {
		known[t] = struct{}{}
	}

	return &Producer{writer: w, topics: known}, nil
}

// PublishEvent marshals the event and writes it keyed by key. Every message
// gets an event_id so consumers can deduplicate. A zero-value Producer is a
// no-op, which unit tests rely on.
func (p *Producer) PublishEvent(ctx context.Context, topic, key string, event map[string]any) error {
	if p == nil || p.writer == nil {
		return nil
	}
	if _, ok := p.topics[topic]; !ok {
		return fmt.Errorf("kafka: unknown topic %q", topic)
	}

	event["event_id"] = uuid.NewString()

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("kafka: json.Marshal failed: %w", err)
	}

	msg := kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: data,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka: write failed: %w", err)
	}

	return nil
}

func (p *Producer) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
