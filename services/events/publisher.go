package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	kafka "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Publisher emits domain events. Publishing is best-effort: callers log
// failures and never fail the operation that produced the event.
type Publisher interface {
	Publish(ctx context.Context, eventType string, data interface{}) error
	Close() error
}

// KafkaPublisher writes events to a Kafka topic.
type KafkaPublisher struct {
	writer *kafka.Writer
	logger *zap.Logger
}

// NewKafkaPublisher creates a publisher for the given brokers and topic.
func NewKafkaPublisher(brokers []string, topic string, logger *zap.Logger) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
	}
	return &KafkaPublisher{writer: writer, logger: logger}
}

// Publish wraps data in an envelope and writes it keyed by event type.
func (p *KafkaPublisher) Publish(ctx context.Context, eventType string, data interface{}) error {
	env := Envelope{
		ID:     uuid.New().String(),
		Source: "wanderstay-booking-engine",
		Type:   eventType,
		Time:   time.Now().UTC(),
		Data:   data,
	}
	payload, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshalling %s event: %w", eventType, err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(eventType),
		Value: payload,
	}); err != nil {
		return fmt.Errorf("writing %s event: %w", eventType, err)
	}

	p.logger.Debug("event published", zap.String("type", eventType), zap.String("id", env.ID))
	return nil
}

// Close flushes and closes the underlying writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NopPublisher discards events; used in tests and when no brokers are
// configured.
type NopPublisher struct{}

func (NopPublisher) Publish(ctx context.Context, eventType string, data interface{}) error {
	return nil
}

func (NopPublisher) Close() error { return nil }
