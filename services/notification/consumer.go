package notification

import (
	"context"
	"encoding/json"
	"errors"

	"wanderstay/services/events"

	kafka "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Consumer reads booking events off the Kafka topic and dispatches them
// to a Notifier. Malformed messages and delivery failures are logged and
// skipped; consumption never blocks the booking engine.
type Consumer struct {
	reader   *kafka.Reader
	notifier Notifier
	logger   *zap.Logger
}

// NewConsumer creates a consumer in the given consumer group.
func NewConsumer(brokers []string, groupID, topic string, notifier Notifier, logger *zap.Logger) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers: brokers,
		GroupID: groupID,
		Topic:   topic,
	})
	return &Consumer{reader: reader, notifier: notifier, logger: logger}
}

// Start consumes until the context is cancelled.
func (c *Consumer) Start(ctx context.Context) error {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}
		c.handle(ctx, msg)
	}
}

// Close closes the underlying Kafka reader.
func (c *Consumer) Close() error {
	return c.reader.Close()
}

func (c *Consumer) handle(ctx context.Context, msg kafka.Message) {
	var env events.Envelope
	if err := json.Unmarshal(msg.Value, &env); err != nil {
		c.logger.Error("failed to parse booking event", zap.Error(err), zap.ByteString("raw", msg.Value))
		return
	}

	// Envelope data round-trips through JSON to reach its concrete type.
	data, err := json.Marshal(env.Data)
	if err != nil {
		c.logger.Error("failed to re-encode event data", zap.String("type", env.Type), zap.Error(err))
		return
	}

	switch env.Type {
	case events.TypeBookingConfirmed:
		var evt events.BookingConfirmed
		if err := json.Unmarshal(data, &evt); err != nil {
			c.logger.Error("failed to parse booking confirmed event", zap.Error(err))
			return
		}
		if err := c.notifier.NotifyBookingConfirmed(ctx, evt); err != nil {
			c.logger.Warn("booking confirmed notification failed", zap.String("ref", evt.BookingRef), zap.Error(err))
		}
	case events.TypeBookingCancelled:
		var evt events.BookingCancelled
		if err := json.Unmarshal(data, &evt); err != nil {
			c.logger.Error("failed to parse booking cancelled event", zap.Error(err))
			return
		}
		if err := c.notifier.NotifyBookingCancelled(ctx, evt); err != nil {
			c.logger.Warn("booking cancelled notification failed", zap.String("ref", evt.BookingRef), zap.Error(err))
		}
	default:
		c.logger.Debug("ignoring unhandled event type", zap.String("type", env.Type))
	}
}
