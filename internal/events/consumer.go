package events

import (
	"context"
	"errors"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// HandlerFunc processes one decoded pet event.
type HandlerFunc func(ctx context.Context, evt PetEvent) error

// Consumer reads pet events from a topic within a consumer group.
type Consumer struct {
	reader *kafkago.Reader
	logger *zap.Logger
}

// NewConsumer creates a consumer starting at the earliest offset.
func NewConsumer(brokers []string, groupID, topic string, logger *zap.Logger) *Consumer {
	return &Consumer{
		reader: kafkago.NewReader(kafkago.ReaderConfig{
			Brokers:     brokers,
			GroupID:     groupID,
			Topic:       topic,
			MinBytes:    1,
			MaxBytes:    10e6,
			StartOffset: kafkago.FirstOffset,
		}),
		logger: logger,
	}
}

// Consume blocks until ctx is cancelled or the handler returns an error.
func (c *Consumer) Consume(ctx context.Context, handle HandlerFunc) error {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return ctx.Err()
			}
			return err
		}

		evt, err := ParsePetEvent(msg.Value)
		if err != nil {
			c.logger.Error("failed to parse pet event",
				zap.Error(err),
				zap.String("raw", string(msg.Value)),
			)
			continue // malformed messages are skipped
		}

		if err := handle(ctx, evt); err != nil {
			return err
		}
	}
}

// Close closes the underlying reader.
func (c *Consumer) Close() error {
	return c.reader.Close()
}
