package events

//go:generate mockgen -source=publisher.go -destination=mocks/mock_publisher.go -package=mocks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Publisher emits pet lifecycle events.
type Publisher interface {
	Publish(ctx context.Context, evt PetEvent) error
	Close() error
}

// KafkaPublisher writes events to a Kafka topic keyed by pet id.
type KafkaPublisher struct {
	writer *kafkago.Writer
	logger *zap.Logger
}

// NewKafkaPublisher creates a publisher for the given brokers and topic.
func NewKafkaPublisher(brokers []string, topic string, logger *zap.Logger) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafkago.Writer{
			Addr:                   kafkago.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafkago.Hash{},
			RequiredAcks:           kafkago.RequireAll,
			AllowAutoTopicCreation: true,
			BatchTimeout:           10 * time.Millisecond,
		},
		logger: logger,
	}
}

// Publish writes one event.
func (p *KafkaPublisher) Publish(ctx context.Context, evt PetEvent) error {
	value, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshaling event: %w", err)
	}

	data, err := evt.ParseData()
	if err != nil {
		p.logger.Error("refusing to publish malformed pet event",
			zap.String("type", evt.Type),
			zap.Error(err),
		)
		return err
	}

	msg := kafkago.Message{
		Key:   []byte(data.PetID.String()),
		Value: value,
		Headers: []kafkago.Header{
			{Key: "ce_type", Value: []byte(evt.Type)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("failed to publish pet event",
			zap.String("type", evt.Type),
			zap.Error(err),
		)
		return fmt.Errorf("publishing %s: %w", evt.Type, err)
	}

	p.logger.Debug("pet event published",
		zap.String("type", evt.Type),
		zap.String("pet_id", data.PetID.String()),
	)
	return nil
}

// Close flushes and closes the writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NoopPublisher drops events. Used when no brokers are configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, PetEvent) error { return nil }
func (NoopPublisher) Close() error                            { return nil }
