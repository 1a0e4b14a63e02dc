// Package kafka provides the broker-facing clients used by the dispatch
// gateway: a topic publisher and a consumer-group inspector, both built
// on segmentio/kafka-go.
package kafka

import (
	"context"
	"fmt"
	"log/slog"

	kafkago "github.com/segmentio/kafka-go"
)

// Publisher sends one message per call to a caller-chosen topic.
type Publisher struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewPublisher creates a publisher for the given bootstrap brokers. The
// underlying writer is process-wide and safe for concurrent use.
func NewPublisher(brokers []string, logger *slog.Logger) *Publisher {
	writer := &kafkago.Writer{
		Addr:         kafkago.TCP(brokers...),
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireOne,
	}
	return &Publisher{writer: writer, logger: logger}
}

// Publish writes payload to topic. It blocks until the broker
// acknowledges the message or ctx expires.
func (p *Publisher) Publish(ctx context.Context, topic string, payload []byte) error {
	err := p.writer.WriteMessages(ctx, kafkago.Message{
		Topic: topic,
		Value: payload,
	})
	if err != nil {
		return fmt.Errorf("publish to %q: %w", topic, err)
	}
	p.logger.Debug("message published", "topic", topic, "bytes", len(payload))
	return nil
}

// Close flushes and closes the underlying writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}
