package kafka

import (
	"context"
	"log/slog"

	"github.com/couchcryptid/ndfd-forecast-service/internal/config"
	"github.com/couchcryptid/ndfd-forecast-service/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// messageWriter is the subset of *kafkago.Writer the publisher needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Publisher writes served forecasts to a Kafka topic.
// It implements forecast.Publisher.
type Publisher struct {
	writer messageWriter
	logger *slog.Logger
}

// NewPublisher creates a Kafka producer for the configured forecast topic.
func NewPublisher(cfg *config.Config, logger *slog.Logger) *Publisher {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaTopic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Publisher{writer: w, logger: logger}
}

// Publish writes one forecast. Messages are keyed by postal code so a code's
// forecasts stay on one partition.
func (p *Publisher) Publish(ctx context.Context, rec domain.ForecastRecord) error {
	if err := p.writer.WriteMessages(ctx, toMessage(rec)); err != nil {
		return err
	}
	p.logger.Debug("forecast published", "postal_code", rec.PostalCode, "bytes", len(rec.Payload))
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

func toMessage(rec domain.ForecastRecord) kafkago.Message {
	return kafkago.Message{
		Key:   []byte(rec.PostalCode),
		Value: rec.Payload,
		Headers: []kafkago.Header{
			{Key: "postal_code", Value: []byte(rec.PostalCode)},
			{Key: "format", Value: []byte(rec.Format.String())},
			{Key: "begin", Value: []byte(domain.FormatISO8601(rec.Window.Begin))},
		},
	}
}
