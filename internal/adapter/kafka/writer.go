package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/couchcryptid/tmax-hotdays-service/internal/config"
	"github.com/couchcryptid/tmax-hotdays-service/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// messageWriter is the subset of *kafkago.Writer used here.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Writer produces hot-day summaries to a Kafka topic.
// It implements dashboard.Publisher.
type Writer struct {
	writer messageWriter
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured summary topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:                   kafkago.TCP(cfg.KafkaBrokers...),
		Topic:                  cfg.KafkaSummaryTopic,
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireAll,
		AllowAutoTopicCreation: true,
	}
	return &Writer{writer: w, logger: logger}
}

// PublishSummaries serializes and publishes all summaries in a single
// WriteMessages call. Messages are keyed by location so every summary for a
// station lands on the same partition.
func (w *Writer) PublishSummaries(ctx context.Context, summaries []domain.HotDaySummary) error {
	if len(summaries) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(summaries))
	for i := range summaries {
		msg, err := serializeToMessage(summaries[i])
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("write summaries: %w", err)
	}
	w.logger.Debug("published hot-day summaries", "count", len(msgs))
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a HotDaySummary into a Kafka message.
func serializeToMessage(s domain.HotDaySummary) (kafkago.Message, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize hot-day summary: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(s.Location.String()),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "dataset_id", Value: []byte(s.DatasetID.String())},
			{Key: "year", Value: []byte(strconv.Itoa(s.Year))},
		},
	}, nil
}
