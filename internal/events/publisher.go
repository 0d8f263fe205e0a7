package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/nguyentantai21042004/yt-summarize/internal/logger"
	"github.com/nguyentantai21042004/yt-summarize/internal/metrics"
)

const eventTypeSummaryCompleted = "summary.completed"

// Config holds Kafka publisher configuration.
type Config struct {
	Enabled   bool
	Brokers   []string
	Topic     string
	Principal string
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type implPublisher struct {
	writer    messageWriter
	topic     string
	principal string
	logger    logger.Logger
	metrics   *metrics.Metrics
}

// New creates a Publisher. Without brokers, or when disabled, events are
// logged and dropped. m may be nil.
func New(cfg Config, log logger.Logger, m *metrics.Metrics) Publisher {
	p := &implPublisher{
		topic:     cfg.Topic,
		principal: cfg.Principal,
		logger:    log,
		metrics:   m,
	}
	if !cfg.Enabled || len(cfg.Brokers) == 0 {
		return p
	}

	dialer := &kafka.Dialer{
		Timeout:   10 * time.Second,
		DualStack: true,
	}
	p.writer = &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
		WriteTimeout: 10 * time.Second,
		RequiredAcks: kafka.RequireOne,
		Transport:    &kafka.Transport{Dial: dialer.DialFunc},
	}
	return p
}

func (p *implPublisher) PublishSummaryCompleted(ctx context.Context, event SummaryCompleted) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	p.logger.Debug(ctx, "Publishing %s event %s to %s", eventTypeSummaryCompleted, event.ID, p.topic)
	if p.writer == nil {
		return nil
	}

	msg := kafka.Message{
		Key:   []byte(event.RunID),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "eventType", Value: []byte(eventTypeSummaryCompleted)},
			{Key: "principal", Value: []byte(p.principal)},
		},
	}
	err = p.writer.WriteMessages(ctx, msg)
	p.metrics.RecordEventPublish(p.topic, err)
	if err != nil {
		p.logger.Error(ctx, "Failed to write event to Kafka topic %s: %v", p.topic, err)
		return err
	}
	return nil
}

func (p *implPublisher) Close() error {
	if p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
