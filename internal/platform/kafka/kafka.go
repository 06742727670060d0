package kafka

import (
	"context"
	"errors"
	"strings"
	"time"

	otelkafka "github.com/Trendyol/otel-kafka-konsumer"
	kafkago "github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// Consumer reads committed-on-read messages from a consumer group.
type Consumer interface {
	ReadMessage(ctx context.Context) (*kafkago.Message, error)
	Close() error
}

// Producer publishes messages to a single topic.
type Producer interface {
	WriteMessage(ctx context.Context, msg kafkago.Message) error
	Close() error
}

// ReaderConfig describes a consumer group subscription.
type ReaderConfig struct {
	Brokers []string
	Topic   string
	GroupID string
}

// WriterConfig describes a topic publisher.
type WriterConfig struct {
	Brokers      []string
	Topic        string
	ClientID     string
	BatchTimeout time.Duration
}

// NewConsumer builds a traced group reader. ReadMessage commits the offset as
// soon as the message is returned, so every delivery counts as acknowledged.
// Spans use the global tracer provider and propagator.
func NewConsumer(cfg ReaderConfig) (Consumer, error) {
	if err := validate(cfg.Brokers, cfg.Topic); err != nil {
		return nil, err
	}
	if strings.TrimSpace(cfg.GroupID) == "" {
		return nil, errors.New("kafka consumer group is empty")
	}
	baseReader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers: cfg.Brokers,
		Topic:   cfg.Topic,
		GroupID: cfg.GroupID,
	})
	reader, err := otelkafka.NewReader(baseReader)
	if err != nil {
		_ = baseReader.Close()
		return nil, err
	}
	return reader, nil
}

// NewProducer builds a traced topic writer that injects trace context into headers.
func NewProducer(cfg WriterConfig, tp trace.TracerProvider) (Producer, error) {
	if err := validate(cfg.Brokers, cfg.Topic); err != nil {
		return nil, err
	}
	batchTimeout := cfg.BatchTimeout
	if batchTimeout <= 0 {
		batchTimeout = 10 * time.Millisecond
	}
	baseWriter := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafkago.Hash{},
		BatchTimeout: batchTimeout,
	}
	opts := []otelkafka.Option{
		otelkafka.WithPropagator(propagation.TraceContext{}),
		otelkafka.WithAttributes([]attribute.KeyValue{
			attribute.String("messaging.destination.name", cfg.Topic),
			attribute.String("messaging.kafka.client_id", cfg.ClientID),
		}),
	}
	if tp != nil {
		opts = append(opts, otelkafka.WithTracerProvider(tp))
	}
	writer, err := otelkafka.NewWriter(baseWriter, opts...)
	if err != nil {
		_ = baseWriter.Close()
		return nil, err
	}
	return writer, nil
}

// ParseBrokers splits a comma separated broker list, dropping blanks.
func ParseBrokers(raw string) []string {
	var brokers []string
	for _, part := range strings.Split(raw, ",") {
		if broker := strings.TrimSpace(part); broker != "" {
			brokers = append(brokers, broker)
		}
	}
	return brokers
}

// HeaderValue returns the first header with the key, matched case-insensitively.
func HeaderValue(headers []kafkago.Header, key string) (string, bool) {
	for _, header := range headers {
		if strings.EqualFold(header.Key, key) {
			return string(header.Value), true
		}
	}
	return "", false
}

func validate(brokers []string, topic string) error {
	if len(brokers) == 0 {
		return errors.New("kafka brokers are empty")
	}
	if strings.TrimSpace(topic) == "" {
		return errors.New("kafka topic is empty")
	}
	return nil
}
