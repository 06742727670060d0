package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	productdomain "github.com/Apurer/go-gin-order-service/internal/domains/products/domain"
	productports "github.com/Apurer/go-gin-order-service/internal/domains/products/ports"
	platformkafka "github.com/Apurer/go-gin-order-service/internal/platform/kafka"
)

const (
	// RoutingKeyHeader carries the stock notification direction.
	RoutingKeyHeader = "routing-key"

	RoutingKeyIncremented = "incremented"
	RoutingKeyDecremented = "decremented"
)

// DefaultRetryDelay is the pause after a failed read before the next attempt.
const DefaultRetryDelay = time.Second

const tracerName = "github.com/Apurer/go-gin-order-service/internal/domains/products/adapters/messaging/kafka"

var (
	ErrUnknownRoutingKey = errors.New("unknown stock routing key")
	ErrInvalidPayload    = errors.New("stock notification payload must be a JSON string product name")
)

// StockConsumer turns stock notifications into product stock commands.
// Every message is acknowledged whatever the outcome; failures are logged only.
type StockConsumer struct {
	consumer platformkafka.Consumer
	products productports.UseCase
	logger   *slog.Logger
	tracer   trace.Tracer
	retry    time.Duration
}

type Option func(*StockConsumer)

func WithLogger(logger *slog.Logger) Option {
	return func(c *StockConsumer) {
		c.logger = logger
	}
}

// WithRetryDelay sets the pause after a failed read. Non-positive values keep
// DefaultRetryDelay.
func WithRetryDelay(d time.Duration) Option {
	return func(c *StockConsumer) {
		if d > 0 {
			c.retry = d
		}
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(c *StockConsumer) {
		c.tracer = tr
	}
}

func NewStockConsumer(consumer platformkafka.Consumer, products productports.UseCase, opts ...Option) *StockConsumer {
	c := &StockConsumer{
		consumer: consumer,
		products: products,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		tracer:   nooptrace.NewTracerProvider().Tracer(tracerName),
		retry:    DefaultRetryDelay,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Start reads until ctx ends. Read errors other than cancellation are logged
// and retried after the retry delay.
func (c *StockConsumer) Start(ctx context.Context) error {
	c.logger.Info("stock consumer started")
	for {
		msg, err := c.consumer.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				c.logger.Info("stock consumer stopping", slog.String("reason", err.Error()))
				return nil
			}
			if errors.Is(err, io.EOF) {
				c.logger.Info("stock consumer closed")
				return nil
			}
			c.logger.Error("failed to read stock notification", slog.String("error", err.Error()), slog.Duration("retry_in", c.retry))
			timer := time.NewTimer(c.retry)
			select {
			case <-ctx.Done():
				timer.Stop()
				c.logger.Info("stock consumer stopping", slog.String("reason", ctx.Err().Error()))
				return nil
			case <-timer.C:
			}
			continue
		}
		_ = c.Handle(ctx, *msg)
	}
}

// Handle dispatches one notification. The returned error is informational;
// the message is already acknowledged.
func (c *StockConsumer) Handle(ctx context.Context, msg kafkago.Message) error {
	ctx = extractTraceContext(ctx, msg.Headers)
	routingKey := routingKeyOf(msg)
	ctx, span := c.tracer.Start(ctx, "StockConsumer.Handle", trace.WithSpanKind(trace.SpanKindConsumer),
		trace.WithAttributes(
			attribute.String("messaging.destination.name", msg.Topic),
			attribute.String("messaging.routing_key", routingKey),
			attribute.Int64("messaging.kafka.offset", msg.Offset),
		))
	defer span.End()

	attrs := []slog.Attr{
		slog.String("routing_key", routingKey),
		slog.Int("partition", msg.Partition),
		slog.Int64("offset", msg.Offset),
	}

	name, err := decodeProductName(msg.Value)
	if err != nil {
		return c.reject(ctx, span, err, append(attrs, slog.String("raw_value", string(msg.Value)))...)
	}
	attrs = append(attrs, slog.String("product.name", name))
	product := productdomain.Product{Name: name}

	switch routingKey {
	case RoutingKeyIncremented:
		c.products.IncrementProductInStock(ctx, product)
	case RoutingKeyDecremented:
		c.products.DecrementProductInStock(ctx, product)
	default:
		return c.reject(ctx, span, fmt.Errorf("%w: %q", ErrUnknownRoutingKey, routingKey), attrs...)
	}
	c.logger.LogAttrs(ctx, slog.LevelInfo, "stock notification dispatched", attrs...)
	return nil
}

func (c *StockConsumer) reject(ctx context.Context, span trace.Span, err error, attrs ...slog.Attr) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	c.logger.LogAttrs(ctx, slog.LevelWarn, "stock notification dropped", append(attrs, slog.String("error", err.Error()))...)
	return err
}

func routingKeyOf(msg kafkago.Message) string {
	if value, ok := platformkafka.HeaderValue(msg.Headers, RoutingKeyHeader); ok {
		return strings.ToLower(strings.TrimSpace(value))
	}
	return strings.ToLower(strings.TrimSpace(string(msg.Key)))
}

func decodeProductName(value []byte) (string, error) {
	var name string
	if err := json.Unmarshal(value, &name); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if strings.TrimSpace(name) == "" {
		return "", ErrInvalidPayload
	}
	return name, nil
}

func extractTraceContext(ctx context.Context, headers []kafkago.Header) context.Context {
	carrier := propagation.MapCarrier{}
	for _, header := range headers {
		carrier[strings.ToLower(header.Key)] = string(header.Value)
	}
	return otel.GetTextMapPropagator().Extract(ctx, carrier)
}
