package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	kafkago "github.com/segmentio/kafka-go"

	platformkafka "github.com/Apurer/go-gin-order-service/internal/platform/kafka"
)

// StockPublisher emits stock notifications in the format StockConsumer reads.
type StockPublisher struct {
	producer platformkafka.Producer
}

func NewStockPublisher(producer platformkafka.Producer) *StockPublisher {
	return &StockPublisher{producer: producer}
}

// Publish sends one notification. routingKey must be incremented or decremented.
func (p *StockPublisher) Publish(ctx context.Context, routingKey, productName string) error {
	routingKey = strings.ToLower(strings.TrimSpace(routingKey))
	if routingKey != RoutingKeyIncremented && routingKey != RoutingKeyDecremented {
		return fmt.Errorf("%w: %q", ErrUnknownRoutingKey, routingKey)
	}
	if strings.TrimSpace(productName) == "" {
		return ErrInvalidPayload
	}
	value, err := json.Marshal(productName)
	if err != nil {
		return err
	}
	return p.producer.WriteMessage(ctx, kafkago.Message{
		Key:     []byte(routingKey),
		Value:   value,
		Headers: []kafkago.Header{{Key: RoutingKeyHeader, Value: []byte(routingKey)}},
	})
}
