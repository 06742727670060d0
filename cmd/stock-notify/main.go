// Command stock-notify publishes a stock notification, e.g.
//
//	stock-notify -event incremented -product Apple
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	stockmessaging "github.com/Apurer/go-gin-order-service/internal/domains/products/adapters/messaging/kafka"
	platformkafka "github.com/Apurer/go-gin-order-service/internal/platform/kafka"
	platformobservability "github.com/Apurer/go-gin-order-service/internal/platform/observability"
)

func main() {
	event := flag.String("event", stockmessaging.RoutingKeyIncremented, "routing key: incremented or decremented")
	product := flag.String("product", "", "product name")
	topic := flag.String("topic", envOrDefault("KAFKA_STOCK_TOPIC", "stock"), "stock topic")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	instruments, shutdown, err := platformobservability.Init(ctx, "order-management-stock-notify")
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	defer func() { _ = shutdown(context.Background()) }()

	producer, err := platformkafka.NewProducer(platformkafka.WriterConfig{
		Brokers:  platformkafka.ParseBrokers(os.Getenv("KAFKA_BROKERS")),
		Topic:    *topic,
		ClientID: "stock-notify",
	}, instruments.TracerProvider)
	if err != nil {
		log.Fatalf("failed to create producer: %v", err)
	}
	defer producer.Close()

	if err := stockmessaging.NewStockPublisher(producer).Publish(ctx, *event, *product); err != nil {
		log.Fatalf("failed to publish stock notification: %v", err)
	}
	log.Printf("published %s for %q to %s", *event, *product, *topic)
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
