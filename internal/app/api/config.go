package api

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.temporal.io/sdk/client"

	platformkafka "github.com/Apurer/go-gin-order-service/internal/platform/kafka"
)

const (
	defaultStockTopic = "stock"
	defaultGroupID    = "order-management-products"
)

// Config carries environment-driven settings for the API process.
type Config struct {
	Port              string
	PostgresDSN       string
	HTTPEnabled       bool
	ConsumerEnabled   bool
	KafkaBrokers      []string
	KafkaStockTopic   string
	KafkaGroupID      string
	TemporalAddress   string
	TemporalNamespace string
	TemporalDisabled  bool
	SeedFile          string
}

// LoadConfig reads environment variables, applies defaults, and validates basic constraints.
func LoadConfig() (Config, error) {
	cfg := Config{
		Port:              envDefault("PORT", "8080"),
		PostgresDSN:       strings.TrimSpace(os.Getenv("POSTGRES_DSN")),
		KafkaBrokers:      platformkafka.ParseBrokers(os.Getenv("KAFKA_BROKERS")),
		KafkaStockTopic:   envDefault("KAFKA_STOCK_TOPIC", defaultStockTopic),
		KafkaGroupID:      envDefault("KAFKA_GROUP_ID", defaultGroupID),
		TemporalAddress:   envDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
		TemporalNamespace: envDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		TemporalDisabled:  isTruthy(os.Getenv("TEMPORAL_DISABLED")),
		SeedFile:          strings.TrimSpace(os.Getenv("SEED_FILE")),
	}
	if port, err := strconv.Atoi(cfg.Port); err != nil || port <= 0 || port > 65535 {
		return Config{}, fmt.Errorf("PORT must be a valid TCP port, got %q", cfg.Port)
	}

	var err error
	if cfg.HTTPEnabled, err = envBool("HTTP_ENABLED", true); err != nil {
		return Config{}, err
	}
	if cfg.ConsumerEnabled, err = envBool("CONSUMER_ENABLED", len(cfg.KafkaBrokers) > 0); err != nil {
		return Config{}, err
	}
	if cfg.ConsumerEnabled && len(cfg.KafkaBrokers) == 0 {
		return Config{}, fmt.Errorf("CONSUMER_ENABLED requires KAFKA_BROKERS")
	}
	if !cfg.HTTPEnabled && !cfg.ConsumerEnabled {
		return Config{}, fmt.Errorf("at least one of HTTP_ENABLED or CONSUMER_ENABLED must be set")
	}
	return cfg, nil
}

// Addr is the HTTP listen address.
func (c Config) Addr() string {
	return ":" + c.Port
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func envBool(key string, fallback bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean, got %q", key, raw)
	}
	return value, nil
}

func isTruthy(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	return value == "1" || value == "true" || value == "yes"
}
