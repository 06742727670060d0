package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/client"
)

func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "POSTGRES_DSN", "HTTP_ENABLED", "CONSUMER_ENABLED",
		"KAFKA_BROKERS", "KAFKA_STOCK_TOPIC", "KAFKA_GROUP_ID",
		"TEMPORAL_ADDRESS", "TEMPORAL_NAMESPACE", "TEMPORAL_DISABLED", "SEED_FILE",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearConfigEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.True(t, cfg.HTTPEnabled)
	assert.False(t, cfg.ConsumerEnabled)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Equal(t, "stock", cfg.KafkaStockTopic)
	assert.Equal(t, "order-management-products", cfg.KafkaGroupID)
	assert.Equal(t, client.DefaultHostPort, cfg.TemporalAddress)
	assert.Equal(t, client.DefaultNamespace, cfg.TemporalNamespace)
	assert.False(t, cfg.TemporalDisabled)
}

func TestLoadConfigEnablesConsumerWithBrokers(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, ,kafka-2:9092")
	t.Setenv("TEMPORAL_DISABLED", "yes")
	t.Setenv("SEED_FILE", "configs/products.yaml")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.True(t, cfg.ConsumerEnabled)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
	assert.True(t, cfg.TemporalDisabled)
	assert.Equal(t, "configs/products.yaml", cfg.SeedFile)
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	cases := map[string]map[string]string{
		"bad port":                 {"PORT": "http"},
		"port out of range":        {"PORT": "70000"},
		"bad bool":                 {"HTTP_ENABLED": "sometimes"},
		"consumer without brokers": {"CONSUMER_ENABLED": "true"},
		"nothing enabled":          {"HTTP_ENABLED": "false"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			clearConfigEnv(t)
			for key, value := range env {
				t.Setenv(key, value)
			}
			_, err := LoadConfig()
			require.Error(t, err)
		})
	}
}
