package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Setenv("DATABASE_URL", "sqlite:file::memory:")
	t.Setenv("JWT_SECRET", "s")
	t.Setenv("ES_URL", "http://es:9200")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092")
	t.Setenv("OVERRIDE_STORE", "redis")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("PREMISE_VALIDATION_TIMEOUT", "2s")
	t.Setenv("SERVER_PORT", "9000")

	cfg := Load()

	assert.Equal(t, "storefront", cfg.ServiceName)
	assert.Equal(t, 9000, cfg.ServerPort)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, OverrideStoreRedis, cfg.OverrideStore)
	assert.Equal(t, 2*time.Second, cfg.PremiseValidationTimeout)
	assert.Equal(t, "technical_resources", cfg.TechnicalResourcesIndex)
	assert.Equal(t, "en", cfg.Language)
}
