package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ELASTIC_CONN_STR", "http://localhost:9200")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, 300, cfg.CacheTTL)
	assert.Equal(t, 20, cfg.DefaultPageSize)
	assert.Equal(t, 100, cfg.MaxPageSize)
	assert.Equal(t, "spanish", cfg.AnalyzerLanguage)
	assert.Equal(t, 3.0, cfg.NameBoost)
	assert.Equal(t, 2.0, cfg.CategoryBoost)
	assert.Equal(t, 1.0, cfg.DescriptionBoost)
	assert.Equal(t, "AUTO", cfg.Fuzziness)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 5, cfg.SchemaRetries)
}

func TestLoadRequiresElasticConnStr(t *testing.T) {
	t.Setenv("ELASTIC_CONN_STR", "placeholder")
	require.NoError(t, os.Unsetenv("ELASTIC_CONN_STR"))

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadClampsDefaultPageSize(t *testing.T) {
	t.Setenv("ELASTIC_CONN_STR", "http://localhost:9200")
	t.Setenv("DEFAULT_PAGE_SIZE", "200")
	t.Setenv("MAX_PAGE_SIZE", "50")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 50, cfg.DefaultPageSize)
}

func TestLoadParsesBrokerList(t *testing.T) {
	t.Setenv("ELASTIC_CONN_STR", "http://localhost:9200")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092,kafka-2:9092")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
}
