package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds every knob the service reads from the environment.
type Config struct {
	ListenAddr string `env:"LISTEN_ADDR" envDefault:":8080"`
	APIKey     string `env:"API_KEY"`

	ElasticURL     string        `env:"ELASTIC_CONN_STR,required"`
	RequestTimeout time.Duration `env:"ELASTIC_REQUEST_TIMEOUT" envDefault:"10s"`
	SchemaRetries  int           `env:"SCHEMA_RETRIES" envDefault:"5"`

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	CacheTTL      int    `env:"CACHE_TTL_SECONDS" envDefault:"300"`

	// System of record. When DBConnStr is set the reindexer reads Postgres
	// directly, otherwise it pages through the catalog service's export API.
	SourceBaseURL string `env:"CATALOG_BASE_URL"`
	DBConnStr     string `env:"DB_CONN_STR"`

	KafkaBrokers []string `env:"KAFKA_BROKERS" envSeparator:","`

	DefaultPageSize int `env:"DEFAULT_PAGE_SIZE" envDefault:"20"`
	MaxPageSize     int `env:"MAX_PAGE_SIZE" envDefault:"100"`

	// Relevance tuning. Defaults mirror what was measured to work for
	// menu-sized corpora; they are knobs, not a tuning methodology.
	AnalyzerLanguage string  `env:"ANALYZER_LANGUAGE" envDefault:"spanish"`
	NameBoost        float64 `env:"NAME_BOOST" envDefault:"3"`
	CategoryBoost    float64 `env:"CATEGORY_BOOST" envDefault:"2"`
	DescriptionBoost float64 `env:"DESCRIPTION_BOOST" envDefault:"1"`
	Fuzziness        string  `env:"FUZZINESS" envDefault:"AUTO"`
}

// Load parses the environment into a Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.DefaultPageSize > cfg.MaxPageSize {
		cfg.DefaultPageSize = cfg.MaxPageSize
	}
	return cfg, nil
}
