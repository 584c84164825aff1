package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/tavolo/search-api-go/broker"
	"github.com/tavolo/search-api-go/cache"
	"github.com/tavolo/search-api-go/config"
	"github.com/tavolo/search-api-go/consumer"
	"github.com/tavolo/search-api-go/indexer"
	log "github.com/tavolo/search-api-go/pkg/logger"
	"github.com/tavolo/search-api-go/repository"
	"github.com/tavolo/search-api-go/search"
)

const consumerGroupName = "catalog_index_consumer"

var messageCounter = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "catalog_consumer_messages",
}, []string{"topic", "timestamp"})

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Logger().Fatal("could not load config", zap.Error(err))
	}
	if len(cfg.KafkaBrokers) == 0 {
		log.Logger().Fatal("KAFKA_BROKERS must be set for the consumer")
	}

	http.HandleFunc("/healthcheck", func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(200)
	})
	http.Handle("/metrics", promhttp.Handler())

	go func() {
		if err := http.ListenAndServe(":80", nil); err != nil {
			fmt.Fprintf(os.Stderr, "server could not started or stopped: %s", err)
		}
	}()

	opts := search.Options{
		Language:         cfg.AnalyzerLanguage,
		NameBoost:        cfg.NameBoost,
		CategoryBoost:    cfg.CategoryBoost,
		DescriptionBoost: cfg.DescriptionBoost,
		Fuzziness:        cfg.Fuzziness,
		Timeout:          cfg.RequestTimeout,
		SchemaRetries:    cfg.SchemaRetries,
	}
	products := search.NewProductIndex(cfg.ElasticURL, opts)
	venues := search.NewVenueIndex(cfg.ElasticURL, opts)
	cacheRepo := cache.NewRedisRepository(cfg.RedisAddr, cfg.RedisPassword)

	var source indexer.Source
	if cfg.DBConnStr != "" {
		pgSource, err := repository.NewPostgresSource(cfg.DBConnStr)
		if err != nil {
			log.Logger().Fatal("could not connect to catalog database", zap.Error(err))
		}
		defer pgSource.Close()
		source = pgSource
	} else if cfg.SourceBaseURL != "" {
		source = repository.NewHTTPSource(cfg.SourceBaseURL, cfg.RequestTimeout)
	}

	pipeline := indexer.New(products, venues, cacheRepo, source)

	client, err := broker.NewConsumerGroup(cfg.KafkaBrokers, consumerGroupName)
	if err != nil {
		log.Logger().Panic(err.Error())
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c := consumer.NewConsumer(client, pipeline, cfg.KafkaBrokers)
	c.Counter = messageCounter
	c.Start(ctx)

	sigterm := make(chan os.Signal, 1)
	signal.Notify(sigterm, syscall.SIGINT, syscall.SIGTERM)
	healthy := true
	for healthy {
		select {
		case <-ctx.Done():
			log.Logger().Info("terminating: context cancelled")
			healthy = false
		case <-sigterm:
			log.Logger().Info("terminating: via signal")
			healthy = false
		}
	}

	cancel()
	if err = client.Close(); err != nil {
		log.Logger().Panic("Error closing client:", zap.Error(err))
	}
}
