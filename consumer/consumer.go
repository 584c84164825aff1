package consumer

import (
	"context"
	"fmt"

	"github.com/Shopify/sarama"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/tavolo/search-api-go/broker"
	"github.com/tavolo/search-api-go/indexer"
	log "github.com/tavolo/search-api-go/pkg/logger"
)

const (
	MenuItemTopicName   = "topic.catalog.menu-item"
	RestaurantTopicName = "topic.catalog.restaurant"
	DeadLetterTopicName = "topic.catalog.dead-letter"
)

// Consumer bridges catalog mutation events into the indexing pipeline.
// Messages that cannot be applied are committed anyway and forwarded to a
// dead-letter topic so the partition never stalls.
type Consumer struct {
	Ready    chan bool
	pipeline *indexer.Pipeline
	producer sarama.SyncProducer
	consumer sarama.ConsumerGroup
	Counter  *prometheus.CounterVec
}

func NewConsumer(group sarama.ConsumerGroup, pipeline *indexer.Pipeline, brokers []string) *Consumer {
	producer, err := broker.NewProducer(brokers)
	if err != nil {
		log.Logger().Panic("failed to init kafka producer. err:", zap.Error(err))
	}
	return &Consumer{
		Ready:    make(chan bool),
		pipeline: pipeline,
		producer: producer,
		consumer: group,
	}
}

func (consumer *Consumer) Start(ctx context.Context) {
	go func() {
		for {
			if err := consumer.consumer.Consume(ctx, []string{MenuItemTopicName, RestaurantTopicName}, consumer); err != nil {
				log.Logger().Panic("Error from consumer:", zap.Error(err))
			}
			if ctx.Err() != nil {
				return
			}
			consumer.Ready = make(chan bool)
		}
	}()
	<-consumer.Ready
	log.Logger().Info("Sarama consumer up and running!...")
}

// Setup is run at the beginning of a new session, before ConsumeClaim
func (consumer *Consumer) Setup(sarama.ConsumerGroupSession) error {
	close(consumer.Ready)
	return nil
}

// Cleanup is run at the end of a session, once all ConsumeClaim goroutines have exited
func (consumer *Consumer) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

// ConsumeClaim must start a consumer loop of ConsumerGroupClaim's Messages().
func (consumer *Consumer) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message := <-claim.Messages():
			if consumer.Counter != nil {
				consumer.Counter.With(prometheus.Labels{
					"topic":     message.Topic,
					"timestamp": fmt.Sprintf("%d", message.Timestamp.Unix()),
				}).Inc()
			}
			if message.Topic == MenuItemTopicName {
				consumer.menuItemHandle(message, session)
			}
			if message.Topic == RestaurantTopicName {
				consumer.restaurantHandle(message, session)
			}
		case <-session.Context().Done():
			return nil
		}
	}
}

// deadLetter forwards an unprocessable message so it is kept for replay.
func (consumer *Consumer) deadLetter(message *sarama.ConsumerMessage) {
	_, _, err := consumer.producer.SendMessage(&sarama.ProducerMessage{
		Topic: DeadLetterTopicName,
		Key:   sarama.ByteEncoder(message.Key),
		Value: sarama.ByteEncoder(message.Value),
	})
	if err != nil {
		log.Logger().Error("error producing dead-letter message", zap.String("topic", message.Topic), zap.Error(err))
	}
}
