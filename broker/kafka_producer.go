package broker

import (
	"github.com/Shopify/sarama"
)

func NewProducer(brokers []string) (sarama.SyncProducer, error) {
	config := sarama.NewConfig()
	// Return success is required for sync producer.
	config.Producer.Return.Successes = true

	return sarama.NewSyncProducer(brokers, config)
}
